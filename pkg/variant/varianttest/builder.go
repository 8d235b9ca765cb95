// Package varianttest assembles variant value and metadata buffers for
// tests. It writes exactly the layouts the variant package reads, including
// ones an encoder would never choose (wide tables, unsorted fields).
package varianttest

import (
	"math"
	"math/big"

	"github.com/ssargent/variantdb/pkg/variant"
)

// Field is a key and an encoded value.
type Field struct {
	Key   string
	Value []byte
}

// Layout selects container integer widths. Zero widths pick the smallest
// width that fits.
type Layout struct {
	LargeSize   bool
	IDWidth     int
	OffsetWidth int
}

// Builder collects dictionary keys while objects are built.
type Builder struct {
	keys []string
	ids  map[string]int
}

func NewBuilder() *Builder {
	return &Builder{ids: make(map[string]int)}
}

// ID returns the dictionary id of key, adding it if needed.
func (b *Builder) ID(key string) int {
	if id, ok := b.ids[key]; ok {
		return id
	}
	id := len(b.keys)
	b.keys = append(b.keys, key)
	b.ids[key] = id
	return id
}

// Metadata encodes the dictionary with the smallest offset width.
func (b *Builder) Metadata() []byte {
	total := 0
	for _, k := range b.keys {
		total += len(k)
	}
	w := widthFor(uint64(total))
	if n := widthFor(uint64(len(b.keys))); n > w {
		w = n
	}
	return b.MetadataWidth(w)
}

// MetadataWidth encodes the dictionary using width-byte offsets.
func (b *Builder) MetadataWidth(width int) []byte {
	out := []byte{0x01 | byte(width-1)<<6}
	out = putUint(out, uint64(len(b.keys)), width)
	offset := 0
	out = putUint(out, 0, width)
	for _, k := range b.keys {
		offset += len(k)
		out = putUint(out, uint64(offset), width)
	}
	for _, k := range b.keys {
		out = append(out, k...)
	}
	return out
}

// EmptyMetadata is a dictionary with no entries.
func EmptyMetadata() []byte {
	return []byte{0x01, 0x00, 0x00}
}

func Null() []byte {
	return []byte{variant.PrimitiveHeader(variant.PrimitiveNull)}
}

func Bool(v bool) []byte {
	if v {
		return []byte{variant.PrimitiveHeader(variant.PrimitiveTrue)}
	}
	return []byte{variant.PrimitiveHeader(variant.PrimitiveFalse)}
}

// Int encodes v with the smallest integer width that holds it.
func Int(v int64) []byte {
	switch {
	case v >= math.MinInt8 && v <= math.MaxInt8:
		return IntWidth(v, 1)
	case v >= math.MinInt16 && v <= math.MaxInt16:
		return IntWidth(v, 2)
	case v >= math.MinInt32 && v <= math.MaxInt32:
		return IntWidth(v, 4)
	}
	return IntWidth(v, 8)
}

// IntWidth encodes v as a width-byte integer (1, 2, 4 or 8).
func IntWidth(v int64, width int) []byte {
	codes := map[int]uint8{
		1: variant.PrimitiveInt1,
		2: variant.PrimitiveInt2,
		4: variant.PrimitiveInt4,
		8: variant.PrimitiveInt8,
	}
	return putUint([]byte{variant.PrimitiveHeader(codes[width])}, uint64(v), width)
}

func Double(f float64) []byte {
	return putUint([]byte{variant.PrimitiveHeader(variant.PrimitiveDouble)}, math.Float64bits(f), 8)
}

func Decimal4(unscaled int32, scale uint8) []byte {
	out := []byte{variant.PrimitiveHeader(variant.PrimitiveDecimal4), scale}
	return putUint(out, uint64(int64(unscaled)), 4)
}

func Decimal8(unscaled int64, scale uint8) []byte {
	out := []byte{variant.PrimitiveHeader(variant.PrimitiveDecimal8), scale}
	return putUint(out, uint64(unscaled), 8)
}

// Decimal16 encodes unscaled as a 16-byte two's-complement integer.
func Decimal16(unscaled *big.Int, scale uint8) []byte {
	n := new(big.Int).Set(unscaled)
	if n.Sign() < 0 {
		n.Add(n, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	be := n.FillBytes(make([]byte, 16))
	out := []byte{variant.PrimitiveHeader(variant.PrimitiveDecimal16), scale}
	for i := len(be) - 1; i >= 0; i-- {
		out = append(out, be[i])
	}
	return out
}

// String encodes s as a short string when it fits, else as a long string.
func String(s string) []byte {
	if len(s) > variant.MaxShortStringSize {
		return LongString(s)
	}
	return append([]byte{variant.Header(variant.BasicShortString, uint8(len(s)))}, s...)
}

func LongString(s string) []byte {
	out := putUint([]byte{variant.PrimitiveHeader(variant.PrimitiveLongString)}, uint64(len(s)), 4)
	return append(out, s...)
}

// Object encodes fields in the given order with the smallest widths.
func (b *Builder) Object(fields ...Field) []byte {
	return b.ObjectWith(Layout{}, fields...)
}

// ObjectWith encodes fields in the given order using layout l.
func (b *Builder) ObjectWith(l Layout, fields ...Field) []byte {
	ids := make([]uint64, len(fields))
	maxID := uint64(0)
	values := make([][]byte, len(fields))
	for i, f := range fields {
		ids[i] = uint64(b.ID(f.Key))
		if ids[i] > maxID {
			maxID = ids[i]
		}
		values[i] = f.Value
	}
	idWidth := l.IDWidth
	if idWidth == 0 {
		idWidth = widthFor(maxID)
	}
	offsets, data := pack(values)
	offsetWidth := l.OffsetWidth
	if offsetWidth == 0 {
		offsetWidth = widthFor(uint64(len(data)))
	}
	large := l.LargeSize || len(fields) > 0xFF
	typeInfo := uint8(idWidth-1)<<2 | uint8(offsetWidth-1)
	sizeBytes := 1
	if large {
		typeInfo |= 1 << 4
		sizeBytes = 4
	}
	out := []byte{variant.Header(variant.BasicObject, typeInfo)}
	out = putUint(out, uint64(len(fields)), sizeBytes)
	for _, id := range ids {
		out = putUint(out, id, idWidth)
	}
	for _, off := range offsets {
		out = putUint(out, off, offsetWidth)
	}
	return append(out, data...)
}

// Array encodes elems with the smallest widths.
func Array(elems ...[]byte) []byte {
	return ArrayWith(Layout{}, elems...)
}

// ArrayWith encodes elems using layout l; IDWidth is ignored.
func ArrayWith(l Layout, elems ...[]byte) []byte {
	offsets, data := pack(elems)
	offsetWidth := l.OffsetWidth
	if offsetWidth == 0 {
		offsetWidth = widthFor(uint64(len(data)))
	}
	large := l.LargeSize || len(elems) > 0xFF
	typeInfo := uint8(offsetWidth - 1)
	sizeBytes := 1
	if large {
		typeInfo |= 1 << 2
		sizeBytes = 4
	}
	out := []byte{variant.Header(variant.BasicArray, typeInfo)}
	out = putUint(out, uint64(len(elems)), sizeBytes)
	for _, off := range offsets {
		out = putUint(out, off, offsetWidth)
	}
	return append(out, data...)
}

// Encode writes v back into the binary form, adding object keys to b.
func (b *Builder) Encode(v variant.Value) []byte {
	switch v.Kind() {
	case variant.KindBool:
		return Bool(v.Bool())
	case variant.KindInt:
		return Int(v.Int())
	case variant.KindDouble:
		return Double(v.Double())
	case variant.KindDecimal:
		d := v.Decimal()
		scale := uint8(d.Scale())
		u := d.UnscaledBig()
		switch {
		case u.IsInt64() && u.Int64() >= math.MinInt32 && u.Int64() <= math.MaxInt32:
			return Decimal4(int32(u.Int64()), scale)
		case u.IsInt64():
			return Decimal8(u.Int64(), scale)
		}
		return Decimal16(u, scale)
	case variant.KindString:
		return String(v.Str())
	case variant.KindObject:
		fields := make([]Field, 0, v.Len())
		for _, f := range v.Fields() {
			fields = append(fields, Field{Key: f.Key, Value: b.Encode(f.Value)})
		}
		return b.Object(fields...)
	case variant.KindArray:
		elems := make([][]byte, 0, v.Len())
		for _, e := range v.Elements() {
			elems = append(elems, b.Encode(e))
		}
		return Array(elems...)
	}
	return Null()
}

// pack concatenates values and returns the count+1 cumulative offsets.
func pack(values [][]byte) ([]uint64, []byte) {
	offsets := make([]uint64, 0, len(values)+1)
	var data []byte
	for _, v := range values {
		offsets = append(offsets, uint64(len(data)))
		data = append(data, v...)
	}
	offsets = append(offsets, uint64(len(data)))
	return offsets, data
}

func widthFor(v uint64) int {
	switch {
	case v <= 0xFF:
		return 1
	case v <= 0xFFFF:
		return 2
	case v <= 0xFFFFFF:
		return 3
	}
	return 4
}

func putUint(dst []byte, v uint64, width int) []byte {
	for i := 0; i < width; i++ {
		dst = append(dst, byte(v>>(8*i)))
	}
	return dst
}
