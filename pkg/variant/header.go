package variant

// BasicType is the 2-bit primary category stored in the low bits of a
// value header byte.
type BasicType uint8

const (
	BasicPrimitive   BasicType = 0
	BasicShortString BasicType = 1
	BasicObject      BasicType = 2
	BasicArray       BasicType = 3
)

func (bt BasicType) String() string {
	switch bt {
	case BasicPrimitive:
		return "Primitive"
	case BasicShortString:
		return "ShortString"
	case BasicObject:
		return "Object"
	case BasicArray:
		return "Array"
	}
	return "Unknown"
}

// Type info codes carried by BasicPrimitive headers.
const (
	PrimitiveNull       uint8 = 0
	PrimitiveTrue       uint8 = 1
	PrimitiveFalse      uint8 = 2
	PrimitiveInt1       uint8 = 3
	PrimitiveInt2       uint8 = 4
	PrimitiveInt4       uint8 = 5
	PrimitiveInt8       uint8 = 6
	PrimitiveDouble     uint8 = 7
	PrimitiveDecimal4   uint8 = 8
	PrimitiveDecimal8   uint8 = 9
	PrimitiveDecimal16  uint8 = 10
	PrimitiveLongString uint8 = 16
)

const (
	basicTypeBits = 2
	basicTypeMask = 0x03
	typeInfoMask  = 0x3F

	// MaxShortStringSize is the largest length a ShortString header can carry.
	MaxShortStringSize = 0x3F
)

// Kind is the logical type of a value, resolved once from its header.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindDouble
	KindDecimal
	KindString
	KindObject
	KindArray

	// KindContainer stands for object or array. It only appears as the
	// Expected kind of an UnexpectedTypeError.
	KindContainer
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindContainer:
		return "container"
	}
	return "unknown"
}

// Header packs a basic type and type info into a header byte.
func Header(bt BasicType, typeInfo uint8) byte {
	return typeInfo<<basicTypeBits | byte(bt)&basicTypeMask
}

// PrimitiveHeader returns the header byte of a primitive with the given type info.
func PrimitiveHeader(typeInfo uint8) byte {
	return Header(BasicPrimitive, typeInfo)
}

// splitHeader splits a header byte into its basic type and type info.
func splitHeader(hdr byte) (BasicType, uint8) {
	return BasicType(hdr & basicTypeMask), (hdr >> basicTypeBits) & typeInfoMask
}

// typeInfoAt returns the basic type and type info of the header at pos.
func typeInfoAt(buf []byte, pos int) (BasicType, uint8, error) {
	if err := checkIndex(buf, pos); err != nil {
		return 0, 0, err
	}
	bt, ti := splitHeader(buf[pos])
	return bt, ti, nil
}

// kindOf resolves a logical kind from a split header.
func kindOf(bt BasicType, typeInfo uint8) (Kind, bool) {
	switch bt {
	case BasicShortString:
		return KindString, true
	case BasicObject:
		return KindObject, true
	case BasicArray:
		return KindArray, true
	}
	switch typeInfo {
	case PrimitiveNull:
		return KindNull, true
	case PrimitiveTrue, PrimitiveFalse:
		return KindBool, true
	case PrimitiveInt1, PrimitiveInt2, PrimitiveInt4, PrimitiveInt8:
		return KindInt, true
	case PrimitiveDouble:
		return KindDouble, true
	case PrimitiveDecimal4, PrimitiveDecimal8, PrimitiveDecimal16:
		return KindDecimal, true
	case PrimitiveLongString:
		return KindString, true
	}
	return 0, false
}

// kindAt resolves the logical kind of the value at pos.
func kindAt(buf []byte, pos int) (Kind, error) {
	bt, ti, err := typeInfoAt(buf, pos)
	if err != nil {
		return 0, err
	}
	k, ok := kindOf(bt, ti)
	if !ok {
		return 0, malformed(pos, ReasonUnknownTypeInfo, "primitive type info %d", ti)
	}
	return k, nil
}
