package variant

import (
	"gopkg.in/inf.v0"
)

// Value is a fully materialized variant. The zero Value is null.
type Value struct {
	kind   Kind
	b      bool
	i      int64
	f      float64
	dec    *inf.Dec
	s      string
	fields []Field
	elems  []Value
}

// Field is one key/value pair of an object Value.
type Field struct {
	Key   string
	Value Value
}

// Constructors for each kind.

func NullValue() Value { return Value{kind: KindNull} }

func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

func DoubleValue(f float64) Value { return Value{kind: KindDouble, f: f} }

func DecimalValue(d *inf.Dec) Value { return Value{kind: KindDecimal, dec: d} }

func StringValue(s string) Value { return Value{kind: KindString, s: s} }

func ObjectValue(fields []Field) Value { return Value{kind: KindObject, fields: fields} }

func ArrayValue(elems []Value) Value { return Value{kind: KindArray, elems: elems} }

func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload; false for other kinds.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload; 0 for other kinds.
func (v Value) Int() int64 { return v.i }

// Double returns the floating point payload; 0 for other kinds.
func (v Value) Double() float64 { return v.f }

// Decimal returns the decimal payload; nil for other kinds.
func (v Value) Decimal() *inf.Dec { return v.dec }

// Str returns the string payload; "" for other kinds.
func (v Value) Str() string { return v.s }

// Fields returns object fields in stored order.
func (v Value) Fields() []Field { return v.fields }

// Elements returns array elements in order.
func (v Value) Elements() []Value { return v.elems }

// Get returns the first field named key of an object.
func (v Value) Get(key string) (Value, bool) {
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Len returns the number of fields or elements of a container, else 0.
func (v Value) Len() int {
	switch v.kind {
	case KindObject:
		return len(v.fields)
	case KindArray:
		return len(v.elems)
	}
	return 0
}

// Interface converts v to plain Go values: nil, bool, int64, float64,
// *inf.Dec, string, map[string]interface{} and []interface{}. Field order is
// lost; for duplicate keys the last stored field wins.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindDouble:
		return v.f
	case KindDecimal:
		return v.dec
	case KindString:
		return v.s
	case KindObject:
		m := make(map[string]interface{}, len(v.fields))
		for _, f := range v.fields {
			m[f.Key] = f.Value.Interface()
		}
		return m
	case KindArray:
		out := make([]interface{}, len(v.elems))
		for i, e := range v.elems {
			out[i] = e.Interface()
		}
		return out
	}
	return nil
}

// Equal reports whether v and o hold the same kind and payload, comparing
// containers element-wise in order and decimals by numeric value and scale.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindDouble:
		return v.f == o.f || (v.f != v.f && o.f != o.f)
	case KindDecimal:
		if v.dec == nil || o.dec == nil {
			return v.dec == o.dec
		}
		return v.dec.Cmp(o.dec) == 0 && v.dec.Scale() == o.dec.Scale()
	case KindString:
		return v.s == o.s
	case KindObject:
		if len(v.fields) != len(o.fields) {
			return false
		}
		for i := range v.fields {
			if v.fields[i].Key != o.fields[i].Key || !v.fields[i].Value.Equal(o.fields[i].Value) {
				return false
			}
		}
		return true
	case KindArray:
		if len(v.elems) != len(o.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// MarshalJSON renders v the same way Decoder.ToJSON renders the buffer it
// was decoded from, keeping object field order.
func (v Value) MarshalJSON() ([]byte, error) {
	return appendValueJSON(nil, v), nil
}

// String returns the JSON form of v.
func (v Value) String() string {
	return string(appendValueJSON(nil, v))
}

func appendValueJSON(dst []byte, v Value) []byte {
	switch v.kind {
	case KindBool:
		return appendJSONBool(dst, v.b)
	case KindInt:
		return appendJSONInt(dst, v.i)
	case KindDouble:
		return appendJSONFloat(dst, v.f)
	case KindDecimal:
		if v.dec == nil {
			return append(dst, "null"...)
		}
		return append(dst, v.dec.String()...)
	case KindString:
		return appendJSONString(dst, v.s)
	case KindObject:
		dst = append(dst, '{')
		for i, f := range v.fields {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendJSONString(dst, f.Key)
			dst = append(dst, ':')
			dst = appendValueJSON(dst, f.Value)
		}
		return append(dst, '}')
	case KindArray:
		dst = append(dst, '[')
		for i, e := range v.elems {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendValueJSON(dst, e)
		}
		return append(dst, ']')
	}
	return append(dst, "null"...)
}
