package variant

import (
	"github.com/pkg/errors"
	"gopkg.in/inf.v0"
)

// Variant is a cursor over one value inside a value buffer. Accessors read
// the buffer on demand and fail with an UnexpectedTypeError when the value
// is of another kind. A cursor decodes with the options of the Decoder
// that created it.
type Variant struct {
	d     *Decoder
	value []byte
	dict  *dictionary
	pos   int
}

// ObjectField pairs a key with a cursor on its value.
type ObjectField struct {
	Key   string
	Value Variant
}

// New returns a cursor on the top-level value of a value/metadata pair
// using default options.
func New(value, metadata []byte) Variant {
	return defaultDecoder.New(value, metadata)
}

// New returns a cursor on the top-level value of a value/metadata pair
// that decodes with d's options.
func (d *Decoder) New(value, metadata []byte) Variant {
	return Variant{d: d, value: value, dict: newDictionary(metadata), pos: 0}
}

// Pos returns the byte position of the value's header.
func (v Variant) Pos() int { return v.pos }

func (v Variant) at(pos int) Variant {
	return Variant{d: v.d, value: v.value, dict: v.dict, pos: pos}
}

// Kind resolves the logical kind of the value.
func (v Variant) Kind() (Kind, error) {
	return kindAt(v.value, v.pos)
}

func (v Variant) walker() *walker {
	d := v.d
	if d == nil {
		d = defaultDecoder
	}
	return &walker{d: d, value: v.value, dict: v.dict}
}

func (v Variant) Bool() (bool, error) { return decodeBool(v.value, v.pos) }

func (v Variant) Int() (int64, error) { return decodeInt(v.value, v.pos) }

func (v Variant) Double() (float64, error) { return decodeDouble(v.value, v.pos) }

func (v Variant) Decimal() (*inf.Dec, error) { return decodeDecimal(v.value, v.pos) }

func (v Variant) Str() (string, error) { return decodeString(v.value, v.pos) }

// expect fails with an UnexpectedTypeError unless the value is of kind want.
func (v Variant) expect(want Kind) error {
	_, _, err := expectKind(v.value, v.pos, want)
	return err
}

// Fields returns the object's fields in stored order. Strict decoders also
// check the key order.
func (v Variant) Fields() ([]ObjectField, error) {
	if err := v.expect(KindObject); err != nil {
		return nil, err
	}
	fields, err := v.walker().object(v.pos)
	if err != nil {
		return nil, err
	}
	out := make([]ObjectField, len(fields))
	for i, f := range fields {
		out[i] = ObjectField{Key: f.key, Value: v.at(f.pos)}
	}
	return out, nil
}

// Get returns the first stored field named key.
func (v Variant) Get(key string) (Variant, bool, error) {
	fields, err := v.Fields()
	if err != nil {
		return Variant{}, false, err
	}
	for _, f := range fields {
		if f.Key == key {
			return f.Value, true, nil
		}
	}
	return Variant{}, false, nil
}

// Elements returns cursors on the array's elements.
func (v Variant) Elements() ([]Variant, error) {
	if err := v.expect(KindArray); err != nil {
		return nil, err
	}
	elems, err := decodeArray(v.value, v.pos)
	if err != nil {
		return nil, err
	}
	out := make([]Variant, len(elems))
	for i, p := range elems {
		out[i] = v.at(p)
	}
	return out, nil
}

// Index returns the i-th array element.
func (v Variant) Index(i int) (Variant, error) {
	elems, err := v.Elements()
	if err != nil {
		return Variant{}, err
	}
	if i < 0 || i >= len(elems) {
		return Variant{}, errors.Errorf("variant: index %d out of range [0, %d)", i, len(elems))
	}
	return elems[i], nil
}

// Len returns the number of fields of an object or elements of an array.
func (v Variant) Len() (int, error) {
	k, err := v.Kind()
	if err != nil {
		return 0, err
	}
	switch k {
	case KindObject:
		fields, err := v.Fields()
		return len(fields), err
	case KindArray:
		elems, err := v.Elements()
		return len(elems), err
	}
	return 0, &UnexpectedTypeError{Pos: v.pos, Expected: KindContainer, Found: k}
}

// ToJSON renders the value under the cursor. Depth counts from the cursor.
func (v Variant) ToJSON() (string, error) {
	out, err := v.walker().appendJSON(nil, v.pos, 0)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ToNative materializes the value under the cursor.
func (v Variant) ToNative() (Value, error) {
	val, err := v.walker().native(v.pos, 0)
	if err != nil {
		return Value{}, err
	}
	return val, nil
}
