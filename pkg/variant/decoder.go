package variant

// DefaultMaxDepth is the container nesting limit applied when no
// WithMaxDepth option is given.
const DefaultMaxDepth = 512

// Decoder materializes variant buffers. A Decoder is immutable once built
// and safe for concurrent use.
type Decoder struct {
	maxDepth int
	strict   bool
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithMaxDepth limits how many containers may be nested inside each other.
// Values below 1 select DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(d *Decoder) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}
		d.maxDepth = depth
	}
}

// WithStrictFieldOrder makes the decoder reject objects whose keys are not
// strictly increasing in byte order, which also rules out duplicates.
// By default stored order is trusted and preserved as is.
func WithStrictFieldOrder(strict bool) Option {
	return func(d *Decoder) {
		d.strict = strict
	}
}

// NewDecoder returns a Decoder configured by opts.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// MaxDepth returns the configured nesting limit.
func (d *Decoder) MaxDepth() int { return d.maxDepth }

// Strict reports whether object key order is validated.
func (d *Decoder) Strict() bool { return d.strict }

var defaultDecoder = NewDecoder()

// ToJSON renders a value/metadata pair as JSON text using default options.
func ToJSON(value, metadata []byte) (string, error) {
	return defaultDecoder.ToJSON(value, metadata)
}

// ToNative materializes a value/metadata pair using default options.
func ToNative(value, metadata []byte) (Value, error) {
	return defaultDecoder.ToNative(value, metadata)
}

// ToJSON renders the value starting at position 0 as JSON text.
func (d *Decoder) ToJSON(value, metadata []byte) (string, error) {
	w := d.walker(value, metadata)
	out, err := w.appendJSON(make([]byte, 0, len(value)+len(value)/2), 0, 0)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ToNative materializes the value starting at position 0.
func (d *Decoder) ToNative(value, metadata []byte) (Value, error) {
	v, err := d.walker(value, metadata).native(0, 0)
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

func (d *Decoder) walker(value, metadata []byte) *walker {
	return &walker{d: d, value: value, dict: newDictionary(metadata)}
}

// walker carries the buffers of one decode call.
type walker struct {
	d     *Decoder
	value []byte
	dict  *dictionary
}

// enter fails once a container at pos would exceed the nesting limit.
func (w *walker) enter(pos, depth int) error {
	if depth >= w.d.maxDepth {
		return malformed(pos, ReasonTooDeep, "nesting exceeds %d", w.d.maxDepth)
	}
	return nil
}

func (w *walker) object(pos int) ([]objectField, error) {
	fields, err := decodeObject(w.value, pos, w.dict)
	if err != nil {
		return nil, err
	}
	if w.d.strict {
		for i := 1; i < len(fields); i++ {
			if fields[i-1].key >= fields[i].key {
				return nil, malformed(pos, ReasonUnsortedKeys, "field %q follows %q", fields[i].key, fields[i-1].key)
			}
		}
	}
	return fields, nil
}

func (w *walker) appendJSON(dst []byte, pos, depth int) ([]byte, error) {
	kind, err := kindAt(w.value, pos)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindNull:
		return append(dst, "null"...), nil
	case KindBool:
		b, err := decodeBool(w.value, pos)
		if err != nil {
			return nil, err
		}
		return appendJSONBool(dst, b), nil
	case KindInt:
		i, err := decodeInt(w.value, pos)
		if err != nil {
			return nil, err
		}
		return appendJSONInt(dst, i), nil
	case KindDouble:
		f, err := decodeDouble(w.value, pos)
		if err != nil {
			return nil, err
		}
		return appendJSONFloat(dst, f), nil
	case KindDecimal:
		dec, err := decodeDecimal(w.value, pos)
		if err != nil {
			return nil, err
		}
		return append(dst, dec.String()...), nil
	case KindString:
		s, err := decodeString(w.value, pos)
		if err != nil {
			return nil, err
		}
		return appendJSONString(dst, s), nil
	case KindObject:
		if err := w.enter(pos, depth); err != nil {
			return nil, err
		}
		fields, err := w.object(pos)
		if err != nil {
			return nil, err
		}
		dst = append(dst, '{')
		for i, f := range fields {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendJSONString(dst, f.key)
			dst = append(dst, ':')
			if dst, err = w.appendJSON(dst, f.pos, depth+1); err != nil {
				return nil, err
			}
		}
		return append(dst, '}'), nil
	default:
		if err := w.enter(pos, depth); err != nil {
			return nil, err
		}
		elems, err := decodeArray(w.value, pos)
		if err != nil {
			return nil, err
		}
		dst = append(dst, '[')
		for i, p := range elems {
			if i > 0 {
				dst = append(dst, ',')
			}
			if dst, err = w.appendJSON(dst, p, depth+1); err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	}
}

func (w *walker) native(pos, depth int) (Value, error) {
	kind, err := kindAt(w.value, pos)
	if err != nil {
		return Value{}, err
	}
	switch kind {
	case KindNull:
		return NullValue(), nil
	case KindBool:
		b, err := decodeBool(w.value, pos)
		return BoolValue(b), err
	case KindInt:
		i, err := decodeInt(w.value, pos)
		return IntValue(i), err
	case KindDouble:
		f, err := decodeDouble(w.value, pos)
		return DoubleValue(f), err
	case KindDecimal:
		dec, err := decodeDecimal(w.value, pos)
		return DecimalValue(dec), err
	case KindString:
		s, err := decodeString(w.value, pos)
		return StringValue(s), err
	case KindObject:
		if err := w.enter(pos, depth); err != nil {
			return Value{}, err
		}
		fields, err := w.object(pos)
		if err != nil {
			return Value{}, err
		}
		out := make([]Field, len(fields))
		for i, f := range fields {
			v, err := w.native(f.pos, depth+1)
			if err != nil {
				return Value{}, err
			}
			out[i] = Field{Key: f.key, Value: v}
		}
		return ObjectValue(out), nil
	default:
		if err := w.enter(pos, depth); err != nil {
			return Value{}, err
		}
		elems, err := decodeArray(w.value, pos)
		if err != nil {
			return Value{}, err
		}
		out := make([]Value, len(elems))
		for i, p := range elems {
			v, err := w.native(p, depth+1)
			if err != nil {
				return Value{}, err
			}
			out[i] = v
		}
		return ArrayValue(out), nil
	}
}
