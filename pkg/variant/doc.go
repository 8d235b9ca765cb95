// Package variant decodes the binary variant encoding of semi-structured
// values into JSON text or a native Value tree.
//
// A variant is stored as two buffers: a value buffer and a metadata buffer.
// The metadata buffer holds a dictionary of field names that objects in the
// value buffer refer to by integer id, so many values can share one
// dictionary.
//
// # Value Format
//
// Every value starts with a header byte:
//
//	bits[1:0] basic type: 0 primitive, 1 short string, 2 object, 3 array
//	bits[7:2] type info, interpreted per basic type
//
// Primitive type info codes:
//
//	0 null      1 true      2 false
//	3 int8      4 int16     5 int32     6 int64
//	7 double    8 decimal4  9 decimal8  10 decimal16
//	16 long string
//
// A short string's type info is its length (0..63); the bytes follow the
// header. A long string carries a 4-byte length after the header. Decimals
// carry a 1-byte scale followed by a 4, 8 or 16 byte unscaled integer.
//
// Objects and arrays are laid out as:
//
//	[header][count][field ids (objects only)][offsets (count+1)][data]
//
// For objects, type info bit 4 selects a 1 or 4 byte count, bits 3-2 the id
// width minus one and bits 1-0 the offset width minus one. For arrays, bit 2
// selects the count width and bits 1-0 the offset width minus one. The last
// offset is the size of the data region. All integers are little-endian.
//
// # Metadata Format
//
//	[header][dict size][offsets (dict size+1)][string bytes]
//
// Bits 7-6 of the header hold the offset width minus one; the size field and
// every offset use that width.
//
// # Usage
//
//	text, err := variant.ToJSON(value, metadata)
//	if err != nil {
//	    return err
//	}
//
//	v, err := variant.ToNative(value, metadata)
//	if err != nil {
//	    return err
//	}
//	name, _ := v.Get("name")
//
// A Decoder carries options such as the nesting limit:
//
//	dec := variant.NewDecoder(variant.WithMaxDepth(64))
//	text, err := dec.ToJSON(value, metadata)
//
// Variant is a lazy cursor for reading single fields without materializing
// the whole value.
//
// # Error Handling
//
// Buffers are treated as untrusted. Every read is bounds checked and every
// failure is one of two error types:
//   - *MalformedError: the buffers are not a valid encoding. Matches
//     ErrMalformedVariant, and ErrTooDeeplyNested when the nesting limit
//     was hit.
//   - *UnexpectedTypeError: an accessor was used on a value of another kind.
//     Matches ErrUnexpectedType.
//
// Decoding never returns partial output.
//
// # Thread Safety
//
// Decoders hold only options and the package functions hold no state, so
// concurrent decodes need no coordination.
package variant
