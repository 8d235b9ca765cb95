// Package codec frames variant buffer pairs into self-checking records.
//
// A variant is two buffers, a metadata dictionary and a value. The codec
// packs both into one record so the pair can be stored and moved as a unit
// and corruption is caught before the buffers reach the decoder.
//
// # Record Format
//
//	[CRC32(4)][MetadataSize(4)][ValueSize(4)][Timestamp(8)][Metadata][Value]
//
// Fields:
//   - CRC32: IEEE CRC32 of every following byte (little-endian)
//   - MetadataSize: length of the metadata buffer (little-endian u32)
//   - ValueSize: length of the value buffer (little-endian u32)
//   - Timestamp: Unix timestamp in nanoseconds (little-endian u64)
//   - Metadata, Value: the raw variant buffers
//
// The total record size is 20 bytes plus both buffer lengths.
//
// # Usage
//
//	c := codec.NewRecordCodec()
//
//	encoded, err := c.Encode(metadata, value)
//	if err != nil {
//	    return err
//	}
//
//	record, err := c.Decode(encoded)
//	if err != nil {
//	    return err
//	}
//	if err := record.Validate(); err != nil {
//	    return err // corrupted
//	}
//
// Decode does not copy: the record's buffers alias the input.
//
// # Error Handling
//
// Decode fails with ErrShortRecord when the input cannot hold its header or
// the declared sizes. Validate fails with ErrChecksum. Both are wrapped with
// context and can be matched with errors.Is.
//
// # Thread Safety
//
// RecordCodec instances are safe for concurrent use.
package codec
