package codec

import (
	"encoding/binary"
	"hash/crc32"
	"math"
	"time"

	"github.com/pkg/errors"
)

// HeaderSize is the fixed size of a record header in bytes.
const HeaderSize = 20

var (
	// ErrShortRecord is returned when data is too short for its header or
	// for the sizes the header declares.
	ErrShortRecord = errors.New("record too short")
	// ErrChecksum is returned by Validate when the CRC does not match.
	ErrChecksum = errors.New("record checksum mismatch")
	// ErrRecordTooLarge is returned when a buffer does not fit a u32 size field.
	ErrRecordTooLarge = errors.New("record buffer too large")
)

// Record frames one variant: its metadata buffer and its value buffer.
type Record struct {
	CRC32        uint32 // CRC32 checksum for integrity
	MetadataSize uint32 // Size of the metadata buffer in bytes
	ValueSize    uint32 // Size of the value buffer in bytes
	Timestamp    uint64 // Unix timestamp in nanoseconds
	Metadata     []byte // Metadata (dictionary) buffer
	Value        []byte // Value buffer
}

// RecordCodec handles serialization and deserialization of records
type RecordCodec struct {
	now func() time.Time
}

// NewRecordCodec creates a new record codec instance
func NewRecordCodec() *RecordCodec {
	return &RecordCodec{now: time.Now}
}

// Encode serializes a metadata/value pair into a binary record
// Format: [CRC32(4)][MetadataSize(4)][ValueSize(4)][Timestamp(8)][Metadata][Value]
func (c *RecordCodec) Encode(metadata, value []byte) ([]byte, error) {
	r, err := newRecordAt(metadata, value, c.now())
	if err != nil {
		return nil, err
	}
	r.CRC32 = r.calculateCRC32()

	buf := make([]byte, r.Size())

	binary.LittleEndian.PutUint32(buf[0:], r.CRC32)
	binary.LittleEndian.PutUint32(buf[4:], r.MetadataSize)
	binary.LittleEndian.PutUint32(buf[8:], r.ValueSize)
	binary.LittleEndian.PutUint64(buf[12:], r.Timestamp)
	copy(buf[HeaderSize:], r.Metadata)
	copy(buf[HeaderSize+int(r.MetadataSize):], r.Value)

	return buf, nil
}

// Decode deserializes a binary record. Metadata and Value alias data.
func (c *RecordCodec) Decode(data []byte) (*Record, error) {
	if len(data) < HeaderSize {
		return nil, errors.Wrapf(ErrShortRecord, "%d bytes, header needs %d", len(data), HeaderSize)
	}

	r := &Record{}
	r.CRC32 = binary.LittleEndian.Uint32(data[0:4])
	r.MetadataSize = binary.LittleEndian.Uint32(data[4:8])
	r.ValueSize = binary.LittleEndian.Uint32(data[8:12])
	r.Timestamp = binary.LittleEndian.Uint64(data[12:20])

	need := uint64(HeaderSize) + uint64(r.MetadataSize) + uint64(r.ValueSize)
	if uint64(len(data)) < need {
		return nil, errors.Wrapf(ErrShortRecord, "%d bytes, sizes declare %d", len(data), need)
	}

	metaEnd := HeaderSize + int(r.MetadataSize)
	r.Metadata = data[HeaderSize:metaEnd]
	r.Value = data[metaEnd : metaEnd+int(r.ValueSize)]

	return r, nil
}

// Validate checks the integrity of a record using CRC32
func (r *Record) Validate() error {
	if sum := r.calculateCRC32(); r.CRC32 != sum {
		return errors.Wrapf(ErrChecksum, "%d != %d", r.CRC32, sum)
	}

	return nil
}

// Size returns the total size of the record when encoded
func (r *Record) Size() int {
	// Header: CRC32(4) + MetadataSize(4) + ValueSize(4) + Timestamp(8) = 20 bytes
	return HeaderSize + len(r.Metadata) + len(r.Value)
}

// Time returns the record timestamp.
func (r *Record) Time() time.Time {
	return time.Unix(0, int64(r.Timestamp))
}

// NewRecord creates a new record with current timestamp
func NewRecord(metadata, value []byte) (*Record, error) {
	return newRecordAt(metadata, value, time.Now())
}

func newRecordAt(metadata, value []byte, at time.Time) (*Record, error) {
	if uint64(len(metadata)) > math.MaxUint32 {
		return nil, errors.Wrapf(ErrRecordTooLarge, "metadata of %d bytes", len(metadata))
	}
	if uint64(len(value)) > math.MaxUint32 {
		return nil, errors.Wrapf(ErrRecordTooLarge, "value of %d bytes", len(value))
	}
	return &Record{
		MetadataSize: uint32(len(metadata)),
		ValueSize:    uint32(len(value)),
		Timestamp:    uint64(at.UnixNano()),
		Metadata:     metadata,
		Value:        value,
	}, nil
}

// calculateCRC32 computes the checksum over everything but the CRC field
func (r *Record) calculateCRC32() uint32 {
	var hdr [HeaderSize - 4]byte
	binary.LittleEndian.PutUint32(hdr[0:], r.MetadataSize)
	binary.LittleEndian.PutUint32(hdr[4:], r.ValueSize)
	binary.LittleEndian.PutUint64(hdr[8:], r.Timestamp)

	crc := crc32.NewIEEE()
	crc.Write(hdr[:])
	crc.Write(r.Metadata)
	crc.Write(r.Value)

	return crc.Sum32()
}
