package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

func TestRecordCodec_EncodeDecodeRoundTrip(t *testing.T) {
	codec := NewRecordCodec()

	testCases := []struct {
		name     string
		metadata []byte
		value    []byte
	}{
		{
			name:     "scalar with empty dictionary",
			metadata: []byte{0x01, 0x00, 0x00},
			value:    []byte{0x0C, 0xFB},
		},
		{
			name:     "object with one key",
			metadata: []byte{0x01, 0x01, 0x00, 0x01, 'a'},
			value:    []byte{0x02, 0x01, 0x00, 0x00, 0x02, 0x0C, 0x01},
		},
		{
			name:     "empty metadata",
			metadata: []byte{},
			value:    []byte{0x00},
		},
		{
			name:     "both empty",
			metadata: []byte{},
			value:    []byte{},
		},
		{
			name:     "large value",
			metadata: []byte{0x01, 0x00, 0x00},
			value:    append([]byte{0x40, 0x10, 0x27, 0x00, 0x00}, bytes.Repeat([]byte("v"), 10000)...),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := codec.Encode(tc.metadata, tc.value)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			record, err := codec.Decode(encoded)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			if err := record.Validate(); err != nil {
				t.Fatalf("Record validation failed: %v", err)
			}

			if !bytes.Equal(record.Metadata, tc.metadata) {
				t.Errorf("Metadata mismatch: got %v, want %v", record.Metadata, tc.metadata)
			}

			if !bytes.Equal(record.Value, tc.value) {
				t.Errorf("Value mismatch: got %v, want %v", record.Value, tc.value)
			}

			if record.MetadataSize != uint32(len(tc.metadata)) {
				t.Errorf("MetadataSize mismatch: got %d, want %d", record.MetadataSize, len(tc.metadata))
			}

			if record.ValueSize != uint32(len(tc.value)) {
				t.Errorf("ValueSize mismatch: got %d, want %d", record.ValueSize, len(tc.value))
			}

			now := time.Now().UnixNano()
			if record.Timestamp > uint64(now) || record.Timestamp < uint64(now-int64(time.Minute)) {
				t.Errorf("Timestamp seems unreasonable: %d", record.Timestamp)
			}
		})
	}
}

func TestRecordCodec_FixedClock(t *testing.T) {
	at := time.Date(2025, 6, 22, 8, 0, 0, 0, time.UTC)
	codec := &RecordCodec{now: func() time.Time { return at }}

	encoded, err := codec.Encode([]byte{0x01, 0x00, 0x00}, []byte{0x04})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	record, err := codec.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !record.Time().Equal(at) {
		t.Errorf("Time mismatch: got %v, want %v", record.Time(), at)
	}
}

func TestRecordCodec_CRCValidation(t *testing.T) {
	codec := NewRecordCodec()
	metadata := []byte{0x01, 0x01, 0x00, 0x01, 'k'}
	value := []byte{0x09, 'h', 'i'}

	corruptions := []struct {
		name   string
		offset int
	}{
		{name: "crc field", offset: 0},
		{name: "timestamp", offset: 12},
		{name: "metadata data", offset: HeaderSize},
		{name: "value data", offset: HeaderSize + 5},
	}

	t.Run("valid CRC passes validation", func(t *testing.T) {
		encoded, err := codec.Encode(metadata, value)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}

		record, err := codec.Decode(encoded)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}

		if err := record.Validate(); err != nil {
			t.Errorf("Valid record failed validation: %v", err)
		}
	})

	for _, c := range corruptions {
		t.Run("corrupted "+c.name+" fails validation", func(t *testing.T) {
			encoded, err := codec.Encode(metadata, value)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			encoded[c.offset] ^= 0xFF

			record, err := codec.Decode(encoded)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			err = record.Validate()
			if err == nil {
				t.Fatal("Expected validation to fail, but it passed")
			}
			if !errors.Is(err, ErrChecksum) {
				t.Errorf("Expected ErrChecksum, got %v", err)
			}
		})
	}
}

func TestRecordCodec_MalformedData(t *testing.T) {
	codec := NewRecordCodec()

	testCases := []struct {
		name string
		data []byte
	}{
		{
			name: "empty data",
			data: []byte{},
		},
		{
			name: "too short for header",
			data: []byte{0x01, 0x02, 0x03},
		},
		{
			name: "insufficient data for declared metadata size",
			data: func() []byte {
				buf := make([]byte, HeaderSize)
				binary.LittleEndian.PutUint32(buf[4:8], 100)
				return buf
			}(),
		},
		{
			name: "insufficient data for declared value size",
			data: func() []byte {
				buf := make([]byte, HeaderSize+5)
				binary.LittleEndian.PutUint32(buf[4:8], 5)
				binary.LittleEndian.PutUint32(buf[8:12], 100)
				return buf
			}(),
		},
		{
			name: "sizes overflow u32 sum",
			data: func() []byte {
				buf := make([]byte, HeaderSize)
				binary.LittleEndian.PutUint32(buf[4:8], 0xFFFFFFFF)
				binary.LittleEndian.PutUint32(buf[8:12], 0xFFFFFFFF)
				return buf
			}(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := codec.Decode(tc.data)
			if err == nil {
				t.Fatalf("Expected decode to fail for malformed data, but it succeeded (%s)", tc.name)
			}
			if !errors.Is(err, ErrShortRecord) {
				t.Errorf("Expected ErrShortRecord, got %v", err)
			}
		})
	}
}

func TestRecord_Size(t *testing.T) {
	testCases := []struct {
		name         string
		metadata     []byte
		value        []byte
		expectedSize int
	}{
		{
			name:         "empty buffers",
			expectedSize: HeaderSize,
		},
		{
			name:         "small buffers",
			metadata:     []byte{0x01, 0x00, 0x00},
			value:        []byte{0x00},
			expectedSize: HeaderSize + 3 + 1,
		},
		{
			name:         "large data",
			metadata:     bytes.Repeat([]byte("m"), 1000),
			value:        bytes.Repeat([]byte("v"), 2000),
			expectedSize: HeaderSize + 1000 + 2000,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			record, err := NewRecord(tc.metadata, tc.value)
			if err != nil {
				t.Fatalf("NewRecord failed: %v", err)
			}
			if record.Size() != tc.expectedSize {
				t.Errorf("Size mismatch: got %d, want %d", record.Size(), tc.expectedSize)
			}
		})
	}
}

func TestNewRecord(t *testing.T) {
	metadata := []byte{0x01, 0x00, 0x00}
	value := []byte{0x04}

	record, err := NewRecord(metadata, value)
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}

	if record.MetadataSize != uint32(len(metadata)) {
		t.Errorf("MetadataSize mismatch: got %d, want %d", record.MetadataSize, len(metadata))
	}

	if record.ValueSize != uint32(len(value)) {
		t.Errorf("ValueSize mismatch: got %d, want %d", record.ValueSize, len(value))
	}

	now := time.Now().UnixNano()
	if record.Timestamp > uint64(now) || record.Timestamp < uint64(now-int64(time.Second)) {
		t.Errorf("Timestamp seems unreasonable: %d", record.Timestamp)
	}

	// CRC32 is only set during encoding
	if record.CRC32 != 0 {
		t.Errorf("Expected CRC32 to be zero initially, got %d", record.CRC32)
	}
}

func TestRecord_CalculateCRC32(t *testing.T) {
	record, err := NewRecord([]byte{0x01, 0x00, 0x00}, []byte{0x04})
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}

	crc := record.calculateCRC32()
	if crc == 0 {
		t.Error("Expected non-zero CRC32 for non-empty record")
	}

	if crc2 := record.calculateCRC32(); crc != crc2 {
		t.Errorf("CRC32 calculation is not deterministic: %d vs %d", crc, crc2)
	}

	other := *record
	other.Value = []byte{0x08}
	if crc == other.calculateCRC32() {
		t.Error("Different records produced same CRC32 (highly unlikely)")
	}
}
