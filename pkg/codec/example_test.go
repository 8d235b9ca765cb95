package codec_test

import (
	"fmt"
	"log"

	"github.com/ssargent/variantdb/pkg/codec"
	"github.com/ssargent/variantdb/pkg/variant"
)

// ExampleRecordCodec_basic frames a variant into a record and decodes it back.
func ExampleRecordCodec_basic() {
	c := codec.NewRecordCodec()

	metadata := []byte{0x01, 0x00, 0x00}
	value := []byte{0x09, 'a', 'b'}

	encoded, err := c.Encode(metadata, value)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Encoded %d bytes\n", len(encoded))

	record, err := c.Decode(encoded)
	if err != nil {
		log.Fatal(err)
	}

	if err := record.Validate(); err != nil {
		log.Fatal(err)
	}

	text, err := variant.ToJSON(record.Value, record.Metadata)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Metadata size: %d\n", record.MetadataSize)
	fmt.Printf("Value size: %d\n", record.ValueSize)
	fmt.Printf("JSON: %s\n", text)

	// Output:
	// Encoded 26 bytes
	// Metadata size: 3
	// Value size: 3
	// JSON: "ab"
}
