//go:build fuzz
// +build fuzz

package variant_test

import (
	"encoding/json"
	"testing"

	"github.com/ssargent/variantdb/pkg/variant"
	vt "github.com/ssargent/variantdb/pkg/variant/varianttest"
)

// FuzzToJSON checks that arbitrary buffers either decode to valid JSON or
// fail with one of the package errors, and never panic.
func FuzzToJSON(f *testing.F) {
	b := vt.NewBuilder()
	f.Add([]byte{0x00}, vt.EmptyMetadata())
	f.Add([]byte{0x09, 'a', 'b'}, vt.EmptyMetadata())
	f.Add(vt.Array(vt.Int(1), vt.String("x")), vt.EmptyMetadata())
	obj := b.Object(vt.Field{Key: "k", Value: vt.Decimal4(5, 1)})
	f.Add(obj, b.Metadata())

	f.Fuzz(func(t *testing.T, value, metadata []byte) {
		text, err := variant.ToJSON(value, metadata)
		if err != nil {
			if _, nerr := variant.ToNative(value, metadata); nerr == nil {
				t.Fatalf("ToJSON failed (%v) but ToNative succeeded", err)
			}
			return
		}
		if !json.Valid([]byte(text)) {
			t.Fatalf("invalid JSON %q", text)
		}
		native, err := variant.ToNative(value, metadata)
		if err != nil {
			t.Fatalf("ToNative failed after ToJSON succeeded: %v", err)
		}
		if native.String() != text {
			t.Errorf("native JSON %q != %q", native.String(), text)
		}
	})
}

// FuzzTruncation checks that every prefix of a valid buffer is handled.
func FuzzTruncation(f *testing.F) {
	b := vt.NewBuilder()
	value := b.Object(
		vt.Field{Key: "a", Value: vt.Array(vt.Int(1), vt.LongString("hello"))},
		vt.Field{Key: "b", Value: vt.Double(1.25)},
	)
	metadata := b.Metadata()
	f.Add(uint(0), uint(0))

	f.Fuzz(func(t *testing.T, cutValue, cutMetadata uint) {
		v := value[:int(cutValue%uint(len(value)+1))]
		m := metadata[:int(cutMetadata%uint(len(metadata)+1))]
		_, err := variant.ToJSON(v, m)
		if len(v) == len(value) && len(m) == len(metadata) && err != nil {
			t.Fatalf("full buffers failed: %v", err)
		}
	})
}
