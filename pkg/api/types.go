package api

import (
	"context"
	"math"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/variantdb/pkg/storage"
	"github.com/ssargent/variantdb/pkg/variant"
)

// Output formats accepted by the decode and get endpoints.
const (
	FormatJSON   = "json"
	FormatNative = "native"
	FormatRaw    = "raw"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// VariantRequest carries a value/metadata pair. Both buffers are base64 in JSON.
type VariantRequest struct {
	Value    []byte `json:"value"`
	Metadata []byte `json:"metadata"`
	Format   string `json:"format,omitempty"`
}

// DecodeResponse is the result of decoding a pair.
type DecodeResponse struct {
	Format string      `json:"format"`
	Result interface{} `json:"result"`
}

// VariantResponse describes a stored variant.
type VariantResponse struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Format    string      `json:"format,omitempty"`
	Result    interface{} `json:"result,omitempty"`
	Value     []byte      `json:"value,omitempty"`
	Metadata  []byte      `json:"metadata,omitempty"`
}

// NativeNode is a decoded value tagged with its variant kind. Objects keep
// stored field order as a list of NativeField.
type NativeNode struct {
	Kind  string      `json:"kind"`
	Value interface{} `json:"value"`
}

// NativeField is one object member of a NativeNode.
type NativeField struct {
	Key   string     `json:"key"`
	Value NativeNode `json:"value"`
}

// NewNativeNode converts v into its tagged form. Decimals render as their exact
// string, non-finite doubles as strings.
func NewNativeNode(v variant.Value) NativeNode {
	n := NativeNode{Kind: v.Kind().String()}
	switch v.Kind() {
	case variant.KindBool:
		n.Value = v.Bool()
	case variant.KindInt:
		n.Value = v.Int()
	case variant.KindDouble:
		f := v.Double()
		switch {
		case math.IsNaN(f):
			n.Value = "NaN"
		case math.IsInf(f, 1):
			n.Value = "Infinity"
		case math.IsInf(f, -1):
			n.Value = "-Infinity"
		default:
			n.Value = f
		}
	case variant.KindDecimal:
		n.Value = v.Decimal().String()
	case variant.KindString:
		n.Value = v.Str()
	case variant.KindObject:
		fields := make([]NativeField, 0, v.Len())
		for _, f := range v.Fields() {
			fields = append(fields, NativeField{Key: f.Key, Value: NewNativeNode(f.Value)})
		}
		n.Value = fields
	case variant.KindArray:
		elems := make([]NativeNode, 0, v.Len())
		for _, e := range v.Elements() {
			elems = append(elems, NewNativeNode(e))
		}
		n.Value = elems
	}
	return n
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port         int
	Bind         string
	APIKey       string
	MaxBodyBytes int64
}

// VariantStore is the storage the server needs.
type VariantStore interface {
	Put(ctx context.Context, metadata, value []byte) (ksuid.KSUID, error)
	Get(ctx context.Context, id ksuid.KSUID) (*storage.Entry, error)
	Delete(ctx context.Context, id ksuid.KSUID) error
	List(ctx context.Context, limit int) ([]storage.Entry, error)
}
