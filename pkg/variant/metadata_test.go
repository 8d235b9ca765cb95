package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_Key(t *testing.T) {
	// keys "a" and "bc", 1-byte offsets
	md, err := ParseMetadata([]byte{0x01, 0x02, 0x00, 0x01, 0x03, 'a', 'b', 'c'})
	require.NoError(t, err)
	assert.Equal(t, 2, md.Len())

	key, err := md.Key(0)
	require.NoError(t, err)
	assert.Equal(t, "a", key)

	key, err = md.Key(1)
	require.NoError(t, err)
	assert.Equal(t, "bc", key)
}

func TestMetadata_WideOffsets(t *testing.T) {
	// offset_size 2 lives in bits 6-7
	md, err := ParseMetadata([]byte{0x41, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 'k'})
	require.NoError(t, err)

	key, err := md.Key(0)
	require.NoError(t, err)
	assert.Equal(t, "k", key)
}

func TestMetadata_EmptyKeyAtEnd(t *testing.T) {
	md, err := ParseMetadata([]byte{0x01, 0x01, 0x00, 0x00})
	require.NoError(t, err)

	key, err := md.Key(0)
	require.NoError(t, err)
	assert.Equal(t, "", key)
}

func TestMetadata_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		buf    []byte
		id     uint64
		reason Reason
	}{
		{
			name:   "id equal to dict size",
			buf:    []byte{0x01, 0x01, 0x00, 0x01, 'a'},
			id:     1,
			reason: ReasonFieldIDOutOfRange,
		},
		{
			name:   "id far out of range",
			buf:    []byte{0x01, 0x01, 0x00, 0x01, 'a'},
			id:     1 << 40,
			reason: ReasonFieldIDOutOfRange,
		},
		{
			name:   "non-monotonic offsets",
			buf:    []byte{0x01, 0x02, 0x00, 0x02, 0x01, 'a', 'b'},
			id:     1,
			reason: ReasonNonMonotonicOffsets,
		},
		{
			name:   "string past end",
			buf:    []byte{0x01, 0x01, 0x00, 0x05, 'a'},
			id:     0,
			reason: ReasonOutOfBounds,
		},
		{
			name:   "invalid utf-8",
			buf:    []byte{0x01, 0x01, 0x00, 0x01, 0xFF},
			id:     0,
			reason: ReasonInvalidUTF8,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			md, err := ParseMetadata(tc.buf)
			require.NoError(t, err)

			_, err = md.Key(tc.id)
			assert.ErrorIs(t, err, ErrMalformedVariant)

			var merr *MalformedError
			require.ErrorAs(t, err, &merr)
			assert.Equal(t, tc.reason, merr.Reason)
		})
	}
}

func TestParseMetadata_Truncated(t *testing.T) {
	testCases := []struct {
		name string
		buf  []byte
	}{
		{name: "empty", buf: nil},
		{name: "header only", buf: []byte{0x01}},
		{name: "size without offsets", buf: []byte{0x01, 0x03, 0x00}},
		{name: "huge size", buf: []byte{0xC1, 0xFF, 0xFF, 0xFF, 0xFF}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseMetadata(tc.buf)
			assert.ErrorIs(t, err, ErrMalformedVariant)
		})
	}
}

func TestDictionary_Lazy(t *testing.T) {
	d := newDictionary([]byte{0xFF})
	_, err := d.key(0)
	assert.ErrorIs(t, err, ErrMalformedVariant)

	// the parse error is sticky
	_, err = d.key(0)
	assert.ErrorIs(t, err, ErrMalformedVariant)
}
