package variant

import (
	"sync"
	"unicode/utf8"
)

// Metadata is a parsed view of a metadata buffer: the shared dictionary
// that resolves object field ids to key strings. It does not copy buf.
type Metadata struct {
	buf         []byte
	offsetSize  int
	dictSize    int
	stringStart int
}

// ParseMetadata reads the metadata header and dictionary size. Individual
// entries are validated when they are looked up.
func ParseMetadata(buf []byte) (*Metadata, error) {
	if err := checkIndex(buf, 0); err != nil {
		return nil, err
	}
	offsetSize := int((buf[0]>>6)&0x3) + 1
	size, err := readUint(buf, 1, offsetSize)
	if err != nil {
		return nil, err
	}
	// The header, the size field and size+1 offsets must all fit before
	// any entry can be resolved.
	if (size+2)*uint64(offsetSize)+1 > uint64(len(buf)) {
		return nil, malformed(1, ReasonSizeExceedsBuffer, "dictionary size %d does not fit in %d bytes", size, len(buf))
	}
	dictSize := int(size)
	return &Metadata{
		buf:         buf,
		offsetSize:  offsetSize,
		dictSize:    dictSize,
		stringStart: 1 + (dictSize+2)*offsetSize,
	}, nil
}

// Len returns the number of dictionary entries.
func (m *Metadata) Len() int {
	return m.dictSize
}

// Key returns the dictionary string with the given id.
func (m *Metadata) Key(id uint64) (string, error) {
	if id >= uint64(m.dictSize) {
		return "", malformed(1, ReasonFieldIDOutOfRange, "field id %d, dictionary size %d", id, m.dictSize)
	}
	i := int(id)
	offPos := 1 + (i+1)*m.offsetSize
	offset, err := readUint(m.buf, offPos, m.offsetSize)
	if err != nil {
		return "", err
	}
	next, err := readUint(m.buf, offPos+m.offsetSize, m.offsetSize)
	if err != nil {
		return "", err
	}
	if offset > next {
		return "", malformed(offPos, ReasonNonMonotonicOffsets, "entry %d spans [%d, %d)", id, offset, next)
	}
	if next > uint64(len(m.buf)) {
		return "", malformed(offPos+m.offsetSize, ReasonOutOfBounds, "entry %d ends at offset %d", id, next)
	}
	start := m.stringStart + int(offset)
	n := int(next - offset)
	if err := checkSpan(m.buf, start, n); err != nil {
		return "", err
	}
	b := m.buf[start : start+n]
	if !utf8.Valid(b) {
		return "", malformed(start, ReasonInvalidUTF8, "dictionary entry %d", id)
	}
	return string(b), nil
}

// dictionary parses its metadata buffer on first use, so values without
// objects never touch the metadata.
type dictionary struct {
	raw  []byte
	once sync.Once
	md   *Metadata
	err  error
}

func newDictionary(metadata []byte) *dictionary {
	return &dictionary{raw: metadata}
}

func (d *dictionary) key(id uint64) (string, error) {
	d.once.Do(func() {
		d.md, d.err = ParseMetadata(d.raw)
	})
	if d.err != nil {
		return "", d.err
	}
	return d.md.Key(id)
}
