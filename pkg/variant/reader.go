package variant

import (
	"math/big"
)

// checkSpan is the only bounds check in the package: it fails unless
// buf[pos:pos+n] lies inside buf. Zero-length spans may sit at len(buf).
func checkSpan(buf []byte, pos, n int) error {
	if pos < 0 || n < 0 || pos > len(buf) || n > len(buf)-pos {
		return malformed(pos, ReasonOutOfBounds, "read of %d bytes outside buffer of length %d", n, len(buf))
	}
	return nil
}

// checkIndex fails unless pos addresses a byte of buf.
func checkIndex(buf []byte, pos int) error {
	return checkSpan(buf, pos, 1)
}

// readUint reads a little-endian unsigned integer of width 1..8 bytes.
func readUint(buf []byte, pos, width int) (uint64, error) {
	if width < 1 || width > 8 {
		return 0, malformed(pos, ReasonOutOfBounds, "unsupported integer width %d", width)
	}
	if err := checkSpan(buf, pos, width); err != nil {
		return 0, err
	}
	var v uint64
	for i := width - 1; i >= 0; i-- {
		v = v<<8 | uint64(buf[pos+i])
	}
	return v, nil
}

// readInt reads a little-endian two's-complement integer of width 1..8 bytes.
func readInt(buf []byte, pos, width int) (int64, error) {
	u, err := readUint(buf, pos, width)
	if err != nil {
		return 0, err
	}
	shift := uint(64 - 8*width)
	return int64(u<<shift) >> shift, nil
}

// readBigInt reads a little-endian two's-complement integer of any width.
// It backs the 16-byte decimal payload.
func readBigInt(buf []byte, pos, width int) (*big.Int, error) {
	if width < 1 {
		return nil, malformed(pos, ReasonOutOfBounds, "unsupported integer width %d", width)
	}
	if err := checkSpan(buf, pos, width); err != nil {
		return nil, err
	}
	be := make([]byte, width)
	for i := 0; i < width; i++ {
		be[width-1-i] = buf[pos+i]
	}
	n := new(big.Int).SetBytes(be)
	if be[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(8*width)))
	}
	return n, nil
}
