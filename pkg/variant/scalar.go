package variant

import (
	"math"
	"unicode/utf8"

	"gopkg.in/inf.v0"
)

const u32Size = 4

// expectKind reads the header at pos and fails with UnexpectedTypeError
// unless it resolves to want.
func expectKind(buf []byte, pos int, want Kind) (BasicType, uint8, error) {
	bt, ti, err := typeInfoAt(buf, pos)
	if err != nil {
		return 0, 0, err
	}
	found, ok := kindOf(bt, ti)
	if !ok {
		return 0, 0, malformed(pos, ReasonUnknownTypeInfo, "primitive type info %d", ti)
	}
	if found != want {
		return 0, 0, &UnexpectedTypeError{Pos: pos, Expected: want, Found: found}
	}
	return bt, ti, nil
}

func decodeBool(buf []byte, pos int) (bool, error) {
	_, ti, err := expectKind(buf, pos, KindBool)
	if err != nil {
		return false, err
	}
	return ti == PrimitiveTrue, nil
}

func decodeInt(buf []byte, pos int) (int64, error) {
	_, ti, err := expectKind(buf, pos, KindInt)
	if err != nil {
		return 0, err
	}
	var width int
	switch ti {
	case PrimitiveInt1:
		width = 1
	case PrimitiveInt2:
		width = 2
	case PrimitiveInt4:
		width = 4
	case PrimitiveInt8:
		width = 8
	}
	return readInt(buf, pos+1, width)
}

func decodeString(buf []byte, pos int) (string, error) {
	bt, ti, err := expectKind(buf, pos, KindString)
	if err != nil {
		return "", err
	}
	start, n := pos+1, int(ti)
	if bt == BasicPrimitive {
		size, err := readUint(buf, pos+1, u32Size)
		if err != nil {
			return "", err
		}
		if size > uint64(len(buf)) {
			return "", malformed(pos+1, ReasonSizeExceedsBuffer, "string length %d", size)
		}
		start, n = pos+1+u32Size, int(size)
	}
	if err := checkSpan(buf, start, n); err != nil {
		return "", err
	}
	b := buf[start : start+n]
	if !utf8.Valid(b) {
		return "", malformed(start, ReasonInvalidUTF8, "string of %d bytes", n)
	}
	return string(b), nil
}

func decodeDouble(buf []byte, pos int) (float64, error) {
	if _, _, err := expectKind(buf, pos, KindDouble); err != nil {
		return 0, err
	}
	bits, err := readUint(buf, pos+1, 8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

func decodeDecimal(buf []byte, pos int) (*inf.Dec, error) {
	_, ti, err := expectKind(buf, pos, KindDecimal)
	if err != nil {
		return nil, err
	}
	scale, err := readUint(buf, pos+1, 1)
	if err != nil {
		return nil, err
	}
	switch ti {
	case PrimitiveDecimal4, PrimitiveDecimal8:
		width := 4
		if ti == PrimitiveDecimal8 {
			width = 8
		}
		unscaled, err := readInt(buf, pos+2, width)
		if err != nil {
			return nil, err
		}
		return inf.NewDec(unscaled, inf.Scale(scale)), nil
	default:
		unscaled, err := readBigInt(buf, pos+2, 16)
		if err != nil {
			return nil, err
		}
		return inf.NewDecBig(unscaled, inf.Scale(scale)), nil
	}
}
