package variant

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors matched with errors.Is. Every structural failure matches
// ErrMalformedVariant; depth failures additionally match ErrTooDeeplyNested.
var (
	ErrMalformedVariant = errors.New("malformed variant")
	ErrUnexpectedType   = errors.New("unexpected variant type")
	ErrTooDeeplyNested  = errors.New("variant too deeply nested")
)

// Reason classifies a MalformedError.
type Reason int

const (
	ReasonOutOfBounds Reason = iota + 1
	ReasonNonMonotonicOffsets
	ReasonFieldIDOutOfRange
	ReasonInvalidUTF8
	ReasonUnknownTypeInfo
	ReasonBasicTypeMismatch
	ReasonTooDeep
	ReasonSizeExceedsBuffer
	ReasonUnsortedKeys
)

func (r Reason) String() string {
	switch r {
	case ReasonOutOfBounds:
		return "out of bounds"
	case ReasonNonMonotonicOffsets:
		return "non-monotonic offsets"
	case ReasonFieldIDOutOfRange:
		return "field id out of range"
	case ReasonInvalidUTF8:
		return "invalid utf-8"
	case ReasonUnknownTypeInfo:
		return "unknown type info"
	case ReasonBasicTypeMismatch:
		return "basic type mismatch"
	case ReasonTooDeep:
		return "too deeply nested"
	case ReasonSizeExceedsBuffer:
		return "size exceeds buffer"
	case ReasonUnsortedKeys:
		return "unsorted or duplicate keys"
	}
	return "unknown"
}

// MalformedError reports a structural violation in a value or metadata
// buffer. Pos is the byte position where the violation was detected.
type MalformedError struct {
	Pos    int
	Reason Reason
	Detail string
}

func (e *MalformedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("malformed variant at position %d: %s", e.Pos, e.Reason)
	}
	return fmt.Sprintf("malformed variant at position %d: %s: %s", e.Pos, e.Reason, e.Detail)
}

// Is lets errors.Is match the package sentinels.
func (e *MalformedError) Is(target error) bool {
	if target == ErrMalformedVariant {
		return true
	}
	return target == ErrTooDeeplyNested && e.Reason == ReasonTooDeep
}

// UnexpectedTypeError is returned by an accessor invoked on a position
// whose kind differs from the one the accessor reads.
type UnexpectedTypeError struct {
	Pos      int
	Expected Kind
	Found    Kind
}

func (e *UnexpectedTypeError) Error() string {
	return fmt.Sprintf("unexpected variant type at position %d: expected %s, found %s", e.Pos, e.Expected, e.Found)
}

func (e *UnexpectedTypeError) Is(target error) bool {
	return target == ErrUnexpectedType
}

func malformed(pos int, reason Reason, format string, args ...interface{}) error {
	return &MalformedError{Pos: pos, Reason: reason, Detail: fmt.Sprintf(format, args...)}
}
