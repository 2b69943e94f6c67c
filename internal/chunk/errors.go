package chunk

import (
	"errors"
	"fmt"
)

// Failure kinds. Every error returned by the parser matches exactly one of
// these through errors.Is, except I/O failures which are reported as *IOError.
var (
	ErrInvalidSignature      = errors.New("invalid PNG signature")
	ErrInvalidChunkLength    = errors.New("invalid chunk length")
	ErrInvalidChunkOrder     = errors.New("chunk out of order")
	ErrDuplicateChunk        = errors.New("chunk must appear only once")
	ErrMissingRequiredChunk  = errors.New("required chunk is missing")
	ErrInvalidFieldValue     = errors.New("field contains an out of range value")
	ErrNonConsecutiveData    = errors.New("IDAT chunks are not consecutive")
	ErrMissingNullTerminator = errors.New("missing null terminator for character string")
	ErrInvalidStringLength   = errors.New("keyword must be 1-79 bytes long")
	ErrChecksumMismatch      = errors.New("checksum mismatch")
)

// Error ties a failure kind to the chunk it was detected in.
type Error struct {
	ID    ID     // The chunk type being decoded.
	Field string // Optional field name, set for ErrInvalidFieldValue.
	Err   error  // One of the Err* sentinels.
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s chunk: %s: %v", e.ID, e.Field, e.Err)
	}
	return fmt.Sprintf("%s chunk: %v", e.ID, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf is shorthand for building an *Error.
func Errorf(id ID, err error) error {
	return &Error{ID: id, Err: err}
}

// InvalidField reports an out of range value in the named field.
func InvalidField(id ID, field string) error {
	return &Error{ID: id, Field: field, Err: ErrInvalidFieldValue}
}

// IOError wraps a failure of the underlying byte source.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("IO error: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
