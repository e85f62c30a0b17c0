package codec

import (
	"fmt"

	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrChecksumMismatch   = errors.New("checksum mismatch: document may be corrupted")
	ErrUnsupportedVersion = errors.New("unsupported bundle version")
	ErrDTypeMismatch      = errors.New("document dtype does not match requested element type")
	ErrNotRepresentable   = errors.New("value not representable in element type")
	ErrUnknownFormat      = errors.New("unknown encoding format")
)

// DocumentError ties a decoding failure to the tensor it concerns.
type DocumentError struct {
	Name string // Tensor name inside the bundle
	Err  error
}

// Error implements the error interface.
func (e *DocumentError) Error() string {
	return fmt.Sprintf("tensor %q: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *DocumentError) Unwrap() error {
	return e.Err
}
