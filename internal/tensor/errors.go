package tensor

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrShapeMismatch   = errors.New("shape mismatch")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidShape    = errors.New("invalid shape")
)

// ShapeMismatchError describes a violated size or shape precondition.
// Construction failures fill the sizes; operand mismatches fill the shapes.
type ShapeMismatchError struct {
	Op           string // Operation that detected the mismatch (e.g., "from_slice", "add")
	Expected     Shape  // Shape the operation required
	Actual       Shape  // Shape it was given (nil for construction)
	ExpectedSize int    // Element count inferred from Expected
	ActualSize   int    // Element count actually supplied
}

// Error implements the error interface.
func (e *ShapeMismatchError) Error() string {
	if e.Actual == nil {
		return fmt.Sprintf("%s: total size of data does not match shape %v: data size %d, size inferred from shape %d",
			e.Op, e.Expected, e.ActualSize, e.ExpectedSize)
	}
	return fmt.Sprintf("%s: operand shapes differ: %v (rank %d) vs %v (rank %d)",
		e.Op, e.Expected, len(e.Expected), e.Actual, len(e.Actual))
}

// Unwrap lets errors.Is match ErrShapeMismatch.
func (e *ShapeMismatchError) Unwrap() error {
	return ErrShapeMismatch
}

// IndexError reports an index component outside its dimension, or an index
// with more components than the tensor has dimensions.
type IndexError struct {
	Index  []int // The offending index
	Dim    int   // Dimension that failed the check
	Extent int   // Extent of that dimension (-1 when Dim exceeds the rank)
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	if e.Extent < 0 {
		return fmt.Sprintf("index %v has %d components, tensor rank is %d", e.Index, len(e.Index), e.Dim)
	}
	return fmt.Sprintf("index %v: component %d is %d, out of bounds for extent %d",
		e.Index, e.Dim, e.Index[e.Dim], e.Extent)
}

// Unwrap lets errors.Is match ErrIndexOutOfRange.
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
