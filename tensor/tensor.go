// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/stride/internal/tensor"
)

// Type aliases for public API

// Numeric is a constraint for tensor element types.
// Supported types: int, int32, int64, uint8, float32, float64.
type Numeric = tensor.Numeric

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Int     DataType = tensor.Int
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Strides holds the per-dimension storage step of a tensor.
type Strides = tensor.Strides

// Tensor is a dense strided N-dimensional array.
//
// Example:
//
//	x := tensor.MustFromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	y := x.Transpose()    // zero-copy view
//	z, err := x.Add(y)    // element-wise addition
type Tensor[T Numeric] = tensor.Tensor[T]

// Error types.
type (
	// ShapeMismatchError reports a size or shape precondition violation.
	ShapeMismatchError = tensor.ShapeMismatchError
	// IndexError reports an index outside the tensor.
	IndexError = tensor.IndexError
)

// Sentinel errors, for use with errors.Is.
var (
	ErrShapeMismatch   = tensor.ErrShapeMismatch
	ErrIndexOutOfRange = tensor.ErrIndexOutOfRange
	ErrInvalidShape    = tensor.ErrInvalidShape
)

// Creation functions

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	x := tensor.Zeros[float32](tensor.Shape{2, 3})
func Zeros[T Numeric](shape Shape) *Tensor[T] {
	return tensor.Zeros[T](shape)
}

// Full creates a tensor filled with a specific value.
func Full[T Numeric](shape Shape, value T) *Tensor[T] {
	return tensor.Full(shape, value)
}

// FromSlice creates a tensor from a Go slice.
//
// Example:
//
//	data := []float32{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3})
func FromSlice[T Numeric](data []T, shape Shape) (*Tensor[T], error) {
	return tensor.FromSlice(data, shape)
}

// MustFromSlice is like FromSlice but panics on error.
func MustFromSlice[T Numeric](data []T, shape Shape) *Tensor[T] {
	return tensor.MustFromSlice(data, shape)
}

// NewWithStrides creates a tensor over data with explicit strides.
//
// This is a low-level function: data is aliased and strides are not validated.
// Whole-tensor operations panic if the strides leave data.
// Most users should use Zeros or FromSlice instead.
func NewWithStrides[T Numeric](shape Shape, data []T, strides Strides) *Tensor[T] {
	return tensor.NewWithStrides(shape, data, strides)
}

// Scalar functions

// AddScalarFrom adds a scalar of any numeric type, converted to T.
func AddScalarFrom[T, S Numeric](t *Tensor[T], s S) *Tensor[T] {
	return tensor.AddScalarFrom(t, s)
}

// MulScalarFrom multiplies by a scalar of any numeric type, converted to T.
func MulScalarFrom[T, S Numeric](t *Tensor[T], s S) *Tensor[T] {
	return tensor.MulScalarFrom(t, s)
}

// Utility functions

// ParseDataType parses a data type name such as "float32".
func ParseDataType(name string) (DataType, error) {
	return tensor.ParseDataType(name)
}

// DataTypeOf returns the runtime data type of T.
func DataTypeOf[T Numeric]() DataType {
	return tensor.DataTypeOf[T]()
}
