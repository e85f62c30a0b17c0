// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides a dense strided N-dimensional array.
//
// # Overview
//
// A Tensor[T] is a flat buffer plus a shape and a stride per dimension.
// The element at a logical index lives at storage offset
//
//	offset = index[0]*stride[0] + index[1]*stride[1] + ...
//
// Tensors built from a shape use row-major strides: the last dimension has
// stride 1 and every earlier stride is the product of the extents after it.
//
// # Basic Usage
//
//	import "github.com/born-ml/stride/tensor"
//
//	func main() {
//	    a := tensor.MustFromSlice([]int32{1, 2}, tensor.Shape{2})
//	    b := tensor.MustFromSlice([]int32{2, 6}, tensor.Shape{2})
//
//	    c, err := a.Add(b)      // [3, 8]
//	    d, err := a.Mul(b)      // [2, 12]
//	    e := a.AddScalar(3)     // [4, 5]
//	    f := tensor.MulScalarFrom(a, 3.0) // [3, 6]
//	}
//
// # Transpose and Views
//
// Transpose reverses both the shape and the strides and keeps the storage.
// No element is copied, and writes through the view are visible in the
// original:
//
//	m := tensor.MustFromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	mt := m.Transpose()
//	_ = mt.Set(9, 1, 0)
//	m.At(0, 1) // 9
//
// Storage is released by the garbage collector once the last tensor using it
// is gone. Tensors are not synchronized: concurrent writers to a tensor or any
// of its views must coordinate externally.
//
// # Errors
//
// Size and shape violations return a *ShapeMismatchError (errors.Is
// ErrShapeMismatch). There is no broadcasting: element-wise operands must have
// identical shapes. Out-of-range indices return an *IndexError (errors.Is
// ErrIndexOutOfRange); At panics with the same error.
//
// # Rank 0
//
// A tensor with an empty shape holds exactly one element. Its strides are the
// sentinel {0}, so it can be indexed with no components or with the single
// index {0}.
package tensor
