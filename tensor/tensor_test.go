// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"errors"
	"testing"

	"github.com/born-ml/stride/tensor"
)

// TestPublicConstruction verifies the creation wrappers.
func TestPublicConstruction(t *testing.T) {
	z := tensor.Zeros[float32](tensor.Shape{2, 3})
	if !z.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", z.Shape())
	}
	if z.DType() != tensor.Float32 {
		t.Errorf("DType() = %v, want Float32", z.DType())
	}

	x, err := tensor.FromSlice([]int64{1, 2, 3, 4}, tensor.Shape{2, 2})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	if got := x.At(1, 0); got != 3 {
		t.Errorf("At(1, 0) = %d, want 3", got)
	}

	f := tensor.Full(tensor.Shape{3}, uint8(7))
	for i, v := range f.Values() {
		if v != 7 {
			t.Errorf("Full[%d] = %d, want 7", i, v)
		}
	}
}

// TestPublicErrors verifies sentinel errors survive the re-export.
func TestPublicErrors(t *testing.T) {
	_, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{2})
	if !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Fatalf("FromSlice error = %v, want ErrShapeMismatch", err)
	}
	var mismatch *tensor.ShapeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("FromSlice error is %T, want *ShapeMismatchError", err)
	}

	x := tensor.Zeros[int](tensor.Shape{2})
	_, err = x.Get(5)
	if !errors.Is(err, tensor.ErrIndexOutOfRange) {
		t.Errorf("Get(5) error = %v, want ErrIndexOutOfRange", err)
	}

	if err := (tensor.Shape{-1}).Validate(); !errors.Is(err, tensor.ErrInvalidShape) {
		t.Errorf("Validate() = %v, want ErrInvalidShape", err)
	}
}

// TestPublicScalarFrom verifies cross-type scalar arithmetic.
func TestPublicScalarFrom(t *testing.T) {
	a := tensor.MustFromSlice([]int{1, 2}, tensor.Shape{2})

	sum := tensor.AddScalarFrom(a, 3.0).Values()
	if sum[0] != 4 || sum[1] != 5 {
		t.Errorf("AddScalarFrom = %v, want [4 5]", sum)
	}

	prod := tensor.MulScalarFrom(a, 3.0).Values()
	if prod[0] != 3 || prod[1] != 6 {
		t.Errorf("MulScalarFrom = %v, want [3 6]", prod)
	}
}

// TestPublicNewWithStrides builds a transpose by hand and checks it matches Transpose.
func TestPublicNewWithStrides(t *testing.T) {
	data := []float32{1, 2, 3, 4, 5, 6}
	x := tensor.MustFromSlice(data, tensor.Shape{2, 3})

	manual := tensor.NewWithStrides(tensor.Shape{3, 2}, x.Data(), tensor.Strides{1, 3})
	auto := x.Transpose()

	if !manual.SharesStorage(x) {
		t.Error("NewWithStrides over x.Data() should share storage with x")
	}
	got, want := manual.Values(), auto.Values()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Values()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParseDataType(t *testing.T) {
	dt, err := tensor.ParseDataType("int32")
	if err != nil || dt != tensor.Int32 {
		t.Errorf("ParseDataType(int32) = %v, %v", dt, err)
	}
	if tensor.DataTypeOf[float64]() != tensor.Float64 {
		t.Error("DataTypeOf[float64]() != Float64")
	}
}
