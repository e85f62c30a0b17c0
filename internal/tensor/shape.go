package tensor

import (
	"fmt"
	"math/bits"
)

// Shape represents the extent of a tensor along each dimension.
type Shape []int

// Strides holds, per dimension, how many storage elements to skip when the
// index along that dimension grows by one.
type Strides []int

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// NumElements returns the total number of elements in the tensor.
// Panics if the product overflows int; use checkedNumElements to get an error instead.
func (s Shape) NumElements() int {
	n, err := s.checkedNumElements()
	if err != nil {
		panic(err)
	}
	return n
}

// checkedNumElements returns the product of all extents.
// The empty product is 1, so a rank-0 shape describes a single element.
func (s Shape) checkedNumElements() (int, error) {
	n := 1
	for i, dim := range s {
		if dim < 0 {
			return 0, fmt.Errorf("%w: dimension %d has negative extent %d", ErrInvalidShape, i, dim)
		}
		hi, lo := bits.Mul64(uint64(n), uint64(dim)) //nolint:gosec // G115: both operands are non-negative.
		if hi != 0 || lo > uint64(maxInt) {
			return 0, fmt.Errorf("%w: element count of %v overflows int", ErrInvalidShape, s)
		}
		n = int(lo) //nolint:gosec // G115: bounded by maxInt above.
	}
	return n, nil
}

// Validate checks that every extent is non-negative and that the element
// count fits in an int. Zero extents are legal and describe an empty tensor.
func (s Shape) Validate() error {
	_, err := s.checkedNumElements()
	return err
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// Reverse returns a copy of the shape with the dimension order reversed.
func (s Shape) Reverse() Shape {
	r := make(Shape, len(s))
	for i, dim := range s {
		r[len(s)-1-i] = dim
	}
	return r
}

// ComputeStrides calculates row-major strides for the shape.
// stride[last] = 1 and stride[i] = stride[i+1] * shape[i+1].
//
// A rank-0 shape yields the single sentinel stride {0}: there is no
// addressable dimension, but an index of {0} still resolves to offset 0.
func (s Shape) ComputeStrides() Strides {
	if len(s) == 0 {
		return Strides{0}
	}

	strides := make(Strides, len(s))
	strides[len(s)-1] = 1
	for i := len(s) - 1; i > 0; i-- {
		strides[i-1] = strides[i] * s[i]
	}
	return strides
}

// Clone returns a copy of the strides.
func (st Strides) Clone() Strides {
	clone := make(Strides, len(st))
	copy(clone, st)
	return clone
}

// Reverse returns a copy of the strides in reverse order.
func (st Strides) Reverse() Strides {
	r := make(Strides, len(st))
	for i, v := range st {
		r[len(st)-1-i] = v
	}
	return r
}

// Equal checks if two stride sequences are equal.
func (st Strides) Equal(other Strides) bool {
	if len(st) != len(other) {
		return false
	}
	for i := range st {
		if st[i] != other[i] {
			return false
		}
	}
	return true
}

const maxInt = int(^uint(0) >> 1)
