package tensor

import (
	"fmt"
	"unsafe"
)

// storage is the flat element buffer behind one or more tensors.
// Views such as Transpose hold the same *storage, so writes through any of
// them are visible through all of them. The buffer is released by the garbage
// collector once the last tensor referencing it is unreachable.
type storage[T Numeric] struct {
	data []T
}

// Tensor is a dense N-dimensional array of T.
//
// A logical index maps to a storage offset through the strides:
// offset = sum(index[i] * stride[i]). Shape and strides never change after
// construction; only element values can be written.
//
// Tensors are not safe for concurrent mutation. Callers sharing a tensor (or
// any of its views) across goroutines must synchronize writes themselves.
//
// Example:
//
//	t := tensor.MustFromSlice([]int64{1, 2, 3, 4}, tensor.Shape{2, 2})
//	v := t.At(0, 1)       // 2
//	tt := t.Transpose()   // shares storage with t
//	_ = tt.At(1, 0)       // 2
type Tensor[T Numeric] struct {
	storage *storage[T]
	shape   Shape
	stride  Strides
}

// newView builds a tensor over an existing storage without copying or validating anything.
func newView[T Numeric](shape Shape, st *storage[T], stride Strides) *Tensor[T] {
	return &Tensor[T]{
		storage: st,
		shape:   shape,
		stride:  stride,
	}
}

// Zeros creates a row-major tensor filled with zeros.
// Panics if the shape has a negative extent or its element count overflows int.
//
// Example:
//
//	t := tensor.Zeros[float32](Shape{3, 4})
func Zeros[T Numeric](shape Shape) *Tensor[T] {
	n, err := shape.checkedNumElements()
	if err != nil {
		panic(err)
	}
	return newView(shape.Clone(), &storage[T]{data: make([]T, n)}, shape.ComputeStrides())
}

// Full creates a row-major tensor filled with value.
func Full[T Numeric](shape Shape, value T) *Tensor[T] {
	t := Zeros[T](shape)
	for i := range t.storage.data {
		t.storage.data[i] = value
	}
	return t
}

// FromSlice creates a row-major tensor from a Go slice.
// The slice is copied into the tensor's memory.
//
// len(data) must equal shape.NumElements(); otherwise a *ShapeMismatchError
// carrying both sizes is returned and no tensor is built.
func FromSlice[T Numeric](data []T, shape Shape) (*Tensor[T], error) {
	n, err := shape.checkedNumElements()
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, &ShapeMismatchError{
			Op:           "from_slice",
			Expected:     shape.Clone(),
			ExpectedSize: n,
			ActualSize:   len(data),
		}
	}

	buf := make([]T, n)
	copy(buf, data)
	return newView(shape.Clone(), &storage[T]{data: buf}, shape.ComputeStrides()), nil
}

// MustFromSlice is like FromSlice but panics on error.
func MustFromSlice[T Numeric](data []T, shape Shape) *Tensor[T] {
	t, err := FromSlice(data, shape)
	if err != nil {
		panic(err)
	}
	return t
}

// NewWithStrides creates a tensor from an explicit shape, buffer and strides.
//
// This is a low-level escape hatch for building views. The buffer is aliased,
// not copied, and the strides are taken verbatim: nothing checks that they are
// consistent with the shape or stay inside data. Get, Set and Offset report
// such a layout as ErrIndexOutOfRange, but whole-tensor operations such as
// Values or Add panic on it.
// Most callers want FromSlice.
func NewWithStrides[T Numeric](shape Shape, data []T, strides Strides) *Tensor[T] {
	return newView(shape.Clone(), &storage[T]{data: data}, strides.Clone())
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor[T]) Shape() Shape {
	return t.shape.Clone()
}

// Strides returns a copy of the tensor's strides.
// A rank-0 tensor reports the sentinel {0}.
func (t *Tensor[T]) Strides() Strides {
	return t.stride.Clone()
}

// Rank returns the number of dimensions.
func (t *Tensor[T]) Rank() int {
	return len(t.shape)
}

// NumElements returns the number of logical elements.
func (t *Tensor[T]) NumElements() int {
	return t.shape.NumElements()
}

// DType returns the tensor's data type.
func (t *Tensor[T]) DType() DataType {
	return DataTypeOf[T]()
}

// Data returns the underlying storage in storage order (zero-copy).
// For a view this is the whole shared buffer, not the logical element order;
// use Values for that.
//
// WARNING: Modifications to the returned slice modify every tensor sharing the storage.
func (t *Tensor[T]) Data() []T {
	return t.storage.data
}

// Values returns a copy of the elements in logical row-major order.
func (t *Tensor[T]) Values() []T {
	out := make([]T, t.NumElements())
	src := t.storage.data
	walk(t.shape, []Strides{t.stride}, func(pos int, offs []int) {
		out[pos] = src[offs[0]]
	})
	return out
}

// IsContiguous reports whether the strides are the row-major strides of the shape.
func (t *Tensor[T]) IsContiguous() bool {
	return t.stride.Equal(t.shape.ComputeStrides())
}

// SharesStorage reports whether t and other read and write the same buffer.
func (t *Tensor[T]) SharesStorage(other *Tensor[T]) bool {
	if t.storage == other.storage {
		return true
	}
	a, b := t.storage.data, other.storage.data
	return cap(a) > 0 && cap(b) > 0 && unsafe.SliceData(a) == unsafe.SliceData(b)
}

// Offset computes the storage offset of an index.
//
// The index may be shorter than the rank; missing trailing components are
// treated as 0, so Offset(i) addresses the first element of the i-th
// sub-block along dimension 0. Each component is checked against its extent.
func (t *Tensor[T]) Offset(indices ...int) (int, error) {
	if len(indices) > len(t.stride) {
		return 0, &IndexError{Index: append([]int(nil), indices...), Dim: t.Rank(), Extent: -1}
	}

	offset := 0
	for i, idx := range indices {
		extent := t.extent(i)
		if idx < 0 || idx >= extent {
			return 0, &IndexError{Index: append([]int(nil), indices...), Dim: i, Extent: extent}
		}
		offset += idx * t.stride[i]
	}

	if offset < 0 || offset >= len(t.storage.data) {
		return 0, fmt.Errorf("%w: index %v maps to offset %d outside storage of %d elements",
			ErrIndexOutOfRange, indices, offset, len(t.storage.data))
	}
	return offset, nil
}

// extent returns the extent of dimension i. The rank-0 stride sentinel
// behaves as a dimension of extent 1.
func (t *Tensor[T]) extent(i int) int {
	if i < len(t.shape) {
		return t.shape[i]
	}
	return 1
}

// Get returns the element at the given (possibly partial) index.
func (t *Tensor[T]) Get(indices ...int) (T, error) {
	offset, err := t.Offset(indices...)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.storage.data[offset], nil
}

// At returns the element at the given indices.
// Panics if the index is out of bounds.
//
// Example:
//
//	t := tensor.Zeros[float32](Shape{3, 4})
//	value := t.At(1, 2) // Row 1, column 2
func (t *Tensor[T]) At(indices ...int) T {
	v, err := t.Get(indices...)
	if err != nil {
		panic(err)
	}
	return v
}

// Set writes value at the given (possibly partial) index.
// The write is visible through every tensor sharing the storage.
func (t *Tensor[T]) Set(value T, indices ...int) error {
	offset, err := t.Offset(indices...)
	if err != nil {
		return err
	}
	t.storage.data[offset] = value
	return nil
}

// Clone creates a deep copy of the tensor with row-major strides.
// Views are materialized in logical order.
func (t *Tensor[T]) Clone() *Tensor[T] {
	return newView(t.shape.Clone(), &storage[T]{data: t.Values()}, t.shape.ComputeStrides())
}

// String returns a human-readable representation of the tensor.
func (t *Tensor[T]) String() string {
	return fmt.Sprintf("Tensor[%s]%v", t.DType(), []int(t.shape))
}

// walk visits every logical position of shape in row-major order and hands
// fn the storage offset of that position under each stride set.
// The offsets slice is reused between calls.
func walk(shape Shape, strides []Strides, fn func(pos int, offs []int)) {
	n := shape.NumElements()
	if n == 0 {
		return
	}

	idx := make([]int, len(shape))
	offs := make([]int, len(strides))
	for pos := 0; pos < n; pos++ {
		fn(pos, offs)
		for d := len(shape) - 1; d >= 0; d-- {
			idx[d]++
			for k, st := range strides {
				offs[k] += st[d]
			}
			if idx[d] < shape[d] {
				break
			}
			for k, st := range strides {
				offs[k] -= st[d] * shape[d]
			}
			idx[d] = 0
		}
	}
}
