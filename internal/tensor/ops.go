package tensor

// Add performs element-wise addition.
//
// Both tensors must have the same shape; there is no broadcasting. Elements
// are paired by logical index, so views (e.g. a transposed tensor) combine
// correctly with contiguous tensors at any rank. The result is a new
// row-major tensor and neither operand is modified.
//
// Example:
//
//	a := tensor.MustFromSlice([]int32{1, 2}, Shape{2})
//	b := tensor.MustFromSlice([]int32{2, 2}, Shape{2})
//	c, err := a.Add(b) // [3, 4]
func (t *Tensor[T]) Add(other *Tensor[T]) (*Tensor[T], error) {
	return t.zipWith("add", other, func(a, b T) T { return a + b })
}

// Sub performs element-wise subtraction with the same rules as Add.
func (t *Tensor[T]) Sub(other *Tensor[T]) (*Tensor[T], error) {
	return t.zipWith("sub", other, func(a, b T) T { return a - b })
}

// Mul performs element-wise (Hadamard) multiplication with the same rules as Add.
func (t *Tensor[T]) Mul(other *Tensor[T]) (*Tensor[T], error) {
	return t.zipWith("mul", other, func(a, b T) T { return a * b })
}

// AddScalar adds s to every element and returns a new tensor.
func (t *Tensor[T]) AddScalar(s T) *Tensor[T] {
	return t.mapValues(func(v T) T { return v + s })
}

// MulScalar multiplies every element by s and returns a new tensor.
func (t *Tensor[T]) MulScalar(s T) *Tensor[T] {
	return t.mapValues(func(v T) T { return v * s })
}

// AddScalarFrom adds a scalar of another numeric type, converted to T first.
// Conversion follows Go rules: a float scalar added to an integer tensor is truncated toward zero.
func AddScalarFrom[T, S Numeric](t *Tensor[T], s S) *Tensor[T] {
	return t.AddScalar(T(s))
}

// MulScalarFrom multiplies by a scalar of another numeric type, converted to T first.
func MulScalarFrom[T, S Numeric](t *Tensor[T], s S) *Tensor[T] {
	return t.MulScalar(T(s))
}

// Transpose reverses the order of all dimensions.
//
// The result shares storage with t: only the shape and strides are reversed,
// no element is moved. Writes through either tensor are visible in the other.
//
// Example:
//
//	t := tensor.MustFromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
//	tt := t.Transpose() // Shape: [3, 2], tt.At(2, 1) == t.At(1, 2)
func (t *Tensor[T]) Transpose() *Tensor[T] {
	return newView(t.shape.Reverse(), t.storage, t.stride.Reverse())
}

// T is a shortcut for Transpose.
func (t *Tensor[T]) T() *Tensor[T] {
	return t.Transpose()
}

// zipWith combines t and other position by position into a fresh tensor.
func (t *Tensor[T]) zipWith(op string, other *Tensor[T], f func(a, b T) T) (*Tensor[T], error) {
	if !t.shape.Equal(other.shape) {
		return nil, &ShapeMismatchError{
			Op:           op,
			Expected:     t.Shape(),
			Actual:       other.Shape(),
			ExpectedSize: t.NumElements(),
			ActualSize:   other.NumElements(),
		}
	}

	out := make([]T, t.NumElements())
	lhs, rhs := t.storage.data, other.storage.data
	walk(t.shape, []Strides{t.stride, other.stride}, func(pos int, offs []int) {
		out[pos] = f(lhs[offs[0]], rhs[offs[1]])
	})
	return newView(t.shape.Clone(), &storage[T]{data: out}, t.shape.ComputeStrides()), nil
}

// mapValues applies f to every element into a fresh row-major tensor.
func (t *Tensor[T]) mapValues(f func(v T) T) *Tensor[T] {
	out := make([]T, t.NumElements())
	src := t.storage.data
	walk(t.shape, []Strides{t.stride}, func(pos int, offs []int) {
		out[pos] = f(src[offs[0]])
	})
	return newView(t.shape.Clone(), &storage[T]{data: out}, t.shape.ComputeStrides())
}
