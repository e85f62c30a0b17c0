package tensor

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scalar Tests

func TestScalarAddition(t *testing.T) {
	a := MustFromSlice([]int{1, 2}, Shape{2})

	c := a.AddScalar(3)
	assert.Equal(t, 4, c.At(0))
	assert.Equal(t, 5, c.At(1))

	// Scalar of a different numeric type.
	cd := AddScalarFrom(a, 3.0)
	assert.Equal(t, []int{4, 5}, cd.Values())

	// Operand unmodified.
	assert.Equal(t, []int{1, 2}, a.Values())
}

func TestScalarMultiplication(t *testing.T) {
	a := MustFromSlice([]int{1, 2}, Shape{2})

	c := a.MulScalar(3)
	assert.Equal(t, 3, c.At(0))
	assert.Equal(t, 6, c.At(1))

	cd := MulScalarFrom(a, 3.0)
	assert.Equal(t, []int{3, 6}, cd.Values())
	assert.Equal(t, []int{1, 2}, a.Values())
}

func TestScalarOpsEveryPosition(t *testing.T) {
	data := []float64{-1.5, 0, 2, 3.25, 8, 13}
	x := MustFromSlice(data, Shape{3, 2})
	const c = 2.5

	sum := x.AddScalar(c).Values()
	prod := x.MulScalar(c).Values()
	for i, d := range data {
		assert.InDelta(t, d+c, sum[i], 1e-12, "AddScalar[%d]", i)
		assert.InDelta(t, d*c, prod[i], 1e-12, "MulScalar[%d]", i)
	}
}

func TestScalarFromTruncatesTowardZero(t *testing.T) {
	a := MustFromSlice([]int32{10, 20}, Shape{2})
	assert.Equal(t, []int32{12, 22}, AddScalarFrom(a, 2.9).Values())
	assert.Equal(t, []int32{-10, -20}, MulScalarFrom(a, int64(-1)).Values())
}

// Elementwise Tests

func TestTensorAddition(t *testing.T) {
	a := MustFromSlice([]int{1, 2}, Shape{2})
	b := MustFromSlice([]int{2, 2}, Shape{2})

	c, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, 3, c.At(0))
	assert.Equal(t, 4, c.At(1))
}

func TestHadamardProduct(t *testing.T) {
	a := MustFromSlice([]int{1, 2}, Shape{2})
	b := MustFromSlice([]int{2, 6}, Shape{2})

	c, err := a.Mul(b)
	require.NoError(t, err)
	assert.Equal(t, 2, c.At(0))
	assert.Equal(t, 12, c.At(1))
}

func TestTensorSub(t *testing.T) {
	a := MustFromSlice([]float32{5, 7, 9}, Shape{3})
	b := MustFromSlice([]float32{1, 2, 3}, Shape{3})

	c, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, []float32{4, 5, 6}, c.Values())
}

func TestElementwiseRank1(t *testing.T) {
	a := []int64{3, -1, 4, 1, -5, 9}
	b := []int64{2, 7, -1, 8, 2, -8}
	ta := MustFromSlice(a, Shape{len(a)})
	tb := MustFromSlice(b, Shape{len(b)})

	sum, err := ta.Add(tb)
	require.NoError(t, err)
	prod, err := ta.Mul(tb)
	require.NoError(t, err)

	for i := range a {
		assert.Equal(t, a[i]+b[i], sum.At(i), "sum[%d]", i)
		assert.Equal(t, a[i]*b[i], prod.At(i), "prod[%d]", i)
	}
}

func TestElementwiseHigherRank(t *testing.T) {
	// Both operands are read through the full logical index, so rank > 1 works.
	a := MustFromSlice([]int{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	b := MustFromSlice([]int{10, 20, 30, 40, 50, 60}, Shape{2, 3})

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, []int{11, 22, 33, 44, 55, 66}, sum.Values())

	prod, err := a.Mul(b)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, a.At(i, j)*b.At(i, j), prod.At(i, j))
		}
	}
}

func TestElementwiseWithView(t *testing.T) {
	a := MustFromSlice([]int{1, 2, 3, 4}, Shape{2, 2})
	at := a.Transpose() // logical [[1, 3], [2, 4]]

	sum, err := a.Add(at)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5, 5, 8}, sum.Values())
	assert.True(t, sum.IsContiguous())

	// View on the left as well.
	prod, err := at.Mul(a)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 6, 6, 16}, prod.Values())
}

func TestElementwiseShapeMismatch(t *testing.T) {
	tests := []struct {
		name string
		a, b Shape
	}{
		{"different extent", Shape{2}, Shape{3}},
		{"different rank", Shape{4}, Shape{2, 2}},
		{"transposed shape", Shape{2, 3}, Shape{3, 2}},
		{"rank zero vs one", Shape{}, Shape{1}},
	}

	ops := map[string]func(a, b *Tensor[float32]) (*Tensor[float32], error){
		"add": (*Tensor[float32]).Add,
		"sub": (*Tensor[float32]).Sub,
		"mul": (*Tensor[float32]).Mul,
	}

	for _, tt := range tests {
		for name, op := range ops {
			t.Run(fmt.Sprintf("%s/%s", tt.name, name), func(t *testing.T) {
				a := Zeros[float32](tt.a)
				b := Zeros[float32](tt.b)

				c, err := op(a, b)
				assert.Nil(t, c)
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrShapeMismatch))

				var mismatch *ShapeMismatchError
				require.True(t, errors.As(err, &mismatch))
				assert.Equal(t, name, mismatch.Op)
				assertEqualShape(t, tt.a, mismatch.Expected, "Expected")
				assertEqualShape(t, tt.b, mismatch.Actual, "Actual")
			})
		}
	}
}

func TestEndToEnd(t *testing.T) {
	a := MustFromSlice([]int32{1, 2}, Shape{2})

	assert.Equal(t, []int32{4, 5}, a.AddScalar(3).Values())
	assert.Equal(t, []int32{3, 6}, a.MulScalar(3).Values())

	sum, err := a.Add(MustFromSlice([]int32{2, 2}, Shape{2}))
	require.NoError(t, err)
	assert.Equal(t, []int32{3, 4}, sum.Values())

	prod, err := a.Mul(MustFromSlice([]int32{2, 6}, Shape{2}))
	require.NoError(t, err)
	assert.Equal(t, []int32{2, 12}, prod.Values())
}

// Transpose Tests

func TestTranspose2D(t *testing.T) {
	a := MustFromSlice([]int{1, 2, 3, 4}, Shape{2, 2})
	b := a.T()

	assert.Equal(t, 2, a.At(0, 1))
	assert.Equal(t, a.At(0, 1), b.At(1, 0))
}

func TestTransposeRectangular(t *testing.T) {
	const rows, cols = 3, 5
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = float64(i) * 1.5
	}
	a := MustFromSlice(data, Shape{rows, cols})
	b := a.Transpose()

	assertEqualShape(t, Shape{cols, rows}, b.Shape(), "Transpose shape")
	assert.Equal(t, Strides{1, cols}, b.Strides())
	assert.False(t, b.IsContiguous())

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			assert.Equal(t, a.At(i, j), b.At(j, i), "a[%d,%d]", i, j)
		}
	}
}

func TestTransposeReversesAllAxes(t *testing.T) {
	a := Zeros[int](Shape{2, 3, 4})
	b := a.Transpose()

	assertEqualShape(t, Shape{4, 3, 2}, b.Shape(), "Transpose shape")
	assert.Equal(t, Strides{1, 4, 12}, b.Strides())

	require.NoError(t, a.Set(42, 1, 2, 3))
	assert.Equal(t, 42, b.At(3, 2, 1))

	// Transposing twice restores the original layout over the same storage.
	bb := b.Transpose()
	assert.True(t, bb.IsContiguous())
	assert.True(t, bb.SharesStorage(a))
	assert.Equal(t, a.Values(), bb.Values())
}

func TestTransposeDoesNotCopy(t *testing.T) {
	a := MustFromSlice([]int{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	b := a.Transpose()

	assert.True(t, b.SharesStorage(a))
	assert.True(t, a.SharesStorage(b))

	// Write through the view, read through the original.
	require.NoError(t, b.Set(60, 2, 1))
	assert.Equal(t, 60, a.At(1, 2))

	// And the other way around.
	require.NoError(t, a.Set(10, 0, 0))
	assert.Equal(t, 10, b.At(0, 0))
	require.NoError(t, a.Set(20, 0, 1))
	assert.Equal(t, 20, b.At(1, 0))
}

func TestTransposeLowRank(t *testing.T) {
	v := MustFromSlice([]int{1, 2, 3}, Shape{3})
	vt := v.Transpose()
	assertEqualShape(t, Shape{3}, vt.Shape(), "rank-1 Transpose")
	assert.Equal(t, v.Values(), vt.Values())

	s := Full(Shape{}, 5)
	st := s.Transpose()
	assert.Equal(t, 0, st.Rank())
	assert.Equal(t, Strides{0}, st.Strides())
	assert.Equal(t, 5, st.At())
}

func TestOpsDoNotAliasOperands(t *testing.T) {
	a := MustFromSlice([]int{1, 2}, Shape{2})
	b := MustFromSlice([]int{3, 4}, Shape{2})

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.False(t, sum.SharesStorage(a))
	assert.False(t, sum.SharesStorage(b))
	assert.False(t, a.AddScalar(1).SharesStorage(a))
}
