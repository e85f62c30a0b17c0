// Package codec converts tensors to and from portable documents and encodes
// named collections of them as msgpack or YAML.
//
// A document always stores values in logical row-major order, so views such
// as transposed tensors are materialized on the way out and come back as
// ordinary row-major tensors.
package codec

import (
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/stride/internal/tensor"
)

// Document is the portable form of a single tensor.
type Document struct {
	DType    string    `yaml:"dtype" msgpack:"dtype"`
	Shape    []int     `yaml:"shape,flow" msgpack:"shape"`
	Data     []float64 `yaml:"data,flow" msgpack:"data"`
	Checksum string    `yaml:"checksum,omitempty" msgpack:"checksum,omitempty"`
}

// FromTensor captures t as a Document with a checksum.
// Integer values that float64 cannot hold exactly are rejected.
func FromTensor[T tensor.Numeric](t *tensor.Tensor[T]) (Document, error) {
	values := t.Values()
	data := make([]float64, len(values))
	for i, v := range values {
		f := float64(v)
		if !isFloat[T]() && T(f) != v {
			return Document{}, errors.Wrapf(ErrNotRepresentable, "element %d (%v) does not fit in float64", i, v)
		}
		data[i] = f
	}

	return Document{
		DType:    t.DType().String(),
		Shape:    t.Shape(),
		Data:     data,
		Checksum: ComputeChecksum(data),
	}, nil
}

// ToTensor rebuilds a row-major tensor of T from d.
// The document dtype must name T, and integer element types only accept
// integral values in range.
func ToTensor[T tensor.Numeric](d Document) (*tensor.Tensor[T], error) {
	want := tensor.DataTypeOf[T]()
	if d.DType != want.String() {
		return nil, errors.Wrapf(ErrDTypeMismatch, "document has %q, want %q", d.DType, want)
	}
	if err := d.Verify(); err != nil {
		return nil, err
	}

	values := make([]T, len(d.Data))
	for i, f := range d.Data {
		v, err := Convert[T](f)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		values[i] = v
	}

	t, err := tensor.FromSlice(values, tensor.Shape(d.Shape))
	if err != nil {
		return nil, errors.Wrap(err, "rebuild tensor")
	}
	return t, nil
}

// Verify checks the dtype name, that the shape is valid and matches the
// number of values, and the checksum when present.
func (d Document) Verify() error {
	if _, err := tensor.ParseDataType(d.DType); err != nil {
		return errors.WithStack(err)
	}
	shape := tensor.Shape(d.Shape)
	if err := shape.Validate(); err != nil {
		return errors.WithStack(err)
	}
	if n := shape.NumElements(); n != len(d.Data) {
		return errors.WithStack(&tensor.ShapeMismatchError{
			Op:           "document",
			Expected:     shape.Clone(),
			ExpectedSize: n,
			ActualSize:   len(d.Data),
		})
	}
	if d.Checksum == "" {
		return nil
	}
	return ValidateChecksum(d.Data, d.Checksum)
}

// Convert returns f as a T. Integer element types only accept integral
// values inside their range; float types accept any value.
func Convert[T tensor.Numeric](f float64) (T, error) {
	if isFloat[T]() {
		return T(f), nil
	}
	dt := tensor.DataTypeOf[T]()
	lo, hi := integerRange(dt)
	if math.Trunc(f) != f || f < lo || f >= hi {
		return 0, errors.Wrapf(ErrNotRepresentable, "%v as %s", f, dt)
	}
	return T(f), nil
}

// integerRange returns the half-open interval [lo, hi) of an integer data type.
func integerRange(dt tensor.DataType) (lo, hi float64) {
	bits := dt.Size() * 8
	if dt == tensor.Uint8 {
		return 0, math.Ldexp(1, bits)
	}
	return -math.Ldexp(1, bits-1), math.Ldexp(1, bits-1)
}

func isFloat[T tensor.Numeric]() bool {
	switch tensor.DataTypeOf[T]() {
	case tensor.Float32, tensor.Float64:
		return true
	default:
		return false
	}
}
