package worksheet

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/born-ml/stride/internal/codec"
	"github.com/born-ml/stride/internal/tensor"
)

// Result holds every tensor bound while running a worksheet.
type Result[T tensor.Numeric] struct {
	Tensors map[string]*tensor.Tensor[T]
	Outputs []string // Names to report, in order
}

// Output is the element-type-independent view of one reported tensor.
type Output struct {
	Name       string
	Strides    []int
	Contiguous bool
	Document   codec.Document
}

// Run evaluates ws with element type T.
// The worksheet dtype, when set, must name T. Evaluation stops at the first
// failing step; the error names the step.
func Run[T tensor.Numeric](ws *Worksheet, log logrus.FieldLogger) (*Result[T], error) {
	if err := ws.Validate(); err != nil {
		return nil, err
	}
	dt, err := ws.ElementType()
	if err != nil {
		return nil, err
	}
	if want := tensor.DataTypeOf[T](); dt != want {
		return nil, errors.Errorf("worksheet dtype is %s, evaluator runs %s", dt, want)
	}

	res := &Result[T]{Tensors: make(map[string]*tensor.Tensor[T])}

	for _, name := range ws.inputNames() {
		x, err := buildInput[T](ws.Tensors[name], dt)
		if err != nil {
			logShapeMismatch(log.WithField("tensor", name), err)
			return nil, errors.Wrapf(err, "input %q", name)
		}
		res.Tensors[name] = x
		log.WithFields(logrus.Fields{
			"tensor": name,
			"shape":  x.Shape(),
		}).Debug("Loaded input")
	}

	for i, s := range ws.Steps {
		stepLog := log.WithFields(logrus.Fields{"step": i, "op": s.Op, "name": s.Name})

		x, err := apply(res.Tensors, s)
		if err != nil {
			logShapeMismatch(stepLog, err)
			return nil, errors.Wrapf(err, "step %d (%s)", i, s.Op)
		}
		if s.Name != "" {
			res.Tensors[s.Name] = x
		}
		stepLog.WithFields(logrus.Fields{
			"shape":   x.Shape(),
			"strides": x.Strides(),
		}).Debug("Evaluated step")
	}

	res.Outputs = ws.Outputs
	if len(res.Outputs) == 0 {
		res.Outputs = ws.defaultOutputs()
	}
	return res, nil
}

// Eval runs ws with the element type it declares and returns its outputs.
func Eval(ws *Worksheet, log logrus.FieldLogger) ([]Output, error) {
	dt, err := ws.ElementType()
	if err != nil {
		return nil, err
	}

	switch dt {
	case tensor.Float32:
		return runAndCollect[float32](ws, log)
	case tensor.Float64:
		return runAndCollect[float64](ws, log)
	case tensor.Int32:
		return runAndCollect[int32](ws, log)
	case tensor.Int64:
		return runAndCollect[int64](ws, log)
	case tensor.Uint8:
		return runAndCollect[uint8](ws, log)
	case tensor.Int:
		return runAndCollect[int](ws, log)
	default:
		return nil, errors.Errorf("unsupported dtype %s", dt)
	}
}

func runAndCollect[T tensor.Numeric](ws *Worksheet, log logrus.FieldLogger) ([]Output, error) {
	res, err := Run[T](ws, log)
	if err != nil {
		return nil, err
	}
	return res.Collect()
}

// Collect converts the reported tensors into documents.
func (r *Result[T]) Collect() ([]Output, error) {
	outs := make([]Output, 0, len(r.Outputs))
	for _, name := range r.Outputs {
		x, ok := r.Tensors[name]
		if !ok {
			return nil, errors.Errorf("output %q is not bound", name)
		}
		doc, err := codec.FromTensor(x)
		if err != nil {
			return nil, errors.Wrapf(err, "output %q", name)
		}
		outs = append(outs, Output{
			Name:       name,
			Strides:    x.Strides(),
			Contiguous: x.IsContiguous(),
			Document:   doc,
		})
	}
	return outs, nil
}

// Bundle packs outputs into a codec bundle.
func Bundle(outs []Output) *codec.Bundle {
	b := codec.NewBundle()
	for _, o := range outs {
		b.Add(o.Name, o.Document)
	}
	return b
}

func buildInput[T tensor.Numeric](in TensorSpec, dt tensor.DataType) (*tensor.Tensor[T], error) {
	if in.Data == nil {
		return tensor.Zeros[T](tensor.Shape(in.Shape)), nil
	}
	return codec.ToTensor[T](codec.Document{
		DType: dt.String(),
		Shape: in.Shape,
		Data:  in.Data,
	})
}

func apply[T tensor.Numeric](env map[string]*tensor.Tensor[T], s Step) (*tensor.Tensor[T], error) {
	arg := func(i int) *tensor.Tensor[T] { return env[s.Args[i]] }

	switch s.Op {
	case OpAdd:
		return arg(0).Add(arg(1))
	case OpSub:
		return arg(0).Sub(arg(1))
	case OpMul:
		return arg(0).Mul(arg(1))
	case OpAddScalar:
		v, err := codec.Convert[T](*s.Scalar)
		if err != nil {
			return nil, errors.Wrap(err, "scalar")
		}
		return arg(0).AddScalar(v), nil
	case OpMulScalar:
		v, err := codec.Convert[T](*s.Scalar)
		if err != nil {
			return nil, errors.Wrap(err, "scalar")
		}
		return arg(0).MulScalar(v), nil
	case OpTranspose:
		return arg(0).Transpose(), nil
	case OpClone:
		return arg(0).Clone(), nil
	case OpZeros:
		return tensor.Zeros[T](tensor.Shape(s.Shape)), nil
	case OpSet:
		v, err := codec.Convert[T](*s.Scalar)
		if err != nil {
			return nil, errors.Wrap(err, "scalar")
		}
		x := arg(0)
		if err := x.Set(v, s.Index...); err != nil {
			return nil, err
		}
		return x, nil
	default:
		return nil, errors.Errorf("unknown op %q", s.Op)
	}
}

// logShapeMismatch reports both sides of a shape violation as structured fields.
func logShapeMismatch(log logrus.FieldLogger, err error) {
	var mismatch *tensor.ShapeMismatchError
	if !errors.As(err, &mismatch) {
		return
	}
	log.WithFields(logrus.Fields{
		"expected_shape": mismatch.Expected,
		"actual_shape":   mismatch.Actual,
		"expected_size":  mismatch.ExpectedSize,
		"actual_size":    mismatch.ActualSize,
	}).Error("Shape mismatch")
}

// defaultOutputs lists every step result in order, or the inputs when there are no steps.
func (ws *Worksheet) defaultOutputs() []string {
	var names []string
	seen := make(map[string]bool)
	for _, s := range ws.Steps {
		if s.Name != "" && !seen[s.Name] {
			seen[s.Name] = true
			names = append(names, s.Name)
		}
	}
	if len(names) == 0 {
		names = ws.inputNames()
	}
	return names
}
