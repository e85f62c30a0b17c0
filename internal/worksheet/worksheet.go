// Package worksheet evaluates a YAML description of named tensors and a
// sequence of tensor operations.
//
// Example worksheet:
//
//	dtype: int64
//	tensors:
//	  a: {shape: [2], data: [1, 2]}
//	  b: {shape: [2], data: [2, 6]}
//	steps:
//	  - {name: c, op: mul, args: [a, b]}
//	  - {name: d, op: add_scalar, args: [a], scalar: 3}
//	outputs: [c, d]
package worksheet

import (
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/stride/internal/tensor"
)

// DefaultDType is used when a worksheet does not name one.
const DefaultDType = "float64"

// Supported operations.
const (
	OpAdd       = "add"
	OpSub       = "sub"
	OpMul       = "mul"
	OpAddScalar = "add_scalar"
	OpMulScalar = "mul_scalar"
	OpTranspose = "transpose"
	OpClone     = "clone"
	OpZeros     = "zeros"
	OpSet       = "set"
)

// arity is the number of tensor arguments each operation takes.
var arity = map[string]int{
	OpAdd:       2,
	OpSub:       2,
	OpMul:       2,
	OpAddScalar: 1,
	OpMulScalar: 1,
	OpTranspose: 1,
	OpClone:     1,
	OpZeros:     0,
	OpSet:       1,
}

// TensorSpec declares an input tensor. Data is row-major; when omitted the tensor is zero-filled.
type TensorSpec struct {
	Shape []int     `yaml:"shape,flow"`
	Data  []float64 `yaml:"data,flow,omitempty"`
}

// Step is one operation. Name binds the result; for set it is optional and
// aliases the modified tensor.
type Step struct {
	Name   string   `yaml:"name,omitempty"`
	Op     string   `yaml:"op"`
	Args   []string `yaml:"args,flow,omitempty"`
	Scalar *float64 `yaml:"scalar,omitempty"`
	Index  []int    `yaml:"index,flow,omitempty"`
	Shape  []int    `yaml:"shape,flow,omitempty"`
}

// Worksheet is the parsed document.
type Worksheet struct {
	DType   string                `yaml:"dtype,omitempty"`
	Tensors map[string]TensorSpec `yaml:"tensors"`
	Steps   []Step                `yaml:"steps"`
	Outputs []string              `yaml:"outputs,flow,omitempty"`
}

// Parse decodes and validates a worksheet. Unknown keys are rejected.
func Parse(r io.Reader) (*Worksheet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var ws Worksheet
	if err := dec.Decode(&ws); err != nil {
		return nil, errors.Wrap(err, "parse worksheet")
	}
	if err := ws.Validate(); err != nil {
		return nil, err
	}
	return &ws, nil
}

// Load parses the worksheet stored at path.
func Load(path string) (*Worksheet, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from the command line.
	if err != nil {
		return nil, errors.Wrap(err, "open worksheet")
	}
	defer f.Close()

	ws, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return ws, nil
}

// ElementType returns the worksheet dtype, defaulting to float64.
func (ws *Worksheet) ElementType() (tensor.DataType, error) {
	name := ws.DType
	if name == "" {
		name = DefaultDType
	}
	dt, err := tensor.ParseDataType(name)
	return dt, errors.WithStack(err)
}

// Validate checks the worksheet statically: known ops, argument counts,
// required fields, and that every reference names an input or an earlier step.
func (ws *Worksheet) Validate() error {
	if _, err := ws.ElementType(); err != nil {
		return err
	}

	defined := make(map[string]bool, len(ws.Tensors)+len(ws.Steps))
	for _, name := range ws.inputNames() {
		if name == "" {
			return errors.New("input tensor with empty name")
		}
		if err := tensor.Shape(ws.Tensors[name].Shape).Validate(); err != nil {
			return errors.Wrapf(err, "input %q", name)
		}
		defined[name] = true
	}

	for i, s := range ws.Steps {
		if err := s.validate(defined); err != nil {
			return errors.Wrapf(err, "step %d (%s)", i, s.Op)
		}
		if s.Name != "" {
			defined[s.Name] = true
		}
	}

	for _, name := range ws.Outputs {
		if !defined[name] {
			return errors.Errorf("output %q is never defined", name)
		}
	}
	return nil
}

func (s Step) validate(defined map[string]bool) error {
	n, ok := arity[s.Op]
	if !ok {
		return errors.Errorf("unknown op %q", s.Op)
	}
	if len(s.Args) != n {
		return errors.Errorf("takes %d arguments, got %d", n, len(s.Args))
	}
	for _, a := range s.Args {
		if !defined[a] {
			return errors.Errorf("argument %q is not defined yet", a)
		}
	}
	if s.Name == "" && s.Op != OpSet {
		return errors.New("missing name")
	}

	switch s.Op {
	case OpAddScalar, OpMulScalar:
		if s.Scalar == nil {
			return errors.New("missing scalar")
		}
	case OpSet:
		if s.Scalar == nil {
			return errors.New("missing scalar")
		}
		if s.Index == nil {
			return errors.New("missing index")
		}
	case OpZeros:
		if err := tensor.Shape(s.Shape).Validate(); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

// inputNames returns the input tensor names in sorted order.
func (ws *Worksheet) inputNames() []string {
	names := make([]string, 0, len(ws.Tensors))
	for name := range ws.Tensors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
