// Package tensor provides a dense strided N-dimensional array and its elementwise arithmetic.
package tensor

import (
	"fmt"
	"reflect"
)

// Numeric is a constraint for supported element types.
// Every member supports +, * and zero-initialization.
type Numeric interface {
	~int | ~int32 | ~int64 | ~uint8 | ~float32 | ~float64
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Int
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64, Int:
		return 8
	case Uint8:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Int:
		return "int"
	default:
		return "unknown"
	}
}

// ParseDataType is the inverse of DataType.String.
func ParseDataType(name string) (DataType, error) {
	for _, dt := range []DataType{Float32, Float64, Int32, Int64, Uint8, Int} {
		if dt.String() == name {
			return dt, nil
		}
	}
	return 0, fmt.Errorf("unknown data type %q", name)
}

// DataTypeOf returns the runtime tag for the element type T.
// Defined types map to the tag of their underlying type.
func DataTypeOf[T Numeric]() DataType {
	return inferDataType(reflect.TypeFor[T]())
}

// inferDataType infers DataType from the kind of an element type.
func inferDataType(typ reflect.Type) DataType {
	switch typ.Kind() {
	case reflect.Float32:
		return Float32
	case reflect.Float64:
		return Float64
	case reflect.Int32:
		return Int32
	case reflect.Int64:
		return Int64
	case reflect.Uint8:
		return Uint8
	case reflect.Int:
		return Int
	default:
		panic(fmt.Sprintf("unsupported element type %v", typ))
	}
}
