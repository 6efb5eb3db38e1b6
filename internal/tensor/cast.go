package tensor

import "fmt"

// Scalar fetch-and-cast primitives keyed by runtime dtype tags. These back
// the dynamic invocation mode, where each input element is loaded from its
// tagged storage type and cast to the element type the user function
// expects before the call.

// ScalarAt fetches element i (an element offset into the buffer) as its
// native Go value.
func (r *RawTensor) ScalarAt(i int) any {
	switch r.dtype {
	case Float32:
		return As[float32](r)[i]
	case Float64:
		return As[float64](r)[i]
	case Int32:
		return As[int32](r)[i]
	case Int64:
		return As[int64](r)[i]
	case Uint8:
		return As[uint8](r)[i]
	case Bool:
		return As[bool](r)[i]
	default:
		panic(fmt.Sprintf("scalarAt: unsupported dtype %v", r.dtype))
	}
}

// SetScalarAt stores v at element offset i, casting it to the tensor's
// dtype first.
func (r *RawTensor) SetScalarAt(i int, v any) {
	v = CastScalar(v, r.dtype)
	switch r.dtype {
	case Float32:
		As[float32](r)[i] = v.(float32)
	case Float64:
		As[float64](r)[i] = v.(float64)
	case Int32:
		As[int32](r)[i] = v.(int32)
	case Int64:
		As[int64](r)[i] = v.(int64)
	case Uint8:
		As[uint8](r)[i] = v.(uint8)
	case Bool:
		As[bool](r)[i] = v.(bool)
	default:
		panic(fmt.Sprintf("setScalarAt: unsupported dtype %v", r.dtype))
	}
}

// CastScalar converts a scalar of any supported element type to the given
// dtype. Numeric casts truncate the way Go conversions do; bool follows
// the usual nonzero convention. Integer sources convert through int64, not
// float64, so int64 values beyond 2^53 stay exact.
func CastScalar(v any, to DataType) any {
	switch x := v.(type) {
	case float32:
		if to == Float32 {
			return x
		}
		return castFromFloat64(float64(x), to)
	case float64:
		return castFromFloat64(x, to)
	case int32:
		if to == Int32 {
			return x
		}
		return castFromInt64(int64(x), to)
	case int64:
		return castFromInt64(x, to)
	case int:
		return castFromInt64(int64(x), to)
	case uint8:
		if to == Uint8 {
			return x
		}
		return castFromInt64(int64(x), to)
	case bool:
		if to == Bool {
			return x
		}
		var i int64
		if x {
			i = 1
		}
		return castFromInt64(i, to)
	default:
		panic(fmt.Sprintf("castScalar: unsupported source type %T", v))
	}
}

func castFromFloat64(f float64, to DataType) any {
	switch to {
	case Float32:
		return float32(f)
	case Float64:
		return f
	case Int32:
		return int32(f)
	case Int64:
		return int64(f)
	case Uint8:
		return uint8(f)
	case Bool:
		return f != 0
	default:
		panic(fmt.Sprintf("castScalar: unsupported target dtype %v", to))
	}
}

func castFromInt64(i int64, to DataType) any {
	switch to {
	case Float32:
		return float32(i)
	case Float64:
		return float64(i)
	case Int32:
		return int32(i)
	case Int64:
		return i
	case Uint8:
		return uint8(i)
	case Bool:
		return i != 0
	default:
		panic(fmt.Sprintf("castScalar: unsupported target dtype %v", to))
	}
}
