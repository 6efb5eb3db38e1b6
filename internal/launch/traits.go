package launch

import (
	"fmt"
	"reflect"

	"github.com/weft-ml/weft/internal/tensor"
)

// Signature is the descriptor derived once per launch from the shape of a
// user-supplied elementwise function: its arity, the dtype of each
// positional argument and the dtype of its single result.
type Signature struct {
	Arity int
	Args  []tensor.DataType
	Ret   tensor.DataType

	fn reflect.Value
}

// SignatureOf introspects fn, which must be a non-variadic function of
// zero or more supported element types returning exactly one supported
// element type.
func SignatureOf(fn any) (Signature, error) {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		return Signature{}, fmt.Errorf("signature: %T is not a function", fn)
	}
	if t.IsVariadic() {
		return Signature{}, fmt.Errorf("signature: variadic functions are not supported")
	}
	if t.NumOut() != 1 {
		return Signature{}, fmt.Errorf("signature: want exactly 1 result, got %d", t.NumOut())
	}

	sig := Signature{
		Arity: t.NumIn(),
		Args:  make([]tensor.DataType, t.NumIn()),
		fn:    reflect.ValueOf(fn),
	}

	for i := 0; i < t.NumIn(); i++ {
		dt, err := dtypeForKind(t.In(i).Kind())
		if err != nil {
			return Signature{}, fmt.Errorf("signature: argument %d: %w", i, err)
		}
		sig.Args[i] = dt
	}

	ret, err := dtypeForKind(t.Out(0).Kind())
	if err != nil {
		return Signature{}, fmt.Errorf("signature: result: %w", err)
	}
	sig.Ret = ret

	return sig, nil
}

// Arg returns the dtype of the i-th argument. For i >= Arity it returns
// the result dtype as an inert placeholder so zero-arity callers can still
// query argument types; the placeholder is never read by any policy.
func (s Signature) Arg(i int) tensor.DataType {
	if i < len(s.Args) {
		return s.Args[i]
	}
	return s.Ret
}

// Uniform reports whether all positional arguments share one dtype. It is
// trivially true for zero arity. The vectorized launch path requires it.
func (s Signature) Uniform() bool {
	for i := 1; i < len(s.Args); i++ {
		if s.Args[i] != s.Args[0] {
			return false
		}
	}
	return true
}

// Call invokes the underlying function with the given argument values,
// converting each to the declared parameter type first. Used only by the
// dynamic invocation mode.
func (s Signature) Call(args []reflect.Value) reflect.Value {
	t := s.fn.Type()
	for i := range args {
		args[i] = args[i].Convert(t.In(i))
	}
	return s.fn.Call(args)[0]
}

func dtypeForKind(k reflect.Kind) (tensor.DataType, error) {
	switch k {
	case reflect.Float32:
		return tensor.Float32, nil
	case reflect.Float64:
		return tensor.Float64, nil
	case reflect.Int32:
		return tensor.Int32, nil
	case reflect.Int64:
		return tensor.Int64, nil
	case reflect.Uint8:
		return tensor.Uint8, nil
	case reflect.Bool:
		return tensor.Bool, nil
	default:
		return 0, fmt.Errorf("unsupported element kind %s", k)
	}
}
