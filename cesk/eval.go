package cesk

import "fmt"

// Eval evaluates an atomic expression against (fp, store). It is total for
// well-formed inputs; see spec.md §4.3 for the error conditions each
// variant can raise. Each case below is the direct analogue of one entry
// in the table of atomic expressions: reading a register, a literal, a
// field dereference, an instanceof check, or an n-ary/binary atomic op.
func Eval(ctx *Context, e Expr, fp FramePointer, store *Store) (Value, error) {
	switch x := e.(type) {
	case ThisExpr:
		return store.Lookup(FrameAddr(fp, "$this"))
	case RegisterExpr:
		return store.Lookup(FrameAddr(fp, x.Name))
	case IntExpr:
		return IntValue(x.Value), nil
	case BoolExpr:
		return BoolValue(x.Value), nil
	case NullExpr:
		return Null, nil
	case VoidExpr:
		return Void, nil
	case FieldExpr:
		obj, err := Eval(ctx, x.Obj, fp, store)
		if err != nil {
			return nil, err
		}
		ov, ok := obj.(ObjectValue)
		if !ok {
			return nil, typeMismatchf("field access on non-object value %T", obj)
		}
		return store.Lookup(FieldAddr(ov.Ptr, x.Field))
	case InstanceOfExpr:
		obj, err := Eval(ctx, x.Obj, fp, store)
		if err != nil {
			return nil, err
		}
		ov, ok := obj.(ObjectValue)
		if !ok {
			return nil, typeMismatchf("instanceof on non-object value %T", obj)
		}
		return BoolValue(ctx.Classes.IsInstanceOf(ov.Class, x.Class)), nil
	case AtomicOpExpr:
		return evalAtomicOp(ctx, x, fp, store)
	default:
		return nil, typeMismatchf("unrecognized expression %T", e)
	}
}

func evalAtomicOp(ctx *Context, x AtomicOpExpr, fp FramePointer, store *Store) (Value, error) {
	switch x.Op {
	case OpAdd:
		sum := int32(0)
		for _, a := range x.Args {
			v, err := evalInt(ctx, a, fp, store)
			if err != nil {
				return nil, err
			}
			sum += v
		}
		return IntValue(sum), nil
	case OpMul:
		product := int32(1)
		for _, a := range x.Args {
			v, err := evalInt(ctx, a, fp, store)
			if err != nil {
				return nil, err
			}
			product *= v
		}
		return IntValue(product), nil
	case OpSub:
		if len(x.Args) != 2 {
			return nil, typeMismatchf("SUB requires exactly 2 arguments, got %d", len(x.Args))
		}
		a, err := evalInt(ctx, x.Args[0], fp, store)
		if err != nil {
			return nil, err
		}
		b, err := evalInt(ctx, x.Args[1], fp, store)
		if err != nil {
			return nil, err
		}
		return IntValue(a - b), nil
	case OpEq:
		if len(x.Args) != 2 {
			return nil, typeMismatchf("EQ requires exactly 2 arguments, got %d", len(x.Args))
		}
		a, err := evalInt(ctx, x.Args[0], fp, store)
		if err != nil {
			return nil, err
		}
		b, err := evalInt(ctx, x.Args[1], fp, store)
		if err != nil {
			return nil, err
		}
		return BoolValue(a == b), nil
	default:
		return nil, typeMismatchf("unrecognized atomic op %v", x.Op)
	}
}

func evalInt(ctx *Context, e Expr, fp FramePointer, store *Store) (int32, error) {
	v, err := Eval(ctx, e, fp, store)
	if err != nil {
		return 0, err
	}
	return ToInt(v)
}

func typeMismatchf(format string, args ...any) error {
	return &typeMismatchError{msg: fmt.Sprintf(format, args...)}
}

type typeMismatchError struct{ msg string }

func (e *typeMismatchError) Error() string { return ErrTypeMismatch.Error() + ": " + e.msg }
func (e *typeMismatchError) Unwrap() error { return ErrTypeMismatch }
