package cesk

import (
	"bytes"
	"testing"
)

func newTestContext() *Context {
	return NewContext(&bytes.Buffer{})
}

func TestEvalLiterals(t *testing.T) {
	ctx := newTestContext()
	fp := ctx.FreshFramePointer()
	store := EmptyStore

	cases := []struct {
		expr Expr
		want Value
	}{
		{IntExpr{Value: 42}, IntValue(42)},
		{BoolExpr{Value: true}, BoolValue(true)},
		{NullExpr{}, Null},
		{VoidExpr{}, Void},
	}
	for _, c := range cases {
		v, err := Eval(ctx, c.expr, fp, store)
		assert(t, err == nil, "unexpected error: %v", err)
		assert(t, v == c.want, "expected %v, got %v", c.want, v)
	}
}

func TestEvalRegisterUnbound(t *testing.T) {
	ctx := newTestContext()
	fp := ctx.FreshFramePointer()
	_, err := Eval(ctx, RegisterExpr{Name: "$missing"}, fp, EmptyStore)
	assert(t, err != nil, "expected unbound address error")
}

func TestEvalAtomicOpIdentities(t *testing.T) {
	ctx := newTestContext()
	fp := ctx.FreshFramePointer()

	sum, err := Eval(ctx, AtomicOpExpr{Op: OpAdd}, fp, EmptyStore)
	assert(t, err == nil && sum == IntValue(0), "ADD() should be identity 0, got %v, %v", sum, err)

	product, err := Eval(ctx, AtomicOpExpr{Op: OpMul}, fp, EmptyStore)
	assert(t, err == nil && product == IntValue(1), "MUL() should be identity 1, got %v, %v", product, err)
}

func TestEvalAtomicOpNAry(t *testing.T) {
	ctx := newTestContext()
	fp := ctx.FreshFramePointer()

	sum, err := Eval(ctx, AtomicOpExpr{Op: OpAdd, Args: []Expr{IntExpr{Value: 1}, IntExpr{Value: 2}, IntExpr{Value: 3}}}, fp, EmptyStore)
	assert(t, err == nil && sum == IntValue(6), "expected 6, got %v, %v", sum, err)
}

func TestEvalSubRequiresBinary(t *testing.T) {
	ctx := newTestContext()
	fp := ctx.FreshFramePointer()

	_, err := Eval(ctx, AtomicOpExpr{Op: OpSub, Args: []Expr{IntExpr{Value: 1}}}, fp, EmptyStore)
	assert(t, err != nil, "expected arity error for unary SUB")

	v, err := Eval(ctx, AtomicOpExpr{Op: OpSub, Args: []Expr{IntExpr{Value: 5}, IntExpr{Value: 2}}}, fp, EmptyStore)
	assert(t, err == nil && v == IntValue(3), "expected 3, got %v, %v", v, err)
}

func TestEvalEqIntegersOnly(t *testing.T) {
	ctx := newTestContext()
	fp := ctx.FreshFramePointer()

	v, err := Eval(ctx, AtomicOpExpr{Op: OpEq, Args: []Expr{IntExpr{Value: 7}, IntExpr{Value: 7}}}, fp, EmptyStore)
	assert(t, err == nil && v == BoolValue(true), "expected true, got %v, %v", v, err)

	_, err = Eval(ctx, AtomicOpExpr{Op: OpEq, Args: []Expr{BoolExpr{Value: true}, BoolExpr{Value: true}}}, fp, EmptyStore)
	assert(t, err != nil, "expected type mismatch comparing non-integers with EQ")
}

func TestEvalFieldOnNonObjectIsTypeMismatch(t *testing.T) {
	ctx := newTestContext()
	fp := ctx.FreshFramePointer()
	store := EmptyStore.Extend(FrameAddr(fp, "$x"), IntValue(1))

	_, err := Eval(ctx, FieldExpr{Obj: RegisterExpr{Name: "$x"}, Field: "f"}, fp, store)
	assert(t, err != nil, "expected type mismatch")
}

func TestEvalInstanceOf(t *testing.T) {
	ctx := newTestContext()
	ctx.Classes.Register(NewClassDef("Object"))
	box := NewClassDef("Box")
	box.SetParent("Object")
	ctx.Classes.Register(box)

	fp := ctx.FreshFramePointer()
	op := ctx.FreshObjectPointer()
	store := EmptyStore.Extend(FrameAddr(fp, "$b"), ObjectValue{Class: "Box", Ptr: op})

	v, err := Eval(ctx, InstanceOfExpr{Obj: RegisterExpr{Name: "$b"}, Class: "Object"}, fp, store)
	assert(t, err == nil && v == BoolValue(true), "expected true, got %v, %v", v, err)

	v, err = Eval(ctx, InstanceOfExpr{Obj: RegisterExpr{Name: "$b"}, Class: "Nope"}, fp, store)
	assert(t, err == nil && v == BoolValue(false), "expected false, got %v, %v", v, err)
}

func TestToBooleanTruthiness(t *testing.T) {
	assert(t, ToBoolean(Null), "null should be truthy")
	assert(t, ToBoolean(Void), "void should be truthy")
	assert(t, ToBoolean(IntValue(0)), "0 should be truthy")
	assert(t, ToBoolean(ObjectValue{}), "objects should be truthy")
	assert(t, !ToBoolean(False), "false singleton should be the only falsy value")
}
