package cesk

// step dispatches on the current statement's variant and produces the next
// state (or a terminal outcome), one case per row of the transition table
// in spec.md §4.4. Each case is a small, self-contained unit in the same
// shape as the teacher's instruction-dispatch switch: eval the operands in
// the caller's frame, mutate the store functionally, advance control.
func step(ctx *Context, s *State) (*State, *Outcome, error) {
	switch stmt := s.Stmt.(type) {
	case *SkipStmt:
		return advance(s, stmt.Next(), s.Store), nil, nil

	case *LabelStmt:
		return advance(s, stmt.Next(), s.Store), nil, nil

	case *GotoStmt:
		target, err := ctx.Labels.Resolve(stmt.Label)
		if err != nil {
			return nil, nil, err
		}
		return advance(s, target, s.Store), nil, nil

	case *IfStmt:
		cond, err := Eval(ctx, stmt.Cond, s.FP, s.Store)
		if err != nil {
			return nil, nil, err
		}
		if ToBoolean(cond) {
			target, err := ctx.Labels.Resolve(stmt.Label)
			if err != nil {
				return nil, nil, err
			}
			return advance(s, target, s.Store), nil, nil
		}
		return advance(s, stmt.Next(), s.Store), nil, nil

	case *AssignAExpStmt:
		v, err := Eval(ctx, stmt.Rhs, s.FP, s.Store)
		if err != nil {
			return nil, nil, err
		}
		next := s.Store.Extend(FrameAddr(s.FP, stmt.Reg), v)
		return advance(s, stmt.Next(), next), nil, nil

	case *FieldAssignStmt:
		obj, err := Eval(ctx, stmt.Obj, s.FP, s.Store)
		if err != nil {
			return nil, nil, err
		}
		ov, ok := obj.(ObjectValue)
		if !ok {
			return nil, nil, typeMismatchf("field assignment target is not an object: %T", obj)
		}
		v, err := Eval(ctx, stmt.Rhs, s.FP, s.Store)
		if err != nil {
			return nil, nil, err
		}
		next := s.Store.Extend(FieldAddr(ov.Ptr, stmt.Field), v)
		return advance(s, stmt.Next(), next), nil, nil

	case *NewStmt:
		op := ctx.FreshObjectPointer()
		next := s.Store.Extend(FrameAddr(s.FP, stmt.Reg), ObjectValue{Class: stmt.Class, Ptr: op})
		return advance(s, stmt.Next(), next), nil, nil

	case *InvokeStmt:
		receiver, err := Eval(ctx, stmt.Obj, s.FP, s.Store)
		if err != nil {
			return nil, nil, err
		}
		ov, ok := receiver.(ObjectValue)
		if !ok {
			return nil, nil, typeMismatchf("invoke receiver is not an object: %T", receiver)
		}
		method, err := ctx.Classes.LookupMethod(ov.Class, stmt.Method)
		if err != nil {
			return nil, nil, err
		}
		return invoke(ctx, s, stmt.Reg, receiver, method, stmt.Args)

	case *InvokeSuperStmt:
		receiver, err := Eval(ctx, ThisExpr{}, s.FP, s.Store)
		if err != nil {
			return nil, nil, err
		}
		ov, ok := receiver.(ObjectValue)
		if !ok {
			return nil, nil, typeMismatchf("invoke super receiver is not an object: %T", receiver)
		}
		parent, err := ctx.Classes.ParentOf(ov.Class)
		if err != nil {
			return nil, nil, err
		}
		method, err := ctx.Classes.LookupMethod(parent, stmt.Method)
		if err != nil {
			return nil, nil, err
		}
		return invoke(ctx, s, stmt.Reg, receiver, method, stmt.Args)

	case *ReturnStmt:
		v, err := Eval(ctx, stmt.Result, s.FP, s.Store)
		if err != nil {
			return nil, nil, err
		}
		result := Apply(s.Kont, v, s.Store)
		if result.Halted {
			return nil, &Outcome{Kind: Returned, Value: result.Value, Store: result.Store}, nil
		}
		return result.Next, nil, nil

	case *PushHandlerStmt:
		k := &HandlerKont{Class: stmt.Class, Label: stmt.Label, Next: s.Kont}
		return &State{Stmt: stmt.Next(), FP: s.FP, Store: s.Store, Kont: k}, nil, nil

	case *PopHandlerStmt:
		h, ok := s.Kont.(*HandlerKont)
		if !ok {
			return nil, nil, ErrKontMisuse
		}
		return &State{Stmt: stmt.Next(), FP: s.FP, Store: s.Store, Kont: h.Next}, nil, nil

	case *ThrowStmt:
		exc, err := Eval(ctx, stmt.Exc, s.FP, s.Store)
		if err != nil {
			return nil, nil, err
		}
		result, err := Handle(ctx, s.Kont, s.FP, exc, s.Store)
		if err != nil {
			return nil, nil, err
		}
		if !result.Caught {
			return nil, &Outcome{Kind: Uncaught, Value: exc, Store: s.Store}, nil
		}
		return result.Next, nil, nil

	case *MoveExceptionStmt:
		v, err := s.Store.Lookup(FrameAddr(s.FP, "$ex"))
		if err != nil {
			return nil, nil, err
		}
		next := s.Store.Extend(FrameAddr(s.FP, stmt.Reg), v)
		return advance(s, stmt.Next(), next), nil, nil

	case *PrintStmt:
		for _, arg := range stmt.Args {
			v, err := Eval(ctx, arg, s.FP, s.Store)
			if err != nil {
				return nil, nil, err
			}
			if _, err := ctx.Stdout.Write([]byte(v.ToPrint() + "\n")); err != nil {
				return nil, nil, err
			}
		}
		return advance(s, stmt.Next(), s.Store), nil, nil

	default:
		return nil, nil, typeMismatchf("unrecognized statement %T", stmt)
	}
}

// advance builds the next state at target against the current frame
// pointer and continuation, with store replaced by the (possibly extended)
// new store.
func advance(s *State, target Stmt, store *Store) *State {
	return &State{Stmt: target, FP: s.FP, Store: store, Kont: s.Kont}
}

// invoke builds the callee's activation: a fresh frame pointer, $this and
// the formal parameters bound there from values evaluated in the caller's
// frame, and an Assign continuation that resumes the caller at its
// syntactic successor once the callee returns. Shared by Invoke and
// InvokeSuper, which differ only in how the callee MethodDef and receiver
// are found.
func invoke(ctx *Context, s *State, reg string, receiver Value, method *MethodDef, argExprs []Expr) (*State, *Outcome, error) {
	args := make([]Value, len(argExprs))
	for i, a := range argExprs {
		v, err := Eval(ctx, a, s.FP, s.Store)
		if err != nil {
			return nil, nil, err
		}
		args[i] = v
	}

	calleeFP := ctx.FreshFramePointer()
	calleeStore := s.Store.Extend(FrameAddr(calleeFP, "$this"), receiver)
	for i, name := range method.Params {
		var v Value = Void
		if i < len(args) {
			v = args[i]
		}
		calleeStore = calleeStore.Extend(FrameAddr(calleeFP, name), v)
	}

	k := &AssignKont{Reg: reg, Resume: s.Stmt.Next(), ResumeFP: s.FP, Next: s.Kont}
	return &State{Stmt: method.Entry, FP: calleeFP, Store: calleeStore, Kont: k}, nil, nil
}
