package cesk

// Kont is the continuation stack: a linked chain of return frames, handler
// frames, and the unique Halt bottom.
type Kont interface {
	kontNode()
}

// HaltKont is the unique bottom continuation. Applying it to a return value
// is terminal; handling an exception against it is an uncaught exception.
type HaltKont struct{}

// AssignKont awaits a callee return. Applying it binds the returned value at
// (ResumeFP, Reg) and continues at Resume, in the caller's frame.
type AssignKont struct {
	Reg      string
	Resume   Stmt
	ResumeFP FramePointer
	Next     Kont
}

// HandlerKont is inert under Apply (it passes the return value straight
// through) and active under Handle: it catches exceptions whose class is an
// instance of Class, resuming at Label.
type HandlerKont struct {
	Class string
	Label string
	Next  Kont
}

func (HaltKont) kontNode()     {}
func (*AssignKont) kontNode()  {}
func (*HandlerKont) kontNode() {}

// ApplyResult is the outcome of applying a continuation to a return value:
// either the machine continues at Next, or the machine has halted with
// (Value, Store) as the observable result.
type ApplyResult struct {
	Halted bool
	Value  Value
	Store  *Store
	Next   *State
}

// Apply implements the continuation's return semantics (spec.md §4.5).
// Handler frames are transparent under Apply: they never catch a normal
// return, only a throw.
func Apply(k Kont, value Value, store *Store) ApplyResult {
	switch kk := k.(type) {
	case HaltKont:
		return ApplyResult{Halted: true, Value: value, Store: store}
	case *AssignKont:
		next := store.Extend(FrameAddr(kk.ResumeFP, kk.Reg), value)
		return ApplyResult{Next: &State{Stmt: kk.Resume, FP: kk.ResumeFP, Store: next, Kont: kk.Next}}
	case *HandlerKont:
		return Apply(kk.Next, value, store)
	default:
		panic("cesk: unrecognized continuation variant")
	}
}

// HandleResult is the outcome of unwinding the continuation chain looking
// for a handler matching a thrown exception.
type HandleResult struct {
	// Caught is false when the chain bottomed out at Halt: the exception is
	// uncaught and the machine terminates.
	Caught bool
	Next   *State
}

// Handle implements the continuation's throw semantics (spec.md §4.6). fp is
// the frame pointer to install the handler with: for an Assign frame this
// is the *captured* resume frame pointer of that frame (not the frame that
// threw), since exceptions unwind into the frame in which the matching
// handler was installed, and Assign frames record the caller-to-callee
// transition that carries that frame pointer forward.
func Handle(ctx *Context, k Kont, fp FramePointer, exception Value, store *Store) (HandleResult, error) {
	switch kk := k.(type) {
	case HaltKont:
		return HandleResult{Caught: false}, nil
	case *AssignKont:
		return Handle(ctx, kk.Next, kk.ResumeFP, exception, store)
	case *HandlerKont:
		ov, ok := exception.(ObjectValue)
		if !ok {
			return HandleResult{}, typeMismatchf("thrown value is not an object: %T", exception)
		}
		if ctx.Classes.IsInstanceOf(ov.Class, kk.Class) {
			target, err := ctx.Labels.Resolve(kk.Label)
			if err != nil {
				return HandleResult{}, err
			}
			bound := store.Extend(FrameAddr(fp, "$ex"), exception)
			return HandleResult{Caught: true, Next: &State{Stmt: target, FP: fp, Store: bound, Kont: kk.Next}}, nil
		}
		return Handle(ctx, kk.Next, fp, exception, store)
	default:
		panic("cesk: unrecognized continuation variant")
	}
}
