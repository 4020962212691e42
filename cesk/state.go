package cesk

// State is the 4-tuple (Control, Environment, Store, Kontinuation): the
// current statement, the frame pointer that offsets registers into the
// store, the store itself, and the continuation stack.
type State struct {
	Stmt  Stmt
	FP    FramePointer
	Store *Store
	Kont  Kont
}

// OutcomeKind classifies how a run of the machine terminated.
type OutcomeKind int

const (
	// Returned means a Return statement's value reached HaltKont: normal
	// termination.
	Returned OutcomeKind = iota
	// FellOff means the current statement was absent with no Return having
	// happened; the driver treats this the same as Stmt being nil.
	FellOff
	// Uncaught means a Throw statement's exception reached HaltKont with no
	// intervening Handler matching it.
	Uncaught
)

// Outcome is the observable result once the machine stops stepping.
type Outcome struct {
	Kind  OutcomeKind
	Value Value
	Store *Store
}

// Initial builds the driver's initial state for main, per spec.md §4.9:
// locate main's entry method, allocate the receiver object and its frame
// pointer, bind it at register "this" (not "$this" — see the preserved
// Open Question in spec.md §9), and start with an empty continuation other
// than Halt.
func Initial(ctx *Context, main *ClassDef) (*State, error) {
	entry, err := ctx.Classes.LookupMethod(main.Name, "main")
	if err != nil {
		return nil, err
	}

	op := ctx.FreshObjectPointer()
	self := ObjectValue{Class: main.Name, Ptr: op}

	fp := ctx.FreshFramePointer()
	store := EmptyStore.Extend(FrameAddr(fp, "this"), self)

	return &State{Stmt: entry.Entry, FP: fp, Store: store, Kont: HaltKont{}}, nil
}

// Step advances s by exactly one statement, per the transition table in
// spec.md §4.4. It returns either the next state (outcome nil) or a
// terminal Outcome (next nil), or a fatal error from §4.8.
func Step(ctx *Context, s *State) (*State, *Outcome, error) {
	if s.Stmt == nil {
		return nil, &Outcome{Kind: FellOff, Store: s.Store}, nil
	}
	next, outcome, err := step(ctx, s)
	if err != nil {
		return nil, nil, &StepError{Stmt: s.Stmt, FP: s.FP, Err: err}
	}
	return next, outcome, nil
}

// Run iterates Step until it reaches a terminal Outcome or a fatal error.
func Run(ctx *Context, s *State) (*Outcome, error) {
	for {
		next, outcome, err := Step(ctx, s)
		if err != nil {
			return nil, err
		}
		if outcome != nil {
			return outcome, nil
		}
		s = next
	}
}
