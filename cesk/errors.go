package cesk

import (
	"errors"
	"fmt"
)

// These sentinels classify the fatal runtime errors from spec.md §4.8. They
// follow the same plain-sentinel-error style as the teacher's
// errProgramFinished/errSegmentationFault/errIllegalOperation family: a
// fixed, small vocabulary of errors.Is-comparable values, not a hierarchy of
// custom error types beyond what carries the failing address/label/name.
var (
	ErrUnboundAddr      = errors.New("unbound address")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrUnresolvedLabel  = errors.New("unresolved label")
	ErrNoSuchMember     = errors.New("no such member")
	ErrKontMisuse       = errors.New("continuation misuse")
	ErrUncaughtException = errors.New("uncaught exception")
)

// UnboundAddrError reports exactly which address was read while unbound.
type UnboundAddrError struct {
	Addr Address
}

func (e *UnboundAddrError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnboundAddr, e.Addr)
}

func (e *UnboundAddrError) Unwrap() error { return ErrUnboundAddr }

// UnresolvedLabelError reports the label name that had no entry in the
// label index.
type UnresolvedLabelError struct {
	Label string
}

func (e *UnresolvedLabelError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnresolvedLabel, e.Label)
}

func (e *UnresolvedLabelError) Unwrap() error { return ErrUnresolvedLabel }

// NoSuchMemberError reports the class/member pair that failed to resolve
// after walking the parent chain to its root.
type NoSuchMemberError struct {
	Class  string
	Member string
}

func (e *NoSuchMemberError) Error() string {
	return fmt.Sprintf("%s: %s has no member %q", ErrNoSuchMember, e.Class, e.Member)
}

func (e *NoSuchMemberError) Unwrap() error { return ErrNoSuchMember }

// StepError wraps a fatal error with the statement and frame pointer that
// the machine was executing when it occurred. Its Error() is identical to
// the wrapped error, so ordinary %v/%s output and errors.Is/As checks are
// unaffected; the statement/frame detail only surfaces under %+v, which is
// what the CLI's --verbose flag requests.
type StepError struct {
	Stmt Stmt
	FP   FramePointer
	Err  error
}

func (e *StepError) Error() string { return e.Err.Error() }

func (e *StepError) Unwrap() error { return e.Err }

func (e *StepError) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "%s (statement %T, %s)", e.Err, e.Stmt, e.FP)
		return
	}
	fmt.Fprint(f, e.Error())
}
