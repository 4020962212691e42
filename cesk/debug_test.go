package cesk

import (
	"bytes"
	"strings"
	"testing"
)

func newDebuggableMain() *ClassDef {
	main := NewClassDef("Main")
	main.SetParent("Object")
	main.Methods["main"] = &MethodDef{
		Name: "main",
		Entry: chain(
			&PrintStmt{Args: []Expr{IntExpr{Value: 1}}},
			&ReturnStmt{Result: VoidExpr{}},
		),
	}
	return main
}

// TestDebuggerRunCommandReachesCompletion exercises "r"/run: the debugger
// should free-run to termination exactly like the non-interactive driver,
// still executing every statement along the way.
func TestDebuggerRunCommandReachesCompletion(t *testing.T) {
	ctx := newTestContext()
	var programOut bytes.Buffer
	ctx.Stdout = &programOut
	ctx.Classes.Register(newObjectClass())
	ctx.Classes.Register(newDebuggableMain())

	main, _ := ctx.Classes.Lookup("Main")
	s, err := Initial(ctx, main)
	assert(t, err == nil, "unexpected error building initial state: %v", err)

	var transcript bytes.Buffer
	dbg := NewDebugger(ctx, s, strings.NewReader("r\n"), &transcript)
	outcome, err := dbg.Run()
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, outcome.Kind == Returned, "expected normal return, got %v", outcome.Kind)
	if programOut.String() != "1\n" {
		t.Fatalf("expected program output \"1\\n\", got %q", programOut.String())
	}
	if !strings.Contains(transcript.String(), "Commands:") {
		t.Fatalf("expected the command banner in the debugger transcript, got %q", transcript.String())
	}
}

// TestDebuggerNextCommandStepsOneStatementAtATime exercises "n"/next: the
// machine should advance exactly one statement per command, printing state
// after each, and return the outcome once the program terminates.
func TestDebuggerNextCommandStepsOneStatementAtATime(t *testing.T) {
	ctx := newTestContext()
	var programOut bytes.Buffer
	ctx.Stdout = &programOut
	ctx.Classes.Register(newObjectClass())
	ctx.Classes.Register(newDebuggableMain())

	main, _ := ctx.Classes.Lookup("Main")
	s, err := Initial(ctx, main)
	assert(t, err == nil, "unexpected error building initial state: %v", err)

	var transcript bytes.Buffer
	// main's body is exactly two statements (print, return), so two "next"
	// commands are enough to drive it to termination without exhausting the
	// command reader.
	dbg := NewDebugger(ctx, s, strings.NewReader("n\nn\n"), &transcript)
	outcome, err := dbg.Run()
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, outcome.Kind == Returned, "expected normal return, got %v", outcome.Kind)
	if programOut.String() != "1\n" {
		t.Fatalf("expected program output \"1\\n\", got %q", programOut.String())
	}
	if strings.Count(transcript.String(), "next statement>") < 2 {
		t.Fatalf("expected at least two state dumps in the transcript, got %q", transcript.String())
	}
}

// TestDebuggerBreakpointStopsFreeRun exercises "b <label>" followed by "r":
// a free-run should stop at the breakpoint instead of running to
// completion, then a further "r" should finish the program.
func TestDebuggerBreakpointStopsFreeRun(t *testing.T) {
	ctx := newTestContext()
	var programOut bytes.Buffer
	ctx.Stdout = &programOut
	ctx.Classes.Register(newObjectClass())

	main := NewClassDef("Main")
	main.SetParent("Object")
	// The debugger lowercases every command line, including break targets,
	// so the label it matches against must be lowercase too.
	label := &LabelStmt{Name: "l"}
	ctx.Labels.Register("l", label)
	main.Methods["main"] = &MethodDef{
		Name: "main",
		Entry: chain(
			&PrintStmt{Args: []Expr{IntExpr{Value: 1}}},
			label,
			&PrintStmt{Args: []Expr{IntExpr{Value: 2}}},
			&ReturnStmt{Result: VoidExpr{}},
		),
	}
	ctx.Classes.Register(main)

	s, err := Initial(ctx, main)
	assert(t, err == nil, "unexpected error building initial state: %v", err)

	var transcript bytes.Buffer
	// "b l" arms the breakpoint, "r" free-runs into it, "n" steps past the
	// label statement itself (resuming "r" without first stepping off a hit
	// breakpoint would re-detect the same unexecuted label every iteration),
	// and the final "r" free-runs the remainder to completion.
	dbg := NewDebugger(ctx, s, strings.NewReader("b l\nr\nn\nr\n"), &transcript)
	outcome, err := dbg.Run()
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, outcome.Kind == Returned, "expected normal return, got %v", outcome.Kind)
	if programOut.String() != "1\n2\n" {
		t.Fatalf("expected program output \"1\\n2\\n\", got %q", programOut.String())
	}
	if !strings.Contains(transcript.String(), "breakpoint") {
		t.Fatalf("expected a breakpoint hit in the transcript, got %q", transcript.String())
	}
}
