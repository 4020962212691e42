package cesk

import "io"

// Context bundles the three process-wide singletons the design notes call
// out explicitly (spec.md §9: "all three should be bundled into an explicit
// machine context passed to the stepper rather than true globals, to
// support multiple interpreters in one process and deterministic test
// isolation"): the class registry, the label index, and the fresh-pointer
// counter. It also carries the output sink the Print statement writes to,
// playing the role the teacher's VM.stdout *bufio.Writer plays for Writec.
type Context struct {
	Classes *ClassDB
	Labels  *LabelIndex
	Stdout  io.Writer

	counter uint64
}

// NewContext returns a fresh, empty machine context writing print output to
// out.
func NewContext(out io.Writer) *Context {
	return &Context{
		Classes: NewClassDB(),
		Labels:  NewLabelIndex(),
		Stdout:  out,
	}
}

// FreshFramePointer mints a new, strictly-increasing frame pointer.
func (c *Context) FreshFramePointer() FramePointer {
	c.counter++
	return FramePointer{counter: c.counter}
}

// FreshObjectPointer mints a new, strictly-increasing object pointer. Frame
// and object pointers share one counter so that the deterministic total
// order required by the store's key ordering holds across both kinds.
func (c *Context) FreshObjectPointer() ObjectPointer {
	c.counter++
	return ObjectPointer{counter: c.counter}
}
