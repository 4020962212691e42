package cesk

import "fmt"

// pointerKind tags which counter space a Pointer was minted from. Ordering
// addresses by kind first keeps frame and object addresses from interleaving
// even though they share one monotonic counter.
type pointerKind int

const (
	frameKind pointerKind = iota
	objectKind
)

// FramePointer is a fresh, totally ordered token minted on entry to a
// method. All local registers in that activation become addresses derived
// from it.
type FramePointer struct {
	counter uint64
}

// ObjectPointer is a fresh, totally ordered token minted by New. All fields
// of that instance become addresses derived from it.
type ObjectPointer struct {
	counter uint64
}

func (p FramePointer) String() string  { return fmt.Sprintf("fp%d", p.counter) }
func (p ObjectPointer) String() string { return fmt.Sprintf("op%d", p.counter) }

// Address keys the store: a pointer (frame or object) plus an offset name
// (a register or field name).
type Address struct {
	kind   pointerKind
	ptr    uint64
	offset string
}

// FrameAddr builds the address of register name within the activation
// identified by fp.
func FrameAddr(fp FramePointer, name string) Address {
	return Address{kind: frameKind, ptr: fp.counter, offset: name}
}

// FieldAddr builds the address of field name on the object identified by op.
func FieldAddr(op ObjectPointer, name string) Address {
	return Address{kind: objectKind, ptr: op.counter, offset: name}
}

func (a Address) String() string {
	tag := "fp"
	if a.kind == objectKind {
		tag = "op"
	}
	return fmt.Sprintf("%s%d.%s", tag, a.ptr, a.offset)
}

// compareAddress orders addresses first by pointer-kind tag, then by the
// counter value of the pointer, then lexicographically by offset string, as
// required so the persistent store has a deterministic key order.
func compareAddress(a, b Address) int {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}
	if a.ptr != b.ptr {
		if a.ptr < b.ptr {
			return -1
		}
		return 1
	}
	switch {
	case a.offset < b.offset:
		return -1
	case a.offset > b.offset:
		return 1
	default:
		return 0
	}
}
