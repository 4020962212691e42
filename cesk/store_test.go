package cesk

import "testing"

func TestEmptyStoreLookupFails(t *testing.T) {
	_, err := EmptyStore.Lookup(FrameAddr(FramePointer{counter: 1}, "$x"))
	assert(t, err != nil, "expected lookup on empty store to fail")
}

func TestStoreExtendPreservesPriorBindings(t *testing.T) {
	fp := FramePointer{counter: 1}
	s1 := EmptyStore.Extend(FrameAddr(fp, "$a"), IntValue(1))
	s2 := s1.Extend(FrameAddr(fp, "$b"), IntValue(2))

	a, err := s2.Lookup(FrameAddr(fp, "$a"))
	assert(t, err == nil && a == IntValue(1), "expected $a to still be bound to 1, got %v, %v", a, err)

	b, err := s2.Lookup(FrameAddr(fp, "$b"))
	assert(t, err == nil && b == IntValue(2), "expected $b bound to 2, got %v, %v", b, err)

	// s1 must remain untouched: it is a distinct prior state.
	_, err = s1.Lookup(FrameAddr(fp, "$b"))
	assert(t, err != nil, "expected s1 to not see $b extended only in s2")
}

func TestStoreExtendOverridesPriorBinding(t *testing.T) {
	fp := FramePointer{counter: 1}
	s1 := EmptyStore.Extend(FrameAddr(fp, "$a"), IntValue(1))
	s2 := s1.Extend(FrameAddr(fp, "$a"), IntValue(99))

	v, err := s2.Lookup(FrameAddr(fp, "$a"))
	assert(t, err == nil && v == IntValue(99), "expected override to take effect, got %v, %v", v, err)

	v, err = s1.Lookup(FrameAddr(fp, "$a"))
	assert(t, err == nil && v == IntValue(1), "expected s1's binding to remain 1, got %v, %v", v, err)
}

func TestAddressOrderingByKindThenCounterThenOffset(t *testing.T) {
	fpA := Address{kind: frameKind, ptr: 1, offset: "z"}
	fpB := Address{kind: frameKind, ptr: 2, offset: "a"}
	opA := Address{kind: objectKind, ptr: 1, offset: "a"}

	assert(t, compareAddress(fpA, fpB) < 0, "lower counter should sort first within the same kind")
	assert(t, compareAddress(fpB, opA) < 0, "frame addresses should sort before object addresses regardless of counter")
}
