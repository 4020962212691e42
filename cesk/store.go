package cesk

// Store is an immutable functional map from addresses to values. Extending
// a store returns a new store; every prior store remains valid, which is
// what makes the machine's state history replayable (see SPEC_FULL.md,
// Concurrency & Resource Model).
//
// It is backed by a path-copying binary search tree ordered by
// compareAddress. The tree is never rebalanced. Lookup and Extend are
// O(depth), and depth is not bounded by O(log n): pointer counters only
// increase, so the addresses of each new frame or object sort after all
// earlier ones of the same kind and are inserted at the right edge of the
// tree, making depth grow roughly linearly with the number of frames and
// objects allocated.
type Store struct {
	root *storeNode
}

type storeNode struct {
	addr        Address
	value       Value
	left, right *storeNode
}

// EmptyStore is the initial store that binds no addresses.
var EmptyStore = &Store{}

// Lookup returns the value bound to addr, or ErrUnboundAddr if no binding
// exists in this store.
func (s *Store) Lookup(addr Address) (Value, error) {
	for n := s.root; n != nil; {
		switch c := compareAddress(addr, n.addr); {
		case c == 0:
			return n.value, nil
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}
	return nil, &UnboundAddrError{Addr: addr}
}

// Extend returns a new store identical to s except that addr is bound to
// value, overriding any previous binding for addr. s itself is untouched.
func (s *Store) Extend(addr Address, value Value) *Store {
	return &Store{root: insertNode(s.root, addr, value)}
}

func insertNode(n *storeNode, addr Address, value Value) *storeNode {
	if n == nil {
		return &storeNode{addr: addr, value: value}
	}
	switch c := compareAddress(addr, n.addr); {
	case c == 0:
		return &storeNode{addr: addr, value: value, left: n.left, right: n.right}
	case c < 0:
		return &storeNode{addr: n.addr, value: n.value, left: insertNode(n.left, addr, value), right: n.right}
	default:
		return &storeNode{addr: n.addr, value: n.value, left: n.left, right: insertNode(n.right, addr, value)}
	}
}
