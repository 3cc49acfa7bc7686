package ir

// Equal reports whether n and o represent the same document value:
// same Kind, same payload, same Obj key order, same List elements.
// Tests call it directly; github.com/google/go-cmp also calls an
// Equal method in preference to reflecting over unexported fields.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Kind != o.Kind {
		return false
	}
	switch n.Kind {
	case Str:
		return n.str == o.str
	case Int:
		return n.i64 == o.i64
	case Float:
		return n.f64 == o.f64
	case Bool:
		return n.boolv == o.boolv
	case Null:
		return true
	case Obj:
		if len(n.obj.keys) != len(o.obj.keys) {
			return false
		}
		for i, k := range n.obj.keys {
			if o.obj.keys[i] != k {
				return false
			}
			if !n.obj.vals[i].Equal(o.obj.vals[i]) {
				return false
			}
		}
		return true
	case List:
		if len(n.list) != len(o.list) {
			return false
		}
		for i := range n.list {
			if !n.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
