package ir

// Node is a tagged document value (spec §3). Exactly one of the
// payload fields is meaningful, selected by Kind; which one is a
// matter of convention enforced by the constructors and accessors
// below, not by a Go type system that would require a type switch at
// every call site.
type Node struct {
	Kind Kind

	str   string
	i64   int64
	f64   float64
	boolv bool

	obj  *object
	list []*Node
}

func NewStr(v string) *Node   { return &Node{Kind: Str, str: v} }
func NewInt(v int64) *Node    { return &Node{Kind: Int, i64: v} }
func NewFloat(v float64) *Node { return &Node{Kind: Float, f64: v} }
func NewBool(v bool) *Node    { return &Node{Kind: Bool, boolv: v} }
func NewNull() *Node          { return &Node{Kind: Null} }
func NewObj() *Node           { return &Node{Kind: Obj, obj: newObject()} }
func NewList() *Node          { return &Node{Kind: List} }

// StrVal, IntVal, FloatVal, and BoolVal return a scalar node's payload.
// Calling the wrong accessor on the wrong Kind is a programmer error
// and panics, mirroring the tagged-union discipline of spec §9 ("a
// tagged sum, not a class hierarchy").
func (n *Node) StrVal() string {
	n.mustBe(Str)
	return n.str
}

func (n *Node) IntVal() int64 {
	n.mustBe(Int)
	return n.i64
}

func (n *Node) FloatVal() float64 {
	n.mustBe(Float)
	return n.f64
}

func (n *Node) BoolVal() bool {
	n.mustBe(Bool)
	return n.boolv
}

func (n *Node) mustBe(k Kind) {
	if n.Kind != k {
		panic("ir: wrong accessor " + k.Tag() + " for node of kind " + n.Kind.Tag())
	}
}

// --- Obj access ---

// Get returns the value for key and whether it was present. A present
// key mapped to a Null node is distinct from an absent key: ok is true
// in the former case, false in the latter. The joiner depends on this
// distinction (spec §4.A).
func (n *Node) Get(key string) (*Node, bool) {
	n.mustBe(Obj)
	return n.obj.get(key)
}

// Set inserts or updates key. Existing keys keep their position;
// new keys are appended (spec invariant 1).
func (n *Node) Set(key string, v *Node) {
	n.mustBe(Obj)
	n.obj.set(key, v)
}

// Keys returns the Obj's keys in insertion order. The caller must not
// mutate the returned slice.
func (n *Node) Keys() []string {
	n.mustBe(Obj)
	return n.obj.keys
}

// Len returns the number of Obj members or List elements.
func (n *Node) Len() int {
	switch n.Kind {
	case Obj:
		return n.obj.len()
	case List:
		return len(n.list)
	default:
		panic("ir: Len on scalar node of kind " + n.Kind.Tag())
	}
}

// --- List access ---

// At returns the element at index i of a List.
func (n *Node) At(i int) *Node {
	n.mustBe(List)
	return n.list[i]
}

// Elems returns a List's elements in index order. The caller must not
// mutate the returned slice.
func (n *Node) Elems() []*Node {
	n.mustBe(List)
	return n.list
}

// Append adds v at the end of a List.
func (n *Node) Append(v *Node) {
	n.mustBe(List)
	n.list = append(n.list, v)
}

// EnsureLen grows a List to length n, filling any new trailing
// positions with Null (spec invariant 2: list density).
func (n *Node) EnsureLen(length int) {
	n.mustBe(List)
	for len(n.list) < length {
		n.list = append(n.list, NewNull())
	}
}

// SetAt assigns the element at index i of a List, growing the list
// with Null fill as needed.
func (n *Node) SetAt(i int, v *Node) {
	n.mustBe(List)
	if i >= len(n.list) {
		n.EnsureLen(i + 1)
	}
	n.list[i] = v
}

// Clone returns a deep, independent copy of n: the copy shares no
// Node with the source, so a caller can keep or mutate it without
// aliasing the source document.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Kind: n.Kind, str: n.str, i64: n.i64, f64: n.f64, boolv: n.boolv}
	switch n.Kind {
	case Obj:
		c.obj = n.obj.clone()
	case List:
		c.list = make([]*Node, len(n.list))
		for i, v := range n.list {
			c.list[i] = v.Clone()
		}
	}
	return c
}

// Visit walks n and its descendants depth-first in document order,
// calling f on every node before its children.
func (n *Node) Visit(f func(*Node)) {
	f(n)
	switch n.Kind {
	case Obj:
		for _, v := range n.obj.vals {
			v.Visit(f)
		}
	case List:
		for _, v := range n.list {
			v.Visit(f)
		}
	}
}
