package ir

// object is an insertion-ordered string-keyed map: a vector of entries
// plus an auxiliary index for O(1) lookup. Plain map[string]*Node would
// lose the insertion order that spec invariant 1 requires every reader
// and writer to preserve.
type object struct {
	keys  []string
	vals  []*Node
	index map[string]int
}

func newObject() *object {
	return &object{index: map[string]int{}}
}

func (o *object) get(key string) (*Node, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.vals[i], true
}

// set updates the value for key if present (position unchanged), or
// appends a new entry at the end (spec: "new keys are appended ... in
// insertion order").
func (o *object) set(key string, v *Node) {
	if i, ok := o.index[key]; ok {
		o.vals[i] = v
		return
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, v)
}

func (o *object) len() int { return len(o.keys) }

func (o *object) clone() *object {
	n := &object{
		keys:  append([]string(nil), o.keys...),
		vals:  make([]*Node, len(o.vals)),
		index: make(map[string]int, len(o.index)),
	}
	for k, i := range o.index {
		n.index[k] = i
	}
	for i, v := range o.vals {
		n.vals[i] = v.Clone()
	}
	return n
}
