// Package split implements the fragment splitter of spec §4.E: it
// turns one document into an ordered sequence of SISL strings, each
// no longer than a caller-supplied maximum length, such that joining
// them (package merge) reproduces the original document.
package split

import (
	"fmt"

	"github.com/signadot/sisl/encode"
	"github.com/signadot/sisl/ir"
	"github.com/signadot/sisl/sislerr"
)

// pathComp is one step of a leaf's path back to the document root:
// either an Obj key or a List index (spec §4.E: "a chain of nested
// !obj / !list wrappers").
type pathComp struct {
	key     string
	isIndex bool
	index   int
}

// leaf is a point in the tree that split stops descending at: either
// a scalar, or a container with no children (which still needs to be
// represented in some fragment).
type leaf struct {
	path  []pathComp
	value *ir.Node
}

// frame is one level of the explicit cursor stack collectLeaves walks
// instead of recursing, per spec §9's design note ("an explicit cursor
// stack (path of (container, child-iterator) pairs) rather than
// recursion that couples I/O and traversal").
type frame struct {
	node    *ir.Node
	keys    []string // for Obj frames
	elems   []*ir.Node
	i       int
	isIndex bool
}

// collectLeaves walks root depth-first, in insertion order, and
// returns every leaf along with its full path from the root.
func collectLeaves(root *ir.Node) []leaf {
	var leaves []leaf
	var pathStack []pathComp
	var stack []*frame

	push := func(n *ir.Node, isIndex bool) {
		f := &frame{node: n, isIndex: isIndex}
		if n.Kind == ir.Obj {
			f.keys = n.Keys()
		} else if n.Kind == ir.List {
			f.elems = n.Elems()
		}
		stack = append(stack, f)
	}

	isLeafNode := func(n *ir.Node) bool {
		if n.Kind == ir.Obj {
			return n.Len() == 0
		}
		if n.Kind == ir.List {
			return n.Len() == 0
		}
		return true
	}

	if isLeafNode(root) {
		return []leaf{{value: root}}
	}
	push(root, false)

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		switch top.node.Kind {
		case ir.Obj:
			if top.i >= len(top.keys) {
				stack = stack[:len(stack)-1]
				if len(pathStack) > 0 {
					pathStack = pathStack[:len(pathStack)-1]
				}
				continue
			}
			key := top.keys[top.i]
			top.i++
			child, _ := top.node.Get(key)
			pathStack = append(pathStack, pathComp{key: key})
			if isLeafNode(child) {
				p := append([]pathComp(nil), pathStack...)
				leaves = append(leaves, leaf{path: p, value: child})
				pathStack = pathStack[:len(pathStack)-1]
			} else {
				push(child, false)
			}
		case ir.List:
			if top.i >= len(top.elems) {
				stack = stack[:len(stack)-1]
				if len(pathStack) > 0 {
					pathStack = pathStack[:len(pathStack)-1]
				}
				continue
			}
			idx := top.i
			child := top.elems[idx]
			top.i++
			pathStack = append(pathStack, pathComp{isIndex: true, index: idx})
			if isLeafNode(child) {
				p := append([]pathComp(nil), pathStack...)
				leaves = append(leaves, leaf{path: p, value: child})
				pathStack = pathStack[:len(pathStack)-1]
			} else {
				push(child, true)
			}
		}
	}
	return leaves
}

// buildFragment rebuilds the minimal document that places leaf's
// value at its original position: a chain of single-child !obj/!list
// wrappers, innermost first (spec §4.E, "path wrapping").
func buildFragment(l leaf) *ir.Node {
	value := l.value
	for i := len(l.path) - 1; i >= 0; i-- {
		c := l.path[i]
		if c.isIndex {
			wrapper := ir.NewList()
			wrapper.SetAt(c.index, value)
			value = wrapper
		} else {
			wrapper := ir.NewObj()
			wrapper.Set(c.key, value)
			value = wrapper
		}
	}
	return value
}

// mergeDisjointTop returns a new top-level Obj holding a's members
// followed by b's, assuming (the caller has checked) no key appears
// in both — the packing step never needs a full recursive merge, only
// to append sibling top-level paths next to each other.
func mergeDisjointTop(a, b *ir.Node) *ir.Node {
	out := ir.NewObj()
	for _, k := range a.Keys() {
		v, _ := a.Get(k)
		out.Set(k, v)
	}
	for _, k := range b.Keys() {
		v, _ := b.Get(k)
		out.Set(k, v)
	}
	return out
}

func topKeySet(n *ir.Node) map[string]bool {
	s := make(map[string]bool, n.Len())
	for _, k := range n.Keys() {
		s[k] = true
	}
	return s
}

func disjoint(a map[string]bool, n *ir.Node) bool {
	for _, k := range n.Keys() {
		if a[k] {
			return false
		}
	}
	return true
}

// Split returns an ordered sequence of SISL strings, each at most
// maxLength bytes, whose deep merge (package merge) reproduces doc.
// The sequence has length 1 iff doc's canonical SISL encoding already
// fits within maxLength.
func Split(doc *ir.Node, maxLength int) ([]string, error) {
	full := encode.Encode(doc)
	if len(full) <= maxLength {
		return []string{full}, nil
	}

	leaves := collectLeaves(doc)

	type built struct {
		node    *ir.Node
		encoded string
	}
	frags := make([]built, len(leaves))
	for i, l := range leaves {
		node := buildFragment(l)
		enc := encode.Encode(node)
		if len(enc) > maxLength {
			return nil, fmt.Errorf("%w: minimum fragment needs %d bytes, max-length is %d",
				sislerr.ErrFragmentTooLarge, len(enc), maxLength)
		}
		frags[i] = built{node: node, encoded: enc}
	}

	var result []string
	i := 0
	for i < len(frags) {
		combined := frags[i].node
		combinedEncoded := frags[i].encoded
		used := topKeySet(combined)
		i++

		for i < len(frags) {
			if !disjoint(used, frags[i].node) {
				break
			}
			trial := mergeDisjointTop(combined, frags[i].node)
			trialEncoded := encode.Encode(trial)
			if len(trialEncoded) > maxLength {
				break
			}
			combined = trial
			combinedEncoded = trialEncoded
			for _, k := range frags[i].node.Keys() {
				used[k] = true
			}
			i++
		}
		result = append(result, combinedEncoded)
	}
	return result, nil
}
