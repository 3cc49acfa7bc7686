// Package merge implements the joiner of spec §4.F: it recombines a
// sequence of SISL fragments (package split's output, or any other
// sequence of documents meant to describe the same whole) into one
// document by deep merge.
//
// Each fragment is parsed independently, then folded left to right
// into an accumulator: Obj union (existing keys recurse, new keys
// append in the fragment's order), List merge by index, and scalar
// overwrite — where overwrite also covers a type mismatch between the
// accumulator and the incoming value (spec §4.F, §7: "merge-
// incompatible: never" — unlike the original implementation this is
// grounded on, which raises on a type clash, the right-hand side
// always wins here).
package merge

import (
	"github.com/signadot/sisl/ir"
	"github.com/signadot/sisl/parse"
)

// mergeable is the joiner's own accumulator shape: unlike *ir.Node it
// represents a List sparsely, keyed by the indices a fragment actually
// wrote. That distinction matters: spec §4.F's "if Dᵢ has index k and
// A lacks it" must test against indices a fragment's own !list body
// named, not against the Null gap-fill parse.Parse's dense *ir.Node
// would already have inserted for any index the fragment itself never
// wrote. Densifying (Null-filling the gaps) happens exactly once, in
// toNode, after every fragment has been folded in.
type mergeable struct {
	kind ir.Kind

	// Obj
	keys  []string
	vals  []*mergeable
	index map[string]int

	// List, sparse by source index
	entries map[int]*mergeable
	maxIdx  int

	// scalar (Str, Int, Float, Bool, Null)
	scalar *ir.Node
}

// Join parses each fragment and deep-merges them in order into a
// single document (spec §4.F). A single-element slice is returned
// parsed but otherwise untouched, satisfying join idempotence on
// singletons (spec §8 property 4).
func Join(fragments []string) (*ir.Node, error) {
	var acc *mergeable
	for _, frag := range fragments {
		raw, err := parse.ParseRaw(frag)
		if err != nil {
			return nil, err
		}
		m := fromRaw(raw)
		if acc == nil {
			acc = m
		} else {
			acc = mergeInto(acc, m)
		}
	}
	if acc == nil {
		return ir.NewObj(), nil
	}
	return toNode(acc), nil
}

// fromRaw builds a sparse mergeable tree directly from a parsed
// fragment's raw grouping, before any density-fill has happened.
func fromRaw(raw *parse.RawNode) *mergeable {
	switch raw.Kind {
	case ir.Obj:
		m := &mergeable{kind: ir.Obj, index: map[string]int{}}
		for _, mem := range raw.Members {
			child := fromRaw(mem.Value)
			setObjField(m, mem.Name, child)
		}
		return m
	case ir.List:
		m := &mergeable{kind: ir.List, entries: map[int]*mergeable{}, maxIdx: -1}
		for _, mem := range raw.Members {
			idx, err := parse.ListMemberIndex(mem)
			if err != nil {
				// Already validated during ParseRaw; unreachable.
				continue
			}
			m.entries[idx] = fromRaw(mem.Value)
			if idx > m.maxIdx {
				m.maxIdx = idx
			}
		}
		return m
	default:
		return &mergeable{kind: raw.Kind, scalar: raw.Scalar}
	}
}

func setObjField(m *mergeable, name string, v *mergeable) {
	if i, ok := m.index[name]; ok {
		m.vals[i] = v
		return
	}
	m.index[name] = len(m.keys)
	m.keys = append(m.keys, name)
	m.vals = append(m.vals, v)
}

// mergeInto folds b into a and returns the result (spec §4.F's merge
// rule, applied pairwise). A kind mismatch between a and b — including
// one side being a scalar and the other a container — is an overwrite:
// b always wins.
func mergeInto(a, b *mergeable) *mergeable {
	if a.kind != b.kind {
		return b
	}
	switch a.kind {
	case ir.Obj:
		for i, name := range b.keys {
			bv := b.vals[i]
			if j, ok := a.index[name]; ok {
				a.vals[j] = mergeInto(a.vals[j], bv)
			} else {
				setObjField(a, name, bv)
			}
		}
		return a
	case ir.List:
		for idx, bv := range b.entries {
			if av, ok := a.entries[idx]; ok {
				a.entries[idx] = mergeInto(av, bv)
			} else {
				a.entries[idx] = bv
			}
			if idx > a.maxIdx {
				a.maxIdx = idx
			}
		}
		return a
	default:
		// Same scalar kind on both sides: the right-hand fragment's
		// value replaces the left's (spec §4.F scalar rule).
		return b
	}
}

// toNode densifies a merged tree into the dense *ir.Node shape every
// other package works with: List gaps that no fragment ever wrote an
// index for become Null (spec invariant 2, §4.F: "gaps... filled with
// Null").
func toNode(m *mergeable) *ir.Node {
	switch m.kind {
	case ir.Obj:
		obj := ir.NewObj()
		for i, key := range m.keys {
			obj.Set(key, toNode(m.vals[i]))
		}
		return obj
	case ir.List:
		list := ir.NewList()
		if m.maxIdx >= 0 {
			list.EnsureLen(m.maxIdx + 1)
		}
		for idx, v := range m.entries {
			list.SetAt(idx, toNode(v))
		}
		return list
	default:
		return m.scalar
	}
}
