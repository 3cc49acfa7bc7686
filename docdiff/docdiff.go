// Package docdiff computes a structural diff between two documents.
// It is not part of the wire-format contract (spec §6 names the
// complete external interface, and the CLI does not call it) — it
// exists to give Go callers of this module, and this module's own
// test suite, a way to describe what a merge actually changed.
//
// The alignment technique is adapted from the teacher lineage's
// libdiff.DiffObject: map each Obj key (or each List element's
// canonical encoding) to a rune, hand the two rune sequences to
// diffmatchpatch's Myers-diff implementation, and walk the result to
// know which entries are shared, added, or removed — rather than
// writing an O(n*m) alignment by hand.
package docdiff

import (
	"github.com/signadot/sisl/encode"
	"github.com/signadot/sisl/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns a document describing the difference between from and
// to, or nil if they are equal. The result uses three marker keys
// that can't collide with SISL's own grammar (a bare "+"/"-"/"~" is
// not a legal SISL element name): "+" wraps a value only to has,
// "-" wraps a value only from has, and "~" wraps a {from, to} pair
// for a value both have but disagree on.
func Diff(from, to *ir.Node) *ir.Node {
	if from.Kind != to.Kind {
		return changed(from, to)
	}
	switch from.Kind {
	case ir.Obj:
		return diffObj(from, to)
	case ir.List:
		return diffList(from, to)
	default:
		if from.Equal(to) {
			return nil
		}
		return changed(from, to)
	}
}

func changed(from, to *ir.Node) *ir.Node {
	pair := ir.NewObj()
	pair.Set("from", from)
	pair.Set("to", to)
	wrapper := ir.NewObj()
	wrapper.Set("~", pair)
	return wrapper
}

func diffObj(from, to *ir.Node) *ir.Node {
	fieldMap := map[string]rune{}
	runeMap := map[rune]string{}
	fromRunes := mapKeysTo(fieldMap, runeMap, from)
	toRunes := mapKeysTo(fieldMap, runeMap, to)

	dmp := diffpatch.New()
	diffs := dmp.DiffMainRunes([]rune(fromRunes), []rune(toRunes), false)

	result := ir.NewObj()
	for _, d := range diffs {
		for _, r := range d.Text {
			key := runeMap[r]
			switch d.Type {
			case diffpatch.DiffDelete:
				removed, _ := from.Get(key)
				result.Set(key, wrapRemoved(removed))
			case diffpatch.DiffInsert:
				added, _ := to.Get(key)
				result.Set(key, wrapAdded(added))
			case diffpatch.DiffEqual:
				fv, _ := from.Get(key)
				tv, _ := to.Get(key)
				if d := Diff(fv, tv); d != nil {
					result.Set(key, d)
				}
			}
		}
	}
	if result.Len() == 0 {
		return nil
	}
	return result
}

func diffList(from, to *ir.Node) *ir.Node {
	elemMap := map[string]rune{}
	runeMap := map[rune]string{}
	fromRunes := mapElemsTo(elemMap, runeMap, from)
	toRunes := mapElemsTo(elemMap, runeMap, to)

	dmp := diffpatch.New()
	diffs := dmp.DiffMainRunes([]rune(fromRunes), []rune(toRunes), false)

	fromElems, toElems := from.Elems(), to.Elems()
	result := ir.NewList()
	fi, ti := 0, 0
	for _, d := range diffs {
		for range d.Text {
			switch d.Type {
			case diffpatch.DiffDelete:
				result.Append(wrapRemoved(fromElems[fi]))
				fi++
			case diffpatch.DiffInsert:
				result.Append(wrapAdded(toElems[ti]))
				ti++
			case diffpatch.DiffEqual:
				fi++
				ti++
			}
		}
	}
	if result.Len() == 0 {
		return nil
	}
	return result
}

func wrapRemoved(v *ir.Node) *ir.Node {
	w := ir.NewObj()
	w.Set("-", v)
	return w
}

func wrapAdded(v *ir.Node) *ir.Node {
	w := ir.NewObj()
	w.Set("+", v)
	return w
}

// mapKeysTo assigns each distinct Obj key a stable rune so the two
// sides of a diff can be handed to diffmatchpatch as plain strings.
func mapKeysTo(m map[string]rune, im map[rune]string, n *ir.Node) string {
	keys := n.Keys()
	rs := make([]rune, len(keys))
	for i, k := range keys {
		r, ok := m[k]
		if !ok {
			r = rune(len(m))
			m[k] = r
			im[r] = k
		}
		rs[i] = r
	}
	return string(rs)
}

// mapElemsTo assigns each List element a rune keyed by its canonical
// SISL encoding, so two structurally identical elements (even if they
// are different *ir.Node instances) land on the same rune and diff as
// equal.
func mapElemsTo(m map[string]rune, im map[rune]string, n *ir.Node) string {
	elems := n.Elems()
	rs := make([]rune, len(elems))
	for i, e := range elems {
		enc := encode.Encode(wrapScalarForEncode(e))
		r, ok := m[enc]
		if !ok {
			r = rune(len(m))
			m[enc] = r
			im[r] = enc
		}
		rs[i] = r
	}
	return string(rs)
}

// wrapScalarForEncode lets encode.Encode (which renders an Obj body)
// produce a canonical string for any node, including bare scalars, by
// wrapping it as the sole field of a throwaway object.
func wrapScalarForEncode(n *ir.Node) *ir.Node {
	w := ir.NewObj()
	w.Set("v", n)
	return w
}
