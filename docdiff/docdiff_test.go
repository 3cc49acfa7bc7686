package docdiff

import (
	"testing"

	"github.com/signadot/sisl/ir"
	"github.com/signadot/sisl/parse"
)

func mustParse(t *testing.T, s string) *ir.Node {
	t.Helper()
	n, err := parse.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestDiffEqualDocumentsIsNil(t *testing.T) {
	a := mustParse(t, `{x: !int "1"}`)
	b := mustParse(t, `{x: !int "1"}`)
	if d := Diff(a, b); d != nil {
		t.Fatalf("Diff(equal) = %v, want nil", d)
	}
}

func TestDiffDetectsChangedField(t *testing.T) {
	a := mustParse(t, `{x: !int "1"}`)
	b := mustParse(t, `{x: !int "2"}`)

	d := Diff(a, b)
	if d == nil {
		t.Fatal("Diff() = nil, want a diff")
	}
	x, ok := d.Get("x")
	if !ok {
		t.Fatal("diff missing key x")
	}
	tilde, ok := x.Get("~")
	if !ok {
		t.Fatal("changed field not wrapped in '~'")
	}
	from, _ := tilde.Get("from")
	to, _ := tilde.Get("to")
	if from.IntVal() != 1 || to.IntVal() != 2 {
		t.Errorf("from=%v to=%v, want 1, 2", from, to)
	}
}

func TestDiffDetectsAddedAndRemovedField(t *testing.T) {
	a := mustParse(t, `{x: !int "1"}`)
	b := mustParse(t, `{y: !int "2"}`)

	d := Diff(a, b)
	if d == nil {
		t.Fatal("Diff() = nil, want a diff")
	}
	xv, ok := d.Get("x")
	if !ok {
		t.Fatal("diff missing removed key x")
	}
	if _, ok := xv.Get("-"); !ok {
		t.Error("removed field not wrapped in '-'")
	}
	yv, ok := d.Get("y")
	if !ok {
		t.Fatal("diff missing added key y")
	}
	if _, ok := yv.Get("+"); !ok {
		t.Error("added field not wrapped in '+'")
	}
}

func TestDiffUnchangedFieldsOmitted(t *testing.T) {
	a := mustParse(t, `{x: !int "1", y: !int "2"}`)
	b := mustParse(t, `{x: !int "1", y: !int "3"}`)

	d := Diff(a, b)
	if _, ok := d.Get("x"); ok {
		t.Error("unchanged field x should be omitted from the diff")
	}
	if _, ok := d.Get("y"); !ok {
		t.Error("changed field y should be present in the diff")
	}
}

func TestDiffList(t *testing.T) {
	a := mustParse(t, `{l: !list {_0: !str "a", _1: !str "b"}}`)
	b := mustParse(t, `{l: !list {_0: !str "a", _1: !str "c"}}`)

	d := Diff(a, b)
	if d == nil {
		t.Fatal("Diff() = nil, want a diff")
	}
	l, ok := d.Get("l")
	if !ok || l.Kind != ir.List {
		t.Fatalf("diff[l] = %v, want a List", l)
	}
	if l.Len() != 2 {
		t.Fatalf("diff[l] has %d entries, want a removed+added pair for 'b'/'c'", l.Len())
	}
}
