package merge

import (
	"testing"

	"github.com/signadot/sisl/encode"
	"github.com/signadot/sisl/ir"
	"github.com/signadot/sisl/parse"
)

func mustJoin(t *testing.T, frags ...string) *ir.Node {
	t.Helper()
	doc, err := Join(frags)
	if err != nil {
		t.Fatalf("Join(%v) error: %v", frags, err)
	}
	return doc
}

func mustEqual(t *testing.T, got *ir.Node, want string) {
	t.Helper()
	wantDoc, err := parse.Parse(want)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", want, err)
	}
	if !got.Equal(wantDoc) {
		t.Errorf("got %s, want %s", encode.Encode(got), want)
	}
}

func TestJoinSeedD(t *testing.T) {
	got := mustJoin(t,
		`{abc: !list {_0: !str "I", _1: !list {_0: !str "am"}}}`,
		`{abc: !list {_1: !list {_1: !str "a"}, _2: !str "list"}}`,
	)
	abc, _ := got.Get("abc")
	if abc.Len() != 3 {
		t.Fatalf("abc has len %d, want 3", abc.Len())
	}
	if abc.At(0).StrVal() != "I" {
		t.Errorf("abc[0] = %v, want I", abc.At(0))
	}
	inner := abc.At(1)
	if inner.Kind != ir.List || inner.Len() != 2 || inner.At(0).StrVal() != "am" || inner.At(1).StrVal() != "a" {
		t.Errorf("abc[1] = %v, want [am a]", inner)
	}
	if abc.At(2).StrVal() != "list" {
		t.Errorf("abc[2] = %v, want list", abc.At(2))
	}
}

func TestJoinSeedE(t *testing.T) {
	got := mustJoin(t,
		`{abc: !list {_0: !str "I", _1: !list {_0: !str "am"}}}`,
		`{abc: !list {_2: !list {_0: !str "a"}, _3: !str "list"}}`,
	)
	abc, _ := got.Get("abc")
	if abc.Len() != 4 {
		t.Fatalf("abc has len %d, want 4", abc.Len())
	}
	if abc.At(1).Kind != ir.List || abc.At(1).Len() != 1 || abc.At(1).At(0).StrVal() != "am" {
		t.Errorf("abc[1] = %v, want [am]", abc.At(1))
	}
	if abc.At(2).Kind != ir.List || abc.At(2).Len() != 1 || abc.At(2).At(0).StrVal() != "a" {
		t.Errorf("abc[2] = %v, want [a]", abc.At(2))
	}
}

func TestJoinSeedF(t *testing.T) {
	// Sparse index: the gap at position 1 is never written by either
	// fragment, so it must come out Null without clobbering index 0's
	// value with the Null *parse.Parse* would have density-filled into
	// the second fragment's own dense List.
	got := mustJoin(t,
		`{arr: !list {_0: !int "1"}}`,
		`{arr: !list {_2: !int "3"}}`,
	)
	arr, _ := got.Get("arr")
	if arr.Len() != 3 {
		t.Fatalf("arr has len %d, want 3", arr.Len())
	}
	if arr.At(0).IntVal() != 1 {
		t.Errorf("arr[0] = %v, want 1", arr.At(0))
	}
	if arr.At(1).Kind != ir.Null {
		t.Errorf("arr[1] = %v, want Null", arr.At(1))
	}
	if arr.At(2).IntVal() != 3 {
		t.Errorf("arr[2] = %v, want 3", arr.At(2))
	}
}

func TestJoinIdempotenceOnSingleton(t *testing.T) {
	s := `{a: !int "1", b: !list {_0: !str "x"}}`
	got := mustJoin(t, s)
	mustEqual(t, got, s)
}

func TestJoinObjFirstAppearanceOrder(t *testing.T) {
	got := mustJoin(t,
		`{a: !int "1", b: !int "2"}`,
		`{c: !int "3", a: !int "4"}`,
	)
	want := []string{"a", "b", "c"}
	if len(got.Keys()) != 3 {
		t.Fatalf("Keys() = %v", got.Keys())
	}
	for i, k := range want {
		if got.Keys()[i] != k {
			t.Errorf("Keys()[%d] = %q, want %q", i, got.Keys()[i], k)
		}
	}
	a, _ := got.Get("a")
	if a.IntVal() != 4 {
		t.Errorf("a = %d, want 4 (last write wins)", a.IntVal())
	}
}

func TestJoinTypeMismatchOverwrites(t *testing.T) {
	// spec §7: merge-incompatible never happens — the right-hand side
	// always wins on a shape conflict, unlike the throw-on-conflict
	// behavior of the implementation this package is grounded on.
	got := mustJoin(t,
		`{a: !int "1"}`,
		`{a: !str "now a string"}`,
	)
	a, _ := got.Get("a")
	if a.Kind != ir.Str || a.StrVal() != "now a string" {
		t.Errorf("a = %v, want Str(now a string)", a)
	}
}

func TestJoinListDensityAfterJoin(t *testing.T) {
	got := mustJoin(t, `{a: !list {_0: !int "1"}}`, `{a: !list {_5: !int "2"}}`)
	a, _ := got.Get("a")
	if a.Len() != 6 {
		t.Fatalf("a has len %d, want 6", a.Len())
	}
	for i := 1; i < 5; i++ {
		if a.At(i).Kind != ir.Null {
			t.Errorf("a[%d] = %v, want Null", i, a.At(i))
		}
	}
}

func TestJoinEmptyFragmentListYieldsEmptyDoc(t *testing.T) {
	got, err := Join(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != ir.Obj || got.Len() != 0 {
		t.Fatalf("Join(nil) = %v, want empty Obj", got)
	}
}
