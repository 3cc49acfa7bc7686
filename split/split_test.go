package split

import (
	"testing"

	"github.com/signadot/sisl/encode"
	"github.com/signadot/sisl/ir"
	"github.com/signadot/sisl/merge"
	"github.com/signadot/sisl/parse"
)

func TestSplitNoSplitNeeded(t *testing.T) {
	doc := ir.NewObj()
	doc.Set("a", ir.NewInt(1))

	frags, err := Split(doc, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if len(frags) != 1 {
		t.Fatalf("len(frags) = %d, want 1", len(frags))
	}
	if frags[0] != encode.Encode(doc) {
		t.Errorf("frags[0] = %q, want canonical encoding", frags[0])
	}
}

func TestSplitSeedC(t *testing.T) {
	doc := ir.NewObj()
	doc.Set("abc", ir.NewInt(2))
	doc.Set("def", ir.NewInt(3))

	frags, err := Split(doc, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(frags) != 2 {
		t.Fatalf("len(frags) = %d, want 2", len(frags))
	}
	for _, f := range frags {
		if len(f) > 20 {
			t.Errorf("fragment %q exceeds max length 20", f)
		}
	}
	joined, err := merge.Join(frags)
	if err != nil {
		t.Fatal(err)
	}
	if !joined.Equal(doc) {
		t.Errorf("join(split(x)) != x")
	}
}

func TestSplitEmptyDocument(t *testing.T) {
	frags, err := Split(ir.NewObj(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(frags) != 1 || frags[0] != "{}" {
		t.Fatalf("Split({}, 2) = %v, want [\"{}\"]", frags)
	}
}

func TestSplitFragmentTooLargeIsError(t *testing.T) {
	doc := ir.NewObj()
	doc.Set("averyveryverylongkeyname", ir.NewInt(1))

	if _, err := Split(doc, 3); err == nil {
		t.Fatal("expected fragment-too-large error")
	}
}

func TestSplitJoinInverseOnNestedLists(t *testing.T) {
	doc, err := parse.Parse(`{abc: !list {_0: !str "I", _1: !list {_0: !str "am", _1: !str "a"}, _2: !str "list"}}`)
	if err != nil {
		t.Fatal(err)
	}

	// The whole document encodes to 85 bytes, so every limit below that
	// forces a split.
	for _, maxLen := range []int{40, 48, 64, 1000} {
		frags, err := Split(doc, maxLen)
		if err != nil {
			t.Fatalf("maxLen=%d: %v", maxLen, err)
		}
		joined, err := merge.Join(frags)
		if err != nil {
			t.Fatalf("maxLen=%d: join error: %v", maxLen, err)
		}
		if !joined.Equal(doc) {
			t.Errorf("maxLen=%d: join(split(x, L)) != x", maxLen)
		}
	}
}

func TestSplitPreservesEmptyContainerLeaves(t *testing.T) {
	doc := ir.NewObj()
	doc.Set("a", ir.NewList())
	doc.Set("b", ir.NewInt(1))

	frags, err := Split(doc, 20)
	if err != nil {
		t.Fatal(err)
	}
	joined, err := merge.Join(frags)
	if err != nil {
		t.Fatal(err)
	}
	av, ok := joined.Get("a")
	if !ok || av.Kind != ir.List || av.Len() != 0 {
		t.Fatalf("joined[a] = %v, want empty List", av)
	}
}
