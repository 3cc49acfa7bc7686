package jsonconv

import (
	"testing"

	"github.com/signadot/sisl/ir"
)

func TestFromJSONPreservesKeyOrder(t *testing.T) {
	doc, err := FromJSON([]byte(`{"z": 1, "a": 2, "m": 3}`))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"z", "a", "m"}
	got := doc.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFromJSONIntVsFloat(t *testing.T) {
	doc, err := FromJSON([]byte(`{"i": 3, "f": 3.0}`))
	if err != nil {
		t.Fatal(err)
	}
	i, _ := doc.Get("i")
	f, _ := doc.Get("f")
	if i.Kind != ir.Int || i.IntVal() != 3 {
		t.Errorf("i = %v, want Int(3)", i)
	}
	if f.Kind != ir.Float || f.FloatVal() != 3.0 {
		t.Errorf("f = %v, want Float(3.0)", f)
	}
}

func TestFromJSONOutOfRangeIntegerIsError(t *testing.T) {
	// A digit string far beyond int64's 19 digits, with no '.'/'e': looks like an
	// integer literal but overflows int64, so it must be a parse
	// error rather than silently widened to float (spec invariant 4
	// applied uniformly across every parse path, not just SISL's).
	_, err := FromJSON([]byte(`{"huge": 99999999999999999999999999}`))
	if err == nil {
		t.Fatal("expected error for out-of-range integer literal")
	}
}

func TestFromJSONTopLevelMustBeObject(t *testing.T) {
	if _, err := FromJSON([]byte(`[1,2,3]`)); err == nil {
		t.Fatal("expected error for non-object top-level JSON value")
	}
}

func TestFromJSONRejectsTrailingGarbage(t *testing.T) {
	if _, err := FromJSON([]byte(`{} garbage`)); err == nil {
		t.Fatal("expected error for trailing data")
	}
}

func TestToJSONPreservesOrderAndTypes(t *testing.T) {
	doc := ir.NewObj()
	doc.Set("b", ir.NewBool(true))
	doc.Set("a", ir.NewStr("x"))
	doc.Set("n", ir.NewNull())

	got := string(ToJSON(doc))
	want := `{"b":true,"a":"x","n":null}`
	if got != want {
		t.Errorf("ToJSON() = %q, want %q", got, want)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	orig := []byte(`{"list":[1,2,"three",null,true],"nested":{"k":1.5}}`)
	doc, err := FromJSON(orig)
	if err != nil {
		t.Fatal(err)
	}
	back, err := FromJSON(ToJSON(doc))
	if err != nil {
		t.Fatal(err)
	}
	if !doc.Equal(back) {
		t.Errorf("round trip changed the document")
	}
}
