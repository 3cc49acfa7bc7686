package xmlcodec

import (
	"testing"
)

func TestFromGenericXMLSeedI(t *testing.T) {
	doc, err := FromGenericXML([]byte(`<data><item>x</item></data>`))
	if err != nil {
		t.Fatal(err)
	}
	root, ok := doc.Get("_root")
	if !ok {
		t.Fatal("missing _root")
	}
	tag, _ := root.Get("_tag")
	if tag.StrVal() != "data" {
		t.Fatalf("_root._tag = %q, want data", tag.StrVal())
	}
	children, ok := root.Get("_children")
	if !ok || children.Len() != 1 {
		t.Fatalf("_root._children = %v, want one child", children)
	}
	child := children.At(0)
	childTag, _ := child.Get("_tag")
	childText, _ := child.Get("_text")
	if childTag.StrVal() != "item" || childText.StrVal() != "x" {
		t.Fatalf("child = %v, want {_tag: item, _text: x}", child)
	}
}

func TestGenericXMLAttributesPreserveOrder(t *testing.T) {
	doc, err := FromGenericXML([]byte(`<e b="2" a="1"/>`))
	if err != nil {
		t.Fatal(err)
	}
	root, _ := doc.Get("_root")
	attrs, ok := root.Get("_attrs")
	if !ok {
		t.Fatal("missing _attrs")
	}
	want := []string{"b", "a"}
	for i, k := range want {
		if attrs.Keys()[i] != k {
			t.Errorf("Keys()[%d] = %q, want %q", i, attrs.Keys()[i], k)
		}
	}
}

func TestGenericXMLWhitespaceOnlyTextOmitted(t *testing.T) {
	doc, err := FromGenericXML([]byte("<e>   \n\t  </e>"))
	if err != nil {
		t.Fatal(err)
	}
	root, _ := doc.Get("_root")
	if _, ok := root.Get("_text"); ok {
		t.Fatal("_text should be omitted for whitespace-only content")
	}
}

func TestGenericXMLSurroundingWhitespacePreserved(t *testing.T) {
	doc, err := FromGenericXML([]byte(`<item>  hi  </item>`))
	if err != nil {
		t.Fatal(err)
	}
	root, _ := doc.Get("_root")
	text, ok := root.Get("_text")
	if !ok {
		t.Fatal("missing _text")
	}
	if text.StrVal() != "  hi  " {
		t.Errorf("_text = %q, want %q", text.StrVal(), "  hi  ")
	}
}

func TestGenericXMLDeclarationRoundTrip(t *testing.T) {
	doc, err := FromGenericXML([]byte(`<?xml version="1.0" encoding="UTF-8"?><e/>`))
	if err != nil {
		t.Fatal(err)
	}
	decl, ok := doc.Get("_decl")
	if !ok {
		t.Fatal("missing _decl")
	}
	v, _ := decl.Get("version")
	if v.StrVal() != "1.0" {
		t.Errorf("version = %q, want 1.0", v.StrVal())
	}
}

func TestGenericXMLSecondPassStability(t *testing.T) {
	// spec §8 property 8: the first round trip may normalise, but
	// applying it again must be a fixed point.
	input := []byte(`<root attr="v"><child>text here</child><child2/></root>`)

	doc1, err := FromGenericXML(input)
	if err != nil {
		t.Fatal(err)
	}
	out1, err := ToGenericXML(doc1)
	if err != nil {
		t.Fatal(err)
	}
	doc2, err := FromGenericXML([]byte(out1))
	if err != nil {
		t.Fatal(err)
	}
	out2, err := ToGenericXML(doc2)
	if err != nil {
		t.Fatal(err)
	}
	doc3, err := FromGenericXML([]byte(out2))
	if err != nil {
		t.Fatal(err)
	}
	out3, err := ToGenericXML(doc3)
	if err != nil {
		t.Fatal(err)
	}
	if out2 != out3 {
		t.Errorf("second pass is not a fixed point:\npass2: %q\npass3: %q", out2, out3)
	}
}
