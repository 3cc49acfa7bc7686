package xmlcodec

import "github.com/signadot/sisl/ir"

// recognisedTag mirrors ir's seven type tags — used to decide
// whether a type attribute value looks like a genuine typed-XML
// marker (spec §4.I) rather than a coincidental attribute some other
// XML document happens to carry.
func recognisedTag(tag string) bool {
	_, ok := ir.KindForTag(tag)
	return ok
}

// looksTyped implements spec §4.I's XML-input rule: the document
// element must be named root, and every one of its direct child
// elements must carry a type attribute whose value is a recognised
// SISL tag.
func looksTyped(doc *document) bool {
	if doc.Root.Tag != "root" {
		return false
	}
	for _, child := range doc.Root.Children {
		typ, ok := getAttr(child, "type")
		if !ok || !recognisedTag(typ) {
			return false
		}
	}
	return true
}

// FromXML parses XML text into a document, auto-detecting typed vs.
// generic mode (spec §4.I).
func FromXML(data []byte) (*ir.Node, error) {
	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	if looksTyped(doc) {
		return decodeTypedDoc(doc)
	}
	return decodeGenericDoc(doc), nil
}

// ToXML renders a document as XML text, auto-detecting typed vs.
// generic mode by the presence of a top-level _root key (spec §4.I).
func ToXML(doc *ir.Node) (string, error) {
	if _, ok := doc.Get("_root"); ok {
		return ToGenericXML(doc)
	}
	return ToTypedXML(doc)
}
