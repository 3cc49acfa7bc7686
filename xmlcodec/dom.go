// Package xmlcodec implements the two XML codecs of spec §4.G/§4.H —
// typed (root element + type attributes) and generic (lossy but
// total _tag/_attrs/_text/_children DOM mapping) — and the mode
// router of §4.I.
//
// There is no third-party XML library anywhere in the example corpus
// this module was grown from, so both codecs are built on the
// standard library's encoding/xml, same as spec §1 expects ("the core
// consumes a generic XML DOM... the underlying parser is
// interchangeable"). encoding/xml's Unmarshal targets Go structs,
// which cannot describe an XML shape that is arbitrary and unknown
// ahead of time, so the decoder's low-level Token stream is walked by
// hand into a small DOM (element) — the same DOM-over-tokens shape
// pugixml hands the reference implementation.
package xmlcodec

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/sisl/sislerr"
)

// attr is one XML attribute, order preserved (spec §4.H: "insertion
// order preserved").
type attr struct {
	Name  string
	Value string
}

// element is the DOM node both codecs read and write. The XML
// declaration is not kept here but on document.Decl.
type element struct {
	Tag      string
	Attrs    []attr
	Children []*element
	Text     string
}

// document is a parsed XML document: an optional declaration and a
// single root element.
type document struct {
	Decl []attr // nil if no <?xml ... ?> declaration was present
	Root *element
}

func getAttr(el *element, name string) (string, bool) {
	for _, a := range el.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// parseDocument decodes raw XML text into a document, collapsing
// CDATA into plain text and dropping comments and non-declaration
// processing instructions — losses applied uniformly regardless of
// which codec ultimately consumes the DOM. All character data,
// whitespace-only text included, is kept in element.Text; dropping
// whitespace-only text is left to the generic codec (collapsedText).
func parseDocument(data []byte) (*document, error) {
	dec := xml.NewDecoder(strings.NewReader(string(data)))
	doc := &document{}

	var stack []*element
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: %v", sislerr.ErrXMLParse, err)
		}
		switch t := tok.(type) {
		case xml.ProcInst:
			if t.Target == "xml" && doc.Root == nil {
				doc.Decl = parsePseudoAttrs(string(t.Inst))
			}
			// Other processing instructions are stripped (spec §4.H).
		case xml.StartElement:
			el := &element{Tag: t.Name.Local}
			for _, a := range t.Attr {
				name := a.Name.Local
				if a.Name.Space != "" && a.Name.Space != "xmlns" {
					name = a.Name.Space + ":" + a.Name.Local
				}
				el.Attrs = append(el.Attrs, attr{Name: name, Value: a.Value})
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unbalanced end element %q", sislerr.ErrXMLParse, t.Name.Local)
			}
			finished := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				if doc.Root != nil {
					return nil, fmt.Errorf("%w: multiple top-level elements", sislerr.ErrXMLParse)
				}
				doc.Root = finished
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		// xml.Comment and other token kinds are dropped.
		}
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("%w: no root element", sislerr.ErrXMLParse)
	}
	return doc, nil
}

// parsePseudoAttrs parses the pseudo-attribute list inside
// "<?xml version=\"1.0\" encoding=\"UTF-8\"?>"'s Inst payload.
func parsePseudoAttrs(inst string) []attr {
	var attrs []attr
	fields := strings.Fields(inst)
	for _, f := range fields {
		eq := strings.IndexByte(f, '=')
		if eq < 0 {
			continue
		}
		name := f[:eq]
		val := strings.Trim(f[eq+1:], `"'`)
		attrs = append(attrs, attr{Name: name, Value: val})
	}
	return attrs
}

// collapsedText reports absent when raw is empty or entirely
// whitespace, per spec §4.H ("omitted if absent or entirely
// whitespace"), but otherwise returns raw verbatim: surrounding
// whitespace around real text is significant and must survive the
// round trip.
func collapsedText(raw string) (string, bool) {
	if strings.TrimSpace(raw) == "" {
		return "", false
	}
	return raw, true
}

// isValidXMLName matches the reference's is_valid_xml_name: a letter
// or underscore, then letters, digits, hyphens, underscores, or dots.
func isValidXMLName(name string) bool {
	if name == "" {
		return false
	}
	first := name[0]
	if !(first == '_' || (first >= 'A' && first <= 'Z') || (first >= 'a' && first <= 'z')) {
		return false
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		if !(c == '_' || c == '-' || c == '.' ||
			(c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttr(s string) string {
	s = escapeText(s)
	return strings.ReplaceAll(s, `"`, "&quot;")
}
