package xmlcodec

import (
	"fmt"
	"strings"

	"github.com/signadot/sisl/ir"
	"github.com/signadot/sisl/sislerr"
)

// ToGenericXML renders doc — built of _tag/_attrs/_text/_children
// elements under a top-level _root (and optional _decl) — as XML text
// (spec §4.H). Indentation is a single tab per depth level; empty
// elements use the self-closing form.
func ToGenericXML(doc *ir.Node) (string, error) {
	var b strings.Builder
	if declNode, ok := doc.Get("_decl"); ok && declNode.Kind == ir.Obj {
		writeDecl(&b, declNode)
	}
	rootNode, ok := doc.Get("_root")
	if !ok {
		return "", fmt.Errorf("%w: generic document is missing _root", sislerr.ErrXMLParse)
	}
	if err := writeGenericElement(&b, 0, rootNode); err != nil {
		return "", err
	}
	b.WriteByte('\n')
	return b.String(), nil
}

func writeDecl(b *strings.Builder, decl *ir.Node) {
	b.WriteString("<?xml")
	for _, key := range decl.Keys() {
		v, _ := decl.Get(key)
		if v.Kind != ir.Str {
			continue
		}
		fmt.Fprintf(b, ` %s="%s"`, key, escapeAttr(v.StrVal()))
	}
	b.WriteString("?>\n")
}

func writeGenericElement(b *strings.Builder, depth int, elem *ir.Node) error {
	if elem.Kind != ir.Obj {
		return fmt.Errorf("%w: generic element must be an object", sislerr.ErrXMLParse)
	}
	tagNode, ok := elem.Get("_tag")
	if !ok || tagNode.Kind != ir.Str {
		return fmt.Errorf("%w: generic element is missing _tag", sislerr.ErrXMLParse)
	}
	tag := tagNode.StrVal()
	if !isValidXMLName(tag) {
		return fmt.Errorf("%w: invalid XML element name %q", sislerr.ErrXMLParse, tag)
	}
	if depth > 0 {
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat("\t", depth))
	b.WriteByte('<')
	b.WriteString(tag)

	if attrsNode, ok := elem.Get("_attrs"); ok && attrsNode.Kind == ir.Obj {
		for _, name := range attrsNode.Keys() {
			v, _ := attrsNode.Get(name)
			if v.Kind != ir.Str {
				continue
			}
			fmt.Fprintf(b, ` %s="%s"`, name, escapeAttr(v.StrVal()))
		}
	}

	childrenNode, hasChildren := elem.Get("_children")
	textNode, hasText := elem.Get("_text")

	if hasChildren && childrenNode.Kind == ir.List && childrenNode.Len() > 0 {
		b.WriteByte('>')
		for _, child := range childrenNode.Elems() {
			if err := writeGenericElement(b, depth+1, child); err != nil {
				return err
			}
		}
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("\t", depth))
		fmt.Fprintf(b, "</%s>", tag)
		return nil
	}
	if hasText && textNode.Kind == ir.Str && textNode.StrVal() != "" {
		fmt.Fprintf(b, ">%s</%s>", escapeText(textNode.StrVal()), tag)
		return nil
	}
	b.WriteString(" />")
	return nil
}

// FromGenericXML converts arbitrary XML text into the document
// representation of spec §4.H, preserving attribute order,
// normalising CDATA to plain text, and dropping comments/PIs/
// whitespace-only text per its documented known limits.
func FromGenericXML(data []byte) (*ir.Node, error) {
	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	return decodeGenericDoc(doc), nil
}

func decodeGenericDoc(doc *document) *ir.Node {
	out := ir.NewObj()
	if len(doc.Decl) > 0 {
		decl := ir.NewObj()
		for _, a := range doc.Decl {
			decl.Set(a.Name, ir.NewStr(a.Value))
		}
		out.Set("_decl", decl)
	}
	out.Set("_root", genericElementToNode(doc.Root))
	return out
}

func genericElementToNode(el *element) *ir.Node {
	n := ir.NewObj()
	n.Set("_tag", ir.NewStr(el.Tag))

	if len(el.Attrs) > 0 {
		attrs := ir.NewObj()
		for _, a := range el.Attrs {
			attrs.Set(a.Name, ir.NewStr(a.Value))
		}
		n.Set("_attrs", attrs)
	}

	if len(el.Children) > 0 {
		children := ir.NewList()
		for _, c := range el.Children {
			children.Append(genericElementToNode(c))
		}
		n.Set("_children", children)
	} else if text, ok := collapsedText(el.Text); ok {
		n.Set("_text", ir.NewStr(text))
	}
	return n
}
