package xmlcodec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/sisl/encode"
	"github.com/signadot/sisl/ir"
	"github.com/signadot/sisl/sislerr"
)

// ToTypedXML renders doc as the constrained XML shape of spec §4.G:
// the top-level Obj becomes <root>, each member a child element named
// for its key and carrying a type attribute equal to its SISL tag.
func ToTypedXML(doc *ir.Node) (string, error) {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString("<root>")
	for _, key := range doc.Keys() {
		v, _ := doc.Get(key)
		if err := writeTypedElement(&b, 1, key, v); err != nil {
			return "", err
		}
	}
	b.WriteString("\n</root>\n")
	return b.String(), nil
}

func writeTypedElement(b *strings.Builder, depth int, name string, v *ir.Node) error {
	if !isValidXMLName(name) {
		return fmt.Errorf("%w: invalid XML element name %q", sislerr.ErrXMLTyped, name)
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("\t", depth))

	switch v.Kind {
	case ir.Null:
		fmt.Fprintf(b, `<%s type="null" />`, name)
	case ir.List:
		fmt.Fprintf(b, `<%s type="list">`, name)
		for _, elem := range v.Elems() {
			if err := writeTypedElement(b, depth+1, "item", elem); err != nil {
				return err
			}
		}
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("\t", depth))
		fmt.Fprintf(b, "</%s>", name)
	case ir.Obj:
		fmt.Fprintf(b, `<%s type="obj">`, name)
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			if err := writeTypedElement(b, depth+1, key, child); err != nil {
				return err
			}
		}
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("\t", depth))
		fmt.Fprintf(b, "</%s>", name)
	case ir.Float:
		if f := v.FloatVal(); math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: cannot encode NaN or Infinity in XML", sislerr.ErrXMLTyped)
		}
		fmt.Fprintf(b, `<%s type="%s">%s</%s>`, name, v.Kind.Tag(), escapeText(encode.ScalarPayload(v)), name)
	default:
		fmt.Fprintf(b, `<%s type="%s">%s</%s>`, name, v.Kind.Tag(), escapeText(encode.ScalarPayload(v)), name)
	}
	return nil
}

// FromTypedXML parses the constrained XML shape of spec §4.G back
// into a document: it requires <root> at the top and a type attribute
// on every element, rejecting unknown types, malformed numeric
// payloads, and bool payloads other than true/false.
func FromTypedXML(data []byte) (*ir.Node, error) {
	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	return decodeTypedDoc(doc)
}

func decodeTypedDoc(doc *document) (*ir.Node, error) {
	if doc.Root.Tag != "root" {
		return nil, fmt.Errorf("%w: top-level element must be <root>, got <%s>", sislerr.ErrXMLTyped, doc.Root.Tag)
	}
	out := ir.NewObj()
	for _, child := range doc.Root.Children {
		v, err := decodeTypedElement(child)
		if err != nil {
			return nil, err
		}
		out.Set(child.Tag, v)
	}
	return out, nil
}

func decodeTypedElement(el *element) (*ir.Node, error) {
	typ, ok := getAttr(el, "type")
	if !ok {
		return nil, fmt.Errorf("%w: missing type attribute on element <%s>", sislerr.ErrXMLTyped, el.Tag)
	}
	text := el.Text

	switch typ {
	case "null":
		return ir.NewNull(), nil
	case "bool":
		switch text {
		case "true":
			return ir.NewBool(true), nil
		case "false":
			return ir.NewBool(false), nil
		default:
			return nil, fmt.Errorf("%w: bool value must be 'true' or 'false', got %q", sislerr.ErrXMLTyped, text)
		}
	case "int":
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid integer value %q", sislerr.ErrXMLTyped, text)
		}
		return ir.NewInt(v), nil
	case "float":
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid float value %q", sislerr.ErrXMLTyped, text)
		}
		return ir.NewFloat(v), nil
	case "str":
		return ir.NewStr(text), nil
	case "list":
		list := ir.NewList()
		for _, child := range el.Children {
			v, err := decodeTypedElement(child)
			if err != nil {
				return nil, err
			}
			list.Append(v)
		}
		return list, nil
	case "obj":
		obj := ir.NewObj()
		for _, child := range el.Children {
			v, err := decodeTypedElement(child)
			if err != nil {
				return nil, err
			}
			obj.Set(child.Tag, v)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q on element <%s>", sislerr.ErrXMLTyped, typ, el.Tag)
	}
}
