// Package encode implements the canonical SISL writer (spec §4.D).
// Canonical SISL has no optional layout: one space after a colon, one
// space after a tag, one space after a comma, no trailing comma, no
// newlines. There is accordingly nothing to make configurable through
// functional options the way the teacher lineage's encode.EncodeOption
// tunes indent/color/comments — Encode here takes only the node.
package encode

import (
	"math"
	"strconv"
	"strings"

	"github.com/signadot/sisl/ir"
	"github.com/signadot/sisl/token"
)

// Encode returns the canonical SISL text for node, which must be an
// Obj (every SISL document is one, per spec §4.C's "document =
// obj-body").
func Encode(node *ir.Node) string {
	var b strings.Builder
	writeValue(&b, node)
	return b.String()
}

func writeValue(b *strings.Builder, n *ir.Node) {
	switch n.Kind {
	case ir.Obj:
		writeObjBody(b, n)
	case ir.List:
		writeListBody(b, n)
	default:
		writeScalarPayload(b, n)
	}
}

func writeObjBody(b *strings.Builder, n *ir.Node) {
	b.WriteByte('{')
	for i, key := range n.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		v, _ := n.Get(key)
		writeMember(b, key, v)
	}
	b.WriteByte('}')
}

func writeListBody(b *strings.Builder, n *ir.Node) {
	b.WriteByte('{')
	for i, v := range n.Elems() {
		if i > 0 {
			b.WriteString(", ")
		}
		writeMember(b, "_"+strconv.Itoa(i), v)
	}
	b.WriteByte('}')
}

// writeMember writes "key: !tag <value>" where <value> is either a
// quoted, escaped scalar payload or a nested grouping.
func writeMember(b *strings.Builder, key string, v *ir.Node) {
	b.WriteString(key)
	b.WriteString(": !")
	b.WriteString(v.Kind.Tag())
	b.WriteByte(' ')
	writeValue(b, v)
}

func writeScalarPayload(b *strings.Builder, n *ir.Node) {
	b.WriteByte('"')
	b.WriteString(token.Escape(ScalarPayload(n)))
	b.WriteByte('"')
}

// ScalarPayload returns the unescaped canonical payload string for a
// scalar node, i.e. what goes between the quotes before escaping.
// Exported so the XML codec (spec §4.G) can reuse the same canonical
// number/bool/null formatting without quoting or escaping it.
func ScalarPayload(n *ir.Node) string {
	switch n.Kind {
	case ir.Str:
		return n.StrVal()
	case ir.Bool:
		if n.BoolVal() {
			return "true"
		}
		return "false"
	case ir.Null:
		return ""
	case ir.Int:
		return strconv.FormatInt(n.IntVal(), 10)
	case ir.Float:
		return formatFloat(n.FloatVal())
	default:
		panic("encode: ScalarPayload on container kind " + n.Kind.Tag())
	}
}

// formatFloat renders the shortest decimal that reparses to the same
// float64 (strconv's shortest-round-trip mode), then ensures the
// result carries a decimal point or exponent marker so it is never
// confused with an !int payload on re-parse — matching the reference
// writer's behavior of appending ".0" to whole-number floats. NaN and
// ±Inf are written as strconv's own "NaN"/"+Inf"/"-Inf" verbatim: they
// already reparse via strconv.ParseFloat, and appending ".0" would
// produce a payload that doesn't.
func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
