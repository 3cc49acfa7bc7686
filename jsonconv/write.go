package jsonconv

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/signadot/sisl/ir"
)

// ToJSON renders node as compact JSON text. json.Marshal on a Go map
// would not preserve Obj key order, so object members are written
// directly in the node's own insertion order; only strings (object
// keys and Str payloads) are handed to encoding/json (via json.Marshal
// of a string) to get its string-escaping rules for free.
func ToJSON(node *ir.Node) []byte {
	var b strings.Builder
	writeJSONValue(&b, node)
	return []byte(b.String())
}

func writeJSONValue(b *strings.Builder, n *ir.Node) {
	switch n.Kind {
	case ir.Str:
		writeJSONString(b, n.StrVal())
	case ir.Int:
		b.WriteString(strconv.FormatInt(n.IntVal(), 10))
	case ir.Float:
		b.WriteString(strconv.FormatFloat(n.FloatVal(), 'g', -1, 64))
	case ir.Bool:
		if n.BoolVal() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case ir.Null:
		b.WriteString("null")
	case ir.Obj:
		b.WriteByte('{')
		for i, key := range n.Keys() {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSONString(b, key)
			b.WriteByte(':')
			v, _ := n.Get(key)
			writeJSONValue(b, v)
		}
		b.WriteByte('}')
	case ir.List:
		b.WriteByte('[')
		for i, v := range n.Elems() {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSONValue(b, v)
		}
		b.WriteByte(']')
	}
}

func writeJSONString(b *strings.Builder, s string) {
	// json.Marshal on a string only ever fails for invalid UTF-8,
	// which it replaces rather than erroring on, so this never fails.
	d, _ := json.Marshal(s)
	b.Write(d)
}
