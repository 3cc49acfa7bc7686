// Package jsonconv converts between *ir.Node documents and JSON text
// using the standard library's encoding/json (spec §6: "no divergence
// from the platform default"). encoding/json's Decoder exposes a
// streaming Token() API that is the only way to learn a JSON object's
// key order as written, which is what lets FromJSON preserve it
// (spec invariant 1) — json.Unmarshal into a map would discard it.
package jsonconv

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/sisl/ir"
	"github.com/signadot/sisl/sislerr"
)

// FromJSON parses JSON text into a document. The top-level value must
// be a JSON object (spec §4.C: every SISL document is an Obj).
func FromJSON(data []byte) (*ir.Node, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()

	node, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if node.Kind != ir.Obj {
		return nil, fmt.Errorf("%w: top-level JSON value must be an object", sislerr.ErrJSONParse)
	}

	// Reject trailing garbage the same way the SISL parser does.
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after top-level JSON value", sislerr.ErrJSONParse)
	}
	return node, nil
}

func decodeValue(dec *json.Decoder) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sislerr.ErrJSONParse, err)
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (*ir.Node, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("%w: unexpected delimiter %q", sislerr.ErrJSONParse, v)
		}
	case string:
		return ir.NewStr(v), nil
	case bool:
		return ir.NewBool(v), nil
	case nil:
		return ir.NewNull(), nil
	case json.Number:
		return decodeNumber(v)
	default:
		return nil, fmt.Errorf("%w: unsupported JSON token %v", sislerr.ErrJSONParse, tok)
	}
}

func decodeNumber(num json.Number) (*ir.Node, error) {
	s := num.String()
	if !strings.ContainsAny(s, ".eE") {
		v, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return ir.NewInt(v), nil
		}
		return nil, fmt.Errorf("%w: integer literal %q out of 64-bit signed range", sislerr.ErrJSONParse, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid number literal %q", sislerr.ErrJSONParse, s)
	}
	return ir.NewFloat(v), nil
}

func decodeObject(dec *json.Decoder) (*ir.Node, error) {
	obj := ir.NewObj()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", sislerr.ErrJSONParse, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key must be a string", sislerr.ErrJSONParse)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return nil, fmt.Errorf("%w: %v", sislerr.ErrJSONParse, err)
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (*ir.Node, error) {
	list := ir.NewList()
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		list.Append(val)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return nil, fmt.Errorf("%w: %v", sislerr.ErrJSONParse, err)
	}
	return list, nil
}
