package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/sisl/ir"
	"github.com/signadot/sisl/sislerr"
	"github.com/signadot/sisl/token"
)

// RawNode is the parser's direct output: a grouping tree that has not
// yet been turned into a dense *ir.Node. For Obj and List nodes its
// Members are exactly the elements written in the source, in source
// order — a List's members are not reindexed or gap-filled here.
//
// ToDocument does that reindexing to produce the *ir.Node every normal
// caller wants. Package merge instead builds its own sparse
// accumulator straight from RawNode, because spec §4.F's "if A also
// has k, recursively merge" only makes sense against the indices a
// fragment actually wrote, not the Null gap-fill the dense form would
// have introduced (see merge.mergeable).
type RawNode struct {
	Kind    ir.Kind
	Scalar  *ir.Node // set when Kind is a scalar kind
	Members []RawMember
}

// RawMember is one "name: !tag value" production, not yet interpreted
// as an Obj field or a List index.
type RawMember struct {
	Name string
	Line int
	Col  int
	Value *RawNode
}

type parser struct {
	lex *token.Lexer
}

// ParseRaw parses a complete SISL document into its raw grouping
// tree, validating list-index syntax as it goes but without the
// top-level Obj-dedup or List density-fill ToDocument performs.
func ParseRaw(input string) (*RawNode, error) {
	p := &parser{lex: token.NewLexer(input)}
	members, err := p.parseGrouping()
	if err != nil {
		return nil, err
	}
	tok, err := p.lex.Peek()
	if err != nil {
		return nil, err
	}
	if tok.Type != token.EOF {
		return nil, sislParseErrf(tok.Line, tok.Column, "unexpected %s after document", tok)
	}
	return &RawNode{Kind: ir.Obj, Members: members}, nil
}

// Parse parses a complete SISL document (spec §4.C: "Top-level input
// must be exactly one document; trailing non-whitespace is an
// error") straight into a dense *ir.Node.
func Parse(input string) (*ir.Node, error) {
	raw, err := ParseRaw(input)
	if err != nil {
		return nil, err
	}
	return ToDocument(raw)
}

// ToDocument converts a RawNode into a dense *ir.Node: Obj members
// are deduplicated by last-write-wins (spec names no error kind for a
// repeated Obj key), and List members are reindexed with Null fill
// for any position spec §4.C's grammar left unwritten.
func ToDocument(raw *RawNode) (*ir.Node, error) {
	switch raw.Kind {
	case ir.Obj:
		return objFromRaw(raw.Members)
	case ir.List:
		return listFromRaw(raw.Members)
	default:
		return raw.Scalar, nil
	}
}

func sislParseErrf(line, col int, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %s at line %d, column %d", sislerr.ErrSISLParse, msg, line, col)
}

func (p *parser) expect(want token.Type, what string) (token.Token, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return token.Token{}, err
	}
	if tok.Type != want {
		return token.Token{}, sislParseErrf(tok.Line, tok.Column, "expected %s, got %s", what, tok)
	}
	return tok, nil
}

// parseGrouping parses "{" [ member { "," member } ] "}". A trailing
// comma before "}" is a parse error (spec §4.C).
func (p *parser) parseGrouping() ([]RawMember, error) {
	if _, err := p.expect(token.LBrace, "'{'"); err != nil {
		return nil, err
	}
	peek, err := p.lex.Peek()
	if err != nil {
		return nil, err
	}
	if peek.Type == token.RBrace {
		p.lex.Next()
		return nil, nil
	}

	var members []RawMember
	m, err := p.parseMember()
	if err != nil {
		return nil, err
	}
	members = append(members, m)

	for {
		peek, err = p.lex.Peek()
		if err != nil {
			return nil, err
		}
		if peek.Type != token.Comma {
			break
		}
		p.lex.Next() // eat comma
		m, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	if _, err := p.expect(token.RBrace, "'}'"); err != nil {
		return nil, err
	}
	return members, nil
}

// parseMember parses "key ':' '!' tag value".
func (p *parser) parseMember() (RawMember, error) {
	nameTok, err := p.expect(token.Name, "element name")
	if err != nil {
		return RawMember{}, err
	}
	if _, err := p.expect(token.Colon, "':'"); err != nil {
		return RawMember{}, err
	}
	if _, err := p.expect(token.Bang, "'!'"); err != nil {
		return RawMember{}, err
	}
	tagTok, err := p.expect(token.Name, "type tag")
	if err != nil {
		return RawMember{}, err
	}

	value, err := p.parseValue(tagTok)
	if err != nil {
		return RawMember{}, err
	}
	return RawMember{Name: nameTok.Value, Line: nameTok.Line, Col: nameTok.Column, Value: value}, nil
}

// parseValue parses the value half of a member, dispatching on the
// type tag just consumed.
func (p *parser) parseValue(tagTok token.Token) (*RawNode, error) {
	kind, ok := ir.KindForTag(tagTok.Value)
	if !ok {
		return nil, fmt.Errorf("%w: unknown type tag %q at line %d, column %d",
			sislerr.ErrSISLTag, tagTok.Value, tagTok.Line, tagTok.Column)
	}

	switch kind {
	case ir.Obj, ir.List:
		members, err := p.parseGrouping()
		if err != nil {
			return nil, err
		}
		if kind == ir.List {
			if err := validateListMembers(members); err != nil {
				return nil, err
			}
		}
		return &RawNode{Kind: kind, Members: members}, nil
	default:
		strTok, err := p.expect(token.String, "quoted string")
		if err != nil {
			return nil, err
		}
		payload, err := token.Unescape(strTok.Value)
		if err != nil {
			return nil, err
		}
		node, err := scalarFromPayload(kind, payload, strTok)
		if err != nil {
			return nil, err
		}
		return &RawNode{Kind: kind, Scalar: node}, nil
	}
}

func scalarFromPayload(kind ir.Kind, payload string, tok token.Token) (*ir.Node, error) {
	switch kind {
	case ir.Str:
		return ir.NewStr(payload), nil
	case ir.Bool:
		switch payload {
		case "true":
			return ir.NewBool(true), nil
		case "false":
			return ir.NewBool(false), nil
		default:
			return nil, tagErrf(tok, "bool payload must be 'true' or 'false', got %q", payload)
		}
	case ir.Null:
		if payload != "" {
			return nil, tagErrf(tok, "null payload must be empty, got %q", payload)
		}
		return ir.NewNull(), nil
	case ir.Int:
		v, err := strconv.ParseInt(payload, 10, 64)
		if err != nil {
			return nil, tagErrf(tok, "invalid int payload %q", payload)
		}
		return ir.NewInt(v), nil
	case ir.Float:
		v, err := strconv.ParseFloat(payload, 64)
		if err != nil {
			return nil, tagErrf(tok, "invalid float payload %q", payload)
		}
		return ir.NewFloat(v), nil
	default:
		return nil, tagErrf(tok, "unexpected scalar tag")
	}
}

func tagErrf(tok token.Token, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %s at line %d, column %d", sislerr.ErrSISLTag, msg, tok.Line, tok.Column)
}

// objFromRaw builds a dense Obj node from a grouping's members,
// preserving insertion order (spec invariant 1). A repeated key
// overwrites the earlier value in place, matching the joiner's own
// "last write wins, first appearance determines position" policy
// (spec §4.F).
func objFromRaw(members []RawMember) (*ir.Node, error) {
	obj := ir.NewObj()
	for _, m := range members {
		v, err := ToDocument(m.Value)
		if err != nil {
			return nil, err
		}
		obj.Set(m.Name, v)
	}
	return obj, nil
}

// listFromRaw builds a dense List node, filling any position spec
// §4.C's grammar left unwritten with Null.
func listFromRaw(members []RawMember) (*ir.Node, error) {
	maxIdx := -1
	type indexed struct {
		idx int
		val *ir.Node
	}
	entries := make([]indexed, 0, len(members))
	for _, m := range members {
		idx, err := ListMemberIndex(m)
		if err != nil {
			return nil, err
		}
		v, err := ToDocument(m.Value)
		if err != nil {
			return nil, err
		}
		if idx > maxIdx {
			maxIdx = idx
		}
		entries = append(entries, indexed{idx: idx, val: v})
	}
	list := ir.NewList()
	if maxIdx >= 0 {
		list.EnsureLen(maxIdx + 1)
	}
	for _, e := range entries {
		list.SetAt(e.idx, e.val)
	}
	return list, nil
}

// validateListMembers checks that every member name matches "_N" for
// a non-negative decimal N and that no N repeats (spec §4.C, §7
// sisl-list-index). It is run once, at parse time, regardless of
// which consumer (ToDocument's dense path or merge's sparse path)
// reads the members afterward.
func validateListMembers(members []RawMember) error {
	seen := map[int]bool{}
	for _, m := range members {
		idx, err := ListMemberIndex(m)
		if err != nil {
			return err
		}
		if seen[idx] {
			return fmt.Errorf("%w: duplicate list index %q at line %d, column %d",
				sislerr.ErrSISLListIndex, m.Name, m.Line, m.Col)
		}
		seen[idx] = true
	}
	return nil
}

// ListMemberIndex parses the "_N" name of a !list member. It is
// exported so package merge can interpret the same sparse member
// names without duplicating the grammar rule.
func ListMemberIndex(m RawMember) (int, error) {
	if !strings.HasPrefix(m.Name, "_") || len(m.Name) < 2 {
		return 0, fmt.Errorf("%w: list element name must match '_N', got %q at line %d, column %d",
			sislerr.ErrSISLListIndex, m.Name, m.Line, m.Col)
	}
	digits := m.Name[1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, fmt.Errorf("%w: list element name must match '_N', got %q at line %d, column %d",
				sislerr.ErrSISLListIndex, m.Name, m.Line, m.Col)
		}
	}
	idx, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: list index out of range %q at line %d, column %d",
			sislerr.ErrSISLListIndex, m.Name, m.Line, m.Col)
	}
	return idx, nil
}
