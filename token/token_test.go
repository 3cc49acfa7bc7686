package token

import "testing"

func TestLexerBasicTokens(t *testing.T) {
	lex := NewLexer(`{a: !str "hi"}`)
	var got []Type
	for {
		tok, err := lex.Next()
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		got = append(got, tok.Type)
		if tok.Type == EOF {
			break
		}
	}
	want := []Type{LBrace, Name, Colon, Bang, Name, String, RBrace, EOF}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	lex := NewLexer(`!`)
	p1, err := lex.Peek()
	if err != nil {
		t.Fatal(err)
	}
	p2, err := lex.Peek()
	if err != nil {
		t.Fatal(err)
	}
	if p1.Type != Bang || p2.Type != Bang {
		t.Fatalf("peek() = %v, %v; want Bang twice", p1.Type, p2.Type)
	}
	n, err := lex.Next()
	if err != nil || n.Type != Bang {
		t.Fatalf("Next() after Peek() = %v, %v; want Bang, nil", n.Type, err)
	}
	eof, _ := lex.Next()
	if eof.Type != EOF {
		t.Fatalf("Next() = %v, want EOF", eof.Type)
	}
}

func TestLexerNameStartAllowsDigit(t *testing.T) {
	lex := NewLexer(`0name`)
	tok, err := lex.Next()
	if err != nil {
		t.Fatal(err)
	}
	if tok.Type != Name || tok.Value != "0name" {
		t.Fatalf("Next() = %v %q, want Name %q", tok.Type, tok.Value, "0name")
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	lex := NewLexer(`"abc`)
	if _, err := lex.Next(); err == nil {
		t.Fatal("expected error for unterminated string")
	}
}

func TestLexerUnexpectedCharacter(t *testing.T) {
	lex := NewLexer(`@`)
	if _, err := lex.Next(); err == nil {
		t.Fatal("expected error for unexpected character")
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `hello`, "hello"},
		{"quote", `a\"b`, `a"b`},
		{"backslash", `a\\b`, `a\b`},
		{"newline escape", `a\nb`, "a\nb"},
		{"tab escape", `a\tb`, "a\tb"},
		{"raw newline passes through", "a\nb", "a\nb"},
		{"hex escape", `\x41`, "A"},
		{"unicode escape", "\\u00e9", "é"},
		{"long unicode escape", `\U0001F600`, "😀"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unescape(tt.in)
			if err != nil {
				t.Fatalf("Unescape(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Unescape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnescapeInvalidSequence(t *testing.T) {
	if _, err := Unescape(`\q`); err == nil {
		t.Fatal("expected error for invalid escape sequence")
	}
}

func TestEscapeRoundTripsThroughUnescape(t *testing.T) {
	for _, s := range []string{`plain`, "tab\there", "line\r\nbreak", `quote"here`, `back\slash`} {
		escaped := Escape(s)
		got, err := Unescape(escaped)
		if err != nil {
			t.Fatalf("Unescape(Escape(%q)) error: %v", s, err)
		}
		if got != s {
			t.Errorf("Unescape(Escape(%q)) = %q, want %q", s, got, s)
		}
	}
}
