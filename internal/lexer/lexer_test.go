package lexer

import (
	"testing"
)

func TestNextToken(t *testing.T) {
	input := `let f x = x + 1 in f 41`

	tests := []struct {
		expectedLiteral string
		expectedType    TokenType
	}{
		{"let", LET},
		{"f", IDENT},
		{"x", IDENT},
		{"=", ASSIGN},
		{"x", IDENT},
		{"+", PLUS},
		{"1", INT},
		{"in", IN},
		{"f", IDENT},
		{"41", INT},
		{"", EOF},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `let in fn where rec within and aug
		or not neg gr ge ls le eq ne
		true false nil dummy`

	tests := []TokenType{
		LET, IN, FN, WHERE, REC, WITHIN, AND, AUG,
		OR, NOT, NEG, GR, GE, LS, LE, EQ, NE,
		TRUE, FALSE, NIL, DUMMY, EOF,
	}

	l := New(input)
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal=%q)",
				i, want, tok.Type, tok.Literal)
		}
		if want != EOF && !tok.Type.IsKeyword() {
			t.Errorf("tests[%d] - %q not reported as keyword", i, tok.Literal)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `+ - * / ** = -> | & @ > >= < <= ( ) ; , .`

	tests := []struct {
		expectedLiteral string
		expectedType    TokenType
	}{
		{"+", PLUS},
		{"-", MINUS},
		{"*", ASTERISK},
		{"/", SLASH},
		{"**", POWER},
		{"=", ASSIGN},
		{"->", ARROW},
		{"|", BAR},
		{"&", AMP},
		{"@", AT},
		{">", GREATER},
		{">=", GREATER_EQ},
		{"<", LESS},
		{"<=", LESS_EQ},
		{"(", LPAREN},
		{")", RPAREN},
		{";", SEMICOLON},
		{",", COMMA},
		{".", DOT},
		{"", EOF},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`'hello'`, "hello"},
		{`''`, ""},
		{`'with space'`, "with space"},
		{`'tab\there'`, "tab\there"},
		{`'line\nbreak'`, "line\nbreak"},
		{`'back\\slash'`, `back\slash`},
		{`'quo\'te'`, "quo'te"},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != STRING {
			t.Fatalf("input %q: expected STRING, got %q", tt.input, tok.Type)
		}
		if tok.Literal != tt.expected {
			t.Errorf("input %q: expected literal %q, got %q", tt.input, tt.expected, tok.Literal)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New("'oops")
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL token, got %q", tok.Type)
	}
	if len(l.Errors()) == 0 {
		t.Error("expected a lexer error for unterminated string")
	}
}

func TestLineComments(t *testing.T) {
	input := `// a comment
1 // trailing
// another
2`

	l := New(input)
	tok := l.NextToken()
	if tok.Type != INT || tok.Literal != "1" {
		t.Fatalf("expected INT 1, got %q %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != INT || tok.Literal != "2" {
		t.Fatalf("expected INT 2, got %q %q", tok.Type, tok.Literal)
	}
	if tok := l.NextToken(); tok.Type != EOF {
		t.Fatalf("expected EOF, got %q", tok.Type)
	}
}

func TestPositions(t *testing.T) {
	input := "let x = 1\nin x"

	l := New(input)
	tests := []struct {
		literal string
		line    int
		column  int
	}{
		{"let", 1, 1},
		{"x", 1, 5},
		{"=", 1, 7},
		{"1", 1, 9},
		{"in", 2, 1},
		{"x", 2, 4},
	}

	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Literal != tt.literal {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.literal, tok.Literal)
		}
		if tok.Pos.Line != tt.line || tok.Pos.Column != tt.column {
			t.Errorf("tests[%d] - position wrong for %q. expected=%d:%d, got=%s",
				i, tt.literal, tt.line, tt.column, tok.Pos)
		}
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New("x # y")
	if tok := l.NextToken(); tok.Type != IDENT {
		t.Fatalf("expected IDENT, got %q", tok.Type)
	}
	if tok := l.NextToken(); tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %q", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 lexer error, got %d", len(l.Errors()))
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok      Token
		expected string
	}{
		{Token{Type: IDENT, Literal: "x"}, "<IDENTIFIER:x>"},
		{Token{Type: INT, Literal: "42"}, "<INTEGER:42>"},
		{Token{Type: STRING, Literal: "hi"}, "<STRING:'hi'>"},
		{Token{Type: LET, Literal: "let"}, "<let>"},
		{Token{Type: EOF}, "<EOF>"},
	}

	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
}
