package errors

import (
	"strings"
	"testing"

	"github.com/dilanka-heshan/go-rpal/internal/lexer"
	"github.com/dilanka-heshan/go-rpal/internal/parser"
)

func TestFormatWithSourceContext(t *testing.T) {
	source := "let x = 1\nin y +"
	err := NewCompilerError(lexer.Position{Line: 2, Column: 6}, "unexpected end of input", source, "prog.rpal")

	got := err.Format(false)

	if !strings.Contains(got, "Error in prog.rpal:2:6") {
		t.Errorf("missing file/position header:\n%s", got)
	}
	if !strings.Contains(got, "in y +") {
		t.Errorf("missing source line:\n%s", got)
	}
	if !strings.Contains(got, "^") {
		t.Errorf("missing caret:\n%s", got)
	}
	if !strings.Contains(got, "unexpected end of input") {
		t.Errorf("missing message:\n%s", got)
	}

	// The caret lines up under column 6 of the quoted line.
	lines := strings.Split(got, "\n")
	var sourceLine, caretLine string
	for i, line := range lines {
		if strings.Contains(line, "in y +") {
			sourceLine = line
			caretLine = lines[i+1]
		}
	}
	prefix := strings.Index(sourceLine, "in y +")
	if caret := strings.Index(caretLine, "^"); caret != prefix+5 {
		t.Errorf("caret at offset %d, expected %d:\n%s", caret, prefix+5, got)
	}
}

func TestFormatWithoutFile(t *testing.T) {
	err := NewCompilerError(lexer.Position{Line: 1, Column: 1}, "bad token", "x", "")
	got := err.Format(false)
	if !strings.Contains(got, "Error at line 1:1") {
		t.Errorf("missing position-only header:\n%s", got)
	}
}

func TestErrorInterface(t *testing.T) {
	err := NewCompilerError(lexer.Position{Line: 1, Column: 2}, "oops", "xy", "f.rpal")
	if msg := err.Error(); !strings.Contains(msg, "oops") {
		t.Errorf("Error() missing message: %q", msg)
	}
}

func TestFromLexerErrors(t *testing.T) {
	l := lexer.New("x # y")
	for tok := l.NextToken(); tok.Type != lexer.EOF; tok = l.NextToken() {
	}

	errs := FromLexerErrors(l.Errors(), "x # y", "f.rpal")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if errs[0].File != "f.rpal" {
		t.Errorf("file not carried through: %q", errs[0].File)
	}
}

func TestFromParserErrors(t *testing.T) {
	source := "let x = in x"
	l := lexer.New(source)
	p := parser.New(l)
	if tree := p.Parse(); tree != nil {
		t.Fatal("expected parse failure")
	}

	errs := FromParserErrors(p.Errors(), source, "f.rpal")
	if len(errs) == 0 {
		t.Fatal("expected converted errors")
	}
	if errs[0].Pos.Line != 1 {
		t.Errorf("expected error on line 1, got %d", errs[0].Pos.Line)
	}
}

func TestFormatErrors(t *testing.T) {
	errs := []*CompilerError{
		NewCompilerError(lexer.Position{Line: 1, Column: 1}, "first", "ab", ""),
		NewCompilerError(lexer.Position{Line: 1, Column: 2}, "second", "ab", ""),
	}

	got := FormatErrors(errs, false)
	if !strings.Contains(got, "first") || !strings.Contains(got, "second") {
		t.Errorf("missing messages:\n%s", got)
	}
	if !strings.Contains(got, "\n\n") {
		t.Errorf("errors not separated by blank line:\n%s", got)
	}
}
