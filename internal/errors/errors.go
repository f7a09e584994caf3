// Package errors provides error formatting utilities for the RPAL
// interpreter. It formats lexical and syntax errors with source
// context, line/column information, and a caret pointing to the error
// location.
package errors

import (
	"fmt"
	"strings"

	"github.com/dilanka-heshan/go-rpal/internal/lexer"
	"github.com/dilanka-heshan/go-rpal/internal/parser"
)

// CompilerError represents a single diagnostic with position and context.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     lexer.Position
}

// NewCompilerError creates a new compiler error.
func NewCompilerError(pos lexer.Position, message, source, file string) *CompilerError {
	return &CompilerError{
		Pos:     pos,
		Message: message,
		Source:  source,
		File:    file,
	}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format formats the error message with source context.
// If color is true, ANSI color codes are used for terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	// File and position header
	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Pos.Line, e.Pos.Column))
	}

	// Extract the relevant source line
	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		// Caret indicator
		caretCol := e.Pos.Column
		if caretCol < 1 {
			caretCol = 1
		}
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+caretCol-1))
		if color {
			sb.WriteString("\033[1;31m") // Red bold
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m") // Reset
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m") // Bold
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m") // Reset
	}

	return sb.String()
}

// getSourceLine extracts a specific line from the source code.
// Lines are 1-indexed.
func (e *CompilerError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}

	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}

	return lines[lineNum-1]
}

// FromLexerErrors converts lexer errors to CompilerError values.
func FromLexerErrors(errs []lexer.LexerError, source, file string) []*CompilerError {
	out := make([]*CompilerError, len(errs))
	for i, err := range errs {
		out[i] = NewCompilerError(err.Pos, err.Message, source, file)
	}
	return out
}

// FromParserErrors converts parser errors to CompilerError values.
func FromParserErrors(errs []*parser.ParserError, source, file string) []*CompilerError {
	out := make([]*CompilerError, len(errs))
	for i, err := range errs {
		out[i] = NewCompilerError(err.Pos, err.Message, source, file)
	}
	return out
}

// FormatErrors formats a list of compiler errors for display,
// separated by blank lines.
func FormatErrors(errs []*CompilerError, color bool) string {
	var sb strings.Builder
	for i, err := range errs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(err.Format(color))
	}
	return sb.String()
}
