package cmd

import (
	"fmt"

	"github.com/dilanka-heshan/go-rpal/internal/lexer"
	"github.com/spf13/cobra"
)

var showPos bool

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an RPAL file or expression",
	Long: `Tokenize (lex) an RPAL program and print the resulting tokens.

This command is useful for debugging the lexer and understanding how
RPAL source code is tokenized.

Examples:
  # Tokenize a program file
  rpal lex program.rpal

  # Tokenize an inline expression
  rpal lex -e "let x = 1 in x"

  # Show token positions
  rpal lex --show-pos program.rpal`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexProgram,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
}

func lexProgram(_ *cobra.Command, args []string) error {
	input, filename, err := readInput(args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	errorCount := 0
	for {
		tok := l.NextToken()
		if tok.Type == lexer.ILLEGAL {
			errorCount++
		}
		if showPos {
			fmt.Printf("%s @%s\n", tok, tok.Pos)
		} else {
			fmt.Println(tok)
		}
		if tok.Type == lexer.EOF {
			break
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%s: found %d illegal token(s)", filename, errorCount)
	}
	return nil
}
