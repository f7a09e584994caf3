package cmd

import (
	"fmt"
	"os"

	"github.com/dilanka-heshan/go-rpal/internal/ast"
	"github.com/dilanka-heshan/go-rpal/internal/cse"
	"github.com/dilanka-heshan/go-rpal/internal/errors"
	"github.com/dilanka-heshan/go-rpal/internal/lexer"
	"github.com/dilanka-heshan/go-rpal/internal/parser"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	evalExpr string
	showAST  bool
	showSAST bool
)

var rootCmd = &cobra.Command{
	Use:   "rpal [file]",
	Short: "RPAL interpreter",
	Long: `go-rpal is a Go implementation of the RPAL functional language.

RPAL (Right-reference Pedagogic Algorithmic Language) is a small
applicative functional language. The interpreter tokenizes and parses
a program, standardizes the syntax tree into lambda/gamma form, and
evaluates it on a CSE (Control-Stack-Environment) machine.

Examples:
  # Evaluate a program
  rpal program.rpal

  # Evaluate an inline program
  rpal -e "let f x = x + 1 in f 41"

  # Print the abstract syntax tree and stop
  rpal --ast program.rpal

  # Print the standardized tree and stop
  rpal --sast program.rpal`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runProgram,
	// Diagnostics are printed with source context by runProgram.
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	rootCmd.Flags().BoolVar(&showAST, "ast", false, "print the abstract syntax tree and stop")
	rootCmd.Flags().BoolVar(&showSAST, "sast", false, "print the standardized syntax tree and stop")
}

// readInput resolves the program text from the -e flag or a file
// argument.
func readInput(args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}

// parseInput lexes and parses the input, printing formatted
// diagnostics to stderr on failure.
func parseInput(input, filename string) (*ast.Node, error) {
	l := lexer.New(input)
	p := parser.New(l)
	tree := p.Parse()

	if lexErrs := l.Errors(); len(lexErrs) > 0 {
		printDiagnostics(errors.FromLexerErrors(lexErrs, input, filename))
		return nil, fmt.Errorf("tokenizing failed with %d error(s)", len(lexErrs))
	}
	if parseErrs := p.Errors(); len(parseErrs) > 0 {
		printDiagnostics(errors.FromParserErrors(parseErrs, input, filename))
		return nil, fmt.Errorf("parsing failed with %d error(s)", len(parseErrs))
	}
	return tree, nil
}

func printDiagnostics(errs []*errors.CompilerError) {
	fmt.Fprint(os.Stderr, errors.FormatErrors(errs, true))
	fmt.Fprintln(os.Stderr)
}

func runProgram(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(args)
	if err != nil {
		return err
	}

	tree, err := parseInput(input, filename)
	if err != nil {
		return err
	}

	if showAST {
		fmt.Print(tree.String())
		return nil
	}

	std := ast.Standardize(tree)
	if showSAST {
		fmt.Print(std.String())
		return nil
	}

	b := cse.NewBuilder()
	machine := b.Build(std, cse.WithOutput(os.Stdout))
	if errs := b.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "Error: %v\n", e)
		}
		return fmt.Errorf("control build failed with %d error(s)", len(errs))
	}

	answer, err := machine.Answer()
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	fmt.Println(answer)
	return nil
}
