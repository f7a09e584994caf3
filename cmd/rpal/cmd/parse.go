package cmd

import (
	"fmt"

	"github.com/dilanka-heshan/go-rpal/internal/ast"
	"github.com/spf13/cobra"
)

var parseStandardize bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse RPAL source code and display the syntax tree",
	Long: `Parse an RPAL program and print its syntax tree in dotted-prefix
form, one node per line with a '.' per depth level.

Examples:
  # Print the raw syntax tree
  rpal parse program.rpal

  # Print the standardized tree
  rpal parse --standardize program.rpal`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseProgram,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
	parseCmd.Flags().BoolVar(&parseStandardize, "standardize", false, "print the standardized tree")
}

func parseProgram(_ *cobra.Command, args []string) error {
	input, filename, err := readInput(args)
	if err != nil {
		return err
	}

	tree, err := parseInput(input, filename)
	if err != nil {
		return err
	}

	if parseStandardize {
		tree = ast.Standardize(tree)
	}
	fmt.Print(tree.String())
	return nil
}
