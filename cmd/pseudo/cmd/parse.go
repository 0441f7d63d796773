package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nyjc-computing/pseudo9608/internal/ast"
	"github.com/nyjc-computing/pseudo9608/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a 9608 pseudocode file and print its AST",
	Long: `Parse a pseudocode source file and print the resulting syntax tree as
an indented text tree. Useful for debugging the parser.`,
	Args: cobra.ExactArgs(1),
	RunE: parseFile,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func parseFile(_ *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	prog, diag := parser.Parse(string(src))
	if diag != nil {
		fmt.Fprintln(os.Stderr, diag.Error())
		os.Exit(1)
	}
	fmt.Print(ast.Print(prog))
	return nil
}
