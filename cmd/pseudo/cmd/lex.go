package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nyjc-computing/pseudo9608/internal/lexer"
	"github.com/nyjc-computing/pseudo9608/internal/token"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a 9608 pseudocode file",
	Long: `Tokenize a pseudocode source file and print the resulting tokens,
one per line. Useful for debugging the scanner.`,
	Args: cobra.ExactArgs(1),
	RunE: lexFile,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func lexFile(_ *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	tokens, diag := lexer.Tokenize(string(src))
	if diag != nil {
		fmt.Fprintln(os.Stderr, diag.Error())
		os.Exit(1)
	}
	for _, tok := range tokens {
		fmt.Println(tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}
