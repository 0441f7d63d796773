// Package cmd implements the pseudo command-line tool: a thin cobra
// wrapper over pkg/pseudo (run) and the lexer and parser (lex, parse), in
// the style of the teacher's cmd/dwscript/cmd.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pseudo",
	Short: "A 9608 pseudocode interpreter",
	Long: `pseudo runs programs written in the Cambridge International AS & A
Level Computer Science (9608) pseudocode language: scan, parse, resolve,
and execute a single source file against the local terminal and
filesystem.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "accepted but has no effect; diagnostics are the same without it")
}
