package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nyjc-computing/pseudo9608/internal/config"
	"github.com/nyjc-computing/pseudo9608/internal/host"
	"github.com/nyjc-computing/pseudo9608/pkg/pseudo"
)

var (
	traceFlag      bool
	configPathFlag string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a 9608 pseudocode file",
	Long: `Scan, parse, resolve, and execute a 9608 pseudocode source file.

Examples:
  # Run a program
  pseudo run program.txt

  # Run with a structured execution trace on stderr
  pseudo run --trace program.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&traceFlag, "trace", false, "emit a structured execution trace to stderr")
	runCmd.Flags().StringVar(&configPathFlag, "config", "pseudo.yaml", "path to an optional driver config file")
}

func runProgram(_ *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := config.Load(configPathFlag)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", configPathFlag, err)
	}

	var hostIO host.IO
	if cfg.WorkDir != "" {
		hostIO = host.NewOSIn(cfg.WorkDir)
	} else {
		hostIO = host.NewOS()
	}
	opts := []pseudo.Option{pseudo.WithHost(hostIO)}
	if traceFlag || cfg.Trace {
		opts = append(opts, pseudo.WithTrace(os.Stderr))
	}

	engine := pseudo.New(opts...)
	if diag := engine.RunFile(path); diag != nil {
		fmt.Fprintln(os.Stderr, diag.Error())
		os.Exit(1)
	}
	return nil
}
