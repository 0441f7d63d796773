// Command pseudo runs 9608 pseudocode programs.
package main

import (
	"fmt"
	"os"

	"github.com/nyjc-computing/pseudo9608/cmd/pseudo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
