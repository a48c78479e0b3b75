package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docshadow",
	Short: "docshadow - silent companion for per-commit documentation",
	Long: `docshadow snapshots a Python source tree's structural documentation
(modules, classes, functions, docstrings, constants) into a versioned JSON
artifact tree, once per commit, without developer intervention.

Artifacts mirror the source layout under .docshadow/, together with a
per-commit index (index.json) and a whole-project structure map
(docshadow.json).`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
