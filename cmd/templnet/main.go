// templnet CLI - expands parameterized URI templates from the command line
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Build-time variables set via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

var rootCmd = &cobra.Command{
	Use:           "templnet",
	Short:         "URI template toolbox",
	Long:          "templnet parses parameterized URI templates and expands them with parameter values.",
	Version:       Version + " (" + Commit + ")",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
