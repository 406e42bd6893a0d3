package main

import (
	"fmt"
	"strings"

	"github.com/karvel/templnet/pkg/uritemplate"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check TEMPLATE",
	Short: "Validate a template and list the parameters it references",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tpl, err := uritemplate.Parse(args[0])
		if err != nil {
			return err
		}

		names := tpl.Parameters()
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "ok: no parameters")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: parameters: %s\n", strings.Join(names, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
