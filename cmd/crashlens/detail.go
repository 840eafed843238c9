package main

import (
	"github.com/spf13/cobra"
)

func newDetailCmd(g *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "detail <id>",
		Short: "Print the detail view of one accident",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, d, err := g.openDashboard()
			if err != nil {
				return err
			}
			detail, err := d.ShowDetail(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), detail, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format: json, pretty")
	return cmd
}
