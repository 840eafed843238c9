package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spektr-org/crashlens/internal/monitoring"
	"github.com/spektr-org/crashlens/render/echarts"
	"github.com/spektr-org/crashlens/views"
)

func newRenderCmd(g *globalOptions) *cobra.Command {
	var (
		filters filterOptions
		outFile string
		detail  string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the dashboard as a standalone HTML page",
		Example: `  crashlens render --out dashboard.html
  crashlens render --borough Hackney --detail 345979`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, d, err := g.openDashboard()
			if err != nil {
				return err
			}
			if outFile == "" {
				outFile = cfg.Output
			}

			page := echarts.NewPage(cfg.PageOptions()...)
			set := views.Attach(d, page)
			if err := filters.apply(d); err != nil {
				return err
			}
			if detail != "" {
				if err := set.Map.Click(detail); err != nil {
					return err
				}
			}

			f, err := os.Create(outFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			if err := page.Render(f); err != nil {
				return err
			}
			monitoring.Logf("📄 Dashboard written to %s (%s)", outFile, d.State())
			return nil
		},
	}
	filters.register(cmd)
	cmd.Flags().StringVar(&outFile, "out", "", "HTML output path (default from config)")
	cmd.Flags().StringVar(&detail, "detail", "", "accident id to show in the detail view")
	return cmd
}
