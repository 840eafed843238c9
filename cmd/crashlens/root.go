package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spektr-org/crashlens/engine"
	"github.com/spektr-org/crashlens/helpers"
	"github.com/spektr-org/crashlens/internal/config"
	"github.com/spektr-org/crashlens/internal/monitoring"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath string
	dataPath   string
	quiet      bool
}

// filterOptions select the starting FilterState of summary and render.
type filterOptions struct {
	severity string
	age      string
	mode     string
	borough  string
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	root := &cobra.Command{
		Use:   "crashlens",
		Short: "Cross-filtered dashboard of London road accidents",
		Long: `crashlens loads a TfL accident dataset and cross-filters it by severity,
casualty age band, vehicle mode and borough. Every view (borough grid, age
bars, mode bars, severity toggle, map) is recomputed from one shared filter.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.quiet {
				monitoring.SetLogger(nil)
			}
		},
	}

	root.PersistentFlags().StringVar(&g.configPath, "config", config.DefaultPath, "config file path")
	root.PersistentFlags().StringVar(&g.dataPath, "data", "", "dataset JSON file (overrides config)")
	root.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "suppress diagnostic logging")

	root.AddCommand(
		newSummaryCmd(g),
		newRenderCmd(g),
		newDetailCmd(g),
		newServeCmd(g),
		newInitCmd(g),
		newVersionCmd(),
	)
	return root
}

func (o *filterOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.severity, "severity", "", "comma-separated severities, e.g. Severe,Fatal (default from config)")
	cmd.Flags().StringVar(&o.age, "age", "", "age band, e.g. 25-34")
	cmd.Flags().StringVar(&o.mode, "mode", "", "vehicle/casualty mode, e.g. Motorcycle or Pedestrian")
	cmd.Flags().StringVar(&o.borough, "borough", "", "borough name, e.g. Camden")
}

// loadConfig reads the config file and applies the --data override.
func (g *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if g.dataPath != "" {
		cfg.Data = g.dataPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openDashboard loads the dataset named by the config into a dashboard.
func (g *globalOptions) openDashboard() (*config.Config, *engine.Dashboard, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	opts, err := cfg.EngineOptions()
	if err != nil {
		return nil, nil, err
	}
	ds, err := helpers.LoadDataset(cfg.Data)
	if err != nil {
		return nil, nil, err
	}
	return cfg, engine.NewDashboard(ds, opts...), nil
}

// apply moves d to the state selected by the filter flags.
func (o *filterOptions) apply(d *engine.Dashboard) error {
	if o.severity != "" {
		set, err := engine.ParseSeverityList(o.severity)
		if err != nil {
			return err
		}
		d.Apply(engine.SeverityChange{Severities: set})
	}

	for _, f := range []struct {
		facet engine.Facet
		value string
	}{
		{engine.FacetAge, o.age},
		{engine.FacetMode, o.mode},
		{engine.FacetBorough, o.borough},
	} {
		if f.value == "" {
			continue
		}
		// select against "all" so the flag never toggles a facet off
		change, err := engine.ParseToggle(d.State().Without(f.facet), d.Domain(), f.facet.String(), f.value)
		if err != nil {
			return err
		}
		d.Apply(change)
	}
	return nil
}
