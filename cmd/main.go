package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/1F47E/geo-region-tree/pkg/config"
	"github.com/1F47E/geo-region-tree/pkg/region"
)

var (
	configFile  string
	regionsFile string
	logLevel    string
	logFormat   string

	cfg config.Config
)

// errNoMatch signals a lookup that resolved to no region
var errNoMatch = errors.New("no region contains the point")

var rootCmd = &cobra.Command{
	Use:   "regiontree",
	Short: "Offline reverse geocoding against a hierarchical region tree",
	Long: `Loads a nested region document (JSON or YAML) and resolves coordinates
to breadcrumb paths such as "Springfield <- Sangamon County <- Illinois".`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&regionsFile, "regions", "r", "", "Region document (.json, .yaml, .yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (auto, json, text)")

	rootCmd.AddCommand(locateCmd, batchCmd, auditCmd, exportCmd, serveCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errNoMatch) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// setup loads configuration, lets explicit flags win and installs the logger
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("regions") {
		cfg.Regions = regionsFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}

	cfg.Log.Setup()
	return nil
}

// loadTree builds the configured region document and returns the
// construction diagnostics alongside it.
func loadTree() (*region.Node, []region.Diagnostic, error) {
	var diags []region.Diagnostic
	tree, err := region.Load(cfg.Regions, region.WithObserver(func(d region.Diagnostic) {
		diags = append(diags, d)
	}))
	if err != nil {
		return nil, nil, err
	}

	stats := tree.Stats()
	log.Debug().
		Str("file", cfg.Regions).
		Int("nodes", stats.Nodes).
		Int("leaves", stats.Leaves).
		Int("diagnostics", len(diags)).
		Msg("Region tree loaded")

	return tree, diags, nil
}
