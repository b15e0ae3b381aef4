package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/1F47E/geo-region-tree/pkg/config"
	"github.com/1F47E/geo-region-tree/pkg/logger"
	"github.com/1F47E/geo-region-tree/pkg/postgis"
	"github.com/1F47E/geo-region-tree/pkg/region"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"   env:"CONFIG_FILE"        description:"Path to YAML configuration file"`
	Regions    string `short:"r" long:"regions"  env:"REGIONTREE_REGIONS" description:"Region document, overrides config"`
	NoIndex    bool   `long:"no-index"           description:"Skip creating the GIST index after import"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if opts.Regions != "" {
		cfg.Regions = opts.Regions
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, !opts.NoIndex); err != nil {
		log.Fatal().Err(err).Msg("Import failed")
	}
}

func run(ctx context.Context, cfg config.Config, withIndex bool) error {
	tree, err := region.Load(cfg.Regions)
	if err != nil {
		return err
	}
	log.Info().Str("file", cfg.Regions).Int("leaves", tree.Stats().Leaves).Msg("Region tree loaded")

	store, err := postgis.Open(ctx, cfg.PostGIS.DSN())
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.InitSchema(ctx); err != nil {
		return err
	}

	start := time.Now()
	n, err := store.ImportTree(ctx, tree)
	if err != nil {
		return err
	}
	log.Info().Int("rows", n).Dur("elapsed", time.Since(start)).Msg("Leaves imported")

	if withIndex {
		start = time.Now()
		if err := store.CreateSpatialIndex(ctx); err != nil {
			return err
		}
		log.Info().Dur("elapsed", time.Since(start)).Msg("Created spatial index")
	}

	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	sizes, err := store.TableStats(ctx)
	if err != nil {
		return err
	}
	log.Info().
		Int64("rows", count).
		Str("table_size", sizes["table_size"]).
		Str("index_size", sizes["index_size"]).
		Msg("Import complete")
	return nil
}
