package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/1F47E/geo-region-tree/pkg/config"
	"github.com/1F47E/geo-region-tree/pkg/logger"
	"github.com/1F47E/geo-region-tree/pkg/postgis"
	"github.com/1F47E/geo-region-tree/pkg/region"
	"github.com/1F47E/geo-region-tree/pkg/rtree"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"  env:"CONFIG_FILE"        description:"Path to YAML configuration file"`
	Regions    string `short:"r" long:"regions" env:"REGIONTREE_REGIONS" description:"Region document, overrides config"`
	Queries    int    `short:"n" long:"queries" description:"Number of random queries" default:"100000"`
	Workers    int    `short:"w" long:"workers" description:"Number of concurrent workers (default: CPU count)"`
	Seed       int64  `long:"seed"              description:"Random seed (default: current time)"`
	Baseline   bool   `long:"baseline"          description:"Also run the R-Tree covering baseline and compare answers"`
	PostGIS    bool   `long:"postgis"           description:"Also query PostGIS (import with cmd/load first)"`
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
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	log.Info().Str("file", cfg.Regions).Msg("Loading region tree")
	start := time.Now()
	tree, err := region.Load(cfg.Regions)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load region tree")
	}
	stats := tree.Stats()
	log.Info().
		Int("nodes", stats.Nodes).
		Int("leaves", stats.Leaves).
		Int("vertices", stats.Vertices).
		Dur("elapsed", time.Since(start)).
		Msg("Region tree loaded")

	points, err := generatePoints(tree.Extent(), opts.Queries, opts.Seed)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate queries")
	}

	log.Info().Int("queries", len(points)).Int("workers", opts.Workers).Msg("Running tree search")
	results := []BenchmarkResult{
		runBenchmark("tree", treeLookup(tree), points, opts.Workers),
	}

	if opts.Baseline {
		index, err := rtree.FromTree(tree)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to build R-Tree baseline")
		}
		log.Info().Int("leaves", index.Size()).Msg("Running R-Tree baseline")
		results = append(results, runBenchmark("rtree", coveringLookup(index), points, opts.Workers))

		mismatches := compareBaseline(tree, index, points)
		log.Info().Int("mismatches", mismatches).Msg("Tree answers differing from first covering leaf")
	}

	if opts.PostGIS {
		ctx := context.Background()
		store, err := postgis.Open(ctx, cfg.PostGIS.DSN())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostGIS")
		}
		defer store.Close()

		log.Info().Msg("Running PostGIS ST_Contains queries")
		results = append(results, runBenchmark("postgis", postgisLookup(ctx, store), points, opts.Workers))
	}

	for _, r := range results {
		r.print()
	}
	fmt.Printf("Workers Used: %d\n", opts.Workers)
	fmt.Printf("CPU Cores: %d\n", runtime.NumCPU())
}
