package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/1F47E/geo-region-tree/pkg/models"
	"github.com/1F47E/geo-region-tree/pkg/region"
)

var (
	batchInput   string
	batchWorkers int
	batchJSON    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Resolve lat,lon lines from a file or stdin",
	Long: `Reads one "lat,lon" pair per line, resolves them concurrently and prints
one result per line in input order. Blank lines and lines starting with #
are skipped.`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchInput, "input", "i", "-", "Input file, - for stdin")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", runtime.NumCPU(), "Number of worker goroutines")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "Print JSON lines instead of tab separated text")
}

type batchLine struct {
	num  int
	text string
}

type batchResult struct {
	Line  int           `json:"line"`
	Match *models.Match `json:"match,omitempty"`
	Error string        `json:"error,omitempty"`
}

type batchSummary struct {
	Lines    int
	Found    int
	NotFound int
	Invalid  int
}

func runBatch(cmd *cobra.Command, args []string) error {
	tree, _, err := loadTree()
	if err != nil {
		return err
	}

	in := io.Reader(os.Stdin)
	if batchInput != "-" {
		f, err := os.Open(batchInput)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	start := time.Now()
	summary, err := resolveBatch(cmd.Context(), tree, in, cmd.OutOrStdout(), batchWorkers, batchJSON)
	if err != nil {
		return err
	}

	log.Info().
		Int("lines", summary.Lines).
		Int("found", summary.Found).
		Int("not_found", summary.NotFound).
		Int("invalid", summary.Invalid).
		Dur("elapsed", time.Since(start)).
		Msg("Batch complete")
	return nil
}

// resolveBatch reads all lines from r, resolves them with a pool of
// workers and writes results to w in input order.
func resolveBatch(ctx context.Context, tree *region.Node, r io.Reader, w io.Writer, workers int, asJSON bool) (batchSummary, error) {
	var summary batchSummary

	var lines []batchLine
	scanner := bufio.NewScanner(r)
	for num := 1; scanner.Scan(); num++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, batchLine{num: num, text: text})
	}
	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("failed to read input: %w", err)
	}

	if workers < 1 {
		workers = 1
	}

	results := make([]batchResult, len(lines))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				line := lines[idx]
				res := batchResult{Line: line.num}
				loc, err := models.ParseLocation(line.text)
				if err != nil {
					res.Error = err.Error()
				} else {
					m := tree.Lookup(loc)
					res.Match = &m
				}
				results[idx] = res
			}
		}()
	}

	var ctxErr error
feed:
	for i := range lines {
		select {
		case jobs <- i:
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	if ctxErr != nil {
		return summary, ctxErr
	}

	bw := bufio.NewWriter(w)
	enc := gojson.NewEncoder(bw)
	for i, res := range results {
		summary.Lines++
		switch {
		case res.Error != "":
			summary.Invalid++
			log.Warn().Int("line", res.Line).Msg(res.Error)
		case res.Match.Found:
			summary.Found++
		default:
			summary.NotFound++
		}

		if asJSON {
			if err := enc.Encode(res); err != nil {
				return summary, fmt.Errorf("failed to encode line %d: %w", res.Line, err)
			}
			continue
		}
		if err := writeBatchText(bw, lines[i].text, res); err != nil {
			return summary, err
		}
	}

	if err := bw.Flush(); err != nil {
		return summary, fmt.Errorf("failed to write output: %w", err)
	}
	return summary, nil
}

func writeBatchText(w io.Writer, input string, res batchResult) error {
	var out string
	switch {
	case res.Error != "":
		out = "error: " + res.Error
	case res.Match.Found:
		out = res.Match.Path
	default:
		out = "-"
	}
	if _, err := fmt.Fprintf(w, "%s\t%s\n", input, out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
