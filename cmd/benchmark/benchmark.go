package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/1F47E/geo-region-tree/pkg/geo"
	"github.com/1F47E/geo-region-tree/pkg/models"
	"github.com/1F47E/geo-region-tree/pkg/postgis"
	"github.com/1F47E/geo-region-tree/pkg/region"
	"github.com/1F47E/geo-region-tree/pkg/rtree"
)

type BenchmarkResult struct {
	Backend       string
	TotalQueries  int
	Failed        int64
	TotalDuration time.Duration
	AvgDuration   time.Duration
	QueriesPerSec float64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	Matched       int64
	MatchRate     float64
}

func (r BenchmarkResult) print() {
	fmt.Printf("\n=== %s ===\n", r.Backend)
	fmt.Printf("Total Queries: %d\n", r.TotalQueries)
	fmt.Printf("Failed Queries: %d\n", r.Failed)
	fmt.Printf("Total Duration: %v\n", r.TotalDuration)
	fmt.Printf("Average Duration: %v\n", r.AvgDuration)
	fmt.Printf("Queries/Second: %.2f\n", r.QueriesPerSec)
	fmt.Printf("Min Duration: %v\n", r.MinDuration)
	fmt.Printf("Max Duration: %v\n", r.MaxDuration)
	fmt.Printf("Matched: %d (%.1f%%)\n", r.Matched, r.MatchRate*100)
}

// lookupFunc reports whether some region answered the query
type lookupFunc func(lat, lon float64) (bool, error)

func treeLookup(tree *region.Node) lookupFunc {
	return func(lat, lon float64) (bool, error) {
		_, found := tree.Search(lat, lon)
		return found, nil
	}
}

func coveringLookup(index *rtree.LeafIndex) lookupFunc {
	return func(lat, lon float64) (bool, error) {
		return len(index.Covering(lat, lon)) > 0, nil
	}
}

func postgisLookup(ctx context.Context, store *postgis.Store) lookupFunc {
	return func(lat, lon float64) (bool, error) {
		paths, err := store.Locate(ctx, lat, lon)
		return len(paths) > 0, err
	}
}

// generatePoints draws n uniform points from the extent. lat spans the
// first axis of the extent to match the search convention.
func generatePoints(extent geo.Bounds, n int, seed int64) ([]models.Location, error) {
	bound, ok := extent.Bound()
	if !ok {
		return nil, errors.New("tree has no extent")
	}

	r := rand.New(rand.NewSource(seed))
	points := make([]models.Location, n)
	for i := range points {
		points[i] = models.Location{
			Lat: bound.Min[0] + r.Float64()*(bound.Max[0]-bound.Min[0]),
			Lon: bound.Min[1] + r.Float64()*(bound.Max[1]-bound.Min[1]),
		}
	}
	return points, nil
}

func runBenchmark(backend string, lookup lookupFunc, points []models.Location, workers int) BenchmarkResult {
	if workers < 1 {
		workers = 1
	}

	var (
		matched     int64
		failed      int64
		minDuration = time.Hour
		maxDuration time.Duration
		totalDur    time.Duration
		completed   int
		mu          sync.Mutex
	)

	startTime := time.Now()

	// Worker pool
	queryCh := make(chan int, len(points))
	var wg sync.WaitGroup

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()

			for i := range queryCh {
				p := points[i]
				queryStart := time.Now()
				found, err := lookup(p.Lat, p.Lon)
				queryDuration := time.Since(queryStart)

				if err != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}
				if found {
					atomic.AddInt64(&matched, 1)
				}

				mu.Lock()
				completed++
				totalDur += queryDuration
				if queryDuration < minDuration {
					minDuration = queryDuration
				}
				if queryDuration > maxDuration {
					maxDuration = queryDuration
				}
				mu.Unlock()
			}
		}()
	}

	for i := range points {
		queryCh <- i
	}
	close(queryCh)

	wg.Wait()
	totalDuration := time.Since(startTime)

	result := BenchmarkResult{
		Backend:       backend,
		TotalQueries:  len(points),
		Failed:        failed,
		TotalDuration: totalDuration,
		MinDuration:   minDuration,
		MaxDuration:   maxDuration,
		Matched:       matched,
	}
	if completed > 0 {
		result.AvgDuration = totalDur / time.Duration(completed)
		result.MatchRate = float64(matched) / float64(completed)
	} else {
		result.MinDuration = 0
	}
	if totalDuration > 0 {
		result.QueriesPerSec = float64(len(points)) / totalDuration.Seconds()
	}
	return result
}

// compareBaseline counts points where the tree's answer differs from the
// first leaf, in document order, whose ring contains the point. A
// difference means an ancestor's bounds or an earlier sibling changed the
// outcome.
func compareBaseline(tree *region.Node, index *rtree.LeafIndex, points []models.Location) int {
	mismatches := 0
	for _, p := range points {
		path, found := tree.Search(p.Lat, p.Lon)
		covering := index.Covering(p.Lat, p.Lon)

		switch {
		case !found && len(covering) == 0:
		case found && len(covering) > 0 && covering[0].Path() == path:
		default:
			mismatches++
		}
	}
	return mismatches
}
