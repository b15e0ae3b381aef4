// Package metrics exposes prometheus collectors for the lookup service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels for LookupsTotal
const (
	ResultFound    = "found"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
)

var (
	LookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "regiontree_lookups_total",
		Help: "Total number of /locate requests by result",
	}, []string{"result"})
	LookupDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "regiontree_lookup_duration_ms",
		Help:    "Tree search duration in milliseconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50},
	})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "regiontree_cache_hits_total",
		Help: "Total lookup cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "regiontree_cache_misses_total",
		Help: "Total lookup cache misses",
	})
	TreeLeaves = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "regiontree_leaves",
		Help: "Number of leaf regions in the served tree",
	})
)

func init() {
	prometheus.MustRegister(LookupsTotal)
	prometheus.MustRegister(LookupDurationMs)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(TreeLeaves)
}

// Handler serves the default registry
func Handler() http.Handler { return promhttp.Handler() }
