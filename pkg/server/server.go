// Package server answers point lookups against a region tree over HTTP.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	gojson "github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/1F47E/geo-region-tree/pkg/geo"
	"github.com/1F47E/geo-region-tree/pkg/metrics"
	"github.com/1F47E/geo-region-tree/pkg/models"
	"github.com/1F47E/geo-region-tree/pkg/region"
)

// Options configures a Server
type Options struct {
	// CacheSize is the number of recent matches kept; 0 disables caching.
	CacheSize int
	Logger    *zerolog.Logger
}

// Server resolves /locate requests. It is safe for concurrent use.
type Server struct {
	tree  *region.Node
	stats statsResponse
	cache *lru.Cache[models.Location, models.Match]
	log   zerolog.Logger
}

type statsResponse struct {
	region.Stats
	Extent *models.BoundingBox `json:"extent,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New wraps a built tree
func New(tree *region.Node, opts Options) (*Server, error) {
	if tree == nil {
		return nil, errors.New("nil region tree")
	}

	s := &Server{
		tree:  tree,
		stats: statsResponse{Stats: tree.Stats(), Extent: boundingBox(tree.Extent())},
		log:   log.Logger,
	}
	if opts.Logger != nil {
		s.log = *opts.Logger
	}

	if opts.CacheSize > 0 {
		cache, err := lru.New[models.Location, models.Match](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create cache: %w", err)
		}
		s.cache = cache
	}

	metrics.TreeLeaves.Set(float64(s.stats.Leaves))
	return s, nil
}

// Handler returns the routed, request-logged handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/locate", s.HandleLocate)
	mux.HandleFunc("/stats", s.HandleStats)
	mux.HandleFunc("/healthz", s.HandleHealth)
	mux.Handle("/metrics", metrics.Handler())
	return RequestLogger(s.log, mux)
}

// Locate resolves loc, consulting the cache first
func (s *Server) Locate(loc models.Location) models.Match {
	if s.cache != nil {
		if m, ok := s.cache.Get(loc); ok {
			metrics.CacheHitsTotal.Inc()
			return m
		}
		metrics.CacheMissesTotal.Inc()
	}

	start := time.Now()
	m := s.tree.Lookup(loc)
	metrics.LookupDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000)

	if s.cache != nil {
		s.cache.Add(loc, m)
	}
	return m
}

// HandleLocate serves GET /locate?lat=..&lon=..
// It answers 200 with the match, 404 when no region contains the point and
// 400 for malformed coordinates.
func (s *Server) HandleLocate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	q := r.URL.Query()
	loc, err := models.ParseLatLon(q.Get("lat"), q.Get("lon"))
	if err != nil {
		metrics.LookupsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	m := s.Locate(loc)
	if !m.Found {
		metrics.LookupsTotal.WithLabelValues(metrics.ResultNotFound).Inc()
		writeJSON(w, http.StatusNotFound, m)
		return
	}

	metrics.LookupsTotal.WithLabelValues(metrics.ResultFound).Inc()
	writeJSON(w, http.StatusOK, m)
}

// HandleStats serves the tree shape
func (s *Server) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats)
}

// HandleHealth reports liveness
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// boundingBox converts bounds using the search axis convention: the first
// coordinate is reported as latitude.
func boundingBox(b geo.Bounds) *models.BoundingBox {
	bound, ok := b.Bound()
	if !ok {
		return nil
	}
	return &models.BoundingBox{
		BottomLeft: models.Location{Lat: bound.Min[0], Lon: bound.Min[1]},
		TopRight:   models.Location{Lat: bound.Max[0], Lon: bound.Max[1]},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_ = gojson.NewEncoder(w).Encode(v)
}
