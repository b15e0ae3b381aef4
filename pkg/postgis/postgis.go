// Package postgis mirrors the leaf rings of a region tree into PostGIS so
// lookups can be cross-checked against ST_Contains.
package postgis

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	"github.com/1F47E/geo-region-tree/pkg/geo"
	"github.com/1F47E/geo-region-tree/pkg/region"
)

const table = "region_leaves"

// Store is a PostGIS-backed copy of a tree's leaves
type Store struct {
	db *sql.DB
}

// Open connects using a lib/pq connection string
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &Store{db: db}, nil
}

// InitSchema recreates the leaf table
func (s *Store) InitSchema(ctx context.Context) error {
	queries := []string{
		`CREATE EXTENSION IF NOT EXISTS postgis;`,
		`DROP TABLE IF EXISTS ` + table + `;`,
		`CREATE TABLE ` + table + ` (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			depth INTEGER NOT NULL,
			geom GEOMETRY(POLYGON, 4326)
		);`,
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query '%s': %w", query, err)
		}
	}
	return nil
}

// CreateSpatialIndex adds a GIST index over the leaf geometries
func (s *Store) CreateSpatialIndex(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE INDEX idx_`+table+`_geom ON `+table+` USING GIST(geom);`); err != nil {
		return fmt.Errorf("failed to create spatial index: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `ANALYZE `+table+`;`); err != nil {
		return fmt.Errorf("failed to analyze table: %w", err)
	}
	return nil
}

// polygonWKT closes the ring and renders it as a WKT polygon. Rings with
// fewer than three vertices cannot form a polygon and are reported as false.
func polygonWKT(r orb.Ring) (string, bool) {
	if len(r) < 3 {
		return "", false
	}
	return wkt.MarshalString(orb.Polygon{geo.Closed(r)}), true
}

// ImportTree inserts every leaf of root in a single transaction and returns
// the number of rows written. Leaf ids follow document order.
func (s *Store) ImportTree(ctx context.Context, root *region.Node) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO `+table+` (id, name, path, depth, geom)
		VALUES ($1, $2, $3, $4, ST_GeomFromText($5, 4326))
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for i, leaf := range root.Leaves() {
		geom, ok := polygonWKT(leaf.Ring)
		if !ok {
			continue
		}
		if _, err := stmt.ExecContext(ctx, i, leaf.Name(), leaf.Path(), leaf.Depth(), geom); err != nil {
			return 0, fmt.Errorf("failed to insert leaf %q: %w", leaf.Path(), err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return inserted, nil
}

// Locate returns the paths of every stored leaf containing the point, in
// document order. lat is used as x to match the tree's axis convention.
// ST_Contains excludes ring boundaries.
func (s *Store) Locate(ctx context.Context, lat, lon float64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path FROM `+table+`
		WHERE ST_Contains(geom, ST_SetSRID(ST_MakePoint($1, $2), 4326))
		ORDER BY id
	`, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return paths, nil
}

// Count returns the number of stored leaves
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count leaves: %w", err)
	}
	return count, nil
}

// TableStats returns pretty-printed table and index sizes
func (s *Store) TableStats(ctx context.Context) (map[string]string, error) {
	var tableSize, indexSize string
	err := s.db.QueryRowContext(ctx, `
		SELECT
			pg_size_pretty(pg_total_relation_size('`+table+`')),
			pg_size_pretty(pg_indexes_size('`+table+`'))
	`).Scan(&tableSize, &indexSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get table size: %w", err)
	}
	return map[string]string{"table_size": tableSize, "index_size": indexSize}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
