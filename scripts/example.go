package main

import (
	"fmt"
	"log"

	"github.com/1F47E/geo-region-tree/pkg/document"
	"github.com/1F47E/geo-region-tree/pkg/models"
	"github.com/1F47E/geo-region-tree/pkg/region"
	"github.com/1F47E/geo-region-tree/pkg/rtree"
)

// Rough state and county outlines. Points are [lat, lon] so that Search
// arguments line up with the first coordinate.
const regions = `
name: United States
type: MultiPolygon
coordinates: [[[[24.5, -125.0], [49.0, -125.0], [49.0, -66.9], [24.5, -66.9]]]]
children:
  - name: Illinois
    type: MultiPolygon
    coordinates: [[[[37.0, -91.5], [42.5, -91.5], [42.5, -87.5], [37.0, -87.5]]]]
    children:
      - name: Cook County
        type: MultiPolygon
        coordinates: [[[[41.47, -88.26], [42.15, -88.26], [42.15, -87.52], [41.47, -87.52]]]]
      - name: Sangamon County
        type: MultiPolygon
        coordinates: [[[[39.52, -89.99], [40.00, -89.99], [40.00, -89.39], [39.52, -89.39]]]]
  - name: California
    type: MultiPolygon
    coordinates: [[[[32.5, -124.4], [42.0, -124.4], [42.0, -114.1], [32.5, -114.1]]]]
    children:
      - name: Los Angeles County
        type: MultiPolygon
        coordinates: [[[[33.70, -118.95], [34.82, -118.95], [34.82, -117.65], [33.70, -117.65]]]]
  - name: Territories
    type: MultiPolygon
    children:
      - name: Puerto Rico
        type: MultiPolygon
        coordinates: [[[[17.9, -67.3], [18.5, -67.3], [18.5, -65.6], [17.9, -65.6]]]]
`

func main() {
	doc, err := document.ParseYAML([]byte(regions))
	if err != nil {
		log.Fatal(err)
	}

	var diags []region.Diagnostic
	tree := region.Build(doc, region.WithObserver(func(d region.Diagnostic) {
		diags = append(diags, d)
	}))

	stats := tree.Stats()
	fmt.Printf("Built tree with %d nodes, %d leaves, %d diagnostics\n\n", stats.Nodes, stats.Leaves, len(diags))

	// Example 1: resolve a few cities
	fmt.Println("=== City lookups ===")
	cities := []struct {
		name string
		loc  models.Location
	}{
		{"Chicago", models.Location{Lat: 41.8781, Lon: -87.6298}},
		{"Springfield", models.Location{Lat: 39.7817, Lon: -89.6501}},
		{"Los Angeles", models.Location{Lat: 34.0522, Lon: -118.2437}},
		{"Sacramento", models.Location{Lat: 38.5816, Lon: -121.4944}},
		{"San Juan", models.Location{Lat: 18.4655, Lon: -66.1057}},
		{"London", models.Location{Lat: 51.5074, Lon: -0.1278}},
	}
	for _, c := range cities {
		m := tree.Lookup(c.loc)
		if !m.Found {
			fmt.Printf("  - %s: no region\n", c.name)
			continue
		}
		fmt.Printf("  - %s: %s\n", c.name, m.Path)
	}

	// Example 2: subtrees no point can reach
	fmt.Println("\n=== Unreachable subtrees ===")
	for _, path := range tree.Unreachable() {
		fmt.Printf("  - %s\n", path)
	}

	// Example 3: every leaf covering a point, ignoring the hierarchy
	fmt.Println("\n=== Leaves covering San Juan ===")
	index, err := rtree.FromTree(tree)
	if err != nil {
		log.Fatal(err)
	}
	for _, leaf := range index.Covering(18.4655, -66.1057) {
		fmt.Printf("  - %s\n", leaf.Path())
	}
}
