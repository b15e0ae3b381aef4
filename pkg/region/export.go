package region

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/1F47E/geo-region-tree/pkg/geo"
)

// FeatureCollection exports every leaf ring as a GeoJSON polygon feature
// carrying name, path and depth properties. Coordinates are written as
// stored, first coordinate first.
func (n *Node) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, leaf := range n.Leaves() {
		f := geojson.NewFeature(orb.Polygon{geo.Closed(leaf.Ring)})
		f.ID = i
		f.Properties["name"] = leaf.Name()
		f.Properties["path"] = leaf.Path()
		f.Properties["depth"] = leaf.Depth()
		fc.Append(f)
	}
	return fc
}
