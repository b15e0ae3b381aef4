package region

import (
	"strings"

	"github.com/paulmach/orb"

	"github.com/1F47E/geo-region-tree/pkg/geo"
	"github.com/1F47E/geo-region-tree/pkg/models"
)

// Search returns the breadcrumb of the most specific region containing the
// point, e.g. "Springfield <- Sangamon County <- Illinois".
//
// lat is compared with the first (x) coordinate of the document's points
// and lon with the second (y). The path is built fresh on every call; it is
// only meaningful when found is true.
func (n *Node) Search(lat, lon float64) (path string, found bool) {
	trail, ok := n.Trail(lat, lon)
	if !ok {
		return "", false
	}
	return strings.Join(trail, PathSeparator), true
}

// Trail is Search returning the region names instead of a joined path,
// most specific first.
func (n *Node) Trail(lat, lon float64) ([]string, bool) {
	var trail []string
	if !n.locate(orb.Point{lat, lon}, &trail) {
		return nil, false
	}
	return trail, true
}

// Lookup resolves loc into a models.Match.
func (n *Node) Lookup(loc models.Location) models.Match {
	trail, ok := n.Trail(loc.Lat, loc.Lon)
	if !ok {
		return models.Match{Location: loc}
	}
	return models.Match{
		Location: loc,
		Found:    true,
		Path:     strings.Join(trail, PathSeparator),
		Regions:  trail,
	}
}

// locate appends the matching leaf name and then each ancestor on the way
// back up. Nothing is appended on failure.
func (n *Node) locate(p orb.Point, trail *[]string) bool {
	if !n.bounds.Contains(p) {
		return false
	}

	if len(n.children) == 0 {
		if !geo.RingContains(n.ring, p) {
			return false
		}
		*trail = append(*trail, n.name)
		return true
	}

	// Containers never test their own ring; the first matching child wins.
	for i := range n.children {
		if n.children[i].locate(p, trail) {
			*trail = append(*trail, n.name)
			return true
		}
	}
	return false
}
