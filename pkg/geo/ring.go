package geo

import "github.com/paulmach/orb"

// RingContains runs the PNPOLY crossing test for p against r. The ring is
// treated as closed, so the edge from the last vertex back to the first is
// always included and a repeated closing vertex is harmless.
//
// Points exactly on an edge get whatever answer the half-open crossing
// rule gives them.
func RingContains(r orb.Ring, p orb.Point) bool {
	inside := false
	n := len(r)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := r[i][0], r[i][1]
		xj, yj := r[j][0], r[j][1]
		if (yi > p[1]) != (yj > p[1]) &&
			p[0] < (xj-xi)*(p[1]-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// Closed returns a copy of r whose last vertex repeats the first, as
// GeoJSON and WKT expect. Empty rings are returned unchanged.
func Closed(r orb.Ring) orb.Ring {
	if len(r) == 0 {
		return r
	}
	out := make(orb.Ring, len(r), len(r)+1)
	copy(out, r)
	if !r.Closed() {
		out = append(out, r[0])
	}
	return out
}
