// Package geo holds the planar geometry used by the region tree: an
// axis-aligned box with an explicit empty state and a ray-casting
// containment test for a single closed ring.
package geo

import "github.com/paulmach/orb"

// Bounds is an axis-aligned box over (x, y) coordinates.
//
// The zero value is empty. An empty box contains no point and intersects
// nothing; it only gains extent through Extend.
type Bounds struct {
	box   orb.Bound
	valid bool
}

// Extend grows the box to include p.
func (b *Bounds) Extend(p orb.Point) {
	if !b.valid {
		b.box = orb.Bound{Min: p, Max: p}
		b.valid = true
		return
	}
	b.box = b.box.Extend(p)
}

// IsEmpty reports whether no point was ever folded into the box.
func (b Bounds) IsEmpty() bool {
	return !b.valid
}

// Bound returns the underlying orb.Bound. ok is false for an empty box.
func (b Bounds) Bound() (bound orb.Bound, ok bool) {
	return b.box, b.valid
}

// Contains reports whether p lies inside the box, edges included.
func (b Bounds) Contains(p orb.Point) bool {
	if !b.valid {
		return false
	}
	return b.box.Min[0] <= p[0] && p[0] <= b.box.Max[0] &&
		b.box.Min[1] <= p[1] && p[1] <= b.box.Max[1]
}

// Intersects reports whether two non-empty boxes share at least one point.
func (b Bounds) Intersects(other Bounds) bool {
	if !b.valid || !other.valid {
		return false
	}
	return b.box.Intersects(other.box)
}

// Merge grows the box to cover other. Merging an empty box is a no-op.
func (b *Bounds) Merge(other Bounds) {
	if !other.valid {
		return
	}
	b.Extend(other.box.Min)
	b.Extend(other.box.Max)
}

// BoundsOf folds every vertex of r into a new box.
func BoundsOf(r orb.Ring) Bounds {
	var b Bounds
	for _, p := range r {
		b.Extend(p)
	}
	return b
}
