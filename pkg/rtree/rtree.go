// Package rtree indexes the leaf rings of a region tree by bounding box
// with an R-Tree. It backs tree audits and benchmark baselines; region
// searches never consult it.
package rtree

import (
	"fmt"
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"

	"github.com/1F47E/geo-region-tree/pkg/geo"
	"github.com/1F47E/geo-region-tree/pkg/region"
)

const (
	minChildren = 25
	maxChildren = 50
	dimensions  = 2
	// rtreego rejects zero-length sides, so degenerate boxes are padded
	minExtent = 1e-9
)

// spatialLeaf wraps a leaf to implement rtreego.Spatial interface
type spatialLeaf struct {
	index int
	leaf  region.Leaf
	rect  *rtreego.Rect
}

func (sl *spatialLeaf) Bounds() *rtreego.Rect {
	return sl.rect
}

// LeafIndex is a read-only R-Tree over leaf bounding boxes
type LeafIndex struct {
	tree   *rtreego.Rtree
	leaves []*spatialLeaf
}

// NewLeafIndex indexes leaves in the order given. Leaves with empty bounds
// are skipped.
func NewLeafIndex(leaves []region.Leaf) (*LeafIndex, error) {
	idx := &LeafIndex{
		tree: rtreego.NewTree(dimensions, minChildren, maxChildren),
	}

	for i, leaf := range leaves {
		bound, ok := leaf.Bounds.Bound()
		if !ok {
			continue
		}
		rect, err := toRect(bound)
		if err != nil {
			return nil, fmt.Errorf("invalid bounds for %q: %w", leaf.Path(), err)
		}

		item := &spatialLeaf{index: i, leaf: leaf, rect: rect}
		idx.tree.Insert(item)
		idx.leaves = append(idx.leaves, item)
	}

	return idx, nil
}

// FromTree indexes every leaf of root
func FromTree(root *region.Node) (*LeafIndex, error) {
	return NewLeafIndex(root.Leaves())
}

func toRect(b orb.Bound) (*rtreego.Rect, error) {
	lengths := []float64{
		math.Max(b.Max[0]-b.Min[0], minExtent),
		math.Max(b.Max[1]-b.Min[1], minExtent),
	}
	return rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1]}, lengths)
}

// Size returns the number of indexed leaves
func (ix *LeafIndex) Size() int {
	return ix.tree.Size()
}

// Overlap is a pair of leaves whose bounding boxes intersect. First comes
// before Second in document order.
type Overlap struct {
	First  region.Leaf
	Second region.Leaf

	firstIdx, secondIdx int
}

// Overlaps returns every pair of leaves with intersecting bounding boxes,
// sorted by document order. A point inside both boxes resolves to whichever
// leaf the tree reaches first, so these pairs are the places where sibling
// order decides the answer.
func (ix *LeafIndex) Overlaps() []Overlap {
	var overlaps []Overlap
	for _, a := range ix.leaves {
		for _, result := range ix.tree.SearchIntersect(a.rect) {
			b, ok := result.(*spatialLeaf)
			if !ok || b.index <= a.index {
				continue
			}
			// rtreego boxes are padded; confirm against the exact bounds
			if !a.leaf.Bounds.Intersects(b.leaf.Bounds) {
				continue
			}
			overlaps = append(overlaps, Overlap{
				First:     a.leaf,
				Second:    b.leaf,
				firstIdx:  a.index,
				secondIdx: b.index,
			})
		}
	}

	sort.Slice(overlaps, func(i, j int) bool {
		if overlaps[i].firstIdx != overlaps[j].firstIdx {
			return overlaps[i].firstIdx < overlaps[j].firstIdx
		}
		return overlaps[i].secondIdx < overlaps[j].secondIdx
	})
	return overlaps
}

// Covering returns, in document order, every leaf whose ring contains the
// point. Ancestor bounds are not consulted, so this can report leaves a
// tree search would never reach.
func (ix *LeafIndex) Covering(lat, lon float64) []region.Leaf {
	p := orb.Point{lat, lon}
	results := ix.tree.SearchIntersect(rtreego.Point{lat, lon}.ToRect(minExtent))

	hits := make([]*spatialLeaf, 0, len(results))
	for _, result := range results {
		item, ok := result.(*spatialLeaf)
		if !ok {
			continue
		}
		if item.leaf.Bounds.Contains(p) && geo.RingContains(item.leaf.Ring, p) {
			hits = append(hits, item)
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].index < hits[j].index })

	leaves := make([]region.Leaf, len(hits))
	for i, h := range hits {
		leaves[i] = h.leaf
	}
	return leaves
}
