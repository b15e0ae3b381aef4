package geo

import (
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

var unitSquare = orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

func TestEmptyBounds(t *testing.T) {
	var b Bounds
	assert.True(t, b.IsEmpty())

	_, ok := b.Bound()
	assert.False(t, ok)

	// An empty box rejects every valid coordinate, including the origin
	// that a zero orb.Bound would otherwise cover.
	for _, p := range []orb.Point{{0, 0}, {-180, -90}, {180, 90}, {12.5, -3}} {
		assert.False(t, b.Contains(p), "empty bounds contain %v", p)
	}

	other := BoundsOf(unitSquare)
	assert.False(t, b.Intersects(other))
	assert.False(t, other.Intersects(b))
}

func TestBoundsExtend(t *testing.T) {
	var b Bounds
	b.Extend(orb.Point{3, -2})
	assert.False(t, b.IsEmpty())
	assert.True(t, b.Contains(orb.Point{3, -2}), "single point box contains itself")

	b.Extend(orb.Point{-1, 4})
	bound, ok := b.Bound()
	assert.True(t, ok)
	assert.Equal(t, orb.Point{-1, -2}, bound.Min)
	assert.Equal(t, orb.Point{3, 4}, bound.Max)
}

func TestBoundsInclusive(t *testing.T) {
	b := BoundsOf(unitSquare)

	testCases := []struct {
		name string
		p    orb.Point
		want bool
	}{
		{"center", orb.Point{0.5, 0.5}, true},
		{"min x edge", orb.Point{0, 0.5}, true},
		{"max x edge", orb.Point{1, 0.5}, true},
		{"min y edge", orb.Point{0.5, 0}, true},
		{"max corner", orb.Point{1, 1}, true},
		{"just outside x", orb.Point{1.0001, 0.5}, false},
		{"just outside y", orb.Point{0.5, -0.0001}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, b.Contains(tc.p))
		})
	}
}

func TestBoundsIntersects(t *testing.T) {
	a := BoundsOf(unitSquare)
	b := BoundsOf(orb.Ring{{0.5, 0.5}, {2, 0.5}, {2, 2}})
	c := BoundsOf(orb.Ring{{5, 5}, {6, 6}})

	assert.True(t, a.Intersects(b))
	assert.True(t, b.Intersects(a))
	assert.False(t, a.Intersects(c))
}

func TestBoundsMerge(t *testing.T) {
	var b Bounds
	b.Merge(Bounds{})
	assert.True(t, b.IsEmpty(), "merging empty into empty stays empty")

	b.Merge(BoundsOf(unitSquare))
	b.Merge(BoundsOf(orb.Ring{{5, -2}, {6, -1}}))
	b.Merge(Bounds{})

	bound, ok := b.Bound()
	assert.True(t, ok)
	assert.Equal(t, orb.Point{0, -2}, bound.Min)
	assert.Equal(t, orb.Point{6, 1}, bound.Max)
}

func TestClosed(t *testing.T) {
	closed := Closed(unitSquare)
	assert.Len(t, closed, len(unitSquare)+1)
	assert.Equal(t, closed[0], closed[len(closed)-1])
	assert.Len(t, unitSquare, 4, "input must not be modified")

	again := Closed(closed)
	assert.Equal(t, closed, again, "already closed ring keeps its length")

	assert.Empty(t, Closed(orb.Ring{}))
}

func TestRingContains(t *testing.T) {
	triangle := orb.Ring{{0, 0}, {4, 0}, {2, 4}}
	// Concave "C" shape opening to the right.
	concave := orb.Ring{{0, 0}, {3, 0}, {3, 1}, {1, 1}, {1, 2}, {3, 2}, {3, 3}, {0, 3}}

	testCases := []struct {
		name string
		ring orb.Ring
		p    orb.Point
		want bool
	}{
		{"square center", unitSquare, orb.Point{0.5, 0.5}, true},
		{"square far outside", unitSquare, orb.Point{2, 2}, false},
		{"square left of ring", unitSquare, orb.Point{-0.5, 0.5}, false},
		{"triangle inside", triangle, orb.Point{2, 1}, true},
		{"triangle outside near apex", triangle, orb.Point{3.5, 3}, false},
		{"concave arm", concave, orb.Point{2, 0.5}, true},
		{"concave notch", concave, orb.Point{2, 1.5}, false},
		{"concave spine", concave, orb.Point{0.5, 1.5}, true},
		{"empty ring", orb.Ring{}, orb.Point{0, 0}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RingContains(tc.ring, tc.p))
		})
	}
}

func TestRingContainsClosedRing(t *testing.T) {
	closed := append(orb.Ring{}, unitSquare...)
	closed = append(closed, unitSquare[0])

	for i := 0; i < 200; i++ {
		p := orb.Point{rand.Float64()*3 - 1, rand.Float64()*3 - 1}
		assert.Equal(t, RingContains(unitSquare, p), RingContains(closed, p),
			"explicit closing vertex changed the answer for %v", p)
	}
}

func BenchmarkRingContains(b *testing.B) {
	ring := make(orb.Ring, 0, 1000)
	for i := 0; i < 1000; i++ {
		ring = append(ring, orb.Point{rand.Float64() * 10, rand.Float64() * 10})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = RingContains(ring, orb.Point{5, 5})
	}
}
