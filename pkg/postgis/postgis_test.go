package postgis

import (
	"context"
	"os"
	"testing"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1F47E/geo-region-tree/pkg/document"
	"github.com/1F47E/geo-region-tree/pkg/region"
)

func TestPolygonWKT(t *testing.T) {
	testCases := []struct {
		name string
		ring orb.Ring
		want string
		ok   bool
	}{
		{
			name: "open square is closed",
			ring: orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
			want: "POLYGON((0 0,1 0,1 1,0 1,0 0))",
			ok:   true,
		},
		{
			name: "already closed",
			ring: orb.Ring{{0, 0}, {2, 0}, {0, 2}, {0, 0}},
			want: "POLYGON((0 0,2 0,0 2,0 0))",
			ok:   true,
		},
		{name: "segment", ring: orb.Ring{{0, 0}, {1, 1}}},
		{name: "empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := polygonWKT(tc.ring)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestImportAndLocate needs a live PostGIS; set POSTGIS_TEST_DSN to run it.
func TestImportAndLocate(t *testing.T) {
	dsn := os.Getenv("POSTGIS_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGIS_TEST_DSN not set")
	}

	doc, err := document.ParseJSON([]byte(`{
		"name": "Illinois", "type": "MultiPolygon",
		"coordinates": [[[[0, 0], [10, 0], [10, 10], [0, 10]]]],
		"children": [
			{"name": "Sangamon County", "type": "MultiPolygon", "coordinates": [[[[0, 0], [5, 0], [5, 5], [0, 5]]]]},
			{"name": "Cook County", "type": "MultiPolygon", "coordinates": [[[[5, 5], [10, 5], [10, 10], [5, 10]]]]}
		]
	}`))
	require.NoError(t, err)
	tree := region.Build(doc, region.WithLogger(zerolog.Nop()))

	ctx := context.Background()
	store, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.InitSchema(ctx))
	n, err := store.ImportTree(ctx, tree)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NoError(t, store.CreateSpatialIndex(ctx))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	paths, err := store.Locate(ctx, 7, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cook County <- Illinois"}, paths)

	paths, err = store.Locate(ctx, 20, 20)
	require.NoError(t, err)
	assert.Empty(t, paths)
}
