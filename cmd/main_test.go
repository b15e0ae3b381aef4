package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1F47E/geo-region-tree/pkg/document"
	"github.com/1F47E/geo-region-tree/pkg/region"
	"github.com/1F47E/geo-region-tree/pkg/rtree"
)

const illinois = `{
	"name": "Illinois",
	"type": "MultiPolygon",
	"coordinates": [[[[0, 0], [10, 0], [10, 10], [0, 10]]]],
	"children": [
		{
			"name": "Sangamon County",
			"type": "MultiPolygon",
			"coordinates": [[[[0, 0], [5, 0], [5, 5], [0, 5]]]],
			"children": [
				{"name": "Springfield", "type": "MultiPolygon", "coordinates": [[[[1, 1], [2, 1], [2, 2], [1, 2]]]]}
			]
		},
		{"name": "Cook County", "type": "MultiPolygon", "coordinates": [[[[5, 5], [10, 5], [10, 10], [5, 10]]]]},
		{"name": "Lost", "type": "MultiPolygon", "children": [
			{"name": "Hidden", "type": "MultiPolygon", "coordinates": [[[[1.5, 1.5], [3, 1.5], [3, 3]]]]}
		]}
	]
}`

func buildTree(t *testing.T) *region.Node {
	t.Helper()
	doc, err := document.ParseJSON([]byte(illinois))
	require.NoError(t, err)
	return region.Build(doc, region.WithLogger(zerolog.Nop()))
}

func TestResolveBatchText(t *testing.T) {
	tree := buildTree(t)
	in := strings.NewReader(strings.Join([]string{
		"# header",
		"1.5,1.5",
		"",
		"7, 7",
		"3,1",
		"not a point",
		"20,20",
	}, "\n"))

	var out bytes.Buffer
	summary, err := resolveBatch(context.Background(), tree, in, &out, 4, false)
	require.NoError(t, err)

	assert.Equal(t, batchSummary{Lines: 5, Found: 2, NotFound: 2, Invalid: 1}, summary)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "1.5,1.5\tSpringfield <- Sangamon County <- Illinois", lines[0])
	assert.Equal(t, "7, 7\tCook County <- Illinois", lines[1])
	assert.Equal(t, "3,1\t-", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "not a point\terror: invalid location"))
	assert.Equal(t, "20,20\t-", lines[4])
}

func TestResolveBatchJSONKeepsOrder(t *testing.T) {
	tree := buildTree(t)

	var sb strings.Builder
	for i := 0; i < 200; i++ {
		if i%2 == 0 {
			sb.WriteString("1.5,1.5\n")
		} else {
			sb.WriteString("7,7\n")
		}
	}

	var out bytes.Buffer
	summary, err := resolveBatch(context.Background(), tree, strings.NewReader(sb.String()), &out, 8, true)
	require.NoError(t, err)
	assert.Equal(t, 200, summary.Found)

	dec := gojson.NewDecoder(&out)
	for i := 0; i < 200; i++ {
		var res batchResult
		require.NoError(t, dec.Decode(&res))
		assert.Equal(t, i+1, res.Line)
		require.NotNil(t, res.Match)
		if i%2 == 0 {
			assert.Equal(t, "Springfield", res.Match.Regions[0])
		} else {
			assert.Equal(t, "Cook County", res.Match.Regions[0])
		}
	}
}

func TestResolveBatchCancelled(t *testing.T) {
	tree := buildTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := resolveBatch(ctx, tree, strings.NewReader("1,1\n2,2\n"), &out, 1, false)
	// a worker may still win the race for the first job
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, out.String())
	}
}

func TestAuditReport(t *testing.T) {
	tree := buildTree(t)
	index, err := rtree.FromTree(tree)
	require.NoError(t, err)

	report := auditReport{
		stats:       tree.Stats(),
		diagnostics: []region.Diagnostic{{Kind: region.DiagnosticExtraRing, Region: "Cook County", Detail: "ring 1 of polygon 0 ignored"}},
		unreachable: tree.Unreachable(),
		overlaps:    index.Overlaps(),
	}

	var out bytes.Buffer
	report.write(&out)
	text := out.String()

	assert.Contains(t, text, "Leaves: 3")
	assert.Contains(t, text, "Diagnostics: 1")
	assert.Contains(t, text, "Unreachable subtrees: 1\n  Lost <- Illinois\n")
	assert.Contains(t, text, "Springfield <- Sangamon County <- Illinois  x  Hidden <- Lost <- Illinois")
}

func TestLocateCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regions.json")
	require.NoError(t, os.WriteFile(path, []byte(illinois), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"locate", "-r", path, "--log-level", "error", "1.5", "1.5"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "Springfield <- Sangamon County <- Illinois\n", out.String())

	out.Reset()
	rootCmd.SetArgs([]string{"locate", "-r", path, "--log-level", "error", "30", "30"})
	assert.ErrorIs(t, rootCmd.Execute(), errNoMatch)
}
