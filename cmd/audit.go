package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/1F47E/geo-region-tree/pkg/region"
	"github.com/1F47E/geo-region-tree/pkg/rtree"
)

var auditStrict bool

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Report tree shape, build diagnostics, unreachable subtrees and overlapping leaves",
	Long: `Report tree shape, build diagnostics, unreachable subtrees and leaf pairs
whose bounding boxes overlap. Where boxes overlap, the leaf earlier in
document order wins any point both rings contain.`,
	Args: cobra.NoArgs,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().BoolVar(&auditStrict, "strict", false, "Fail when diagnostics or unreachable subtrees are found")
}

func runAudit(cmd *cobra.Command, args []string) error {
	tree, diags, err := loadTree()
	if err != nil {
		return err
	}

	index, err := rtree.FromTree(tree)
	if err != nil {
		return err
	}

	report := auditReport{
		stats:       tree.Stats(),
		diagnostics: diags,
		unreachable: tree.Unreachable(),
		overlaps:    index.Overlaps(),
	}
	report.write(cmd.OutOrStdout())

	if auditStrict && (len(report.diagnostics) > 0 || len(report.unreachable) > 0) {
		return errors.New("audit found problems")
	}
	return nil
}

type auditReport struct {
	stats       region.Stats
	diagnostics []region.Diagnostic
	unreachable []string
	overlaps    []rtree.Overlap
}

func (r auditReport) write(w io.Writer) {
	s := r.stats
	fmt.Fprintf(w, "Tree:\n")
	fmt.Fprintf(w, "  Nodes: %d\n", s.Nodes)
	fmt.Fprintf(w, "  Leaves: %d\n", s.Leaves)
	fmt.Fprintf(w, "  Containers: %d\n", s.Containers)
	fmt.Fprintf(w, "  Inert: %d\n", s.Inert)
	fmt.Fprintf(w, "  Vertices: %d\n", s.Vertices)
	fmt.Fprintf(w, "  Max depth: %d\n", s.MaxDepth)

	fmt.Fprintf(w, "\nDiagnostics: %d\n", len(r.diagnostics))
	for _, d := range r.diagnostics {
		fmt.Fprintf(w, "  %s\n", d)
	}

	fmt.Fprintf(w, "\nUnreachable subtrees: %d\n", len(r.unreachable))
	for _, path := range r.unreachable {
		fmt.Fprintf(w, "  %s\n", path)
	}

	fmt.Fprintf(w, "\nOverlapping leaves: %d\n", len(r.overlaps))
	for _, o := range r.overlaps {
		fmt.Fprintf(w, "  %s  x  %s\n", o.First.Path(), o.Second.Path())
	}
}
