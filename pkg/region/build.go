package region

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/1F47E/geo-region-tree/pkg/document"
)

// GeometryType is the only region type the builder parses further.
const GeometryType = "MultiPolygon"

// DiagnosticKind classifies a construction anomaly.
type DiagnosticKind int

const (
	// DiagnosticTypeMismatch: the node's type is not MultiPolygon. The node
	// keeps its name but gets no ring and no children.
	DiagnosticTypeMismatch DiagnosticKind = iota + 1
	// DiagnosticExtraRing: a further non-empty ring was found after the
	// node's ring was already set. It is skipped.
	DiagnosticExtraRing
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagnosticTypeMismatch:
		return "type_mismatch"
	case DiagnosticExtraRing:
		return "extra_ring"
	default:
		return fmt.Sprintf("diagnostic(%d)", int(k))
	}
}

// Diagnostic describes a non-fatal anomaly met while building a tree.
type Diagnostic struct {
	Kind   DiagnosticKind
	Region string
	Detail string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.Region, d.Detail)
}

// Observer receives every diagnostic in the order it was raised.
type Observer func(Diagnostic)

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger diagnostics are written to. The global
// zerolog logger is used by default.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Builder) { b.log = l }
}

// WithObserver registers a callback for diagnostics.
func WithObserver(fn Observer) Option {
	return func(b *Builder) { b.observer = fn }
}

// Builder turns region documents into trees. Anomalies never abort a
// build; they are logged and handed to the observer.
type Builder struct {
	log      zerolog.Logger
	observer Observer
}

// NewBuilder creates a builder with the given options.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{log: log.Logger}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build constructs the whole tree rooted at doc.
func (b *Builder) Build(doc document.Node) *Node {
	root := &Node{}
	b.build(doc, root)
	return root
}

// Build is shorthand for NewBuilder(opts...).Build(doc).
func Build(doc document.Node, opts ...Option) *Node {
	return NewBuilder(opts...).Build(doc)
}

// Load reads a JSON or YAML region document from path and builds it.
func Load(path string, opts ...Option) (*Node, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	return Build(doc, opts...), nil
}

func (b *Builder) build(doc document.Node, n *Node) {
	n.name, _ = doc.String("name")

	typ, _ := doc.String("type")
	if typ != GeometryType {
		b.report(Diagnostic{
			Kind:   DiagnosticTypeMismatch,
			Region: n.name,
			Detail: fmt.Sprintf("type %q is not %s, region left empty", typ, GeometryType),
		})
		return
	}

	if doc.Has("coordinates") {
		b.parseCoordinates(doc.Array("coordinates"), n)
	}

	if doc.Has("children") {
		docs := doc.Array("children")
		n.children = make([]Node, len(docs))
		for i, child := range docs {
			b.build(child, &n.children[i])
		}
	}
}

// parseCoordinates walks polygons -> rings -> points. The first non-empty
// ring becomes the node's ring; later non-empty rings are reported and
// dropped.
func (b *Builder) parseCoordinates(polygons []document.Node, n *Node) {
	for pi, polygon := range polygons {
		for ri, ring := range polygon.Elements() {
			points := ring.Elements()
			if len(points) == 0 {
				continue
			}

			if n.ring != nil {
				b.report(Diagnostic{
					Kind:   DiagnosticExtraRing,
					Region: n.name,
					Detail: fmt.Sprintf("ring %d of polygon %d ignored, multiple polygons not yet supported", ri, pi),
				})
				continue
			}

			n.ring = make(orb.Ring, len(points))
			for i, point := range points {
				n.ring[i] = parsePoint(point)
				n.bounds.Extend(n.ring[i])
			}
		}
	}
}

// parsePoint reads [x, y, ...]. Missing coordinates stay 0 and anything past
// the second element is ignored.
func parsePoint(point document.Node) orb.Point {
	var p orb.Point
	for i, v := range point.Elements() {
		if i >= len(p) {
			break
		}
		p[i] = v.Float()
	}
	return p
}

func (b *Builder) report(d Diagnostic) {
	b.log.Warn().
		Str("kind", d.Kind.String()).
		Str("region", d.Region).
		Msg(d.Detail)

	if b.observer != nil {
		b.observer(d)
	}
}
