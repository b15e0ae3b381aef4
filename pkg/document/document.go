// Package document provides a read-only query view over parsed region
// documents. The region tree builder depends only on the Node interface,
// so any backend that can answer these questions can feed it.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotObject is returned when the top-level value is not an object/mapping.
	ErrNotObject = errors.New("document root is not an object")
	// ErrInvalidJSON is returned when the input is not well-formed JSON.
	ErrInvalidJSON = errors.New("invalid JSON document")
)

// Format identifies a document encoding
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Node is a single value inside a parsed document.
//
// Lookups on a value of the wrong kind never fail loudly: String reports
// false, Array and Elements return nil, Float returns 0.
type Node interface {
	// String returns the text stored under key.
	String(key string) (string, bool)
	// Has reports whether key is present, whatever its value.
	Has(key string) bool
	// Array returns the elements of the array stored under key.
	Array(key string) []Node
	// Elements returns the elements of this node when it is an array.
	Elements() []Node
	// Float coerces a scalar to float64.
	Float() float64
}

// FormatFromPath guesses the encoding from a file extension. Anything that
// is not .yaml/.yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes data in the given format and returns its root node.
func Parse(data []byte, format Format) (Node, error) {
	switch format {
	case FormatYAML:
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// Load reads a document from disk.
func Load(path string) (Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	root, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return root, nil
}
