package document

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type yamlNode struct {
	node *yaml.Node
}

// ParseYAML decodes data into a node tree and returns the root mapping.
// Anchors and aliases are followed transparently.
func ParseYAML(data []byte) (Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML document: %w", err)
	}

	root := resolve(&doc)
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = resolve(root.Content[0])
	}
	if root.Kind != yaml.MappingNode {
		return nil, ErrNotObject
	}

	return yamlNode{node: root}, nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// lookup returns the value stored under key in a mapping node.
func (n yamlNode) lookup(key string) (*yaml.Node, bool) {
	if n.node == nil || n.node.Kind != yaml.MappingNode {
		return nil, false
	}
	for i := 0; i+1 < len(n.node.Content); i += 2 {
		if n.node.Content[i].Value == key {
			return resolve(n.node.Content[i+1]), true
		}
	}
	return nil, false
}

func (n yamlNode) String(key string) (string, bool) {
	v, ok := n.lookup(key)
	if !ok || v == nil || v.Kind != yaml.ScalarNode || v.ShortTag() == "!!null" {
		return "", false
	}
	return v.Value, true
}

func (n yamlNode) Has(key string) bool {
	_, ok := n.lookup(key)
	return ok
}

func (n yamlNode) Array(key string) []Node {
	v, ok := n.lookup(key)
	if !ok {
		return nil
	}
	return yamlNode{node: v}.Elements()
}

func (n yamlNode) Elements() []Node {
	if n.node == nil || n.node.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]Node, 0, len(n.node.Content))
	for _, c := range n.node.Content {
		out = append(out, yamlNode{node: resolve(c)})
	}
	return out
}

func (n yamlNode) Float() float64 {
	if n.node == nil || n.node.Kind != yaml.ScalarNode {
		return 0
	}
	switch n.node.ShortTag() {
	case "!!int", "!!float":
	default:
		return 0
	}
	var f float64
	if err := n.node.Decode(&f); err != nil {
		return 0
	}
	return f
}
