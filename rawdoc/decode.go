package rawdoc

import (
	"errors"
	"fmt"

	"go.yaml.in/yaml/v4"
)

const (
	// maxAliasDepth bounds nesting, alias expansion included.
	maxAliasDepth = 100
	// minNodeBudget is the number of raw nodes any document may expand to.
	minNodeBudget = 1 << 20
	// aliasExpansion is how many times its own node count a document may
	// expand to once past minNodeBudget.
	aliasExpansion = 4
)

// ErrTooLarge is returned when alias expansion makes a document exceed its
// node budget.
var ErrTooLarge = errors.New("rawdoc: alias expansion exceeds node budget")

// Decode parses YAML or JSON text into a raw tree. Mappings keep their key
// order; an empty input decodes to an empty Map.
func Decode(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("rawdoc: failed to parse YAML/JSON: %w", err)
	}
	if root.Kind == 0 {
		return Map{}, nil
	}
	d := &decoder{budget: max(minNodeBudget, aliasExpansion*countNodes(&root))}
	return d.fromNode(&root, 0)
}

// countNodes counts the nodes of the parsed tree without following aliases.
func countNodes(node *yaml.Node) int {
	n := 1
	for _, child := range node.Content {
		n += countNodes(child)
	}
	return n
}

type decoder struct {
	budget int
	nodes  int
}

func (d *decoder) fromNode(node *yaml.Node, depth int) (any, error) {
	d.nodes++
	if d.nodes > d.budget {
		return nil, fmt.Errorf("%w (%d nodes)", ErrTooLarge, d.budget)
	}
	if depth > maxAliasDepth {
		return nil, errors.New("rawdoc: document nesting too deep")
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Map{}, nil
		}
		return d.fromNode(node.Content[0], depth)

	case yaml.MappingNode:
		// Content alternates: key, value, key, value...
		m := make(Map, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			val, err := d.fromNode(node.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			m = append(m, Item{Key: node.Content[i].Value, Value: val})
		}
		return m, nil

	case yaml.SequenceNode:
		seq := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			val, err := d.fromNode(child, depth+1)
			if err != nil {
				return nil, err
			}
			seq = append(seq, val)
		}
		return seq, nil

	case yaml.AliasNode:
		if node.Alias == nil {
			return nil, fmt.Errorf("rawdoc: unknown anchor at line %d", node.Line)
		}
		return d.fromNode(node.Alias, depth+1)

	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("rawdoc: invalid scalar at line %d: %w", node.Line, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("rawdoc: unexpected YAML node kind %v at line %d", node.Kind, node.Line)
}
