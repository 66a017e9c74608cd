// Package selection parses manual weekly selections, either from a
// YAML file or from inline ID:COUNT tokens.
package selection

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Selection maps a card id to the requested number of weekly uses.
type Selection map[string]int

// listEntry is the list form of the selection YAML:
//
//	- id: chicken_rice
//	  count: 4
type listEntry struct {
	ID    string `yaml:"id"`
	Count *int   `yaml:"count"`
}

// LoadFile reads a selection from a YAML file. Both the map form
// (id: count) and the list form ({id, count} entries, count defaulting
// to 1) are accepted.
func LoadFile(path string) (Selection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read selection file: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes selection YAML. The name argument is used in error
// messages only.
func Parse(data []byte, name string) (Selection, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse selection %s: %w", name, err)
	}
	if node.Kind == 0 || len(node.Content) == 0 {
		return Selection{}, nil
	}

	doc := node.Content[0]
	switch doc.Kind {
	case yaml.MappingNode:
		var m map[string]int
		if err := doc.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to decode selection map in %s: %w", name, err)
		}
		return Selection(m), nil
	case yaml.SequenceNode:
		var entries []listEntry
		if err := doc.Decode(&entries); err != nil {
			return nil, fmt.Errorf("failed to decode selection list in %s: %w", name, err)
		}
		sel := make(Selection, len(entries))
		for _, e := range entries {
			if e.ID == "" {
				return nil, fmt.Errorf("selection entry in %s is missing an id", name)
			}
			count := 1
			if e.Count != nil {
				count = *e.Count
			}
			sel[e.ID] = count
		}
		return sel, nil
	default:
		return nil, fmt.Errorf("unsupported selection YAML format in %s", name)
	}
}

// ParseTokens builds a selection from inline ID:COUNT tokens.
func ParseTokens(tokens []string) (Selection, error) {
	sel := make(Selection, len(tokens))
	for _, token := range tokens {
		id, countStr, ok := strings.Cut(token, ":")
		if !ok {
			return nil, fmt.Errorf("selection token must be ID:COUNT, got %q", token)
		}
		count, err := strconv.Atoi(countStr)
		if err != nil {
			return nil, fmt.Errorf("selection token %q has a non-integer count: %w", token, err)
		}
		sel[id] = count
	}
	return sel, nil
}
