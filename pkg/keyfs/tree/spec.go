// Package tree interprets folder specs: compact nested-list descriptions of
// directory hierarchies to create or delete in bulk.
//
// A spec is an ordered sequence mixing names and nested lists, e.g.
// ["a", ["b", "c"], "d"]: create a; within a, create siblings b and c; back
// at the top level, create d as a sibling of a. A nested list always
// attaches to the most recently named sibling at its level.
package tree

import (
	"encoding/json"
	"fmt"

	"github.com/arthur-debert/keyfs/pkg/keyfs/core"
)

// Node is one element of a folder spec.
type Node interface {
	node()
}

// Leaf names a single directory at the current level.
type Leaf string

func (Leaf) node() {}

// Group describes children of the most recently named sibling.
type Group []Node

func (Group) node() {}

// Parse converts the heterogeneous source form (strings mixed with nested
// lists) into Node form. Anything other than a string or a nested list is
// rejected with InvalidStructure.
func Parse(raw []any) ([]Node, error) {
	nodes := make([]Node, 0, len(raw))
	for _, el := range raw {
		switch v := el.(type) {
		case string:
			if v == "" {
				return nil, &core.InvalidStructureError{Reason: "empty folder name"}
			}
			nodes = append(nodes, Leaf(v))
		case []any:
			children, err := Parse(v)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, Group(children))
		default:
			return nil, &core.InvalidStructureError{
				Reason: fmt.Sprintf("element %v (%T) is neither a name nor a nested list", el, el),
			}
		}
	}
	return nodes, nil
}

// ParseJSON parses the textual form of a folder spec, a JSON array such as
// ["a",["b","c"],"d"].
func ParseJSON(data []byte) ([]Node, error) {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &core.InvalidStructureError{Reason: fmt.Sprintf("not a valid spec list: %v", err)}
	}
	return Parse(raw)
}
