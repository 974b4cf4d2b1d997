package flowchart

import (
	"encoding/json"
	"fmt"
)

// Report is the outcome of structural validation.
// Valid is true exactly when Errors is empty.
type Report struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateOption configures optional validation checks.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	uniqueIDs bool
}

// WithUniqueIDs enables reporting of duplicate node IDs.
//
// Off by default: graphs from Normalize cannot collide, and existing saved
// artifacts are accepted as they were. Callers merging graphs from several
// sources should turn it on.
func WithUniqueIDs() ValidateOption {
	return func(c *validateConfig) { c.uniqueIDs = true }
}

// graphView is the shape-checked input shared by all validation entry points.
type graphView struct {
	nodes   []Node
	edges   []Edge
	nodesOK bool
	edgesOK bool
}

// Validate checks the structural invariants of g and reports every
// violation found. It never modifies g.
//
// A nil Nodes or Edges slice counts as absent.
func Validate(g *Graph, opts ...ValidateOption) Report {
	if g == nil {
		return check(graphView{}, opts)
	}
	return check(graphView{
		nodes:   g.Nodes,
		edges:   g.Edges,
		nodesOK: g.Nodes != nil,
		edgesOK: g.Edges != nil,
	}, opts)
}

// ValidateValue validates an untyped graph, such as a decoded saved
// artifact, against the canonical {nodes, edges} shape. Non-string fields
// count as missing, except numbers, which are read as their decimal form.
func ValidateValue(v any, opts ...ValidateOption) Report {
	o := asObject(v)
	var view graphView

	if rawNodes, ok := o.array("nodes"); ok {
		view.nodesOK = true
		view.nodes = make([]Node, 0, len(rawNodes))
		for _, raw := range rawNodes {
			src := asObject(raw)
			view.nodes = append(view.nodes, Node{
				ID:    src.str("id"),
				Label: src.str("label"),
				Type:  NodeType(src.str("type")),
			})
		}
	}

	if rawEdges, ok := o.array("edges"); ok {
		view.edgesOK = true
		view.edges = make([]Edge, 0, len(rawEdges))
		for _, raw := range rawEdges {
			src := asObject(raw)
			view.edges = append(view.edges, Edge{
				ID:     src.str("id"),
				Source: src.str("source"),
				Target: src.str("target"),
			})
		}
	}

	return check(view, opts)
}

// ValidateJSON decodes data and validates it with ValidateValue.
func ValidateJSON(data []byte, opts ...ValidateOption) Report {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return Report{Errors: []string{fmt.Sprintf("graph is not valid JSON: %v", err)}}
	}
	return ValidateValue(v, opts...)
}

// check runs every structural rule; it does not stop at the first failure.
// Without a nodes array there is nothing to resolve edges against, so node
// checks and edge reference checks are skipped.
func check(view graphView, opts []ValidateOption) Report {
	var cfg validateConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	errs := []string{}

	if !view.nodesOK {
		errs = append(errs, "nodes must be an array")
	}
	if !view.edgesOK {
		errs = append(errs, "edges must be an array")
	}

	ids := make(map[string]bool, len(view.nodes))
	if view.nodesOK {
		var hasStart, hasEnd bool
		for _, n := range view.nodes {
			switch n.Type {
			case NodeStart:
				hasStart = true
			case NodeEnd:
				hasEnd = true
			}
		}
		if !hasStart {
			errs = append(errs, "flow must have at least one start node")
		}
		if !hasEnd {
			errs = append(errs, "flow must have at least one end node")
		}

		for i, n := range view.nodes {
			if n.ID == "" {
				errs = append(errs, fmt.Sprintf("node at index %d is missing id", i))
			} else if ids[n.ID] && cfg.uniqueIDs {
				errs = append(errs, fmt.Sprintf("node at index %d has duplicate id %q", i, n.ID))
			}
			if n.Label == "" {
				errs = append(errs, fmt.Sprintf("node at index %d is missing label", i))
			}
			if n.Type == "" {
				errs = append(errs, fmt.Sprintf("node at index %d is missing type", i))
			}
			if n.ID != "" {
				ids[n.ID] = true
			}
		}
	}

	if view.edgesOK {
		for i, e := range view.edges {
			errs = append(errs, checkEndpoint(i, "source", e.Source, ids, view.nodesOK)...)
			errs = append(errs, checkEndpoint(i, "target", e.Target, ids, view.nodesOK)...)
		}
	}

	return Report{Valid: len(errs) == 0, Errors: errs}
}

func checkEndpoint(index int, field, value string, ids map[string]bool, resolve bool) []string {
	if value == "" {
		return []string{fmt.Sprintf("edge at index %d is missing %s", index, field)}
	}
	if resolve && !ids[value] {
		return []string{fmt.Sprintf("edge at index %d references unknown %s %q", index, field, value)}
	}
	return nil
}
