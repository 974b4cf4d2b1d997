package flowchart

import (
	"fmt"
	"strconv"
)

// Shape identifies which payload schema a value matched.
type Shape string

// Recognized payload shapes.
const (
	ShapeCanonical Shape = "canonical"
	ShapeNarrative Shape = "narrative"
)

// shapeHandler pairs a shape predicate with the builder for that shape.
type shapeHandler struct {
	shape Shape
	match func(object) bool
	build func(*normalizer, object)
}

// shapes is evaluated in order; the first matching predicate wins.
var shapes = []shapeHandler{
	{ShapeCanonical, isCanonical, (*normalizer).canonical},
	{ShapeNarrative, isNarrative, (*normalizer).narrative},
}

func isCanonical(o object) bool {
	_, nodesOK := o.array("nodes")
	_, edgesOK := o.array("edges")
	return nodesOK && edgesOK
}

func isNarrative(o object) bool {
	return o.has("flowchart")
}

// Normalize converts a parsed payload into a canonical Graph.
//
// A value with "nodes" and "edges" arrays is copied as a canonical graph,
// filling in missing node types, node IDs and edge IDs. A value with a
// "flowchart" key is expanded from its start/steps/end narrative. Anything
// else returns false. The result is not validated.
func Normalize(value any) (*Graph, bool) {
	g, _, ok := normalize(value)
	return g, ok
}

func normalize(value any) (*Graph, Shape, bool) {
	o := asObject(value)
	if o == nil {
		return nil, "", false
	}

	for _, h := range shapes {
		if !h.match(o) {
			continue
		}
		n := newNormalizer()
		h.build(n, o)
		return n.graph, h.shape, true
	}
	return nil, "", false
}

// normalizer accumulates one graph. IDs it generates increase monotonically,
// are never reused, and skip any ID the input already supplied.
type normalizer struct {
	graph     *Graph
	nodeSeq   int
	edgeSeq   int
	nodeTaken map[string]bool
	edgeTaken map[string]bool
}

func newNormalizer() *normalizer {
	return &normalizer{
		graph:     &Graph{Nodes: []Node{}, Edges: []Edge{}},
		nodeTaken: make(map[string]bool),
		edgeTaken: make(map[string]bool),
	}
}

func (n *normalizer) nextNodeID() string {
	for {
		n.nodeSeq++
		id := "n" + strconv.Itoa(n.nodeSeq)
		if !n.nodeTaken[id] {
			n.nodeTaken[id] = true
			return id
		}
	}
}

func (n *normalizer) nextEdgeID() string {
	for {
		n.edgeSeq++
		id := "e" + strconv.Itoa(n.edgeSeq)
		if !n.edgeTaken[id] {
			n.edgeTaken[id] = true
			return id
		}
	}
}

// canonical copies a {nodes, edges} payload.
func (n *normalizer) canonical(o object) {
	rawNodes, _ := o.array("nodes")
	rawEdges, _ := o.array("edges")

	for _, raw := range rawNodes {
		if id := asObject(raw).str("id"); id != "" {
			n.nodeTaken[id] = true
		}
	}
	for _, raw := range rawEdges {
		if id := asObject(raw).str("id"); id != "" {
			n.edgeTaken[id] = true
		}
	}

	for _, raw := range rawNodes {
		src := asObject(raw)
		node := Node{
			ID:          src.str("id"),
			Label:       src.firstString("label", "action"),
			Type:        NodeType(src.str("type")),
			Actor:       src.str("actor"),
			Description: src.str("description"),
		}
		if node.ID == "" {
			node.ID = n.nextNodeID()
		}
		if node.Type == "" {
			node.Type = NodeProcess
		}
		if pos := src.obj("position"); pos != nil {
			x, _ := pos.number("x")
			y, _ := pos.number("y")
			node.Position = &Position{X: x, Y: y}
		}
		n.graph.Nodes = append(n.graph.Nodes, node)
	}

	for _, raw := range rawEdges {
		src := asObject(raw)
		edge := Edge{
			ID:     src.str("id"),
			Source: src.firstString("source", "from"),
			Target: src.firstString("target", "to"),
			Label:  src.str("label"),
		}
		if edge.ID == "" {
			edge.ID = n.nextEdgeID()
		}
		n.graph.Edges = append(n.graph.Edges, edge)
	}
}

// narrative expands a {flowchart: {start, steps, end}} payload.
//
// A running predecessor starts at the start node. Plain steps chain onto it
// (through their optional "next" node). Steps with options become a decision
// node fanning out to one node per option; afterwards the predecessor is the
// last option's terminal node. Branches are not rejoined.
func (n *normalizer) narrative(o object) {
	fc := o.obj("flowchart")

	prev := n.addNode(actionOf(fc["start"], "Start"), NodeStart)

	steps, _ := fc.array("steps")
	for _, raw := range steps {
		step := asObject(raw)
		options, _ := step.array("options")

		if len(options) == 0 {
			id := n.addNode(actionOf(raw, "Step"), NodeProcess)
			n.addEdge(prev, id, "")
			prev = id
			if next := step.str("next"); next != "" {
				nextID := n.addNode(next, NodeProcess)
				n.addEdge(id, nextID, "")
				prev = nextID
			}
			continue
		}

		decisionID := n.addNode(actionOf(raw, "Decision"), NodeDecision)
		n.addEdge(prev, decisionID, "")
		for i, rawOpt := range options {
			opt := asObject(rawOpt)
			optID := n.addNode(actionOf(rawOpt, fmt.Sprintf("Option %d", i+1)), NodeProcess)
			n.addEdge(decisionID, optID, opt.firstString("label", "action"))
			prev = optID
			if next := opt.str("next"); next != "" {
				nextID := n.addNode(next, NodeProcess)
				n.addEdge(optID, nextID, "")
				prev = nextID
			}
		}
	}

	if fc.has("end") {
		endID := n.addNode(actionOf(fc["end"], "End"), NodeEnd)
		n.addEdge(prev, endID, "")
	}
}

func (n *normalizer) addNode(label string, t NodeType) string {
	id := n.nextNodeID()
	n.graph.Nodes = append(n.graph.Nodes, Node{ID: id, Label: label, Type: t})
	return id
}

func (n *normalizer) addEdge(source, target, label string) {
	n.graph.Edges = append(n.graph.Edges, Edge{
		ID:     n.nextEdgeID(),
		Source: source,
		Target: target,
		Label:  label,
	})
}

// actionOf returns the "action" text of a narrative element, the element
// itself when it is a bare string, or fallback.
func actionOf(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	if a := asObject(v).str("action"); a != "" {
		return a
	}
	return fallback
}
