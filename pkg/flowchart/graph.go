package flowchart

// NodeType classifies a node for rendering and validation.
type NodeType string

// Node types understood by the diagram editor.
const (
	NodeStart    NodeType = "start"
	NodeProcess  NodeType = "process"
	NodeDecision NodeType = "decision"
	NodeEnd      NodeType = "end"
)

// Position is an optional canvas coordinate supplied by the source.
// The compiler never computes positions; layout belongs to the editor.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a single step in a process flow.
type Node struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Type        NodeType  `json:"type"`
	Position    *Position `json:"position,omitempty"`
	Actor       string    `json:"actor,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Edge is a directed connection between two nodes.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// Graph is the canonical node/edge representation of a process flow.
//
// A Graph returned by the Compiler is a fresh value owned by the caller.
// Editors that mutate it should work on a Clone if the original is shared.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}

	nodes := make([]Node, len(g.Nodes))
	for i, n := range g.Nodes {
		if n.Position != nil {
			p := *n.Position
			n.Position = &p
		}
		nodes[i] = n
	}

	edges := make([]Edge, len(g.Edges))
	copy(edges, g.Edges)

	return &Graph{Nodes: nodes, Edges: edges}
}

// NodeIDs returns node IDs in graph order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// CountType returns how many nodes have the given type.
func (g *Graph) CountType(t NodeType) int {
	count := 0
	for _, n := range g.Nodes {
		if n.Type == t {
			count++
		}
	}
	return count
}

// fallbackGraph is the single definition of the graph returned when
// compilation cannot produce anything better. Never hand it out directly;
// FallbackGraph returns a copy.
var fallbackGraph = Graph{
	Nodes: []Node{
		{ID: "start", Label: "Start", Type: NodeStart},
		{ID: "process", Label: "Process", Type: NodeProcess},
		{ID: "end", Label: "End", Type: NodeEnd},
	},
	Edges: []Edge{
		{ID: "e1", Source: "start", Target: "process"},
		{ID: "e2", Source: "process", Target: "end"},
	},
}

// FallbackGraph returns a fresh copy of the default start → Process → end graph.
func FallbackGraph() *Graph {
	return fallbackGraph.Clone()
}
