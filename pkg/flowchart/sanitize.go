package flowchart

// Sanitize returns a copy of g reduced to its well-formed parts, suitable
// for persisting. Nodes without a type become process nodes. Nodes missing
// an id or label are dropped, as are later nodes repeating an earlier id.
// Edges are dropped when an endpoint is missing or unknown, or when they loop
// a node back to itself.
//
// Sanitize does not add start or end nodes; validate the result to learn
// whether the remaining graph is complete.
func Sanitize(g *Graph) *Graph {
	out := &Graph{Nodes: []Node{}, Edges: []Edge{}}
	if g == nil {
		return out
	}

	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" || n.Label == "" || ids[n.ID] {
			continue
		}
		if n.Type == "" {
			n.Type = NodeProcess
		}
		ids[n.ID] = true
		if n.Position != nil {
			p := *n.Position
			n.Position = &p
		}
		out.Nodes = append(out.Nodes, n)
	}

	for _, e := range g.Edges {
		if e.Source == "" || e.Target == "" || e.Source == e.Target {
			continue
		}
		if !ids[e.Source] || !ids[e.Target] {
			continue
		}
		out.Edges = append(out.Edges, e)
	}

	return out
}
