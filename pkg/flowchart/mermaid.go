package flowchart

import (
	"fmt"
	"strings"
)

// Mermaid renders the graph as a left-to-right Mermaid flowchart.
//
// Nodes are named N0, N1, ... in graph order. Start and end nodes render as
// stadiums, decisions as rhombi and everything else as rectangles. Edges
// whose endpoints are not in the graph are skipped.
func (g *Graph) Mermaid() string {
	var b strings.Builder
	b.WriteString("flowchart LR")

	names := make(map[string]string, len(g.Nodes))
	for i, n := range g.Nodes {
		name := fmt.Sprintf("N%d", i)
		if _, dup := names[n.ID]; !dup {
			names[n.ID] = name
		}
		label := mermaidText(n.Label)
		switch n.Type {
		case NodeStart, NodeEnd:
			fmt.Fprintf(&b, "\n  %s([\"%s\"])", name, label)
		case NodeDecision:
			fmt.Fprintf(&b, "\n  %s{\"%s\"}", name, label)
		default:
			fmt.Fprintf(&b, "\n  %s[\"%s\"]", name, label)
		}
	}

	for _, e := range g.Edges {
		from, okFrom := names[e.Source]
		to, okTo := names[e.Target]
		if !okFrom || !okTo {
			continue
		}
		if e.Label != "" {
			fmt.Fprintf(&b, "\n  %s -- \"%s\" --> %s", from, mermaidText(e.Label), to)
		} else {
			fmt.Fprintf(&b, "\n  %s --> %s", from, to)
		}
	}

	return b.String()
}

var mermaidEscaper = strings.NewReplacer(`"`, "#quot;", "\n", " ", "\r", "")

func mermaidText(s string) string {
	return mermaidEscaper.Replace(s)
}
