package flowchart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFallbackGraph verifies the default graph's content.
func TestFallbackGraph(t *testing.T) {
	g := FallbackGraph()

	assert.Equal(t, []Node{
		{ID: "start", Label: "Start", Type: NodeStart},
		{ID: "process", Label: "Process", Type: NodeProcess},
		{ID: "end", Label: "End", Type: NodeEnd},
	}, g.Nodes)
	assert.Equal(t, []string{"start->process", "process->end"}, edgePairs(g))
	assert.True(t, Validate(g, WithUniqueIDs()).Valid)
}

// TestGraph_Clone verifies clones share no mutable state.
func TestGraph_Clone(t *testing.T) {
	g := &Graph{
		Nodes: []Node{{ID: "a", Label: "A", Type: NodeStart, Position: &Position{X: 1}}},
		Edges: []Edge{{ID: "e", Source: "a", Target: "a"}},
	}

	c := g.Clone()
	require.Equal(t, g, c)

	c.Nodes[0].Label = "changed"
	c.Nodes[0].Position.X = 5
	c.Edges[0].Target = "b"

	assert.Equal(t, "A", g.Nodes[0].Label)
	assert.Equal(t, float64(1), g.Nodes[0].Position.X)
	assert.Equal(t, "a", g.Edges[0].Target)

	var nilGraph *Graph
	assert.Nil(t, nilGraph.Clone())
}

// TestGraph_JSON verifies the wire field names the editor consumes.
func TestGraph_JSON(t *testing.T) {
	g := &Graph{
		Nodes: []Node{
			{ID: "1", Label: "Start", Type: NodeStart},
			{ID: "2", Label: "Work", Type: NodeProcess, Position: &Position{X: 3, Y: 4}, Actor: "Ops"},
		},
		Edges: []Edge{{ID: "e1", Source: "1", Target: "2", Label: "go"}},
	}

	data, err := json.Marshal(g)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"nodes":[
			{"id":"1","label":"Start","type":"start"},
			{"id":"2","label":"Work","type":"process","position":{"x":3,"y":4},"actor":"Ops"}
		],
		"edges":[{"id":"e1","source":"1","target":"2","label":"go"}]
	}`, string(data))
}
