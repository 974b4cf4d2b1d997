package flowchart

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test payloads used across tests.

// narrativeDecision is the approve/reject narrative from the product docs.
const narrativeDecision = `{"flowchart":{"start":{"action":"Begin"},"steps":[{"action":"Check","options":[{"action":"Approve"},{"action":"Reject"}]}],"end":{"action":"Done"}}}`

// canonicalLinear is a valid three-node canonical graph.
const canonicalLinear = `{"nodes":[
	{"id":"1","label":"Start","type":"start"},
	{"id":"2","label":"Work","type":"process"},
	{"id":"3","label":"End","type":"end"}
],"edges":[
	{"id":"a","source":"1","target":"2"},
	{"id":"b","source":"2","target":"3"}
]}`

// decode parses a JSON literal for tests, failing the test on error.
func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

// normalizeJSON decodes and normalizes a JSON literal, requiring success.
func normalizeJSON(t *testing.T, s string) *Graph {
	t.Helper()
	g, ok := Normalize(decode(t, s))
	require.True(t, ok, "expected payload to normalize")
	return g
}

// edgePairs returns "source->target" for every edge, in order.
func edgePairs(g *Graph) []string {
	pairs := make([]string, len(g.Edges))
	for i, e := range g.Edges {
		pairs[i] = e.Source + "->" + e.Target
	}
	return pairs
}

// labelOf returns the label of the node with the given ID.
func labelOf(g *Graph, id string) string {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n.Label
		}
	}
	return ""
}

// captureLogger returns a JSON logger writing into the returned buffer.
func captureLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}
