package flowchart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtract_Strategies verifies which strategy finds the payload.
func TestExtract_Strategies(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		strategy Strategy
		want     any
	}{
		{
			"fenced block",
			"Here you go:\n```json\n{\"a\": 1}\n```\nLet me know.",
			StrategyFence,
			map[string]any{"a": float64(1)},
		},
		{
			"fence tag is case-insensitive",
			"```JSON\n{\"a\": 2}\n```",
			StrategyFence,
			map[string]any{"a": float64(2)},
		},
		{
			"trailing object after prose",
			`Sure, the flow is {"a": 3}`,
			StrategyBraces,
			map[string]any{"a": float64(3)},
		},
		{
			"trailing whitespace after object",
			"Sure {\"a\": 4}\n\n",
			StrategyBraces,
			map[string]any{"a": float64(4)},
		},
		{
			"nested objects span to the final brace",
			`Result: {"a": {"b": 5}}`,
			StrategyBraces,
			map[string]any{"a": map[string]any{"b": float64(5)}},
		},
		{
			"stray brace in prose before payload",
			`Use {curly} notation. {"a": 6}`,
			StrategyBraces,
			map[string]any{"a": float64(6)},
		},
		{
			"broken fence falls through to braces",
			"```json\n{broken\n```\n{\"a\": 7}",
			StrategyBraces,
			map[string]any{"a": float64(7)},
		},
		{
			"whole text array",
			`  [1, 2]  `,
			StrategyWhole,
			[]any{float64(1), float64(2)},
		},
		{
			"whole text scalar",
			`"just a string"`,
			StrategyWhole,
			"just a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, strategy, ok := extract(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.strategy, strategy)
			assert.Equal(t, tt.want, v)

			exported, ok := Extract(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, exported)
		})
	}
}

// TestExtract_NoPayload verifies every strategy failing yields false.
func TestExtract_NoPayload(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t"},
		{"prose", "I think you should just wing it."},
		{"truncated object", `{"nodes": [{"id": "1"`},
		{"object followed by prose", `{"a": 1} hope that helps`},
		{"empty fence", "```json\n```"},
		{"json null", "null"},
		{"unbalanced braces", "}}}{{{"},
		{"only braces", "{}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Extract(tt.text)
			assert.False(t, ok)
			assert.Nil(t, v)
		})
	}
}

// TestExtract_FencePreferredOverTrailingObject verifies strategy priority.
func TestExtract_FencePreferredOverTrailingObject(t *testing.T) {
	text := "```json\n{\"from\": \"fence\"}\n```\nAlternatively {\"from\": \"braces\"}"

	v, strategy, ok := extract(text)

	require.True(t, ok)
	assert.Equal(t, StrategyFence, strategy)
	assert.Equal(t, map[string]any{"from": "fence"}, v)
}

// TestExtract_ManyBraces verifies prose full of braces terminates quickly.
func TestExtract_ManyBraces(t *testing.T) {
	text := strings.Repeat("{ ", 10000) + "}"

	v, ok := Extract(text)

	assert.False(t, ok)
	assert.Nil(t, v)
}
