package benchmarks

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/randalmurphal/flowchart/pkg/flowchart"
)

// narrativeReply builds a prose-wrapped narrative flow with n steps, every
// third of which is a two-way decision.
func narrativeReply(n int) string {
	var steps []string
	for i := 0; i < n; i++ {
		if i%3 == 2 {
			steps = append(steps, fmt.Sprintf(
				`{"action":"Check %d","options":[{"label":"Yes","action":"Accept %d"},{"label":"No","action":"Reject %d"}]}`, i, i, i))
			continue
		}
		steps = append(steps, fmt.Sprintf(`{"action":"Step %d"}`, i))
	}
	return "Here is the flow you asked for:\n```json\n" +
		`{"flowchart":{"start":{"action":"Begin"},"steps":[` + strings.Join(steps, ",") + `],"end":{"action":"Done"}}}` +
		"\n```\nLet me know if you want changes."
}

// canonicalReply builds a bare canonical linear graph with n process nodes.
func canonicalReply(n int) string {
	var nodes, edges []string
	nodes = append(nodes, `{"id":"s","label":"Start","type":"start"}`)
	prev := "s"
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("p%d", i)
		nodes = append(nodes, fmt.Sprintf(`{"id":%q,"label":"Step %d","type":"process"}`, id, i))
		edges = append(edges, fmt.Sprintf(`{"source":%q,"target":%q}`, prev, id))
		prev = id
	}
	nodes = append(nodes, `{"id":"x","label":"End","type":"end"}`)
	edges = append(edges, fmt.Sprintf(`{"source":%q,"target":"x"}`, prev))
	return `{"nodes":[` + strings.Join(nodes, ",") + `],"edges":[` + strings.Join(edges, ",") + `]}`
}

func benchmarkCompile(b *testing.B, text string) {
	c := flowchart.NewCompiler(flowchart.WithLogger(nil))
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Compile(ctx, text)
	}
}

// BenchmarkCompile_Narrative_10 compiles a fenced narrative reply.
func BenchmarkCompile_Narrative_10(b *testing.B) {
	benchmarkCompile(b, narrativeReply(10))
}

// BenchmarkCompile_Narrative_100 compiles a large narrative reply.
func BenchmarkCompile_Narrative_100(b *testing.B) {
	benchmarkCompile(b, narrativeReply(100))
}

// BenchmarkCompile_Canonical_100 compiles a bare canonical graph.
func BenchmarkCompile_Canonical_100(b *testing.B) {
	benchmarkCompile(b, canonicalReply(100))
}

// BenchmarkCompile_Fallback measures the prose-only path.
func BenchmarkCompile_Fallback(b *testing.B) {
	benchmarkCompile(b, strings.Repeat("No structured flow here. ", 200))
}

// BenchmarkCompile_Observed compiles with metrics and tracing enabled.
func BenchmarkCompile_Observed(b *testing.B) {
	c := flowchart.NewCompiler(flowchart.WithLogger(nil), flowchart.WithMetrics(true), flowchart.WithTracing(true))
	text := narrativeReply(10)
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Compile(ctx, text)
	}
}

// BenchmarkExtract_Braces measures the brace strategy on a prose-wrapped object.
func BenchmarkExtract_Braces(b *testing.B) {
	text := "Sure, here you go: " + canonicalReply(20)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		flowchart.Extract(text)
	}
}

// BenchmarkValidate_100 validates a 100-node typed graph.
func BenchmarkValidate_100(b *testing.B) {
	g := flowchart.Compile(canonicalReply(100))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		flowchart.Validate(g)
	}
}

// BenchmarkValidateJSON_100 validates the same graph from raw JSON.
func BenchmarkValidateJSON_100(b *testing.B) {
	data := []byte(canonicalReply(100))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		flowchart.ValidateJSON(data)
	}
}

// BenchmarkMermaid_100 renders a large graph.
func BenchmarkMermaid_100(b *testing.B) {
	g := flowchart.Compile(narrativeReply(100))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Mermaid()
	}
}

// TestCompileLatencyBudget checks a typical reply compiles well under a
// millisecond on average.
func TestCompileLatencyBudget(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping latency check in short mode")
	}
	res := testing.Benchmark(func(b *testing.B) {
		benchmarkCompile(b, narrativeReply(10))
	})
	if res.N == 0 {
		t.Skip("benchmark did not run")
	}
	if perOp := res.NsPerOp(); perOp > 5_000_000 {
		t.Errorf("compile took %dns/op, want under 5ms", perOp)
	}
}
