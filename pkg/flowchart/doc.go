/*
Package flowchart compiles free-form language model output into a
process-flow graph for a diagram editor.

# Overview

A chat assistant answers with prose, markdown, and somewhere inside it a
JSON description of a workflow. That JSON comes in one of two shapes and may
be truncated or malformed. flowchart extracts it, normalizes it into a
single canonical Graph and checks the graph's structure, without ever
failing the caller.

The pipeline has three stages:

  - Extract locates a JSON payload in arbitrary text.
  - Normalize recognizes the payload's shape and builds a Graph.
  - Validate reports structural violations as a list of messages.

Compile runs all three and falls back to a fixed default graph when
extraction or normalization fails.

# Basic Usage

	g := flowchart.Compile(reply)
	editor.Load(g.Nodes, g.Edges)

With logging, metrics and tracing:

	c := flowchart.NewCompiler(
	    flowchart.WithLogger(logger),
	    flowchart.WithMetrics(true),
	    flowchart.WithTracing(true),
	)
	g := c.Compile(ctx, reply)

Use TryCompile to learn why a reply produced no graph:

	g, err := c.TryCompile(ctx, reply)
	if errors.Is(err, flowchart.ErrNoPayload) {
	    // the assistant answered in prose only
	}

# Payload Shapes

Canonical payloads are copied node for node:

	{"nodes": [{"id": "1", "label": "Start", "type": "start"}, ...],
	 "edges": [{"source": "1", "target": "2"}, ...]}

Edges may use from/to instead of source/target. Missing node types default
to process; missing node and edge IDs are generated as n1, n2, ... and
e1, e2, ...

Narrative payloads are expanded step by step:

	{"flowchart": {
	    "start": {"action": "Receive request"},
	    "steps": [
	        {"action": "Review", "next": "Record review"},
	        {"action": "Approved?", "options": [
	            {"label": "Yes", "action": "Notify"},
	            {"label": "No", "action": "Reject", "next": "Archive"}
	        ]}
	    ],
	    "end": {"action": "Done"}
	}}

A step with options becomes a decision node with one labelled branch per
option. Branches are not rejoined: steps after a decision continue from the
last option's branch.

# Validation

Validate never returns an error; it returns a Report listing every
violation with its position:

	report := flowchart.ValidateJSON(savedArtifact)
	if !report.Valid {
	    for _, msg := range report.Errors { ... }
	}

Duplicate node IDs are only reported with WithUniqueIDs.

# Thread Safety

All functions are pure and a Compiler is immutable after construction, so
both may be used from any number of goroutines.

# Subpackages

  - chat: transcript types and lookup of the latest assistant flow
  - artifact: flow artifact storage (memory, SQLite)
  - config: configuration loading
  - observability: logging, metrics and tracing helpers
*/
package flowchart
