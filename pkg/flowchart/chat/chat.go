// Package chat holds the transcript types exchanged with the flow assistant
// and finds the most recent flow an assistant proposed.
package chat

import (
	"github.com/randalmurphal/flowchart/pkg/flowchart"
)

// Message is a conversation turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Role identifies the message sender.
type Role string

// Standard message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// LatestPayload returns the JSON payload of the newest assistant message
// that contains one. Older messages are consulted only when every newer
// assistant message is prose-only or malformed.
func LatestPayload(msgs []Message) (any, bool) {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role != RoleAssistant {
			continue
		}
		if v, ok := flowchart.Extract(msgs[i].Content); ok {
			return v, true
		}
	}
	return nil, false
}

// LatestGraph normalizes the payload found by LatestPayload.
//
// Unlike flowchart.Compile there is no fallback: a transcript without a
// recognizable flow returns false so the caller can keep its current graph.
func LatestGraph(msgs []Message) (*flowchart.Graph, bool) {
	v, ok := LatestPayload(msgs)
	if !ok {
		return nil, false
	}
	return flowchart.Normalize(v)
}
