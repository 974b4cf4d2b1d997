package flowchart

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode"
)

// Strategy names the way a payload was located in the text.
type Strategy string

// Extraction strategies, in the order they are attempted.
const (
	StrategyFence  Strategy = "fence"
	StrategyBraces Strategy = "braces"
	StrategyWhole  Strategy = "whole"
)

// maxBraceAttempts bounds how many opening braces the brace strategy tries
// before giving up, so prose full of braces stays linear-ish.
const maxBraceAttempts = 64

var jsonFence = regexp.MustCompile("(?is)```json\\s*(.*?)```")

// extractor is one fallible way of pulling JSON out of text.
type extractor struct {
	name Strategy
	fn   func(text string) (any, bool)
}

var extractors = []extractor{
	{StrategyFence, fromFence},
	{StrategyBraces, fromBraces},
	{StrategyWhole, fromWhole},
}

// Extract locates a JSON payload inside arbitrary text.
//
// Strategies, first successful parse wins:
//  1. a fenced code block tagged json
//  2. a brace-delimited span running to the end of the text
//  3. the whole trimmed text
//
// A JSON null counts as no payload. Extract never panics on malformed
// input; it returns false once every strategy has failed.
func Extract(text string) (any, bool) {
	v, _, ok := extract(text)
	return v, ok
}

func extract(text string) (any, Strategy, bool) {
	for _, e := range extractors {
		if v, ok := e.fn(text); ok {
			return v, e.name, true
		}
	}
	return nil, "", false
}

func fromFence(text string) (any, bool) {
	m := jsonFence.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return parseJSON(m[1])
}

// fromBraces tries spans that end at the final closing brace, starting from
// the first opening brace and moving right until one parses.
func fromBraces(text string) (any, bool) {
	trimmed := strings.TrimRightFunc(text, unicode.IsSpace)
	if !strings.HasSuffix(trimmed, "}") {
		return nil, false
	}

	start := strings.IndexByte(trimmed, '{')
	for attempt := 0; start >= 0 && attempt < maxBraceAttempts; attempt++ {
		if v, ok := parseJSON(trimmed[start:]); ok {
			return v, true
		}
		next := strings.IndexByte(trimmed[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return nil, false
}

func fromWhole(text string) (any, bool) {
	return parseJSON(text)
}

func parseJSON(s string) (any, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	if v == nil {
		return nil, false
	}
	return v, true
}
