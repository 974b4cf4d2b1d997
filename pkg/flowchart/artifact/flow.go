package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/randalmurphal/flowchart/pkg/flowchart"
	"github.com/randalmurphal/flowchart/pkg/flowchart/observability"
)

// ValidationError is returned by SaveGraph when the sanitized flow still
// violates structural rules. Nothing is written.
type ValidationError struct {
	ProjectID string
	Report    flowchart.Report
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("flow for project %q is invalid: %s", e.ProjectID, strings.Join(e.Report.Errors, "; "))
}

// Unwrap allows errors.Is(err, ErrInvalidFlow).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidFlow
}

// Option configures SaveGraph and LoadGraph.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	validateOpts []flowchart.ValidateOption
}

// WithLogger logs store failures to logger. Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithValidateOptions sets the validation options applied on save and load.
func WithValidateOptions(opts ...flowchart.ValidateOption) Option {
	return func(o *options) { o.validateOpts = append([]flowchart.ValidateOption(nil), opts...) }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// SaveGraph sanitizes g, validates the result and persists it as the
// project's flow. It returns the graph that was stored.
//
// A flow that is still invalid after sanitizing is refused with a
// *ValidationError.
func SaveGraph(store Store, projectID string, g *flowchart.Graph, opts ...Option) (*flowchart.Graph, error) {
	o := applyOptions(opts)
	done := observability.TimedOperation()

	if projectID == "" {
		return nil, ErrEmptyProjectID
	}

	clean := flowchart.Sanitize(g)
	if report := flowchart.Validate(clean, o.validateOpts...); !report.Valid {
		return nil, &ValidationError{ProjectID: projectID, Report: report}
	}

	data, err := json.Marshal(clean)
	if err != nil {
		return nil, fmt.Errorf("encode flow: %w", err)
	}

	if err := store.Save(projectID, data); err != nil {
		observability.LogStoreError(o.logger, projectID, "save", err)
		return nil, fmt.Errorf("save flow for project %q: %w", projectID, err)
	}

	dropped := 0
	if g != nil {
		dropped = len(g.Nodes) + len(g.Edges) - len(clean.Nodes) - len(clean.Edges)
	}
	observability.LogFlowSaved(o.logger, projectID, len(clean.Nodes), len(clean.Edges), dropped, done())
	return clean, nil
}

// LoadGraph loads a project's flow and validates it as stored.
//
// Stored flows may predate current rules or have been written by other
// tools, so an invalid flow is returned together with its failing report
// rather than as an error.
func LoadGraph(store Store, projectID string, opts ...Option) (*flowchart.Graph, flowchart.Report, error) {
	o := applyOptions(opts)

	data, err := store.Load(projectID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			observability.LogStoreError(o.logger, projectID, "load", err)
		}
		return nil, flowchart.Report{}, fmt.Errorf("load flow for project %q: %w", projectID, err)
	}

	report := flowchart.ValidateJSON(data, o.validateOpts...)

	var g flowchart.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, report, fmt.Errorf("decode flow for project %q: %w", projectID, err)
	}
	return &g, report, nil
}
