package errors

import (
	"encoding/json"
	"errors"

	"github.com/labs-lang/sliver/internal/ast"
)

// ReportSchema is the schema tag stamped on every Report.
const ReportSchema = "sliver.error/v1"

// Report is the canonical structured error type for the property compiler.
// All error builders return a *Report, which can be wrapped as a ReportError.
type Report struct {
	Schema  string         `json:"schema"`         // Always ReportSchema
	Code    string         `json:"code"`           // Error code (DSC001, PROP001, ...)
	Phase   string         `json:"phase"`          // Phase: "descriptor", "property", "eliminate", "emit"
	Message string         `json:"message"`        // Human-readable message
	Span    *ast.Span      `json:"span,omitempty"` // Source location (optional)
	Data    map[string]any `json:"data,omitempty"` // Structured data (sorted keys)
	Fix     *Fix           `json:"fix,omitempty"`  // Suggested fix (optional)
}

// ReportError wraps a Report as an error
// This allows structured reports to survive errors.As() unwrapping
type ReportError struct {
	Rep *Report
}

// Error implements the error interface
func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport attempts to extract a Report from an error chain
// Returns the Report and true if found, nil and false otherwise
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps a Report as a ReportError
// Call sites should return errors.WrapReport(report) to preserve structure
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// ToJSON converts a Report to JSON (deterministic, sorted keys)
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error

	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}

	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewGeneric wraps an arbitrary error into a Report tagged with phase.
// Used when a stage fails in a way that doesn't correspond to one of
// the registered codes (e.g. an os/exec failure in the driver).
func NewGeneric(phase string, err error) *Report {
	return &Report{
		Schema:  ReportSchema,
		Code:    "GENERIC",
		Phase:   phase,
		Message: err.Error(),
		Data:    map[string]any{},
	}
}

// New builds a Report from a registered code, a message, and optional
// structured data describing the failure (e.g. {"name": varname}).
func New(code, message string, data map[string]any) *Report {
	phase := ""
	if info, ok := GetErrorInfo(code); ok {
		phase = info.Phase
	}
	return &Report{
		Schema:  ReportSchema,
		Code:    code,
		Phase:   phase,
		Message: message,
		Data:    data,
	}
}

// WithSpan attaches a source span to the report and returns it for chaining.
func (r *Report) WithSpan(span ast.Span) *Report {
	r.Span = &span
	return r
}
