package errors

import (
	"encoding/json"
	"strconv"
)

// ErrorV1 is the schema tag used by Encoded for backward-compatible
// ad-hoc error encoding (distinct from the structured Report type).
const ErrorV1 = "sliver.error/v1"

// Fix represents a suggested fix with a confidence score.
type Fix struct {
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}

// Encoded represents a structured error in JSON form, independent of Report.
// It exists for call sites (parser, driver) that want to attach a fix
// suggestion before a Report has been constructed.
type Encoded struct {
	Schema  string      `json:"schema"`
	Phase   string      `json:"phase"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Fix     Fix         `json:"fix"`
	Context interface{} `json:"context,omitempty"`
	Span    string      `json:"span,omitempty"`
}

// NewEncoded creates an encoded error for the given phase and code.
func NewEncoded(phase, code, msg string, ctx interface{}) Encoded {
	return Encoded{
		Schema:  ErrorV1,
		Phase:   phase,
		Code:    code,
		Message: msg,
		Fix:     Fix{},
		Context: ctx,
	}
}

// WithFix adds a fix suggestion to the error.
func (e Encoded) WithFix(suggestion string, confidence float64) Encoded {
	e.Fix = Fix{Suggestion: suggestion, Confidence: confidence}
	return e
}

// WithSpan adds a formatted source location to the error.
func (e Encoded) WithSpan(span string) Encoded {
	e.Span = span
	return e
}

// ToJSON renders the error as deterministic, indented JSON. Go's
// encoding/json already sorts map[string]any keys, so no extra
// canonicalization pass is required here.
func (e Encoded) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		fallback := Encoded{Schema: ErrorV1, Message: "encoding failed: " + err.Error()}
		return json.Marshal(fallback)
	}
	return data, nil
}

// SafeEncodeError encodes any error without panicking, for use in
// contexts (CLI output, logging) where an encoding failure must never
// crash the caller.
func SafeEncodeError(err error, phase string) []byte {
	if err == nil {
		return nil
	}
	encoded := NewEncoded(phase, "ERR000", err.Error(), nil)
	if rep, ok := AsReport(err); ok {
		encoded.Code = rep.Code
		encoded.Phase = rep.Phase
	}
	data, _ := encoded.ToJSON()
	return data
}

// FormatSourceSpan formats a file position as "file:line:col".
func FormatSourceSpan(file string, line, col int) string {
	return file + ":" + strconv.Itoa(line) + ":" + strconv.Itoa(col)
}
