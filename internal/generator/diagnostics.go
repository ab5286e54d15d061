package generator

import "fmt"

// DiagnosticKind classifies a degraded outcome.
type DiagnosticKind string

const (
	// ModuleNotFound: an external module has no backing file; it contributes nothing.
	ModuleNotFound DiagnosticKind = "module-not-found"
	// FieldDropped: positional struct fields are left out of the header struct.
	FieldDropped DiagnosticKind = "field-dropped"
	// LossyType: a type crosses the boundary by unchecked reinterpretation.
	LossyType DiagnosticKind = "lossy-type"
	// NoDefault: a struct constructor relies on a Default implementation that was not seen.
	NoDefault DiagnosticKind = "no-default"
)

// Diagnostic records something skipped or unsound during generation. It
// never changes the generated text.
type Diagnostic struct {
	Kind    DiagnosticKind
	Item    string // qualified path of the declaration
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.Item, d.Message)
}
