package ember

import (
	"fmt"
	"os"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	// SeverityWarning marks a recoverable input problem that ember corrected
	// on its own (inverted range, negative dimension, degenerate axis).
	SeverityWarning Severity = iota
	// SeverityError marks a misuse that ember refused to apply.
	SeverityError
)

// Diagnostic codes. Stable strings so hosts can filter without matching on
// message text.
const (
	CodeInvertedRange     = "inverted_range"
	CodeNegativeDimension = "negative_dimension"
	CodeDegenerateAxis    = "degenerate_axis"
	CodeNegativeDelta     = "negative_delta"
	CodeBadStep           = "bad_step"
	CodeBadBudget         = "bad_budget"
)

// Diagnostic carries one recoverable issue from the core to the host.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
}

// diagHandler receives every diagnostic. Plain var, no atomic; ember is
// single-threaded.
var diagHandler = func(d Diagnostic) {
	_, _ = fmt.Fprintf(os.Stderr, "[ember] warning: %s (%s)\n", d.Message, d.Code)
}

// SetDiagnosticHandler replaces the diagnostic sink. The default handler
// prints to stderr. Pass nil to silence diagnostics entirely.
func SetDiagnosticHandler(fn func(Diagnostic)) {
	diagHandler = fn
}

// warnf emits a SeverityWarning diagnostic through the current handler.
func warnf(code, format string, args ...any) {
	if diagHandler == nil {
		return
	}
	diagHandler(Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	})
}

// debugMode gates the assertion checks in debugCheck.
var debugMode bool

// SetDebug enables debug assertions. With debug on, programming errors such
// as using a Particle view whose slot has been reclaimed panic with a
// descriptive message. In release mode these checks are skipped entirely.
func SetDebug(enabled bool) {
	debugMode = enabled
}

// debugCheck panics with msg when cond is false and debug mode is on.
func debugCheck(cond bool, format string, args ...any) {
	if debugMode && !cond {
		panic("ember debug: " + fmt.Sprintf(format, args...))
	}
}
