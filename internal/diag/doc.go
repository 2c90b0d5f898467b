// Package diag defines the diagnostic model shared by all pipeline phases.
//
// Diagnostic is the central record: a Severity, a stable Code, a short
// message, a primary source.Span, and optional Notes. Phases emit through the
// Reporter interface so that producers stay decoupled from storage and
// formatting; BagReporter aggregates into a Bag, which supports sorting and
// deduplication before rendering.
//
// The package performs no formatting or IO. Rendering lives in
// internal/diagfmt; the repair fix report is modelled separately in
// internal/repair because applied fixes are informational, not errors.
//
// One Bag per phase: the driver keeps separate lexical, syntax, and semantic
// bags so that callers can inspect each report independently (a non-empty
// syntax bag invalidates IR output; a non-empty lexical bag alone does not).
package diag
