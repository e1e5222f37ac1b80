// Package diag implements the diagnostic sink shared by the semantic
// analyzer and the TAC generator (spec §4.3, §7). A Sink is owned by a
// single compilation — never global (spec §5) — and accumulates
// diagnostics instead of aborting on first error, so that analysis can
// report every problem it finds in one pass.
package diag

import (
	"fmt"
	"strings"

	"github.com/compilscript/core/internal/token"
	"github.com/tidwall/sjson"
)

// Kind is one of the four diagnostic categories of spec §6.
type Kind string

const (
	Lex      Kind = "lex"
	Syntax   Kind = "syntax"
	Semantic Kind = "semantic"
	TAC      Kind = "tac"
)

// Severity distinguishes a hard error from a warning such as DeadCode.
// Spec §6's wire shape does not name this field directly, but §7's exit
// code rule ("exit code 0 iff no error-severity diagnostics") requires
// it to be representable.
type Severity string

const (
	Error   Severity = "error"
	Warning Severity = "warning"
)

// Diagnostic is a single finding, in the wire shape of spec §6.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Message  string
	Line     int
	Column   int
	Length   int
}

// ToJSON renders d in the exact wire shape of spec §6:
// { kind, message, line, column, length }. Severity is not part of the
// wire shape (matching spec.md verbatim); it is carried internally only.
func (d Diagnostic) ToJSON() (string, error) {
	json := "{}"
	var err error
	for _, kv := range []struct {
		path string
		val  any
	}{
		{"kind", string(d.Kind)},
		{"message", d.Message},
		{"line", d.Line},
		{"column", d.Column},
		{"length", d.Length},
	} {
		json, err = sjson.Set(json, kv.path, kv.val)
		if err != nil {
			return "", err
		}
	}
	return json, nil
}

// Sink accumulates diagnostics for a single compilation. It is never
// shared across compilations (spec §5).
type Sink struct {
	diagnostics []Diagnostic
}

// NewSink returns an empty Sink.
func NewSink() *Sink {
	return &Sink{}
}

// Add appends a diagnostic with Error severity.
func (s *Sink) Add(kind Kind, pos token.Position, length int, format string, args ...any) {
	s.diagnostics = append(s.diagnostics, Diagnostic{
		Kind: kind, Severity: Error, Message: fmt.Sprintf(format, args...),
		Line: pos.Line, Column: pos.Column, Length: length,
	})
}

// AddWarning appends a diagnostic with Warning severity (used for
// DeadCode, spec §7).
func (s *Sink) AddWarning(kind Kind, pos token.Position, length int, format string, args ...any) {
	s.diagnostics = append(s.diagnostics, Diagnostic{
		Kind: kind, Severity: Warning, Message: fmt.Sprintf(format, args...),
		Line: pos.Line, Column: pos.Column, Length: length,
	})
}

// All returns every diagnostic added so far, in the order they were
// added (testable property #1: diagnostic ordering is deterministic).
func (s *Sink) All() []Diagnostic {
	return s.diagnostics
}

// HasErrors reports whether any Error-severity diagnostic was recorded.
// Spec §2: "TAC generation runs only if the diagnostic list is empty" —
// callers check this (not len(All()) == 0) so a clean run with only
// warnings still proceeds to TAC generation.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// FormatWithSource renders a diagnostic with a caret pointing at the
// offending column, in the spirit of the reference compiler's
// internal/errors.CompilerError.Format.
func FormatWithSource(d Diagnostic, source string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s error at %d:%d: %s\n", d.Kind, d.Line, d.Column, d.Message)

	lines := strings.Split(source, "\n")
	if d.Line >= 1 && d.Line <= len(lines) {
		srcLine := lines[d.Line-1]
		fmt.Fprintf(&sb, "%4d | %s\n", d.Line, srcLine)
		caretLine := strings.Repeat(" ", 7+d.Column) + strings.Repeat("^", max(1, d.Length))
		sb.WriteString(caretLine)
	}
	return sb.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
