package diag

import (
	"strings"
	"testing"

	"github.com/compilscript/core/internal/token"
)

func TestSinkHasErrorsIgnoresWarnings(t *testing.T) {
	s := NewSink()
	s.AddWarning(Semantic, token.Position{Line: 1}, 1, "unreachable statement")
	if s.HasErrors() {
		t.Error("a warning-only sink should not report HasErrors")
	}
	s.Add(Semantic, token.Position{Line: 2}, 1, "undeclared name 'x'")
	if !s.HasErrors() {
		t.Error("adding an Error diagnostic should flip HasErrors")
	}
	if len(s.All()) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(s.All()))
	}
}

func TestDiagnosticToJSON(t *testing.T) {
	d := Diagnostic{Kind: Semantic, Message: "undeclared name 'x'", Line: 3, Column: 5, Length: 1}
	json, err := d.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"kind":"semantic"`, `"message":"undeclared name 'x'"`, `"line":3`, `"column":5`, `"length":1`} {
		if !strings.Contains(json, want) {
			t.Errorf("expected JSON to contain %q, got %s", want, json)
		}
	}
}

func TestFormatWithSource(t *testing.T) {
	src := "var x: integer = true;\n"
	d := Diagnostic{Kind: Semantic, Message: "type mismatch", Line: 1, Column: 17, Length: 4}
	out := FormatWithSource(d, src)
	if !strings.Contains(out, "type mismatch") || !strings.Contains(out, "^") {
		t.Errorf("expected caret diagram with message, got: %s", out)
	}
}
