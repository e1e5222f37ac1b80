package astjson

import "testing"

func TestLoadSimpleProgram(t *testing.T) {
	src := `{
		"statements": [
			{"kind": "var", "name": "x", "declared": {"name": "integer"}, "init": {"kind": "int", "value": 10}},
			{"kind": "exprStmt", "expr": {"kind": "call", "callee": "print", "args": [{"kind": "var", "name": "x"}]}}
		]
	}`
	prog, err := Load([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
}

func TestLoadRejectsUnknownKind(t *testing.T) {
	_, err := Load([]byte(`{"statements": [{"kind": "bogus"}]}`))
	if err == nil {
		t.Fatalf("expected an error for an unknown statement kind")
	}
}

func TestLoadRejectsMissingStatements(t *testing.T) {
	_, err := Load([]byte(`{}`))
	if err == nil {
		t.Fatalf("expected an error when \"statements\" is absent")
	}
}
