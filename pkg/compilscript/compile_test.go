package compilscript

import (
	"strings"
	"testing"

	"github.com/compilscript/core/internal/cst"
)

func TestCompileS1SimpleArithmeticWithPrint(t *testing.T) {
	b := cst.NewBuilder()
	prog := b.Program(
		b.VarDecl("x", b.TypeName("integer"), b.Int(10)),
		b.VarDecl("y", b.TypeName("integer"), b.Bin("+", b.Var("x"), b.Int(5))),
		b.ExprStmt(b.Call("print", b.Var("y"))),
	)
	report := Compile("", prog, Options{GenerateTAC: true})
	if !report.OK {
		t.Fatalf("expected OK, got diagnostics: %+v", report.Diagnostics)
	}
	listing := report.TAC.Listing()
	if !strings.Contains(listing, "x + 5") {
		t.Errorf("expected x + 5 in listing:\n%s", listing)
	}
	if !strings.Contains(listing, "call print, 1") {
		t.Errorf("expected print call in listing:\n%s", listing)
	}
}

func TestCompileS4BuiltinClash(t *testing.T) {
	b := cst.NewBuilder()
	prog := b.Program(
		b.Func("print", nil, b.TypeName("void"), b.Block()),
	)
	report := Compile("", prog, Options{})
	if report.OK {
		t.Fatalf("expected clash diagnostic, got OK")
	}
	found := false
	for _, d := range report.Diagnostics {
		if strings.Contains(d.Message, "clashes") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a clash diagnostic, got: %+v", report.Diagnostics)
	}
}

func TestCompileStopsBeforeTACOnSemanticError(t *testing.T) {
	b := cst.NewBuilder()
	prog := b.Program(b.ExprStmt(b.Var("undeclared")))
	report := Compile("", prog, Options{GenerateTAC: true})
	if report.OK {
		t.Fatalf("expected a semantic error")
	}
	if report.TAC != nil {
		t.Errorf("TAC should not run after a semantic error")
	}
}

func TestCompileReturnsASTDotWhenRequested(t *testing.T) {
	b := cst.NewBuilder()
	prog := b.Program(b.VarDecl("x", b.TypeName("integer"), b.Int(1)))
	report := Compile("", prog, Options{ReturnASTDot: true})
	if report.ASTDot == nil || !strings.Contains(*report.ASTDot, "digraph AST") {
		t.Errorf("expected a DOT graph, got %v", report.ASTDot)
	}
}
