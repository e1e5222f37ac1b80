package memaddr

import (
	"testing"

	"github.com/compilscript/core/internal/ast"
	"github.com/compilscript/core/internal/cst"
	"github.com/compilscript/core/internal/semantic"
)

func analyze(t *testing.T, prog *ast.Program) *semantic.Result {
	t.Helper()
	result := semantic.NewAnalyzer().Analyze(prog)
	if !result.OK {
		t.Fatalf("expected clean analysis, got: %+v", result.Diagnostics)
	}
	return result
}

func TestGlobalsGetSequentialOffsets(t *testing.T) {
	b := cst.NewBuilder()
	prog := b.Program(
		b.VarDecl("x", b.TypeName("integer"), b.Int(1)),
		b.VarDecl("y", b.TypeName("integer"), b.Int(2)),
	)
	result := analyze(t, prog)
	NewAnnotator().Annotate(result.Global, result.Classes)

	x, _ := result.Global.LookupLocal("x")
	y, _ := result.Global.LookupLocal("y")
	if x.Storage.String() != "global[0]" {
		t.Errorf("x storage = %s, want global[0]", x.Storage.String())
	}
	if y.Storage.String() != "global[1]" {
		t.Errorf("y storage = %s, want global[1]", y.Storage.String())
	}
}

func TestAnnotateIsIdempotent(t *testing.T) {
	b := cst.NewBuilder()
	prog := b.Program(b.VarDecl("x", b.TypeName("integer"), b.Int(1)))
	result := analyze(t, prog)
	a := NewAnnotator()
	a.Annotate(result.Global, result.Classes)
	x, _ := result.Global.LookupLocal("x")
	first := x.Storage.String()
	a.Annotate(result.Global, result.Classes)
	if x.Storage.String() != first {
		t.Errorf("re-annotation changed storage: %s -> %s", first, x.Storage.String())
	}
}

func TestFunctionParamsAndLocalsGetFrameOffsets(t *testing.T) {
	b := cst.NewBuilder()
	fn := b.Func("f", []ast.Param{{Name: "a", Declared: b.TypeName("integer")}}, b.TypeName("integer"),
		b.Block(
			b.VarDecl("local", b.TypeName("integer"), b.Int(0)),
			b.Return(b.Var("a")),
		),
	)
	prog := b.Program(fn)
	result := analyze(t, prog)
	NewAnnotator().Annotate(result.Global, result.Classes)

	fnScope := result.Global.Children()[0]
	a, _ := fnScope.LookupLocal("a")
	if a.Storage.String() != "param[2]" {
		t.Errorf("param a storage = %s, want param[2]", a.Storage.String())
	}
	local, _ := fnScope.LookupLocal("local")
	if local.Storage.String() != "stack[-1]" {
		t.Errorf("local storage = %s, want stack[-1]", local.Storage.String())
	}
}

func TestClassFieldsInheritPrefix(t *testing.T) {
	b := cst.NewBuilder()
	base := b.Class("Base", "", []ast.FieldDecl{{Name: "x", Declared: b.TypeName("integer")}}, nil)
	derived := b.Class("Derived", "Base", []ast.FieldDecl{{Name: "y", Declared: b.TypeName("integer")}}, nil)
	prog := b.Program(base, derived)
	result := analyze(t, prog)
	NewAnnotator().Annotate(result.Global, result.Classes)

	baseClass := result.Classes["Base"]
	derivedClass := result.Classes["Derived"]
	if baseClass.Meta.Fields[0].Offset != 0 {
		t.Errorf("Base.x offset = %d, want 0", baseClass.Meta.Fields[0].Offset)
	}
	if derivedClass.Meta.Fields[0].Offset != 1 {
		t.Errorf("Derived.y offset = %d, want 1 (after inherited prefix)", derivedClass.Meta.Fields[0].Offset)
	}
}
