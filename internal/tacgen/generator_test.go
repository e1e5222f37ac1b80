package tacgen

import (
	"strings"
	"testing"

	"github.com/compilscript/core/internal/ast"
	"github.com/compilscript/core/internal/cst"
	"github.com/compilscript/core/internal/semantic"
)

func generate(t *testing.T, prog *ast.Program) *Result {
	t.Helper()
	result := semantic.NewAnalyzer().Analyze(prog)
	if !result.OK {
		t.Fatalf("expected clean analysis, got: %+v", result.Diagnostics)
	}
	return NewGenerator().Generate(result.Program, result.Classes)
}

func listing(r *Result) string {
	var sb strings.Builder
	for _, instr := range r.Instructions {
		sb.WriteString(instr.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

func TestArithmeticLowersToBinaryChain(t *testing.T) {
	b := cst.NewBuilder()
	prog := b.Program(
		b.VarDecl("x", b.TypeName("integer"), b.Int(1)),
		b.ExprStmt(b.Call("print", b.Bin("+", b.Var("x"), b.Int(2)))),
	)
	r := generate(t, prog)
	if r.Diagnostics != nil {
		t.Fatalf("unexpected diagnostics: %+v", r.Diagnostics)
	}
	got := listing(r)
	if !strings.Contains(got, "@function main") || !strings.Contains(got, "endfunc") {
		t.Errorf("missing main wrapper:\n%s", got)
	}
	if !strings.Contains(got, "x = 1") {
		t.Errorf("missing initializer copy:\n%s", got)
	}
	if !strings.Contains(got, "param ") || !strings.Contains(got, "call print, 1") {
		t.Errorf("missing print call:\n%s", got)
	}
}

func TestWhileLoopGeneratesConditionAndBackEdge(t *testing.T) {
	b := cst.NewBuilder()
	prog := b.Program(
		b.VarDecl("i", b.TypeName("integer"), b.Int(0)),
		b.While(b.Bin("<", b.Var("i"), b.Int(10)),
			b.Block(b.Assign("i", b.Bin("+", b.Var("i"), b.Int(1)))),
		),
	)
	r := generate(t, prog)
	got := listing(r)
	if strings.Count(got, "goto") < 2 {
		t.Errorf("expected at least 2 gotos (condition fail + back-edge), got:\n%s", got)
	}
	if !strings.Contains(got, "if i < 10") {
		t.Errorf("expected fused relop condition:\n%s", got)
	}
}

func TestBreakJumpsPastLoopEnd(t *testing.T) {
	b := cst.NewBuilder()
	prog := b.Program(
		b.While(b.Bool(true), b.Block(b.Break())),
	)
	r := generate(t, prog)
	got := listing(r)
	if !strings.Contains(got, "goto Lwhile_end") {
		t.Errorf("expected break to target the while_end label:\n%s", got)
	}
}

func TestMethodCallUsesQualifiedStaticDispatch(t *testing.T) {
	b := cst.NewBuilder()
	base := b.Class("Animal", "", nil, []*ast.FunctionDecl{
		b.Func("speak", nil, b.TypeName("void"), b.Block()),
	})
	derived := b.Class("Dog", "Animal", nil, nil)
	prog := b.Program(
		base, derived,
		b.VarDecl("d", b.TypeName("Dog"), b.New("Dog")),
		b.ExprStmt(b.MethodCall(b.Var("d"), "speak")),
	)
	r := generate(t, prog)
	got := listing(r)
	if !strings.Contains(got, "@function Animal_speak") {
		t.Errorf("expected Animal_speak function body:\n%s", got)
	}
	if !strings.Contains(got, "call Animal_speak, 1") {
		t.Errorf("expected static dispatch to the declaring class:\n%s", got)
	}
}

func TestArrayLiteralLowersToNewArrayAndStores(t *testing.T) {
	b := cst.NewBuilder()
	prog := b.Program(
		b.VarDecl("xs", b.ArrayType(b.TypeName("integer"), 1), b.ArrayLit(b.Int(1), b.Int(2), b.Int(3))),
	)
	r := generate(t, prog)
	got := listing(r)
	if !strings.Contains(got, "new_array[3]") {
		t.Errorf("expected a new_array[3] instruction:\n%s", got)
	}
	if strings.Count(got, "] = ") != 3 {
		t.Errorf("expected 3 index stores:\n%s", got)
	}
}

func TestSwitchFallsThroughBetweenCases(t *testing.T) {
	b := cst.NewBuilder()
	prog := b.Program(
		b.VarDecl("n", b.TypeName("integer"), b.Int(1)),
		&ast.SwitchStmt{
			Expr: b.Var("n"),
			Cases: []ast.SwitchCase{
				{Label: b.Int(1), Body: []ast.Statement{b.ExprStmt(b.Call("print", b.Str("one")))}},
				{Label: b.Int(2), Body: []ast.Statement{b.ExprStmt(b.Call("print", b.Str("two")))}},
			},
		},
	)
	r := generate(t, prog)
	got := listing(r)
	if !strings.Contains(got, "if n == 1") || !strings.Contains(got, "if n == 2") {
		t.Errorf("expected a dispatch comparison per case:\n%s", got)
	}
	if strings.Count(got, "goto Lswitch_end") != 1 {
		t.Errorf("expected only the no-match jump to the switch end, no implicit break between cases:\n%s", got)
	}
}
