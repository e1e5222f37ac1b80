package semantic

import (
	"strings"
	"testing"

	"github.com/compilscript/core/internal/ast"
	"github.com/compilscript/core/internal/cst"
)

func hasMessageContaining(t *testing.T, msgs []string, substr string) {
	t.Helper()
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return
		}
	}
	t.Errorf("expected a diagnostic containing %q, got %v", substr, msgs)
}

func messages(result *Result) []string {
	out := make([]string, len(result.Diagnostics))
	for i, d := range result.Diagnostics {
		out[i] = d.Message
	}
	return out
}

// S1: simple arithmetic and print compiles cleanly.
func TestSimpleArithmeticAndPrint(t *testing.T) {
	b := cst.NewBuilder()
	prog := b.Program(
		b.VarDecl("x", b.TypeName("integer"), b.Bin("+", b.Int(1), b.Int(2))),
		b.ExprStmt(b.Call("print", b.Var("x"))),
	)
	result := NewAnalyzer().Analyze(prog)
	if !result.OK {
		t.Fatalf("expected clean analysis, got diagnostics: %v", messages(result))
	}
}

// S2: short-circuit operands must both be boolean.
func TestLogicalOperatorsRequireBoolean(t *testing.T) {
	b := cst.NewBuilder()
	prog := b.Program(
		b.ExprStmt(b.Bin("&&", b.Bool(true), b.Int(1))),
	)
	result := NewAnalyzer().Analyze(prog)
	if result.OK {
		t.Fatal("expected a diagnostic for non-boolean && operand")
	}
	hasMessageContaining(t, messages(result), "not defined")
}

// S3: inheritance and method calls through a subclass instance.
func TestInheritanceAndMethodCall(t *testing.T) {
	b := cst.NewBuilder()
	animal := b.Class("Animal", "", nil, []*ast.FunctionDecl{
		b.Func("speak", nil, b.TypeName("string"), b.Block(b.Return(b.Str("...")))),
	})
	dog := b.Class("Dog", "Animal", nil, nil)
	prog := b.Program(
		animal, dog,
		b.VarDecl("d", nil, b.New("Dog")),
		b.ExprStmt(b.MethodCall(b.Var("d"), "speak")),
	)
	result := NewAnalyzer().Analyze(prog)
	if !result.OK {
		t.Fatalf("expected clean analysis, got diagnostics: %v", messages(result))
	}
}

// A subclass method sharing a name with an ancestor method but changing
// its signature is an incompatible override.
func TestOverrideIncompatibleSignatureIsRejected(t *testing.T) {
	b := cst.NewBuilder()
	animal := b.Class("Animal", "", nil, []*ast.FunctionDecl{
		b.Func("speak", nil, b.TypeName("string"), b.Block(b.Return(b.Str("...")))),
	})
	dog := b.Class("Dog", "Animal", nil, []*ast.FunctionDecl{
		b.Func("speak", []ast.Param{{Name: "volume", Declared: b.TypeName("integer")}}, b.TypeName("string"), b.Block(b.Return(b.Str("woof")))),
	})
	prog := b.Program(animal, dog)
	result := NewAnalyzer().Analyze(prog)
	if result.OK {
		t.Fatal("expected a diagnostic for an override that changes arity")
	}
	hasMessageContaining(t, messages(result), "incompatible signature")
}

// An override that keeps the same arity, parameter types, and return
// type is accepted.
func TestOverrideCompatibleSignatureIsAccepted(t *testing.T) {
	b := cst.NewBuilder()
	animal := b.Class("Animal", "", nil, []*ast.FunctionDecl{
		b.Func("speak", nil, b.TypeName("string"), b.Block(b.Return(b.Str("...")))),
	})
	dog := b.Class("Dog", "Animal", nil, []*ast.FunctionDecl{
		b.Func("speak", nil, b.TypeName("string"), b.Block(b.Return(b.Str("woof")))),
	})
	prog := b.Program(animal, dog)
	result := NewAnalyzer().Analyze(prog)
	if !result.OK {
		t.Fatalf("expected a compatible override to be accepted, got: %v", messages(result))
	}
}

// S4: a user class named after a built-in clashes.
func TestBuiltinClash(t *testing.T) {
	b := cst.NewBuilder()
	prog := b.Program(b.Class("print", "", nil, nil))
	result := NewAnalyzer().Analyze(prog)
	if result.OK {
		t.Fatal("expected a diagnostic for a class clashing with a built-in")
	}
	hasMessageContaining(t, messages(result), "clashes")
}

// S5: break outside any loop or switch is illegal.
func TestBreakOutsideLoop(t *testing.T) {
	b := cst.NewBuilder()
	prog := b.Program(b.Break())
	result := NewAnalyzer().Analyze(prog)
	if result.OK {
		t.Fatal("expected a diagnostic for break outside a loop")
	}
	hasMessageContaining(t, messages(result), "break")
}

// S6: an array literal whose elements share no common type is rejected.
func TestHeterogeneousArrayLiteral(t *testing.T) {
	b := cst.NewBuilder()
	prog := b.Program(
		b.VarDecl("arr", nil, b.ArrayLit(b.Int(1), b.Str("x"))),
	)
	result := NewAnalyzer().Analyze(prog)
	if result.OK {
		t.Fatal("expected a diagnostic for a heterogeneous array literal")
	}
	hasMessageContaining(t, messages(result), "heterogeneous")
}

func TestConstReassignmentIsRejected(t *testing.T) {
	b := cst.NewBuilder()
	prog := b.Program(
		b.ConstDecl("pi", nil, b.Float(3.14)),
		b.Assign("pi", b.Float(3.0)),
	)
	result := NewAnalyzer().Analyze(prog)
	if result.OK {
		t.Fatal("expected a diagnostic for reassigning a constant")
	}
	hasMessageContaining(t, messages(result), "non-mutable")
}

// A const without an initializer is a diagnostic, not a panic.
func TestConstWithoutInitializerIsRejected(t *testing.T) {
	b := cst.NewBuilder()
	prog := b.Program(
		b.ConstDecl("pi", b.TypeName("float"), nil),
	)
	result := NewAnalyzer().Analyze(prog)
	if result.OK {
		t.Fatal("expected a diagnostic for a constant with no initializer")
	}
	hasMessageContaining(t, messages(result), "requires an initializer")
}

func TestIntegerWidensToFloatOnAssignment(t *testing.T) {
	b := cst.NewBuilder()
	prog := b.Program(
		b.VarDecl("f", b.TypeName("float"), b.Int(1)),
	)
	result := NewAnalyzer().Analyze(prog)
	if !result.OK {
		t.Fatalf("expected integer-to-float widening to be allowed, got: %v", messages(result))
	}
}

func TestReturnTypeMismatchIsRejected(t *testing.T) {
	b := cst.NewBuilder()
	fn := b.Func("f", nil, b.TypeName("integer"), b.Block(b.Return(b.Str("nope"))))
	prog := b.Program(fn)
	result := NewAnalyzer().Analyze(prog)
	if result.OK {
		t.Fatal("expected a diagnostic for a return type mismatch")
	}
	hasMessageContaining(t, messages(result), "cannot return")
}

func TestUndeclaredNameIsRejected(t *testing.T) {
	b := cst.NewBuilder()
	prog := b.Program(b.ExprStmt(b.Var("missing")))
	result := NewAnalyzer().Analyze(prog)
	if result.OK {
		t.Fatal("expected a diagnostic for an undeclared name")
	}
	hasMessageContaining(t, messages(result), "undeclared name")
}

func TestDeadCodeAfterReturnWarns(t *testing.T) {
	b := cst.NewBuilder()
	fn := b.Func("f", nil, nil, b.Block(
		b.Return(nil),
		b.ExprStmt(b.Call("print", b.Str("unreachable"))),
	))
	prog := b.Program(fn)
	result := NewAnalyzer().Analyze(prog)
	if !result.OK {
		t.Fatalf("dead code should warn, not error: %v", messages(result))
	}
	hasMessageContaining(t, messages(result), "unreachable")
}

func TestInheritanceCycleIsRejected(t *testing.T) {
	b := cst.NewBuilder()
	prog := b.Program(
		b.Class("A", "B", nil, nil),
		b.Class("B", "A", nil, nil),
	)
	result := NewAnalyzer().Analyze(prog)
	if result.OK {
		t.Fatal("expected a diagnostic for an inheritance cycle")
	}
	hasMessageContaining(t, messages(result), "cycle")
}

func TestForwardFunctionCallResolves(t *testing.T) {
	b := cst.NewBuilder()
	caller := b.Func("caller", nil, b.TypeName("integer"), b.Block(b.Return(b.Call("callee"))))
	callee := b.Func("callee", nil, b.TypeName("integer"), b.Block(b.Return(b.Int(1))))
	prog := b.Program(caller, callee)
	result := NewAnalyzer().Analyze(prog)
	if !result.OK {
		t.Fatalf("expected forward call to resolve, got: %v", messages(result))
	}
}
