package tacgen

import (
	"testing"

	"github.com/compilscript/core/internal/ast"
	"github.com/compilscript/core/internal/cst"
	"github.com/gkampitakis/go-snaps/snaps"
)

// TestTACListingGoldenScenarios snapshot-tests the TAC listing for a
// handful of representative programs, the way the reference snapshot-
// tests its own interpreter output per fixture.
func TestTACListingGoldenScenarios(t *testing.T) {
	b := cst.NewBuilder()

	scenarios := map[string]*ast.Program{
		"arithmetic_with_print": b.Program(
			b.VarDecl("x", b.TypeName("integer"), b.Int(10)),
			b.VarDecl("y", b.TypeName("integer"), b.Bin("+", b.Var("x"), b.Int(5))),
			b.ExprStmt(b.Call("print", b.Var("y"))),
		),
		"short_circuit_and": b.Program(
			b.VarDecl("a", b.TypeName("boolean"), b.Bool(true)),
			b.VarDecl("b", b.TypeName("boolean"), b.Bool(false)),
			b.VarDecl("c", b.TypeName("boolean"), b.Bin("&&", b.Var("a"), b.Var("b"))),
		),
		"for_loop_sum": b.Program(
			b.VarDecl("i", b.TypeName("integer"), b.Int(0)),
			b.VarDecl("sum", b.TypeName("integer"), b.Int(0)),
			&ast.ForStmt{
				Init: b.Assign("i", b.Int(0)),
				Cond: b.Bin("<", b.Var("i"), b.Int(5)),
				Step: b.Assign("i", b.Bin("+", b.Var("i"), b.Int(1))),
				Body: b.Block(b.Assign("sum", b.Bin("+", b.Var("sum"), b.Var("i")))),
			},
		),
	}

	for name, prog := range scenarios {
		t.Run(name, func(t *testing.T) {
			r := generate(t, prog)
			snaps.MatchSnapshot(t, listing(r))
		})
	}
}
