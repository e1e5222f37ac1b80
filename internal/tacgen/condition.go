package tacgen

import (
	"github.com/compilscript/core/internal/ast"
	"github.com/compilscript/core/internal/tac"
	"github.com/compilscript/core/internal/types"
)

// genCondition lowers expr as a branch condition, jumping to trueLabel
// when it holds and falseLabel otherwise. && and || are short-circuited
// by jump threading rather than materializing a boolean value (spec
// §4.4): `a && b` only evaluates b when a is true, `a || b` only
// evaluates b when a is false.
func (g *Generator) genCondition(expr ast.Expression, trueLabel, falseLabel string) {
	switch e := expr.(type) {
	case *ast.BinaryOp:
		switch e.Op {
		case "&&":
			mid := g.fresh("and_rhs")
			g.genCondition(e.Left, mid, falseLabel)
			g.emit(tac.Label(mid))
			g.genCondition(e.Right, trueLabel, falseLabel)
			return
		case "||":
			mid := g.fresh("or_rhs")
			g.genCondition(e.Left, trueLabel, mid)
			g.emit(tac.Label(mid))
			g.genCondition(e.Right, trueLabel, falseLabel)
			return
		}
		if types.IsRelational(e.Op) {
			left := g.genExpr(e.Left)
			right := g.genExpr(e.Right)
			g.emit(tac.IfRelop(left.name, e.Op, right.name, trueLabel))
			g.free(left)
			g.free(right)
			g.emit(tac.Goto(falseLabel))
			return
		}
	case *ast.UnaryOp:
		if e.Op == "!" {
			g.genCondition(e.Operand, falseLabel, trueLabel)
			return
		}
	}

	cond := g.genExpr(expr)
	g.emit(tac.If(cond.name, trueLabel))
	g.free(cond)
	g.emit(tac.Goto(falseLabel))
}
