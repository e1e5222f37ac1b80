package tacgen

import (
	"strconv"

	"github.com/compilscript/core/internal/ast"
	"github.com/compilscript/core/internal/tac"
	"github.com/compilscript/core/internal/types"
)

// genExpr lowers expr to a place holding its value, emitting whatever
// instructions are needed to compute it. Left-to-right evaluation order
// (spec §4.4) is preserved by always generating the left/earlier operand
// before the right/later one.
func (g *Generator) genExpr(expr ast.Expression) place {
	switch e := expr.(type) {
	case *ast.Literal:
		return place{name: literalText(e)}
	case *ast.VariableRef:
		return place{name: e.Name}
	case *ast.ThisExpr:
		return place{name: "this"}
	case *ast.BinaryOp:
		return g.genBinary(e)
	case *ast.UnaryOp:
		return g.genUnary(e)
	case *ast.Ternary:
		return g.genTernary(e)
	case *ast.Call:
		return g.genCall(e)
	case *ast.NewExpr:
		return g.genNew(e)
	case *ast.PropertyAccess:
		return g.genPropertyAccess(e)
	case *ast.MethodCall:
		return g.genMethodCall(e)
	case *ast.IndexAccess:
		return g.genIndexAccess(e)
	case *ast.ArrayLiteral:
		return g.genArrayLiteral(e)
	default:
		return place{name: "0"}
	}
}

func literalText(l *ast.Literal) string {
	switch l.Kind {
	case ast.IntLiteral:
		return strconv.FormatInt(l.IntVal, 10)
	case ast.FloatLiteral:
		return strconv.FormatFloat(l.FloatVal, 'g', -1, 64)
	case ast.StringLiteral:
		return strconv.Quote(l.StrVal)
	case ast.BoolLiteral:
		return strconv.FormatBool(l.BoolVal)
	case ast.NullLiteral:
		return "null"
	default:
		return "0"
	}
}

// genBinary lowers a binary expression. && and || are only
// jump-threaded when they appear in a condition context (genCondition);
// as a plain value they still need a materialized boolean, produced here
// by running the same threading into a two-branch temp assignment.
func (g *Generator) genBinary(b *ast.BinaryOp) place {
	if b.Op == "&&" || b.Op == "||" {
		return g.materializeBoolean(b)
	}
	left := g.genExpr(b.Left)
	right := g.genExpr(b.Right)
	result := g.newTemp()
	g.emit(tac.Binary(result.name, left.name, b.Op, right.name))
	g.free(left)
	g.free(right)
	return result
}

func (g *Generator) genUnary(u *ast.UnaryOp) place {
	operand := g.genExpr(u.Operand)
	result := g.newTemp()
	g.emit(tac.Unary(result.name, u.Op, operand.name))
	g.free(operand)
	return result
}

// genTernary evaluates the condition via jump threading, then
// materializes whichever branch was taken into a single result temp.
func (g *Generator) genTernary(t *ast.Ternary) place {
	lthen := g.fresh("tern_then")
	lelse := g.fresh("tern_else")
	lend := g.fresh("tern_end")
	result := g.newTemp()

	g.genCondition(t.Cond, lthen, lelse)
	g.emit(tac.Label(lthen))
	thenP := g.genExpr(t.Then)
	g.emit(tac.Copy(result.name, thenP.name))
	g.free(thenP)
	g.emit(tac.Goto(lend))
	g.emit(tac.Label(lelse))
	elseP := g.genExpr(t.Else)
	g.emit(tac.Copy(result.name, elseP.name))
	g.free(elseP)
	g.emit(tac.Label(lend))
	return result
}

// materializeBoolean runs the jump-threaded form of a &&/|| expression
// used as a value (not a condition), producing a temp set to true/false.
func (g *Generator) materializeBoolean(expr ast.Expression) place {
	ltrue := g.fresh("bool_true")
	lfalse := g.fresh("bool_false")
	lend := g.fresh("bool_end")
	result := g.newTemp()

	g.genCondition(expr, ltrue, lfalse)
	g.emit(tac.Label(ltrue))
	g.emit(tac.Copy(result.name, "true"))
	g.emit(tac.Goto(lend))
	g.emit(tac.Label(lfalse))
	g.emit(tac.Copy(result.name, "false"))
	g.emit(tac.Label(lend))
	return result
}

func (g *Generator) genCall(c *ast.Call) place {
	switch c.Callee {
	case "print":
		arg := g.genExpr(c.Args[0])
		g.emit(tac.Param(arg.name))
		g.free(arg)
		g.emit(tac.Call("", "print", 1))
		return place{name: "void"}
	case "len":
		arg := g.genExpr(c.Args[0])
		g.emit(tac.Param(arg.name))
		g.free(arg)
		result := g.newTemp()
		g.emit(tac.Call(result.name, "len", 1))
		return result
	}

	places := make([]place, len(c.Args))
	for i, arg := range c.Args {
		places[i] = g.genExpr(arg)
	}
	for _, p := range places {
		g.emit(tac.Param(p.name))
	}
	for _, p := range places {
		g.free(p)
	}
	result := g.newTemp()
	g.emit(tac.Call(result.name, c.Callee, len(c.Args)))
	return result
}

func (g *Generator) genNew(n *ast.NewExpr) place {
	obj := g.newTemp()
	g.emit(tac.New(obj.name, n.ClassName))

	ct := g.classes[n.ClassName]
	hasCtor := false
	if ct != nil && ct.Meta != nil {
		_, hasCtor = ct.Meta.FindMethod("constructor")
	}
	if !hasCtor {
		return obj
	}

	argPlaces := make([]place, len(n.Args))
	for i, arg := range n.Args {
		argPlaces[i] = g.genExpr(arg)
	}
	g.emit(tac.Param(obj.name))
	for _, p := range argPlaces {
		g.emit(tac.Param(p.name))
	}
	for _, p := range argPlaces {
		g.free(p)
	}
	g.emit(tac.Call("", declaringClass(ct, "constructor")+"_constructor", len(n.Args)+1))
	return obj
}

func (g *Generator) genPropertyAccess(p *ast.PropertyAccess) place {
	obj := g.genExpr(p.Object)
	result := g.newTemp()
	g.emit(tac.FieldLoad(result.name, obj.name, p.Member))
	g.free(obj)
	return result
}

func (g *Generator) genMethodCall(m *ast.MethodCall) place {
	obj := g.genExpr(m.Object)
	ct, _ := m.Object.Type().(*types.ClassType)

	argPlaces := make([]place, len(m.Args))
	for i, arg := range m.Args {
		argPlaces[i] = g.genExpr(arg)
	}
	g.emit(tac.Param(obj.name))
	for _, p := range argPlaces {
		g.emit(tac.Param(p.name))
	}
	g.free(obj)
	for _, p := range argPlaces {
		g.free(p)
	}

	qualified := m.Method
	if ct != nil {
		qualified = declaringClass(ct, m.Method) + "_" + m.Method
	}
	result := g.newTemp()
	g.emit(tac.Call(result.name, qualified, len(m.Args)+1))
	return result
}

func (g *Generator) genIndexAccess(i *ast.IndexAccess) place {
	arr := g.genExpr(i.Array)
	idx := g.genExpr(i.Index)
	result := g.newTemp()
	g.emit(tac.IndexLoad(result.name, arr.name, idx.name))
	g.free(arr)
	g.free(idx)
	return result
}

func (g *Generator) genArrayLiteral(a *ast.ArrayLiteral) place {
	result := g.newTemp()
	g.emit(tac.NewArray(result.name, strconv.Itoa(len(a.Elements))))
	for i, elem := range a.Elements {
		p := g.genExpr(elem)
		g.emit(tac.IndexStore(result.name, strconv.Itoa(i), p.name))
		g.free(p)
	}
	return result
}
