package tacgen

import (
	"github.com/compilscript/core/internal/ast"
	"github.com/compilscript/core/internal/tac"
)

// genStatements lowers a statement sequence in order.
func (g *Generator) genStatements(stmts []ast.Statement) {
	for _, s := range stmts {
		g.genStatement(s)
	}
}

func (g *Generator) genStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VariableDecl:
		g.genVariableDecl(s.Name, s.Init)
	case *ast.ConstDecl:
		g.genVariableDecl(s.Name, s.Init)
	case *ast.Assignment:
		v := g.genExpr(s.Value)
		g.emit(tac.Copy(s.Target, v.name))
		g.free(v)
	case *ast.IndexAssignment:
		arr := g.genExpr(s.Array)
		idx := g.genExpr(s.Index)
		v := g.genExpr(s.Value)
		g.emit(tac.IndexStore(arr.name, idx.name, v.name))
		g.free(arr)
		g.free(idx)
		g.free(v)
	case *ast.PropertyAssignment:
		obj := g.genExpr(s.Object)
		v := g.genExpr(s.Value)
		g.emit(tac.FieldStore(obj.name, s.Member, v.name))
		g.free(obj)
		g.free(v)
	case *ast.ExpressionStmt:
		p := g.genExpr(s.Expr)
		g.free(p)
	case *ast.IfStmt:
		g.genIf(s)
	case *ast.WhileStmt:
		g.genWhile(s)
	case *ast.DoWhileStmt:
		g.genDoWhile(s)
	case *ast.ForStmt:
		g.genFor(s)
	case *ast.ForeachStmt:
		g.genForeach(s)
	case *ast.SwitchStmt:
		g.genSwitch(s)
	case *ast.BreakStmt:
		g.emit(tac.Goto(g.breakTargets[len(g.breakTargets)-1]))
	case *ast.ContinueStmt:
		g.emit(tac.Goto(g.continueTargets[len(g.continueTargets)-1]))
	case *ast.ReturnStmt:
		if s.Value == nil {
			g.emit(tac.Return(""))
			return
		}
		v := g.genExpr(s.Value)
		g.emit(tac.Return(v.name))
		g.free(v)
	case *ast.TryCatchStmt:
		g.genTryCatch(s)
	case *ast.FunctionDecl:
		// A nested function declaration reached here is a top-level
		// function already lowered separately by Generate; nothing to
		// emit inline.
	case *ast.ClassDecl:
		// Classes are lowered once up front by Generate, not inline.
	case *ast.Block:
		g.genStatements(s.Statements)
	}
}

func (g *Generator) genVariableDecl(name string, init ast.Expression) {
	if init == nil {
		return
	}
	v := g.genExpr(init)
	g.emit(tac.Copy(name, v.name))
	g.free(v)
}

func (g *Generator) genIf(s *ast.IfStmt) {
	lthen := g.fresh("if_then")
	lend := g.fresh("if_end")
	if s.Else == nil {
		g.genCondition(s.Cond, lthen, lend)
		g.emit(tac.Label(lthen))
		g.genStatements(s.Then.Statements)
		g.emit(tac.Label(lend))
		return
	}
	lelse := g.fresh("if_else")
	g.genCondition(s.Cond, lthen, lelse)
	g.emit(tac.Label(lthen))
	g.genStatements(s.Then.Statements)
	g.emit(tac.Goto(lend))
	g.emit(tac.Label(lelse))
	g.genStatement(s.Else)
	g.emit(tac.Label(lend))
}

func (g *Generator) genWhile(s *ast.WhileStmt) {
	lstart := g.fresh("while_start")
	lbody := g.fresh("while_body")
	lend := g.fresh("while_end")

	g.pushLoop(lstart, lend)
	g.emit(tac.Label(lstart))
	g.genCondition(s.Cond, lbody, lend)
	g.emit(tac.Label(lbody))
	g.genStatements(s.Body.Statements)
	g.emit(tac.Goto(lstart))
	g.emit(tac.Label(lend))
	g.popLoop()
}

func (g *Generator) genDoWhile(s *ast.DoWhileStmt) {
	lbody := g.fresh("do_body")
	lcond := g.fresh("do_cond")
	lend := g.fresh("do_end")

	g.pushLoop(lcond, lend)
	g.emit(tac.Label(lbody))
	g.genStatements(s.Body.Statements)
	g.emit(tac.Label(lcond))
	g.genCondition(s.Cond, lbody, lend)
	g.emit(tac.Label(lend))
	g.popLoop()
}

func (g *Generator) genFor(s *ast.ForStmt) {
	if s.Init != nil {
		g.genStatement(s.Init)
	}
	lstart := g.fresh("for_start")
	lbody := g.fresh("for_body")
	lstep := g.fresh("for_step")
	lend := g.fresh("for_end")

	g.pushLoop(lstep, lend)
	g.emit(tac.Label(lstart))
	if s.Cond != nil {
		g.genCondition(s.Cond, lbody, lend)
	} else {
		g.emit(tac.Goto(lbody))
	}
	g.emit(tac.Label(lbody))
	g.genStatements(s.Body.Statements)
	g.emit(tac.Label(lstep))
	if s.Step != nil {
		g.genStatement(s.Step)
	}
	g.emit(tac.Goto(lstart))
	g.emit(tac.Label(lend))
	g.popLoop()
}

// genForeach desugars `foreach (v in iterable) body` into an index-based
// while loop over the iterable's elements (spec §4.3's iteration sugar
// has no dedicated TAC form of its own).
func (g *Generator) genForeach(s *ast.ForeachStmt) {
	arr := g.genExpr(s.Iterable)
	lenT := g.newTemp()
	g.emit(tac.Param(arr.name))
	g.emit(tac.Call(lenT.name, "len", 1))

	idx := g.newTemp()
	g.emit(tac.Copy(idx.name, "0"))

	lstart := g.fresh("foreach_start")
	lbody := g.fresh("foreach_body")
	lstep := g.fresh("foreach_step")
	lend := g.fresh("foreach_end")

	g.pushLoop(lstep, lend)
	g.emit(tac.Label(lstart))
	g.emit(tac.IfRelop(idx.name, "<", lenT.name, lbody))
	g.emit(tac.Goto(lend))
	g.emit(tac.Label(lbody))
	g.emit(tac.IndexLoad(s.VarName, arr.name, idx.name))
	g.genStatements(s.Body.Statements)
	g.emit(tac.Label(lstep))
	g.emit(tac.Binary(idx.name, idx.name, "+", "1"))
	g.emit(tac.Goto(lstart))
	g.emit(tac.Label(lend))
	g.popLoop()

	g.free(idx)
	g.free(lenT)
	g.free(arr)
}

// genSwitch lowers to a fall-through chain: a dispatch comparison for
// each case jumps into that case's label, and case bodies are emitted
// back to back with no implicit break between them.
func (g *Generator) genSwitch(s *ast.SwitchStmt) {
	subject := g.genExpr(s.Expr)
	lend := g.fresh("switch_end")

	caseLabels := make([]string, len(s.Cases))
	for i := range s.Cases {
		caseLabels[i] = g.fresh("case")
	}
	ldefault := lend
	if s.Default != nil {
		ldefault = g.fresh("default")
	}

	for i, c := range s.Cases {
		val := g.genExpr(c.Label)
		g.emit(tac.IfRelop(subject.name, "==", val.name, caseLabels[i]))
		g.free(val)
	}
	g.emit(tac.Goto(ldefault))

	g.pushLoop(g.continueTargetOrEmpty(), lend)
	for i, c := range s.Cases {
		g.emit(tac.Label(caseLabels[i]))
		g.genStatements(c.Body)
	}
	if s.Default != nil {
		g.emit(tac.Label(ldefault))
		g.genStatements(s.Default)
	}
	g.popLoop()

	g.emit(tac.Label(lend))
	g.free(subject)
}

// continueTargetOrEmpty preserves an enclosing loop's continue target
// across a nested switch, since switch introduces a new break target
// but must not swallow `continue` meant for an outer loop.
func (g *Generator) continueTargetOrEmpty() string {
	if len(g.continueTargets) == 0 {
		return ""
	}
	return g.continueTargets[len(g.continueTargets)-1]
}

func (g *Generator) pushLoop(continueLabel, breakLabel string) {
	g.continueTargets = append(g.continueTargets, continueLabel)
	g.breakTargets = append(g.breakTargets, breakLabel)
}

func (g *Generator) popLoop() {
	g.continueTargets = g.continueTargets[:len(g.continueTargets)-1]
	g.breakTargets = g.breakTargets[:len(g.breakTargets)-1]
}

// genTryCatch approximates a guarded region: TAC has no dedicated
// exception-handling op, so the try body is emitted inline and the catch
// block follows as plain fall-through-avoided code, matching spec §4.3's
// note that try/catch lowers to "a labeled guarded region".
func (g *Generator) genTryCatch(s *ast.TryCatchStmt) {
	lcatch := g.fresh("catch")
	lend := g.fresh("try_end")

	g.genStatements(s.Try.Statements)
	g.emit(tac.Goto(lend))
	g.emit(tac.Label(lcatch))
	g.genStatements(s.CatchBlock.Statements)
	g.emit(tac.Label(lend))
}
