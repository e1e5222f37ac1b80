// Package dot renders a CompilScript AST as Graphviz DOT source, the
// optional `returnAstDot` diagnostic output of spec §6.4. Node labels
// favor a structural summary (kind plus a short identifying detail)
// over a full source dump so graphs of non-trivial programs stay
// readable.
package dot

import (
	"fmt"
	"strings"

	"github.com/compilscript/core/internal/ast"
)

// Render returns a `digraph AST { ... }` document for program.
func Render(program *ast.Program) string {
	r := &renderer{}
	r.writeln("digraph AST {")
	r.writeln(`  node [shape=box, fontname="monospace"];`)
	root := r.nextID()
	r.writeln(fmt.Sprintf(`  %s [label="Program"];`, root))
	for _, stmt := range program.Statements {
		child := r.stmt(stmt)
		r.edge(root, child)
	}
	r.writeln("}")
	return r.sb.String()
}

type renderer struct {
	sb      strings.Builder
	counter int
}

func (r *renderer) nextID() string {
	id := fmt.Sprintf("n%d", r.counter)
	r.counter++
	return id
}

func (r *renderer) writeln(s string) {
	r.sb.WriteString(s)
	r.sb.WriteString("\n")
}

func (r *renderer) node(label string) string {
	id := r.nextID()
	r.writeln(fmt.Sprintf("  %s [label=%q];", id, label))
	return id
}

func (r *renderer) edge(from, to string) {
	r.writeln(fmt.Sprintf("  %s -> %s;", from, to))
}

func (r *renderer) stmt(s ast.Statement) string {
	switch n := s.(type) {
	case *ast.VariableDecl:
		id := r.node("var " + n.Name)
		if n.Init != nil {
			r.edge(id, r.expr(n.Init))
		}
		return id
	case *ast.ConstDecl:
		id := r.node("const " + n.Name)
		r.edge(id, r.expr(n.Init))
		return id
	case *ast.Assignment:
		id := r.node(n.Target + " =")
		r.edge(id, r.expr(n.Value))
		return id
	case *ast.IndexAssignment:
		id := r.node("[] =")
		r.edge(id, r.expr(n.Array))
		r.edge(id, r.expr(n.Index))
		r.edge(id, r.expr(n.Value))
		return id
	case *ast.PropertyAssignment:
		id := r.node("." + n.Member + " =")
		r.edge(id, r.expr(n.Object))
		r.edge(id, r.expr(n.Value))
		return id
	case *ast.ExpressionStmt:
		id := r.node("expr")
		r.edge(id, r.expr(n.Expr))
		return id
	case *ast.IfStmt:
		id := r.node("if")
		r.edge(id, r.expr(n.Cond))
		r.edge(id, r.block(n.Then, "then"))
		if n.Else != nil {
			r.edge(id, r.stmt(n.Else))
		}
		return id
	case *ast.WhileStmt:
		id := r.node("while")
		r.edge(id, r.expr(n.Cond))
		r.edge(id, r.block(n.Body, "body"))
		return id
	case *ast.DoWhileStmt:
		id := r.node("do-while")
		r.edge(id, r.block(n.Body, "body"))
		r.edge(id, r.expr(n.Cond))
		return id
	case *ast.ForStmt:
		id := r.node("for")
		if n.Init != nil {
			r.edge(id, r.stmt(n.Init))
		}
		if n.Cond != nil {
			r.edge(id, r.expr(n.Cond))
		}
		if n.Step != nil {
			r.edge(id, r.stmt(n.Step))
		}
		r.edge(id, r.block(n.Body, "body"))
		return id
	case *ast.ForeachStmt:
		id := r.node("foreach " + n.VarName)
		r.edge(id, r.expr(n.Iterable))
		r.edge(id, r.block(n.Body, "body"))
		return id
	case *ast.SwitchStmt:
		id := r.node("switch")
		r.edge(id, r.expr(n.Expr))
		for i, c := range n.Cases {
			caseID := r.node(fmt.Sprintf("case %d", i))
			r.edge(id, caseID)
			r.edge(caseID, r.expr(c.Label))
			for _, cs := range c.Body {
				r.edge(caseID, r.stmt(cs))
			}
		}
		if n.Default != nil {
			defID := r.node("default")
			r.edge(id, defID)
			for _, cs := range n.Default {
				r.edge(defID, r.stmt(cs))
			}
		}
		return id
	case *ast.BreakStmt:
		return r.node("break")
	case *ast.ContinueStmt:
		return r.node("continue")
	case *ast.ReturnStmt:
		id := r.node("return")
		if n.Value != nil {
			r.edge(id, r.expr(n.Value))
		}
		return id
	case *ast.TryCatchStmt:
		id := r.node("try/catch " + n.CatchName)
		r.edge(id, r.block(n.Try, "try"))
		r.edge(id, r.block(n.CatchBlock, "catch"))
		return id
	case *ast.FunctionDecl:
		id := r.node("function " + n.Name)
		r.edge(id, r.block(n.Body, "body"))
		return id
	case *ast.ClassDecl:
		label := "class " + n.Name
		if n.SuperName != "" {
			label += " : " + n.SuperName
		}
		id := r.node(label)
		for _, f := range n.Fields {
			r.edge(id, r.node("field "+f.Name))
		}
		for _, m := range n.Methods {
			r.edge(id, r.stmt(m))
		}
		return id
	case *ast.Block:
		return r.block(n, "block")
	default:
		return r.node("?")
	}
}

func (r *renderer) block(b *ast.Block, label string) string {
	id := r.node(label)
	for _, s := range b.Statements {
		r.edge(id, r.stmt(s))
	}
	return id
}

func (r *renderer) expr(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.Literal:
		return r.node(n.String())
	case *ast.VariableRef:
		return r.node(n.Name)
	case *ast.ThisExpr:
		return r.node("this")
	case *ast.BinaryOp:
		id := r.node(n.Op)
		r.edge(id, r.expr(n.Left))
		r.edge(id, r.expr(n.Right))
		return id
	case *ast.UnaryOp:
		id := r.node(n.Op)
		r.edge(id, r.expr(n.Operand))
		return id
	case *ast.Ternary:
		id := r.node("?:")
		r.edge(id, r.expr(n.Cond))
		r.edge(id, r.expr(n.Then))
		r.edge(id, r.expr(n.Else))
		return id
	case *ast.Call:
		id := r.node(n.Callee + "()")
		for _, a := range n.Args {
			r.edge(id, r.expr(a))
		}
		return id
	case *ast.NewExpr:
		id := r.node("new " + n.ClassName)
		for _, a := range n.Args {
			r.edge(id, r.expr(a))
		}
		return id
	case *ast.PropertyAccess:
		id := r.node("." + n.Member)
		r.edge(id, r.expr(n.Object))
		return id
	case *ast.MethodCall:
		id := r.node("." + n.Method + "()")
		r.edge(id, r.expr(n.Object))
		for _, a := range n.Args {
			r.edge(id, r.expr(a))
		}
		return id
	case *ast.IndexAccess:
		id := r.node("[]")
		r.edge(id, r.expr(n.Array))
		r.edge(id, r.expr(n.Index))
		return id
	case *ast.ArrayLiteral:
		id := r.node("array")
		for _, el := range n.Elements {
			r.edge(id, r.expr(el))
		}
		return id
	default:
		return r.node("?")
	}
}
