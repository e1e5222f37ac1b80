package ast

import (
	"fmt"
	"strings"

	"github.com/compilscript/core/internal/token"
)

// LiteralKind tags the kind of value a Literal node holds.
type LiteralKind int

const (
	IntLiteral LiteralKind = iota
	FloatLiteral
	StringLiteral
	BoolLiteral
	NullLiteral
)

// Literal is a literal value (spec §3.1's inference rules apply here).
type Literal struct {
	baseExpr
	TokenPos token.Position
	Kind     LiteralKind
	IntVal   int64
	FloatVal float64
	StrVal   string
	BoolVal  bool
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.String() }
func (l *Literal) Pos() token.Position  { return l.TokenPos }
func (l *Literal) String() string {
	switch l.Kind {
	case IntLiteral:
		return fmt.Sprintf("%d", l.IntVal)
	case FloatLiteral:
		return fmt.Sprintf("%g", l.FloatVal)
	case StringLiteral:
		return fmt.Sprintf("%q", l.StrVal)
	case BoolLiteral:
		return fmt.Sprintf("%t", l.BoolVal)
	case NullLiteral:
		return "null"
	default:
		return "<literal>"
	}
}

// VariableRef is a reference to a named symbol.
type VariableRef struct {
	baseExpr
	TokenPos token.Position
	Name     string
}

func (v *VariableRef) expressionNode()      {}
func (v *VariableRef) TokenLiteral() string { return v.Name }
func (v *VariableRef) Pos() token.Position  { return v.TokenPos }
func (v *VariableRef) String() string       { return v.Name }

// ThisExpr references the implicit receiver inside a method body.
type ThisExpr struct {
	baseExpr
	TokenPos token.Position
}

func (t *ThisExpr) expressionNode()      {}
func (t *ThisExpr) TokenLiteral() string { return "this" }
func (t *ThisExpr) Pos() token.Position  { return t.TokenPos }
func (t *ThisExpr) String() string       { return "this" }

// BinaryOp is a binary expression (a op b).
type BinaryOp struct {
	baseExpr
	TokenPos token.Position
	Op       string
	Left     Expression
	Right    Expression
}

func (b *BinaryOp) expressionNode()      {}
func (b *BinaryOp) TokenLiteral() string { return b.Op }
func (b *BinaryOp) Pos() token.Position  { return b.TokenPos }
func (b *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op, b.Right.String())
}

// UnaryOp is a unary expression (op a).
type UnaryOp struct {
	baseExpr
	TokenPos token.Position
	Op       string
	Operand  Expression
}

func (u *UnaryOp) expressionNode()      {}
func (u *UnaryOp) TokenLiteral() string { return u.Op }
func (u *UnaryOp) Pos() token.Position  { return u.TokenPos }
func (u *UnaryOp) String() string       { return fmt.Sprintf("(%s%s)", u.Op, u.Operand.String()) }

// Ternary is `cond ? then : else`.
type Ternary struct {
	baseExpr
	TokenPos token.Position
	Cond     Expression
	Then     Expression
	Else     Expression
}

func (t *Ternary) expressionNode()      {}
func (t *Ternary) TokenLiteral() string { return "?" }
func (t *Ternary) Pos() token.Position  { return t.TokenPos }
func (t *Ternary) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", t.Cond.String(), t.Then.String(), t.Else.String())
}

// Call is a function, method-prefixed, or built-in call `callee(args)`.
type Call struct {
	baseExpr
	TokenPos token.Position
	Callee   string
	Args     []Expression
}

func (c *Call) expressionNode()      {}
func (c *Call) TokenLiteral() string { return c.Callee }
func (c *Call) Pos() token.Position  { return c.TokenPos }
func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee, strings.Join(parts, ", "))
}

// NewExpr is `new C(args)`.
type NewExpr struct {
	baseExpr
	TokenPos  token.Position
	ClassName string
	Args      []Expression
}

func (n *NewExpr) expressionNode()      {}
func (n *NewExpr) TokenLiteral() string { return "new" }
func (n *NewExpr) Pos() token.Position  { return n.TokenPos }
func (n *NewExpr) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("new %s(%s)", n.ClassName, strings.Join(parts, ", "))
}

// PropertyAccess is `object.member`.
type PropertyAccess struct {
	baseExpr
	TokenPos token.Position
	Object   Expression
	Member   string
}

func (p *PropertyAccess) expressionNode()      {}
func (p *PropertyAccess) TokenLiteral() string { return p.Member }
func (p *PropertyAccess) Pos() token.Position  { return p.TokenPos }
func (p *PropertyAccess) String() string {
	return fmt.Sprintf("%s.%s", p.Object.String(), p.Member)
}

// MethodCall is `object.method(args)`, kept distinct from PropertyAccess
// wrapped in Call so the TAC generator can resolve the static class of
// object directly instead of re-deriving it from a nested node.
type MethodCall struct {
	baseExpr
	TokenPos token.Position
	Object   Expression
	Method   string
	Args     []Expression
}

func (m *MethodCall) expressionNode()      {}
func (m *MethodCall) TokenLiteral() string { return m.Method }
func (m *MethodCall) Pos() token.Position  { return m.TokenPos }
func (m *MethodCall) String() string {
	parts := make([]string, len(m.Args))
	for i, a := range m.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s.%s(%s)", m.Object.String(), m.Method, strings.Join(parts, ", "))
}

// IndexAccess is `array[index]`.
type IndexAccess struct {
	baseExpr
	TokenPos token.Position
	Array    Expression
	Index    Expression
}

func (i *IndexAccess) expressionNode()      {}
func (i *IndexAccess) TokenLiteral() string { return "[]" }
func (i *IndexAccess) Pos() token.Position  { return i.TokenPos }
func (i *IndexAccess) String() string {
	return fmt.Sprintf("%s[%s]", i.Array.String(), i.Index.String())
}

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	baseExpr
	TokenPos token.Position
	Elements []Expression
}

func (a *ArrayLiteral) expressionNode()      {}
func (a *ArrayLiteral) TokenLiteral() string { return "[" }
func (a *ArrayLiteral) Pos() token.Position  { return a.TokenPos }
func (a *ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}
