package ast

import (
	"fmt"
	"strings"

	"github.com/compilscript/core/internal/token"
)

// TypeExpression is the surface syntax for a declared type: either a
// simple name (primitive or class) or an array of some element type with
// a rank. The semantic analyzer resolves these to internal/types.Type.
type TypeExpression struct {
	Name string // "" when Element is set
	Element *TypeExpression
	Rank    int
}

func (t *TypeExpression) String() string {
	if t.Element != nil {
		return fmt.Sprintf("%s%s", t.Element.String(), strings.Repeat("[]", t.Rank))
	}
	return t.Name
}

// VariableDecl is `var name: Type = init;` (Type and Init may each be nil,
// but not both — spec §4.3).
type VariableDecl struct {
	TokenPos token.Position
	Name     string
	Declared *TypeExpression
	Init     Expression
}

func (v *VariableDecl) statementNode()       {}
func (v *VariableDecl) TokenLiteral() string { return "var" }
func (v *VariableDecl) Pos() token.Position  { return v.TokenPos }
func (v *VariableDecl) String() string {
	s := "var " + v.Name
	if v.Declared != nil {
		s += ": " + v.Declared.String()
	}
	if v.Init != nil {
		s += " = " + v.Init.String()
	}
	return s + ";"
}

// ConstDecl is `const name: Type = init;` (Init is required).
type ConstDecl struct {
	TokenPos token.Position
	Name     string
	Declared *TypeExpression
	Init     Expression
}

func (c *ConstDecl) statementNode()       {}
func (c *ConstDecl) TokenLiteral() string { return "const" }
func (c *ConstDecl) Pos() token.Position  { return c.TokenPos }
func (c *ConstDecl) String() string {
	s := "const " + c.Name
	if c.Declared != nil {
		s += ": " + c.Declared.String()
	}
	return s + " = " + c.Init.String() + ";"
}

// Assignment is `target = value;` where target is a variable name.
type Assignment struct {
	TokenPos token.Position
	Target   string
	Value    Expression
}

func (a *Assignment) statementNode()       {}
func (a *Assignment) TokenLiteral() string { return "=" }
func (a *Assignment) Pos() token.Position  { return a.TokenPos }
func (a *Assignment) String() string {
	return fmt.Sprintf("%s = %s;", a.Target, a.Value.String())
}

// IndexAssignment is `array[index] = value;`.
type IndexAssignment struct {
	TokenPos token.Position
	Array    Expression
	Index    Expression
	Value    Expression
}

func (a *IndexAssignment) statementNode()       {}
func (a *IndexAssignment) TokenLiteral() string { return "=" }
func (a *IndexAssignment) Pos() token.Position  { return a.TokenPos }
func (a *IndexAssignment) String() string {
	return fmt.Sprintf("%s[%s] = %s;", a.Array.String(), a.Index.String(), a.Value.String())
}

// PropertyAssignment is `object.field = value;`.
type PropertyAssignment struct {
	TokenPos token.Position
	Object   Expression
	Member   string
	Value    Expression
}

func (p *PropertyAssignment) statementNode()       {}
func (p *PropertyAssignment) TokenLiteral() string { return "=" }
func (p *PropertyAssignment) Pos() token.Position  { return p.TokenPos }
func (p *PropertyAssignment) String() string {
	return fmt.Sprintf("%s.%s = %s;", p.Object.String(), p.Member, p.Value.String())
}

// ExpressionStmt wraps a bare expression used as a statement (e.g. a
// standalone call).
type ExpressionStmt struct {
	TokenPos token.Position
	Expr     Expression
}

func (e *ExpressionStmt) statementNode()       {}
func (e *ExpressionStmt) TokenLiteral() string { return e.Expr.TokenLiteral() }
func (e *ExpressionStmt) Pos() token.Position  { return e.TokenPos }
func (e *ExpressionStmt) String() string       { return e.Expr.String() + ";" }

// IfStmt is `if (cond) then [else elseBranch]`.
type IfStmt struct {
	TokenPos token.Position
	Cond     Expression
	Then     *Block
	Else     Statement // *Block or another *IfStmt (else-if chaining), nil if absent
}

func (i *IfStmt) statementNode()       {}
func (i *IfStmt) TokenLiteral() string { return "if" }
func (i *IfStmt) Pos() token.Position  { return i.TokenPos }
func (i *IfStmt) String() string {
	s := fmt.Sprintf("if (%s) %s", i.Cond.String(), i.Then.String())
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	TokenPos token.Position
	Cond     Expression
	Body     *Block
}

func (w *WhileStmt) statementNode()       {}
func (w *WhileStmt) TokenLiteral() string { return "while" }
func (w *WhileStmt) Pos() token.Position  { return w.TokenPos }
func (w *WhileStmt) String() string {
	return fmt.Sprintf("while (%s) %s", w.Cond.String(), w.Body.String())
}

// DoWhileStmt is `do body while (cond);`.
type DoWhileStmt struct {
	TokenPos token.Position
	Body     *Block
	Cond     Expression
}

func (d *DoWhileStmt) statementNode()       {}
func (d *DoWhileStmt) TokenLiteral() string { return "do" }
func (d *DoWhileStmt) Pos() token.Position  { return d.TokenPos }
func (d *DoWhileStmt) String() string {
	return fmt.Sprintf("do %s while (%s);", d.Body.String(), d.Cond.String())
}

// ForStmt is `for (init; cond; step) body`. Init and Step may be nil.
type ForStmt struct {
	TokenPos token.Position
	Init     Statement
	Cond     Expression
	Step     Statement
	Body     *Block
}

func (f *ForStmt) statementNode()       {}
func (f *ForStmt) TokenLiteral() string { return "for" }
func (f *ForStmt) Pos() token.Position  { return f.TokenPos }
func (f *ForStmt) String() string {
	initS, stepS := "", ""
	if f.Init != nil {
		initS = f.Init.String()
	}
	if f.Step != nil {
		stepS = f.Step.String()
	}
	return fmt.Sprintf("for (%s %s; %s) %s", initS, f.Cond.String(), stepS, f.Body.String())
}

// ForeachStmt is `foreach (v in iterable) body`.
type ForeachStmt struct {
	TokenPos token.Position
	VarName  string
	Iterable Expression
	Body     *Block
}

func (f *ForeachStmt) statementNode()       {}
func (f *ForeachStmt) TokenLiteral() string { return "foreach" }
func (f *ForeachStmt) Pos() token.Position  { return f.TokenPos }
func (f *ForeachStmt) String() string {
	return fmt.Sprintf("foreach (%s in %s) %s", f.VarName, f.Iterable.String(), f.Body.String())
}

// SwitchCase is one `case label:` arm of a SwitchStmt.
type SwitchCase struct {
	Label Expression
	Body  []Statement
}

// SwitchStmt is `switch (expr) { case ...: ...; default: ...; }`.
type SwitchStmt struct {
	TokenPos token.Position
	Expr     Expression
	Cases    []SwitchCase
	Default  []Statement // nil when there is no default arm
}

func (s *SwitchStmt) statementNode()       {}
func (s *SwitchStmt) TokenLiteral() string { return "switch" }
func (s *SwitchStmt) Pos() token.Position  { return s.TokenPos }
func (s *SwitchStmt) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "switch (%s) {\n", s.Expr.String())
	for _, c := range s.Cases {
		fmt.Fprintf(&sb, "  case %s:\n", c.Label.String())
	}
	if s.Default != nil {
		sb.WriteString("  default:\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// BreakStmt is `break;`.
type BreakStmt struct{ TokenPos token.Position }

func (b *BreakStmt) statementNode()       {}
func (b *BreakStmt) TokenLiteral() string { return "break" }
func (b *BreakStmt) Pos() token.Position  { return b.TokenPos }
func (b *BreakStmt) String() string       { return "break;" }

// ContinueStmt is `continue;`.
type ContinueStmt struct{ TokenPos token.Position }

func (c *ContinueStmt) statementNode()       {}
func (c *ContinueStmt) TokenLiteral() string { return "continue" }
func (c *ContinueStmt) Pos() token.Position  { return c.TokenPos }
func (c *ContinueStmt) String() string       { return "continue;" }

// ReturnStmt is `return [expr];`.
type ReturnStmt struct {
	TokenPos token.Position
	Value    Expression // nil for a bare return
}

func (r *ReturnStmt) statementNode()       {}
func (r *ReturnStmt) TokenLiteral() string { return "return" }
func (r *ReturnStmt) Pos() token.Position  { return r.TokenPos }
func (r *ReturnStmt) String() string {
	if r.Value != nil {
		return "return " + r.Value.String() + ";"
	}
	return "return;"
}

// TryCatchStmt is `try tryBlock catch (name) catchBlock`.
type TryCatchStmt struct {
	TokenPos   token.Position
	Try        *Block
	CatchName  string
	CatchBlock *Block
}

func (t *TryCatchStmt) statementNode()       {}
func (t *TryCatchStmt) TokenLiteral() string { return "try" }
func (t *TryCatchStmt) Pos() token.Position  { return t.TokenPos }
func (t *TryCatchStmt) String() string {
	return fmt.Sprintf("try %s catch (%s) %s", t.Try.String(), t.CatchName, t.CatchBlock.String())
}

// Param is one formal parameter of a FunctionDecl.
type Param struct {
	Name     string
	Declared *TypeExpression
}

// FunctionDecl is a top-level function or a class method body, depending
// on whether it is reached through Program.Statements or ClassDecl.Methods.
type FunctionDecl struct {
	TokenPos   token.Position
	Name       string
	Params     []Param
	ReturnType *TypeExpression // nil means VOID
	Body       *Block
}

func (f *FunctionDecl) statementNode()       {}
func (f *FunctionDecl) TokenLiteral() string { return "function" }
func (f *FunctionDecl) Pos() token.Position  { return f.TokenPos }
func (f *FunctionDecl) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = fmt.Sprintf("%s: %s", p.Name, p.Declared.String())
	}
	ret := "void"
	if f.ReturnType != nil {
		ret = f.ReturnType.String()
	}
	return fmt.Sprintf("function %s(%s): %s %s", f.Name, strings.Join(parts, ", "), ret, f.Body.String())
}

// FieldDecl is one field of a ClassDecl.
type FieldDecl struct {
	Name     string
	Declared *TypeExpression
}

// ClassDecl is a class declaration, optionally with a superclass.
type ClassDecl struct {
	TokenPos   token.Position
	Name       string
	SuperName  string // "" for no superclass
	Fields     []FieldDecl
	Methods    []*FunctionDecl // "constructor" is a method named "constructor"
}

func (c *ClassDecl) statementNode()       {}
func (c *ClassDecl) TokenLiteral() string { return "class" }
func (c *ClassDecl) Pos() token.Position  { return c.TokenPos }
func (c *ClassDecl) String() string {
	header := "class " + c.Name
	if c.SuperName != "" {
		header += " : " + c.SuperName
	}
	return header + " { ... }"
}
