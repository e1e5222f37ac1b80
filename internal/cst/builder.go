package cst

import (
	"github.com/compilscript/core/internal/ast"
	"github.com/compilscript/core/internal/token"
)

// Builder constructs internal/ast fixture trees tersely. It exists only
// for tests and examples — a real parser builds internal/ast.Program
// nodes directly from its own concrete syntax tree, the way the
// reference compiler's parser builds internal/ast nodes itself rather
// than routing through any generic intermediate tree.
type Builder struct {
	pos token.Position
}

// NewBuilder returns a Builder stamping every node with the given
// position, which is sufficient for unit tests that don't assert on
// diagnostic spans.
func NewBuilder() *Builder {
	return &Builder{pos: token.Position{Line: 1, Column: 0}}
}

func (b *Builder) At(line, col int) *Builder {
	return &Builder{pos: token.Position{Line: line, Column: col}}
}

func (b *Builder) Int(v int64) *ast.Literal {
	return &ast.Literal{TokenPos: b.pos, Kind: ast.IntLiteral, IntVal: v}
}

func (b *Builder) Float(v float64) *ast.Literal {
	return &ast.Literal{TokenPos: b.pos, Kind: ast.FloatLiteral, FloatVal: v}
}

func (b *Builder) Str(v string) *ast.Literal {
	return &ast.Literal{TokenPos: b.pos, Kind: ast.StringLiteral, StrVal: v}
}

func (b *Builder) Bool(v bool) *ast.Literal {
	return &ast.Literal{TokenPos: b.pos, Kind: ast.BoolLiteral, BoolVal: v}
}

func (b *Builder) Null() *ast.Literal {
	return &ast.Literal{TokenPos: b.pos, Kind: ast.NullLiteral}
}

func (b *Builder) Var(name string) *ast.VariableRef {
	return &ast.VariableRef{TokenPos: b.pos, Name: name}
}

func (b *Builder) This() *ast.ThisExpr {
	return &ast.ThisExpr{TokenPos: b.pos}
}

func (b *Builder) Bin(op string, left, right ast.Expression) *ast.BinaryOp {
	return &ast.BinaryOp{TokenPos: b.pos, Op: op, Left: left, Right: right}
}

func (b *Builder) Un(op string, operand ast.Expression) *ast.UnaryOp {
	return &ast.UnaryOp{TokenPos: b.pos, Op: op, Operand: operand}
}

func (b *Builder) Call(callee string, args ...ast.Expression) *ast.Call {
	return &ast.Call{TokenPos: b.pos, Callee: callee, Args: args}
}

func (b *Builder) New(class string, args ...ast.Expression) *ast.NewExpr {
	return &ast.NewExpr{TokenPos: b.pos, ClassName: class, Args: args}
}

func (b *Builder) Prop(obj ast.Expression, member string) *ast.PropertyAccess {
	return &ast.PropertyAccess{TokenPos: b.pos, Object: obj, Member: member}
}

func (b *Builder) MethodCall(obj ast.Expression, method string, args ...ast.Expression) *ast.MethodCall {
	return &ast.MethodCall{TokenPos: b.pos, Object: obj, Method: method, Args: args}
}

func (b *Builder) Index(arr, idx ast.Expression) *ast.IndexAccess {
	return &ast.IndexAccess{TokenPos: b.pos, Array: arr, Index: idx}
}

func (b *Builder) ArrayLit(elems ...ast.Expression) *ast.ArrayLiteral {
	return &ast.ArrayLiteral{TokenPos: b.pos, Elements: elems}
}

func (b *Builder) VarDecl(name string, declared *ast.TypeExpression, init ast.Expression) *ast.VariableDecl {
	return &ast.VariableDecl{TokenPos: b.pos, Name: name, Declared: declared, Init: init}
}

func (b *Builder) ConstDecl(name string, declared *ast.TypeExpression, init ast.Expression) *ast.ConstDecl {
	return &ast.ConstDecl{TokenPos: b.pos, Name: name, Declared: declared, Init: init}
}

func (b *Builder) Assign(target string, value ast.Expression) *ast.Assignment {
	return &ast.Assignment{TokenPos: b.pos, Target: target, Value: value}
}

func (b *Builder) Block(stmts ...ast.Statement) *ast.Block {
	return &ast.Block{Token: b.pos, Statements: stmts}
}

func (b *Builder) ExprStmt(e ast.Expression) *ast.ExpressionStmt {
	return &ast.ExpressionStmt{TokenPos: b.pos, Expr: e}
}

func (b *Builder) If(cond ast.Expression, then *ast.Block, els ast.Statement) *ast.IfStmt {
	return &ast.IfStmt{TokenPos: b.pos, Cond: cond, Then: then, Else: els}
}

func (b *Builder) While(cond ast.Expression, body *ast.Block) *ast.WhileStmt {
	return &ast.WhileStmt{TokenPos: b.pos, Cond: cond, Body: body}
}

func (b *Builder) Return(value ast.Expression) *ast.ReturnStmt {
	return &ast.ReturnStmt{TokenPos: b.pos, Value: value}
}

func (b *Builder) Break() *ast.BreakStmt       { return &ast.BreakStmt{TokenPos: b.pos} }
func (b *Builder) Continue() *ast.ContinueStmt { return &ast.ContinueStmt{TokenPos: b.pos} }

func (b *Builder) Func(name string, params []ast.Param, ret *ast.TypeExpression, body *ast.Block) *ast.FunctionDecl {
	return &ast.FunctionDecl{TokenPos: b.pos, Name: name, Params: params, ReturnType: ret, Body: body}
}

func (b *Builder) Class(name, super string, fields []ast.FieldDecl, methods []*ast.FunctionDecl) *ast.ClassDecl {
	return &ast.ClassDecl{TokenPos: b.pos, Name: name, SuperName: super, Fields: fields, Methods: methods}
}

func (b *Builder) TypeName(name string) *ast.TypeExpression {
	return &ast.TypeExpression{Name: name}
}

func (b *Builder) ArrayType(elem *ast.TypeExpression, rank int) *ast.TypeExpression {
	return &ast.TypeExpression{Element: elem, Rank: rank}
}

func (b *Builder) Program(stmts ...ast.Statement) *ast.Program {
	return &ast.Program{Statements: stmts}
}
