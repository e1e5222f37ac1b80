// Package ast defines the typed Abstract Syntax Tree node types for
// CompilScript (spec §3.4). Every node carries its syntactic kind
// implicitly via its Go type, a source position, and kind-specific
// children; expression nodes additionally carry the semantic type they
// evaluate to, filled in by the semantic analyzer.
package ast

import (
	"strings"

	"github.com/compilscript/core/internal/token"
	"github.com/compilscript/core/internal/types"
)

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expression is any node that produces a value. Type returns nil until
// the semantic analyzer sets the semantic type with SetType.
type Expression interface {
	Node
	expressionNode()
	Type() types.Type
	SetType(types.Type)
}

// Statement is any node that performs an action but produces no value.
type Statement interface {
	Node
	statementNode()
}

// baseExpr factors the Type()/SetType() bookkeeping shared by every
// expression node, the way the reference compiler repeats a
// Type/GetType/SetType triplet per node — here centralized by embedding.
type baseExpr struct {
	typ types.Type
}

func (b *baseExpr) Type() types.Type    { return b.typ }
func (b *baseExpr) SetType(t types.Type) { b.typ = t }

// Program is the root of the AST.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}
func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 0}
}

// Block is a `{ ... }` sequence of statements introducing a BLOCK scope.
type Block struct {
	Token      token.Position
	Statements []Statement
}

func (b *Block) statementNode()        {}
func (b *Block) TokenLiteral() string  { return "{" }
func (b *Block) Pos() token.Position   { return b.Token }
func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range b.Statements {
		sb.WriteString("  ")
		sb.WriteString(strings.ReplaceAll(s.String(), "\n", "\n  "))
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}
