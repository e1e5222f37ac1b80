// Package cst defines a minimal read-only concrete-syntax-tree interface
// (Node) and, in builder.go, a fixture Builder for tests. The semantic
// analyzer does not read cst.Node values: semantic.Analyzer.Analyze takes
// an *ast.Program, which callers build directly (tests through Builder,
// the CLI through internal/astjson). Lexing and parsing are out of scope
// for this module.
package cst

import "github.com/compilscript/core/internal/token"

// NodeKind tags the syntactic category of a CST node. A real parser is
// free to use a larger or differently-named internal kind set as long as
// it maps onto these when producing nodes for the analyzer.
type NodeKind string

// Node is a read-only view of one concrete-syntax-tree node. Implementations
// are expected to be plain data: the analyzer never mutates a Node.
type Node interface {
	Kind() NodeKind
	Pos() token.Position
	Length() int
	Children() []Node
	// Attr returns node-kind-specific data (an identifier's name, a
	// literal's parsed value, an operator's token text, ...).
	Attr(name string) any
}
