// Package semantic implements the CompilScript semantic analyzer (spec
// §4.3): it walks the input AST, resolves names against a hierarchical
// symbol table, enforces every static rule of spec §3 and §4.3, and
// leaves the AST's expression nodes annotated with their resolved types.
//
// An Analyzer owns its SemanticState entirely — symbol table, class
// registry, diagnostic sink, loop/switch/return-type stacks — and none of
// it is process-global, so two Analyzers never interfere (spec §5).
package semantic

import (
	"github.com/compilscript/core/internal/ast"
	"github.com/compilscript/core/internal/diag"
	"github.com/compilscript/core/internal/symtab"
	"github.com/compilscript/core/internal/types"
)

// Analyzer walks a CompilScript AST, building a typed program plus a
// populated global scope and class registry.
type Analyzer struct {
	symbols *symtab.Table
	classes map[string]*types.ClassType
	sink    *diag.Sink
	source  string

	currentClass    *types.ClassType
	returnTypeStack []types.Type
	loopDepth       int
	switchDepth     int
	inMethod        bool
}

// Result is everything downstream stages (memaddr, tacgen) consume.
type Result struct {
	OK          bool
	Diagnostics []diag.Diagnostic
	Global      *symtab.Scope
	Classes     map[string]*types.ClassType
	Program     *ast.Program
}

// NewAnalyzer creates a fresh analyzer with the built-in global names
// print and len pre-registered; no other built-in name is defined.
func NewAnalyzer() *Analyzer {
	a := &Analyzer{
		symbols: symtab.NewTable(),
		classes: make(map[string]*types.ClassType),
		sink:    diag.NewSink(),
	}
	a.registerBuiltins()
	return a
}

// SetSource attaches the original source text so diagnostics can be
// rendered with a caret diagram by the CLI host; it has no effect on
// analysis itself.
func (a *Analyzer) SetSource(source string) {
	a.source = source
}

func (a *Analyzer) registerBuiltins() {
	g := a.symbols.Global()
	_ = g.Define(&symtab.Symbol{
		Name: "print", Kind: symtab.FUNCTION,
		Type:       &builtinFuncType{},
		Params:     []symtab.ParamInfo{{Name: "value", Type: types.STRING}},
		ReturnType: types.VOID,
	})
	_ = g.Define(&symtab.Symbol{
		Name: "len", Kind: symtab.FUNCTION,
		Type:       &builtinFuncType{},
		Params:     []symtab.ParamInfo{{Name: "arr", Type: types.NewArrayType(types.VOID, 1)}},
		ReturnType: types.INTEGER,
	})
}

// builtinFuncType is a sentinel Type marking a built-in function symbol;
// built-ins are arity/type-checked specially (print accepts any
// primitive or string; len accepts any array), so their Symbol.Type
// never participates in ordinary CompatibleAssign checks.
type builtinFuncType struct{}

func (b *builtinFuncType) Kind() types.Kind      { return types.KindVoid }
func (b *builtinFuncType) String() string        { return "<builtin>" }
func (b *builtinFuncType) Equals(t types.Type) bool { _, ok := t.(*builtinFuncType); return ok }

// Analyze walks program, populating the global scope, class registry,
// and diagnostic sink, and annotating every expression node with its
// resolved type. It always returns a Result; check Result.OK (equivalent
// to !sink.HasErrors()) before proceeding to TAC generation (spec §2).
func (a *Analyzer) Analyze(program *ast.Program) *Result {
	// Two-pass class registration happens before any statement is
	// analyzed in sequence, so forward references between classes and
	// between a class and code that constructs it both resolve (spec
	// §4.3 "Class processing").
	a.registerClassNames(program)
	a.populateClasses(program)
	a.registerFunctionSignatures(program)

	for i, stmt := range program.Statements {
		a.analyzeStatement(stmt, isTerminated(program.Statements[:i]))
	}

	for _, cd := range classDecls(program) {
		a.analyzeMethodBodies(cd)
	}

	return &Result{
		OK:          !a.sink.HasErrors(),
		Diagnostics: a.sink.All(),
		Global:      a.symbols.Global(),
		Classes:     a.classes,
		Program:     program,
	}
}

func classDecls(program *ast.Program) []*ast.ClassDecl {
	var out []*ast.ClassDecl
	for _, stmt := range program.Statements {
		if cd, ok := stmt.(*ast.ClassDecl); ok {
			out = append(out, cd)
		}
	}
	return out
}

// isTerminated reports whether the last of prior statements is a
// terminating statement (return/break/continue), used by Analyze to flag
// dead code among top-level statements (spec §4.3 "Dead code").
func isTerminated(prior []ast.Statement) bool {
	if len(prior) == 0 {
		return false
	}
	return isTerminating(prior[len(prior)-1])
}

func isTerminating(s ast.Statement) bool {
	switch s.(type) {
	case *ast.ReturnStmt, *ast.BreakStmt, *ast.ContinueStmt:
		return true
	default:
		return false
	}
}

func (a *Analyzer) addError(kind diag.Kind, n ast.Node, format string, args ...any) {
	a.sink.Add(kind, n.Pos(), len(n.TokenLiteral()), format, args...)
}

func (a *Analyzer) addWarning(kind diag.Kind, n ast.Node, format string, args ...any) {
	a.sink.AddWarning(kind, n.Pos(), len(n.TokenLiteral()), format, args...)
}

// canAssign wraps types.CompatibleAssign; kept as a method so future
// CompilScript-specific carve-outs (there are none yet) have one place
// to live, mirroring the reference compiler's Analyzer.canAssign.
func (a *Analyzer) canAssign(target, actual types.Type) bool {
	return types.CompatibleAssign(target, actual)
}

// resolveType turns surface syntax (ast.TypeExpression) into an
// internal/types.Type. It returns nil for a nil expression or an unknown
// type name and reports nothing itself; callers add the diagnostic.
func (a *Analyzer) resolveType(te *ast.TypeExpression) types.Type {
	if te == nil {
		return nil
	}
	if te.Element != nil {
		elem := a.resolveType(te.Element)
		if elem == nil {
			return nil
		}
		return types.NewArrayType(elem, te.Rank)
	}
	switch te.Name {
	case "integer", "Integer":
		return types.INTEGER
	case "float", "Float":
		return types.FLOAT
	case "string", "String":
		return types.STRING
	case "boolean", "Boolean":
		return types.BOOLEAN
	case "void", "Void":
		return types.VOID
	default:
		if ct, ok := a.classes[te.Name]; ok {
			return ct
		}
		return nil
	}
}
