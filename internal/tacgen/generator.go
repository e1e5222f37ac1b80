// Package tacgen lowers a semantically-analyzed CompilScript AST into the
// three-address-code form defined by internal/tac (spec §4.4). Generation
// assumes the program already passed semantic analysis without errors —
// the generator does not re-check types, only re-derives the class/
// method resolution it needs for static dispatch.
package tacgen

import (
	"github.com/compilscript/core/internal/ast"
	"github.com/compilscript/core/internal/diag"
	"github.com/compilscript/core/internal/tac"
	"github.com/compilscript/core/internal/types"
)

// place is the textual operand a generated expression evaluates to: a
// variable name, a literal, or a temporary. temp marks whether name was
// handed out by the temp pool and should be freed once consumed.
type place struct {
	name string
	temp bool
}

// Generator lowers one program into a flat tac.Instruction stream. It
// owns no state beyond a single Generate call's lifetime — callers
// construct a fresh Generator per compilation, matching spec §5.
type Generator struct {
	temps   *tac.TempPool
	labels  *tac.LabelGen
	instrs  []tac.Instruction
	classes map[string]*types.ClassType
	sink    *diag.Sink

	breakTargets    []string
	continueTargets []string
}

// NewGenerator returns a fresh generator.
func NewGenerator() *Generator {
	return &Generator{
		temps:  tac.NewTempPool(),
		labels: tac.NewLabelGen(),
		sink:   diag.NewSink(),
	}
}

// Result is everything Generate produces.
type Result struct {
	Instructions []tac.Instruction
	Diagnostics  []diag.Diagnostic
	PeakTemps    int
}

// Generate lowers program into TAC. classes is the class registry the
// semantic analyzer produced, needed to resolve static method dispatch.
func (g *Generator) Generate(program *ast.Program, classes map[string]*types.ClassType) *Result {
	g.classes = classes

	var classDecls []*ast.ClassDecl
	var funcDecls []*ast.FunctionDecl
	var mainStmts []ast.Statement

	for _, stmt := range program.Statements {
		switch s := stmt.(type) {
		case *ast.ClassDecl:
			classDecls = append(classDecls, s)
		case *ast.FunctionDecl:
			funcDecls = append(funcDecls, s)
		default:
			mainStmts = append(mainStmts, s)
		}
	}

	for _, cd := range classDecls {
		g.genClass(cd)
	}
	for _, fd := range funcDecls {
		g.genFunction(fd.Name, fd.Body)
	}

	g.emit(tac.FunctionDef("main"))
	g.genStatements(mainStmts)
	g.emit(tac.EndFunc())

	g.validate()

	return &Result{
		Instructions: g.instrs,
		Diagnostics:  g.sink.All(),
		PeakTemps:    g.temps.Peak(),
	}
}

func (g *Generator) emit(i tac.Instruction) {
	g.instrs = append(g.instrs, i)
}

func (g *Generator) newTemp() place {
	return place{name: g.temps.Alloc(), temp: true}
}

func (g *Generator) free(p place) {
	if p.temp {
		g.temps.Free(p.name)
	}
}

func (g *Generator) genClass(cd *ast.ClassDecl) {
	for _, m := range cd.Methods {
		g.genFunction(cd.Name+"_"+m.Name, m.Body)
	}
}

// genFunction emits one @function/endfunc-delimited block. Parameter
// names need no separate declaration instruction — the activation
// record's param[N] addressing (internal/memaddr) is what binds them;
// the body simply references them by name like any other variable.
func (g *Generator) genFunction(name string, body *ast.Block) {
	g.emit(tac.FunctionDef(name))
	g.genStatements(body.Statements)
	g.emit(tac.EndFunc())
}

// declaringClass walks ct's ancestor chain to find which class actually
// declares methodName, for static (non-virtual) dispatch's qualified
// `<Class>_<method>` naming (spec §4.4, §9 open question #2).
func declaringClass(ct *types.ClassType, methodName string) string {
	cur := ct
	for cur != nil {
		if cur.Meta != nil && cur.Meta.OwnsMethod(methodName) {
			return cur.Name
		}
		if cur.Meta == nil {
			break
		}
		cur = cur.Meta.Super
	}
	return ct.Name
}

func (g *Generator) fresh(prefix string) string {
	return g.labels.Fresh(prefix)
}
