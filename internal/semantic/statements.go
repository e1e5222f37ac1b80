package semantic

import (
	"github.com/compilscript/core/internal/ast"
	"github.com/compilscript/core/internal/diag"
	"github.com/compilscript/core/internal/symtab"
	"github.com/compilscript/core/internal/types"
)

// analyzeStatement dispatches stmt by concrete type. terminated marks
// that an earlier sibling statement already returned/broke/continued,
// making stmt unreachable (spec §4.3 "Dead code" warning).
func (a *Analyzer) analyzeStatement(stmt ast.Statement, terminated bool) {
	if terminated {
		a.addWarning(diag.Semantic, stmt, "unreachable statement")
	}
	switch s := stmt.(type) {
	case *ast.VariableDecl:
		a.analyzeVariableDecl(s)
	case *ast.ConstDecl:
		a.analyzeConstDecl(s)
	case *ast.Assignment:
		a.analyzeAssignment(s)
	case *ast.IndexAssignment:
		a.analyzeIndexAssignment(s)
	case *ast.PropertyAssignment:
		a.analyzePropertyAssignment(s)
	case *ast.ExpressionStmt:
		a.analyzeExpression(s.Expr)
	case *ast.IfStmt:
		a.analyzeIf(s)
	case *ast.WhileStmt:
		a.analyzeWhile(s)
	case *ast.DoWhileStmt:
		a.analyzeDoWhile(s)
	case *ast.ForStmt:
		a.analyzeFor(s)
	case *ast.ForeachStmt:
		a.analyzeForeach(s)
	case *ast.SwitchStmt:
		a.analyzeSwitch(s)
	case *ast.BreakStmt:
		if a.loopDepth == 0 && a.switchDepth == 0 {
			a.addError(diag.Semantic, s, "'break' used outside a loop or switch")
		}
	case *ast.ContinueStmt:
		if a.loopDepth == 0 {
			a.addError(diag.Semantic, s, "'continue' used outside a loop")
		}
	case *ast.ReturnStmt:
		a.analyzeReturn(s)
	case *ast.TryCatchStmt:
		a.analyzeTryCatch(s)
	case *ast.FunctionDecl:
		a.analyzeFunctionBody(s)
	case *ast.ClassDecl:
		// handled separately by registerClassNames/populateClasses/analyzeMethodBodies
	case *ast.Block:
		a.analyzeBlock(s, symtab.BLOCK, "block")
	default:
		a.addError(diag.Semantic, stmt, "unsupported statement")
	}
}

// analyzeBlockStatements analyzes stmts in the table's current scope,
// tracking dead code after the first terminating statement.
func (a *Analyzer) analyzeBlockStatements(stmts []ast.Statement) {
	terminated := false
	for _, s := range stmts {
		a.analyzeStatement(s, terminated)
		if isTerminating(s) {
			terminated = true
		}
	}
}

// analyzeBlock enters a new scope of kind, analyzes block's statements,
// then leaves the scope.
func (a *Analyzer) analyzeBlock(block *ast.Block, kind symtab.ScopeKind, name string) {
	a.symbols.Enter(kind, name)
	a.analyzeBlockStatements(block.Statements)
	a.symbols.Leave()
}

func (a *Analyzer) analyzeVariableDecl(v *ast.VariableDecl) {
	var declared types.Type
	if v.Declared != nil {
		declared = a.resolveType(v.Declared)
		if declared == nil {
			a.addError(diag.Semantic, v, "variable %q has undeclared type %q", v.Name, v.Declared.String())
			declared = types.VOID
		}
	}

	var actual types.Type
	if v.Init != nil {
		actual = a.analyzeExpressionHint(v.Init, declared)
		if declared == nil {
			declared = actual
		} else if !a.canAssign(declared, actual) {
			a.addError(diag.Semantic, v, "cannot assign %s to variable %q of type %s", actual.String(), v.Name, declared.String())
		}
	}
	if declared == nil {
		a.addError(diag.Semantic, v, "variable %q needs either a declared type or an initializer", v.Name)
		declared = types.VOID
	}

	if err := a.symbols.Current().Define(&symtab.Symbol{
		Name: v.Name, Kind: symtab.VARIABLE, Type: declared, Mutable: true, Pos: v.Pos(),
	}); err != nil {
		a.addError(diag.Semantic, v, "%s", err.Error())
	}
}

func (a *Analyzer) analyzeConstDecl(c *ast.ConstDecl) {
	var declared types.Type
	if c.Declared != nil {
		declared = a.resolveType(c.Declared)
		if declared == nil {
			a.addError(diag.Semantic, c, "constant %q has undeclared type %q", c.Name, c.Declared.String())
			declared = types.VOID
		}
	}
	if c.Init == nil {
		a.addError(diag.Semantic, c, "constant %q requires an initializer", c.Name)
		if declared == nil {
			declared = types.VOID
		}
	} else {
		actual := a.analyzeExpressionHint(c.Init, declared)
		if declared == nil {
			declared = actual
		} else if !a.canAssign(declared, actual) {
			a.addError(diag.Semantic, c, "cannot assign %s to constant %q of type %s", actual.String(), c.Name, declared.String())
		}
	}

	if err := a.symbols.Current().Define(&symtab.Symbol{
		Name: c.Name, Kind: symtab.CONSTANT, Type: declared, Mutable: false, Pos: c.Pos(),
	}); err != nil {
		a.addError(diag.Semantic, c, "%s", err.Error())
	}
}

func (a *Analyzer) analyzeAssignment(asg *ast.Assignment) {
	sym, ok := a.symbols.Current().Lookup(asg.Target)
	if !ok {
		a.addError(diag.Semantic, asg, "undeclared name %q", asg.Target)
		a.analyzeExpression(asg.Value)
		return
	}
	if !sym.Mutable {
		a.addError(diag.Semantic, asg, "cannot assign to non-mutable %q", asg.Target)
	}
	vt := a.analyzeExpressionHint(asg.Value, sym.Type)
	if !a.canAssign(sym.Type, vt) {
		a.addError(diag.Semantic, asg, "cannot assign %s to %q of type %s", vt.String(), asg.Target, sym.Type.String())
	}
}

func (a *Analyzer) analyzeIndexAssignment(ia *ast.IndexAssignment) {
	at := a.analyzeExpression(ia.Array)
	it := a.analyzeExpression(ia.Index)
	if it.Kind() != types.KindInteger {
		a.addError(diag.Semantic, ia, "array index must be integer, got %s", it.String())
	}
	elem, err := types.ElementType(at)
	if err != nil {
		a.addError(diag.Semantic, ia, "%s", err.Error())
		a.analyzeExpression(ia.Value)
		return
	}
	vt := a.analyzeExpressionHint(ia.Value, elem)
	if !a.canAssign(elem, vt) {
		a.addError(diag.Semantic, ia, "cannot assign %s to array element of type %s", vt.String(), elem.String())
	}
}

func (a *Analyzer) analyzePropertyAssignment(pa *ast.PropertyAssignment) {
	ot := a.analyzeExpression(pa.Object)
	ct, ok := ot.(*types.ClassType)
	if !ok {
		a.addError(diag.Semantic, pa, "cannot access field %q on non-class type %s", pa.Member, ot.String())
		a.analyzeExpression(pa.Value)
		return
	}
	if ct.Meta == nil {
		a.analyzeExpression(pa.Value)
		return
	}
	ft, ok := ct.Meta.FindField(pa.Member)
	if !ok {
		a.addError(diag.Semantic, pa, "class %q has no field %q", ct.Name, pa.Member)
		a.analyzeExpression(pa.Value)
		return
	}
	vt := a.analyzeExpressionHint(pa.Value, ft)
	if !a.canAssign(ft, vt) {
		a.addError(diag.Semantic, pa, "cannot assign %s to field %q of type %s", vt.String(), pa.Member, ft.String())
	}
}

func (a *Analyzer) requireBoolean(cond ast.Expression, context string) {
	t := a.analyzeExpression(cond)
	if t.Kind() != types.KindBoolean {
		a.addError(diag.Semantic, cond, "%s condition must be boolean, got %s", context, t.String())
	}
}

func (a *Analyzer) analyzeIf(s *ast.IfStmt) {
	a.requireBoolean(s.Cond, "if")
	a.analyzeBlock(s.Then, symtab.BLOCK, "if-then")
	switch e := s.Else.(type) {
	case nil:
	case *ast.IfStmt:
		a.analyzeStatement(e, false)
	case *ast.Block:
		a.analyzeBlock(e, symtab.BLOCK, "if-else")
	}
}

func (a *Analyzer) analyzeWhile(s *ast.WhileStmt) {
	a.requireBoolean(s.Cond, "while")
	a.loopDepth++
	a.analyzeBlock(s.Body, symtab.LOOP_BODY, "while-body")
	a.loopDepth--
}

func (a *Analyzer) analyzeDoWhile(s *ast.DoWhileStmt) {
	a.loopDepth++
	a.analyzeBlock(s.Body, symtab.LOOP_BODY, "do-body")
	a.loopDepth--
	a.requireBoolean(s.Cond, "do-while")
}

func (a *Analyzer) analyzeFor(s *ast.ForStmt) {
	a.symbols.Enter(symtab.BLOCK, "for")
	if s.Init != nil {
		a.analyzeStatement(s.Init, false)
	}
	if s.Cond != nil {
		a.requireBoolean(s.Cond, "for")
	}
	a.loopDepth++
	a.analyzeBlock(s.Body, symtab.LOOP_BODY, "for-body")
	if s.Step != nil {
		a.analyzeStatement(s.Step, false)
	}
	a.loopDepth--
	a.symbols.Leave()
}

func (a *Analyzer) analyzeForeach(s *ast.ForeachStmt) {
	it := a.analyzeExpression(s.Iterable)
	elem, err := types.ElementType(it)
	if err != nil {
		a.addError(diag.Semantic, s, "%s", err.Error())
		elem = types.VOID
	}
	a.symbols.Enter(symtab.LOOP_BODY, "foreach")
	_ = a.symbols.Current().Define(&symtab.Symbol{Name: s.VarName, Kind: symtab.VARIABLE, Type: elem, Mutable: false, Pos: s.Pos()})
	a.loopDepth++
	a.analyzeBlockStatements(s.Body.Statements)
	a.loopDepth--
	a.symbols.Leave()
}

func (a *Analyzer) analyzeSwitch(s *ast.SwitchStmt) {
	et := a.analyzeExpression(s.Expr)
	a.switchDepth++
	for _, c := range s.Cases {
		lt := a.analyzeExpression(c.Label)
		if _, ok := types.BinaryOpResult("==", et, lt); !ok {
			a.addError(diag.Semantic, c.Label, "case label type %s is not comparable to switch expression type %s", lt.String(), et.String())
		}
		a.symbols.Enter(symtab.SWITCH_CASE, "case")
		a.analyzeBlockStatements(c.Body)
		a.symbols.Leave()
	}
	if s.Default != nil {
		a.symbols.Enter(symtab.SWITCH_CASE, "default")
		a.analyzeBlockStatements(s.Default)
		a.symbols.Leave()
	}
	a.switchDepth--
}

func (a *Analyzer) analyzeReturn(r *ast.ReturnStmt) {
	if len(a.returnTypeStack) == 0 {
		a.addError(diag.Semantic, r, "'return' used outside a function")
		if r.Value != nil {
			a.analyzeExpression(r.Value)
		}
		return
	}
	expected := a.returnTypeStack[len(a.returnTypeStack)-1]
	if r.Value == nil {
		if expected.Kind() != types.KindVoid {
			a.addError(diag.Semantic, r, "missing return value, expected %s", expected.String())
		}
		return
	}
	actual := a.analyzeExpressionHint(r.Value, expected)
	if !a.canAssign(expected, actual) {
		a.addError(diag.Semantic, r, "cannot return %s, expected %s", actual.String(), expected.String())
	}
}

func (a *Analyzer) analyzeTryCatch(t *ast.TryCatchStmt) {
	a.analyzeBlock(t.Try, symtab.BLOCK, "try")
	a.symbols.Enter(symtab.CATCH, "catch")
	_ = a.symbols.Current().Define(&symtab.Symbol{Name: t.CatchName, Kind: symtab.VARIABLE, Type: types.STRING, Mutable: false, Pos: t.Pos()})
	a.analyzeBlockStatements(t.CatchBlock.Statements)
	a.symbols.Leave()
}

// registerFunctionSignatures is the forward-declaration pass for
// top-level functions, run before any statement body is analyzed, so
// mutual recursion and forward calls between top-level functions both
// resolve (spec §4.3, mirroring class processing's own forward pass).
func (a *Analyzer) registerFunctionSignatures(program *ast.Program) {
	for _, stmt := range program.Statements {
		fd, ok := stmt.(*ast.FunctionDecl)
		if !ok {
			continue
		}
		params := make([]symtab.ParamInfo, len(fd.Params))
		for i, p := range fd.Params {
			pt := a.resolveType(p.Declared)
			if pt == nil {
				a.addError(diag.Semantic, fd, "parameter %q of function %q has undeclared type %q", p.Name, fd.Name, p.Declared.String())
				pt = types.VOID
			}
			params[i] = symtab.ParamInfo{Name: p.Name, Type: pt}
		}
		ret := types.Type(types.VOID)
		if fd.ReturnType != nil {
			if rt := a.resolveType(fd.ReturnType); rt != nil {
				ret = rt
			} else {
				a.addError(diag.Semantic, fd, "function %q has undeclared return type %q", fd.Name, fd.ReturnType.String())
			}
		}
		if err := a.symbols.Global().Define(&symtab.Symbol{
			Name: fd.Name, Kind: symtab.FUNCTION, Type: &builtinFuncType{}, Params: params, ReturnType: ret, Pos: fd.Pos(),
		}); err != nil {
			a.addError(diag.Semantic, fd, "function %q clashes with an existing name", fd.Name)
		}
	}
}

func (a *Analyzer) analyzeFunctionBody(fd *ast.FunctionDecl) {
	sym, ok := a.symbols.Global().LookupLocal(fd.Name)
	if !ok {
		return
	}
	scope := a.symbols.Enter(symtab.FUNCTION, fd.Name)
	for _, p := range sym.Params {
		_ = scope.Define(&symtab.Symbol{Name: p.Name, Kind: symtab.PARAMETER, Type: p.Type, Mutable: true, Pos: fd.Pos()})
	}
	a.returnTypeStack = append(a.returnTypeStack, sym.ReturnType)
	a.analyzeBlockStatements(fd.Body.Statements)
	a.returnTypeStack = a.returnTypeStack[:len(a.returnTypeStack)-1]
	a.symbols.Leave()
}
