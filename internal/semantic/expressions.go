package semantic

import (
	"github.com/compilscript/core/internal/ast"
	"github.com/compilscript/core/internal/diag"
	"github.com/compilscript/core/internal/symtab"
	"github.com/compilscript/core/internal/types"
)

// analyzeExpression types expr and annotates it via SetType, returning
// the resolved type. Every branch sets a type even on error, using
// types.VOID as the poison value, so the accumulate-don't-abort model
// (spec §7) can keep analyzing the rest of the program.
func (a *Analyzer) analyzeExpression(expr ast.Expression) types.Type {
	return a.analyzeExpressionHint(expr, nil)
}

// analyzeExpressionHint is analyzeExpression plus a contextual expected
// type, used only to resolve an otherwise-unintypeable empty array
// literal (spec §4.3 "empty array literal" edge case).
func (a *Analyzer) analyzeExpressionHint(expr ast.Expression, hint types.Type) types.Type {
	var t types.Type
	switch e := expr.(type) {
	case *ast.Literal:
		t = a.analyzeLiteral(e)
	case *ast.VariableRef:
		t = a.analyzeVariableRef(e)
	case *ast.ThisExpr:
		t = a.analyzeThis(e)
	case *ast.BinaryOp:
		t = a.analyzeBinaryOp(e)
	case *ast.UnaryOp:
		t = a.analyzeUnaryOp(e)
	case *ast.Ternary:
		t = a.analyzeTernary(e)
	case *ast.Call:
		t = a.analyzeCall(e)
	case *ast.NewExpr:
		t = a.analyzeNewExpr(e)
	case *ast.PropertyAccess:
		t = a.analyzePropertyAccess(e)
	case *ast.MethodCall:
		t = a.analyzeMethodCall(e)
	case *ast.IndexAccess:
		t = a.analyzeIndexAccess(e)
	case *ast.ArrayLiteral:
		t = a.analyzeArrayLiteral(e, hint)
	default:
		t = types.VOID
	}
	if t == nil {
		t = types.VOID
	}
	expr.SetType(t)
	return t
}

func (a *Analyzer) analyzeLiteral(l *ast.Literal) types.Type {
	switch l.Kind {
	case ast.IntLiteral:
		return types.INTEGER
	case ast.FloatLiteral:
		return types.FLOAT
	case ast.StringLiteral:
		return types.STRING
	case ast.BoolLiteral:
		return types.BOOLEAN
	case ast.NullLiteral:
		return types.NULL
	default:
		return types.VOID
	}
}

func (a *Analyzer) analyzeVariableRef(v *ast.VariableRef) types.Type {
	sym, ok := a.symbols.Current().Lookup(v.Name)
	if !ok {
		a.addError(diag.Semantic, v, "undeclared name %q", v.Name)
		return types.VOID
	}
	return sym.Type
}

func (a *Analyzer) analyzeThis(t *ast.ThisExpr) types.Type {
	if !a.inMethod || a.currentClass == nil {
		a.addError(diag.Semantic, t, "'this' used outside a method")
		return types.VOID
	}
	return a.currentClass
}

func (a *Analyzer) analyzeBinaryOp(b *ast.BinaryOp) types.Type {
	lt := a.analyzeExpression(b.Left)
	rt := a.analyzeExpression(b.Right)
	result, ok := types.BinaryOpResult(b.Op, lt, rt)
	if !ok {
		a.addError(diag.Semantic, b, "operator %q is not defined for %s and %s", b.Op, lt.String(), rt.String())
		return types.VOID
	}
	return result
}

func (a *Analyzer) analyzeUnaryOp(u *ast.UnaryOp) types.Type {
	ot := a.analyzeExpression(u.Operand)
	result, ok := types.UnaryOpResult(u.Op, ot)
	if !ok {
		a.addError(diag.Semantic, u, "operator %q is not defined for %s", u.Op, ot.String())
		return types.VOID
	}
	return result
}

func (a *Analyzer) analyzeTernary(t *ast.Ternary) types.Type {
	ct := a.analyzeExpression(t.Cond)
	if ct.Kind() != types.KindBoolean {
		a.addError(diag.Semantic, t, "ternary condition must be boolean, got %s", ct.String())
	}
	thenT := a.analyzeExpression(t.Then)
	elseT := a.analyzeExpression(t.Else)
	unified, ok := unifyTypes(thenT, elseT)
	if !ok {
		a.addError(diag.Semantic, t, "ternary branches have incompatible types %s and %s", thenT.String(), elseT.String())
		return types.VOID
	}
	return unified
}

// unifyTypes returns the least type either branch is assignable to, or
// false if neither direction holds (the ternary/array-literal analogue
// of types.UnifyArrayElements for exactly two operands).
func unifyTypes(a, b types.Type) (types.Type, bool) {
	if a.Equals(b) {
		return a, true
	}
	if types.CompatibleAssign(a, b) {
		return a, true
	}
	if types.CompatibleAssign(b, a) {
		return b, true
	}
	if types.IsNumeric(a) && types.IsNumeric(b) {
		t, err := types.PromoteNumeric(a, b)
		if err == nil {
			return t, true
		}
	}
	return nil, false
}

func (a *Analyzer) analyzeCall(c *ast.Call) types.Type {
	sym, ok := a.symbols.Current().Lookup(c.Callee)
	if !ok {
		a.addError(diag.Semantic, c, "call to undeclared function %q", c.Callee)
		for _, arg := range c.Args {
			a.analyzeExpression(arg)
		}
		return types.VOID
	}

	switch c.Callee {
	case "print":
		if len(c.Args) != 1 {
			a.addError(diag.Semantic, c, "print expects 1 argument, got %d", len(c.Args))
		}
		for _, arg := range c.Args {
			a.analyzeExpression(arg)
		}
		return types.VOID
	case "len":
		if len(c.Args) != 1 {
			a.addError(diag.Semantic, c, "len expects 1 argument, got %d", len(c.Args))
			return types.INTEGER
		}
		at := a.analyzeExpression(c.Args[0])
		if at.Kind() != types.KindArray {
			a.addError(diag.Semantic, c, "len expects an array argument, got %s", at.String())
		}
		return types.INTEGER
	}

	if sym.Kind != symtab.FUNCTION {
		a.addError(diag.Semantic, c, "%q is not a function", c.Callee)
		for _, arg := range c.Args {
			a.analyzeExpression(arg)
		}
		return types.VOID
	}
	a.checkArgs(c, sym.Params, c.Args)
	return sym.ReturnType
}

func (a *Analyzer) checkArgs(n ast.Node, params []symtab.ParamInfo, args []ast.Expression) {
	if len(params) != len(args) {
		a.addError(diag.Semantic, n, "expected %d argument(s), got %d", len(params), len(args))
	}
	for i, arg := range args {
		at := a.analyzeExpression(arg)
		if i >= len(params) {
			continue
		}
		if !a.canAssign(params[i].Type, at) {
			a.addError(diag.Semantic, arg, "argument %d: cannot assign %s to %s", i+1, at.String(), params[i].Type.String())
		}
	}
}

func (a *Analyzer) analyzeNewExpr(n *ast.NewExpr) types.Type {
	ct, ok := a.classes[n.ClassName]
	if !ok {
		a.addError(diag.Semantic, n, "undeclared class %q", n.ClassName)
		for _, arg := range n.Args {
			a.analyzeExpression(arg)
		}
		return types.VOID
	}
	var ctor *types.MethodInfo
	if ct.Meta != nil {
		ctor, _ = ct.Meta.FindMethod("constructor")
	}
	if ctor == nil {
		if len(n.Args) != 0 {
			a.addError(diag.Semantic, n, "class %q has no constructor accepting arguments", n.ClassName)
		}
		for _, arg := range n.Args {
			a.analyzeExpression(arg)
		}
		return ct
	}
	a.checkArgs(n, paramInfos(ctor.Params), n.Args)
	return ct
}

func paramInfos(ts []types.Type) []symtab.ParamInfo {
	out := make([]symtab.ParamInfo, len(ts))
	for i, t := range ts {
		out[i] = symtab.ParamInfo{Type: t}
	}
	return out
}

func (a *Analyzer) analyzePropertyAccess(p *ast.PropertyAccess) types.Type {
	ot := a.analyzeExpression(p.Object)
	ct, ok := ot.(*types.ClassType)
	if !ok {
		a.addError(diag.Semantic, p, "cannot access field %q on non-class type %s", p.Member, ot.String())
		return types.VOID
	}
	if ct.Meta == nil {
		return types.VOID
	}
	ft, ok := ct.Meta.FindField(p.Member)
	if !ok {
		a.addError(diag.Semantic, p, "class %q has no field %q", ct.Name, p.Member)
		return types.VOID
	}
	return ft
}

func (a *Analyzer) analyzeMethodCall(m *ast.MethodCall) types.Type {
	ot := a.analyzeExpression(m.Object)
	ct, ok := ot.(*types.ClassType)
	if !ok {
		a.addError(diag.Semantic, m, "cannot call method %q on non-class type %s", m.Method, ot.String())
		for _, arg := range m.Args {
			a.analyzeExpression(arg)
		}
		return types.VOID
	}
	if ct.Meta == nil {
		return types.VOID
	}
	mi, ok := ct.Meta.FindMethod(m.Method)
	if !ok {
		a.addError(diag.Semantic, m, "class %q has no method %q", ct.Name, m.Method)
		for _, arg := range m.Args {
			a.analyzeExpression(arg)
		}
		return types.VOID
	}
	a.checkArgs(m, paramInfos(mi.Params), m.Args)
	return mi.ReturnType
}

func (a *Analyzer) analyzeIndexAccess(i *ast.IndexAccess) types.Type {
	at := a.analyzeExpression(i.Array)
	it := a.analyzeExpression(i.Index)
	if it.Kind() != types.KindInteger {
		a.addError(diag.Semantic, i, "array index must be integer, got %s", it.String())
	}
	elem, err := types.ElementType(at)
	if err != nil {
		a.addError(diag.Semantic, i, "%s", err.Error())
		return types.VOID
	}
	return elem
}

func (a *Analyzer) analyzeArrayLiteral(arr *ast.ArrayLiteral, hint types.Type) types.Type {
	if len(arr.Elements) == 0 {
		if hint != nil && hint.Kind() == types.KindArray {
			return hint
		}
		a.addError(diag.Semantic, arr, "cannot infer the type of an empty array literal without context")
		return types.NewArrayType(types.VOID, 1)
	}
	var elemHint types.Type
	if at, ok := hint.(*types.ArrayType); ok {
		elemHint, _ = types.ElementType(at)
	}
	elemTypes := make([]types.Type, len(arr.Elements))
	for i, e := range arr.Elements {
		elemTypes[i] = a.analyzeExpressionHint(e, elemHint)
	}
	unified, err := types.UnifyArrayElements(elemTypes)
	if err != nil {
		a.addError(diag.Semantic, arr, "%s", err.Error())
		return types.NewArrayType(types.VOID, 1)
	}
	return types.NewArrayType(unified, 1)
}
