package semantic

import (
	"github.com/compilscript/core/internal/ast"
	"github.com/compilscript/core/internal/diag"
	"github.com/compilscript/core/internal/symtab"
	"github.com/compilscript/core/internal/types"
)

// registerClassNames is pass one of class processing (spec §4.3): every
// class name in the program gets an empty *types.ClassType before any
// field, method, or superclass is resolved, so forward references
// between classes (A referencing B declared later) see a usable type.
func (a *Analyzer) registerClassNames(program *ast.Program) {
	for _, stmt := range program.Statements {
		cd, ok := stmt.(*ast.ClassDecl)
		if !ok {
			continue
		}
		if _, exists := a.classes[cd.Name]; exists {
			a.addError(diag.Semantic, cd, "class %q is already declared", cd.Name)
			continue
		}
		ct := &types.ClassType{Name: cd.Name}
		a.classes[cd.Name] = ct
		if err := a.symbols.Global().Define(&symtab.Symbol{
			Name: cd.Name, Kind: symtab.CLASS, Type: ct, Pos: cd.Pos(),
		}); err != nil {
			a.addError(diag.Semantic, cd, "class %q clashes with a built-in name", cd.Name)
		}
	}
}

// populateClasses is pass two: resolve each class's superclass, fields,
// and method signatures (not bodies), with cycle detection bounded by
// the number of registered classes (spec §4.3 "inheritance cycle").
func (a *Analyzer) populateClasses(program *ast.Program) {
	decls := classDecls(program)
	bound := len(decls)

	for _, cd := range decls {
		ct := a.classes[cd.Name]
		if ct == nil {
			continue
		}
		meta := &types.ClassMeta{Name: cd.Name}
		ct.Meta = meta

		if cd.SuperName != "" {
			super, ok := a.classes[cd.SuperName]
			if !ok {
				a.addError(diag.Semantic, cd, "class %q extends undeclared class %q", cd.Name, cd.SuperName)
			} else {
				meta.Super = super
			}
		}

		for _, fd := range cd.Fields {
			ft := a.resolveType(fd.Declared)
			if ft == nil {
				a.addError(diag.Semantic, cd, "field %q of class %q has undeclared type %q", fd.Name, cd.Name, fd.Declared.String())
				ft = types.VOID
			}
			meta.Fields = append(meta.Fields, types.FieldInfo{Name: fd.Name, Type: ft})
		}

		for _, m := range cd.Methods {
			params := make([]types.Type, len(m.Params))
			for i, p := range m.Params {
				pt := a.resolveType(p.Declared)
				if pt == nil {
					a.addError(diag.Semantic, cd, "parameter %q of %s.%s has undeclared type %q", p.Name, cd.Name, m.Name, p.Declared.String())
					pt = types.VOID
				}
				params[i] = pt
			}
			ret := types.Type(types.VOID)
			if m.ReturnType != nil {
				if rt := a.resolveType(m.ReturnType); rt != nil {
					ret = rt
				} else {
					a.addError(diag.Semantic, cd, "method %s.%s has undeclared return type %q", cd.Name, m.Name, m.ReturnType.String())
				}
			}
			meta.Methods = append(meta.Methods, types.MethodInfo{Name: m.Name, Params: params, ReturnType: ret})
			if m.Name == "constructor" {
				meta.HasUserCtor = true
			}
		}
	}

	for _, cd := range decls {
		ct := a.classes[cd.Name]
		if ct == nil || ct.Meta == nil || ct.Meta.Super == nil {
			continue
		}
		steps := 0
		cur := ct.Meta.Super
		cycle := false
		for cur != nil {
			if cur.Name == cd.Name {
				cycle = true
				break
			}
			steps++
			if steps > bound {
				cycle = true
				break
			}
			if cur.Meta == nil {
				break
			}
			cur = cur.Meta.Super
		}
		if cycle {
			a.addError(diag.Semantic, cd, "inheritance cycle detected at class %q", cd.Name)
			ct.Meta.Super = nil
		}
	}

	for _, cd := range decls {
		ct := a.classes[cd.Name]
		if ct == nil || ct.Meta == nil {
			continue
		}
		a.checkOverrides(cd, ct.Meta)
	}
}

// checkOverrides reports an error for every method that shares a name
// with an ancestor method but changes its arity, parameter types, or
// return type (spec §4.3, "overriding method changes signature").
func (a *Analyzer) checkOverrides(cd *ast.ClassDecl, meta *types.ClassMeta) {
	if meta.Super == nil || meta.Super.Meta == nil {
		return
	}
	for _, m := range meta.Methods {
		ancestor, ok := meta.Super.Meta.FindMethod(m.Name)
		if !ok {
			continue
		}
		if !methodSignaturesMatch(m, *ancestor) {
			a.addError(diag.Semantic, cd, "method %q overrides %s.%s with an incompatible signature", m.Name, meta.Super.Name, m.Name)
		}
	}
}

// methodSignaturesMatch reports whether two methods share the same
// arity, parameter types in order, and return type.
func methodSignaturesMatch(m, ancestor types.MethodInfo) bool {
	if len(m.Params) != len(ancestor.Params) {
		return false
	}
	for i := range m.Params {
		if !m.Params[i].Equals(ancestor.Params[i]) {
			return false
		}
	}
	return m.ReturnType.Equals(ancestor.ReturnType)
}

// analyzeMethodBodies is pass three: each method body is analyzed in a
// fresh METHOD scope with `this` and every inherited-or-declared member
// name implicitly resolvable through `this`, plus its own parameters.
func (a *Analyzer) analyzeMethodBodies(cd *ast.ClassDecl) {
	ct := a.classes[cd.Name]
	if ct == nil || ct.Meta == nil {
		return
	}
	prevClass := a.currentClass
	a.currentClass = ct
	a.inMethod = true

	for _, m := range cd.Methods {
		info, _ := ct.Meta.FindMethod(m.Name)
		scope := a.symbols.Enter(symtab.METHOD, cd.Name+"."+m.Name)
		for i, p := range m.Params {
			pt := types.Type(types.VOID)
			if info != nil && i < len(info.Params) {
				pt = info.Params[i]
			}
			_ = scope.Define(&symtab.Symbol{Name: p.Name, Kind: symtab.PARAMETER, Type: pt, Mutable: true, Pos: cd.Pos()})
		}
		ret := types.Type(types.VOID)
		if info != nil {
			ret = info.ReturnType
		}
		a.returnTypeStack = append(a.returnTypeStack, ret)
		a.analyzeBlockStatements(m.Body.Statements)
		a.returnTypeStack = a.returnTypeStack[:len(a.returnTypeStack)-1]
		a.symbols.Leave()
	}

	a.inMethod = false
	a.currentClass = prevClass
}
