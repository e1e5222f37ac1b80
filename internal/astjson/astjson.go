// Package astjson loads an internal/ast.Program from the JSON tree a
// front end (lexer/parser, external tool, or a hand-written fixture)
// would hand to this module, since lexing and parsing are out of scope
// (spec.md §1). The shape mirrors internal/cst's read-only Node
// contract: every node is an object with a "kind" string and
// kind-specific fields, decoded with gjson the way the rest of this
// module reads JSON (internal/symtab/scope_json.go).
package astjson

import (
	"fmt"

	"github.com/compilscript/core/internal/ast"
	"github.com/compilscript/core/internal/token"
	"github.com/tidwall/gjson"
)

// Load parses raw JSON into an *ast.Program.
func Load(raw []byte) (*ast.Program, error) {
	result := gjson.ParseBytes(raw)
	if !result.IsObject() || !result.Get("statements").Exists() {
		return nil, fmt.Errorf("astjson: root must be an object with a \"statements\" array")
	}

	stmts, err := decodeStatements(result.Get("statements"))
	if err != nil {
		return nil, err
	}
	return &ast.Program{Statements: stmts}, nil
}

func pos(n gjson.Result) token.Position {
	return token.Position{
		Line:   int(n.Get("line").Int()),
		Column: int(n.Get("column").Int()),
	}
}

func decodeStatements(arr gjson.Result) ([]ast.Statement, error) {
	var stmts []ast.Statement
	var outerErr error
	arr.ForEach(func(_, v gjson.Result) bool {
		s, err := decodeStatement(v)
		if err != nil {
			outerErr = err
			return false
		}
		stmts = append(stmts, s)
		return true
	})
	return stmts, outerErr
}

func decodeBlock(n gjson.Result) (*ast.Block, error) {
	if !n.Exists() {
		return nil, nil
	}
	stmts, err := decodeStatements(n.Get("statements"))
	if err != nil {
		return nil, err
	}
	return &ast.Block{Token: pos(n), Statements: stmts}, nil
}

func decodeType(n gjson.Result) *ast.TypeExpression {
	if !n.Exists() {
		return nil
	}
	if n.Get("element").Exists() {
		return &ast.TypeExpression{
			Element: decodeType(n.Get("element")),
			Rank:    int(n.Get("rank").Int()),
		}
	}
	return &ast.TypeExpression{Name: n.Get("name").String()}
}

func decodeStatement(n gjson.Result) (ast.Statement, error) {
	switch kind := n.Get("kind").String(); kind {
	case "var":
		init, err := decodeOptExpr(n.Get("init"))
		if err != nil {
			return nil, err
		}
		return &ast.VariableDecl{TokenPos: pos(n), Name: n.Get("name").String(), Declared: decodeType(n.Get("declared")), Init: init}, nil
	case "const":
		init, err := decodeOptExpr(n.Get("init"))
		if err != nil {
			return nil, err
		}
		return &ast.ConstDecl{TokenPos: pos(n), Name: n.Get("name").String(), Declared: decodeType(n.Get("declared")), Init: init}, nil
	case "assign":
		value, err := decodeExpr(n.Get("value"))
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{TokenPos: pos(n), Target: n.Get("target").String(), Value: value}, nil
	case "indexAssign":
		arr, err := decodeExpr(n.Get("array"))
		if err != nil {
			return nil, err
		}
		idx, err := decodeExpr(n.Get("index"))
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(n.Get("value"))
		if err != nil {
			return nil, err
		}
		return &ast.IndexAssignment{TokenPos: pos(n), Array: arr, Index: idx, Value: value}, nil
	case "propertyAssign":
		obj, err := decodeExpr(n.Get("object"))
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(n.Get("value"))
		if err != nil {
			return nil, err
		}
		return &ast.PropertyAssignment{TokenPos: pos(n), Object: obj, Member: n.Get("member").String(), Value: value}, nil
	case "exprStmt":
		e, err := decodeExpr(n.Get("expr"))
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStmt{TokenPos: pos(n), Expr: e}, nil
	case "if":
		cond, err := decodeExpr(n.Get("cond"))
		if err != nil {
			return nil, err
		}
		then, err := decodeBlock(n.Get("then"))
		if err != nil {
			return nil, err
		}
		var elseStmt ast.Statement
		if n.Get("else").Exists() {
			elseStmt, err = decodeStatement(n.Get("else"))
			if err != nil {
				return nil, err
			}
		}
		return &ast.IfStmt{TokenPos: pos(n), Cond: cond, Then: then, Else: elseStmt}, nil
	case "block":
		return decodeBlock(n)
	case "while":
		cond, err := decodeExpr(n.Get("cond"))
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(n.Get("body"))
		if err != nil {
			return nil, err
		}
		return &ast.WhileStmt{TokenPos: pos(n), Cond: cond, Body: body}, nil
	case "doWhile":
		cond, err := decodeExpr(n.Get("cond"))
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(n.Get("body"))
		if err != nil {
			return nil, err
		}
		return &ast.DoWhileStmt{TokenPos: pos(n), Cond: cond, Body: body}, nil
	case "for":
		var init, step ast.Statement
		var err error
		if n.Get("init").Exists() {
			init, err = decodeStatement(n.Get("init"))
			if err != nil {
				return nil, err
			}
		}
		if n.Get("step").Exists() {
			step, err = decodeStatement(n.Get("step"))
			if err != nil {
				return nil, err
			}
		}
		cond, err := decodeExpr(n.Get("cond"))
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(n.Get("body"))
		if err != nil {
			return nil, err
		}
		return &ast.ForStmt{TokenPos: pos(n), Init: init, Cond: cond, Step: step, Body: body}, nil
	case "foreach":
		iter, err := decodeExpr(n.Get("iterable"))
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(n.Get("body"))
		if err != nil {
			return nil, err
		}
		return &ast.ForeachStmt{TokenPos: pos(n), VarName: n.Get("varName").String(), Iterable: iter, Body: body}, nil
	case "switch":
		return decodeSwitch(n)
	case "break":
		return &ast.BreakStmt{TokenPos: pos(n)}, nil
	case "continue":
		return &ast.ContinueStmt{TokenPos: pos(n)}, nil
	case "return":
		value, err := decodeOptExpr(n.Get("value"))
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStmt{TokenPos: pos(n), Value: value}, nil
	case "tryCatch":
		try, err := decodeBlock(n.Get("try"))
		if err != nil {
			return nil, err
		}
		catch, err := decodeBlock(n.Get("catchBlock"))
		if err != nil {
			return nil, err
		}
		return &ast.TryCatchStmt{TokenPos: pos(n), Try: try, CatchName: n.Get("catchName").String(), CatchBlock: catch}, nil
	case "function":
		return decodeFunction(n)
	case "class":
		return decodeClass(n)
	default:
		return nil, fmt.Errorf("astjson: unknown statement kind %q", kind)
	}
}

func decodeSwitch(n gjson.Result) (ast.Statement, error) {
	expr, err := decodeExpr(n.Get("expr"))
	if err != nil {
		return nil, err
	}
	var cases []ast.SwitchCase
	var outerErr error
	n.Get("cases").ForEach(func(_, c gjson.Result) bool {
		label, err := decodeExpr(c.Get("label"))
		if err != nil {
			outerErr = err
			return false
		}
		body, err := decodeStatements(c.Get("body"))
		if err != nil {
			outerErr = err
			return false
		}
		cases = append(cases, ast.SwitchCase{Label: label, Body: body})
		return true
	})
	if outerErr != nil {
		return nil, outerErr
	}
	var def []ast.Statement
	if n.Get("default").Exists() {
		def, err = decodeStatements(n.Get("default"))
		if err != nil {
			return nil, err
		}
	}
	return &ast.SwitchStmt{TokenPos: pos(n), Expr: expr, Cases: cases, Default: def}, nil
}

func decodeFunction(n gjson.Result) (*ast.FunctionDecl, error) {
	var params []ast.Param
	n.Get("params").ForEach(func(_, p gjson.Result) bool {
		params = append(params, ast.Param{Name: p.Get("name").String(), Declared: decodeType(p.Get("declared"))})
		return true
	})
	body, err := decodeBlock(n.Get("body"))
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{
		TokenPos:   pos(n),
		Name:       n.Get("name").String(),
		Params:     params,
		ReturnType: decodeType(n.Get("returnType")),
		Body:       body,
	}, nil
}

func decodeClass(n gjson.Result) (*ast.ClassDecl, error) {
	var fields []ast.FieldDecl
	n.Get("fields").ForEach(func(_, f gjson.Result) bool {
		fields = append(fields, ast.FieldDecl{Name: f.Get("name").String(), Declared: decodeType(f.Get("declared"))})
		return true
	})
	var methods []*ast.FunctionDecl
	var outerErr error
	n.Get("methods").ForEach(func(_, m gjson.Result) bool {
		fn, err := decodeFunction(m)
		if err != nil {
			outerErr = err
			return false
		}
		methods = append(methods, fn)
		return true
	})
	if outerErr != nil {
		return nil, outerErr
	}
	return &ast.ClassDecl{
		TokenPos:  pos(n),
		Name:      n.Get("name").String(),
		SuperName: n.Get("super").String(),
		Fields:    fields,
		Methods:   methods,
	}, nil
}

func decodeOptExpr(n gjson.Result) (ast.Expression, error) {
	if !n.Exists() {
		return nil, nil
	}
	return decodeExpr(n)
}

func decodeExpr(n gjson.Result) (ast.Expression, error) {
	switch kind := n.Get("kind").String(); kind {
	case "int":
		return &ast.Literal{TokenPos: pos(n), Kind: ast.IntLiteral, IntVal: n.Get("value").Int()}, nil
	case "float":
		return &ast.Literal{TokenPos: pos(n), Kind: ast.FloatLiteral, FloatVal: n.Get("value").Float()}, nil
	case "string":
		return &ast.Literal{TokenPos: pos(n), Kind: ast.StringLiteral, StrVal: n.Get("value").String()}, nil
	case "bool":
		return &ast.Literal{TokenPos: pos(n), Kind: ast.BoolLiteral, BoolVal: n.Get("value").Bool()}, nil
	case "null":
		return &ast.Literal{TokenPos: pos(n), Kind: ast.NullLiteral}, nil
	case "var":
		return &ast.VariableRef{TokenPos: pos(n), Name: n.Get("name").String()}, nil
	case "this":
		return &ast.ThisExpr{TokenPos: pos(n)}, nil
	case "binary":
		left, err := decodeExpr(n.Get("left"))
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(n.Get("right"))
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOp{TokenPos: pos(n), Op: n.Get("op").String(), Left: left, Right: right}, nil
	case "unary":
		operand, err := decodeExpr(n.Get("operand"))
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{TokenPos: pos(n), Op: n.Get("op").String(), Operand: operand}, nil
	case "ternary":
		cond, err := decodeExpr(n.Get("cond"))
		if err != nil {
			return nil, err
		}
		then, err := decodeExpr(n.Get("then"))
		if err != nil {
			return nil, err
		}
		els, err := decodeExpr(n.Get("else"))
		if err != nil {
			return nil, err
		}
		return &ast.Ternary{TokenPos: pos(n), Cond: cond, Then: then, Else: els}, nil
	case "call":
		args, err := decodeExprs(n.Get("args"))
		if err != nil {
			return nil, err
		}
		return &ast.Call{TokenPos: pos(n), Callee: n.Get("callee").String(), Args: args}, nil
	case "new":
		args, err := decodeExprs(n.Get("args"))
		if err != nil {
			return nil, err
		}
		return &ast.NewExpr{TokenPos: pos(n), ClassName: n.Get("className").String(), Args: args}, nil
	case "property":
		obj, err := decodeExpr(n.Get("object"))
		if err != nil {
			return nil, err
		}
		return &ast.PropertyAccess{TokenPos: pos(n), Object: obj, Member: n.Get("member").String()}, nil
	case "methodCall":
		obj, err := decodeExpr(n.Get("object"))
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(n.Get("args"))
		if err != nil {
			return nil, err
		}
		return &ast.MethodCall{TokenPos: pos(n), Object: obj, Method: n.Get("method").String(), Args: args}, nil
	case "index":
		arr, err := decodeExpr(n.Get("array"))
		if err != nil {
			return nil, err
		}
		idx, err := decodeExpr(n.Get("index"))
		if err != nil {
			return nil, err
		}
		return &ast.IndexAccess{TokenPos: pos(n), Array: arr, Index: idx}, nil
	case "arrayLit":
		elems, err := decodeExprs(n.Get("elements"))
		if err != nil {
			return nil, err
		}
		return &ast.ArrayLiteral{TokenPos: pos(n), Elements: elems}, nil
	default:
		return nil, fmt.Errorf("astjson: unknown expression kind %q", kind)
	}
}

func decodeExprs(arr gjson.Result) ([]ast.Expression, error) {
	var exprs []ast.Expression
	var outerErr error
	arr.ForEach(func(_, v gjson.Result) bool {
		e, err := decodeExpr(v)
		if err != nil {
			outerErr = err
			return false
		}
		exprs = append(exprs, e)
		return true
	})
	return exprs, outerErr
}
