// Package tac defines the Three-Address-Code intermediate representation
// of spec §4.4: a flat, textual instruction stream with named temporaries
// and labels, plus the supporting allocators (internal/tac/temp.go,
// internal/tac/label.go) and activation-record layout
// (internal/tac/frame.go) the generator needs while lowering.
//
// The instruction shape is grounded on the operand/result/string
// contract of an interface-based IR (Instruction with String(),
// Operands(), ResultName()) rather than the reference compiler's own binary
// stack-machine bytecode, since spec §4.4 calls for textual
// three-address form, not a bytecode encoding.
package tac

import "fmt"

// Op tags the instruction form (spec §4.4's instruction catalogue).
type Op string

const (
	OpBinary      Op = "binary"      // x = y op z
	OpUnary       Op = "unary"       // x = op y
	OpCopy        Op = "copy"        // x = y
	OpIndexLoad   Op = "index_load"  // x = arr[i]
	OpIndexStore  Op = "index_store" // arr[i] = y
	OpFieldLoad   Op = "field_load"  // x = obj.field
	OpFieldStore  Op = "field_store" // obj.field = y
	OpGoto        Op = "goto"        // goto L
	OpIf          Op = "if"          // if x goto L
	OpIfFalse     Op = "ifFalse"     // ifFalse x goto L
	OpIfRelop     Op = "if_relop"    // if x relop y goto L (fused, optional)
	OpParam       Op = "param"       // param x
	OpCall        Op = "call"        // x = call f, n   (or bare call f, n)
	OpNew         Op = "new"         // x = new C
	OpNewArray    Op = "new_array"   // x = new_array[n]
	OpReturn      Op = "return"      // return [x]
	OpLabel       Op = "label"       // L:
	OpFunctionDef Op = "function"    // @function name
	OpEndFunc     Op = "endfunc"     // endfunc
)

// Instruction is one line of the TAC listing. Not every field is used by
// every Op; String renders exactly the operands the Op needs, in the
// textual forms of spec §6.3.
type Instruction struct {
	Op       Op
	Result   string // x
	Arg1     string // y
	Arg2     string // z
	Operator string // op / relop
	Label    string // L
	Name     string // function/field name, class name
	N        int    // param count for call
}

// Binary builds `x = y op z`.
func Binary(result, left, operator, right string) Instruction {
	return Instruction{Op: OpBinary, Result: result, Arg1: left, Operator: operator, Arg2: right}
}

// Unary builds `x = op y`.
func Unary(result, operator, operand string) Instruction {
	return Instruction{Op: OpUnary, Result: result, Operator: operator, Arg1: operand}
}

// Copy builds `x = y`.
func Copy(result, source string) Instruction {
	return Instruction{Op: OpCopy, Result: result, Arg1: source}
}

// IndexLoad builds `x = arr[i]`.
func IndexLoad(result, array, index string) Instruction {
	return Instruction{Op: OpIndexLoad, Result: result, Arg1: array, Arg2: index}
}

// IndexStore builds `arr[i] = y`.
func IndexStore(array, index, value string) Instruction {
	return Instruction{Op: OpIndexStore, Arg1: array, Arg2: index, Result: value}
}

// FieldLoad builds `x = obj.field`.
func FieldLoad(result, object, field string) Instruction {
	return Instruction{Op: OpFieldLoad, Result: result, Arg1: object, Name: field}
}

// FieldStore builds `obj.field = y`.
func FieldStore(object, field, value string) Instruction {
	return Instruction{Op: OpFieldStore, Arg1: object, Name: field, Result: value}
}

// Goto builds `goto L`.
func Goto(label string) Instruction { return Instruction{Op: OpGoto, Label: label} }

// If builds `if x goto L`.
func If(cond, label string) Instruction { return Instruction{Op: OpIf, Arg1: cond, Label: label} }

// IfFalse builds `ifFalse x goto L`.
func IfFalse(cond, label string) Instruction {
	return Instruction{Op: OpIfFalse, Arg1: cond, Label: label}
}

// IfRelop builds the fused `if x relop y goto L` form.
func IfRelop(left, relop, right, label string) Instruction {
	return Instruction{Op: OpIfRelop, Arg1: left, Operator: relop, Arg2: right, Label: label}
}

// Param builds `param x`.
func Param(value string) Instruction { return Instruction{Op: OpParam, Arg1: value} }

// Call builds `x = call f, n` (result == "" for a discarded-value call).
func Call(result, function string, n int) Instruction {
	return Instruction{Op: OpCall, Result: result, Name: function, N: n}
}

// New builds `x = new C`.
func New(result, class string) Instruction {
	return Instruction{Op: OpNew, Result: result, Name: class}
}

// NewArray builds `x = new_array[n]`.
func NewArray(result, size string) Instruction {
	return Instruction{Op: OpNewArray, Result: result, Arg1: size}
}

// Return builds `return [x]`.
func Return(value string) Instruction { return Instruction{Op: OpReturn, Arg1: value} }

// Label builds `L:`.
func Label(name string) Instruction { return Instruction{Op: OpLabel, Label: name} }

// FunctionDef builds `@function name`.
func FunctionDef(name string) Instruction { return Instruction{Op: OpFunctionDef, Name: name} }

// EndFunc builds `endfunc`.
func EndFunc() Instruction { return Instruction{Op: OpEndFunc} }

// String renders the instruction in the textual listing format of
// spec §6.3.
func (i Instruction) String() string {
	switch i.Op {
	case OpBinary:
		return fmt.Sprintf("%s = %s %s %s", i.Result, i.Arg1, i.Operator, i.Arg2)
	case OpUnary:
		return fmt.Sprintf("%s = %s%s", i.Result, i.Operator, i.Arg1)
	case OpCopy:
		return fmt.Sprintf("%s = %s", i.Result, i.Arg1)
	case OpIndexLoad:
		return fmt.Sprintf("%s = %s[%s]", i.Result, i.Arg1, i.Arg2)
	case OpIndexStore:
		return fmt.Sprintf("%s[%s] = %s", i.Arg1, i.Arg2, i.Result)
	case OpFieldLoad:
		return fmt.Sprintf("%s = %s.%s", i.Result, i.Arg1, i.Name)
	case OpFieldStore:
		return fmt.Sprintf("%s.%s = %s", i.Arg1, i.Name, i.Result)
	case OpGoto:
		return fmt.Sprintf("goto %s", i.Label)
	case OpIf:
		return fmt.Sprintf("if %s goto %s", i.Arg1, i.Label)
	case OpIfFalse:
		return fmt.Sprintf("ifFalse %s goto %s", i.Arg1, i.Label)
	case OpIfRelop:
		return fmt.Sprintf("if %s %s %s goto %s", i.Arg1, i.Operator, i.Arg2, i.Label)
	case OpParam:
		return fmt.Sprintf("param %s", i.Arg1)
	case OpCall:
		if i.Result == "" {
			return fmt.Sprintf("call %s, %d", i.Name, i.N)
		}
		return fmt.Sprintf("%s = call %s, %d", i.Result, i.Name, i.N)
	case OpNew:
		return fmt.Sprintf("%s = new %s", i.Result, i.Name)
	case OpNewArray:
		return fmt.Sprintf("%s = new_array[%s]", i.Result, i.Arg1)
	case OpReturn:
		if i.Arg1 == "" {
			return "return"
		}
		return fmt.Sprintf("return %s", i.Arg1)
	case OpLabel:
		return fmt.Sprintf("%s:", i.Label)
	case OpFunctionDef:
		return fmt.Sprintf("@function %s", i.Name)
	case OpEndFunc:
		return "endfunc"
	default:
		return fmt.Sprintf("<unknown op %s>", i.Op)
	}
}

// Operands returns every operand slot actually used by this instruction,
// in left-to-right order, for passes (e.g. the temp-liveness validator)
// that need to inspect reads without a type switch per Op.
func (i Instruction) Operands() []string {
	switch i.Op {
	case OpBinary:
		return []string{i.Arg1, i.Arg2}
	case OpUnary, OpIf, OpIfFalse, OpReturn, OpParam:
		if i.Arg1 == "" {
			return nil
		}
		return []string{i.Arg1}
	case OpCopy, OpFieldLoad:
		return []string{i.Arg1}
	case OpIndexLoad:
		return []string{i.Arg1, i.Arg2}
	case OpIndexStore:
		return []string{i.Arg1, i.Arg2, i.Result}
	case OpFieldStore:
		return []string{i.Arg1, i.Result}
	case OpIfRelop:
		return []string{i.Arg1, i.Arg2}
	default:
		return nil
	}
}

// ResultName returns the name written by this instruction, or "" if it
// writes no temporary/variable (control-flow and store forms).
func (i Instruction) ResultName() string {
	switch i.Op {
	case OpBinary, OpUnary, OpCopy, OpIndexLoad, OpFieldLoad, OpNew, OpNewArray:
		return i.Result
	case OpCall:
		return i.Result
	default:
		return ""
	}
}
