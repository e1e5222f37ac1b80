package tacgen

import (
	"github.com/compilscript/core/internal/diag"
	"github.com/compilscript/core/internal/tac"
	"github.com/compilscript/core/internal/token"
)

// validate walks the generated instruction stream looking for structural
// defects the generator itself should never produce — a duplicated
// label, a jump to an undefined label, or a function body missing its
// closing endfunc. A failure here indicates a generator bug rather than
// a user program error, so every finding is reported at the TAC kind
// with no source position (spec §6's Kind enumerates "tac" precisely
// for this case).
func (g *Generator) validate() {
	g.validateLabels()
	g.validateFunctionNesting()
	g.validateTempLiveness()
	g.validateCallParams()
	g.validateReachableReturn()
}

func (g *Generator) validateLabels() {
	defined := map[string]int{}
	var referenced []string

	for _, instr := range g.instrs {
		if instr.Op == tac.OpLabel {
			defined[instr.Label]++
		}
	}
	for _, instr := range g.instrs {
		switch instr.Op {
		case tac.OpGoto, tac.OpIf, tac.OpIfFalse, tac.OpIfRelop:
			referenced = append(referenced, instr.Label)
		}
	}

	for label, count := range defined {
		if count > 1 {
			g.sink.Add(diag.TAC, token.Position{}, 0, "label %q defined more than once", label)
		}
	}
	for _, label := range referenced {
		if defined[label] == 0 {
			g.sink.Add(diag.TAC, token.Position{}, 0, "jump target %q is never defined", label)
		}
	}
}

func (g *Generator) validateFunctionNesting() {
	depth := 0
	var current string
	for _, instr := range g.instrs {
		switch instr.Op {
		case tac.OpFunctionDef:
			if depth > 0 {
				g.sink.Add(diag.TAC, token.Position{}, 0, "function %q opened while %q is still open", instr.Name, current)
			}
			depth++
			current = instr.Name
		case tac.OpEndFunc:
			if depth == 0 {
				g.sink.Add(diag.TAC, token.Position{}, 0, "endfunc with no matching function")
				continue
			}
			depth--
		}
	}
	if depth != 0 {
		g.sink.Add(diag.TAC, token.Position{}, 0, "function %q is missing its endfunc", current)
	}
}

// isTempOperand reports whether name has the shape TempPool.Alloc hands
// out ("t0", "t1", ...), as opposed to a variable, parameter, or field
// name carried through unchanged from the source program.
func isTempOperand(name string) bool {
	if len(name) < 2 || name[0] != 't' {
		return false
	}
	for _, r := range name[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// validateTempLiveness checks that every temporary is written before it
// is read, within the function that owns it — a defined-before-used
// scan per function body, reset at each @function boundary since a temp
// name is only ever meaningful within the function that allocated it.
func (g *Generator) validateTempLiveness() {
	defined := map[string]bool{}
	var current string

	for _, instr := range g.instrs {
		switch instr.Op {
		case tac.OpFunctionDef:
			defined = map[string]bool{}
			current = instr.Name
			continue
		case tac.OpEndFunc:
			continue
		}

		for _, operand := range instr.Operands() {
			if isTempOperand(operand) && !defined[operand] {
				g.sink.Add(diag.TAC, token.Position{}, 0, "temporary %q read before written in function %q", operand, current)
			}
		}
		if result := instr.ResultName(); isTempOperand(result) {
			defined[result] = true
		}
	}
}

// validateCallParams checks that every call is preceded by exactly as
// many param instructions as its argument count, with nothing else
// interleaved between the last param and the call — the nesting depth
// spec §4.4's call-sequencing rule describes.
func (g *Generator) validateCallParams() {
	for i, instr := range g.instrs {
		if instr.Op != tac.OpCall {
			continue
		}
		count := 0
		for j := i - 1; j >= 0 && g.instrs[j].Op == tac.OpParam; j-- {
			count++
		}
		if count != instr.N {
			g.sink.Add(diag.TAC, token.Position{}, 0, "call to %q expects %d preceding param(s), found %d", instr.Name, instr.N, count)
		}
	}
}

// validateReachableReturn flags a return instruction that directly
// follows an unconditional goto or another return with no intervening
// label — dead code a correct generator should never emit.
func (g *Generator) validateReachableReturn() {
	dead := false
	for _, instr := range g.instrs {
		switch instr.Op {
		case tac.OpLabel, tac.OpFunctionDef, tac.OpEndFunc:
			dead = false
		case tac.OpReturn:
			if dead {
				g.sink.Add(diag.TAC, token.Position{}, 0, "return is unreachable")
			}
			dead = true
		case tac.OpGoto:
			dead = true
		}
	}
}
