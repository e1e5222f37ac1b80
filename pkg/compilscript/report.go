// Package compilscript exposes the single public entry point of the
// compiler core: Compile (spec §6.2). It wires internal/semantic,
// internal/memaddr, and internal/tacgen together in the pipeline order
// spec §2 fixes — semantic analysis first, then the memory annotator and
// TAC generator only when analysis produced no error-severity
// diagnostics.
package compilscript

import (
	"github.com/compilscript/core/internal/diag"
	"github.com/compilscript/core/internal/symtab"
)

// Options selects which optional stages Compile runs beyond semantic
// analysis, mirroring spec §6.2's enumerated configuration.
type Options struct {
	ReturnASTDot   bool
	GenerateTAC    bool
	AnnotateMemory bool
}

// TACReport is the optional `tac` field of Report (spec §6.2).
type TACReport struct {
	Code                []string
	InstructionCount    int
	TemporariesUsed     int
	FunctionsRegistered int
	ValidationErrors    []string
}

// Report is everything Compile produces (spec §6.2).
type Report struct {
	OK          bool
	Diagnostics []diag.Diagnostic
	ASTDot      *string
	TAC         *TACReport
	Scopes      *symtab.ScopeNode
}
