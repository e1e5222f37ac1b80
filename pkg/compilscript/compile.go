package compilscript

import (
	"strings"

	"github.com/compilscript/core/internal/ast"
	"github.com/compilscript/core/internal/dot"
	"github.com/compilscript/core/internal/memaddr"
	"github.com/compilscript/core/internal/semantic"
	"github.com/compilscript/core/internal/symtab"
	"github.com/compilscript/core/internal/tac"
	"github.com/compilscript/core/internal/tacgen"
)

// Compile runs the pipeline of spec §2 over an already-built program:
// semantic analysis, then (when it succeeds and the caller asked for
// them) memory annotation and TAC generation. source is the original
// text, kept only so diagnostics can later be rendered with
// internal/diag.FormatWithSource — parsing source into program is the
// caller's responsibility (spec §1's lexing/parsing non-goal).
func Compile(source string, program *ast.Program, opts Options) Report {
	analyzer := semantic.NewAnalyzer()
	analyzer.SetSource(source)
	result := analyzer.Analyze(program)

	report := Report{
		OK:          result.OK,
		Diagnostics: result.Diagnostics,
	}

	if opts.ReturnASTDot {
		d := dot.Render(program)
		report.ASTDot = &d
	}

	if !result.OK {
		return report
	}

	if opts.AnnotateMemory || opts.GenerateTAC {
		memaddr.NewAnnotator().Annotate(result.Global, result.Classes)
	}

	if scopeJSON, err := result.Global.ToJSON(); err == nil {
		scopeNode := symtab.ParseScopeNode(scopeJSON)
		report.Scopes = &scopeNode
	}

	if opts.GenerateTAC {
		genResult := tacgen.NewGenerator().Generate(result.Program, result.Classes)
		report.Diagnostics = append(report.Diagnostics, genResult.Diagnostics...)
		report.TAC = buildTACReport(genResult)
		report.OK = report.OK && len(genResult.Diagnostics) == 0
	}

	return report
}

func buildTACReport(r *tacgen.Result) *TACReport {
	lines := make([]string, 0, len(r.Instructions)+1)
	lines = append(lines, "# TAC Code Generation")
	functions := 0
	var validationErrors []string
	for _, instr := range r.Instructions {
		if instr.Op == tac.OpFunctionDef {
			functions++
		}
		lines = append(lines, instr.String())
	}
	for _, d := range r.Diagnostics {
		validationErrors = append(validationErrors, d.Message)
	}
	return &TACReport{
		Code:                lines,
		InstructionCount:    len(r.Instructions),
		TemporariesUsed:     r.PeakTemps,
		FunctionsRegistered: functions,
		ValidationErrors:    validationErrors,
	}
}

// Listing renders a TACReport's Code back into the single-string textual
// form of spec §6.3.
func (r *TACReport) Listing() string {
	return strings.Join(r.Code, "\n")
}
