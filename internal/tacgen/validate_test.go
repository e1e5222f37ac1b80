package tacgen

import (
	"strings"
	"testing"

	"github.com/compilscript/core/internal/tac"
)

func diagMessages(g *Generator) []string {
	var msgs []string
	for _, d := range g.sink.All() {
		msgs = append(msgs, d.Message)
	}
	return msgs
}

func hasDiagContaining(t *testing.T, msgs []string, substr string) {
	t.Helper()
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return
		}
	}
	t.Fatalf("expected a diagnostic containing %q, got: %v", substr, msgs)
}

// A temporary read before any instruction writes it is a generator bug,
// not a user error, so it reports at the TAC kind.
func TestValidateTempLivenessCatchesReadBeforeWrite(t *testing.T) {
	g := NewGenerator()
	g.instrs = []tac.Instruction{
		tac.FunctionDef("main"),
		tac.Copy("x", "t0"),
		tac.EndFunc(),
	}
	g.validateTempLiveness()
	hasDiagContaining(t, diagMessages(g), `temporary "t0" read before written`)
}

func TestValidateTempLivenessAllowsWriteThenRead(t *testing.T) {
	g := NewGenerator()
	g.instrs = []tac.Instruction{
		tac.FunctionDef("main"),
		tac.Copy("t0", "5"),
		tac.Copy("x", "t0"),
		tac.EndFunc(),
	}
	g.validateTempLiveness()
	if msgs := diagMessages(g); len(msgs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", msgs)
	}
}

// A call whose argument count doesn't match its preceding param
// instructions is a generator bug.
func TestValidateCallParamsCatchesMismatch(t *testing.T) {
	g := NewGenerator()
	g.instrs = []tac.Instruction{
		tac.FunctionDef("main"),
		tac.Param("t0"),
		tac.Call("t1", "f", 2),
		tac.EndFunc(),
	}
	g.validateCallParams()
	hasDiagContaining(t, diagMessages(g), "expects 2 preceding param(s), found 1")
}

func TestValidateCallParamsAllowsMatchingCount(t *testing.T) {
	g := NewGenerator()
	g.instrs = []tac.Instruction{
		tac.FunctionDef("main"),
		tac.Param("t0"),
		tac.Param("t1"),
		tac.Call("t2", "f", 2),
		tac.EndFunc(),
	}
	g.validateCallParams()
	if msgs := diagMessages(g); len(msgs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", msgs)
	}
}

// A return directly following another return with no intervening label
// is dead code a correct generator should never emit.
func TestValidateReachableReturnCatchesDoubleReturn(t *testing.T) {
	g := NewGenerator()
	g.instrs = []tac.Instruction{
		tac.FunctionDef("f"),
		tac.Return("1"),
		tac.Return("2"),
		tac.EndFunc(),
	}
	g.validateReachableReturn()
	hasDiagContaining(t, diagMessages(g), "return is unreachable")
}

func TestValidateReachableReturnAllowsReturnAfterLabel(t *testing.T) {
	g := NewGenerator()
	g.instrs = []tac.Instruction{
		tac.FunctionDef("f"),
		tac.Goto("done"),
		tac.Label("done"),
		tac.Return("1"),
		tac.EndFunc(),
	}
	g.validateReachableReturn()
	if msgs := diagMessages(g); len(msgs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", msgs)
	}
}
