package symtab

import (
	"testing"

	"github.com/compilscript/core/internal/types"
)

func TestDefineAndLookup(t *testing.T) {
	tbl := NewTable()
	g := tbl.Global()

	if err := g.Define(&Symbol{Name: "x", Kind: VARIABLE, Type: types.INTEGER, Mutable: true}); err != nil {
		t.Fatal(err)
	}

	sym, ok := g.Lookup("x")
	if !ok {
		t.Fatal("expected to find x")
	}
	if !sym.Type.Equals(types.INTEGER) {
		t.Errorf("expected INTEGER, got %s", sym.Type)
	}
}

func TestDuplicateNameSameScope(t *testing.T) {
	tbl := NewTable()
	g := tbl.Global()

	if err := g.Define(&Symbol{Name: "x", Kind: VARIABLE, Type: types.INTEGER}); err != nil {
		t.Fatal(err)
	}
	err := g.Define(&Symbol{Name: "x", Kind: CONSTANT, Type: types.STRING})
	if err == nil {
		t.Fatal("expected ErrDuplicateName for redeclaration regardless of kind")
	}
	if _, ok := err.(*ErrDuplicateName); !ok {
		t.Errorf("expected *ErrDuplicateName, got %T", err)
	}
}

func TestShadowingInnerScope(t *testing.T) {
	tbl := NewTable()
	g := tbl.Global()
	if err := g.Define(&Symbol{Name: "x", Kind: VARIABLE, Type: types.INTEGER}); err != nil {
		t.Fatal(err)
	}

	inner := tbl.Enter(BLOCK, "block")
	if err := inner.Define(&Symbol{Name: "x", Kind: VARIABLE, Type: types.STRING}); err != nil {
		t.Fatalf("shadowing an outer name must not error: %v", err)
	}

	sym, ok := inner.Lookup("x")
	if !ok || !sym.Type.Equals(types.STRING) {
		t.Error("inner scope's x should shadow the outer STRING-less one")
	}

	tbl.Leave()
	sym, ok = g.Lookup("x")
	if !ok || !sym.Type.Equals(types.INTEGER) {
		t.Error("outer x should be untouched after leaving the inner scope")
	}
}

func TestUnresolvedLookupFails(t *testing.T) {
	tbl := NewTable()
	if _, ok := tbl.Global().Lookup("nope"); ok {
		t.Error("expected lookup of an undeclared name to fail")
	}
}

func TestEnterLeaveRestoresCurrent(t *testing.T) {
	tbl := NewTable()
	g := tbl.Global()
	fn := tbl.Enter(FUNCTION, "f")
	if tbl.Current() != fn {
		t.Fatal("Enter should make the new scope current")
	}
	tbl.Leave()
	if tbl.Current() != g {
		t.Fatal("Leave should restore the parent as current")
	}
}

func TestScopeJSONRoundTrip(t *testing.T) {
	tbl := NewTable()
	g := tbl.Global()
	_ = g.Define(&Symbol{
		Name: "x", Kind: VARIABLE, Type: types.INTEGER, Mutable: true,
		Storage: Storage{Kind: "global", Offset: 0},
	})
	child := tbl.Enter(FUNCTION, "main")
	_ = child.Define(&Symbol{
		Name: "n", Kind: PARAMETER, Type: types.INTEGER,
		Storage: Storage{Kind: "param", Offset: 1},
	})
	tbl.Leave()

	json, err := g.ToJSON()
	if err != nil {
		t.Fatal(err)
	}

	node := ParseScopeNode(json)
	if node.Name != "global" || node.Kind != "GLOBAL" {
		t.Fatalf("unexpected root node: %+v", node)
	}
	xSym, ok := node.Symbols["x"]
	if !ok || xSym.Type != "INTEGER" || xSym.Address != "global[0]" {
		t.Errorf("unexpected symbol for x: %+v", xSym)
	}
	if len(node.Children) != 1 || node.Children[0].Name != "main" {
		t.Fatalf("expected one child scope named main, got %+v", node.Children)
	}

	// Re-serializing the parsed structure's source JSON must be stable.
	json2, err := g.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	if json != json2 {
		t.Error("ToJSON must be deterministic across repeated calls")
	}
}

func TestStorageString(t *testing.T) {
	tests := []struct {
		s    Storage
		want string
	}{
		{Storage{}, "none"},
		{Storage{Kind: "global", Offset: 3}, "global[3]"},
		{Storage{Kind: "param", Offset: 1}, "param[1]"},
		{Storage{Kind: "heap", Offset: 8}, "heap+8"},
		{Storage{Kind: "stack", Offset: 4}, "stack[+4]"},
		{Storage{Kind: "stack", Offset: -8}, "stack[-8]"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Storage%+v.String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
