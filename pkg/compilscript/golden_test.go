package compilscript

import (
	"sort"
	"testing"

	"github.com/compilscript/core/internal/ast"
	"github.com/compilscript/core/internal/cst"
	"github.com/compilscript/core/internal/symtab"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/tidwall/sjson"
)

// TestScopesJSONGolden snapshot-tests the Scopes JSON layout for a program
// declaring a small class and a global variable, covering a CLASS symbol
// and the global[N] address internal/memaddr assigns. Class fields do not
// appear in the Scopes JSON.
func TestScopesJSONGolden(t *testing.T) {
	b := cst.NewBuilder()
	prog := b.Program(
		b.Class("Shape", "", []ast.FieldDecl{{Name: "width", Declared: b.TypeName("integer")}}, nil),
		b.VarDecl("x", b.TypeName("integer"), b.Int(1)),
	)
	report := Compile("", prog, Options{AnnotateMemory: true})
	if !report.OK {
		t.Fatalf("expected OK, got: %+v", report.Diagnostics)
	}
	out, err := scopeNodeJSON(*report.Scopes)
	if err != nil {
		t.Fatalf("failed to render scope tree: %v", err)
	}
	snaps.MatchSnapshot(t, out)
}

// scopeNodeJSON mirrors cmd/compilscript/cmd's renderer of the same
// name, rebuilding the wire JSON from the already-parsed ScopeNode tree
// Compile hands back.
func scopeNodeJSON(n symtab.ScopeNode) (string, error) {
	json := "{}"
	var err error
	if json, err = sjson.Set(json, "name", n.Name); err != nil {
		return "", err
	}
	if json, err = sjson.Set(json, "kind", n.Kind); err != nil {
		return "", err
	}
	if json, err = sjson.SetRaw(json, "symbols", "{}"); err != nil {
		return "", err
	}
	names := make([]string, 0, len(n.Symbols))
	for name := range n.Symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sym := n.Symbols[name]
		base := "symbols." + name
		if json, err = sjson.Set(json, base+".type", sym.Type); err != nil {
			return "", err
		}
		if json, err = sjson.Set(json, base+".kind", sym.Kind); err != nil {
			return "", err
		}
		if json, err = sjson.Set(json, base+".mutable", sym.Mutable); err != nil {
			return "", err
		}
		if json, err = sjson.Set(json, base+".address", sym.Address); err != nil {
			return "", err
		}
	}
	if json, err = sjson.SetRaw(json, "children", "[]"); err != nil {
		return "", err
	}
	for _, child := range n.Children {
		childJSON, err := scopeNodeJSON(child)
		if err != nil {
			return "", err
		}
		if json, err = sjson.SetRaw(json, "children.-1", childJSON); err != nil {
			return "", err
		}
	}
	return json, nil
}
