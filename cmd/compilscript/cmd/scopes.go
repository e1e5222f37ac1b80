package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/compilscript/core/internal/symtab"
	"github.com/compilscript/core/pkg/compilscript"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

var scopesCmd = &cobra.Command{
	Use:   "scopes [program.json]",
	Short: "Dump the resolved scope tree as JSON",
	Long: `Run semantic analysis and print the resulting scope tree in the
{ name, kind, symbols, children } layout.

Examples:
  compilscript scopes program.json`,
	Args: cobra.ExactArgs(1),
	RunE: runScopes,
}

func init() {
	rootCmd.AddCommand(scopesCmd)
}

func runScopes(_ *cobra.Command, args []string) error {
	filename := args[0]
	program, err := loadProgram(filename)
	if err != nil {
		return err
	}

	source, _ := os.ReadFile(filename)
	report := compilscript.Compile(string(source), program, compilscript.Options{})
	if !report.OK || report.Scopes == nil {
		return fmt.Errorf("semantic analysis failed; no scope tree available")
	}

	out, err := scopeNodeJSON(*report.Scopes)
	if err != nil {
		return fmt.Errorf("failed to render scope tree: %w", err)
	}
	fmt.Println(out)
	return nil
}

// scopeNodeJSON mirrors internal/symtab.Scope.ToJSON, but over the
// already-parsed ScopeNode tree the public API hands back, using sjson
// the same way the rest of this module builds JSON by hand.
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
