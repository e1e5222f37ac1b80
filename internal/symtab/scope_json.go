package symtab

import (
	"sort"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ToJSON renders s and its descendants in the Scopes JSON layout of spec
// §6: { name, kind, symbols: { name -> {type, kind, mutable, address} },
// children: [...] }. Symbol order within "symbols" is alphabetical so
// that two runs over equal input produce byte-identical JSON (testable
// property #1, determinism) regardless of map iteration order.
func (s *Scope) ToJSON() (string, error) {
	json := "{}"
	var err error
	json, err = sjson.Set(json, "name", s.Name)
	if err != nil {
		return "", err
	}
	json, err = sjson.Set(json, "kind", s.Kind.String())
	if err != nil {
		return "", err
	}
	json, err = sjson.SetRaw(json, "symbols", "{}")
	if err != nil {
		return "", err
	}

	names := make([]string, len(s.order))
	copy(names, s.order)
	sort.Strings(names)

	for _, name := range names {
		sym := s.symbols[name]
		base := "symbols." + name
		typeName := ""
		if sym.Type != nil {
			typeName = sym.Type.String()
		}
		json, err = sjson.Set(json, base+".type", typeName)
		if err != nil {
			return "", err
		}
		json, err = sjson.Set(json, base+".kind", sym.Kind.String())
		if err != nil {
			return "", err
		}
		json, err = sjson.Set(json, base+".mutable", sym.Mutable)
		if err != nil {
			return "", err
		}
		json, err = sjson.Set(json, base+".address", sym.Storage.String())
		if err != nil {
			return "", err
		}
	}

	json, err = sjson.SetRaw(json, "children", "[]")
	if err != nil {
		return "", err
	}
	for _, child := range s.Children() {
		childJSON, err := child.ToJSON()
		if err != nil {
			return "", err
		}
		json, err = sjson.SetRaw(json, "children.-1", childJSON)
		if err != nil {
			return "", err
		}
	}

	return json, nil
}

// ScopeNode is the parsed, in-memory mirror of the Scopes JSON layout,
// used for the round-trip property (#7): a scope tree serialized and
// parsed back yields a structurally identical tree (minus
// ordering-irrelevant maps — here, maps are serialized sorted, so order
// is preserved too).
type ScopeNode struct {
	Name     string
	Kind     string
	Symbols  map[string]SymbolNode
	Children []ScopeNode
}

// SymbolNode is one entry of a ScopeNode's Symbols map.
type SymbolNode struct {
	Type    string
	Kind    string
	Mutable bool
	Address string
}

// ParseScopeNode parses the Scopes JSON layout back into a ScopeNode
// tree using gjson, the read-side counterpart to ToJSON's sjson writes.
func ParseScopeNode(json string) ScopeNode {
	result := gjson.Parse(json)
	return parseScopeResult(result)
}

func parseScopeResult(result gjson.Result) ScopeNode {
	node := ScopeNode{
		Name:    result.Get("name").String(),
		Kind:    result.Get("kind").String(),
		Symbols: make(map[string]SymbolNode),
	}
	result.Get("symbols").ForEach(func(key, value gjson.Result) bool {
		node.Symbols[key.String()] = SymbolNode{
			Type:    value.Get("type").String(),
			Kind:    value.Get("kind").String(),
			Mutable: value.Get("mutable").Bool(),
			Address: value.Get("address").String(),
		}
		return true
	})
	result.Get("children").ForEach(func(_, value gjson.Result) bool {
		node.Children = append(node.Children, parseScopeResult(value))
		return true
	})
	return node
}
