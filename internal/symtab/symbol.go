// Package symtab implements the hierarchical symbol table of spec §3.2 and
// §4.2: scopes own a local name-to-symbol mapping and a list of child
// scopes, referencing their parent non-owningly. Scopes are held in an
// arena indexed by integer handle (spec §9 design note) so that
// Scope.parent can be "none" without a nil *Scope special case, and so
// the whole tree can be serialized and walked without pointer-chasing
// ownership cycles.
package symtab

import (
	"fmt"

	"github.com/compilscript/core/internal/token"
	"github.com/compilscript/core/internal/types"
)

// Kind enumerates symbol kinds (spec §3.2).
type Kind int

const (
	VARIABLE Kind = iota
	CONSTANT
	PARAMETER
	FUNCTION
	METHOD
	CLASS
	FIELD
)

func (k Kind) String() string {
	switch k {
	case VARIABLE:
		return "VARIABLE"
	case CONSTANT:
		return "CONSTANT"
	case PARAMETER:
		return "PARAMETER"
	case FUNCTION:
		return "FUNCTION"
	case METHOD:
		return "METHOD"
	case CLASS:
		return "CLASS"
	case FIELD:
		return "FIELD"
	default:
		return "UNKNOWN"
	}
}

// Storage is filled in by the memory annotator (internal/memaddr). It is
// left zero-valued ("none") until annotation runs.
type Storage struct {
	// Kind is one of "global", "stack", "heap", "param", or "" (none).
	Kind   string
	Offset int
	// Signed records whether Offset is a signed frame offset (true for
	// stack locals, false for parameters). String does not consult it:
	// "stack" offsets are always rendered with an explicit sign.
	Signed bool
}

// String renders the storage descriptor in the address-string format of
// spec §6 ("global[N]", "stack[±N]", "heap+N", "param[N]", "none").
func (s Storage) String() string {
	switch s.Kind {
	case "global":
		return fmt.Sprintf("global[%d]", s.Offset)
	case "param":
		return fmt.Sprintf("param[%d]", s.Offset)
	case "heap":
		return fmt.Sprintf("heap+%d", s.Offset)
	case "stack":
		if s.Offset >= 0 {
			return fmt.Sprintf("stack[+%d]", s.Offset)
		}
		return fmt.Sprintf("stack[%d]", s.Offset)
	default:
		return "none"
	}
}

// ParamInfo describes one formal parameter of a function or method symbol.
type ParamInfo struct {
	Name string
	Type types.Type
}

// Symbol records everything spec §3.2 requires of a declared entity.
type Symbol struct {
	Name        string
	Kind        Kind
	Type        types.Type
	Mutable     bool
	Pos         token.Position
	Storage     Storage

	// Function/method symbols only.
	Params     []ParamInfo
	ReturnType types.Type

	// Class symbols only.
	Meta *types.ClassMeta
}
