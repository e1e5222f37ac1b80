// Package memaddr implements the memory annotator of spec §4.5: given the
// scope tree and class registry a semantic.Analyzer produced, it assigns
// every symbol and every class field a deterministic storage address —
// global[N], stack[±N], heap+N, or param[N] — recorded on each symbol's
// Storage and each class field's Offset. The TAC generator
// (internal/tacgen) names variables and fields directly and does not read
// these addresses.
//
// Annotate is idempotent: running it twice over the same scope tree
// produces the same offsets both times (spec's testable property #10),
// because every allocator here is a plain monotonic counter seeded fresh
// on each call, not state carried across calls.
package memaddr

import (
	"github.com/compilscript/core/internal/symtab"
	"github.com/compilscript/core/internal/tac"
	"github.com/compilscript/core/internal/types"
)

// Annotator walks a scope tree and class registry, assigning storage.
type Annotator struct{}

// NewAnnotator returns a fresh annotator. It carries no state between
// calls to Annotate.
func NewAnnotator() *Annotator {
	return &Annotator{}
}

// Annotate assigns storage to the global scope's variables and constants,
// to every parameter, variable and constant of a function or method scope
// (including its nested scopes), and to every field of every class in
// classes. Variables declared in a block, loop, switch-case or catch scope
// outside any function or method get no storage and keep the "none"
// address.
func (a *Annotator) Annotate(global *symtab.Scope, classes map[string]*types.ClassType) {
	a.annotateGlobal(global)
	a.annotateClasses(classes)
}

// annotateGlobal assigns global[N] to every top-level VARIABLE/CONSTANT,
// then descends into every FUNCTION/METHOD scope reachable from it to
// assign param[N]/stack[±N] storage within that activation record.
func (a *Annotator) annotateGlobal(global *symtab.Scope) {
	region := tac.NewGlobalRegion()
	for _, sym := range global.Symbols() {
		switch sym.Kind {
		case symtab.VARIABLE, symtab.CONSTANT:
			sym.Storage = symtab.Storage{Kind: "global", Offset: region.Alloc()}
		}
	}
	for _, child := range global.Children() {
		a.annotateScopeTree(child)
	}
}

// annotateScopeTree dispatches a scope to frame-based annotation if it
// opens a new activation record (FUNCTION/METHOD); any other scope is not
// annotated itself, only recursed into (class fields live in ClassMeta,
// not in a scope).
func (a *Annotator) annotateScopeTree(scope *symtab.Scope) {
	switch scope.Kind {
	case symtab.FUNCTION, symtab.METHOD:
		frame := tac.NewFrame()
		a.annotateFrame(scope, frame)
	default:
		for _, child := range scope.Children() {
			a.annotateScopeTree(child)
		}
	}
}

// annotateFrame assigns param[N] to the scope's own PARAMETER symbols
// and stack[±N] to every VARIABLE/CONSTANT reachable within this
// activation record, depth-first through nested BLOCK/LOOP_BODY/
// SWITCH_CASE/CATCH scopes, using one shared Frame so sibling blocks
// never alias each other's slots.
func (a *Annotator) annotateFrame(scope *symtab.Scope, frame *tac.Frame) {
	for _, sym := range scope.Symbols() {
		switch sym.Kind {
		case symtab.PARAMETER:
			sym.Storage = symtab.Storage{Kind: "param", Offset: frame.AllocParam(), Signed: false}
		case symtab.VARIABLE, symtab.CONSTANT:
			sym.Storage = symtab.Storage{Kind: "stack", Offset: frame.AllocLocal(), Signed: true}
		}
	}
	for _, child := range scope.Children() {
		a.annotateFrameScope(child, frame)
	}
}

// annotateFrameScope continues annotation within an already-open frame
// for a nested block-like scope (BLOCK/LOOP_BODY/SWITCH_CASE/CATCH). It
// never opens a new Frame — a nested function or method can't appear
// inside a block, so every descendant here belongs to the same
// activation record.
func (a *Annotator) annotateFrameScope(scope *symtab.Scope, frame *tac.Frame) {
	for _, sym := range scope.Symbols() {
		switch sym.Kind {
		case symtab.VARIABLE, symtab.CONSTANT:
			sym.Storage = symtab.Storage{Kind: "stack", Offset: frame.AllocLocal(), Signed: true}
		}
	}
	for _, child := range scope.Children() {
		a.annotateFrameScope(child, frame)
	}
}

// annotateClasses assigns heap+N offsets to every class's own fields,
// inheriting the ancestor's field-count prefix so a subclass instance's
// inherited fields sit at the same offsets the ancestor itself uses
// (spec §4.5). Classes are processed in an order that guarantees every
// superclass is laid out before its subclasses.
func (a *Annotator) annotateClasses(classes map[string]*types.ClassType) {
	done := make(map[string]bool, len(classes))
	var layout func(ct *types.ClassType) int // returns total field count after layout
	layout = func(ct *types.ClassType) int {
		if ct == nil || ct.Meta == nil {
			return 0
		}
		if done[ct.Name] {
			return len(ct.Meta.AllFields())
		}
		inherited := 0
		if ct.Meta.Super != nil {
			inherited = layout(ct.Meta.Super)
		}
		region := tac.NewClassLayout(inherited)
		for i := range ct.Meta.Fields {
			ct.Meta.Fields[i].Offset = region.AllocField()
		}
		done[ct.Name] = true
		return inherited + len(ct.Meta.Fields)
	}
	for _, ct := range classes {
		layout(ct)
	}
}
