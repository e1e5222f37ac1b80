package tac

// Frame models one activation record (spec §4.5): parameters live at
// positive offsets from the frame pointer, locals and temporaries at
// negative offsets. Offset 0 is reserved for the saved frame pointer and
// offset 1 for the saved return address, so the first parameter starts
// at 2 and the first local at -1.
type Frame struct {
	nextParam int
	nextLocal int
}

// NewFrame returns an empty frame with its saved-FP/saved-RA slots
// already accounted for.
func NewFrame() *Frame {
	return &Frame{nextParam: 2, nextLocal: -1}
}

// AllocParam reserves the next parameter slot and returns its offset.
func (f *Frame) AllocParam() int {
	o := f.nextParam
	f.nextParam++
	return o
}

// AllocLocal reserves the next local-variable slot and returns its
// (negative) offset.
func (f *Frame) AllocLocal() int {
	o := f.nextLocal
	f.nextLocal--
	return o
}

// TempBase returns the offset the temp spill region should start at:
// immediately below the last allocated local.
func (f *Frame) TempBase() int {
	return f.nextLocal
}

// Size returns the total number of stack slots the frame occupies,
// given the peak simultaneous temp count from a tac.TempPool — the
// quantity the caller's prologue uses to adjust the stack pointer.
func (f *Frame) Size(tempPeak int) int {
	return (f.nextParam - 2) + (-f.nextLocal - 1) + tempPeak
}

// GlobalRegion assigns flat, monotonically increasing offsets to
// top-level (global-scope) variables and constants (spec §4.5 "a flat
// global region").
type GlobalRegion struct {
	next int
}

// NewGlobalRegion returns an empty global region.
func NewGlobalRegion() *GlobalRegion {
	return &GlobalRegion{}
}

// Alloc reserves the next global slot and returns its offset.
func (g *GlobalRegion) Alloc() int {
	o := g.next
	g.next++
	return o
}

// ClassLayout assigns left-to-right heap offsets to a class's fields,
// one unit per field, inheriting the ancestor's field prefix so a
// subclass instance can be read through either its own or its parent's
// field offsets (spec §4.5 "inheriting the parent's field prefix
// layout"). Field widths are uniform: CompilScript has no packed/union
// layout requirement, so one offset unit per field keeps addressing
// trivial to verify and matches the reference's own flat slot layout
// for interpreted (non-FFI) field storage.
type ClassLayout struct {
	next int
}

// NewClassLayout starts a layout at offset 0, or at inherited if this
// class extends another (pass the ancestor's already-allocated field
// count as inherited to continue the offset sequence after it).
func NewClassLayout(inherited int) *ClassLayout {
	return &ClassLayout{next: inherited}
}

// AllocField reserves the next heap offset for one field.
func (c *ClassLayout) AllocField() int {
	o := c.next
	c.next++
	return o
}
