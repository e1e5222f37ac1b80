package tac

import "fmt"

// LabelGen hands out fresh, never-repeating label names. Spec §4.4
// requires "a monotonic counter shared across all prefixes" — two calls
// with different prefixes still produce distinct suffixes, so `Lelse`
// and `Lend` never collide even though they're generated for unrelated
// constructs.
type LabelGen struct {
	counter int
}

// NewLabelGen returns a generator whose counter starts at 0, so its first
// label is "L" + prefix + "0".
func NewLabelGen() *LabelGen {
	return &LabelGen{}
}

// Fresh returns a new label name, prefixed with prefix (e.g. "else",
// "end", "loop") for readability in the emitted listing.
func (g *LabelGen) Fresh(prefix string) string {
	name := fmt.Sprintf("L%s%d", prefix, g.counter)
	g.counter++
	return name
}
