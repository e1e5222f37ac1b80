package tac

import "fmt"

// TempPool allocates and recycles temporary names (`t0`, `t1`, ...). It
// recycles via a LIFO free-list, which is what gives straight-line code
// the Ershov-optimal peak temp count (spec §4.4, "Ershov-optimal
// temporary recycling"): the most recently freed temp is always the
// first one handed back out, so sibling subexpressions reuse a slot
// instead of growing the watermark.
type TempPool struct {
	next    int
	free    []int // LIFO stack of recyclable temp numbers
	peak    int
	everAllocated int // diagnostic counter, never recycled (testable property #3)
}

// NewTempPool returns an empty pool.
func NewTempPool() *TempPool {
	return &TempPool{}
}

// Alloc returns a fresh or recycled temporary name.
func (p *TempPool) Alloc() string {
	p.everAllocated++
	var n int
	if len(p.free) > 0 {
		n = p.free[len(p.free)-1]
		p.free = p.free[:len(p.free)-1]
	} else {
		n = p.next
		p.next++
	}
	if live := p.next - len(p.free); live > p.peak {
		p.peak = live
	}
	return fmt.Sprintf("t%d", n)
}

// Free returns a temporary to the pool for reuse. Freeing a name that
// was never allocated, or freeing it twice, is a caller bug; Free does
// not attempt to detect it, matching the generator's own discipline of
// freeing exactly once per value it has finished consuming.
func (p *TempPool) Free(name string) {
	var n int
	if _, err := fmt.Sscanf(name, "t%d", &n); err != nil {
		return
	}
	p.free = append(p.free, n)
}

// Peak returns the largest number of temporaries ever live
// simultaneously — the quantity the activation record sizes its spill
// region by (spec §4.5).
func (p *TempPool) Peak() int {
	return p.peak
}

// TotalAllocated returns how many distinct Alloc calls were made,
// counting recycled reuses individually. This is strictly for
// diagnostics/testing; it never informs addressing decisions.
func (p *TempPool) TotalAllocated() int {
	return p.everAllocated
}
