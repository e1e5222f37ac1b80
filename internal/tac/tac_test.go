package tac

import "testing"

func TestInstructionStringForms(t *testing.T) {
	cases := []struct {
		instr Instruction
		want  string
	}{
		{Binary("t0", "a", "+", "b"), "t0 = a + b"},
		{Unary("t1", "-", "a"), "t1 = -a"},
		{Copy("x", "t0"), "x = t0"},
		{IndexLoad("t2", "arr", "i"), "t2 = arr[i]"},
		{IndexStore("arr", "i", "t2"), "arr[i] = t2"},
		{FieldLoad("t3", "obj", "field"), "t3 = obj.field"},
		{FieldStore("obj", "field", "t3"), "obj.field = t3"},
		{Goto("L0"), "goto L0"},
		{If("cond", "L1"), "if cond goto L1"},
		{IfFalse("cond", "L1"), "ifFalse cond goto L1"},
		{IfRelop("a", "<", "b", "L2"), "if a < b goto L2"},
		{Param("x"), "param x"},
		{Call("t4", "f", 2), "t4 = call f, 2"},
		{Call("", "f", 0), "call f, 0"},
		{New("t5", "C"), "t5 = new C"},
		{NewArray("t6", "3"), "t6 = new_array[3]"},
		{Return("x"), "return x"},
		{Return(""), "return"},
		{Label("L0"), "L0:"},
		{FunctionDef("main"), "@function main"},
		{EndFunc(), "endfunc"},
	}
	for _, c := range cases {
		if got := c.instr.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestTempPoolRecyclesLIFO(t *testing.T) {
	p := NewTempPool()
	a := p.Alloc()
	b := p.Alloc()
	if p.Peak() != 2 {
		t.Fatalf("peak = %d, want 2", p.Peak())
	}
	p.Free(b)
	c := p.Alloc()
	if c != b {
		t.Errorf("expected LIFO reuse of %q, got %q", b, c)
	}
	p.Free(c)
	p.Free(a)
	if p.Peak() != 2 {
		t.Errorf("peak should stay at its high-water mark, got %d", p.Peak())
	}
	if p.TotalAllocated() != 3 {
		t.Errorf("TotalAllocated() = %d, want 3 (never recycled)", p.TotalAllocated())
	}
}

func TestLabelGenNeverRepeats(t *testing.T) {
	g := NewLabelGen()
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		for _, prefix := range []string{"else", "end", "loop"} {
			l := g.Fresh(prefix)
			if seen[l] {
				t.Fatalf("label %q generated twice", l)
			}
			seen[l] = true
		}
	}
}

func TestFrameOffsets(t *testing.T) {
	f := NewFrame()
	if p0 := f.AllocParam(); p0 != 2 {
		t.Errorf("first param offset = %d, want 2", p0)
	}
	if p1 := f.AllocParam(); p1 != 3 {
		t.Errorf("second param offset = %d, want 3", p1)
	}
	if l0 := f.AllocLocal(); l0 != -1 {
		t.Errorf("first local offset = %d, want -1", l0)
	}
	if l1 := f.AllocLocal(); l1 != -2 {
		t.Errorf("second local offset = %d, want -2", l1)
	}
	if size := f.Size(3); size != 2+2+3 {
		t.Errorf("Size(3) = %d, want %d", size, 2+2+3)
	}
}

func TestClassLayoutInheritsPrefix(t *testing.T) {
	base := NewClassLayout(0)
	if o := base.AllocField(); o != 0 {
		t.Errorf("base field offset = %d, want 0", o)
	}
	if o := base.AllocField(); o != 1 {
		t.Errorf("base field offset = %d, want 1", o)
	}
	derived := NewClassLayout(2)
	if o := derived.AllocField(); o != 2 {
		t.Errorf("derived field offset = %d, want 2 (after inherited prefix)", o)
	}
}
