package types

// CompatibleAssign reports whether a value of type actual may be assigned
// to a location of type target (spec §3.1, §4.1: "A ← B = B is
// assignable to A"). Mirrors the reference compiler's canAssign, but
// CompilScript has no variants, interfaces, or metaclasses to fold in.
func CompatibleAssign(target, actual Type) bool {
	if target == nil || actual == nil {
		return false
	}
	if target.Equals(actual) {
		return true
	}

	// null -> any class or array type.
	if _, isNull := actual.(*NullType); isNull {
		switch target.Kind() {
		case KindClass, KindArray:
			return true
		}
		return false
	}

	// INTEGER -> FLOAT widening, never the reverse.
	if ip, ok := actual.(*Primitive); ok && ip.kind == KindInteger {
		if tp, ok := target.(*Primitive); ok && tp.kind == KindFloat {
			return true
		}
	}

	// Class upcasting: U assignable to T iff U == T or U inherits from T.
	if tc, ok := target.(*ClassType); ok {
		if ac, ok := actual.(*ClassType); ok {
			return IsSubclass(ac, tc)
		}
		return false
	}

	// Arrays are invariant on element type except for the numeric
	// widening / class upcasting carve-out (spec §3.1).
	if ta, ok := target.(*ArrayType); ok {
		aa, ok := actual.(*ArrayType)
		if !ok || aa.Rank != ta.Rank {
			return false
		}
		return elementCompatible(ta.Element, aa.Element)
	}

	return false
}

// elementCompatible applies the array element rule: identical, or
// numeric widening, or class upcasting.
func elementCompatible(target, actual Type) bool {
	if target.Equals(actual) {
		return true
	}
	if ip, ok := actual.(*Primitive); ok && ip.kind == KindInteger {
		if tp, ok := target.(*Primitive); ok && tp.kind == KindFloat {
			return true
		}
	}
	if tc, ok := target.(*ClassType); ok {
		if ac, ok := actual.(*ClassType); ok {
			return IsSubclass(ac, tc)
		}
	}
	return false
}

// ErrIncompatibleOperands is returned by PromoteNumeric when either
// operand is not numeric.
type ErrIncompatibleOperands struct {
	A, B Type
}

func (e *ErrIncompatibleOperands) Error() string {
	return "operands " + e.A.String() + " and " + e.B.String() + " are not both numeric"
}

// PromoteNumeric implements the arithmetic promotion law of spec §3.1 and
// testable property #8: the result is FLOAT if either operand is FLOAT,
// else INTEGER.
func PromoteNumeric(a, b Type) (Type, error) {
	if !IsNumeric(a) || !IsNumeric(b) {
		return nil, &ErrIncompatibleOperands{A: a, B: b}
	}
	if a.Kind() == KindFloat || b.Kind() == KindFloat {
		return FLOAT, nil
	}
	return INTEGER, nil
}

// IsSubclass reports whether child is ancestor or transitively inherits
// from it (testable property #9: reflexive and transitive).
func IsSubclass(child, ancestor *ClassType) bool {
	if child == nil || ancestor == nil {
		return false
	}
	cur := child
	for cur != nil {
		if cur.Name == ancestor.Name {
			return true
		}
		if cur.Meta == nil {
			return false
		}
		cur = cur.Meta.Super
	}
	return false
}

// ElementType returns the element type of an array with its rank reduced
// by one, per spec §4.1. Indexing a rank-1 array yields the bare element
// type; indexing a higher-rank array yields an array of rank-1 less.
func ElementType(t Type) (Type, error) {
	a, ok := t.(*ArrayType)
	if !ok || a.Rank < 1 {
		return nil, &ErrNotAnArray{Type: t}
	}
	if a.Rank == 1 {
		return a.Element, nil
	}
	return &ArrayType{Element: a.Element, Rank: a.Rank - 1}, nil
}

// UnifyArrayElements computes the least type every element in types is
// assignable to, by successive pairwise widening (spec §4.1). An empty
// slice is not valid input — callers resolve the empty-literal case
// themselves using contextual type information.
func UnifyArrayElements(elems []Type) (Type, error) {
	if len(elems) == 0 {
		return nil, &ErrHeterogeneousArray{}
	}
	result := elems[0]
	for _, t := range elems[1:] {
		widened, ok := widen(result, t)
		if !ok {
			return nil, &ErrHeterogeneousArray{Types: elems}
		}
		result = widened
	}
	return result, nil
}

// widen returns the least of a, b that the other is assignable to, or
// false if neither direction holds.
func widen(a, b Type) (Type, bool) {
	if a.Equals(b) {
		return a, true
	}
	if CompatibleAssign(a, b) {
		return a, true
	}
	if CompatibleAssign(b, a) {
		return b, true
	}
	return nil, false
}
