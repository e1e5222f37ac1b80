package types

import "testing"

func classOf(name string, super *ClassType) *ClassType {
	ct := &ClassType{Name: name}
	ct.Meta = &ClassMeta{Name: name, Super: super}
	return ct
}

func TestCompatibleAssignPrimitives(t *testing.T) {
	tests := []struct {
		name     string
		target   Type
		actual   Type
		expected bool
	}{
		{"identical integers", INTEGER, INTEGER, true},
		{"int to float widening", FLOAT, INTEGER, true},
		{"float to int rejected", INTEGER, FLOAT, false},
		{"string to string", STRING, STRING, true},
		{"bool to int rejected", INTEGER, BOOLEAN, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompatibleAssign(tt.target, tt.actual); got != tt.expected {
				t.Errorf("CompatibleAssign(%s, %s) = %v, want %v", tt.target, tt.actual, got, tt.expected)
			}
		})
	}
}

func TestCompatibleAssignClasses(t *testing.T) {
	animal := classOf("Animal", nil)
	dog := classOf("Dog", animal)
	cat := classOf("Cat", animal)

	if !CompatibleAssign(animal, dog) {
		t.Error("Dog should be assignable to Animal")
	}
	if CompatibleAssign(dog, animal) {
		t.Error("Animal should not be assignable to Dog")
	}
	if CompatibleAssign(dog, cat) {
		t.Error("Cat should not be assignable to Dog")
	}
	if !CompatibleAssign(animal, NULL) {
		t.Error("null should be assignable to a class type")
	}
}

func TestCompatibleAssignArrays(t *testing.T) {
	animal := classOf("Animal", nil)
	dog := classOf("Dog", animal)

	arrAnimal := NewArrayType(animal, 1)
	arrDog := NewArrayType(dog, 1)
	arrAnimal2D := NewArrayType(animal, 2)

	if !CompatibleAssign(arrAnimal, arrDog) {
		t.Error("Dog[] should be assignable to Animal[] (covariant upcast carve-out)")
	}
	if CompatibleAssign(arrAnimal, arrAnimal2D) {
		t.Error("rank mismatch must not be compatible")
	}

	arrInt := NewArrayType(INTEGER, 1)
	arrFloat := NewArrayType(FLOAT, 1)
	if !CompatibleAssign(arrFloat, arrInt) {
		t.Error("Integer[] should be assignable to Float[] via numeric widening")
	}
}

func TestPromoteNumeric(t *testing.T) {
	tests := []struct {
		a, b Type
		want Type
	}{
		{INTEGER, INTEGER, INTEGER},
		{INTEGER, FLOAT, FLOAT},
		{FLOAT, INTEGER, FLOAT},
		{FLOAT, FLOAT, FLOAT},
	}
	for _, tt := range tests {
		got, err := PromoteNumeric(tt.a, tt.b)
		if err != nil {
			t.Fatalf("PromoteNumeric(%s, %s) returned error: %v", tt.a, tt.b, err)
		}
		if !got.Equals(tt.want) {
			t.Errorf("PromoteNumeric(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}

	if _, err := PromoteNumeric(STRING, INTEGER); err == nil {
		t.Error("expected error promoting a non-numeric operand")
	}
}

func TestIsSubclassReflexiveTransitive(t *testing.T) {
	a := classOf("A", nil)
	b := classOf("B", a)
	c := classOf("C", b)

	if !IsSubclass(a, a) {
		t.Error("IsSubclass should be reflexive")
	}
	if !IsSubclass(c, b) || !IsSubclass(b, a) {
		t.Fatal("setup invariant broken")
	}
	if !IsSubclass(c, a) {
		t.Error("IsSubclass should be transitive")
	}
}

func TestElementType(t *testing.T) {
	arr2D := NewArrayType(INTEGER, 2)
	mid, err := ElementType(arr2D)
	if err != nil {
		t.Fatal(err)
	}
	if !mid.Equals(NewArrayType(INTEGER, 1)) {
		t.Errorf("expected Integer[], got %s", mid)
	}

	arr1D := NewArrayType(INTEGER, 1)
	elem, err := ElementType(arr1D)
	if err != nil {
		t.Fatal(err)
	}
	if !elem.Equals(INTEGER) {
		t.Errorf("expected Integer, got %s", elem)
	}

	if _, err := ElementType(INTEGER); err == nil {
		t.Error("expected ErrNotAnArray for a non-array type")
	}
}

func TestUnifyArrayElements(t *testing.T) {
	animal := classOf("Animal", nil)
	dog := classOf("Dog", animal)

	got, err := UnifyArrayElements([]Type{INTEGER, FLOAT, INTEGER})
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equals(FLOAT) {
		t.Errorf("expected Float, got %s", got)
	}

	got, err = UnifyArrayElements([]Type{animal, dog, animal})
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equals(animal) {
		t.Errorf("expected Animal, got %s", got)
	}

	if _, err := UnifyArrayElements([]Type{INTEGER, STRING, BOOLEAN}); err == nil {
		t.Error("expected ErrHeterogeneousArray for incompatible element types")
	}
}

func TestBinaryOpResult(t *testing.T) {
	if r, ok := BinaryOpResult("+", STRING, INTEGER); !ok || !r.Equals(STRING) {
		t.Errorf("string + integer should yield STRING, got %v ok=%v", r, ok)
	}
	if r, ok := BinaryOpResult("+", INTEGER, FLOAT); !ok || !r.Equals(FLOAT) {
		t.Errorf("integer + float should yield FLOAT, got %v ok=%v", r, ok)
	}
	if _, ok := BinaryOpResult("%", FLOAT, INTEGER); ok {
		t.Error("%% requires both operands INTEGER")
	}
	if r, ok := BinaryOpResult("<", INTEGER, FLOAT); !ok || !r.Equals(BOOLEAN) {
		t.Errorf("< between numerics should yield BOOLEAN, got %v ok=%v", r, ok)
	}
	if _, ok := BinaryOpResult("&&", INTEGER, BOOLEAN); ok {
		t.Error("&& requires both operands BOOLEAN")
	}
}
