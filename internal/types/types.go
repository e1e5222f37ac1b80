// Package types implements the CompilScript type model: primitives, class
// types, and array types, together with the compatibility, promotion, and
// subclass rules that the semantic analyzer and TAC generator both depend
// on. A *ClassType is shared across the scope tree built during analysis;
// its Meta is filled in after construction (and its field offsets later by
// the memory annotator), so every holder sees the same class data.
package types

import (
	"fmt"
	"strings"
)

// Kind enumerates the broad category a Type belongs to.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindString
	KindBoolean
	KindVoid
	KindClass
	KindArray
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "INTEGER"
	case KindFloat:
		return "FLOAT"
	case KindString:
		return "STRING"
	case KindBoolean:
		return "BOOLEAN"
	case KindVoid:
		return "VOID"
	case KindClass:
		return "CLASS"
	case KindArray:
		return "ARRAY"
	case KindNull:
		return "NULL"
	default:
		return "UNKNOWN"
	}
}

// Type is implemented by every concrete type in the language.
type Type interface {
	Kind() Kind
	String() string
	Equals(other Type) bool
}

// Primitive covers INTEGER, FLOAT, STRING, BOOLEAN, VOID.
type Primitive struct {
	kind Kind
}

func (p *Primitive) Kind() Kind   { return p.kind }
func (p *Primitive) String() string { return p.kind.String() }
func (p *Primitive) Equals(other Type) bool {
	o, ok := other.(*Primitive)
	return ok && o.kind == p.kind
}

var (
	INTEGER = &Primitive{kind: KindInteger}
	FLOAT   = &Primitive{kind: KindFloat}
	STRING  = &Primitive{kind: KindString}
	BOOLEAN = &Primitive{kind: KindBoolean}
	VOID    = &Primitive{kind: KindVoid}
)

// IsNumeric reports whether t is INTEGER or FLOAT.
func IsNumeric(t Type) bool {
	p, ok := t.(*Primitive)
	return ok && (p.kind == KindInteger || p.kind == KindFloat)
}

// NullType is the distinct nullable-reference tag produced by the `null`
// literal. It is compatible with any class or array type on assignment
// only (spec §3.1).
type NullType struct{}

func (n *NullType) Kind() Kind     { return KindNull }
func (n *NullType) String() string { return "NULL" }
func (n *NullType) Equals(other Type) bool {
	_, ok := other.(*NullType)
	return ok
}

// NULL is the single shared instance of NullType.
var NULL = &NullType{}

// ClassType identifies a declared class, preserving original casing.
// A ClassType does not itself carry fields/methods — ClassMeta
// (classmeta.go) does — so that two ClassType values referring to the
// same class compare equal by name without dragging the whole
// class body along.
type ClassType struct {
	Name string
	Meta *ClassMeta // filled in once the class body is processed
}

func (c *ClassType) Kind() Kind     { return KindClass }
func (c *ClassType) String() string { return c.Name }
func (c *ClassType) Equals(other Type) bool {
	o, ok := other.(*ClassType)
	return ok && o.Name == c.Name
}

// ArrayType is an array of Element with Rank dimensions (Rank >= 1).
type ArrayType struct {
	Element Type
	Rank    int
}

func (a *ArrayType) Kind() Kind { return KindArray }
func (a *ArrayType) String() string {
	return fmt.Sprintf("%s%s", a.Element.String(), strings.Repeat("[]", a.Rank))
}
func (a *ArrayType) Equals(other Type) bool {
	o, ok := other.(*ArrayType)
	return ok && o.Rank == a.Rank && o.Element.Equals(a.Element)
}

// NewArrayType builds an ArrayType, collapsing nested arrays into a single
// higher-rank array (Array[Array[E,1],1] == Array[E,2]).
func NewArrayType(element Type, rank int) *ArrayType {
	if nested, ok := element.(*ArrayType); ok {
		return &ArrayType{Element: nested.Element, Rank: rank + nested.Rank}
	}
	return &ArrayType{Element: element, Rank: rank}
}

// ErrNotAnArray is returned by ElementType when called on a non-array type.
type ErrNotAnArray struct {
	Type Type
}

func (e *ErrNotAnArray) Error() string {
	return fmt.Sprintf("type %s is not an array", e.Type.String())
}

// ErrHeterogeneousArray is returned by UnifyArrayElements when no common
// element type can be derived for an array literal.
type ErrHeterogeneousArray struct {
	Types []Type
}

func (e *ErrHeterogeneousArray) Error() string {
	names := make([]string, len(e.Types))
	for i, t := range e.Types {
		names[i] = t.String()
	}
	return fmt.Sprintf("heterogeneous array literal: %s", strings.Join(names, ", "))
}
