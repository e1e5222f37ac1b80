package types

// FieldInfo is one entry of a ClassMeta's ordered field list. Offset is
// left zero until the memory annotator (internal/memaddr) runs; it then
// holds the field's heap offset within an instance (spec §4.5).
type FieldInfo struct {
	Name   string
	Type   Type
	Offset int
}

// MethodInfo describes a method's signature for override-compatibility
// checks and call resolution.
type MethodInfo struct {
	Name       string
	Params     []Type
	ReturnType Type
}

// ClassMeta is the metadata record for a declared class (spec §3.3).
// Fields and Methods are ordered slices (not maps) so that field-offset
// assignment in the memory annotator (internal/memaddr) is deterministic
// and independent of map iteration order.
type ClassMeta struct {
	Name             string
	Super            *ClassType // nil for a root class
	Fields           []FieldInfo
	Methods          []MethodInfo
	HasUserCtor      bool
}

// FindField looks up a field by name in this class or any ancestor,
// returning the field's type.
func (c *ClassMeta) FindField(name string) (Type, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	if c.Super != nil && c.Super.Meta != nil {
		return c.Super.Meta.FindField(name)
	}
	return nil, false
}

// FindFieldInfo is FindField but returns the full FieldInfo (including
// its annotated Offset), for callers that need addressing information
// rather than just the type.
func (c *ClassMeta) FindFieldInfo(name string) (*FieldInfo, bool) {
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return &c.Fields[i], true
		}
	}
	if c.Super != nil && c.Super.Meta != nil {
		return c.Super.Meta.FindFieldInfo(name)
	}
	return nil, false
}

// FindMethod looks up a method by name in this class or any ancestor.
func (c *ClassMeta) FindMethod(name string) (*MethodInfo, bool) {
	for i := range c.Methods {
		if c.Methods[i].Name == name {
			return &c.Methods[i], true
		}
	}
	if c.Super != nil && c.Super.Meta != nil {
		return c.Super.Meta.FindMethod(name)
	}
	return nil, false
}

// OwnsMethod reports whether this class (not an ancestor) declares name.
func (c *ClassMeta) OwnsMethod(name string) bool {
	for _, m := range c.Methods {
		if m.Name == name {
			return true
		}
	}
	return false
}

// AllFields returns the class's own fields prefixed by every ancestor's
// fields, oldest ancestor first — the layout order the memory annotator
// assigns heap offsets in (spec §4.5: "inheriting the parent's field
// prefix layout").
func (c *ClassMeta) AllFields() []FieldInfo {
	var all []FieldInfo
	if c.Super != nil && c.Super.Meta != nil {
		all = append(all, c.Super.Meta.AllFields()...)
	}
	return append(all, c.Fields...)
}
