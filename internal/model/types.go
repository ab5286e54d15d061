// Package model defines the declaration tree the binding generator walks.
package model

import "strings"

// Visibility is a declaration's own visibility marker.
type Visibility int

const (
	Private    Visibility = iota // no marker
	Public                       // pub
	Restricted                   // pub(crate), pub(super), pub(in path)
)

// IsPublic reports whether the marker is a plain public marker.
// Restricted visibility does not count.
func (v Visibility) IsPublic() bool {
	return v == Public
}

func (v Visibility) String() string {
	switch v {
	case Public:
		return "pub"
	case Restricted:
		return "pub(restricted)"
	default:
		return "private"
	}
}

// Item is one declaration: *Function, *Struct or *Module.
type Item interface {
	ItemName() string
	ItemVisibility() Visibility
	item()
}

// Function is a free function declaration.
type Function struct {
	Name       string
	Visibility Visibility
	Params     []Param
	Return     *TypeRef // nil when the function returns nothing
}

// Param is a typed function parameter.
type Param struct {
	Name string
	Type TypeRef
}

// Struct is a plain data struct. Positional fields are never part of
// Fields; only their count is kept.
type Struct struct {
	Name          string
	Visibility    Visibility
	Fields        []Field
	UnnamedFields int
	HasDefault    bool // derives Default or has an impl Default in the same item list
}

// Field is a named struct field.
type Field struct {
	Name string
	Type TypeRef
}

// Module is a module declaration. Items is nil for an external module
// (declared as `mod name;`).
type Module struct {
	Name       string
	Visibility Visibility
	Inline     bool
	Items      []Item
}

func (f *Function) ItemName() string           { return f.Name }
func (f *Function) ItemVisibility() Visibility { return f.Visibility }
func (*Function) item()                        {}

func (s *Struct) ItemName() string           { return s.Name }
func (s *Struct) ItemVisibility() Visibility { return s.Visibility }
func (*Struct) item()                        {}

func (m *Module) ItemName() string           { return m.Name }
func (m *Module) ItemVisibility() Visibility { return m.Visibility }
func (*Module) item()                        {}

// IsExternal reports whether the module body must be loaded from storage.
func (m *Module) IsExternal() bool {
	return !m.Inline
}

// TypeKind represents the category of a source type.
type TypeKind string

const (
	KindPath      TypeKind = "path"      // i32, String, Vec<T>, std::string::String
	KindReference TypeKind = "reference" // &T, &mut T
	KindPointer   TypeKind = "pointer"   // *const T, *mut T
	KindTuple     TypeKind = "tuple"     // (A, B), ()
	KindSlice     TypeKind = "slice"     // [T]
	KindArray     TypeKind = "array"     // [T; N]
	KindFn        TypeKind = "fn"        // fn(A) -> B
	KindOther     TypeKind = "other"     // impl Trait, dyn Trait, !, _
)

// TypeRef represents a reference to a source type.
type TypeRef struct {
	Kind     TypeKind
	Segments []string  // path segments (for paths)
	Args     []TypeRef // generic arguments of the last segment, tuple elements
	Elem     *TypeRef  // referenced/pointed-to/element type
	Mutable  bool      // &mut / *mut
	Raw      string    // source text representation
}

// Ident returns the last path segment, or "" for non-path types.
func (t TypeRef) Ident() string {
	if t.Kind != KindPath || len(t.Segments) == 0 {
		return ""
	}
	return t.Segments[len(t.Segments)-1]
}

// FullName returns the full qualified path (e.g., "std::string::String").
func (t TypeRef) FullName() string {
	return strings.Join(t.Segments, "::")
}

// String returns the raw source text.
func (t TypeRef) String() string {
	return t.Raw
}

// Path builds a path TypeRef from "::"-separated text. Generic arguments
// are not parsed; use the parser for anything beyond a plain path.
func Path(path string) TypeRef {
	return TypeRef{Kind: KindPath, Segments: strings.Split(path, "::"), Raw: path}
}

// Ref builds a reference to elem.
func Ref(elem TypeRef, mutable bool) TypeRef {
	raw := "&" + elem.Raw
	if mutable {
		raw = "&mut " + elem.Raw
	}
	return TypeRef{Kind: KindReference, Elem: &elem, Mutable: mutable, Raw: raw}
}
