// Package typemap decides how a source type crosses the foreign boundary.
package typemap

import (
	"unicode"
	"unicode/utf8"

	"rsbind/internal/model"
)

// Strategy is the conversion a wrapper applies to a value of a mapped type.
type Strategy string

const (
	// Reinterpret transmutes the wrapper representation into the real type.
	// It is only sound when both share the same layout; nothing checks that.
	Reinterpret Strategy = "reinterpret"
	// CopyText copies a null-terminated buffer into an owned string.
	CopyText Strategy = "copy-text"
	// BorrowText views a null-terminated buffer as borrowed text for the call.
	BorrowText Strategy = "borrow-text"
)

// Wrapper-side type names.
const (
	TextPointer   = "*mut core::ffi::c_char"
	OpaquePointer = "*mut core::ffi::c_void"
	Unit          = "()"
)

// Mapping records how one type crosses the boundary.
type Mapping struct {
	Header   string   `yaml:"header" json:"header"`
	Wrapper  string   `yaml:"wrapper" json:"wrapper"`
	Strategy Strategy `yaml:"strategy" json:"strategy"`
	// Lossy marks mappings that do not preserve the value's layout.
	Lossy bool `yaml:"lossy" json:"lossy"`
}

// IsText reports whether values cross the boundary as null-terminated text.
func (m Mapping) IsText() bool {
	return m.Wrapper == TextPointer
}

// Void is the mapping used for a function with no return type.
var Void = Mapping{Header: "void", Wrapper: Unit, Strategy: Reinterpret}

// DefaultTable returns the built-in mappings keyed by canonical type key.
// Path types are keyed by their last segment, references by "&" plus the
// referenced path's last segment.
func DefaultTable() map[string]Mapping {
	return map[string]Mapping{
		// Primitives
		"i32":  {Header: "int", Wrapper: "i32", Strategy: Reinterpret},
		"f64":  {Header: "double", Wrapper: "f64", Strategy: Reinterpret},
		"u32":  {Header: "unsigned int", Wrapper: "u32", Strategy: Reinterpret},
		"bool": {Header: "bool", Wrapper: "bool", Strategy: Reinterpret},

		// Text
		"String": {Header: "char*", Wrapper: TextPointer, Strategy: CopyText},
		"&str":   {Header: "char*", Wrapper: TextPointer, Strategy: BorrowText},

		// Containers cross as untyped pointers
		"Vec":    {Header: "void*", Wrapper: OpaquePointer, Strategy: Reinterpret, Lossy: true},
		"Option": {Header: "void*", Wrapper: OpaquePointer, Strategy: Reinterpret, Lossy: true},
	}
}

// Mapper maps source types through a lookup table.
type Mapper struct {
	table map[string]Mapping
}

// New creates a Mapper over table. A nil table uses DefaultTable.
func New(table map[string]Mapping) *Mapper {
	if table == nil {
		table = DefaultTable()
	}
	return &Mapper{table: table}
}

// Key returns the canonical lookup key of t, or "" if t has none.
func Key(t model.TypeRef) string {
	switch t.Kind {
	case model.KindPath:
		return t.Ident()
	case model.KindReference:
		if t.Elem != nil && t.Elem.Kind == model.KindPath {
			return "&" + t.Elem.Ident()
		}
	}
	return ""
}

// Map returns how t crosses the boundary. It never fails: unknown named
// types become a pointer to the capitalized name on the header side and
// are reinterpreted as themselves on the wrapper side; anything else
// becomes an untyped pointer.
func (m *Mapper) Map(t model.TypeRef) Mapping {
	if mapping, ok := m.table[Key(t)]; ok {
		if mapping.Strategy == "" {
			mapping.Strategy = Reinterpret
		}
		return mapping
	}

	if t.Kind == model.KindPath && t.Ident() != "" {
		return Mapping{
			Header:   capitalize(t.Ident()) + "*",
			Wrapper:  t.Ident(),
			Strategy: Reinterpret,
			Lossy:    true,
		}
	}

	return Mapping{
		Header:   "void*",
		Wrapper:  OpaquePointer,
		Strategy: Reinterpret,
		Lossy:    true,
	}
}

// MapReturn is Map for a return position; nil means no return type.
func (m *Mapper) MapReturn(t *model.TypeRef) Mapping {
	if t == nil {
		return Void
	}
	return m.Map(*t)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
