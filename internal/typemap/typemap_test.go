package typemap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rsbind/internal/model"
)

func TestMapPrimitives(t *testing.T) {
	m := New(nil)

	tests := []struct {
		typ     model.TypeRef
		header  string
		wrapper string
	}{
		{model.Path("i32"), "int", "i32"},
		{model.Path("f64"), "double", "f64"},
		{model.Path("u32"), "unsigned int", "u32"},
		{model.Path("bool"), "bool", "bool"},
	}
	for _, tt := range tests {
		t.Run(tt.typ.Raw, func(t *testing.T) {
			got := m.Map(tt.typ)
			assert.Equal(t, tt.header, got.Header)
			assert.Equal(t, tt.wrapper, got.Wrapper)
			assert.Equal(t, Reinterpret, got.Strategy)
			assert.False(t, got.Lossy)
		})
	}
}

func TestMapText(t *testing.T) {
	m := New(nil)

	owned := m.Map(model.Path("String"))
	assert.Equal(t, "char*", owned.Header)
	assert.Equal(t, TextPointer, owned.Wrapper)
	assert.Equal(t, CopyText, owned.Strategy)
	assert.True(t, owned.IsText())

	qualified := m.Map(model.Path("std::string::String"))
	assert.Equal(t, owned, qualified)

	borrowed := m.Map(model.Ref(model.Path("str"), false))
	assert.Equal(t, "char*", borrowed.Header)
	assert.Equal(t, TextPointer, borrowed.Wrapper)
	assert.Equal(t, BorrowText, borrowed.Strategy)
}

func TestMapFallback(t *testing.T) {
	m := New(nil)

	tests := []struct {
		name    string
		typ     model.TypeRef
		header  string
		wrapper string
	}{
		{"named struct", model.Path("Point"), "Point*", "Point"},
		{"lowercase name", model.Path("u64"), "U64*", "u64"},
		{"qualified name", model.Path("crate::geo::Point"), "Point*", "Point"},
		{"vec", model.Path("Vec"), "void*", OpaquePointer},
		{"reference to struct", model.Ref(model.Path("Point"), false), "void*", OpaquePointer},
		{"mutable reference", model.Ref(model.Path("i32"), true), "void*", OpaquePointer},
		{"tuple", model.TypeRef{Kind: model.KindTuple, Raw: "(i32, i32)"}, "void*", OpaquePointer},
		{"slice", model.TypeRef{Kind: model.KindSlice, Raw: "[u8]"}, "void*", OpaquePointer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Map(tt.typ)
			assert.Equal(t, tt.header, got.Header)
			assert.Equal(t, tt.wrapper, got.Wrapper)
			assert.Equal(t, Reinterpret, got.Strategy)
			assert.True(t, got.Lossy)
		})
	}
}

func TestMapCustomTable(t *testing.T) {
	table := DefaultTable()
	table["i64"] = Mapping{Header: "long long", Wrapper: "i64"}
	m := New(table)

	got := m.Map(model.Path("i64"))
	assert.Equal(t, "long long", got.Header)
	assert.Equal(t, "i64", got.Wrapper)
	assert.Equal(t, Reinterpret, got.Strategy)
	assert.False(t, got.Lossy)
}

func TestMapReturn(t *testing.T) {
	m := New(nil)
	assert.Equal(t, Void, m.MapReturn(nil))

	ret := model.Path("String")
	assert.True(t, m.MapReturn(&ret).IsText())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "String", Key(model.Path("alloc::string::String")))
	assert.Equal(t, "&str", Key(model.Ref(model.Path("str"), true)))
	assert.Equal(t, "", Key(model.TypeRef{Kind: model.KindTuple}))
}
