package parser

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsbind/internal/model"
)

func parse(t *testing.T, src string) []model.Item {
	t.Helper()
	items, err := New().Parse("lib.rs", []byte(src))
	require.NoError(t, err)
	return items
}

func TestParseFunctions(t *testing.T) {
	items := parse(t, `
/// Adds two numbers.
pub fn add(a: i32, b: i32) -> i32 {
    a + b
}

fn helper(mut name: String, _: &str) {
    let s = "}{";
    let c = '}';
    println!("{}", name);
}

pub(crate) const unsafe fn raw<'a, T: Into<String>>(ptr: *const u8, label: &'a mut str) -> Option<Vec<u8>>
where
    T: Clone,
{
    None
}
`)
	require.Len(t, items, 3)

	add, ok := items[0].(*model.Function)
	require.True(t, ok)
	assert.Equal(t, "add", add.Name)
	assert.Equal(t, model.Public, add.Visibility)
	require.Len(t, add.Params, 2)
	assert.Equal(t, "a", add.Params[0].Name)
	assert.Equal(t, "i32", add.Params[0].Type.Ident())
	require.NotNil(t, add.Return)
	assert.Equal(t, "i32", add.Return.Raw)

	helper := items[1].(*model.Function)
	assert.Equal(t, model.Private, helper.Visibility)
	assert.Nil(t, helper.Return)
	require.Len(t, helper.Params, 2)
	assert.Equal(t, "name", helper.Params[0].Name)
	assert.Equal(t, "arg1", helper.Params[1].Name)
	assert.Equal(t, model.KindReference, helper.Params[1].Type.Kind)
	assert.Equal(t, "str", helper.Params[1].Type.Elem.Ident())

	raw := items[2].(*model.Function)
	assert.Equal(t, model.Restricted, raw.Visibility)
	require.Len(t, raw.Params, 2)
	assert.Equal(t, model.KindPointer, raw.Params[0].Type.Kind)
	assert.Equal(t, "*const u8", raw.Params[0].Type.Raw)
	assert.True(t, raw.Params[1].Type.Mutable)
	assert.Equal(t, "Option<Vec<u8>>", raw.Return.Raw)
	assert.Equal(t, "Option", raw.Return.Ident())
}

func TestParseStructs(t *testing.T) {
	items := parse(t, `
#[derive(Debug, Clone, Default)]
pub struct Point {
    pub x: f64,
    #[doc = "vertical"]
    pub y: f64,
    label: std::string::String,
}

pub struct Pair(pub i32, String);

pub struct Marker;

pub struct Config {
    pub retries: u32,
}

impl Default for Config {
    fn default() -> Self {
        Config { retries: 3 }
    }
}
`)
	require.Len(t, items, 4)

	point := items[0].(*model.Struct)
	assert.Equal(t, "Point", point.Name)
	assert.True(t, point.HasDefault)
	require.Len(t, point.Fields, 3)
	assert.Equal(t, "y", point.Fields[1].Name)
	assert.Equal(t, "String", point.Fields[2].Type.Ident())
	assert.Equal(t, "std::string::String", point.Fields[2].Type.FullName())

	pair := items[1].(*model.Struct)
	assert.Empty(t, pair.Fields)
	assert.Equal(t, 2, pair.UnnamedFields)
	assert.False(t, pair.HasDefault)

	marker := items[2].(*model.Struct)
	assert.Empty(t, marker.Fields)
	assert.Zero(t, marker.UnnamedFields)

	cfg := items[3].(*model.Struct)
	assert.True(t, cfg.HasDefault)
}

func TestParseModules(t *testing.T) {
	items := parse(t, `
#![no_std]

pub mod shapes;
mod private;

pub mod geometry {
    pub fn area(w: f64, h: f64) -> f64 { w * h }

    mod internal {
        fn secret() {}
    }
}
`)
	require.Len(t, items, 3)

	shapes := items[0].(*model.Module)
	assert.Equal(t, "shapes", shapes.Name)
	assert.True(t, shapes.IsExternal())
	assert.Equal(t, model.Public, shapes.Visibility)

	private := items[1].(*model.Module)
	assert.Equal(t, model.Private, private.Visibility)
	assert.True(t, private.IsExternal())

	geometry := items[2].(*model.Module)
	assert.False(t, geometry.IsExternal())
	require.Len(t, geometry.Items, 2)
	assert.Equal(t, "area", geometry.Items[0].ItemName())

	internal := geometry.Items[1].(*model.Module)
	require.Len(t, internal.Items, 1)
	assert.Equal(t, "secret", internal.Items[0].ItemName())
}

func TestParseSkipsUnsupportedItems(t *testing.T) {
	items := parse(t, `
extern crate alloc;
use std::collections::{HashMap, HashSet};

pub const LIMIT: usize = 16;
static NAMES: [&str; 2] = ["a", "b"];
pub type Id = u64;

pub enum Shape { Circle(f64), Square { side: f64 } }

pub trait Area {
    fn area(&self) -> f64;
}

impl Area for Shape {
    fn area(&self) -> f64 { 0.0 }
}

impl<T: Clone> Wrapper<T> {
    pub fn get(&self) -> T { self.0.clone() }
}

unsafe impl Send for Shape {}

extern "C" {
    fn abs(x: i32) -> i32;
}

macro_rules! square {
    ($x:expr) => { $x * $x };
}

lazy_static! {
    static ref TABLE: HashMap<u32, &'static str> = HashMap::new();
}

pub extern "C" fn exported(x: i32) -> i32 { x }

pub fn last() -> &'static str { r#"raw "quoted" }"# }
`)
	require.Len(t, items, 2)
	assert.Equal(t, "exported", items[0].ItemName())
	assert.Equal(t, "last", items[1].ItemName())
}

func TestParseTypes(t *testing.T) {
	items := parse(t, `
fn f(
    a: (i32, String),
    b: [u8; 32],
    c: &[u8],
    d: Box<dyn Fn(i32) -> i32 + Send + 'static>,
    e: fn(i32) -> bool,
    f: impl Iterator<Item = u8>,
    g: HashMap<String, Vec<u32>>,
    h: ::core::ffi::c_int,
) -> () {}
`)
	fn := items[0].(*model.Function)
	require.Len(t, fn.Params, 8)

	kinds := []model.TypeKind{
		model.KindTuple, model.KindArray, model.KindReference, model.KindPath,
		model.KindFn, model.KindOther, model.KindPath, model.KindPath,
	}
	for i, k := range kinds {
		assert.Equal(t, k, fn.Params[i].Type.Kind, fn.Params[i].Name)
	}

	assert.Equal(t, "(i32, String)", fn.Params[0].Type.Raw)
	assert.Equal(t, model.KindSlice, fn.Params[2].Type.Elem.Kind)
	assert.Equal(t, "Box", fn.Params[3].Type.Ident())
	assert.Equal(t, "HashMap<String, Vec<u32>>", fn.Params[6].Type.Raw)
	require.Len(t, fn.Params[6].Type.Args, 2)
	assert.Equal(t, "c_int", fn.Params[7].Type.Ident())

	require.NotNil(t, fn.Return)
	assert.Equal(t, model.KindTuple, fn.Return.Kind)
}

func TestParseComments(t *testing.T) {
	items := parse(t, `
/* outer /* inner */ still outer */
pub fn f() {}
// pub fn hidden() {}
/** doc */ pub fn g(x: u32 /* unit */) -> u32 { x / 2 }
/*/ not closed by the slash star */
pub fn h() {}
`)
	require.Len(t, items, 3)
	assert.Equal(t, "f", items[0].ItemName())
	assert.Equal(t, "g", items[1].ItemName())
	assert.Equal(t, "h", items[2].ItemName())
	require.Len(t, items[1].(*model.Function).Params, 1)
}

func TestParseDropsReceivers(t *testing.T) {
	items := parse(t, `fn odd(&self, x: u32) {}`)
	fn := items[0].(*model.Function)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "x", fn.Params[0].Name)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unclosed module", "pub mod a { pub fn f() {}"},
		{"unclosed body", "pub fn f() { let x = 1;"},
		{"missing field type", "pub struct S { x }"},
		{"stray brace", "}"},
		{"bad attribute", "# pub fn f() {}"},
		{"unterminated comment", "pub fn f() {}\n/* a /* b */ c\npub fn g() {}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Parse("broken.rs", []byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "broken.rs")
		})
	}
}

func TestParseFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "src/lib.rs", []byte("pub fn f() {}"), 0o644))

	items, err := New().ParseFile(fs, "src/lib.rs")
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, err = New().ParseFile(fs, "src/missing.rs")
	assert.Error(t, err)
}
