package generator

import (
	"fmt"

	"rsbind/internal/model"
)

type structField struct {
	Name   string
	Header string
}

type structData struct {
	Name    string
	CName   string // snake_case tag, also the prefix of _new/_free
	ModPath string
	Fields  []structField
}

// GenerateStruct returns the header struct with its constructor and
// destructor declarations, and the wrapper definitions of both. The header
// struct is informative only: positional fields are dropped and nothing
// makes its layout match the real type.
func (g *Generator) GenerateStruct(st *model.Struct, modPath string) (header, wrapper string, diags []Diagnostic, err error) {
	data := structData{
		Name:    st.Name,
		CName:   snakeCase(st.Name),
		ModPath: modPath,
	}

	item := modPath + "::" + st.Name
	for _, f := range st.Fields {
		m := g.mapper.Map(f.Type)
		data.Fields = append(data.Fields, structField{Name: f.Name, Header: m.Header})
		if m.Lossy {
			diags = append(diags, lossy(item, "field "+f.Name, f.Type, m))
		}
	}
	if st.UnnamedFields > 0 {
		diags = append(diags, Diagnostic{
			Kind:    FieldDropped,
			Item:    item,
			Message: fmt.Sprintf("%d positional field(s) left out of header struct %s", st.UnnamedFields, data.CName),
		})
	}
	if !st.HasDefault {
		diags = append(diags, Diagnostic{
			Kind:    NoDefault,
			Item:    item,
			Message: fmt.Sprintf("%s_new requires %s to implement Default", data.CName, st.Name),
		})
	}

	if header, err = g.execute("struct.h", data); err != nil {
		return "", "", nil, fmt.Errorf("struct %s: %w", item, err)
	}
	if wrapper, err = g.execute("struct.rs", data); err != nil {
		return "", "", nil, fmt.Errorf("struct %s: %w", item, err)
	}
	return header, wrapper, diags, nil
}
