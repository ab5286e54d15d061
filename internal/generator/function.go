package generator

import (
	"bytes"
	"fmt"

	"rsbind/internal/model"
	"rsbind/internal/typemap"
)

// contextSlot is appended to every header parameter list. The wrapper
// side never declares it.
const contextSlot = "void*"

// Argument is a function parameter with its boundary mapping.
type Argument struct {
	Name string
	Type model.TypeRef
	typemap.Mapping
}

type functionData struct {
	Name       string
	ModPath    string // module the real function is re-imported from
	Args       []Argument
	Return     typemap.Mapping
	Void       bool
	TextReturn bool
}

// Arguments maps each parameter of fn in declaration order.
func (g *Generator) Arguments(fn *model.Function) []Argument {
	args := make([]Argument, len(fn.Params))
	for i, p := range fn.Params {
		args[i] = Argument{Name: p.Name, Type: p.Type, Mapping: g.mapper.Map(p.Type)}
	}
	return args
}

// GenerateFunction returns the header declaration and wrapper definition
// for fn, whose real implementation lives in module modPath. It never
// rejects a type; unknown types degrade to reinterpretation and are
// reported as diagnostics.
func (g *Generator) GenerateFunction(fn *model.Function, modPath string) (header, wrapper string, diags []Diagnostic, err error) {
	data := functionData{
		Name:    fn.Name,
		ModPath: modPath,
		Args:    g.Arguments(fn),
		Return:  g.mapper.MapReturn(fn.Return),
		Void:    fn.Return == nil,
	}
	data.TextReturn = !data.Void && data.Return.IsText()

	item := modPath + "::" + fn.Name
	for _, a := range data.Args {
		if a.Lossy {
			diags = append(diags, lossy(item, "parameter "+a.Name, a.Type, a.Mapping))
		}
	}
	if !data.Void && data.Return.Lossy {
		diags = append(diags, lossy(item, "return type", *fn.Return, data.Return))
	}

	if header, err = g.execute("fn.h", data); err != nil {
		return "", "", nil, fmt.Errorf("function %s: %w", item, err)
	}
	if wrapper, err = g.execute("fn.rs", data); err != nil {
		return "", "", nil, fmt.Errorf("function %s: %w", item, err)
	}
	return header, wrapper, diags, nil
}

func lossy(item, position string, t model.TypeRef, m typemap.Mapping) Diagnostic {
	return Diagnostic{
		Kind:    LossyType,
		Item:    item,
		Message: fmt.Sprintf("%s %q crosses as %s/%s by unchecked reinterpretation", position, t.Raw, m.Header, m.Wrapper),
	}
}

func (g *Generator) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := g.template.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}
