// Package generator walks a declaration tree and emits a C header and the
// wrapper source implementing it.
package generator

import (
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/sirupsen/logrus"

	"rsbind/internal/config"
	"rsbind/internal/model"
	"rsbind/internal/resolver"
	"rsbind/internal/typemap"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// wrapperPreamble opens the wrapper source once, ahead of all fragments.
const wrapperPreamble = "extern crate alloc;\n\nuse alloc::boxed::Box;\n"

// Generator emits bindings for a declaration tree.
type Generator struct {
	mapper    *typemap.Mapper
	source    resolver.Source
	extension string
	template  *template.Template
	log       logrus.FieldLogger
}

// New creates a Generator. External modules are loaded through source;
// a nil logger discards debug output.
func New(cfg *config.Config, source resolver.Source, log logrus.FieldLogger) *Generator {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Generator{
		mapper:    cfg.Mapper(),
		source:    source,
		extension: cfg.Options.Extension,
		template: template.Must(template.New("bindings").
			Funcs(templateFuncs()).
			ParseFS(templateFS, "templates/*.tmpl")),
		log: log,
	}
}

// Result is the output of one generation pass.
type Result struct {
	Header      string
	Wrapper     string
	Diagnostics []Diagnostic
}

// Generate walks the top-level items of crateName. External modules
// resolve against baseDir. A module file that exists but cannot be read or
// parsed aborts the pass; the error wraps resolver.ErrRead or
// resolver.ErrParse.
func (g *Generator) Generate(items []model.Item, baseDir, crateName string) (*Result, error) {
	// Cargo's library name for the package: dashes become underscores.
	root := scope{baseDir: baseDir, modPath: strings.ReplaceAll(crateName, "-", "_")}
	out, err := g.walk(items, root)
	if err != nil {
		return nil, err
	}

	g.log.WithFields(logrus.Fields{
		"crate":       root.modPath,
		"bindings":    len(out.header),
		"diagnostics": len(out.diags),
	}).Debug("Generated bindings")

	return &Result{
		Header:      strings.Join(out.header, "\n"),
		Wrapper:     wrapperPreamble + strings.Join(out.wrapper, "\n"),
		Diagnostics: out.diags,
	}, nil
}

// scope is what a level of the walk inherits from its parent.
type scope struct {
	baseDir   string
	inherited bool   // inside an entered module
	modPath   string // qualified path of the enclosing module
}

func (s scope) enter(name string) scope {
	return scope{baseDir: s.baseDir, inherited: true, modPath: s.modPath + "::" + name}
}

// fragments are the pieces emitted by one level of the walk, in order.
type fragments struct {
	header  []string
	wrapper []string
	diags   []Diagnostic
}

func (f *fragments) splice(other fragments) {
	f.header = append(f.header, other.header...)
	f.wrapper = append(f.wrapper, other.wrapper...)
	f.diags = append(f.diags, other.diags...)
}

// walk visits items depth-first in declaration order. Child modules are
// spliced in place.
func (g *Generator) walk(items []model.Item, sc scope) (fragments, error) {
	var out fragments

	for _, item := range items {
		switch it := item.(type) {
		case *model.Function:
			if !IsExported(it.Visibility, sc.inherited) {
				continue
			}
			header, wrapper, diags, err := g.GenerateFunction(it, sc.modPath)
			if err != nil {
				return fragments{}, err
			}
			out.splice(fragments{header: []string{header}, wrapper: []string{wrapper}, diags: diags})

		case *model.Struct:
			if !IsExported(it.Visibility, sc.inherited) {
				continue
			}
			header, wrapper, diags, err := g.GenerateStruct(it, sc.modPath)
			if err != nil {
				return fragments{}, err
			}
			out.splice(fragments{header: []string{header}, wrapper: []string{wrapper}, diags: diags})

		case *model.Module:
			if !IsRecursable(it.Visibility) {
				g.log.WithFields(logrus.Fields{
					"module":     sc.modPath + "::" + it.Name,
					"visibility": it.Visibility.String(),
				}).Debug("Skipping module")
				continue
			}
			sub, err := g.module(it, sc)
			if err != nil {
				return fragments{}, err
			}
			out.splice(sub)
		}
	}

	return out, nil
}

// module walks an entered module, loading its body when it is external.
func (g *Generator) module(mod *model.Module, sc scope) (fragments, error) {
	child := sc.enter(mod.Name)
	if !mod.IsExternal() {
		return g.walk(mod.Items, child)
	}

	res, found, err := resolver.Resolve(g.source, sc.baseDir, mod.Name, g.extension)
	if err != nil {
		return fragments{}, fmt.Errorf("module %s: %w", child.modPath, err)
	}
	if !found {
		return fragments{diags: []Diagnostic{{
			Kind:    ModuleNotFound,
			Item:    child.modPath,
			Message: "no file at " + strings.Join(resolver.Candidates(sc.baseDir, mod.Name, g.extension), " or "),
		}}}, nil
	}

	g.log.WithFields(logrus.Fields{
		"module": child.modPath,
		"file":   res.Path,
	}).Debug("Resolved external module")

	child.baseDir = res.BaseDir
	return g.walk(res.Items, child)
}
