// Package parser reads library source text into the declaration tree.
//
// Only the item level is understood: free functions, structs and modules.
// Function bodies, impl blocks, enums, traits and the rest are skipped by
// bracket matching.
package parser

import (
	"bytes"
	"fmt"
	"strings"
	"text/scanner"

	"github.com/spf13/afero"

	"rsbind/internal/model"
)

// Synthetic tokens produced on top of text/scanner.
const (
	tokString   rune = -100 - iota // "..." and r#"..."#
	tokChar                        // 'x'
	tokLifetime                    // 'a
)

// Parser parses source files into declaration lists.
type Parser struct{}

// New creates a new Parser.
func New() *Parser {
	return &Parser{}
}

// ParseFile reads path from fs and parses it.
func (p *Parser) ParseFile(fs afero.Fs, path string) ([]model.Item, error) {
	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return p.Parse(path, src)
}

// Parse parses src, using filename in error positions.
func (p *Parser) Parse(filename string, src []byte) ([]model.Item, error) {
	fp := &fileParser{}
	fp.s.Init(bytes.NewReader(src))
	fp.s.Filename = filename
	// Comments are skipped in next; block comments nest.
	fp.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	// Literal contents are never inspected.
	fp.s.Error = func(*scanner.Scanner, string) {}
	fp.next()

	items, err := fp.parseItems(false)
	if fp.err != nil {
		err = fp.err
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return items, nil
}

type fileParser struct {
	s    scanner.Scanner
	tok  rune
	text string
	pos  scanner.Position
	err  error // unterminated block comment
}

func (p *fileParser) next() {
	p.tok = p.s.Scan()
	for p.tok == '/' && (p.s.Peek() == '/' || p.s.Peek() == '*') {
		p.skipComment()
		p.tok = p.s.Scan()
	}
	p.text = p.s.TokenText()
	p.pos = p.s.Position

	switch {
	case p.tok == '"':
		p.scanString(false, 0)
	case p.tok == '\'':
		p.scanQuote()
	case p.tok == scanner.Ident && (p.text == "r" || p.text == "br") &&
		(p.s.Peek() == '"' || p.s.Peek() == '#'):
		p.scanRaw()
	}
}

// skipComment consumes a comment after its leading slash.
func (p *fileParser) skipComment() {
	if p.s.Next() == '/' {
		for c := p.s.Peek(); c != '\n' && c != scanner.EOF; c = p.s.Peek() {
			p.s.Next()
		}
		return
	}

	start := p.s.Position
	for depth := 1; depth > 0; {
		switch c := p.s.Next(); {
		case c == scanner.EOF:
			if p.err == nil {
				p.err = fmt.Errorf("%s: block comment not terminated", start)
			}
			return
		case c == '/' && p.s.Peek() == '*':
			p.s.Next()
			depth++
		case c == '*' && p.s.Peek() == '/':
			p.s.Next()
			depth--
		}
	}
}

// scanRaw handles r"..", r#".."# and the raw identifier form r#name.
func (p *fileParser) scanRaw() {
	hashes := 0
	for p.s.Peek() == '#' {
		p.s.Next()
		hashes++
	}
	if p.s.Peek() == '"' {
		p.s.Next()
		p.scanString(true, hashes)
		return
	}

	var b strings.Builder
	for isIdentRune(p.s.Peek()) {
		b.WriteRune(p.s.Next())
	}
	p.tok = scanner.Ident
	p.text = b.String()
}

// scanString consumes a string body after its opening quote. A raw string
// has no escapes and closes on a quote followed by hashes '#' characters.
func (p *fileParser) scanString(raw bool, hashes int) {
	p.tok = tokString
	for {
		c := p.s.Next()
		switch {
		case c == scanner.EOF:
			p.tok = scanner.EOF
			return
		case c == '\\' && !raw:
			p.s.Next()
		case c == '"':
			n := 0
			for n < hashes && p.s.Peek() == '#' {
				p.s.Next()
				n++
			}
			if n == hashes {
				return
			}
		}
	}
}

// scanQuote tells a char literal from a lifetime after a single quote.
func (p *fileParser) scanQuote() {
	c := p.s.Next()
	if c == '\\' {
		p.s.Next()
		for c = p.s.Next(); c != '\'' && c != scanner.EOF; c = p.s.Next() {
		}
		p.tok = tokChar
		return
	}
	if p.s.Peek() == '\'' {
		p.s.Next()
		p.tok = tokChar
		return
	}
	var b strings.Builder
	b.WriteRune('\'')
	b.WriteRune(c)
	for isIdentRune(p.s.Peek()) {
		b.WriteRune(p.s.Next())
	}
	p.tok = tokLifetime
	p.text = b.String()
}

func isIdentRune(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}

func (p *fileParser) isIdent(name string) bool {
	return p.tok == scanner.Ident && p.text == name
}

func (p *fileParser) describe() string {
	switch p.tok {
	case scanner.EOF:
		return "end of file"
	case tokString:
		return "string literal"
	case tokChar:
		return "char literal"
	default:
		return fmt.Sprintf("%q", p.text)
	}
}

func (p *fileParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%s: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *fileParser) expect(tok rune) error {
	if p.tok != tok {
		return p.errorf("expected %q, found %s", string(tok), p.describe())
	}
	p.next()
	return nil
}

func (p *fileParser) expectKeyword(name string) error {
	if !p.isIdent(name) {
		return p.errorf("expected %q, found %s", name, p.describe())
	}
	p.next()
	return nil
}

func (p *fileParser) ident() (string, error) {
	if p.tok != scanner.Ident {
		return "", p.errorf("expected identifier, found %s", p.describe())
	}
	name := p.text
	p.next()
	return name, nil
}

// parseItems parses items up to end of file, or up to and including the
// closing brace of a module body.
func (p *fileParser) parseItems(inBody bool) ([]model.Item, error) {
	var items []model.Item
	defaults := make(map[string]bool)

	for {
		if p.tok == scanner.EOF {
			if inBody {
				return nil, p.errorf("unexpected end of file in module body")
			}
			break
		}
		if p.tok == '}' {
			if !inBody {
				return nil, p.errorf("unexpected %s", p.describe())
			}
			p.next()
			break
		}

		item, defaultFor, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		if item != nil {
			items = append(items, item)
		}
		if defaultFor != "" {
			defaults[defaultFor] = true
		}
	}

	for _, item := range items {
		if s, ok := item.(*model.Struct); ok && defaults[s.Name] {
			s.HasDefault = true
		}
	}
	return items, nil
}

// parseItem parses one item. Unsupported items yield a nil item. For an
// `impl Default for X` block the name X is returned.
func (p *fileParser) parseItem() (model.Item, string, error) {
	derives, err := p.parseAttributes()
	if err != nil {
		return nil, "", err
	}
	vis, err := p.parseVisibility()
	if err != nil {
		return nil, "", err
	}

	for {
		switch {
		case p.isIdent("fn"):
			fn, err := p.parseFn(vis)
			return fn, "", err
		case p.isIdent("struct"):
			st, err := p.parseStruct(vis, derives)
			return st, "", err
		case p.isIdent("mod"):
			mod, err := p.parseMod(vis)
			return mod, "", err
		case p.isIdent("impl"):
			name, err := p.parseImpl()
			return nil, name, err
		case p.isIdent("const"), p.isIdent("async"), p.isIdent("unsafe"), p.isIdent("default"):
			// Either a qualifier of the next keyword or the start of an
			// item that gets skipped below.
			p.next()
		case p.isIdent("extern"):
			p.next()
			if p.tok == tokString {
				p.next()
			}
			if p.tok == '{' {
				return nil, "", p.skipBalanced('{', '}')
			}
		default:
			return nil, "", p.skipItem()
		}
	}
}

// parseAttributes consumes outer and inner attributes and returns the
// names listed in derive attributes.
func (p *fileParser) parseAttributes() ([]string, error) {
	var derives []string
	for p.tok == '#' {
		p.next()
		if p.tok == '!' {
			p.next()
		}
		if p.tok != '[' {
			return nil, p.errorf("expected %q, found %s", "[", p.describe())
		}
		p.next()

		if p.isIdent("derive") {
			p.next()
			if p.tok == '(' {
				p.next()
				current := ""
				for p.tok != ')' {
					switch p.tok {
					case scanner.EOF:
						return nil, p.errorf("unexpected end of file in attribute")
					case scanner.Ident:
						current = p.text
					case ',':
						if current != "" {
							derives = append(derives, current)
						}
						current = ""
					}
					p.next()
				}
				if current != "" {
					derives = append(derives, current)
				}
				p.next()
			}
		}

		if err := p.skipUntilClose('[', ']'); err != nil {
			return nil, err
		}
	}
	return derives, nil
}

func (p *fileParser) parseVisibility() (model.Visibility, error) {
	if !p.isIdent("pub") {
		return model.Private, nil
	}
	p.next()
	if p.tok == '(' {
		if err := p.skipBalanced('(', ')'); err != nil {
			return model.Private, err
		}
		return model.Restricted, nil
	}
	return model.Public, nil
}

func (p *fileParser) parseFn(vis model.Visibility) (*model.Function, error) {
	if err := p.expectKeyword("fn"); err != nil {
		return nil, err
	}
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	fn := &model.Function{Name: name, Visibility: vis}

	if p.tok == '<' {
		if err := p.skipAngles(); err != nil {
			return nil, err
		}
	}
	if err := p.expect('('); err != nil {
		return nil, err
	}
	if fn.Params, err = p.parseParams(); err != nil {
		return nil, err
	}

	if p.tok == '-' {
		p.next()
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		ret, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fn.Return = &ret
	}

	if p.isIdent("where") {
		if err := p.skipWhere(); err != nil {
			return nil, err
		}
	}

	if p.tok == ';' {
		p.next()
		return fn, nil
	}
	if p.tok != '{' {
		return nil, p.errorf("expected function body, found %s", p.describe())
	}
	return fn, p.skipBalanced('{', '}')
}

// parseParams parses a parameter list after its opening parenthesis.
// Receivers are dropped.
func (p *fileParser) parseParams() ([]model.Param, error) {
	var params []model.Param
	for p.tok != ')' {
		if _, err := p.parseAttributes(); err != nil {
			return nil, err
		}

		// Pattern runs up to ':' or the end of the parameter.
		var pattern []string
		depth := 0
		for depth > 0 || (p.tok != ':' && p.tok != ',' && p.tok != ')') {
			switch p.tok {
			case scanner.EOF:
				return nil, p.errorf("unexpected end of file in parameter list")
			case '(', '[', '{':
				depth++
			case ')', ']', '}':
				depth--
			}
			pattern = append(pattern, p.text)
			p.next()
		}

		receiver := false
		for _, t := range pattern {
			if t == "self" {
				receiver = true
			}
		}

		if receiver {
			if p.tok == ':' {
				p.next()
				if _, err := p.parseType(); err != nil {
					return nil, err
				}
			}
		} else {
			if err := p.expect(':'); err != nil {
				return nil, err
			}
			typ, err := p.parseType()
			if err != nil {
				return nil, err
			}
			params = append(params, model.Param{
				Name: patternName(pattern, len(params)),
				Type: typ,
			})
		}

		if p.tok == ',' {
			p.next()
			continue
		}
		if p.tok != ')' {
			return nil, p.errorf("expected \",\" or \")\", found %s", p.describe())
		}
	}
	p.next()
	return params, nil
}

// patternName returns the binding name of a simple `[ref] [mut] name`
// pattern, or a positional name for anything else.
func patternName(pattern []string, index int) string {
	var rest []string
	for _, t := range pattern {
		if t != "mut" && t != "ref" {
			rest = append(rest, t)
		}
	}
	if len(rest) == 1 && rest[0] != "_" && isIdentRune(rune(rest[0][0])) {
		return rest[0]
	}
	return fmt.Sprintf("arg%d", index)
}

func (p *fileParser) parseStruct(vis model.Visibility, derives []string) (*model.Struct, error) {
	if err := p.expectKeyword("struct"); err != nil {
		return nil, err
	}
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	st := &model.Struct{Name: name, Visibility: vis}
	for _, d := range derives {
		if d == "Default" {
			st.HasDefault = true
		}
	}

	if p.tok == '<' {
		if err := p.skipAngles(); err != nil {
			return nil, err
		}
	}
	if p.isIdent("where") {
		if err := p.skipWhere(); err != nil {
			return nil, err
		}
	}

	switch p.tok {
	case ';':
		p.next()
	case '{':
		p.next()
		for p.tok != '}' {
			if _, err := p.parseAttributes(); err != nil {
				return nil, err
			}
			if _, err := p.parseVisibility(); err != nil {
				return nil, err
			}
			fieldName, err := p.ident()
			if err != nil {
				return nil, err
			}
			if err := p.expect(':'); err != nil {
				return nil, err
			}
			typ, err := p.parseType()
			if err != nil {
				return nil, err
			}
			st.Fields = append(st.Fields, model.Field{Name: fieldName, Type: typ})

			if p.tok == ',' {
				p.next()
			} else if p.tok != '}' {
				return nil, p.errorf("expected \",\" or \"}\", found %s", p.describe())
			}
		}
		p.next()
	case '(':
		p.next()
		for p.tok != ')' {
			if _, err := p.parseAttributes(); err != nil {
				return nil, err
			}
			if _, err := p.parseVisibility(); err != nil {
				return nil, err
			}
			if _, err := p.parseType(); err != nil {
				return nil, err
			}
			st.UnnamedFields++

			if p.tok == ',' {
				p.next()
			} else if p.tok != ')' {
				return nil, p.errorf("expected \",\" or \")\", found %s", p.describe())
			}
		}
		p.next()
		if p.isIdent("where") {
			if err := p.skipWhere(); err != nil {
				return nil, err
			}
		}
		if err := p.expect(';'); err != nil {
			return nil, err
		}
	default:
		return nil, p.errorf("expected struct body, found %s", p.describe())
	}
	return st, nil
}

func (p *fileParser) parseMod(vis model.Visibility) (*model.Module, error) {
	if err := p.expectKeyword("mod"); err != nil {
		return nil, err
	}
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	mod := &model.Module{Name: name, Visibility: vis}

	switch p.tok {
	case ';':
		p.next()
	case '{':
		p.next()
		mod.Inline = true
		if mod.Items, err = p.parseItems(true); err != nil {
			return nil, err
		}
	default:
		return nil, p.errorf("expected \";\" or module body, found %s", p.describe())
	}
	return mod, nil
}

// parseImpl skips an impl block. It returns the implementing type's name
// when the block implements Default.
func (p *fileParser) parseImpl() (string, error) {
	if err := p.expectKeyword("impl"); err != nil {
		return "", err
	}
	if p.tok == '<' {
		if err := p.skipAngles(); err != nil {
			return "", err
		}
	}

	defaultFor := ""
	if p.tok != '!' {
		first, err := p.parseType()
		if err != nil {
			return "", err
		}
		if p.isIdent("for") {
			p.next()
			self, err := p.parseType()
			if err != nil {
				return "", err
			}
			if first.Ident() == "Default" && self.Ident() != "" {
				defaultFor = self.Ident()
			}
		}
	}
	return defaultFor, p.skipItem()
}

// parseType parses one type expression.
func (p *fileParser) parseType() (model.TypeRef, error) {
	switch {
	case p.tok == '&':
		p.next()
		if p.tok == tokLifetime {
			p.next()
		}
		mutable := false
		if p.isIdent("mut") {
			mutable = true
			p.next()
		}
		elem, err := p.parseType()
		if err != nil {
			return model.TypeRef{}, err
		}
		return model.Ref(elem, mutable), nil

	case p.tok == '*':
		p.next()
		mutable := p.isIdent("mut")
		if !mutable && !p.isIdent("const") {
			return model.TypeRef{}, p.errorf("expected \"const\" or \"mut\", found %s", p.describe())
		}
		qualifier := p.text
		p.next()
		elem, err := p.parseType()
		if err != nil {
			return model.TypeRef{}, err
		}
		return model.TypeRef{
			Kind:    model.KindPointer,
			Elem:    &elem,
			Mutable: mutable,
			Raw:     "*" + qualifier + " " + elem.Raw,
		}, nil

	case p.tok == '(':
		p.next()
		elems, err := p.parseTypeList(')')
		if err != nil {
			return model.TypeRef{}, err
		}
		return model.TypeRef{
			Kind: model.KindTuple,
			Args: elems,
			Raw:  "(" + joinRaw(elems) + ")",
		}, nil

	case p.tok == '[':
		p.next()
		elem, err := p.parseType()
		if err != nil {
			return model.TypeRef{}, err
		}
		if p.tok == ';' {
			p.next()
			if err := p.skipUntilClose('[', ']'); err != nil {
				return model.TypeRef{}, err
			}
			return model.TypeRef{Kind: model.KindArray, Elem: &elem, Raw: "[" + elem.Raw + "; _]"}, nil
		}
		if err := p.expect(']'); err != nil {
			return model.TypeRef{}, err
		}
		return model.TypeRef{Kind: model.KindSlice, Elem: &elem, Raw: "[" + elem.Raw + "]"}, nil

	case p.tok == '!':
		p.next()
		return model.TypeRef{Kind: model.KindOther, Raw: "!"}, nil

	case p.isIdent("_"):
		p.next()
		return model.TypeRef{Kind: model.KindOther, Raw: "_"}, nil

	case p.isIdent("fn"), p.isIdent("unsafe"), p.isIdent("extern"):
		return p.parseFnPointer()

	case p.isIdent("impl"), p.isIdent("dyn"):
		keyword := p.text
		p.next()
		bounds, err := p.parseBounds()
		if err != nil {
			return model.TypeRef{}, err
		}
		return model.TypeRef{Kind: model.KindOther, Raw: keyword + " " + bounds}, nil

	case p.tok == scanner.Ident, p.tok == ':':
		return p.parsePath()
	}
	return model.TypeRef{}, p.errorf("expected type, found %s", p.describe())
}

// parseTypeList parses comma-separated types up to and including close.
func (p *fileParser) parseTypeList(close rune) ([]model.TypeRef, error) {
	var types []model.TypeRef
	for p.tok != close {
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		types = append(types, typ)
		if p.tok == ',' {
			p.next()
		} else if p.tok != close {
			return nil, p.errorf("expected \",\" or %q, found %s", string(close), p.describe())
		}
	}
	p.next()
	return types, nil
}

func (p *fileParser) parseFnPointer() (model.TypeRef, error) {
	for p.isIdent("unsafe") || p.isIdent("extern") || p.tok == tokString {
		p.next()
	}
	if err := p.expectKeyword("fn"); err != nil {
		return model.TypeRef{}, err
	}
	if err := p.expect('('); err != nil {
		return model.TypeRef{}, err
	}
	if err := p.skipUntilClose('(', ')'); err != nil {
		return model.TypeRef{}, err
	}
	raw := "fn(..)"
	if p.tok == '-' {
		p.next()
		if err := p.expect('>'); err != nil {
			return model.TypeRef{}, err
		}
		ret, err := p.parseType()
		if err != nil {
			return model.TypeRef{}, err
		}
		raw += " -> " + ret.Raw
	}
	return model.TypeRef{Kind: model.KindFn, Raw: raw}, nil
}

// parseBounds parses `Bound + Bound + 'a`.
func (p *fileParser) parseBounds() (string, error) {
	var parts []string
	for {
		if p.tok == '?' {
			p.next()
		}
		if p.tok == tokLifetime {
			parts = append(parts, p.text)
			p.next()
		} else {
			bound, err := p.parseType()
			if err != nil {
				return "", err
			}
			parts = append(parts, bound.Raw)
		}
		if p.tok != '+' {
			return strings.Join(parts, " + "), nil
		}
		p.next()
	}
}

// parsePath parses `[::]seg[<args>]::seg...`, including `Fn(A) -> B` sugar.
func (p *fileParser) parsePath() (model.TypeRef, error) {
	t := model.TypeRef{Kind: model.KindPath}
	var raw strings.Builder

	if p.tok == ':' {
		if err := p.pathSep(); err != nil {
			return t, err
		}
		raw.WriteString("::")
	}

	for {
		name, err := p.ident()
		if err != nil {
			return t, err
		}
		t.Segments = append(t.Segments, name)
		t.Args = nil
		raw.WriteString(name)

		if p.tok == ':' {
			if err := p.pathSep(); err != nil {
				return t, err
			}
			if p.tok != '<' {
				raw.WriteString("::")
				continue
			}
		}

		switch p.tok {
		case '<':
			p.next()
			if t.Args, err = p.parseGenericArgs(); err != nil {
				return t, err
			}
			raw.WriteString("<" + joinRaw(t.Args) + ">")
		case '(':
			p.next()
			if t.Args, err = p.parseTypeList(')'); err != nil {
				return t, err
			}
			raw.WriteString("(" + joinRaw(t.Args) + ")")
			if p.tok == '-' {
				p.next()
				if err := p.expect('>'); err != nil {
					return t, err
				}
				ret, err := p.parseType()
				if err != nil {
					return t, err
				}
				raw.WriteString(" -> " + ret.Raw)
			}
		}

		if p.tok != ':' {
			break
		}
		if err := p.pathSep(); err != nil {
			return t, err
		}
		raw.WriteString("::")
	}

	t.Raw = raw.String()
	return t, nil
}

func (p *fileParser) pathSep() error {
	if err := p.expect(':'); err != nil {
		return err
	}
	return p.expect(':')
}

// parseGenericArgs parses generic arguments after '<' up to and including
// '>'. Lifetimes and const arguments are dropped; for associated type
// bindings the bound type is kept.
func (p *fileParser) parseGenericArgs() ([]model.TypeRef, error) {
	var args []model.TypeRef
	for p.tok != '>' {
		switch {
		case p.tok == tokLifetime, p.tok == scanner.Int, p.tok == tokChar, p.tok == tokString:
			p.next()
		case p.tok == '{':
			if err := p.skipBalanced('{', '}'); err != nil {
				return nil, err
			}
		default:
			typ, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if p.tok == '=' {
				p.next()
				if typ, err = p.parseType(); err != nil {
					return nil, err
				}
			}
			args = append(args, typ)
		}
		if p.tok == ',' {
			p.next()
		} else if p.tok != '>' {
			return nil, p.errorf("expected \",\" or \">\", found %s", p.describe())
		}
	}
	p.next()
	return args, nil
}

func joinRaw(types []model.TypeRef) string {
	raws := make([]string, len(types))
	for i, t := range types {
		raws[i] = t.Raw
	}
	return strings.Join(raws, ", ")
}

// skipBalanced skips from the current open token through its matching close.
func (p *fileParser) skipBalanced(open, close rune) error {
	if err := p.expect(open); err != nil {
		return err
	}
	return p.skipUntilClose(open, close)
}

// skipUntilClose skips up to and including the close token matching an
// already consumed open token.
func (p *fileParser) skipUntilClose(open, close rune) error {
	depth := 1
	for {
		switch p.tok {
		case scanner.EOF:
			return p.errorf("unexpected end of file, missing %q", string(close))
		case open:
			depth++
		case close:
			depth--
		}
		p.next()
		if depth == 0 {
			return nil
		}
	}
}

// skipAngles skips a generic parameter list. The '>' of an arrow does not
// close it.
func (p *fileParser) skipAngles() error {
	if err := p.expect('<'); err != nil {
		return err
	}
	depth := 1
	prev := rune(0)
	for depth > 0 {
		switch p.tok {
		case scanner.EOF:
			return p.errorf("unexpected end of file in generic parameters")
		case '<':
			depth++
		case '>':
			if prev != '-' {
				depth--
			}
		}
		prev = p.tok
		p.next()
	}
	return nil
}

// skipWhere skips a where clause up to, not including, the body.
func (p *fileParser) skipWhere() error {
	depth := 0
	for depth > 0 || (p.tok != '{' && p.tok != ';') {
		switch p.tok {
		case scanner.EOF:
			return p.errorf("unexpected end of file in where clause")
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		}
		p.next()
	}
	return nil
}

// skipItem skips an unsupported item: through a ';' at depth zero or
// through the brace block that ends it.
func (p *fileParser) skipItem() error {
	depth := 0
	for {
		switch p.tok {
		case scanner.EOF:
			return p.errorf("unexpected end of file")
		case '(', '[', '{':
			depth++
		case ')', ']':
			depth--
		case '}':
			if depth == 0 {
				return p.errorf("unexpected %s", p.describe())
			}
			depth--
			if depth == 0 {
				p.next()
				return nil
			}
		case ';':
			if depth == 0 {
				p.next()
				return nil
			}
		}
		p.next()
	}
}
