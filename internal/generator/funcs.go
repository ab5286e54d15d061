package generator

import (
	"strings"
	"text/template"
	"unicode"
)

// templateFuncs returns custom template functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// Signatures
		"headerParams":  headerParams,
		"wrapperParams": wrapperParams,
		"argNames":      argNames,

		// String manipulation
		"snakeCase": snakeCase,
		"join":      strings.Join,
	}
}

// headerParams renders the header parameter list, including the trailing
// context slot.
func headerParams(args []Argument) string {
	types := make([]string, 0, len(args)+1)
	for _, a := range args {
		types = append(types, a.Header)
	}
	types = append(types, contextSlot)
	return strings.Join(types, ", ")
}

// wrapperParams renders `name: type` pairs for the wrapper signature.
func wrapperParams(args []Argument) string {
	params := make([]string, len(args))
	for i, a := range args {
		params[i] = a.Name + ": " + a.Wrapper
	}
	return strings.Join(params, ", ")
}

// argNames renders the positional call arguments.
func argNames(args []Argument) string {
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

// snakeCase converts to snake_case.
func snakeCase(s string) string {
	words := splitWords(s)
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}
	return strings.Join(words, "_")
}

// splitWords splits a string into words (handles camelCase, PascalCase, snake_case, etc.).
// Letters and digits always fall in separate words: Vec3 is vec, 3.
func splitWords(s string) []string {
	var words []string
	var current []rune

	runes := []rune(s)
	for i, r := range runes {
		if r == '_' || r == '-' || r == ' ' {
			if len(current) > 0 {
				words = append(words, string(current))
				current = nil
			}
			continue
		}

		if i > 0 && len(current) > 0 && wordBoundary(runes, i) {
			words = append(words, string(current))
			current = nil
		}

		current = append(current, r)
	}

	if len(current) > 0 {
		words = append(words, string(current))
	}

	return words
}

// wordBoundary reports whether a new word starts at runes[i].
func wordBoundary(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	switch {
	case unicode.IsDigit(r) != unicode.IsDigit(prev):
		return true
	case unicode.IsUpper(r):
		// lowerUpper, or the last capital of an acronym (HTTPServer)
		return unicode.IsLower(prev) ||
			(unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]))
	}
	return false
}
