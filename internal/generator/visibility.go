package generator

import "rsbind/internal/model"

// IsExported reports whether a function or struct gets bindings: its own
// marker is public, or it sits inside an entered module.
func IsExported(own model.Visibility, inherited bool) bool {
	return own.IsPublic() || inherited
}

// IsRecursable reports whether the traversal enters a module. Only the
// module's own marker counts; an entered parent does not make a private
// child module visible.
func IsRecursable(own model.Visibility) bool {
	return own.IsPublic()
}
