// Package config provides configuration handling for rsbind.
package config

import "rsbind/internal/typemap"

// DefaultTypeMappings returns the built-in source to foreign type mappings.
func DefaultTypeMappings() map[string]typemap.Mapping {
	return typemap.DefaultTable()
}

// DefaultOptions returns default generation options.
func DefaultOptions() Options {
	return Options{
		Extension: "rs",
		Format:    true,
	}
}
