// Package resolver locates and loads the source units behind external
// module declarations.
package resolver

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"rsbind/internal/model"
	"rsbind/internal/parser"
)

var (
	// ErrRead is returned when a module file exists but cannot be read.
	ErrRead = errors.New("reading module file")
	// ErrParse is returned when a module file cannot be parsed.
	ErrParse = errors.New("parsing module file")
)

// Source answers existence queries and loads declaration lists.
type Source interface {
	Exists(path string) bool
	Load(path string) ([]model.Item, error)
}

// FS is a Source backed by a filesystem.
type FS struct {
	fs     afero.Fs
	parser *parser.Parser
}

// NewFS creates a Source reading from fs.
func NewFS(fs afero.Fs) *FS {
	return &FS{fs: fs, parser: parser.New()}
}

// NewOS creates a Source reading from the operating system filesystem.
func NewOS() *FS {
	return NewFS(afero.NewOsFs())
}

// Exists reports whether path names a regular file.
func (s *FS) Exists(path string) bool {
	info, err := s.fs.Stat(path)
	return err == nil && !info.IsDir()
}

// Load reads and parses path. Errors wrap ErrRead or ErrParse.
func (s *FS) Load(path string) ([]model.Item, error) {
	src, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRead, path, err)
	}
	items, err := s.parser.Parse(path, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return items, nil
}

// Candidates returns the paths searched for module name, in order:
// <name>.<ext> then <name>/mod.<ext>.
func Candidates(baseDir, name, ext string) []string {
	return []string{
		filepath.Join(baseDir, name+"."+ext),
		filepath.Join(baseDir, name, "mod."+ext),
	}
}

// Find returns the first existing candidate for module name.
func Find(src Source, baseDir, name, ext string) (string, bool) {
	for _, path := range Candidates(baseDir, name, ext) {
		if src.Exists(path) {
			return path, true
		}
	}
	return "", false
}

// Resolved is a loaded external module.
type Resolved struct {
	Path    string       // file the module was loaded from
	BaseDir string       // directory nested external modules resolve against
	Items   []model.Item // the module's declarations
}

// Resolve locates and loads module name. ok is false when no candidate
// exists; err is set when a candidate exists but cannot be loaded.
func Resolve(src Source, baseDir, name, ext string) (res *Resolved, ok bool, err error) {
	path, found := Find(src, baseDir, name, ext)
	if !found {
		return nil, false, nil
	}
	items, err := src.Load(path)
	if err != nil {
		return nil, true, err
	}
	return &Resolved{Path: path, BaseDir: filepath.Dir(path), Items: items}, true, nil
}
