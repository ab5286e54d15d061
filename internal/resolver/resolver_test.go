package resolver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func TestCandidates(t *testing.T) {
	got := Candidates("src", "shapes", "rs")
	assert.Equal(t, []string{
		filepath.Join("src", "shapes.rs"),
		filepath.Join("src", "shapes", "mod.rs"),
	}, got)
}

func TestResolveFlatFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	write(t, fs, "src/shapes.rs", "pub fn area() -> f64 { 0.0 }")

	res, ok, err := Resolve(NewFS(fs), "src", "shapes", "rs")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join("src", "shapes.rs"), res.Path)
	assert.Equal(t, "src", res.BaseDir)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "area", res.Items[0].ItemName())
}

func TestResolveModDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	write(t, fs, "src/shapes/mod.rs", "pub mod circle;")

	res, ok, err := Resolve(NewFS(fs), "src", "shapes", "rs")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join("src", "shapes", "mod.rs"), res.Path)
	assert.Equal(t, filepath.Join("src", "shapes"), res.BaseDir)
}

func TestResolvePrefersFlatFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	write(t, fs, "src/shapes.rs", "pub fn flat() {}")
	write(t, fs, "src/shapes/mod.rs", "pub fn nested() {}")

	res, ok, err := Resolve(NewFS(fs), "src", "shapes", "rs")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "flat", res.Items[0].ItemName())
}

func TestResolveMissing(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("src/shapes.rs", 0o755))

	res, ok, err := Resolve(NewFS(fs), "src", "shapes", "rs")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, res)
}

func TestResolveParseFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	write(t, fs, "src/broken.rs", "pub fn f( {")

	_, ok, err := Resolve(NewFS(fs), "src", "broken", "rs")
	assert.True(t, ok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))
	assert.False(t, errors.Is(err, ErrRead))
}

type unreadableFs struct {
	afero.Fs
}

func (unreadableFs) Open(name string) (afero.File, error) {
	return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
}

func TestResolveReadFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	write(t, fs, "src/locked.rs", "pub fn f() {}")

	_, ok, err := Resolve(NewFS(unreadableFs{fs}), "src", "locked", "rs")
	assert.True(t, ok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRead))
	assert.True(t, errors.Is(err, os.ErrPermission))
}
