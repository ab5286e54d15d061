// Package scaffold lays generated bindings out as a buildable package.
package scaffold

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Output file locations relative to the package directory.
const (
	ManifestFile = "Cargo.toml"
	WrapperFile  = "src/lib.rs"
	HeaderFile   = "src/bindings.h"
)

// Package is the content of one generated binding package.
type Package struct {
	Crate   string // name of the wrapped library
	Header  string
	Wrapper string
}

type manifest struct {
	Package      packageSection        `toml:"package"`
	Lib          libSection            `toml:"lib"`
	Dependencies map[string]dependency `toml:"dependencies"`
}

type packageSection struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Edition string `toml:"edition"`
}

type libSection struct {
	CrateType []string `toml:"crate-type"`
}

type dependency struct {
	Path string `toml:"path"`
}

// Manifest renders the package manifest for a binding package of crate.
func Manifest(crate string) ([]byte, error) {
	m := manifest{
		Package: packageSection{
			Name:    crate + "_c_api",
			Version: "0.1.0",
			Edition: "2021",
		},
		Lib: libSection{CrateType: []string{"cdylib", "staticlib"}},
		Dependencies: map[string]dependency{
			crate: {Path: "../"},
		},
	}
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return data, nil
}

// GuardHeader wraps header text in an include guard for crate.
func GuardHeader(crate, header string) string {
	guard := strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(crate)) + "_BINDINGS_H"

	var b strings.Builder
	fmt.Fprintf(&b, "#ifndef %s\n#define %s\n\n", guard, guard)
	b.WriteString("#include <stdbool.h>\n\n")
	b.WriteString(header)
	fmt.Fprintf(&b, "\n\n#endif /* %s */\n", guard)
	return b.String()
}

// Write creates the package under dir: manifest, wrapper source and header.
func Write(fs afero.Fs, dir string, pkg Package) error {
	if err := fs.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data, err := Manifest(pkg.Crate)
	if err != nil {
		return err
	}

	files := []struct {
		name    string
		content []byte
	}{
		{ManifestFile, data},
		{WrapperFile, []byte(pkg.Wrapper)},
		{HeaderFile, []byte(GuardHeader(pkg.Crate, pkg.Header))},
	}
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f.name))
		if err := afero.WriteFile(fs, path, f.content, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

// Runner runs an external command.
type Runner func(name string, args ...string) error

// ExecRunner runs commands on the host.
func ExecRunner(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Format runs the source formatters over a written package. It is a
// cosmetic pass: failures are logged and never returned.
func Format(run Runner, dir string, log logrus.FieldLogger) {
	commands := [][]string{
		{"rustfmt", filepath.Join(dir, filepath.FromSlash(WrapperFile))},
		{"clang-format", "-i", filepath.Join(dir, filepath.FromSlash(HeaderFile))},
	}
	for _, cmd := range commands {
		if err := run(cmd[0], cmd[1:]...); err != nil {
			log.WithFields(logrus.Fields{
				"command": cmd[0],
				"error":   err.Error(),
			}).Warn("Formatter failed, keeping unformatted output")
			continue
		}
		log.WithField("command", cmd[0]).Debug("Formatted output")
	}
}
