// rsbind generates a C header and extern "C" wrapper crate for a Rust
// library's free functions and plain structs.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"rsbind/internal/config"
	"rsbind/internal/generator"
	"rsbind/internal/parser"
	"rsbind/internal/resolver"
	"rsbind/internal/scaffold"
)

type options struct {
	inputFile  string
	outputDir  string
	crateName  string
	configFile string
	noFormat   bool
	verbose    bool
}

// app carries the collaborators a run needs.
type app struct {
	fs     afero.Fs
	runner scaffold.Runner
	log    *logrus.Logger
}

func newRootCmd(a *app) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "rsbind -i <lib.rs> -o <dir> -c <crate>",
		Short: "Generate C bindings for a Rust library",
		Long: `rsbind walks a Rust library's public free functions and structs and writes
a binding crate: src/bindings.h declares the C surface, src/lib.rs implements
it with extern "C" wrappers that call into the library.

Examples:
    # Generate bindings for the crate rooted at src/lib.rs
    rsbind -i src/lib.rs -o c_api -c test_crate

    # Use extra type mappings and skip the formatter pass
    rsbind -i src/lib.rs -o c_api -c test_crate --config rsbind.yaml --no-format
`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.inputFile, "input", "i", "", "Library root source file (required)")
	flags.StringVarP(&opts.outputDir, "output", "o", "", "Output directory of the binding crate")
	flags.StringVarP(&opts.crateName, "crate", "c", "", "Name of the wrapped crate")
	flags.StringVar(&opts.configFile, "config", "", "Config file (YAML/JSON)")
	flags.BoolVar(&opts.noFormat, "no-format", false, "Skip rustfmt and clang-format")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func main() {
	a := &app{fs: afero.NewOsFs(), runner: scaffold.ExecRunner, log: logrus.New()}
	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) run(cmd *cobra.Command, opts *options) error {
	if opts.verbose {
		a.log.SetLevel(logrus.DebugLevel)
	}
	log := a.log.WithField("run", uuid.NewString())

	// Load configuration
	cfg := config.New()
	if opts.configFile != "" {
		if err := cfg.LoadFile(a.fs, opts.configFile); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Apply CLI overrides
	if opts.outputDir != "" {
		cfg.Options.OutputDir = opts.outputDir
	}
	if opts.crateName != "" {
		cfg.Options.CrateName = opts.crateName
	}
	if opts.noFormat {
		cfg.Options.Format = false
	}

	if cfg.Options.OutputDir == "" {
		return fmt.Errorf("output directory is required (-o or --output)")
	}
	if cfg.Options.CrateName == "" {
		return fmt.Errorf("crate name is required (-c or --crate)")
	}

	// Parse input file
	items, err := parser.New().ParseFile(a.fs, opts.inputFile)
	if err != nil {
		return fmt.Errorf("parsing input: %w", err)
	}

	log.WithFields(logrus.Fields{
		"input": opts.inputFile,
		"items": len(items),
	}).Debug("Parsed input")

	gen := generator.New(cfg, resolver.NewFS(a.fs), log)
	res, err := gen.Generate(items, filepath.Dir(opts.inputFile), cfg.Options.CrateName)
	if err != nil {
		return fmt.Errorf("generating bindings: %w", err)
	}

	for _, d := range res.Diagnostics {
		log.WithFields(logrus.Fields{
			"kind": string(d.Kind),
			"item": d.Item,
		}).Warn(d.Message)
	}

	err = scaffold.Write(a.fs, cfg.Options.OutputDir, scaffold.Package{
		Crate:   cfg.Options.CrateName,
		Header:  res.Header,
		Wrapper: res.Wrapper,
	})
	if err != nil {
		return err
	}

	if cfg.Options.Format {
		scaffold.Format(a.runner, cfg.Options.OutputDir, log)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated C bindings in %s\n", cfg.Options.OutputDir)
	return nil
}
