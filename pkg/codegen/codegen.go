// Package codegen drives command layer generation: it extracts the APIs of
// a project's bindings, emits one command group per API and the aggregator
// wiring them together, and writes every unit to disk.
package codegen

import (
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"golang.org/x/mod/modfile"

	"github.com/CliForge/oascaffold/pkg/emit"
	"github.com/CliForge/oascaffold/pkg/errors"
	"github.com/CliForge/oascaffold/pkg/extract"
	"github.com/CliForge/oascaffold/pkg/writer"
)

// Config controls one generation run.
type Config struct {
	// Root is the project directory.
	Root string
	// ModulePath is the project's import path. Empty reads it from
	// Root/go.mod.
	ModulePath string
	// Layout locates the bindings. A relative Layout.Dir is resolved
	// against Root.
	Layout extract.Layout
	// CLIDir is the slash-separated directory of the generated commands,
	// relative to Root.
	CLIDir string
	// Filter is an optional operation filter expression.
	Filter string
	// MainName, when set, also emits main.go running the commands as
	// MainName.
	MainName string
	// DryRun renders every unit without writing.
	DryRun bool
}

// DefaultConfig returns the configuration for a project at root whose
// bindings live in root/openapi.
func DefaultConfig(root string) Config {
	return Config{
		Root:   root,
		Layout: extract.DefaultLayout("openapi"),
		CLIDir: "internal/cli",
	}
}

// Report summarizes a run.
type Report struct {
	Modules []extract.APIModule `json:"modules" yaml:"modules"`
	Files   []writer.Result     `json:"files" yaml:"files"`
}

// Operations returns the number of operations across all modules.
func (r *Report) Operations() int {
	n := 0
	for _, m := range r.Modules {
		n += len(m.Operations)
	}
	return n
}

// Generator runs the extract, emit and write stages.
type Generator struct {
	cfg    Config
	logger *pterm.Logger
}

// New returns a Generator. A nil logger discards log output.
func New(cfg Config, logger *pterm.Logger) *Generator {
	if logger == nil {
		logger = pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled)
	}
	return &Generator{cfg: cfg, logger: logger}
}

func (g *Generator) layout() extract.Layout {
	layout := g.cfg.Layout
	if !filepath.IsAbs(layout.Dir) {
		layout.Dir = filepath.Join(g.cfg.Root, layout.Dir)
	}
	return layout
}

// Extract discovers the APIs and operations of the bindings without
// generating anything.
func (g *Generator) Extract() ([]extract.APIModule, error) {
	filter, err := extract.NewFilter(g.cfg.Filter)
	if err != nil {
		return nil, err
	}

	layout := g.layout()
	g.logger.Debug("extracting APIs", g.logger.Args("client", layout.ClientPath(), "suffix", layout.Suffix))

	modules, err := extract.Extract(layout, filter)
	if err != nil {
		return nil, errors.Wrap(err, "extract")
	}
	for _, m := range modules {
		g.logger.Trace("discovered API", g.logger.Args("api", m.Ident, "operations", len(m.Operations)))
	}
	if len(modules) == 0 {
		g.logger.Warn("no APIs found", g.logger.Args("client", layout.ClientPath(), "suffix", layout.Suffix))
	}
	return modules, nil
}

// ModulePath returns the configured module path, falling back to the
// module directive of Root/go.mod.
func (g *Generator) ModulePath() (string, error) {
	if g.cfg.ModulePath != "" {
		return g.cfg.ModulePath, nil
	}
	path := filepath.Join(g.cfg.Root, "go.mod")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WithHint(errors.IO(err, path), "set the module path explicitly with --module")
	}
	mod := modfile.ModulePath(data)
	if mod == "" {
		return "", errors.Newf("%s has no module directive", path)
	}
	return mod, nil
}

// Generate writes one command group per API, then the aggregator, then
// main.go when MainName is set. It stops at the first failure; files
// already written stay in place.
func (g *Generator) Generate() (*Report, error) {
	modulePath, err := g.ModulePath()
	if err != nil {
		return nil, err
	}

	modules, err := g.Extract()
	if err != nil {
		return nil, err
	}

	e := emit.New(modulePath)
	e.Dir = g.cfg.CLIDir
	w := writer.Writer{Root: g.cfg.Root, DryRun: g.cfg.DryRun}
	report := &Report{Modules: modules}

	write := func(u *emit.Unit) error {
		if !g.cfg.DryRun {
			dir := filepath.Join(g.cfg.Root, filepath.Dir(filepath.FromSlash(u.Path)))
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return errors.IO(err, dir)
			}
		}
		res, err := w.Write(u)
		if err != nil {
			return err
		}
		g.logger.Info("wrote "+res.Path, g.logger.Args("status", res.Status, "bytes", res.Bytes))
		report.Files = append(report.Files, res)
		return nil
	}

	for _, m := range modules {
		if err := write(e.CommandGroup(m)); err != nil {
			return report, errors.Wrapf(err, "command group %s", m.Ident)
		}
	}
	if err := write(e.CommandRoot(modules)); err != nil {
		return report, errors.Wrap(err, "aggregator")
	}
	if g.cfg.MainName != "" {
		if err := write(e.Main(g.cfg.MainName)); err != nil {
			return report, errors.Wrap(err, "main")
		}
	}

	return report, nil
}
