// Package scaffold creates a new CLI project from an OpenAPI document: it
// stores the document in the project, generates client bindings with
// openapi-generator, emits the command layer and main.go, and renders the
// project files around them.
package scaffold

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pterm/pterm"
	"golang.org/x/mod/module"

	"github.com/CliForge/oascaffold/pkg/bindgen"
	"github.com/CliForge/oascaffold/pkg/codegen"
	"github.com/CliForge/oascaffold/pkg/config"
	"github.com/CliForge/oascaffold/pkg/errors"
	"github.com/CliForge/oascaffold/pkg/openapi"
	"github.com/CliForge/oascaffold/pkg/shell"
	"github.com/CliForge/oascaffold/pkg/terminal"
)

// CobraVersion is the cobra release new projects require.
const CobraVersion = "v1.10.1"

// ErrAborted is returned when the user declines to write into an existing
// directory.
var ErrAborted = errors.New("aborted")

// Options describe one project.
type Options struct {
	// Name is the project and binary name.
	Name string
	// Spec is a file path or URL of the OpenAPI document.
	Spec string
	// Output is the parent directory; the project goes to Output/Name.
	Output string
	// Module is the Go module path. When empty the user is asked for it,
	// with Name as the default answer.
	Module string
	// Install runs go mod tidy and go install in the new project.
	Install bool
	// Git initializes a git repository.
	Git bool
	// Yes skips the confirmation before writing into a non-empty directory.
	Yes bool
	// SkipBindings does not run openapi-generator. Commands are still
	// generated when bindings already exist in the project.
	SkipBindings bool
}

// Dir returns the project directory.
func (o Options) Dir() string {
	return filepath.Join(o.Output, o.Name)
}

func (o Options) validate() error {
	if o.Name == "" || strings.ContainsAny(o.Name, `/\`) || o.Name == "." || o.Name == ".." {
		return errors.Newf("invalid project name %q", o.Name)
	}
	if o.Spec == "" {
		return errors.New("a spec file or URL is required")
	}
	return nil
}

// Result summarizes a created project.
type Result struct {
	Dir      string
	SpecPath string
	Info     openapi.Info
	Report   *codegen.Report
	Files    []string
}

// Scaffolder runs the project pipeline.
type Scaffolder struct {
	Config   *config.Config
	Loader   *openapi.Loader
	Prompter *terminal.Prompter
	Logger   *pterm.Logger
	// Out receives section headers and the spinner. Nil discards them.
	Out io.Writer
	// Spinner animates long-running steps.
	Spinner bool
}

func (s *Scaffolder) out() io.Writer {
	if s.Out == nil {
		return io.Discard
	}
	return s.Out
}

// prompter returns the configured Prompter. Without one every question
// gets its default answer.
func (s *Scaffolder) prompter() *terminal.Prompter {
	if s.Prompter == nil {
		return &terminal.Prompter{DisableInteractive: true}
	}
	return s.Prompter
}

func (s *Scaffolder) logger() *pterm.Logger {
	if s.Logger == nil {
		return pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled)
	}
	return s.Logger
}

// New creates the project described by opts.
func (s *Scaffolder) New(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Module == "" {
		mod, err := s.prompter().Text("Go module path", opts.Name)
		if err != nil {
			return nil, err
		}
		opts.Module = mod
	}
	if err := module.CheckImportPath(opts.Module); err != nil {
		return nil, errors.WithHint(errors.Wrapf(err, "invalid module path %q", opts.Module),
			"pass a valid Go module path with --module, e.g. github.com/acme/"+opts.Name)
	}
	cfg := s.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := s.logger()
	dir := opts.Dir()

	if err := s.prepare(dir, opts.Yes); err != nil {
		return nil, err
	}

	terminal.Header(s.out(), "Loading spec")
	loader := s.Loader
	if loader == nil {
		loader = openapi.NewLoader(nil)
	}
	doc, err := loader.Load(ctx, opts.Spec, nil)
	if err != nil {
		return nil, err
	}
	specPath, err := doc.Save(dir)
	if err != nil {
		return nil, err
	}
	res := &Result{Dir: dir, SpecPath: specPath, Info: doc.Info(), Files: []string{specPath}}
	log.Info("spec loaded", log.Args("title", res.Info.Title, "version", res.Info.Version, "format", string(doc.Format)))

	bindings := filepath.Join(dir, cfg.Generator.Output)
	if !opts.SkipBindings {
		terminal.Header(s.out(), "Generating bindings")
		if err := s.bindings(ctx, cfg, dir, doc.FileName()); err != nil {
			return res, err
		}
	}

	terminal.Header(s.out(), "Rendering project files")
	files, err := RenderTemplates(NewTemplateEngine(), dir, s.templateData(cfg, opts, doc))
	res.Files = append(res.Files, files...)
	if err != nil {
		return res, err
	}

	if _, err := os.Stat(bindings); err == nil {
		terminal.Header(s.out(), "Generating commands")
		genCfg := codegen.Config{
			Root:       dir,
			ModulePath: opts.Module,
			Layout:     cfg.ExtractLayout(cfg.Generator.Output),
			CLIDir:     cfg.Layout.CLIDir,
			Filter:     cfg.Layout.Filter,
			MainName:   opts.Name,
		}
		report, err := codegen.New(genCfg, log).Generate()
		res.Report = report
		if err != nil {
			return res, err
		}
		for _, f := range report.Files {
			res.Files = append(res.Files, filepath.Join(dir, filepath.FromSlash(f.Path)))
		}
	} else {
		log.Warn("no bindings found, skipping command generation",
			log.Args("dir", bindings, "hint", "run openapi-generator, then oascaffold generate"))
	}

	projectFile := filepath.Join(dir, config.ProjectFile)
	if err := config.Save(projectFile, cfg); err != nil {
		return res, err
	}
	res.Files = append(res.Files, projectFile)

	if opts.Git {
		if err := InitGit(dir); err != nil {
			return res, err
		}
		log.Info("initialized git repository", log.Args("dir", dir))
	}

	if opts.Install {
		terminal.Header(s.out(), "Installing")
		if err := Install(ctx, dir, log); err != nil {
			return res, err
		}
	}
	return res, nil
}

// prepare creates dir, asking before reusing a non-empty one.
func (s *Scaffolder) prepare(dir string, yes bool) error {
	entries, err := os.ReadDir(dir)
	if err == nil && len(entries) > 0 && !yes {
		ok, err := s.prompter().Confirm(dir+" is not empty. Write the project into it anyway?", false)
		if err != nil {
			return err
		}
		if !ok {
			return errors.WithHint(ErrAborted, "pass --yes to write into a non-empty directory")
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.IO(err, dir)
	}
	return nil
}

func (s *Scaffolder) bindings(ctx context.Context, cfg *config.Config, dir, specFile string) error {
	gen := &bindgen.Generator{
		Command:    cfg.Generator.Command,
		Name:       cfg.Generator.Name,
		Constraint: cfg.Generator.Version,
		Properties: cfg.Generator.Properties,
		Runner:     &shell.Runner{Dir: dir},
		Logger:     s.logger(),
	}
	if err := gen.CheckVersion(ctx); err != nil {
		return err
	}

	spin := terminal.NewSpinner(s.out(), s.Spinner)
	spin.Start("running openapi-generator")
	err := gen.Generate(ctx, specFile, cfg.Generator.Output)
	if err != nil {
		spin.Stop("")
		return err
	}
	spin.Stop("bindings written to " + cfg.Generator.Output)
	return nil
}

func (s *Scaffolder) templateData(cfg *config.Config, opts Options, doc *openapi.Document) map[string]any {
	info := doc.Info()
	return map[string]any{
		"name":          opts.Name,
		"module":        opts.Module,
		"go_version":    goVersion(),
		"cobra_version": CobraVersion,
		"bindings":      cfg.Generator.Output,
		"cli_dir":       cfg.Layout.CLIDir,
		"spec": map[string]any{
			"title":       info.Title,
			"version":     info.Version,
			"description": info.Description,
			"source":      doc.FileName(),
			"format":      string(doc.Format),
		},
	}
}

// goVersion returns the language version of the running toolchain, e.g.
// "1.24" for go1.24.6. Development builds fall back to 1.24.
func goVersion() string {
	v := strings.TrimPrefix(runtime.Version(), "go")
	parts := strings.SplitN(v, ".", 3)
	if len(parts) < 2 || parts[0] == "" || strings.ContainsAny(parts[1], " -+") {
		return "1.24"
	}
	return parts[0] + "." + parts[1]
}
