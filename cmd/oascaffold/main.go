// Command oascaffold scaffolds command-line clients from OpenAPI documents.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/CliForge/oascaffold/pkg/codegen"
	"github.com/CliForge/oascaffold/pkg/config"
	"github.com/CliForge/oascaffold/pkg/errors"
	"github.com/CliForge/oascaffold/pkg/terminal"
)

const appName = "oascaffold"

var (
	// Version is set at build time
	version = "0.1.0"
	// BuildDate is set at build time
	buildDate = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if hint := errors.FlattenHints(err); hint != "" {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Scaffold command-line clients from OpenAPI specs",
		Long: `oascaffold turns an OpenAPI document into a Go CLI project.

It generates client bindings with openapi-generator, then emits one cobra
command group per API with a stub command per operation, wired together
by a generated aggregator.`,
		Version:       fmt.Sprintf("%s (built %s)", version, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "config file (default: project .oascaffold.yaml and user config)")
	cmd.PersistentFlags().String("log-level", "info", "log level: trace, debug, info, warn, error, none")
	cmd.PersistentFlags().String("log-format", "text", "log format: text or json")

	cmd.AddCommand(newNewCmd())
	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newCacheCmd())

	return cmd
}

// app is what every subcommand needs: the resolved configuration and a
// logger.
type app struct {
	cfg    *config.Config
	loader *config.Loader
	log    *pterm.Logger
	out    io.Writer
	errOut io.Writer
}

// setup resolves configuration for a project at projectDir.
func setup(cmd *cobra.Command, projectDir string) (*app, error) {
	loader := config.NewLoader(appName)
	if err := loader.BindFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	path, _ := cmd.Flags().GetString("config")
	cfg, err := loader.Load(path, projectDir)
	if err != nil {
		return nil, err
	}
	log, err := terminal.NewLogger(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:    cfg,
		loader: loader,
		log:    log,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}, nil
}

// codegenConfig returns the generation settings of the project at dir.
func (a *app) codegenConfig(dir string) codegen.Config {
	return codegen.Config{
		Root:   dir,
		Layout: a.cfg.ExtractLayout(a.cfg.Generator.Output),
		CLIDir: a.cfg.Layout.CLIDir,
		Filter: a.cfg.Layout.Filter,
	}
}

// interactive reports whether w and stdin are terminals.
func interactive(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

// projectDir returns the absolute project directory from optional args.
func projectDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", dir)
	}
	return abs, nil
}
