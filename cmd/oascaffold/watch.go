package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/CliForge/oascaffold/internal/watch"
	"github.com/CliForge/oascaffold/pkg/bindgen"
	"github.com/CliForge/oascaffold/pkg/codegen"
	"github.com/CliForge/oascaffold/pkg/errors"
	"github.com/CliForge/oascaffold/pkg/shell"
)

func newWatchCmd() *cobra.Command {
	var spec string

	cmd := &cobra.Command{
		Use:   "watch [project-dir]",
		Short: "Regenerate commands whenever the bindings change",
		Long: `Watch the project's bindings and regenerate the command layer when they
change. With --spec, changes to the spec first regenerate the bindings with
openapi-generator.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := projectDir(args)
			if err != nil {
				return err
			}
			a, err := setup(cmd, dir)
			if err != nil {
				return err
			}

			cfg := a.codegenConfig(dir)
			bindings := filepath.Join(dir, a.cfg.Generator.Output)
			paths := []string{bindings}

			var gen *bindgen.Generator
			if spec != "" {
				if !filepath.IsAbs(spec) {
					spec = filepath.Join(dir, spec)
				}
				gen = &bindgen.Generator{
					Command:    a.cfg.Generator.Command,
					Name:       a.cfg.Generator.Name,
					Properties: a.cfg.Generator.Properties,
					Runner:     &shell.Runner{Dir: dir},
					Logger:     a.log,
				}
				paths = append(paths, spec)
			}

			regenerate := func(ctx context.Context, changed []string) error {
				if gen != nil && slices.Contains(changed, spec) {
					if err := gen.Generate(ctx, spec, a.cfg.Generator.Output); err != nil {
						return err
					}
				}
				report, err := codegen.New(cfg, a.log).Generate()
				if err != nil {
					return err
				}
				a.log.Info("regenerated", a.log.Args("apis", len(report.Modules), "commands", report.Operations()))
				return nil
			}

			if _, err := os.Stat(bindings); err != nil {
				return errors.WithHint(errors.IO(err, bindings), "run oascaffold new or openapi-generator first")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := regenerate(ctx, nil); err != nil {
				return err
			}

			a.log.Info("watching for changes", a.log.Args("paths", paths))
			w := &watch.Watcher{
				Paths:    paths,
				Patterns: []string{"*.go"},
				Exclude:  []string{"*_test.go", ".*"},
				OnChange: regenerate,
				Logger:   a.log,
			}
			return w.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&spec, "spec", "", "spec file to watch; changes regenerate the bindings first")

	return cmd
}
