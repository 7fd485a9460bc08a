package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/CliForge/oascaffold/pkg/cache"
	"github.com/CliForge/oascaffold/pkg/openapi"
	"github.com/CliForge/oascaffold/pkg/scaffold"
	"github.com/CliForge/oascaffold/pkg/terminal"
)

func newNewCmd() *cobra.Command {
	var opts scaffold.Options

	cmd := &cobra.Command{
		Use:   "new <name> <spec>",
		Short: "Create a CLI project from an OpenAPI spec",
		Long: `Create a CLI project from an OpenAPI spec file or URL.

This command:
  1. Loads the spec and stores it in the project
  2. Generates Go client bindings with openapi-generator
  3. Renders go.mod, README.md and .gitignore
  4. Generates one command group per API, the aggregator and main.go`,
		Example: `  oascaffold new petctl https://petstore3.swagger.io/api/v3/openapi.json
  oascaffold new petctl ./petstore.yaml -o ~/src --module github.com/acme/petctl --git`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Name, opts.Spec = args[0], args[1]

			a, err := setup(cmd, opts.Dir())
			if err != nil {
				return err
			}

			var specCache openapi.SpecCache
			if a.cfg.Cache.Enabled {
				c, err := cache.New(a.loader.CacheDir(a.cfg))
				if err != nil {
					a.log.Warn("spec cache disabled", a.log.Args("error", err.Error()))
				} else {
					specCache = c
				}
			}

			tty := interactive(a.errOut)
			s := &scaffold.Scaffolder{
				Config:   a.cfg,
				Loader:   openapi.NewLoader(specCache),
				Prompter: &terminal.Prompter{DisableInteractive: !tty},
				Logger:   a.log,
				Out:      a.errOut,
				Spinner:  tty,
			}

			res, err := s.New(cmd.Context(), opts)
			if err != nil {
				return err
			}

			msg := "Created " + res.Dir
			if res.Report != nil {
				msg += pterm.Sprintf(" with %d commands across %d APIs", res.Report.Operations(), len(res.Report.Modules))
			}
			pterm.Success.WithWriter(a.out).Println(msg)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", ".", "parent directory of the project")
	cmd.Flags().StringVar(&opts.Module, "module", "", "Go module path (asked for on a terminal, default: the project name)")
	cmd.Flags().BoolVar(&opts.Install, "install", false, "run go mod tidy and go install in the new project")
	cmd.Flags().BoolVar(&opts.Git, "git", false, "initialize a git repository")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "do not ask before writing into a non-empty directory")
	cmd.Flags().BoolVar(&opts.SkipBindings, "skip-bindings", false, "do not run openapi-generator")
	cmd.Flags().Bool("no-cache", false, "do not use the spec download cache")

	return cmd
}
