package main

import (
	"path/filepath"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/CliForge/oascaffold/pkg/codegen"
	"github.com/CliForge/oascaffold/pkg/output"
)

// fileTable shows the files a run wrote.
type fileTable struct {
	*codegen.Report
}

func (t fileTable) Header() []string { return []string{"FILE", "STATUS", "BYTES"} }

func (t fileTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.Files))
	for _, f := range t.Files {
		rows = append(rows, []string{f.Path, string(f.Status), strconv.Itoa(f.Bytes)})
	}
	return rows
}

func newGenerateCmd() *cobra.Command {
	var (
		withMain bool
		dryRun   bool
		module   string
	)

	cmd := &cobra.Command{
		Use:   "generate [project-dir]",
		Short: "Regenerate the command layer from the project's bindings",
		Long: `Regenerate the command layer from the project's client bindings.

One command group is written per API, then the aggregator. Files whose
content would not change are left untouched. Generation stops at the first
failure.`,
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
			cfg.ModulePath = module
			cfg.DryRun = dryRun
			if withMain {
				cfg.MainName = filepath.Base(dir)
			}

			report, err := codegen.New(cfg, a.log).Generate()
			if err != nil {
				return err
			}

			if err := output.NewManager().Format(a.out, fileTable{report}, a.cfg.Output.Format); err != nil {
				return err
			}
			if a.cfg.Output.Format == "table" {
				verb := "Generated"
				if dryRun {
					verb = "Would generate"
				}
				pterm.Success.WithWriter(a.out).Printfln("%s %d commands across %d APIs", verb, report.Operations(), len(report.Modules))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withMain, "main", false, "also write main.go")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would change without writing")
	cmd.Flags().StringVar(&module, "module", "", "module path (default: read from go.mod)")
	cmd.Flags().String("filter", "", `operation filter expression, e.g. 'api != "store"'`)
	cmd.Flags().StringP("format", "f", "table", "output format: table, json, yaml")

	return cmd
}

