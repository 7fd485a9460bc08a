package main

import (
	"github.com/spf13/cobra"

	"github.com/CliForge/oascaffold/pkg/codegen"
	"github.com/CliForge/oascaffold/pkg/extract"
	"github.com/CliForge/oascaffold/pkg/output"
)

// moduleList is the inspect result. JSON and YAML show the modules as is;
// the table has one row per operation.
type moduleList []extract.APIModule

func (l moduleList) Header() []string {
	return []string{"API", "PACKAGE", "COMMAND", "OPERATION"}
}

func (l moduleList) Rows() [][]string {
	var rows [][]string
	for _, m := range l {
		if len(m.Operations) == 0 {
			rows = append(rows, []string{m.Ident, m.Package, m.Command, "-"})
			continue
		}
		for _, op := range m.Operations {
			rows = append(rows, []string{m.Ident, m.Package, m.Command + " " + op.Command, op.Ident})
		}
	}
	return rows
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [project-dir]",
		Short: "List the APIs and operations found in the project's bindings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := projectDir(args)
			if err != nil {
				return err
			}
			a, err := setup(cmd, dir)
			if err != nil {
				return err
			}

			modules, err := codegen.New(a.codegenConfig(dir), a.log).Extract()
			if err != nil {
				return err
			}
			return output.NewManager().Format(a.out, moduleList(modules), a.cfg.Output.Format)
		},
	}

	cmd.Flags().StringP("format", "f", "table", "output format: table, json, yaml")
	cmd.Flags().String("filter", "", "operation filter expression")

	return cmd
}
