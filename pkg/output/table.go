package output

import (
	"io"

	"github.com/pterm/pterm"

	"github.com/CliForge/oascaffold/pkg/errors"
)

// TableFormatter formats Tabular data as a table using pterm.
type TableFormatter struct{}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

// Name returns the formatter name.
func (f *TableFormatter) Name() string {
	return "table"
}

// Supports reports whether data implements Tabular.
func (f *TableFormatter) Supports(data any) bool {
	_, ok := data.(Tabular)
	return ok
}

// Format formats the data as a table and writes it to the writer.
func (f *TableFormatter) Format(w io.Writer, data any, config *FormatConfig) error {
	if config == nil {
		config = NewFormatConfig()
	}

	t, ok := data.(Tabular)
	if !ok {
		return errors.Newf("cannot format %T as table", data)
	}

	tableData := t.Rows()
	if config.ShowHeaders {
		tableData = append([][]string{t.Header()}, tableData...)
	}

	table := pterm.DefaultTable.WithHasHeader(config.ShowHeaders)
	if config.Colors {
		table = table.WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold))
	}

	rendered, err := table.WithData(tableData).Srender()
	if err != nil {
		return errors.Wrap(err, "render table")
	}
	if !config.Colors {
		rendered = pterm.RemoveColorFromString(rendered)
	}

	_, err = io.WriteString(w, rendered+"\n")
	return err
}
