package output

import (
	"io"
	"sort"
	"strings"

	"github.com/CliForge/oascaffold/pkg/errors"
)

// Manager holds the available formatters by name.
type Manager struct {
	formatters    map[string]Formatter
	defaultFormat string
	config        *FormatConfig
}

// NewManager creates a new output manager with default formatters.
func NewManager() *Manager {
	m := &Manager{
		formatters:    make(map[string]Formatter),
		defaultFormat: "table",
		config:        NewFormatConfig(),
	}

	m.RegisterFormatter(NewJSONFormatter())
	m.RegisterFormatter(NewYAMLFormatter())
	m.RegisterFormatter(NewTableFormatter())

	return m
}

// RegisterFormatter registers a new formatter.
func (m *Manager) RegisterFormatter(formatter Formatter) {
	m.formatters[formatter.Name()] = formatter
}

// GetFormatter returns a formatter by name.
func (m *Manager) GetFormatter(name string) (Formatter, error) {
	formatter, ok := m.formatters[strings.ToLower(name)]
	if !ok {
		return nil, errors.WithHintf(errors.Newf("unknown output format %q", name),
			"supported formats: %s", strings.Join(m.Formats(), ", "))
	}
	return formatter, nil
}

// Formats returns the registered format names, sorted.
func (m *Manager) Formats() []string {
	names := make([]string, 0, len(m.formatters))
	for name := range m.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetConfig sets the format configuration.
func (m *Manager) SetConfig(config *FormatConfig) {
	m.config = config
}

// Format formats data using the named format, or the default format when
// format is empty.
func (m *Manager) Format(w io.Writer, data any, format string) error {
	if format == "" {
		format = m.defaultFormat
	}

	formatter, err := m.GetFormatter(format)
	if err != nil {
		return err
	}
	if !formatter.Supports(data) {
		return errors.Newf("formatter '%s' does not support data type %T", format, data)
	}

	return formatter.Format(w, data, m.config)
}
