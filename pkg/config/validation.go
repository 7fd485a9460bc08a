package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

var (
	logLevels     = []string{"trace", "debug", "info", "warn", "error", "none"}
	logFormats    = []string{"text", "json"}
	outputFormats = []string{"table", "json", "yaml"}
)

// Validator handles configuration validation.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

// Validate validates a complete configuration.
func (v *Validator) Validate(cfg *Config) error {
	v.errors = make(ValidationErrors, 0)

	v.oneOf("log.level", cfg.Log.Level, logLevels)
	v.oneOf("log.format", cfg.Log.Format, logFormats)
	v.oneOf("output.format", cfg.Output.Format, outputFormats)
	v.validateGenerator(&cfg.Generator)
	v.validateLayout(&cfg.Layout)

	if len(v.errors) > 0 {
		return v.errors
	}
	return nil
}

func (v *Validator) validateGenerator(g *GeneratorConfig) {
	if strings.TrimSpace(g.Command) == "" {
		v.addError("generator.command", "command is required")
	}
	if g.Name == "" {
		v.addError("generator.name", "name is required")
	}
	if g.Output == "" {
		v.addError("generator.output", "output is required")
	}
	if g.Version != "" {
		if _, err := semver.NewConstraint(g.Version); err != nil {
			v.addError("generator.version", fmt.Sprintf("invalid version constraint: %v", err))
		}
	}
	for i, p := range g.Properties {
		if k, _, ok := strings.Cut(p, "="); !ok || k == "" {
			v.addError(fmt.Sprintf("generator.properties[%d]", i), "property must have the form key=value")
		}
	}
}

func (v *Validator) validateLayout(l *LayoutConfig) {
	if l.ClientFile == "" {
		v.addError("layout.client_file", "client_file is required")
	}
	if l.ClientType == "" {
		v.addError("layout.client_type", "client_type is required")
	}
	if l.Suffix == "" {
		v.addError("layout.suffix", "suffix is required")
	}
	if !strings.Contains(l.UnitPattern, "{base}") && !strings.Contains(l.UnitPattern, "{ident}") {
		v.addError("layout.unit_pattern", "unit_pattern must contain {base} or {ident}")
	}
	if l.CLIDir == "" || strings.HasPrefix(l.CLIDir, "/") || strings.Contains(l.CLIDir, "..") {
		v.addError("layout.cli_dir", "cli_dir must be a relative path inside the project")
	}
}

func (v *Validator) oneOf(field, value string, valid []string) {
	if !slices.Contains(valid, value) {
		v.addError(field, fmt.Sprintf("must be one of: %s", strings.Join(valid, ", ")))
	}
}

func (v *Validator) addError(field, message string) {
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Message: message,
	})
}
