package scaffold

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/CliForge/oascaffold/pkg/errors"
)

// placeholder matches {{ expression }} or {variable}.
var placeholder = regexp.MustCompile(`\{\{([^}]+)\}\}|\{([a-zA-Z_][a-zA-Z0-9_.]*)\}`)

// TemplateEngine renders project templates. It supports simple variables
// ({name} or {spec.title}) and expr expressions ({{ expression }}).
// Substituted values are not scanned again, so values containing braces
// pass through unchanged.
type TemplateEngine struct {
	programs map[string]*vm.Program
}

// NewTemplateEngine creates a new template engine.
func NewTemplateEngine() *TemplateEngine {
	return &TemplateEngine{programs: make(map[string]*vm.Program)}
}

// Render renders template with data.
func (t *TemplateEngine) Render(template string, data map[string]any) (string, error) {
	if template == "" {
		return "", nil
	}
	if data == nil {
		data = make(map[string]any)
	}

	var firstErr error
	result := placeholder.ReplaceAllStringFunc(template, func(match string) string {
		var (
			value any
			err   error
		)
		if strings.HasPrefix(match, "{{") {
			value, err = t.evaluate(strings.TrimSpace(match[2:len(match)-2]), data)
		} else {
			value, err = resolve(match[1:len(match)-1], data)
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return match
		}
		return fmt.Sprint(value)
	})
	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

func (t *TemplateEngine) evaluate(expression string, data map[string]any) (any, error) {
	program, ok := t.programs[expression]
	if !ok {
		var err error
		program, err = expr.Compile(expression, expr.Env(data), expr.AllowUndefinedVariables())
		if err != nil {
			return nil, errors.Wrapf(err, "compile expression %q", expression)
		}
		t.programs[expression] = program
	}

	result, err := expr.Run(program, data)
	if err != nil {
		return nil, errors.Wrapf(err, "evaluate expression %q", expression)
	}
	return result, nil
}

// resolve looks up a dotted path like "spec.title".
func resolve(path string, data map[string]any) (any, error) {
	var current any = data
	for _, part := range strings.Split(path, ".") {
		switch v := current.(type) {
		case map[string]any:
			val, ok := v[part]
			if !ok {
				return nil, errors.Newf("variable '%s' not found", path)
			}
			current = val
		case map[string]string:
			val, ok := v[part]
			if !ok {
				return nil, errors.Newf("variable '%s' not found", path)
			}
			current = val
		default:
			return nil, errors.Newf("cannot access field '%s' on non-map type", part)
		}
	}
	return current, nil
}
