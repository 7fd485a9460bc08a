// Package bindgen drives openapi-generator, which turns the OpenAPI document
// into the Go client bindings the command layer is generated from.
package bindgen

import (
	"context"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pterm/pterm"

	"github.com/CliForge/oascaffold/pkg/errors"
	"github.com/CliForge/oascaffold/pkg/shell"
)

const installHint = "install openapi-generator (https://openapi-generator.tech/docs/installation) " +
	"or set generator.command, e.g. \"npx @openapitools/openapi-generator-cli\""

var versionPattern = regexp.MustCompile(`\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?`)

// Generator invokes the external binding generator.
type Generator struct {
	// Command is the generator command line.
	Command string
	// Name is the generator target, "go" for Go bindings.
	Name string
	// Constraint is a semver constraint on the generator version; empty
	// disables the check.
	Constraint string
	// Properties are key=value additional properties.
	Properties []string

	Runner *shell.Runner
	Logger *pterm.Logger
}

// Args returns the arguments of a generate run reading spec and writing to
// out.
func (g *Generator) Args(spec, out string) []string {
	args := []string{"generate", "-i", spec, "-g", g.Name, "-o", out}
	if len(g.Properties) > 0 {
		args = append(args, "--additional-properties", strings.Join(g.Properties, ","))
	}
	return args
}

// Version returns the installed generator version.
func (g *Generator) Version(ctx context.Context) (*semver.Version, error) {
	out, err := g.runner().RunLine(ctx, g.Command, "version")
	if err != nil {
		return nil, errors.WithHint(errors.Wrap(err, "query generator version"), installHint)
	}
	// wrappers such as npx may print download progress first
	match := versionPattern.FindString(out)
	if match == "" {
		return nil, errors.Newf("unrecognized generator version output %q", out)
	}
	v, err := semver.NewVersion(match)
	if err != nil {
		return nil, errors.Wrapf(err, "parse generator version %q", match)
	}
	return v, nil
}

// CheckVersion verifies the installed generator satisfies Constraint.
func (g *Generator) CheckVersion(ctx context.Context) error {
	if g.Constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(g.Constraint)
	if err != nil {
		return errors.Wrapf(err, "parse version constraint %q", g.Constraint)
	}
	v, err := g.Version(ctx)
	if err != nil {
		return err
	}
	if ok, reasons := c.Validate(v); !ok {
		msgs := make([]string, 0, len(reasons))
		for _, r := range reasons {
			msgs = append(msgs, r.Error())
		}
		return errors.WithHintf(
			errors.Newf("openapi-generator %s does not satisfy %s: %s", v, g.Constraint, strings.Join(msgs, "; ")),
			"upgrade openapi-generator or relax generator.version")
	}
	g.logger().Debug("generator version", g.logger().Args("version", v.String(), "constraint", g.Constraint))
	return nil
}

// Generate writes bindings for spec into out.
func (g *Generator) Generate(ctx context.Context, spec, out string) error {
	args := g.Args(spec, out)
	g.logger().Info("generating bindings", g.logger().Args("command", shell.Join(append([]string{g.Command}, args...)...)))

	output, err := g.runner().RunLine(ctx, g.Command, args...)
	if err != nil {
		var shellErr *shell.ShellError
		if errors.As(err, &shellErr) {
			return errors.WithDetail(errors.Wrap(err, "openapi-generator failed"), shellErr.Output)
		}
		return errors.WithHint(errors.Wrap(err, "openapi-generator failed"), installHint)
	}
	if output != "" {
		g.logger().Trace(output)
	}
	return nil
}

func (g *Generator) runner() *shell.Runner {
	if g.Runner == nil {
		return &shell.Runner{}
	}
	return g.Runner
}

func (g *Generator) logger() *pterm.Logger {
	if g.Logger == nil {
		return pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled)
	}
	return g.Logger
}
