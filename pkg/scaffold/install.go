package scaffold

import (
	"context"

	"github.com/pterm/pterm"

	"github.com/CliForge/oascaffold/pkg/errors"
	"github.com/CliForge/oascaffold/pkg/shell"
)

// Install resolves the project's dependencies and installs its binary.
func Install(ctx context.Context, dir string, log *pterm.Logger) error {
	r := &shell.Runner{Dir: dir}
	for _, args := range [][]string{{"mod", "tidy"}, {"install", "."}} {
		log.Info("running go "+args[0], log.Args("dir", dir))
		if _, err := r.Run(ctx, "go", args...); err != nil {
			return errors.Wrapf(err, "go %s", shell.Join(args...))
		}
	}
	return nil
}
