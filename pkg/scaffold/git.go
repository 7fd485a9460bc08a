package scaffold

import (
	"github.com/go-git/go-git/v5"

	"github.com/CliForge/oascaffold/pkg/errors"
)

// InitGit initializes a git repository in dir. An existing repository is
// left alone.
func InitGit(dir string) error {
	_, err := git.PlainInit(dir, false)
	if err != nil && !errors.Is(err, git.ErrRepositoryAlreadyExists) {
		return errors.Wrapf(err, "initialize git repository in %s", dir)
	}
	return nil
}
