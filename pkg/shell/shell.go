// Package shell runs external tools such as the binding generator, git and
// the go command.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/CliForge/oascaffold/pkg/errors"
)

// ShellError describes a command that exited with a non-zero code.
type ShellError struct {
	// Command is the quoted command line.
	Command string
	// Code is the exit code.
	Code int
	// Output is the trimmed stderr of the command, or stdout when stderr
	// was empty.
	Output string
}

func (e *ShellError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%s: exit status %d", e.Command, e.Code)
	}
	return fmt.Sprintf("%s: exit status %d: %s", e.Command, e.Code, e.Output)
}

// Runner runs commands in Dir with Env added to the process environment.
type Runner struct {
	Dir string
	Env []string
}

// Split splits a shell-like command line into words.
func Split(line string) ([]string, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return nil, errors.Wrapf(err, "parse command line %q", line)
	}
	if len(words) == 0 {
		return nil, errors.New("empty command line")
	}
	return words, nil
}

// Join quotes argv for display.
func Join(argv ...string) string {
	return shellquote.Join(argv...)
}

// RunLine runs the command line with args appended. The line is split the
// way a POSIX shell would split it, without expansions.
func (r *Runner) RunLine(ctx context.Context, line string, args ...string) (string, error) {
	words, err := Split(line)
	if err != nil {
		return "", err
	}
	return r.Run(ctx, words[0], append(words[1:], args...)...)
}

// Run runs name with args and returns its trimmed stdout. A non-zero exit
// yields a *ShellError.
func (r *Runner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return strings.TrimSpace(stdout.String()), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		output := strings.TrimSpace(stderr.String())
		if output == "" {
			output = strings.TrimSpace(stdout.String())
		}
		return "", &ShellError{
			Command: Join(append([]string{name}, args...)...),
			Code:    exitErr.ExitCode(),
			Output:  output,
		}
	}
	if errors.Is(err, exec.ErrNotFound) {
		return "", errors.WithHintf(errors.Wrapf(err, "run %s", name),
			"make sure %s is installed and on your PATH", name)
	}
	return "", errors.Wrapf(err, "run %s", name)
}

// Available reports whether name resolves to an executable.
func Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
