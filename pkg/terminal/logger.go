// Package terminal provides the terminal surface of oascaffold: a levelled
// logger, section headers, interactive prompts and a progress spinner.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/CliForge/oascaffold/pkg/errors"
)

var levels = map[string]pterm.LogLevel{
	"trace": pterm.LogLevelTrace,
	"debug": pterm.LogLevelDebug,
	"info":  pterm.LogLevelInfo,
	"warn":  pterm.LogLevelWarn,
	"error": pterm.LogLevelError,
	"panic": pterm.LogLevelError,
	"none":  pterm.LogLevelDisabled,
}

// ParseLevel maps a level name to a pterm log level.
func ParseLevel(name string) (pterm.LogLevel, error) {
	level, ok := levels[strings.ToLower(name)]
	if !ok {
		return pterm.LogLevelDisabled, errors.Newf("unknown log level %q", name)
	}
	return level, nil
}

// NewLogger returns a logger writing to w at the named level. Format is
// "text" or "json".
func NewLogger(level, format string, w io.Writer) (*pterm.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	logger := pterm.DefaultLogger.WithLevel(lvl).WithWriter(w)
	switch format {
	case "", "text":
		logger = logger.WithFormatter(pterm.LogFormatterColorful)
	case "json":
		logger = logger.WithFormatter(pterm.LogFormatterJSON)
	default:
		return nil, errors.Newf("unknown log format %q", format)
	}
	return logger, nil
}

// Header prints a section header for a pipeline stage.
func Header(w io.Writer, title string) {
	fmt.Fprint(w, pterm.DefaultSection.Sprint(title))
}
