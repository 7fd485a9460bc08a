package terminal

import (
	"github.com/pterm/pterm"

	"github.com/CliForge/oascaffold/pkg/errors"
)

// Prompter asks the user questions.
type Prompter struct {
	// DisableInteractive answers every question with its default.
	DisableInteractive bool
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(message string, def bool) (bool, error) {
	if p.DisableInteractive {
		return def, nil
	}
	result, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(def).
		Show(message)
	if err != nil {
		return false, errors.Wrap(err, "confirm prompt")
	}
	return result, nil
}

// Text asks for a line of text. An empty answer yields def.
func (p *Prompter) Text(message, def string) (string, error) {
	if p.DisableInteractive {
		return def, nil
	}
	if def != "" {
		message += " (default: " + def + ")"
	}
	result, err := pterm.DefaultInteractiveTextInput.
		WithMultiLine(false).
		Show(message)
	if err != nil {
		return "", errors.Wrap(err, "text prompt")
	}
	if result == "" {
		return def, nil
	}
	return result, nil
}
