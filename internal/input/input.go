// Package input provides interactive terminal prompts.
//
// Prompts are rendered with huh. Callers should check IsInteractive first and
// fall back to flags when stdin is not a terminal.
package input

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ErrNotInteractive is returned when a prompt is attempted without a terminal.
var ErrNotInteractive = errors.New("not an interactive terminal")

// ErrAborted is returned when the user cancels a prompt (Ctrl+C or Esc).
var ErrAborted = errors.New("prompt aborted")

// Option is one choice in a multi-select prompt.
type Option struct {
	Label    string
	Value    string
	Selected bool
}

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Prompt asks the user for text input with an optional default value.
// If the user submits an empty answer, the default is returned.
func Prompt(message, defaultValue string) (string, error) {
	if !IsInteractive() {
		return defaultValue, ErrNotInteractive
	}

	var value string
	field := huh.NewInput().Title(message).Value(&value)
	if defaultValue != "" {
		field = field.Placeholder(defaultValue)
	}
	if err := run(huh.NewForm(huh.NewGroup(field))); err != nil {
		return defaultValue, err
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return defaultValue, nil
	}
	return value, nil
}

// Confirm asks the user a yes/no question.
func Confirm(message string, defaultYes bool) (bool, error) {
	if !IsInteractive() {
		return defaultYes, ErrNotInteractive
	}

	value := defaultYes
	field := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&value)
	if err := run(huh.NewForm(huh.NewGroup(field))); err != nil {
		return defaultYes, err
	}
	return value, nil
}

// MultiSelect asks the user to pick any number of options and returns the
// chosen values in option order.
func MultiSelect(title string, options []Option) ([]string, error) {
	if !IsInteractive() {
		return nil, ErrNotInteractive
	}

	opts := make([]huh.Option[string], 0, len(options))
	for _, o := range options {
		opts = append(opts, huh.NewOption(o.Label, o.Value).Selected(o.Selected))
	}

	var selected []string
	field := huh.NewMultiSelect[string]().
		Title(title).
		Description("space to toggle, enter to confirm").
		Options(opts...).
		Value(&selected)
	if err := run(huh.NewForm(huh.NewGroup(field))); err != nil {
		return nil, err
	}

	// huh returns values in selection order
	chosen := make([]string, 0, len(selected))
	for _, o := range options {
		for _, v := range selected {
			if v == o.Value {
				chosen = append(chosen, v)
				break
			}
		}
	}
	return chosen, nil
}

func run(form *huh.Form) error {
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

// Terminal implements prompt interfaces with the package functions.
type Terminal struct{}

// Confirm calls Confirm
func (Terminal) Confirm(message string, defaultYes bool) (bool, error) {
	return Confirm(message, defaultYes)
}

// MultiSelect calls MultiSelect
func (Terminal) MultiSelect(title string, options []Option) ([]string, error) {
	return MultiSelect(title, options)
}

// Prompt calls Prompt
func (Terminal) Prompt(message, defaultValue string) (string, error) {
	return Prompt(message, defaultValue)
}
