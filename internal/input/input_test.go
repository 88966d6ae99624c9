package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Interactive prompts require a real terminal; under go test stdin is not
// one, so every prompt must refuse rather than block.

func TestPrompt_NotInteractive(t *testing.T) {
	if IsInteractive() {
		t.Skip("running in a terminal")
	}

	value, err := Prompt("Project name", "my_program")
	assert.ErrorIs(t, err, ErrNotInteractive)
	assert.Equal(t, "my_program", value)
}

func TestConfirm_NotInteractive(t *testing.T) {
	if IsInteractive() {
		t.Skip("running in a terminal")
	}

	value, err := Terminal{}.Confirm("Initialize git?", true)
	assert.ErrorIs(t, err, ErrNotInteractive)
	assert.True(t, value)
}

func TestMultiSelect_NotInteractive(t *testing.T) {
	if IsInteractive() {
		t.Skip("running in a terminal")
	}

	values, err := MultiSelect("Steps", []Option{{Label: "Build", Value: "build"}})
	assert.ErrorIs(t, err, ErrNotInteractive)
	assert.Nil(t, values)
}
