package exec

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommandSpinner(t *testing.T) {
	m := newCommandSpinner("Building program")
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Building program...")

	_, cmd := m.Update(commandDoneMsg{})
	assert.NotNil(t, cmd, "done should quit the program")
	assert.Contains(t, m.View(), "✅ Building program")

	failed := newCommandSpinner("Running tests")
	failed.Update(commandDoneMsg{err: errors.New("exit status 1")})
	assert.Contains(t, failed.View(), "❌ Running tests")
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "(1.2s)", formatElapsed(1234*time.Millisecond))
	assert.Equal(t, "(0s)", formatElapsed(10*time.Millisecond))
}
