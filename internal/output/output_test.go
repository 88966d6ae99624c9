package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// captureOutput redirects output during f
func captureOutput(t *testing.T, f func()) string {
	t.Helper()
	var buf bytes.Buffer
	prev := SetWriter(&buf)
	t.Cleanup(func() { SetWriter(prev) })

	f()
	return buf.String()
}

func TestMessages(t *testing.T) {
	tests := []struct {
		name  string
		print func(string)
		emoji string
	}{
		{"success", Success, "✅"},
		{"error", Error, "❌"},
		{"warn", Warn, "⚠️"},
		{"info", Info, "ℹ️"},
		{"action", Action, "🔧"},
		{"header", Header, ""},
		{"step", Step, "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureOutput(t, func() {
				tt.print("Test message")
			})
			assert.Contains(t, out, tt.emoji)
			assert.Contains(t, out, "Test message")
		})
	}
}

func TestVerbose(t *testing.T) {
	out := captureOutput(t, func() {
		Verbose("Debug message")
	})
	assert.Empty(t, out, "verbose output should be empty when verbose mode is off")

	SetVerbose(true)
	t.Cleanup(func() { SetVerbose(false) })

	out = captureOutput(t, func() {
		Verbose("Debug message")
	})
	assert.Contains(t, out, "🔍")
	assert.Contains(t, out, "Debug message")
}

func TestSetWriterReturnsPrevious(t *testing.T) {
	var a, b bytes.Buffer
	orig := SetWriter(&a)
	defer SetWriter(orig)

	prev := SetWriter(&b)
	assert.Equal(t, &a, prev)

	Info("to b")
	assert.Empty(t, a.String())
	assert.Contains(t, b.String(), "to b")
}
