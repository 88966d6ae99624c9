package exec

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	elapsedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// commandSpinner shows progress for one quiet command
type commandSpinner struct {
	spinner spinner.Model
	message string
	started time.Time
	elapsed time.Duration
	done    bool
	err     error
}

// commandDoneMsg stops the spinner with the command outcome
type commandDoneMsg struct {
	err error
}

func newCommandSpinner(message string) *commandSpinner {
	return &commandSpinner{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		message: message,
		started: time.Now(),
	}
}

func (m *commandSpinner) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *commandSpinner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case commandDoneMsg:
		m.done = true
		m.err = msg.err
		m.elapsed = time.Since(m.started)
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *commandSpinner) View() string {
	if !m.done {
		return fmt.Sprintf("%s %s... %s", m.spinner.View(), m.message,
			elapsedStyle.Render(formatElapsed(time.Since(m.started))))
	}

	mark := "✅"
	if m.err != nil {
		mark = "❌"
	}
	return fmt.Sprintf("%s %s %s\n", mark, m.message, elapsedStyle.Render(formatElapsed(m.elapsed)))
}

func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("(%s)", d.Round(100*time.Millisecond))
}
