package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// exitNotFound is what POSIX shells return when the command does not exist.
const exitNotFound = 127

// Executor runs command lines through the platform shell
type Executor struct {
	stdout io.Writer
	stderr io.Writer

	// For mocking in tests
	commandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// Options configures command execution
type Options struct {
	Stdout io.Writer // Live stdout (defaults to os.Stdout)
	Stderr io.Writer // Live stderr and spinner output (defaults to os.Stderr)
}

// NewExecutor creates an executor with sensible defaults
func NewExecutor(opts *Options) *Executor {
	if opts == nil {
		opts = &Options{}
	}

	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Executor{
		stdout:      stdout,
		stderr:      stderr,
		commandFunc: exec.CommandContext, // Can be mocked for tests
	}
}

// Run executes command in dir, streaming its output live while buffering it.
// A non-zero exit returns the Result together with a *CommandError.
func (e *Executor) Run(ctx context.Context, command, dir string) (*Result, error) {
	return e.run(ctx, command, dir, e.stdout, e.stderr)
}

// Capture executes command in dir without streaming anything to the console.
func (e *Executor) Capture(ctx context.Context, command, dir string) (*Result, error) {
	return e.run(ctx, command, dir, io.Discard, io.Discard)
}

// RunWithSpinner executes command with a progress spinner instead of live
// output. On failure the captured output is replayed to stderr.
func (e *Executor) RunWithSpinner(ctx context.Context, message, command, dir string) (*Result, error) {
	m := newCommandSpinner(message)
	p := tea.NewProgram(m, tea.WithOutput(e.stderr), tea.WithInput(nil))

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		// Spinner failures must not affect the command
		_, _ = p.Run()
	}()

	res, err := e.Capture(ctx, command, dir)

	p.Send(commandDoneMsg{err: err})
	<-finished

	if err != nil && res != nil && res.Combined != "" {
		pw := NewPrefixWriter(e.stderr, "  │ ")
		_, _ = io.WriteString(pw, res.Combined)
		if !strings.HasSuffix(res.Combined, "\n") {
			_, _ = io.WriteString(pw, "\n")
		}
	}

	return res, err
}

func (e *Executor) run(ctx context.Context, command, dir string, stdout, stderr io.Writer) (*Result, error) {
	name, args := shellCommand(command)
	cmd := e.commandFunc(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var outBuf, errBuf bytes.Buffer
	combined := &lockedBuffer{}
	cmd.Stdout = NewTeeWriter(stdout, &outBuf, combined)
	cmd.Stderr = NewTeeWriter(stderr, &errBuf, combined)

	res := &Result{Command: command, Dir: dir}
	collect := func() {
		res.Stdout = outBuf.String()
		res.Stderr = errBuf.String()
		res.Combined = combined.String()
	}

	if err := cmd.Start(); err != nil {
		res.ExitCode = -1
		return res, &CommandError{
			Command:  command,
			Dir:      dir,
			ExitCode: -1,
			Err:      fmt.Errorf("could not be started: %w", err),
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- cmd.Wait()
	}()

	var waitErr error
	select {
	case <-ctx.Done():
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		<-errCh
		waitErr = fmt.Errorf("cancelled: %w", ctx.Err())
		res.ExitCode = -1
	case waitErr = <-errCh:
		res.ExitCode = exitCode(cmd, waitErr)
		// CommandContext may have killed the process first
		if waitErr != nil && ctx.Err() != nil {
			waitErr = fmt.Errorf("cancelled: %w", ctx.Err())
			res.ExitCode = -1
		}
	}
	collect()

	if waitErr == nil {
		return res, nil
	}

	cmdErr := &CommandError{
		Command:  command,
		Dir:      dir,
		ExitCode: res.ExitCode,
		Output:   res.Combined,
		Err:      waitErr,
	}
	if isCommandNotFound(res) {
		cmdErr.Hint = fmt.Sprintf("Command '%s' not found. Please install it and try again", binaryName(command))
	}
	return res, cmdErr
}

// shellCommand returns the shell invocation for a command line
func shellCommand(command string) (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C", command}
	}
	return "sh", []string{"-c", command}
}

func exitCode(cmd *exec.Cmd, err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	return -1
}

// isCommandNotFound checks if a result indicates the shell could not find the binary
func isCommandNotFound(res *Result) bool {
	if res.ExitCode == exitNotFound {
		return true
	}
	out := res.Stderr
	return strings.Contains(out, "command not found") ||
		strings.Contains(out, "is not recognized as an internal or external command")
}

// binaryName returns the first word of a command line
func binaryName(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return command
	}
	return fields[0]
}

// lockedBuffer is written by the stdout and stderr copy goroutines at once.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
