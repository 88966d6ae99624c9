package exec

import (
	"errors"
	"fmt"
)

// ErrCommandFailed matches every *CommandError.
var ErrCommandFailed = errors.New("command failed")

// CommandError describes a command that could not be started or exited with a
// non-zero status.
//
//	var cmdErr *CommandError
//	if errors.As(err, &cmdErr) {
//	    fmt.Println(cmdErr.Output)
//	}
type CommandError struct {
	// Command is the command line that was executed.
	Command string

	// Dir is the working directory.
	Dir string

	// ExitCode is the process exit code (-1 if the process never ran).
	ExitCode int

	// Output is the combined stdout and stderr, in arrival order.
	Output string

	// Hint is an optional suggestion, e.g. for a missing binary.
	Hint string

	// Err is the underlying error.
	Err error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %q exited with code %d", e.Command, e.ExitCode)
	if e.ExitCode < 0 && e.Err != nil {
		msg = fmt.Sprintf("command %q %v", e.Command, e.Err)
	}
	if e.Hint != "" {
		msg += "\n💡 " + e.Hint
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrCommandFailed) true for any CommandError.
func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailed
}
