package domain

import (
	"errors"
	"fmt"
)

// CommandExitError reports that an external collaborator exited non-zero.
// Its code is passed through as pave's own exit code.
type CommandExitError struct {
	// Program is the command as the user named it.
	Program string

	// Code is the child's exit code.
	Code int
}

func (e *CommandExitError) Error() string {
	return fmt.Sprintf("'%s' exited with code %d", e.Program, e.Code)
}

// ExitCode extracts a passthrough exit code from an error chain.
// It returns 1 for any failure that is not a child exit.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *CommandExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
