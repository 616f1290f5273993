package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/nvinuesa/gguser/internal/model"
	"github.com/nvinuesa/gguser/internal/selector"
)

// Exit statuses.
const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

// exitError carries an exit status for a command that has already printed
// its own message.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func silentExit(code int) error {
	return &exitError{code: code}
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	if errors.Is(err, selector.ErrCancelled) {
		return exitInterrupted
	}
	return exitFailure
}

// outputError prints err once on w. Usage errors are printed as-is and
// silent exits print nothing.
func outputError(w io.Writer, err error) {
	var exitErr *exitError
	switch {
	case errors.As(err, &exitErr):
		return
	case model.IsUsageError(err):
		fmt.Fprintln(w, err.Error())
	case errors.Is(err, selector.ErrCancelled):
		printMuted(w, "Selection cancelled.")
	default:
		if isTTY(w) {
			fmt.Fprintln(w, errorStyle.Render("Error:"), err)
		} else {
			fmt.Fprintln(w, "Error:", err)
		}
	}
}
