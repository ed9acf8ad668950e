package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/triagedesk/triagedesk/internal/record"
	"github.com/triagedesk/triagedesk/internal/store"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation failure (not found, validation, storage)
	ExitCommandError = 2 // Command error (bad flags, unusable database path)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)

	rendered bool // true once a formatter has shown this to the user
}

// Rendered reports whether the error was already presented by a
// formatter, so main does not print it a second time.
func Rendered(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.rendered
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for diagnostics (defaults to Writer)
	Verbose   bool
}

// newFormatter builds the formatter commands share, wired to the
// command's writers so tests can capture output.
func newFormatter(opts *RootOptions, out, errOut io.Writer) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    out,
		ErrWriter: errOut,
		Verbose:   opts.Verbose,
	}
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Kind    string `json:"kind"`    // "not_found", "validation", "storage", "unexpected"
	Message string `json:"message"` // human-readable message
}

// Success outputs a successful result in the configured format.
// In text mode the payload should already be a printable string.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Failure renders an operation error with recovery guidance and returns
// an ExitError carrying the right exit code. The distinction between
// "not found", "storage unavailable", "invalid input" and "unexpected"
// matters: each implies different recovery.
func (f *OutputFormatter) Failure(err error) error {
	kind, message := classifyError(err)

	if f.Format == "json" {
		_ = json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Kind: kind, Message: message},
		})
	} else {
		fmt.Fprintf(f.Writer, "Error: %s\n", message)
		if f.Verbose {
			fmt.Fprintf(f.errWriter(), "cause: %v\n", err)
		}
	}

	return &ExitError{Code: ExitFailure, Message: message, Err: err, rendered: true}
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Goes to ErrWriter so JSON output is never corrupted.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.errWriter(), format+"\n", args...)
}

func (f *OutputFormatter) errWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// classifyError maps an error to a user-facing kind and message with
// the recovery guidance each kind implies.
func classifyError(err error) (kind, message string) {
	switch {
	case store.IsNotFound(err):
		return "not_found", "no patient record with that id - it may already have been removed; list or search to find the current id"
	case record.IsValidation(err):
		return "validation", err.Error()
	case store.IsPersistence(err):
		return "storage", "local patient storage failed - the database may be locked or the disk unavailable; retry, or check the --db path"
	default:
		return "unexpected", fmt.Sprintf("unexpected error: %v", err)
	}
}
