package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/ebookstore/internal/book"
	"github.com/roach88/ebookstore/internal/render"
)

// Exit codes for CLI commands.
const (
	ExitSuccess  = 0 // Successful execution
	ExitFailure  = 1 // Runtime failure (store unreadable, disk error, etc.)
	ExitUsage    = 2 // Bad invocation (unknown flag, non-integer id, bad config)
	ExitNotFound = 3 // Subcommand addressed a book that doesn't exist
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code
	Message string // Error message
	Err     error  // Underlying error (optional)
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

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFailure if the error is not an ExitError.
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

// OutputFormatter handles JSON vs text output for the scripting subcommands.
// The interactive menu always writes text.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "failure", "usage" or "not_found"
	Message string `json:"message"`           // human-readable message
	Details string `json:"details,omitempty"` // underlying cause
}

// Error codes reported in CLIError, one per non-zero exit code.
const (
	ErrCodeFailure  = "failure"
	ErrCodeUsage    = "usage"
	ErrCodeNotFound = "not_found"
)

// ErrorCode names the exit code of err for CLIError.
func ErrorCode(err error) string {
	switch GetExitCode(err) {
	case ExitUsage:
		return ErrCodeUsage
	case ExitNotFound:
		return ErrCodeNotFound
	default:
		return ErrCodeFailure
	}
}

// Books writes a list of books: a grid in text mode, an array in JSON mode.
func (f *OutputFormatter) Books(books []book.Book) error {
	if f.Format == "json" {
		return f.json(books)
	}
	if len(books) == 0 {
		_, err := fmt.Fprintln(f.Writer, render.EmptyInventory)
		return err
	}
	return render.Table(f.Writer, books)
}

// Book writes a single book, preceded by msg in text mode.
func (f *OutputFormatter) Book(msg string, b book.Book) error {
	if f.Format == "json" {
		return f.json(b)
	}
	if msg != "" {
		fmt.Fprintln(f.Writer, msg)
	}
	return render.Detail(f.Writer, b)
}

// Message writes a status line in text mode and {"status":"ok"} in JSON mode.
func (f *OutputFormatter) Message(msg string) error {
	if f.Format == "json" {
		return f.json(nil)
	}
	_, err := fmt.Fprintln(f.Writer, msg)
	return err
}

// Error writes err as a {"status":"error"} response in JSON mode and as an
// "Error [code]: message" line in text mode.
func (f *OutputFormatter) Error(err error) error {
	cliErr := &CLIError{Code: ErrorCode(err), Message: err.Error()}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		cliErr.Message = exitErr.Message
		if exitErr.Err != nil {
			cliErr.Details = exitErr.Err.Error()
		}
	}

	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  cliErr,
		})
	}

	_, werr := fmt.Fprintf(f.Writer, "Error [%s]: %s\n", cliErr.Code, cliErr.Message)
	return werr
}

func (f *OutputFormatter) json(data interface{}) error {
	return json.NewEncoder(f.Writer).Encode(CLIResponse{
		Status: "ok",
		Data:   data,
	})
}
