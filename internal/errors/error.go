package errors

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryBuilder Category = "builder"
	CategoryScript  Category = "script"
	CategoryConfig  Category = "config"
	CategoryPublish Category = "publish"
	CategoryServer  Category = "server"
	CategoryCLI     Category = "cli"
)

// Location represents a source code location.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// HyperError is a structured error with a code, hint and optional location.
type HyperError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the source location where the error occurred, if known.
	Location *Location

	// Context contains surrounding source lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *HyperError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *HyperError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a HyperError with the same code.
func (e *HyperError) Is(target error) bool {
	t, ok := target.(*HyperError)
	if !ok || t.Code == "" {
		return false
	}
	return t.Code == e.Code
}

// WithLocation adds a source location and reads the surrounding lines when
// the file is readable.
func (e *HyperError) WithLocation(file string, line, column int) *HyperError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *HyperError) WithSuggestion(s string) *HyperError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *HyperError) WithDetail(d string) *HyperError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detailed explanation to the error.
func (e *HyperError) WithDetailf(format string, args ...any) *HyperError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *HyperError) Wrap(err error) *HyperError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a HyperError from a registered error code.
func New(code string) *HyperError {
	template, ok := registry[code]
	if !ok {
		return &HyperError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &HyperError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new HyperError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *HyperError {
	return &HyperError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a HyperError. Errors that already are
// (or wrap) a HyperError are returned unchanged.
func FromError(err error, code string) *HyperError {
	if err == nil {
		return nil
	}
	var he *HyperError
	if errors.As(err, &he) {
		return he
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err is or wraps a HyperError with the given code.
func HasCode(err error, code string) bool {
	var he *HyperError
	for err != nil {
		if !errors.As(err, &he) {
			return false
		}
		if he.Code == code {
			return true
		}
		err = he.Wrapped
	}
	return false
}
