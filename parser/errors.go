package parser

import (
	"fmt"

	"github.com/deepnoodle-ai/optchain/internal/token"
)

// ErrorOpts is a struct that holds a variety of error data.
// All fields are optional, although one of `Cause` or `Message`
// are recommended. If `Cause` is set, `Message` will be ignored.
type ErrorOpts struct {
	ErrType       string
	Message       string
	Cause         error
	File          string
	StartPosition token.Position
	EndPosition   token.Position
	SourceCode    string
}

// NewParserError returns a new ParserError populated with the given error data.
func NewParserError(opts ErrorOpts) *ParserError {
	return &ParserError{
		errType:       opts.ErrType,
		message:       opts.Message,
		cause:         opts.Cause,
		file:          opts.File,
		startPosition: opts.StartPosition,
		endPosition:   opts.EndPosition,
		sourceCode:    opts.SourceCode,
	}
}

// NewSyntaxError returns a new ParserError describing a syntax error.
func NewSyntaxError(opts ErrorOpts) *ParserError {
	opts.ErrType = "syntax error"
	return NewParserError(opts)
}

// ParserError describes one error encountered while parsing, along with the
// location of the offending source code.
type ParserError struct {
	// Type of the error, e.g. "syntax error"
	errType string
	// The error message
	message string
	// The wrapped error
	cause error
	// File where the error occurred
	file string
	// Start position of the error in the input string
	startPosition token.Position
	// End position of the error in the input string
	endPosition token.Position
	// Relevant line of source code text
	sourceCode string
}

func (e *ParserError) Error() string {
	var msg string
	if e.cause != nil {
		msg = e.cause.Error()
	} else if e.message != "" {
		msg = e.message
	}
	if e.errType != "" {
		msg = fmt.Sprintf("%s: %s", e.errType, msg)
	}
	return msg
}

func (e *ParserError) Type() string { return e.errType }

func (e *ParserError) Message() string { return e.message }

func (e *ParserError) Cause() error { return e.cause }

func (e *ParserError) File() string { return e.file }

func (e *ParserError) StartPosition() token.Position { return e.startPosition }

func (e *ParserError) EndPosition() token.Position { return e.endPosition }

func (e *ParserError) SourceCode() string { return e.sourceCode }

func (e *ParserError) Unwrap() error { return e.cause }

// Errors wraps multiple parser errors for multi-error reporting.
// It implements the error interface so it can be returned from Parse().
type Errors struct {
	errs []*ParserError
}

// NewErrors creates an Errors from a slice of ParserError. Returns nil if
// the slice is empty.
func NewErrors(errs []*ParserError) *Errors {
	if len(errs) == 0 {
		return nil
	}
	return &Errors{errs: errs}
}

// Error implements the error interface. Returns the first error message.
func (e *Errors) Error() string {
	if len(e.errs) == 0 {
		return ""
	}
	if len(e.errs) == 1 {
		return e.errs[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", e.errs[0].Error(), len(e.errs)-1)
}

// Errors returns the underlying slice of parser errors.
func (e *Errors) Errors() []*ParserError {
	return e.errs
}

// Count returns the number of errors.
func (e *Errors) Count() int {
	return len(e.errs)
}

// First returns the first error, or nil if empty.
func (e *Errors) First() *ParserError {
	if len(e.errs) == 0 {
		return nil
	}
	return e.errs[0]
}

// Unwrap returns the underlying errors for use with errors.Is/As.
// This implements the Go 1.20+ multi-error interface.
func (e *Errors) Unwrap() []error {
	result := make([]error, len(e.errs))
	for i, err := range e.errs {
		result[i] = err
	}
	return result
}
