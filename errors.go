package vkscript

import "fmt"

// ParseError is a script parse failure tagged with the 1-based line
// number of the original input. The "<line>: <message>" rendering is
// load-bearing: callers match on it verbatim.
type ParseError struct {
	Line    int
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%d: %s", e.Line, e.Message)
}

// parseErrorf creates a line-tagged parse error with a formatted message.
func parseErrorf(line int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Message: fmt.Sprintf(format, args...)}
}
