package pipeline

import (
	"errors"
	"fmt"
)

// ParseError reports a pipeline document that does not fit any known step or
// condition shape. Every validation failure surfaces as one of these;
// rendering cannot fail once Parse succeeded.
type ParseError struct {
	msg string
}

func newParseError(msg string) *ParseError {
	return &ParseError{msg: msg}
}

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{msg: fmt.Sprintf(format, args...)}
}

func (e *ParseError) Error() string {
	return e.msg
}

// IsParseError checks if the error is a ParseError.
func IsParseError(err error) bool {
	var parseError *ParseError
	return errors.As(err, &parseError)
}
