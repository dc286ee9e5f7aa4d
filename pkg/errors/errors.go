package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ResourceNotFoundError indicates a resource was not found.
type ResourceNotFoundError struct {
	Kind string
}

func NewResourceNotFoundError(kind string) *ResourceNotFoundError {
	return &ResourceNotFoundError{Kind: kind}
}

func NewTranslationNotFoundError(id uuid.UUID) *ResourceNotFoundError {
	return NewResourceNotFoundError(fmt.Sprintf("translation %s", id))
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Kind)
}

// IsResourceNotFoundError checks if the error is a ResourceNotFoundError.
func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

// UnauthorizedError indicates the caller is not authorized to perform the operation.
type UnauthorizedError struct{}

func NewUnauthorizedError() *UnauthorizedError {
	return &UnauthorizedError{}
}

func (e *UnauthorizedError) Error() string {
	return "not authorized"
}

// IsUnauthorizedError checks if the error is an UnauthorizedError.
func IsUnauthorizedError(err error) bool {
	var e *UnauthorizedError
	return errors.As(err, &e)
}

// CompileError indicates the compiler rejected a PRQL query.
type CompileError struct {
	Messages []string
}

func NewCompileError(messages []string) *CompileError {
	return &CompileError{Messages: messages}
}

func (e *CompileError) Error() string {
	if len(e.Messages) == 0 {
		return "prql compilation failed"
	}
	return fmt.Sprintf("prql compilation failed: %s", strings.Join(e.Messages, "; "))
}

// IsCompileError checks if the error is a CompileError.
func IsCompileError(err error) bool {
	var e *CompileError
	return errors.As(err, &e)
}

func NewCompilerUnreachableError(err error) *CompilerUnreachableError {
	cErr := &CompilerUnreachableError{msg: "prql compiler unreachable"}
	if strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "no such host") {
		cErr.msg = "prql compiler unreachable"
	} else {
		cErr.msg = fmt.Sprintf("prql compiler unreachable: %s", err.Error())
	}
	return cErr
}

// CompilerUnreachableError indicates the compiler did not produce an answer.
type CompilerUnreachableError struct {
	msg string
}

func (e *CompilerUnreachableError) Error() string {
	return e.msg
}

func IsCompilerUnreachableError(err error) bool {
	var e *CompilerUnreachableError
	return errors.As(err, &e)
}
