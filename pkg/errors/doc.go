// Package errors provides custom error types for the prql-translator.
//
// Each error type includes a constructor, Error() method, and a type-checking
// helper using errors.As for proper error unwrapping.
//
// # Error Types Overview
//
//	┌──────────────────────────┬────────┬─────────────────────────────────────┐
//	│ Error Type               │ HTTP   │ Description                         │
//	├──────────────────────────┼────────┼─────────────────────────────────────┤
//	│ ResourceNotFoundError    │ 404    │ Requested resource doesn't exist    │
//	│ UnauthorizedError        │ 401    │ Missing or invalid credentials      │
//	│ CompileError             │ 422    │ Compiler rejected the PRQL query    │
//	│ CompilerUnreachableError │ 502    │ Compiler did not answer             │
//	└──────────────────────────┴────────┴─────────────────────────────────────┘
//
// # ResourceNotFoundError
//
// Indicates a requested resource was not found in the store.
//
// Constructors:
//   - NewResourceNotFoundError(kind string) - Generic resource not found
//   - NewTranslationNotFoundError(id uuid.UUID) - Translation record not found
//
// Usage:
//
//	if errors.IsResourceNotFoundError(err) {
//	    c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
//	}
//
// # UnauthorizedError
//
// Indicates the request carried no token, or a token that failed validation.
//
// Constructor:
//   - NewUnauthorizedError()
//
// # CompileError
//
// Indicates the compiler parsed the request but rejected the PRQL query.
// Messages holds the compiler's diagnostics verbatim so callers can surface
// them to the pipeline author.
//
// Constructor:
//   - NewCompileError(messages []string)
//
// Usage:
//
//	var compileErr *errors.CompileError
//	if stderrors.As(err, &compileErr) {
//	    c.JSON(http.StatusUnprocessableEntity, gin.H{"error": compileErr.Error(), "details": compileErr.Messages})
//	}
//
// # CompilerUnreachableError
//
// Indicates the compiler could not be reached or answered with a server
// error. Connection-level noise ("connection refused", "no such host") is
// collapsed into a stable message.
//
// Constructor:
//   - NewCompilerUnreachableError(err error) - Wraps and interprets the underlying error
//
// # Type Checking Pattern
//
// All error types provide Is* helper functions that use errors.As
// for proper error chain unwrapping:
//
//	func IsResourceNotFoundError(err error) bool {
//	    var e *ResourceNotFoundError
//	    return errors.As(err, &e)
//	}
//
// This allows checking wrapped errors:
//
//	wrapped := fmt.Errorf("operation failed: %w", errors.NewTranslationNotFoundError(id))
//	errors.IsResourceNotFoundError(wrapped) // returns true
//
// # Handler Error Mapping
//
// Handlers typically map errors to HTTP status codes:
//
//	switch {
//	case errors.IsResourceNotFoundError(err):
//	    c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
//	case errors.IsCompileError(err):
//	    c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
//	case errors.IsCompilerUnreachableError(err):
//	    c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
//	default:
//	    c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
//	}
package errors
