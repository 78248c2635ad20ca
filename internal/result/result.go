// Package result holds the outcome type returned by the services for expected
// business conditions.
package result

import "maps"

// OperationError classifies a failed operation.
type OperationError int

// Operation error kinds.
const (
	None OperationError = iota
	EntityNotFound
	ValidationError
	DatabaseError
	ExternalError
)

func (e OperationError) String() string {
	switch e {
	case None:
		return "None"
	case EntityNotFound:
		return "EntityNotFound"
	case ValidationError:
		return "ValidationError"
	case DatabaseError:
		return "DatabaseError"
	case ExternalError:
		return "ExternalError"
	default:
		return "Unknown"
	}
}

// Result is either a successful output or a set of keyed error messages
// together with an OperationError.
// The zero value is a successful result holding the zero value of T.
type Result[T any] struct {
	output    T
	errors    map[string]string
	errorType OperationError
}

// Success wraps output in a successful Result.
func Success[T any](output T) Result[T] {
	return Result[T]{output: output}
}

// Fail returns a Result holding message keyed by the name of kind.
func Fail[T any](kind OperationError, message string) Result[T] {
	return Result[T]{
		errors:    map[string]string{kind.String(): message},
		errorType: kind,
	}
}

// FailWith returns a Result holding a copy of errs.
func FailWith[T any](errs map[string]string, kind OperationError) Result[T] {
	return Result[T]{
		errors:    maps.Clone(errs),
		errorType: kind,
	}
}

// IsSuccessful reports whether the result has no error kind and no error messages.
func (r Result[T]) IsSuccessful() bool {
	return r.errorType == None && len(r.errors) == 0
}

// Output returns the payload. It is the zero value of T for failed results.
func (r Result[T]) Output() T {
	return r.output
}

// Errors returns a copy of the error messages keyed by field or error kind.
func (r Result[T]) Errors() map[string]string {
	return maps.Clone(r.errors)
}

// ErrorType returns the error kind, None on success.
func (r Result[T]) ErrorType() OperationError {
	return r.errorType
}

// DeleteResult is the outcome of a delete operation.
type DeleteResult int

// Delete outcomes.
const (
	DeleteSuccess DeleteResult = iota
	DeleteFailed
	DeleteEntityNotFound
)

func (d DeleteResult) String() string {
	switch d {
	case DeleteSuccess:
		return "Success"
	case DeleteFailed:
		return "Failed"
	case DeleteEntityNotFound:
		return "EntityNotFound"
	default:
		return "Unknown"
	}
}
