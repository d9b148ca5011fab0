package apperror

import "fmt"

// AppError is the single error currency of the engine. Services return it,
// handlers translate it into the response envelope.
type AppError struct {
	Code       string // stable machine-readable code (e.g. INVALID_INPUT)
	Message    string // operator-facing message
	HTTPStatus int    // HTTP status the API layer should answer with
	Err        error  // wrapped original error (optional)
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements errors.Unwrap interface for errors.Is/As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError without wrapping
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        nil,
	}
}

// Wrap creates an AppError that wraps an existing error
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// WithDetail returns a copy of the error with extra context appended to the
// message. The original sentinel is kept in the chain so errors.Is still
// matches it.
func (e *AppError) WithDetail(detail string) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    fmt.Sprintf("%s: %s", e.Message, detail),
		HTTPStatus: e.HTTPStatus,
		Err:        e,
	}
}
