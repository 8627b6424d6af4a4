package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new AppError with a formatted message
func Newf(code, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether err is an AppError carrying the given code,
// unwrapping as needed.
func HasCode(err error, code string) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Predefined error codes.
//
// The first five form the pipeline's failure taxonomy; the rest cover the
// adapters around it.
const (
	CodeInputValidation   = "INPUT_VALIDATION"
	CodeConfiguration     = "CONFIGURATION"
	CodeEmptyBin          = "EMPTY_BIN"
	CodeDegenerateScatter = "DEGENERATE_SCATTER"
	CodeRangeError        = "RANGE_ERROR"

	CodeConfigInvalid = "CONFIG_INVALID"
	CodeDatabaseError = "DATABASE_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeInternalError = "INTERNAL_ERROR"
	CodeInvalidInput  = "INVALID_INPUT"
)

// Common error constructors

// InputValidation flags malformed pipeline input: non-finite samples, length
// mismatches, non-positive ephemeris scalars, duration >= period.
func InputValidation(message string) *AppError {
	return New(CodeInputValidation, message)
}

// Configuration flags a degenerate derived configuration, e.g. a bin count
// below two.
func Configuration(message string) *AppError {
	return New(CodeConfiguration, message)
}

// EmptyBin flags binning that retained no occupied bins.
func EmptyBin(message string) *AppError {
	return New(CodeEmptyBin, message)
}

// DegenerateScatter flags a scatter estimate that is not strictly positive,
// or an exclusion that left no samples to estimate from.
func DegenerateScatter(message string) *AppError {
	return New(CodeDegenerateScatter, message)
}

// RangeError flags a value outside its mathematical domain, e.g. a
// duration/period ratio outside (0, 1).
func RangeError(message string) *AppError {
	return New(CodeRangeError, message)
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string) *AppError {
	return New(CodeDatabaseError, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
