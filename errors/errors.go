package errors

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrorCode identifies a failure class
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeProfileNotFound    ErrorCode = "PROFILE_NOT_FOUND"
	ErrCodeInvalidRole        ErrorCode = "INVALID_ROLE"

	// Store errors
	ErrCodeNotFound            ErrorCode = "NOT_FOUND"
	ErrCodeConstraintViolation ErrorCode = "CONSTRAINT_VIOLATION"
	ErrCodeReferenceViolation  ErrorCode = "REFERENCE_VIOLATION"
	ErrCodeDBError             ErrorCode = "DB_ERROR"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidEmail  ErrorCode = "INVALID_EMAIL"

	// Business errors
	ErrCodePartialFailure   ErrorCode = "PARTIAL_FAILURE"
	ErrCodeSubmitInFlight   ErrorCode = "SUBMIT_IN_FLIGHT"
	ErrCodeInvalidOperation ErrorCode = "INVALID_OPERATION"
)

// AppError carries a failure class alongside the message
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds a new AppError
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// GetAppError extracts an AppError from err, nil if it is not one
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// CodeOf returns the error class of err, ErrCodeDBError when untagged.
func CodeOf(err error) ErrorCode {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code
	}
	return ErrCodeDBError
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

// Classify translates a raw store error into the typed taxonomy. The driver
// message substrings are the fallback for drivers that do not surface
// gorm's translated sentinel errors.
func Classify(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	if appErr := GetAppError(err); appErr != nil {
		return appErr
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NewAppError(ErrCodeNotFound, message, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return NewAppError(ErrCodeConstraintViolation, message, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return NewAppError(ErrCodeReferenceViolation, message, err)
	}

	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "duplicate") || strings.Contains(text, "unique constraint"):
		return NewAppError(ErrCodeConstraintViolation, message, err)
	case strings.Contains(text, "foreign key constraint"):
		return NewAppError(ErrCodeReferenceViolation, message, err)
	case strings.Contains(text, "record not found"):
		return NewAppError(ErrCodeNotFound, message, err)
	}

	return NewAppError(ErrCodeDBError, message, err)
}

// UserMessage maps an error class to the message shown to staff. The switch
// is exhaustive over the taxonomy so a new code fails loudly in review
// rather than silently falling through to text matching.
func UserMessage(err error) string {
	appErr := GetAppError(err)
	if appErr == nil {
		return "Something went wrong. Please try again."
	}

	switch appErr.Code {
	case ErrCodeConstraintViolation:
		return "A record with this name already exists. Please choose a different name."
	case ErrCodeReferenceViolation:
		return "A referenced record is not available. Please pick another one or leave it unset."
	case ErrCodeNotFound:
		return "The record no longer exists. It may have been deleted by someone else."
	case ErrCodePartialFailure:
		return appErr.Message
	case ErrCodeInvalidCredentials:
		return "Invalid email or password."
	case ErrCodeProfileNotFound:
		return "No profile found for this account."
	case ErrCodeUnauthorized, ErrCodeInvalidToken:
		return "Please log in to continue."
	case ErrCodeValidation, ErrCodeRequiredField, ErrCodeInvalidFormat, ErrCodeInvalidEmail, ErrCodeInvalidRole:
		return appErr.Message
	case ErrCodeSubmitInFlight:
		return "A submission is already in progress."
	case ErrCodeInvalidOperation:
		return appErr.Message
	default:
		return "Something went wrong. Please try again."
	}
}

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrUnauthorized      = errors.New("unauthorized")

	ErrPropertyNotFound = errors.New("property not found")
	ErrRoomNotFound     = errors.New("room not found")

	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingRequired = errors.New("missing required field")
)
