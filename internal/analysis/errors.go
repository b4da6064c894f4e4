package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the category of an analysis failure
type ErrorType string

const (
	// ErrTypeValidation indicates input rejected before any request was made
	ErrTypeValidation ErrorType = "validation"

	// ErrTypeService indicates a non-2xx response from the Analysis Service
	ErrTypeService ErrorType = "service"

	// ErrTypeTransport indicates the request never produced a response
	ErrTypeTransport ErrorType = "transport"

	// ErrTypeParsing indicates a response body that could not be decoded
	ErrTypeParsing ErrorType = "parsing"

	// ErrTypeConfiguration indicates an unusable client configuration
	ErrTypeConfiguration ErrorType = "configuration"
)

// User-facing messages
const (
	MsgEmptyInput     = "Please enter some text to analyze"
	MsgAnalysisFailed = "Analysis failed"
	MsgGenericFailure = "Something went wrong"
)

// Error describes why an analysis did not produce a result
type Error struct {
	// Type categorizes the error
	Type ErrorType `json:"type"`

	// Message is the human-readable description; for service errors it is the
	// detail returned by the service, for transport and parsing errors the
	// text of the underlying fault.
	Message string `json:"message"`

	// StatusCode for service errors
	StatusCode int `json:"status_code,omitempty"`

	// Cause is the underlying error, if any
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	parts := []string{fmt.Sprintf("type=%s", e.Type)}

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	if e.Cause != nil && e.Cause.Error() != e.Message {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error of the same type
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Type == t.Type
	}
	return false
}

// UserMessage returns the text shown in the error region
func (e *Error) UserMessage() string {
	switch e.Type {
	case ErrTypeValidation:
		return MsgEmptyInput
	case ErrTypeService:
		if e.Message != "" {
			return e.Message
		}
		return MsgAnalysisFailed
	default:
		if e.Message != "" {
			return e.Message
		}
		return MsgGenericFailure
	}
}

// NewValidationError creates the empty-input error
func NewValidationError() *Error {
	return &Error{Type: ErrTypeValidation, Message: MsgEmptyInput}
}

// NewServiceError creates an error for a non-2xx response; detail may be empty
func NewServiceError(statusCode int, detail string) *Error {
	return &Error{Type: ErrTypeService, Message: detail, StatusCode: statusCode}
}

// NewTransportError wraps a network-level failure
func NewTransportError(cause error) *Error {
	return &Error{Type: ErrTypeTransport, Message: causeMessage(cause), Cause: cause}
}

// NewParsingError wraps a decoding failure
func NewParsingError(message string, cause error) *Error {
	if message == "" {
		message = causeMessage(cause)
	}
	return &Error{Type: ErrTypeParsing, Message: message, Cause: cause}
}

// NewConfigurationError reports an invalid client setting
func NewConfigurationError(field, message string) *Error {
	return &Error{Type: ErrTypeConfiguration, Message: fmt.Sprintf("%s: %s", field, message)}
}

func causeMessage(cause error) string {
	if cause == nil {
		return ""
	}
	return cause.Error()
}

// UserMessage converts any error into the text shown in the error region.
// Errors that are not *Error use their own message, or the generic fallback.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.UserMessage()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgGenericFailure
}

// IsServiceError checks if an error came from a non-2xx response
func IsServiceError(err error) bool {
	return errorTypeOf(err) == ErrTypeService
}

// IsTransportError checks if an error is a network failure
func IsTransportError(err error) bool {
	return errorTypeOf(err) == ErrTypeTransport
}

func errorTypeOf(err error) ErrorType {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Type
	}
	return ""
}
