package shared

import (
	"errors"
	"fmt"
	"strings"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists    = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput     = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized     = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrSiteNotFound     = NewDomainError("SITE_NOT_FOUND", "Site not found")
	ErrNotWooCommerce   = NewDomainError("NOT_WOOCOMMERCE", "Site does not have WooCommerce installed")
	ErrUnsupportedRoute = NewDomainError("UNSUPPORTED_ACTION", "Action must be called directly on the store")
)

// GenericErrorType classifies a failed network request.
type GenericErrorType string

const (
	ErrorTimeout               GenericErrorType = "TIMEOUT"
	ErrorNoConnection          GenericErrorType = "NO_CONNECTION"
	ErrorNetworkError          GenericErrorType = "NETWORK_ERROR"
	ErrorNotFound              GenericErrorType = "NOT_FOUND"
	ErrorCensored              GenericErrorType = "CENSORED"
	ErrorServerError           GenericErrorType = "SERVER_ERROR"
	ErrorInvalidSSLCertificate GenericErrorType = "INVALID_SSL_CERTIFICATE"
	ErrorHTTPAuthError         GenericErrorType = "HTTP_AUTH_ERROR"
	ErrorInvalidResponse       GenericErrorType = "INVALID_RESPONSE"
	ErrorParseError            GenericErrorType = "PARSE_ERROR"
	ErrorAuthorizationRequired GenericErrorType = "AUTHORIZATION_REQUIRED"
	ErrorNotAuthenticated      GenericErrorType = "NOT_AUTHENTICATED"
	ErrorUnknown               GenericErrorType = "UNKNOWN"
)

// NetworkError is the classified outcome of a failed REST call.
type NetworkError struct {
	Type       GenericErrorType `json:"type"`
	StatusCode int              `json:"status_code,omitempty"`
	// APIError is the machine readable "code"/"error" field of the response body.
	APIError string `json:"api_error,omitempty"`
	Message  string `json:"message,omitempty"`
	cause    error
}

// NewNetworkError creates a network error of the given type
func NewNetworkError(errType GenericErrorType, message string) *NetworkError {
	return &NetworkError{Type: errType, Message: message}
}

// WrapNetworkError creates a network error that keeps the underlying cause
func WrapNetworkError(errType GenericErrorType, cause error) *NetworkError {
	ne := &NetworkError{Type: errType, cause: cause}
	if cause != nil {
		ne.Message = cause.Error()
	}
	return ne
}

func (e *NetworkError) Error() string {
	var sb strings.Builder
	sb.WriteString("network error ")
	sb.WriteString(string(e.Type))
	if e.StatusCode != 0 {
		fmt.Fprintf(&sb, " (status %d)", e.StatusCode)
	}
	if e.APIError != "" {
		sb.WriteString(" [")
		sb.WriteString(e.APIError)
		sb.WriteString("]")
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	return sb.String()
}

func (e *NetworkError) Unwrap() error {
	return e.cause
}

// AsNetworkError extracts a NetworkError from err. Any other non-nil error
// is reported as UNKNOWN so callers always get a classification.
func AsNetworkError(err error) *NetworkError {
	if err == nil {
		return nil
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne
	}
	return WrapNetworkError(ErrorUnknown, err)
}

// ErrorCategory is the coarse classification shared by the per-domain taxonomies.
type ErrorCategory string

const (
	CategoryGenericError          ErrorCategory = "GENERIC_ERROR"
	CategoryAuthorizationRequired ErrorCategory = "AUTHORIZATION_REQUIRED"
	CategoryInvalidResponse       ErrorCategory = "INVALID_RESPONSE"
	CategoryAPIError              ErrorCategory = "API_ERROR"
	CategoryTimeout               ErrorCategory = "TIMEOUT"
)

// CategoryOf maps a generic network error type onto its category.
func CategoryOf(t GenericErrorType) ErrorCategory {
	switch t {
	case ErrorTimeout:
		return CategoryTimeout
	case ErrorNoConnection, ErrorServerError, ErrorInvalidSSLCertificate, ErrorNetworkError:
		return CategoryAPIError
	case ErrorParseError, ErrorNotFound, ErrorCensored, ErrorInvalidResponse:
		return CategoryInvalidResponse
	case ErrorHTTPAuthError, ErrorAuthorizationRequired, ErrorNotAuthenticated:
		return CategoryAuthorizationRequired
	default:
		return CategoryGenericError
	}
}
