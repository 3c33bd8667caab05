package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Resource error codes
const (
	ErrCodeNotFound     = "ERR_NOT_FOUND"
	ErrCodeConflict     = "ERR_CONFLICT"
	ErrCodeInvalidState = "ERR_INVALID_STATE"
)

// Remote API error codes
const (
	// ErrCodeUnauthorized is used when WordPress.com rejects the access token
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeUpstream is used when the remote API failed
	ErrCodeUpstream = "ERR_UPSTREAM"
	// ErrCodeUpstreamTimeout is used when the remote API did not answer in time
	ErrCodeUpstreamTimeout = "ERR_UPSTREAM_TIMEOUT"
	// ErrCodeInvalidResponse is used when the remote API answered with an unusable body
	ErrCodeInvalidResponse = "ERR_INVALID_RESPONSE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeInvalidState: http.StatusUnprocessableEntity,

	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeUpstream:        http.StatusBadGateway,
	ErrCodeUpstreamTimeout: http.StatusGatewayTimeout,
	ErrCodeInvalidResponse: http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps shared.DomainError codes to API codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":          ErrCodeNotFound,
	"SITE_NOT_FOUND":     ErrCodeNotFound,
	"ALREADY_EXISTS":     ErrCodeConflict,
	"INVALID_INPUT":      ErrCodeValidation,
	"INVALID_SITE":       ErrCodeValidation,
	"UNAUTHORIZED":       ErrCodeUnauthorized,
	"NOT_WOOCOMMERCE":    ErrCodeInvalidState,
	"UNSUPPORTED_ACTION": ErrCodeBadRequest,
}

// RemoteErrorCodeMapping maps the type of a store error (WooError, OrderError,
// and the category based prompt, notification and card errors) to API codes
var RemoteErrorCodeMapping = map[string]string{
	"GENERIC_ERROR":          ErrCodeUpstream,
	"API_ERROR":              ErrCodeUpstream,
	"TIMEOUT":                ErrCodeUpstreamTimeout,
	"INVALID_RESPONSE":       ErrCodeInvalidResponse,
	"AUTHORIZATION_REQUIRED": ErrCodeUnauthorized,
	"INVALID_ID":             ErrCodeNotFound,
	"API_NOT_FOUND":          ErrCodeNotFound,
	"ORDER_STATUS_NOT_FOUND": ErrCodeNotFound,
	"INVALID_PARAM":          ErrCodeValidation,
	"EMPTY_BILLING_EMAIL":    ErrCodeValidation,
	"PLUGIN_NOT_ACTIVE":      ErrCodeInvalidState,
}

// NormalizeDomainCode converts a domain error code to an API code
func NormalizeDomainCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return ErrCodeBadRequest
}

// NormalizeRemoteType converts a store error type to an API code
func NormalizeRemoteType(errType string) string {
	if apiCode, ok := RemoteErrorCodeMapping[errType]; ok {
		return apiCode
	}
	return ErrCodeUpstream
}
