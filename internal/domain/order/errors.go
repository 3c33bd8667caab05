package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

// Sentinel errors
var (
	ErrOrderNotFound = errors.New("order: order not found")
)

// ErrorType classifies order failures
type ErrorType string

const (
	ErrorInvalidParam        ErrorType = "INVALID_PARAM"
	ErrorInvalidID           ErrorType = "INVALID_ID"
	ErrorOrderStatusNotFound ErrorType = "ORDER_STATUS_NOT_FOUND"
	ErrorPluginNotActive     ErrorType = "PLUGIN_NOT_ACTIVE"
	ErrorInvalidResponse     ErrorType = "INVALID_RESPONSE"
	ErrorGeneric             ErrorType = "GENERIC_ERROR"
	ErrorEmptyBillingEmail   ErrorType = "EMPTY_BILLING_EMAIL"
)

var errorTypes = []ErrorType{
	ErrorInvalidParam,
	ErrorInvalidID,
	ErrorOrderStatusNotFound,
	ErrorPluginNotActive,
	ErrorInvalidResponse,
	ErrorGeneric,
	ErrorEmptyBillingEmail,
}

// ErrorTypeFromString parses a type name case-insensitively, defaulting to GENERIC_ERROR
func ErrorTypeFromString(s string) ErrorType {
	upper := strings.ToUpper(s)
	for _, t := range errorTypes {
		if string(t) == upper {
			return t
		}
	}
	return ErrorGeneric
}

// OrderError is the failure carried by order events and results
type OrderError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
}

// NewOrderError creates an OrderError
func NewOrderError(t ErrorType, message string) *OrderError {
	return &OrderError{Type: t, Message: message}
}

func (e *OrderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("order error %s", e.Type)
	}
	return fmt.Sprintf("order error %s: %s", e.Type, e.Message)
}

// ErrorFromNetwork maps a transport failure to an OrderError
func ErrorFromNetwork(err error) *OrderError {
	if err == nil {
		return nil
	}
	var oe *OrderError
	if errors.As(err, &oe) {
		return oe
	}

	ne := shared.AsNetworkError(err)
	var t ErrorType
	switch ne.APIError {
	case "rest_invalid_param":
		t = ErrorInvalidParam
	case "woocommerce_rest_shop_order_invalid_id":
		t = ErrorInvalidID
	case "rest_no_route":
		t = ErrorPluginNotActive
	case "":
		switch ne.Type {
		case shared.ErrorParseError, shared.ErrorInvalidResponse:
			t = ErrorInvalidResponse
		default:
			t = ErrorGeneric
		}
	default:
		t = ErrorTypeFromString(ne.APIError)
	}
	return NewOrderError(t, ne.Message)
}
