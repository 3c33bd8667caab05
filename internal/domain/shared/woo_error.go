package shared

import "fmt"

// WooErrorType is the error taxonomy shared by the WooCommerce stores.
type WooErrorType string

const (
	WooErrorGeneric               WooErrorType = "GENERIC_ERROR"
	WooErrorInvalidResponse       WooErrorType = "INVALID_RESPONSE"
	WooErrorAuthorizationRequired WooErrorType = "AUTHORIZATION_REQUIRED"
	WooErrorAPI                   WooErrorType = "API_ERROR"
	WooErrorTimeout               WooErrorType = "TIMEOUT"
	WooErrorInvalidID             WooErrorType = "INVALID_ID"
	WooErrorInvalidParam          WooErrorType = "INVALID_PARAM"
	WooErrorPluginNotActive       WooErrorType = "PLUGIN_NOT_ACTIVE"
	WooErrorAPINotFound           WooErrorType = "API_NOT_FOUND"
)

// WooError is returned by WooCommerce stores.
type WooError struct {
	Type     WooErrorType     `json:"type"`
	Original GenericErrorType `json:"original"`
	Message  string           `json:"message,omitempty"`
}

func (e *WooError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("woocommerce error %s", e.Type)
	}
	return fmt.Sprintf("woocommerce error %s: %s", e.Type, e.Message)
}

// NewWooError derives a WooError from any error returned by the transport.
func NewWooError(err error) *WooError {
	ne := AsNetworkError(err)
	if ne == nil {
		return nil
	}
	return &WooError{
		Type:     wooTypeFor(ne),
		Original: ne.Type,
		Message:  ne.Message,
	}
}

func wooTypeFor(ne *NetworkError) WooErrorType {
	switch ne.APIError {
	case "rest_invalid_param", "woocommerce_rest_invalid_param":
		return WooErrorInvalidParam
	case "woocommerce_rest_shop_coupon_invalid_id", "woocommerce_rest_shop_order_invalid_id",
		"woocommerce_rest_product_invalid_id", "woocommerce_rest_invalid_id":
		return WooErrorInvalidID
	case "rest_no_route":
		return WooErrorPluginNotActive
	}
	if ne.Type == ErrorNotFound && ne.APIError == "" {
		return WooErrorAPINotFound
	}
	switch CategoryOf(ne.Type) {
	case CategoryTimeout:
		return WooErrorTimeout
	case CategoryAPIError:
		return WooErrorAPI
	case CategoryInvalidResponse:
		return WooErrorInvalidResponse
	case CategoryAuthorizationRequired:
		return WooErrorAuthorizationRequired
	default:
		return WooErrorGeneric
	}
}
