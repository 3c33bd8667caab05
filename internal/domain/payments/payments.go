// Package payments holds the in-person payments terminal location models.
package payments

import (
	"fmt"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

// PluginType selects the payment gateway that serves terminal locations
type PluginType string

const (
	PluginWooCommercePayments PluginType = "WOOCOMMERCE_PAYMENTS"
	PluginStripe              PluginType = "STRIPE"
)

// LocationsPath returns the wp-json route of the gateway's store location endpoint
func (p PluginType) LocationsPath() string {
	switch p {
	case PluginStripe:
		return "wc_stripe/terminal/locations/store"
	default:
		return "wcpay/terminal/locations/store"
	}
}

// StoreAddress is the address registered for a terminal location
type StoreAddress struct {
	City       string `json:"city"`
	Country    string `json:"country"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	PostalCode string `json:"postal_code"`
	State      string `json:"state"`
}

// TerminalStoreLocation is the store's terminal location
type TerminalStoreLocation struct {
	LocationID  string        `json:"id"`
	DisplayName string        `json:"display_name"`
	LiveMode    bool          `json:"livemode"`
	Address     *StoreAddress `json:"address,omitempty"`
}

// StoreLocationErrorType classifies store location failures
type StoreLocationErrorType string

const (
	LocationErrorGeneric           StoreLocationErrorType = "GENERIC_ERROR"
	LocationErrorMissingAddress    StoreLocationErrorType = "MISSING_ADDRESS"
	LocationErrorInvalidPostalCode StoreLocationErrorType = "INVALID_POSTAL_CODE"
	LocationErrorServer            StoreLocationErrorType = "SERVER_ERROR"
	LocationErrorNetwork           StoreLocationErrorType = "NETWORK_ERROR"
)

// StoreLocationError is returned when the location could not be fetched
type StoreLocationError struct {
	Type StoreLocationErrorType `json:"type"`
	// AddressEditingURL is set for MISSING_ADDRESS and points at the store address settings
	AddressEditingURL string `json:"address_editing_url,omitempty"`
	Message           string `json:"message,omitempty"`
}

func (e *StoreLocationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("store location error %s", e.Type)
	}
	return fmt.Sprintf("store location error %s: %s", e.Type, e.Message)
}

// StoreLocationErrorFromNetwork maps a transport failure to a StoreLocationError
func StoreLocationErrorFromNetwork(err error) *StoreLocationError {
	ne := shared.AsNetworkError(err)
	if ne == nil {
		return nil
	}
	switch ne.APIError {
	case "store_address_is_incomplete":
		return &StoreLocationError{Type: LocationErrorMissingAddress, AddressEditingURL: ne.Message, Message: ne.Message}
	case "postal_code_invalid":
		return &StoreLocationError{Type: LocationErrorInvalidPostalCode, Message: ne.Message}
	}
	switch ne.Type {
	case shared.ErrorServerError:
		return &StoreLocationError{Type: LocationErrorServer, Message: ne.Message}
	case shared.ErrorTimeout, shared.ErrorNoConnection, shared.ErrorNetworkError:
		return &StoreLocationError{Type: LocationErrorNetwork, Message: ne.Message}
	default:
		return &StoreLocationError{Type: LocationErrorGeneric, Message: ne.Message}
	}
}
