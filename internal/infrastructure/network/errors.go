package network

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"net/http"

	"github.com/tidwall/gjson"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

func classifyTransportError(err error) *shared.NetworkError {
	var (
		netErr      net.Error
		opErr       *net.OpError
		unknownAuth x509.UnknownAuthorityError
		hostErr     x509.HostnameError
		certErr     x509.CertificateInvalidError
		verifyErr   *tls.CertificateVerificationError
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return shared.WrapNetworkError(shared.ErrorTimeout, err)
	case errors.As(err, &unknownAuth), errors.As(err, &hostErr),
		errors.As(err, &certErr), errors.As(err, &verifyErr):
		return shared.WrapNetworkError(shared.ErrorInvalidSSLCertificate, err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return shared.WrapNetworkError(shared.ErrorTimeout, err)
	case errors.As(err, &opErr) && opErr.Op == "dial":
		return shared.WrapNetworkError(shared.ErrorNoConnection, err)
	default:
		return shared.WrapNetworkError(shared.ErrorNetworkError, err)
	}
}

// classifyHTTPError maps an error status and the WordPress error body onto the taxonomy.
// Both {"error": "...", "message": "..."} and {"code": "...", "message": "..."} bodies are read.
func classifyHTTPError(status int, body []byte) *shared.NetworkError {
	apiError, message := parseErrorBody(body)
	ne := &shared.NetworkError{StatusCode: status, APIError: apiError, Message: message}

	switch {
	case status == http.StatusUnauthorized && apiError == "invalid_token":
		ne.Type = shared.ErrorNotAuthenticated
	case apiError == "authorization_required":
		ne.Type = shared.ErrorAuthorizationRequired
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		ne.Type = shared.ErrorHTTPAuthError
	case status == http.StatusNotFound:
		ne.Type = shared.ErrorNotFound
	case status == http.StatusUnavailableForLegalReasons:
		ne.Type = shared.ErrorCensored
	case status >= http.StatusInternalServerError:
		ne.Type = shared.ErrorServerError
	default:
		ne.Type = shared.ErrorUnknown
	}
	if ne.Message == "" {
		ne.Message = http.StatusText(status)
	}
	return ne
}

func parseErrorBody(body []byte) (apiError, message string) {
	if !gjson.ValidBytes(body) {
		return "", ""
	}
	parsed := gjson.ParseBytes(body)
	code := parsed.Get("error")
	if code.Type != gjson.String {
		code = parsed.Get("code")
	}
	return code.String(), parsed.Get("message").String()
}
