package network

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

// TunnelPath returns the Jetpack tunnel endpoint for a site
func TunnelPath(siteID int64) string {
	return fmt.Sprintf("jetpack-blogs/%d/rest-api/", siteID)
}

// tunnelRoute builds the "path" parameter: the wp-json route with its query and the verb.
func tunnelRoute(wpAPIPath string, params url.Values, method string) string {
	route := "/" + strings.TrimLeft(wpAPIPath, "/") + "?"
	if encoded := params.Encode(); encoded != "" {
		route += encoded + "&"
	}
	return route + "_method=" + strings.ToLower(method)
}

// Tunnel calls a site's wp-json API through the Jetpack tunnel on WordPress.com.
// GET requests carry the route as a query parameter; other verbs are POSTed with
// the route and the JSON encoded body in the request body. The {"data": ...}
// envelope is removed from successful responses.
func (c *Client) Tunnel(ctx context.Context, siteID int64, method, wpAPIPath string, params url.Values, body any) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	req := Request{
		URL:      c.WPComURL(RESTv11, TunnelPath(siteID)),
		Endpoint: "jetpack-tunnel/" + endpointName(wpAPIPath),
	}
	route := tunnelRoute(wpAPIPath, params, method)

	if method == http.MethodGet {
		req.Method = http.MethodGet
		req.Query = url.Values{"path": {route}, "json": {"true"}}
	} else {
		req.Method = http.MethodPost
		envelope := map[string]any{"path": route, "json": true}
		if body != nil {
			encoded, err := json.Marshal(body)
			if err != nil {
				return nil, shared.WrapNetworkError(shared.ErrorUnknown, err)
			}
			envelope["body"] = string(encoded)
		}
		req.Body = envelope
	}

	raw, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return unwrapData(raw)
}

func unwrapData(raw []byte) ([]byte, error) {
	if !gjson.ValidBytes(raw) {
		return nil, shared.NewNetworkError(shared.ErrorParseError, "response is not valid JSON")
	}
	data := gjson.GetBytes(raw, "data")
	if !data.Exists() {
		return nil, shared.NewNetworkError(shared.ErrorParseError, "response has no data field")
	}
	if data.Type == gjson.Null {
		return nil, shared.NewNetworkError(shared.ErrorInvalidResponse, "response data is null")
	}
	return []byte(data.Raw), nil
}

// Decode unmarshals a successful body into out, reporting PARSE_ERROR on failure.
// A JSON null body is an INVALID_RESPONSE.
func Decode(body []byte, out any) error {
	if gjson.ParseBytes(body).Type == gjson.Null {
		return shared.NewNetworkError(shared.ErrorInvalidResponse, "empty response")
	}
	if err := json.Unmarshal(body, out); err != nil {
		return shared.WrapNetworkError(shared.ErrorParseError, err)
	}
	return nil
}
