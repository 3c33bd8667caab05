package bloggingprompt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

func TestErrorFromNetwork_FollowsCategory(t *testing.T) {
	tests := []struct {
		in   shared.GenericErrorType
		want ErrorType
	}{
		{shared.ErrorTimeout, ErrorTimeout},
		{shared.ErrorNoConnection, ErrorAPI},
		{shared.ErrorServerError, ErrorAPI},
		{shared.ErrorInvalidSSLCertificate, ErrorAPI},
		{shared.ErrorNetworkError, ErrorAPI},
		{shared.ErrorParseError, ErrorInvalidResponse},
		{shared.ErrorNotFound, ErrorInvalidResponse},
		{shared.ErrorCensored, ErrorInvalidResponse},
		{shared.ErrorInvalidResponse, ErrorInvalidResponse},
		{shared.ErrorHTTPAuthError, ErrorAuthorizationRequired},
		{shared.ErrorAuthorizationRequired, ErrorAuthorizationRequired},
		{shared.ErrorNotAuthenticated, ErrorAuthorizationRequired},
		{shared.ErrorUnknown, ErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got := ErrorFromNetwork(shared.NewNetworkError(tt.in, "msg"))
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Type)
			assert.Equal(t, "msg", got.Message)
		})
	}
}

func TestDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2022-05-03")
	require.NoError(t, err)
	assert.Equal(t, time.May, d.Month())
	assert.Equal(t, "2022-05-03", FormatDate(d))
}
