package order

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

// ---- ListDescriptor Tests ----

func TestListDescriptor_Identifiers(t *testing.T) {
	site := shared.Site{LocalID: 12, SiteID: 1234}

	a := ListDescriptor{Site: site, StatusFilter: "processing"}
	b := ListDescriptor{Site: site, StatusFilter: "completed", SearchQuery: "joe"}

	assert.NotEqual(t, a.UniqueIdentifier(), b.UniqueIdentifier())
	assert.Equal(t, a.TypeIdentifier(), b.TypeIdentifier())
	assert.Equal(t, "woo-orders:site=12", a.TypeIdentifier())
	assert.Equal(t, CalculateTypeIdentifier(12), b.TypeIdentifier())
	assert.Equal(t, ListKind, a.Kind())
	assert.Equal(t, int64(12), a.LocalSiteID())

	other := ListDescriptor{Site: shared.Site{LocalID: 13}, StatusFilter: "processing"}
	assert.NotEqual(t, a.TypeIdentifier(), other.TypeIdentifier())
}

// ---- Reconciliation Tests ----

func TestOutdatedAndMissingOrderIDs(t *testing.T) {
	summaries := []Summary{
		{RemoteOrderID: 1, DateModified: "2024-01-01T10:00:00Z"},
		{RemoteOrderID: 2, DateModified: "2024-01-02T10:00:00Z"},
		{RemoteOrderID: 3, DateModified: "2024-01-03T10:00:00Z"},
	}
	local := []Order{
		{RemoteOrderID: 1, DateModified: "2024-01-01T10:00:00Z"},
		{RemoteOrderID: 2, DateModified: "2023-12-31T10:00:00Z"},
	}

	assert.Equal(t, []int64{2}, OutdatedOrderIDs(summaries, local))
	assert.Equal(t, []int64{3}, MissingOrderIDs(summaries, local))
	assert.Empty(t, OutdatedOrderIDs(summaries, nil))
	assert.Equal(t, []int64{1, 2, 3}, MissingOrderIDs(summaries, nil))
}

func TestChunk(t *testing.T) {
	ids := make([]int64, 32)
	for i := range ids {
		ids[i] = int64(i + 1)
	}

	chunks := Chunk(ids, NumOrdersPerFetch)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 15)
	assert.Len(t, chunks[1], 15)
	assert.Equal(t, []int64{31, 32}, chunks[2])
	assert.Nil(t, Chunk(nil, 15))
}

// ---- Meta Data Tests ----

func TestDisplayableMetaData(t *testing.T) {
	entries := []MetaData{
		{ID: 1, Key: "_internal", Value: "x"},
		{ID: 2, Key: "gift_message", Value: "Happy birthday"},
		{ID: 3, Key: "", Value: "empty"},
	}
	assert.Equal(t, []MetaData{{ID: 2, Key: "gift_message", Value: "Happy birthday"}}, DisplayableMetaData(entries))
}

// ---- OrderError Tests ----

func TestErrorTypeFromString(t *testing.T) {
	assert.Equal(t, ErrorInvalidID, ErrorTypeFromString("invalid_id"))
	assert.Equal(t, ErrorEmptyBillingEmail, ErrorTypeFromString("Empty_Billing_Email"))
	assert.Equal(t, ErrorGeneric, ErrorTypeFromString("something_else"))
}

func TestErrorFromNetwork(t *testing.T) {
	apiErr := func(code string) error {
		ne := shared.NewNetworkError(shared.ErrorUnknown, "boom")
		ne.APIError = code
		return ne
	}

	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"invalid param", apiErr("rest_invalid_param"), ErrorInvalidParam},
		{"invalid id", apiErr("woocommerce_rest_shop_order_invalid_id"), ErrorInvalidID},
		{"no route", apiErr("rest_no_route"), ErrorPluginNotActive},
		{"status name", apiErr("order_status_not_found"), ErrorOrderStatusNotFound},
		{"parse error", shared.NewNetworkError(shared.ErrorParseError, "bad json"), ErrorInvalidResponse},
		{"null data", shared.NewNetworkError(shared.ErrorInvalidResponse, "null"), ErrorInvalidResponse},
		{"timeout", shared.NewNetworkError(shared.ErrorTimeout, "slow"), ErrorGeneric},
		{"foreign error", errors.New("disk full"), ErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ErrorFromNetwork(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Type)
		})
	}

	assert.Nil(t, ErrorFromNetwork(nil))
}

// ---- Event Tests ----

func TestNewOnOrderChanged_NilErrorStaysNil(t *testing.T) {
	ev := NewOnOrderChanged(ActionFetchOrders, nil)
	assert.NoError(t, ev.Err())
	assert.Equal(t, EventOrderChanged, ev.EventType())

	failed := NewOnOrderChanged(ActionFetchOrders, NewOrderError(ErrorGeneric, "x"))
	var oe *OrderError
	require.ErrorAs(t, failed.Err(), &oe)
	assert.Equal(t, ErrorGeneric, oe.Type)
}
