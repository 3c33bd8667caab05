package list

import "github.com/wordpress-mobile/fluxc-go/internal/domain/shared"

// Event types
const (
	EventListChanged         = "OnListChanged"
	EventListDataInvalidated = "OnListDataInvalidated"
	EventListItemsChanged    = "OnListItemsChanged"
)

// CauseOfListChange explains an OnListChanged event
type CauseOfListChange string

const (
	CauseFirstPageFetched CauseOfListChange = "FIRST_PAGE_FETCHED"
	CauseLoadedMore       CauseOfListChange = "LOADED_MORE"
	CauseStateChanged     CauseOfListChange = "STATE_CHANGED"
	CauseError            CauseOfListChange = "ERROR"
)

// OnListChanged is emitted when the items or the state of a list changed
type OnListChanged struct {
	shared.BaseChangeEvent
	Descriptor    Descriptor
	CauseOfChange CauseOfListChange
}

// NewOnListChanged creates an OnListChanged event. A nil *ListError means success.
func NewOnListChanged(descriptor Descriptor, cause CauseOfListChange, listErr *ListError) *OnListChanged {
	var err error
	if listErr != nil {
		err = listErr
	}
	return &OnListChanged{
		BaseChangeEvent: shared.NewBaseChangeEvent(EventListChanged, err),
		Descriptor:      descriptor,
		CauseOfChange:   cause,
	}
}

// OnListDataInvalidated tells observers to reload the rows behind every list of a type
type OnListDataInvalidated struct {
	shared.BaseChangeEvent
	TypeIdentifier string
}

// NewOnListDataInvalidated creates an OnListDataInvalidated event
func NewOnListDataInvalidated(typeIdentifier string) *OnListDataInvalidated {
	return &OnListDataInvalidated{
		BaseChangeEvent: shared.NewBaseChangeEvent(EventListDataInvalidated, nil),
		TypeIdentifier:  typeIdentifier,
	}
}

// OnListItemsChanged is emitted after items were removed from the lists of a type
type OnListItemsChanged struct {
	shared.BaseChangeEvent
	TypeIdentifier string
	RowsAffected   int64
}

// NewOnListItemsChanged creates an OnListItemsChanged event
func NewOnListItemsChanged(typeIdentifier string, rows int64) *OnListItemsChanged {
	return &OnListItemsChanged{
		BaseChangeEvent: shared.NewBaseChangeEvent(EventListItemsChanged, nil),
		TypeIdentifier:  typeIdentifier,
		RowsAffected:    rows,
	}
}
