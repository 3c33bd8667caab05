package order

import (
	"context"
	"fmt"
	"time"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/list"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/order"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

// ListDataSource serves order lists to the list store by dispatching FETCH_ORDER_LIST
type ListDataSource struct {
	dispatcher shared.ActionDispatcher
	now        func() time.Time
}

// NewListDataSource creates the order list data source
func NewListDataSource(dispatcher shared.ActionDispatcher) *ListDataSource {
	return &ListDataSource{dispatcher: dispatcher, now: time.Now}
}

// FetchList implements list.DataSource
func (d *ListDataSource) FetchList(ctx context.Context, descriptor list.Descriptor, offset int64) error {
	orderDescriptor, ok := descriptor.(order.ListDescriptor)
	if !ok {
		return fmt.Errorf("order: unsupported list descriptor %T", descriptor)
	}
	d.dispatcher.Dispatch(ctx, shared.NewAction(order.ActionFetchOrderList, order.FetchOrderListPayload{
		Descriptor:       orderDescriptor,
		Offset:           offset,
		RequestStartTime: d.now(),
	}))
	return nil
}

var _ list.DataSource = (*ListDataSource)(nil)
