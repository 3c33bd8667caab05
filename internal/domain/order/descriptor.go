package order

import (
	"fmt"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/list"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
)

// ListKind is the list kind served by the order store
const ListKind = "woo-orders"

// ListDescriptor identifies an order list of a site
type ListDescriptor struct {
	Site                shared.Site
	StatusFilter        string
	SearchQuery         string
	ExcludeFutureOrders bool
}

// NewListDescriptor creates a descriptor for the site's orders matching statusFilter
func NewListDescriptor(site shared.Site, statusFilter string) ListDescriptor {
	return ListDescriptor{Site: site, StatusFilter: statusFilter}
}

// UniqueIdentifier includes every filter
func (d ListDescriptor) UniqueIdentifier() string {
	return fmt.Sprintf("%s:status=%s:search=%s:exclude-future=%t",
		d.TypeIdentifier(), d.StatusFilter, d.SearchQuery, d.ExcludeFutureOrders)
}

// TypeIdentifier depends only on the local site
func (d ListDescriptor) TypeIdentifier() string {
	return CalculateTypeIdentifier(d.Site.LocalID)
}

// Kind implements list.Descriptor
func (d ListDescriptor) Kind() string {
	return ListKind
}

// LocalSiteID implements list.Descriptor
func (d ListDescriptor) LocalSiteID() int64 {
	return d.Site.LocalID
}

// CalculateTypeIdentifier returns the type identifier shared by all order lists of a site
func CalculateTypeIdentifier(localSiteID int64) string {
	return fmt.Sprintf("%s:site=%d", ListKind, localSiteID)
}

var _ list.Descriptor = ListDescriptor{}
