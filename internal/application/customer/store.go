// Package customer implements the WooCommerce customer store.
package customer

import (
	"context"
	"errors"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/customer"
	"github.com/wordpress-mobile/fluxc-go/internal/domain/shared"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/logger"
	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/woocommerce"
	"go.uber.org/zap"
)

// RestClient is the remote side of the customer store
type RestClient interface {
	FetchSingleCustomer(ctx context.Context, site shared.Site, remoteCustomerID int64) (*woocommerce.CustomerDTO, error)
	FetchCustomers(ctx context.Context, site shared.Site, pageSize int, opts customer.FetchOptions) ([]woocommerce.CustomerDTO, error)
}

var _ RestClient = (*woocommerce.CustomerRestClient)(nil)

// Mapper turns customer DTOs into cached customers
type Mapper interface {
	MapToModel(site shared.Site, dto woocommerce.CustomerDTO) customer.Customer
}

// Store is the customer store
type Store struct {
	client    RestClient
	customers customer.Repository
	mapper    Mapper
	logger    *zap.Logger
}

// NewStore creates a customer store. A nil mapper uses woocommerce.CustomerMapper.
func NewStore(client RestClient, customers customer.Repository, mapper Mapper, logger *zap.Logger) *Store {
	if mapper == nil {
		mapper = woocommerce.CustomerMapper{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		client:    client,
		customers: customers,
		mapper:    mapper,
		logger:    logger.Named("customer_store"),
	}
}

// FetchSingleCustomer fetches one customer and caches it
func (s *Store) FetchSingleCustomer(ctx context.Context, site shared.Site, remoteCustomerID int64) (*customer.Customer, error) {
	logger.WithLogger(ctx, s.logger).Debug("fetching customer",
		zap.Int64("site_id", site.LocalID), zap.Int64("customer_id", remoteCustomerID))

	dto, err := s.client.FetchSingleCustomer(ctx, site, remoteCustomerID)
	if err != nil {
		s.logger.Warn("fetch customer failed", zap.Int64("customer_id", remoteCustomerID), zap.Error(err))
		return nil, shared.NewWooError(err)
	}
	model := s.mapper.MapToModel(site, *dto)
	if err := s.customers.Upsert(ctx, model); err != nil {
		return nil, err
	}
	return &model, nil
}

// FetchCustomers fetches a page of customers. Only unfiltered pages are cached.
func (s *Store) FetchCustomers(ctx context.Context, site shared.Site, pageSize int, opts customer.FetchOptions) ([]customer.Customer, error) {
	if pageSize <= 0 {
		pageSize = customer.DefaultPageSize
	}
	opts = opts.WithDefaults()
	logger.WithLogger(ctx, s.logger).Debug("fetching customers",
		zap.Int64("site_id", site.LocalID), zap.Int("page", opts.Page), zap.Bool("filtered", opts.IsFiltered()))

	dtos, err := s.client.FetchCustomers(ctx, site, pageSize, opts)
	if err != nil {
		s.logger.Warn("fetch customers failed", zap.Int64("site_id", site.LocalID), zap.Error(err))
		return nil, shared.NewWooError(err)
	}
	models := make([]customer.Customer, len(dtos))
	for i, dto := range dtos {
		models[i] = s.mapper.MapToModel(site, dto)
	}
	if !opts.IsFiltered() {
		if err := s.customers.Upsert(ctx, models...); err != nil {
			return nil, err
		}
	}
	return models, nil
}

// GetCustomersForSite returns the cached customers of a site
func (s *Store) GetCustomersForSite(ctx context.Context, site shared.Site) ([]customer.Customer, error) {
	return s.customers.FindForSite(ctx, site.LocalID)
}

// GetCustomerByRemoteID returns a cached customer, or nil
func (s *Store) GetCustomerByRemoteID(ctx context.Context, site shared.Site, remoteCustomerID int64) (*customer.Customer, error) {
	c, err := s.customers.FindByRemoteID(ctx, site.LocalID, remoteCustomerID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return c, err
}
