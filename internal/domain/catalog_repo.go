package domain

import "context"

type CatalogRepository interface {
	UpsertProvider(ctx context.Context, provider *ServiceProvider) error
	GetProviderBySlug(ctx context.Context, slug string) (*ServiceProvider, error)

	GetServiceByID(ctx context.Context, serviceID string) (*Service, error)
	GetServiceByProviderSvcID(ctx context.Context, providerID, providerSvcID string) (*Service, error)
	SaveService(ctx context.Context, service *Service) error

	// FindServiceForOrder picks the cheapest active service matching the
	// platform and service type whose min/max range admits the quantity.
	FindServiceForOrder(ctx context.Context, platform, serviceType string, quantity int) (*Service, error)

	GetOrCreatePlatform(ctx context.Context, name string) (*Platform, error)
}
