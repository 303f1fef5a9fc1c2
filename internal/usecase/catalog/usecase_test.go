package catalog

import (
	"context"
	"testing"

	"github.com/boostlab/smm-order-service/internal/config"
	"github.com/boostlab/smm-order-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalogRepo struct {
	provider *domain.ServiceProvider
	saved    []*domain.Service
	existing map[string]*domain.Service
}

func (r *fakeCatalogRepo) UpsertProvider(ctx context.Context, provider *domain.ServiceProvider) error {
	provider.ID = "prov-1"
	r.provider = provider
	return nil
}

func (r *fakeCatalogRepo) GetProviderBySlug(ctx context.Context, slug string) (*domain.ServiceProvider, error) {
	return r.provider, nil
}

func (r *fakeCatalogRepo) GetServiceByID(ctx context.Context, serviceID string) (*domain.Service, error) {
	return nil, domain.ErrServiceNotFound
}

func (r *fakeCatalogRepo) GetServiceByProviderSvcID(ctx context.Context, providerID, providerSvcID string) (*domain.Service, error) {
	s, ok := r.existing[providerSvcID]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	return s, nil
}

func (r *fakeCatalogRepo) SaveService(ctx context.Context, service *domain.Service) error {
	r.saved = append(r.saved, service)
	return nil
}

func (r *fakeCatalogRepo) FindServiceForOrder(ctx context.Context, platform, serviceType string, quantity int) (*domain.Service, error) {
	return nil, domain.ErrServiceNotFound
}

func (r *fakeCatalogRepo) GetOrCreatePlatform(ctx context.Context, name string) (*domain.Platform, error) {
	return &domain.Platform{ID: "plat-" + name, Name: name}, nil
}

type fakePanel struct {
	services []*domain.ProviderService
	balance  float64
}

func (p *fakePanel) SubmitOrder(ctx context.Context, providerSvcID, link string, quantity int) (*domain.ProviderOrder, error) {
	return nil, nil
}

func (p *fakePanel) GetOrderStatus(ctx context.Context, externalOrderID string) (*domain.ProviderOrderStatus, error) {
	return nil, nil
}

func (p *fakePanel) GetOrdersStatus(ctx context.Context, externalOrderIDs []string) (map[string]*domain.ProviderOrderStatus, error) {
	return nil, nil
}

func (p *fakePanel) FetchServices(ctx context.Context) ([]*domain.ProviderService, error) {
	return p.services, nil
}

func (p *fakePanel) GetBalance(ctx context.Context) (float64, error) {
	return p.balance, nil
}

func newTestCatalogUsecase(repo *fakeCatalogRepo, panel *fakePanel) *DefaultCatalogUsecase {
	return NewDefaultCatalogUsecase(
		repo,
		panel,
		config.SMMPanel{Slug: "smmstone", Name: "SMMStone", APIUrl: "https://smmstone.com/api/v2"},
		config.Pricing{MarkupPercentage: 30, UsdtNgnRate: 1612},
	)
}

func TestSyncServicesAppliesMarkup(t *testing.T) {
	repo := &fakeCatalogRepo{}
	panel := &fakePanel{services: []*domain.ProviderService{
		{ServiceID: "4001", Name: "Instagram Followers [Real]", Type: "Followers", Category: "Instagram - Followers", Rate: 1.20, Min: 100, Max: 10000},
	}}
	uc := newTestCatalogUsecase(repo, panel)

	report, err := uc.SyncServices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Fetched)
	assert.Equal(t, 1, report.Upserted)
	assert.Equal(t, 0, report.Skipped)

	require.Len(t, repo.saved, 1)
	saved := repo.saved[0]
	assert.Equal(t, "prov-1", saved.ProviderID)
	assert.Equal(t, "plat-instagram", saved.PlatformID)
	assert.Equal(t, "followers", saved.Type)
	assert.Equal(t, 1.20, saved.ProviderRate)
	assert.InDelta(t, 1.56, saved.BoostRate, 0.0001)
	assert.True(t, saved.Active)
}

func TestSyncServicesSkipsUnknownCategories(t *testing.T) {
	repo := &fakeCatalogRepo{}
	panel := &fakePanel{services: []*domain.ProviderService{
		{ServiceID: "1", Category: "Website Traffic", Type: "Visits", Rate: 0.5},
		{ServiceID: "2", Category: "TikTok Video Views", Type: "Views", Rate: 0.8, Min: 100, Max: 100000},
	}}
	uc := newTestCatalogUsecase(repo, panel)

	report, err := uc.SyncServices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Fetched)
	assert.Equal(t, 1, report.Upserted)
	assert.Equal(t, 1, report.Skipped)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "plat-tiktok", repo.saved[0].PlatformID)
	assert.Equal(t, "views", repo.saved[0].Type)
}

func TestSyncServicesPreservesExistingID(t *testing.T) {
	repo := &fakeCatalogRepo{existing: map[string]*domain.Service{
		"4001": {ID: "svc-keep", ProviderSvcID: "4001"},
	}}
	panel := &fakePanel{services: []*domain.ProviderService{
		{ServiceID: "4001", Category: "Instagram Followers", Type: "Followers", Rate: 1.0, Min: 10, Max: 1000},
	}}
	uc := newTestCatalogUsecase(repo, panel)

	_, err := uc.SyncServices(context.Background())
	require.NoError(t, err)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, "svc-keep", repo.saved[0].ID)
}

func TestNormalizeServiceType(t *testing.T) {
	cases := map[string]string{
		"Followers":           "followers",
		"Channel Subscribers": "followers",
		"Post Likes":          "likes",
		"Video Views":         "views",
		"Custom Comments":     "comments",
		"Reposts":             "shares",
		"Website Traffic":     "other",
	}
	for raw, want := range cases {
		assert.Equal(t, want, normalizeServiceType(raw), raw)
	}
}

func TestGetProviderBalance(t *testing.T) {
	uc := newTestCatalogUsecase(&fakeCatalogRepo{}, &fakePanel{balance: 152.37})
	balance, err := uc.GetProviderBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 152.37, balance)
}
