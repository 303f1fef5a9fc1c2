package repository

import (
	"context"
	"errors"
	"time"

	"github.com/boostlab/smm-order-service/internal/domain"
	"github.com/boostlab/smm-order-service/internal/infrastructure/postgres/mappers"
	"github.com/boostlab/smm-order-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultCatalogRepository struct {
	DB *gorm.DB
}

func NewDefaultCatalogRepository(db *gorm.DB) *DefaultCatalogRepository {
	return &DefaultCatalogRepository{DB: db}
}

func (r *DefaultCatalogRepository) UpsertProvider(ctx context.Context, provider *domain.ServiceProvider) error {
	if provider.ID == "" {
		provider.ID = uuid.New().String()
	}
	model := mappers.ToGORMProvider(provider)
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "api_url", "active"}),
	}).Create(model).Error
	if err != nil {
		return err
	}
	provider.ID = model.ID
	return nil
}

func (r *DefaultCatalogRepository) GetProviderBySlug(ctx context.Context, slug string) (*domain.ServiceProvider, error) {
	var model models.ServiceProviderModel
	err := r.DB.WithContext(ctx).First(&model, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, err
	}
	return mappers.ToDomainProvider(&model), nil
}

func (r *DefaultCatalogRepository) GetServiceByID(ctx context.Context, serviceID string) (*domain.Service, error) {
	var model models.ServiceModel
	err := r.DB.WithContext(ctx).First(&model, "id = ?", serviceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, err
	}
	return mappers.ToDomainService(&model), nil
}

func (r *DefaultCatalogRepository) GetServiceByProviderSvcID(ctx context.Context, providerID, providerSvcID string) (*domain.Service, error) {
	var model models.ServiceModel
	err := r.DB.WithContext(ctx).
		Where("provider_id = ? AND provider_svc_id = ?", providerID, providerSvcID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, err
	}
	return mappers.ToDomainService(&model), nil
}

func (r *DefaultCatalogRepository) SaveService(ctx context.Context, service *domain.Service) error {
	if service.ID == "" {
		service.ID = uuid.New().String()
	}
	model := mappers.ToGORMService(service)
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "provider_id"}, {Name: "provider_svc_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "type", "provider_rate", "boost_rate",
			"min_order", "max_order", "active", "last_checked", "updated_at",
		}),
	}).Create(model).Error
}

func (r *DefaultCatalogRepository) FindServiceForOrder(ctx context.Context, platformID, serviceType string, quantity int) (*domain.Service, error) {
	var model models.ServiceModel
	err := r.DB.WithContext(ctx).
		Where("platform_id = ?", platformID).
		Where("type = ?", serviceType).
		Where("active = ?", true).
		Where("min_order <= ? AND max_order >= ?", quantity, quantity).
		Order("boost_rate ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, err
	}
	return mappers.ToDomainService(&model), nil
}

func (r *DefaultCatalogRepository) GetOrCreatePlatform(ctx context.Context, name string) (*domain.Platform, error) {
	var model models.PlatformModel
	err := r.DB.WithContext(ctx).First(&model, "name = ?", name).Error
	if err == nil {
		return mappers.ToDomainPlatform(&model), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	model = models.PlatformModel{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := r.DB.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, err
	}
	return mappers.ToDomainPlatform(&model), nil
}
