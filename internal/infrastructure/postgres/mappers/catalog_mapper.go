package mappers

import (
	"github.com/boostlab/smm-order-service/internal/domain"
	"github.com/boostlab/smm-order-service/internal/infrastructure/postgres/models"
)

func ToGORMService(service *domain.Service) *models.ServiceModel {
	return &models.ServiceModel{
		ID:            service.ID,
		ProviderID:    service.ProviderID,
		ProviderSvcID: service.ProviderSvcID,
		PlatformID:    service.PlatformID,
		Name:          service.Name,
		Type:          service.Type,
		ProviderRate:  service.ProviderRate,
		BoostRate:     service.BoostRate,
		MinOrder:      service.MinOrder,
		MaxOrder:      service.MaxOrder,
		Active:        service.Active,
		LastChecked:   service.LastChecked,
		CreatedAt:     service.CreatedAt,
		UpdatedAt:     service.UpdatedAt,
	}
}

func ToDomainService(model *models.ServiceModel) *domain.Service {
	return &domain.Service{
		ID:            model.ID,
		ProviderID:    model.ProviderID,
		ProviderSvcID: model.ProviderSvcID,
		PlatformID:    model.PlatformID,
		Name:          model.Name,
		Type:          model.Type,
		ProviderRate:  model.ProviderRate,
		BoostRate:     model.BoostRate,
		MinOrder:      model.MinOrder,
		MaxOrder:      model.MaxOrder,
		Active:        model.Active,
		LastChecked:   model.LastChecked,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func ToGORMPlatform(platform *domain.Platform) *models.PlatformModel {
	return &models.PlatformModel{
		ID:        platform.ID,
		Name:      platform.Name,
		Slug:      platform.Slug,
		Active:    platform.Active,
		CreatedAt: platform.CreatedAt,
		UpdatedAt: platform.UpdatedAt,
	}
}

func ToDomainPlatform(model *models.PlatformModel) *domain.Platform {
	return &domain.Platform{
		ID:        model.ID,
		Name:      model.Name,
		Slug:      model.Slug,
		Active:    model.Active,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToGORMProvider(provider *domain.ServiceProvider) *models.ServiceProviderModel {
	return &models.ServiceProviderModel{
		ID:     provider.ID,
		Name:   provider.Name,
		Slug:   provider.Slug,
		APIUrl: provider.APIUrl,
		Active: provider.Active,
	}
}

func ToDomainProvider(model *models.ServiceProviderModel) *domain.ServiceProvider {
	return &domain.ServiceProvider{
		ID:     model.ID,
		Name:   model.Name,
		Slug:   model.Slug,
		APIUrl: model.APIUrl,
		Active: model.Active,
	}
}
