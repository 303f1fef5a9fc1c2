package models

import "time"

type PlatformModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	Name      string `gorm:"not null;uniqueIndex:ux_platforms_name"`
	Slug      string `gorm:"not null"`
	Active    bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PlatformModel) TableName() string {
	return "platforms"
}

type ServiceProviderModel struct {
	ID     string `gorm:"primaryKey;type:uuid"`
	Name   string `gorm:"not null"`
	Slug   string `gorm:"not null;uniqueIndex:ux_service_providers_slug"`
	APIUrl string
	Active bool `gorm:"default:true"`
}

func (ServiceProviderModel) TableName() string {
	return "service_providers"
}

type ServiceModel struct {
	ID            string  `gorm:"primaryKey;type:uuid"`
	ProviderID    string  `gorm:"type:uuid;uniqueIndex:ux_services_provider_svc,priority:1"`
	ProviderSvcID string  `gorm:"uniqueIndex:ux_services_provider_svc,priority:2"`
	PlatformID    string  `gorm:"type:uuid;index"`
	Name          string  `gorm:"not null;index"`
	Type          string
	ProviderRate  float64
	BoostRate     float64 `gorm:"index:idx_services_boost_rate"`
	MinOrder      int
	MaxOrder      int
	Active        bool `gorm:"default:true;index"`
	LastChecked   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ServiceModel) TableName() string {
	return "services"
}
