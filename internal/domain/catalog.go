package domain

import "time"

type Platform struct {
	ID        string
	Name      string
	Slug      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ServiceProvider struct {
	ID     string
	Name   string
	Slug   string
	APIUrl string
	Active bool
}

// Service is one sellable engagement service synced from the upstream
// provider catalog. ProviderRate is the provider's USD price per 1000
// units; BoostRate is ProviderRate with our markup applied.
type Service struct {
	ID            string
	ProviderID    string
	ProviderSvcID string
	PlatformID    string
	Name          string
	Type          string
	ProviderRate  float64
	BoostRate     float64
	MinOrder      int
	MaxOrder      int
	Active        bool
	LastChecked   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
