package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/boostlab/smm-order-service/internal/config"
	"github.com/boostlab/smm-order-service/internal/domain"
)

type CatalogUsecase interface {
	// SyncServices pulls the provider's service list and upserts it into
	// the local catalog with the configured markup applied.
	SyncServices(ctx context.Context) (*SyncReport, error)
	GetProviderBalance(ctx context.Context) (float64, error)
}

type SyncReport struct {
	Fetched  int
	Upserted int
	Skipped  int
}

type DefaultCatalogUsecase struct {
	CatalogRepo domain.CatalogRepository
	Provider    domain.FulfillmentProvider
	Panel       config.SMMPanel
	Pricing     config.Pricing
}

func NewDefaultCatalogUsecase(
	catalogRepo domain.CatalogRepository,
	provider domain.FulfillmentProvider,
	panel config.SMMPanel,
	pricing config.Pricing) *DefaultCatalogUsecase {

	return &DefaultCatalogUsecase{
		CatalogRepo: catalogRepo,
		Provider:    provider,
		Panel:       panel,
		Pricing:     pricing,
	}
}

func (uc *DefaultCatalogUsecase) SyncServices(ctx context.Context) (*SyncReport, error) {
	provider := &domain.ServiceProvider{
		Name:   uc.Panel.Name,
		Slug:   uc.Panel.Slug,
		APIUrl: uc.Panel.APIUrl,
		Active: true,
	}
	if err := uc.CatalogRepo.UpsertProvider(ctx, provider); err != nil {
		return nil, fmt.Errorf("upserting provider: %w", err)
	}

	entries, err := uc.Provider.FetchServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching provider services: %w", err)
	}

	report := &SyncReport{Fetched: len(entries)}
	now := time.Now()

	for _, entry := range entries {
		platformName := platformFromCategory(entry.Category)
		if platformName == "" {
			report.Skipped++
			continue
		}

		platform, err := uc.CatalogRepo.GetOrCreatePlatform(ctx, platformName)
		if err != nil {
			slog.Error("failed to resolve platform", "category", entry.Category, "error", err.Error())
			report.Skipped++
			continue
		}

		service := &domain.Service{
			ProviderID:    provider.ID,
			ProviderSvcID: entry.ServiceID,
			PlatformID:    platform.ID,
			Name:          entry.Name,
			Type:          normalizeServiceType(entry.Type),
			ProviderRate:  entry.Rate,
			BoostRate:     entry.Rate * (1 + uc.Pricing.MarkupPercentage/100),
			MinOrder:      entry.Min,
			MaxOrder:      entry.Max,
			Active:        true,
			LastChecked:   now,
		}

		if existing, err := uc.CatalogRepo.GetServiceByProviderSvcID(ctx, provider.ID, entry.ServiceID); err == nil {
			service.ID = existing.ID
		}

		if err := uc.CatalogRepo.SaveService(ctx, service); err != nil {
			slog.Error("failed to save service", "provider_svc_id", entry.ServiceID, "error", err.Error())
			report.Skipped++
			continue
		}
		report.Upserted++
	}

	slog.Info("catalog sync finished",
		"fetched", report.Fetched, "upserted", report.Upserted, "skipped", report.Skipped)
	return report, nil
}

func (uc *DefaultCatalogUsecase) GetProviderBalance(ctx context.Context) (float64, error) {
	return uc.Provider.GetBalance(ctx)
}

// knownPlatforms is the set of social platforms orders can target.
// Categories that mention none of these are skipped during sync.
var knownPlatforms = []string{
	"instagram", "tiktok", "youtube", "twitter", "facebook",
	"telegram", "spotify", "twitch", "snapchat", "linkedin",
}

func platformFromCategory(category string) string {
	lower := strings.ToLower(category)
	for _, p := range knownPlatforms {
		if strings.Contains(lower, p) {
			return p
		}
	}
	return ""
}

// normalizeServiceType collapses the panel's free-form type labels into
// the handful the order form offers.
func normalizeServiceType(raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "follow"), strings.Contains(lower, "subscrib"):
		return "followers"
	case strings.Contains(lower, "like"):
		return "likes"
	case strings.Contains(lower, "view"):
		return "views"
	case strings.Contains(lower, "comment"):
		return "comments"
	case strings.Contains(lower, "share"), strings.Contains(lower, "repost"):
		return "shares"
	default:
		return "other"
	}
}
