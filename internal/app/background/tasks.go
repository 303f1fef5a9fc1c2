package background

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/boostlab/smm-order-service/internal/config"
	"github.com/boostlab/smm-order-service/internal/usecase/catalog"
	"github.com/boostlab/smm-order-service/internal/usecase/order"
)

// BackgroundTasks owns the periodic loops: reconciliation against the
// fulfillment provider, expired-order cleanup and the nightly catalog
// refresh. Every loop is isolated; a panic or error in one tick never
// takes the scheduler down.
type BackgroundTasks struct {
	OrderUsecase   order.OrderUsecase
	CatalogUsecase catalog.CatalogUsecase
	Reconcile      config.Reconcile
}

func NewBackgroundTasks(orderUC order.OrderUsecase, catalogUC catalog.CatalogUsecase, reconcile config.Reconcile) *BackgroundTasks {
	return &BackgroundTasks{
		OrderUsecase:   orderUC,
		CatalogUsecase: catalogUC,
		Reconcile:      reconcile,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startOrderReconcile(ctx)
	go bt.startExpiredOrderCleanup(ctx)
	go bt.startCatalogRefresh(ctx)
}

func (bt *BackgroundTasks) startOrderReconcile(ctx context.Context) {
	ticker := time.NewTicker(bt.Reconcile.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.runIsolated("reconcile", func() {
				if err := bt.OrderUsecase.ReconcileOrders(ctx); err != nil {
					log.Printf("Reconcile error: %v\n", err)
				}
			})
		}
	}
}

func (bt *BackgroundTasks) startExpiredOrderCleanup(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.runIsolated("expired-cleanup", func() {
				if err := bt.OrderUsecase.CancelExpiredOrders(ctx); err != nil {
					log.Printf("Expired order cleanup error: %v\n", err)
				}
			})
		}
	}
}

func (bt *BackgroundTasks) startCatalogRefresh(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.runIsolated("catalog-refresh", func() {
				if _, err := bt.CatalogUsecase.SyncServices(ctx); err != nil {
					log.Printf("Catalog refresh error: %v\n", err)
				}
			})
		}
	}
}

func (bt *BackgroundTasks) runIsolated(task string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("background task panicked", "task", task, "panic", r)
		}
	}()
	fn()
}
