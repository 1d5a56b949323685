// workers/collection_sync_worker.go
package workers

import (
	"context"
	"log"
	"time"

	"next2play/services"
)

// Resyncer is the part of services.Resyncer the worker drives.
type Resyncer interface {
	Now(ctx context.Context) (services.Snapshot, error)
}

// CollectionSyncWorker periodically pulls the authoritative collection so
// edits made outside this service show up without a manual refresh.
type CollectionSyncWorker struct {
	resync   Resyncer
	interval time.Duration
	timeout  time.Duration
}

func NewCollectionSyncWorker(resync Resyncer, interval time.Duration) *CollectionSyncWorker {
	return &CollectionSyncWorker{
		resync:   resync,
		interval: interval,
		timeout:  30 * time.Second,
	}
}

func (w *CollectionSyncWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		log.Println("[SYNC] ⏸️ Collection sync worker disabled")
		return
	}
	log.Printf("[SYNC] 🔁 Starting collection sync worker (every %s)", w.interval)
	go w.run(ctx)
}

func (w *CollectionSyncWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.syncOnce(ctx)
		case <-ctx.Done():
			log.Println("[SYNC] ⏹️ Collection sync worker stopped")
			return
		}
	}
}

func (w *CollectionSyncWorker) syncOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	if _, err := w.resync.Now(ctx); err != nil {
		log.Printf("[SYNC] ❌ Periodic collection sync failed: %v", err)
	}
}
