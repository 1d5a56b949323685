// services/resync.go
package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"next2play/models"

	"github.com/go-co-op/gocron/v2"
)

// CollectionSource yields the authoritative game list.
type CollectionSource interface {
	FetchCollection(ctx context.Context) ([]models.Game, error)
}

// Resyncer re-fetches the collection from the backend and merges it into
// the in-memory Collection. Delayed re-syncs run as one-time gocron jobs;
// overlapping requests collapse into the one already pending.
type Resyncer struct {
	source  CollectionSource
	coll    *Collection
	store   SnapshotStore
	sched   gocron.Scheduler
	timeout time.Duration

	mu      sync.Mutex
	pending bool
}

func NewResyncer(source CollectionSource, coll *Collection, store SnapshotStore) (*Resyncer, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create resync scheduler: %w", err)
	}
	sched.Start()
	if store == nil {
		store = NopSnapshotStore{}
	}
	return &Resyncer{
		source:  source,
		coll:    coll,
		store:   store,
		sched:   sched,
		timeout: 30 * time.Second,
	}, nil
}

// Now re-synchronises immediately.
func (r *Resyncer) Now(ctx context.Context) (Snapshot, error) {
	games, err := r.source.FetchCollection(ctx)
	if err != nil {
		log.Printf("[RESYNC] ❌ Failed to fetch collection: %v", err)
		return r.coll.Snapshot(), err
	}
	snap := r.coll.Replace(games)
	if err := r.store.Save(ctx, snap.Games); err != nil {
		log.Printf("[RESYNC] ⚠️ Failed to persist snapshot: %v", err)
	}
	log.Printf("[RESYNC] ✅ Collection re-synced (%d games, generation %d)", len(snap.Games), snap.Generation)
	return snap, nil
}

// Schedule arranges a re-sync after delay.
func (r *Resyncer) Schedule(delay time.Duration) {
	r.mu.Lock()
	if r.pending {
		r.mu.Unlock()
		return
	}
	r.pending = true
	r.mu.Unlock()

	start := gocron.OneTimeJobStartImmediately()
	if delay > 0 {
		start = gocron.OneTimeJobStartDateTime(time.Now().Add(delay))
	}
	_, err := r.sched.NewJob(
		gocron.OneTimeJob(start),
		gocron.NewTask(func() {
			r.mu.Lock()
			r.pending = false
			r.mu.Unlock()

			ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
			defer cancel()
			_, _ = r.Now(ctx)
		}),
	)
	if err != nil {
		log.Printf("[RESYNC] ❌ Failed to schedule re-sync: %v", err)
		r.mu.Lock()
		r.pending = false
		r.mu.Unlock()
	}
}

// Boot loads the collection at startup, falling back to the last stored
// snapshot when the backend is unreachable.
func (r *Resyncer) Boot(ctx context.Context) (Snapshot, error) {
	snap, err := r.Now(ctx)
	if err == nil {
		return snap, nil
	}
	games, loadErr := r.store.Load(ctx)
	if loadErr != nil {
		return snap, fmt.Errorf("backend unavailable (%v) and snapshot load failed: %w", err, loadErr)
	}
	log.Printf("[RESYNC] ⚠️ Backend unavailable, booting from stored snapshot (%d games)", len(games))
	return r.coll.Replace(games), nil
}

func (r *Resyncer) Shutdown() error {
	return r.sched.Shutdown()
}
