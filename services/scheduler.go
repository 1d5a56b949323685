// services/scheduler.go
package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// MaintenanceOptions configures the background housekeeping jobs.
type MaintenanceOptions struct {
	SessionIdleTimeout time.Duration
	ArtworkInterval    time.Duration
}

// StartMaintenanceScheduler runs the periodic housekeeping jobs: idle
// session eviction and, when mirror is set, the artwork mirror pass.
func StartMaintenanceScheduler(sessions *SessionStore, coll *Collection, mirror *ArtworkMirror, opts MaintenanceOptions) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create maintenance scheduler: %w", err)
	}

	if opts.SessionIdleTimeout > 0 {
		sweepEvery := opts.SessionIdleTimeout / 4
		if sweepEvery < time.Minute {
			sweepEvery = time.Minute
		}
		_, err = sched.NewJob(
			gocron.DurationJob(sweepEvery),
			gocron.NewTask(func() {
				if n := sessions.Sweep(opts.SessionIdleTimeout); n > 0 {
					log.Printf("[Scheduler] 🧹 Evicted %d idle session(s), %d remaining", n, sessions.Len())
				}
			}),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to schedule session sweep: %w", err)
		}
	}

	if mirror != nil && opts.ArtworkInterval > 0 {
		_, err = sched.NewJob(
			gocron.DurationJob(opts.ArtworkInterval),
			gocron.NewTask(func() {
				ctx, cancel := context.WithTimeout(context.Background(), opts.ArtworkInterval)
				defer cancel()
				mirror.MirrorAll(ctx, coll.Snapshot().Games, false)
			}),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to schedule artwork mirror: %w", err)
		}
	}

	sched.Start()
	return sched, nil
}
