/* scheduler.go
 * Contains the background job that keeps the stored games fresh while the process is running
 */

package gamesync

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// StartScheduler runs SyncIfNeeded immediately and then every interval until ctx is done or the returned scheduler
// is shut down. Runs never overlap; a run still going when the next is due pushes the next one back
func StartScheduler(ctx context.Context, syncer *Syncer, interval time.Duration) (gocron.Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("sync interval must be positive, got %s", interval)
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			runCtx, cancel := context.WithTimeout(ctx, interval)
			defer cancel()

			ran, _, err := syncer.SyncIfNeeded(runCtx)
			if err != nil {
				log.Error().Err(err).Msg("scheduled sync failed")
				return
			}
			if !ran {
				log.Debug().Msg("scheduled sync not needed")
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithName("game-sync"),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("failed to schedule game sync: %w", err)
	}

	sched.Start()
	return sched, nil
}
