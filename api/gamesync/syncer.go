/* syncer.go
 * Contains the Syncer, which pulls the postseason schedule from the external source and writes the games that changed
 * back to the store
 */

package gamesync

import (
	"context"
	"fmt"
	"sync"

	"nfl-playoff-picks/api/config"
	"nfl-playoff-picks/api/external"
	"nfl-playoff-picks/api/logic"
	"nfl-playoff-picks/api/shared"
	"nfl-playoff-picks/api/store"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Result summarises one sync cycle
type Result struct {
	Fetched     int   `json:"fetched"`      // events returned by the source across all weeks
	Written     int   `json:"written"`      // games upserted
	Skipped     int   `json:"skipped"`      // events that were not playoff games or did not need a write
	FailedWeeks []int `json:"failed_weeks"` // weeks whose fetch failed and were skipped
}

type Syncer struct {
	source external.Source
	store  store.Interface
	season config.SeasonConfig
	year   int
	clock  clockwork.Clock

	// one sync at a time per Syncer
	mu sync.Mutex
}

func NewSyncer(source external.Source, st store.Interface, season config.SeasonConfig, year int, clock clockwork.Clock) *Syncer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Syncer{
		source: source,
		store:  st,
		season: season,
		year:   year,
		clock:  clock,
	}
}

// Sync runs one full cycle over every configured week.
// Preconditions: Receives a context bounding the whole cycle
// Postconditions: Returns a summary of the cycle. A failed week fetch is logged and skipped; the first failed write
// stops the cycle and is returned along with what was written before it
func (s *Syncer) Sync(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := Result{FailedWeeks: []int{}}

	stored, err := s.store.ListGames(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load stored games: %w", err)
	}

	for _, week := range s.season.Weeks {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		events, err := s.source.FetchEvents(ctx, s.year, s.season.SeasonType, week)
		if err != nil {
			log.Warn().Err(err).Int("year", s.year).Int("week", week).Msg("failed to fetch week, skipping")
			result.FailedWeeks = append(result.FailedWeeks, week)
			continue
		}
		result.Fetched += len(events)

		parsed := make([]shared.Game, 0, len(events))
		for _, ev := range events {
			if !external.IsPlayoffGame(ev) {
				continue
			}
			game := external.ParseEvent(ev, s.season.WeekRounds)
			game.UpdatedAt = s.clock.Now().UTC()
			parsed = append(parsed, game)
		}

		writes := logic.Reconcile(stored, parsed)
		result.Skipped += len(events) - len(writes)

		for _, game := range writes {
			if _, err := s.store.UpsertGame(ctx, game); err != nil {
				log.Error().Err(err).Str("game_id", game.ID).Int("week", week).Msg("failed to write game, aborting sync")
				return result, fmt.Errorf("failed to write game %s: %w", game.ID, err)
			}
			result.Written++
		}
	}

	log.Info().
		Int("year", s.year).
		Int("fetched", result.Fetched).
		Int("written", result.Written).
		Int("skipped", result.Skipped).
		Ints("failed_weeks", result.FailedWeeks).
		Msg("game sync complete")
	return result, nil
}

// SyncIfNeeded runs Sync only when the stored games are stale. Returns false if no sync was needed
func (s *Syncer) SyncIfNeeded(ctx context.Context) (bool, Result, error) {
	games, err := s.store.ListGames(ctx)
	if err != nil {
		return false, Result{}, fmt.Errorf("failed to load stored games: %w", err)
	}
	if !logic.ShouldSync(games, s.clock.Now()) {
		return false, Result{}, nil
	}

	result, err := s.Sync(ctx)
	return true, result, err
}
