/* reconcile.go
 * Contains the rules deciding which parsed games are written back to the store during a sync, and whether a sync is
 * worth running at all
 */

package logic

import (
	"time"

	"nfl-playoff-picks/api/shared"
)

// NeedsUpdate reports whether parsed should overwrite existing. An update is needed if any of the following hold:
// there is no stored record, the game is live, the status changed, the game is final (scores may still be corrected),
// or either team code differs (a TBD slot was filled in)
func NeedsUpdate(existing *shared.Game, parsed shared.Game) bool {
	if existing == nil {
		return true
	}
	if parsed.Status == shared.StatusInProgress || parsed.Status == shared.StatusCompleted {
		return true
	}
	if existing.Status != parsed.Status {
		return true
	}
	return existing.HomeTeam != parsed.HomeTeam || existing.AwayTeam != parsed.AwayTeam
}

// Reconcile returns the subset of parsed that should be written, in input order. Games classified as RoundOther are
// never written
func Reconcile(stored []shared.Game, parsed []shared.Game) []shared.Game {
	byID := make(map[string]*shared.Game, len(stored))
	for i := range stored {
		byID[stored[i].ID] = &stored[i]
	}

	var writes []shared.Game
	for _, game := range parsed {
		if game.PlayoffRound == shared.RoundOther {
			continue
		}
		if NeedsUpdate(byID[game.ID], game) {
			writes = append(writes, game)
		}
	}
	return writes
}

// ShouldSync reports whether the stored games are stale enough to warrant a fetch: nothing is stored, a game is live,
// or a scheduled game's kickoff has already passed
func ShouldSync(games []shared.Game, now time.Time) bool {
	if len(games) == 0 {
		return true
	}
	for _, g := range games {
		if g.Status == shared.StatusInProgress {
			return true
		}
		if g.Status == shared.StatusScheduled && g.HasStarted(now) {
			return true
		}
	}
	return false
}
