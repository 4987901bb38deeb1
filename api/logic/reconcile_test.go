/* reconcile_test.go
 * Contains unit tests for reconcile.go
 */

package logic

import (
	"testing"
	"time"

	"nfl-playoff-picks/api/shared"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, time.January, 11, 18, 0, 0, 0, time.UTC)

func scheduledGame(id string, kickoff time.Time) shared.Game {
	return shared.Game{
		ID:           id,
		HomeTeam:     "KC",
		AwayTeam:     "HOU",
		GameTime:     kickoff,
		Status:       shared.StatusScheduled,
		PlayoffRound: shared.RoundDivisional,
	}
}

func TestNeedsUpdate(t *testing.T) {
	stored := scheduledGame("g1", now.Add(time.Hour))

	tests := []struct {
		name     string
		existing *shared.Game
		parsed   func(g shared.Game) shared.Game
		want     bool
	}{
		{
			name:     "no stored record",
			existing: nil,
			parsed:   func(g shared.Game) shared.Game { return g },
			want:     true,
		},
		{
			name:     "unchanged scheduled game",
			existing: &stored,
			parsed:   func(g shared.Game) shared.Game { return g },
			want:     false,
		},
		{
			name:     "live game always updates",
			existing: &shared.Game{ID: "g1", HomeTeam: "KC", AwayTeam: "HOU", Status: shared.StatusInProgress},
			parsed: func(g shared.Game) shared.Game {
				g.Status = shared.StatusInProgress
				return g
			},
			want: true,
		},
		{
			name:     "final game always updates",
			existing: &shared.Game{ID: "g1", HomeTeam: "KC", AwayTeam: "HOU", Status: shared.StatusCompleted},
			parsed: func(g shared.Game) shared.Game {
				g.Status = shared.StatusCompleted
				return g
			},
			want: true,
		},
		{
			name:     "team slot filled in",
			existing: &shared.Game{ID: "g1", HomeTeam: "KC", AwayTeam: "TBD", Status: shared.StatusScheduled},
			parsed:   func(g shared.Game) shared.Game { return g },
			want:     true,
		},
		{
			name:     "status regressed to scheduled",
			existing: &shared.Game{ID: "g1", HomeTeam: "KC", AwayTeam: "HOU", Status: shared.StatusInProgress},
			parsed:   func(g shared.Game) shared.Game { return g },
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsUpdate(tt.existing, tt.parsed(stored)))
		})
	}
}

func TestReconcile_SkipsOtherAndUnchanged(t *testing.T) {
	unchanged := scheduledGame("g1", now.Add(time.Hour))
	changed := scheduledGame("g2", now.Add(2*time.Hour))
	stored := []shared.Game{unchanged, {ID: "g2", HomeTeam: "TBD", AwayTeam: "TBD", Status: shared.StatusScheduled}}

	fresh := scheduledGame("g3", now.Add(3*time.Hour))
	other := scheduledGame("g4", now.Add(4*time.Hour))
	other.PlayoffRound = shared.RoundOther

	writes := Reconcile(stored, []shared.Game{unchanged, changed, fresh, other})

	ids := make([]string, 0, len(writes))
	for _, g := range writes {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []string{"g2", "g3"}, ids)
}

func TestReconcile_CompletedGameWrittenEveryCycle(t *testing.T) {
	final := scheduledGame("g1", now.Add(-3*time.Hour))
	final.Status = shared.StatusCompleted
	final.HomeScore, final.AwayScore, final.Winner = 23, 14, "KC"

	// Same record stored and parsed; a correction could still arrive so it is written anyway
	writes := Reconcile([]shared.Game{final}, []shared.Game{final})
	assert.Len(t, writes, 1)
}

func TestReconcile_EmptyInput(t *testing.T) {
	assert.Empty(t, Reconcile(nil, nil))
}

func TestShouldSync(t *testing.T) {
	future := scheduledGame("g1", now.Add(time.Hour))
	past := scheduledGame("g2", now.Add(-time.Minute))
	live := scheduledGame("g3", now.Add(-time.Hour))
	live.Status = shared.StatusInProgress
	final := scheduledGame("g4", now.Add(-5*time.Hour))
	final.Status = shared.StatusCompleted
	unknownKickoff := scheduledGame("g5", time.Time{})

	assert.True(t, ShouldSync(nil, now), "empty store")
	assert.False(t, ShouldSync([]shared.Game{future, final}, now), "nothing stale")
	assert.True(t, ShouldSync([]shared.Game{future, past}, now), "scheduled game past kickoff")
	assert.True(t, ShouldSync([]shared.Game{final, live}, now), "live game")
	assert.False(t, ShouldSync([]shared.Game{unknownKickoff}, now), "unknown kickoff is not stale")
}
