/* parser_test.go
 * Contains unit tests for parser.go
 */

package external

import (
	"encoding/json"
	"testing"
	"time"

	"nfl-playoff-picks/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureEvents(t *testing.T) []Event {
	t.Helper()
	var scoreboard ScoreboardResponse
	require.NoError(t, json.Unmarshal(loadFixture(t, "scoreboard_wildcard.json"), &scoreboard))
	return scoreboard.Events
}

func competitorEvent(status string, homeScore, awayScore Score) Event {
	return Event{
		ID:   "401",
		Date: "2025-01-19T20:00Z",
		Competitions: []Competition{{
			Competitors: []Competitor{
				{HomeAway: "home", Score: homeScore, Team: &Team{Abbreviation: "KC"}},
				{HomeAway: "away", Score: awayScore, Team: &Team{Abbreviation: "BUF"}},
			},
		}},
		Status: &EventStatus{Type: &StatusType{Name: status}},
	}
}

// region ParseEvent tests

func TestParseEvent_CompletedGame(t *testing.T) {
	game := ParseEvent(fixtureEvents(t)[0], defaultWeekRounds)

	assert.Equal(t, "401671793", game.ID)
	assert.Equal(t, "HOU", game.HomeTeam)
	assert.Equal(t, "LAC", game.AwayTeam)
	assert.Equal(t, "10-7", game.HomeRecord)
	assert.Equal(t, "https://a.espncdn.com/i/teamlogos/nfl/500/scoreboard/lac.png", game.AwayLogo)
	assert.Equal(t, time.Date(2025, time.January, 11, 21, 30, 0, 0, time.UTC), game.GameTime)
	assert.Equal(t, "NRG Stadium", game.Location)
	assert.Equal(t, shared.StatusCompleted, game.Status)
	assert.Equal(t, 32, game.HomeScore)
	assert.Equal(t, 12, game.AwayScore)
	assert.Equal(t, "HOU", game.Winner)
	assert.Equal(t, shared.RoundWildCard, game.PlayoffRound)
	assert.Empty(t, game.Clock, "live fields are only set while in progress")
}

func TestParseEvent_InProgressGame(t *testing.T) {
	game := ParseEvent(fixtureEvents(t)[1], defaultWeekRounds)

	assert.Equal(t, shared.StatusInProgress, game.Status)
	assert.Empty(t, game.Winner)
	assert.Equal(t, "7:42", game.Clock)
	assert.Equal(t, 2, game.Period)
	require.NotNil(t, game.HomeWinProbability)
	assert.InDelta(t, 0.81, *game.HomeWinProbability, 1e-9)
	assert.Empty(t, game.HomeLogo)
	assert.Empty(t, game.HomeRecord)
}

func TestParseEvent_MissingEverything(t *testing.T) {
	game := ParseEvent(Event{ID: "999"}, defaultWeekRounds)

	assert.Equal(t, "999", game.ID)
	assert.Equal(t, Placeholder, game.HomeTeam)
	assert.Equal(t, Placeholder, game.AwayTeam)
	assert.Equal(t, Placeholder, game.Location)
	assert.True(t, game.GameTime.IsZero())
	assert.Equal(t, shared.StatusScheduled, game.Status)
	assert.Equal(t, 0, game.HomeScore)
	assert.Equal(t, 0, game.AwayScore)
	assert.Empty(t, game.Winner)
	assert.Nil(t, game.HomeWinProbability)
	assert.Equal(t, shared.RoundWildCard, game.PlayoffRound)
}

func TestParseEvent_DisplayNameFallback(t *testing.T) {
	ev := Event{ID: "1", Competitions: []Competition{{Competitors: []Competitor{
		{HomeAway: "home", Team: &Team{DisplayName: "AFC Champion"}},
		{HomeAway: "away", Team: &Team{}},
	}}}}
	game := ParseEvent(ev, defaultWeekRounds)
	assert.Equal(t, "AFC Champion", game.HomeTeam)
	assert.Equal(t, Placeholder, game.AwayTeam)
}

func TestParseEvent_ScoreDefaults(t *testing.T) {
	tests := []struct {
		name  string
		score Score
		want  int
	}{
		{"absent", "", 0},
		{"non-numeric", "abc", 0},
		{"decimal", "21.5", 0},
		{"padded", " 17 ", 17},
		{"numeric", "31", 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := ParseEvent(competitorEvent("STATUS_IN_PROGRESS", tt.score, "3"), defaultWeekRounds)
			assert.Equal(t, tt.want, game.HomeScore)
		})
	}
}

func TestParseEvent_TieHasNoWinner(t *testing.T) {
	game := ParseEvent(competitorEvent("STATUS_FINAL_OVERTIME", "20", "20"), defaultWeekRounds)
	assert.Equal(t, shared.StatusCompleted, game.Status)
	assert.Empty(t, game.Winner)
}

func TestParseEvent_AwayWinner(t *testing.T) {
	game := ParseEvent(competitorEvent("STATUS_FINAL", "24", "27"), defaultWeekRounds)
	assert.Equal(t, "BUF", game.Winner)
}

func TestParseEvent_WinnerOnlyWhenCompleted(t *testing.T) {
	game := ParseEvent(competitorEvent("STATUS_HALFTIME", "24", "3"), defaultWeekRounds)
	assert.Equal(t, shared.StatusInProgress, game.Status)
	assert.Empty(t, game.Winner)
}

func TestParseEvent_CompetitionStatusFallback(t *testing.T) {
	ev := competitorEvent("", "10", "3")
	ev.Status = nil
	ev.Competitions[0].Status = &EventStatus{DisplayClock: "2:00", Period: 3, Type: &StatusType{Name: "STATUS_IN_PROGRESS"}}

	game := ParseEvent(ev, defaultWeekRounds)
	assert.Equal(t, shared.StatusInProgress, game.Status)
	assert.Equal(t, "2:00", game.Clock)
	assert.Equal(t, 3, game.Period)
}

func TestParseEvent_RFC3339Kickoff(t *testing.T) {
	ev := Event{ID: "1", Date: "2025-02-09T23:30:00Z"}
	assert.Equal(t, time.Date(2025, time.February, 9, 23, 30, 0, 0, time.UTC), ParseEvent(ev, nil).GameTime)
}

// endregion

func TestParseStatus(t *testing.T) {
	assert.Equal(t, shared.StatusInProgress, ParseStatus("STATUS_IN_PROGRESS"))
	assert.Equal(t, shared.StatusInProgress, ParseStatus("STATUS_HALFTIME"))
	assert.Equal(t, shared.StatusCompleted, ParseStatus("STATUS_FINAL"))
	assert.Equal(t, shared.StatusCompleted, ParseStatus("STATUS_FINAL_OVERTIME"))
	assert.Equal(t, shared.StatusScheduled, ParseStatus("STATUS_SCHEDULED"))
	assert.Equal(t, shared.StatusScheduled, ParseStatus("STATUS_POSTPONED"))
	assert.Equal(t, shared.StatusScheduled, ParseStatus(""))
}
