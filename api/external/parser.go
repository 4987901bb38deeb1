/* parser.go
 * Contains the logic to map one raw ESPN event into a Game. Malformed or missing fields are defaulted, never rejected:
 *   home/away team -> abbreviation, else display name, else "TBD"
 *   location       -> venue full name, else "TBD"
 *   kickoff        -> zero time if absent or unparsable
 *   scores         -> 0 if absent or not an integer
 *   logo, record   -> ""
 *   clock, period  -> "", 0
 *   probabilities  -> nil
 */

package external

import (
	"strconv"
	"strings"
	"time"

	"nfl-playoff-picks/api/shared"
)

// Placeholder is used for team names and locations the provider hasn't filled in yet
const Placeholder = "TBD"

// the scoreboard sends kickoff without seconds, e.g. 2025-01-11T21:30Z
var kickoffLayouts = []string{
	"2006-01-02T15:04Z07:00",
	time.RFC3339,
}

// ParseEvent maps a raw event into a Game.
// Preconditions: Receives a raw event and the season's week number -> round mapping
// Postconditions: Returns a fully populated Game; UpdatedAt is left for the caller to set
func ParseEvent(ev Event, weekRounds map[int]shared.Round) shared.Game {
	home := ev.competitor("home")
	away := ev.competitor("away")

	status := ParseStatus(ev.statusName())
	homeScore := parseScore(home)
	awayScore := parseScore(away)

	game := shared.Game{
		ID:           ev.ID,
		HomeTeam:     teamCode(home),
		AwayTeam:     teamCode(away),
		HomeLogo:     teamLogo(home),
		AwayLogo:     teamLogo(away),
		HomeRecord:   teamRecord(home),
		AwayRecord:   teamRecord(away),
		GameTime:     parseKickoff(ev.Date),
		Location:     Placeholder,
		Status:       status,
		HomeScore:    homeScore,
		AwayScore:    awayScore,
		PlayoffRound: ClassifyRound(ev, weekRounds),
	}

	if comp := ev.competition(); comp != nil && comp.Venue != nil && comp.Venue.FullName != "" {
		game.Location = comp.Venue.FullName
	}

	if status == shared.StatusCompleted {
		game.Winner = Winner(game.HomeTeam, homeScore, game.AwayTeam, awayScore)
	}

	if live := ev.liveStatus(); live != nil && status == shared.StatusInProgress {
		game.Clock = live.DisplayClock
		game.Period = live.Period
	}
	if comp := ev.competition(); comp != nil && comp.Situation != nil && comp.Situation.LastPlay != nil {
		if p := comp.Situation.LastPlay.Probability; p != nil {
			game.HomeWinProbability = p.HomeWinPercentage
			game.AwayWinProbability = p.AwayWinPercentage
		}
	}

	return game
}

// ParseStatus maps the provider's status name onto a game status. Unknown names are treated as scheduled
func ParseStatus(name string) shared.Status {
	switch name {
	case "STATUS_IN_PROGRESS", "STATUS_HALFTIME":
		return shared.StatusInProgress
	case "STATUS_FINAL", "STATUS_FINAL_OVERTIME":
		return shared.StatusCompleted
	default:
		return shared.StatusScheduled
	}
}

// Winner returns the team with the strictly higher score. A tie has no winner
func Winner(homeTeam string, homeScore int, awayTeam string, awayScore int) string {
	switch {
	case homeScore > awayScore:
		return homeTeam
	case awayScore > homeScore:
		return awayTeam
	default:
		return ""
	}
}

func parseScore(c *Competitor) int {
	if c == nil {
		return 0
	}
	score, err := strconv.Atoi(strings.TrimSpace(string(c.Score)))
	if err != nil {
		return 0
	}
	return score
}

func teamCode(c *Competitor) string {
	if c == nil || c.Team == nil {
		return Placeholder
	}
	if c.Team.Abbreviation != "" {
		return c.Team.Abbreviation
	}
	if c.Team.DisplayName != "" {
		return c.Team.DisplayName
	}
	return Placeholder
}

func teamLogo(c *Competitor) string {
	if c == nil || c.Team == nil {
		return ""
	}
	return c.Team.Logo
}

func teamRecord(c *Competitor) string {
	if c == nil || len(c.Records) == 0 {
		return ""
	}
	return c.Records[0].Summary
}

func parseKickoff(s string) time.Time {
	for _, layout := range kickoffLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
