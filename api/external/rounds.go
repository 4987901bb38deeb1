/* rounds.go
 * Contains the logic for deciding whether a raw event is a playoff game and which playoff round it belongs to.
 * The provider does not label rounds consistently between seasons, so human readable signals (the event note) are
 * preferred over week numbers, and every field is allowed to be missing
 */

package external

import (
	"strings"

	"nfl-playoff-picks/api/shared"
)

// postseasonType is the provider's season type code for the playoffs
const postseasonType = 3

// roundKeywords is checked in order, first match wins
var roundKeywords = []struct {
	keyword string
	round   shared.Round
}{
	{"super bowl", shared.RoundSuperBowl},
	{"conference championship", shared.RoundConference},
	{"divisional", shared.RoundDivisional},
	{"wild card", shared.RoundWildCard},
}

// ClassifyRound maps a raw event to a playoff round.
// Preconditions: Receives the event and the week number -> round mapping for the season being polled
// Postconditions: Returns the round from the event note if it names one, else from the week number, else RoundOther
// if the season type says this isn't the postseason, else RoundWildCard
func ClassifyRound(ev Event, weekRounds map[int]shared.Round) shared.Round {
	if headline := strings.ToLower(ev.Headline()); headline != "" {
		for _, rk := range roundKeywords {
			if strings.Contains(headline, rk.keyword) {
				return rk.round
			}
		}
	}

	// A week number missing from the mapping (e.g. the Pro Bowl week) falls through to the season type check
	if week, ok := ev.WeekNumber(); ok {
		if round, ok := weekRounds[week]; ok {
			return round
		}
	}

	if ev.HasSeasonType() && !ev.IsPostseason() {
		return shared.RoundOther
	}

	return shared.RoundWildCard
}

// IsPlayoffGame is the pre-filter applied before classification. An event passes if its season type is the
// postseason, or if it is week 18 or later and its name or note mentions a playoff round or "playoff".
// An event can pass this filter and still classify as RoundOther
func IsPlayoffGame(ev Event) bool {
	if ev.IsPostseason() {
		return true
	}

	week, ok := ev.WeekNumber()
	if !ok || week < 18 {
		return false
	}

	text := strings.ToLower(ev.Name + " " + ev.Headline())
	if strings.Contains(text, "playoff") {
		return true
	}
	for _, rk := range roundKeywords {
		if strings.Contains(text, rk.keyword) {
			return true
		}
	}
	return false
}
