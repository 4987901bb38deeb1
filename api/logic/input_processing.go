/* input_processing.go
 * Contains the logic for processing user input and matching it to team codes
 */

package logic

import (
	"strings"

	"nfl-playoff-picks/api/shared"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MatchTeams matches free text team input against a list of valid team codes.
// Preconditions: receives two string slices; one containing the user's input and another containing the valid team codes
// Postconditions: returns the matched codes in their canonical form, and the inputs that matched nothing
func MatchTeams(input []string, validTeams []string) ([]string, []string) {
	var matched []string
	var invalid []string

	lookup := make(map[string]string)
	var validLower []string
	for _, team := range validTeams {
		lower := strings.ToLower(team)
		lookup[lower] = team
		validLower = append(validLower, lower)
	}

	for _, team := range input {
		if code, ok := matchOne(strings.ToLower(strings.TrimSpace(team)), validLower, lookup); ok {
			matched = append(matched, code)
		} else {
			invalid = append(invalid, team)
		}
	}
	return matched, invalid
}

// MatchTeam resolves input to one of the two teams playing in game. Returns false if it matches neither
func MatchTeam(input string, game shared.Game) (string, bool) {
	matched, _ := MatchTeams([]string{input}, []string{game.HomeTeam, game.AwayTeam})
	if len(matched) != 1 {
		return "", false
	}
	return matched[0], true
}

func matchOne(lowerInput string, validLower []string, lookup map[string]string) (string, bool) {
	if lowerInput == "" {
		return "", false
	}

	ranks := fuzzy.RankFind(lowerInput, validLower)
	switch len(ranks) {
	case 0:
		return "", false
	case 1:
		return lookup[ranks[0].Target], true
	}

	// Multiple candidates: prefer an exact match, then the closest
	for _, r := range ranks {
		if r.Target == lowerInput {
			return lookup[r.Target], true
		}
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return lookup[best.Target], true
}
