/* leaderboard.go
 * Contains the leaderboard and per-user pick scoring. Only picks for completed games with a winner are counted
 */

package logic

import (
	"math"
	"sort"

	"nfl-playoff-picks/api/shared"
)

type LeaderboardEntry struct {
	User          shared.User `json:"user"`
	Wins          int         `json:"wins"`
	Losses        int         `json:"losses"`
	TotalPicks    int         `json:"total_picks"`
	WinPercentage float64     `json:"win_percentage"`
}

// Outcome is the result of a single pick
type Outcome string

const (
	OutcomePending   Outcome = "pending"
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
)

// PickDetail pairs a pick with its game for the per-user view
type PickDetail struct {
	Game    shared.Game `json:"game"`
	Pick    shared.Pick `json:"pick"`
	Outcome Outcome     `json:"outcome"`
}

// BuildLeaderboard scores every user against the completed games.
// Preconditions: users in creation order, all games and all picks
// Postconditions: Returns one entry per user, sorted by win percentage (desc) then resolved picks (desc). Users that
// tie on both keep their creation order
func BuildLeaderboard(users []shared.User, games []shared.Game, picks []shared.Pick) []LeaderboardEntry {
	winners := completedWinners(games)

	type tally struct{ wins, total int }
	tallies := make(map[string]*tally, len(users))
	for _, p := range picks {
		winner, ok := winners[p.GameID]
		if !ok {
			continue
		}
		t, ok := tallies[p.UserID]
		if !ok {
			t = &tally{}
			tallies[p.UserID] = t
		}
		t.total++
		if p.PickedTeam == winner {
			t.wins++
		}
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entry := LeaderboardEntry{User: u}
		if t, ok := tallies[u.ID]; ok {
			entry.Wins = t.wins
			entry.Losses = t.total - t.wins
			entry.TotalPicks = t.total
			entry.WinPercentage = winPercentage(t.wins, t.total)
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].WinPercentage != entries[j].WinPercentage {
			return entries[i].WinPercentage > entries[j].WinPercentage
		}
		return entries[i].TotalPicks > entries[j].TotalPicks
	})
	return entries
}

// UserPickDetails returns user's picks in game order with the outcome of each
func UserPickDetails(user shared.User, games []shared.Game, picks []shared.Pick) []PickDetail {
	byGame := make(map[string]shared.Pick)
	for _, p := range picks {
		if p.UserID == user.ID {
			byGame[p.GameID] = p
		}
	}

	var details []PickDetail
	for _, g := range games {
		p, ok := byGame[g.ID]
		if !ok {
			continue
		}
		details = append(details, PickDetail{Game: g, Pick: p, Outcome: outcome(g, p)})
	}
	return details
}

func outcome(game shared.Game, pick shared.Pick) Outcome {
	if game.Status != shared.StatusCompleted || game.Winner == "" {
		return OutcomePending
	}
	if pick.PickedTeam == game.Winner {
		return OutcomeCorrect
	}
	return OutcomeIncorrect
}

// completedWinners maps game id to winner for every decided game. A tied game has no winner yet and is left out
func completedWinners(games []shared.Game) map[string]string {
	winners := make(map[string]string)
	for _, g := range games {
		if g.Status == shared.StatusCompleted && g.Winner != "" {
			winners[g.ID] = g.Winner
		}
	}
	return winners
}

// winPercentage rounds to one decimal place. Zero resolved picks is 0%
func winPercentage(wins, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(wins)/float64(total)*1000) / 10
}
