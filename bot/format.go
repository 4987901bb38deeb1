/* format.go
 * Contains the helpers that turn api results into discord message text
 */

package bot

import (
	"fmt"
	"strconv"
	"strings"

	"nfl-playoff-picks/api/api"
	"nfl-playoff-picks/api/logic"
	"nfl-playoff-picks/api/shared"
)

const kickoffFormat = "Mon Jan 2 15:04 MST"

// formatRounds lists the games of every round, or only of filter if it is set. Returns "" if there is nothing to list
func formatRounds(rounds []api.RoundGames, filter shared.Round) string {
	var res strings.Builder
	for _, r := range rounds {
		if filter != "" && r.Round != filter {
			continue
		}
		res.WriteString(fmt.Sprintf("**%s**\n", r.Label))
		for _, g := range r.Games {
			res.WriteString(formatGame(g))
			res.WriteString("\n")
		}
	}
	return res.String()
}

// formatGame renders one game as a single line, e.g. "`401` LAC @ HOU | Final | LAC 12 - HOU 32"
func formatGame(g shared.Game) string {
	line := fmt.Sprintf("`%s` %s", g.ID, g.Matchup())

	switch g.Status {
	case shared.StatusScheduled:
		kickoff := "TBD"
		if !g.GameTime.IsZero() {
			kickoff = g.GameTime.Format(kickoffFormat)
		}
		return fmt.Sprintf("%s | %s | %s", line, kickoff, g.Location)
	case shared.StatusInProgress:
		live := g.Status.Label()
		if g.Period > 0 {
			live = fmt.Sprintf("%s Q%d %s", live, g.Period, g.Clock)
		}
		return fmt.Sprintf("%s | %s | %s", line, live, score(g))
	default:
		res := fmt.Sprintf("%s | %s | %s", line, g.Status.Label(), score(g))
		if g.Winner != "" {
			res += fmt.Sprintf(" | %s win", g.Winner)
		}
		return res
	}
}

func score(g shared.Game) string {
	return fmt.Sprintf("%s %d - %s %d", g.AwayTeam, g.AwayScore, g.HomeTeam, g.HomeScore)
}

// formatLeaderboard renders the standings, one line per player
func formatLeaderboard(board []logic.LeaderboardEntry) string {
	if len(board) == 0 {
		return "No players yet. Use `$signin First Last` to join"
	}

	var res strings.Builder
	res.WriteString("Leaderboard:\n")
	for i, entry := range board {
		res.WriteString(fmt.Sprintf("%d. %s: %d-%d (%.1f%%)\n",
			i+1, entry.User.FullName(), entry.Wins, entry.Losses, entry.WinPercentage))
	}
	return res.String()
}

// formatPickDetails renders a player's picks with the result of each
func formatPickDetails(user shared.User, details []logic.PickDetail) string {
	if len(details) == 0 {
		return fmt.Sprintf("%s has not made any picks yet", user.FullName())
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("%s's picks:\n", user.FullName()))
	for _, d := range details {
		var outcome string
		switch d.Outcome {
		case logic.OutcomeCorrect:
			outcome = "[Correct]"
		case logic.OutcomeIncorrect:
			outcome = "[Incorrect]"
		default:
			outcome = "[Pending]"
		}
		res.WriteString(fmt.Sprintf("- %s (%s): %s %s\n", d.Game.Matchup(), d.Game.PlayoffRound.Label(), d.Pick.PickedTeam, outcome))
	}
	return res.String()
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
