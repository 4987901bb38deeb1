/* models.go
 * This file contain the structs and helper functions that are shared between sub packages: users, games and picks
 */

package shared

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a game
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Label returns the short text shown on a game card
func (s Status) Label() string {
	switch s {
	case StatusCompleted:
		return "Final"
	case StatusInProgress:
		return "Live"
	default:
		return "Scheduled"
	}
}

// Round is a playoff round label. RoundOther marks a game that is not part of the playoffs
type Round string

const (
	RoundWildCard   Round = "wild_card"
	RoundDivisional Round = "divisional"
	RoundConference Round = "conference"
	RoundSuperBowl  Round = "super_bowl"
	RoundOther      Round = "other"
)

// RoundOrder is the order rounds are displayed in
var RoundOrder = []Round{RoundWildCard, RoundDivisional, RoundConference, RoundSuperBowl, RoundOther}

// Label returns the display name for a round
func (r Round) Label() string {
	switch r {
	case RoundWildCard:
		return "Wild Card Round"
	case RoundDivisional:
		return "Divisional Round"
	case RoundConference:
		return "Conference Championships"
	case RoundSuperBowl:
		return "Super Bowl"
	case RoundOther:
		return "Other Games"
	default:
		return string(r)
	}
}

// ParseRound converts a round string (e.g. "wild_card") into a Round. Returns false if it is not a known round
func ParseRound(s string) (Round, bool) {
	for _, r := range RoundOrder {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// User is a pick'em participant. Users are identified by first and last name
type User struct {
	ID        string    `bson:"_id" json:"id"`
	FirstName string    `bson:"first_name" json:"first_name"`
	LastName  string    `bson:"last_name" json:"last_name"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// FullName returns "First Last"
func (u User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

// Game is a single playoff game. ID is the external source's event id and is the only key used for upserts
type Game struct {
	ID         string    `bson:"_id" json:"id"`
	HomeTeam   string    `bson:"home_team" json:"home_team"`
	AwayTeam   string    `bson:"away_team" json:"away_team"`
	HomeLogo   string    `bson:"home_logo,omitempty" json:"home_logo,omitempty"`
	AwayLogo   string    `bson:"away_logo,omitempty" json:"away_logo,omitempty"`
	HomeRecord string    `bson:"home_record,omitempty" json:"home_record,omitempty"`
	AwayRecord string    `bson:"away_record,omitempty" json:"away_record,omitempty"`
	GameTime   time.Time `bson:"game_time" json:"game_time"`
	Location   string    `bson:"location" json:"location"`
	Status     Status    `bson:"status" json:"status"`
	HomeScore  int       `bson:"home_score" json:"home_score"`
	AwayScore  int       `bson:"away_score" json:"away_score"`
	// Winner is the winning team code. Only set once the game is completed
	Winner       string `bson:"winner,omitempty" json:"winner,omitempty"`
	PlayoffRound Round  `bson:"playoff_round" json:"playoff_round"`

	// Live state, only meaningful while a game is in progress
	Clock              string   `bson:"clock,omitempty" json:"clock,omitempty"`
	Period             int      `bson:"period,omitempty" json:"period,omitempty"`
	HomeWinProbability *float64 `bson:"home_win_probability,omitempty" json:"home_win_probability,omitempty"`
	AwayWinProbability *float64 `bson:"away_win_probability,omitempty" json:"away_win_probability,omitempty"`

	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasStarted reports whether kickoff is before now
func (g Game) HasStarted(now time.Time) bool {
	return !g.GameTime.IsZero() && g.GameTime.Before(now)
}

// TeamCode returns the game's own code for team, matched case-insensitively against the home and away teams.
// Returns false if team isn't playing
func (g Game) TeamCode(team string) (string, bool) {
	team = strings.TrimSpace(team)
	switch {
	case team == "":
		return "", false
	case strings.EqualFold(team, g.HomeTeam):
		return g.HomeTeam, true
	case strings.EqualFold(team, g.AwayTeam):
		return g.AwayTeam, true
	}
	return "", false
}

// Matchup returns "AWAY @ HOME"
func (g Game) Matchup() string {
	return fmt.Sprintf("%s @ %s", g.AwayTeam, g.HomeTeam)
}

// Pick is a user's selected winner for a game. There is at most one pick per (UserID, GameID)
type Pick struct {
	UserID     string    `bson:"user_id" json:"user_id"`
	GameID     string    `bson:"game_id" json:"game_id"`
	PickedTeam string    `bson:"picked_team" json:"picked_team"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}
