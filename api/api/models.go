/* models.go
 * This file contain the structs that are used by api consumers (the bot and web packages)
 */

package api

import (
	"nfl-playoff-picks/api/logic"
	"nfl-playoff-picks/api/shared"
)

// PickRequest is one pick in a batch submission
type PickRequest struct {
	GameID string `json:"game_id"`
	Team   string `json:"team"`
}

// RoundGames is the games of one round, in kickoff order
type RoundGames struct {
	Round shared.Round  `json:"round"`
	Label string        `json:"label"`
	Games []shared.Game `json:"games"`
}

// Snapshot is everything a client needs to render on load
type Snapshot struct {
	Games       []RoundGames             `json:"games"`
	Users       []shared.User            `json:"users"`
	Picks       []shared.Pick            `json:"picks"`
	Leaderboard []logic.LeaderboardEntry `json:"leaderboard"`
	Synced      bool                     `json:"synced"`
}
