/* models.go
 * Contains the server config and the request and response bodies of the JSON API
 */

package web

import (
	"nfl-playoff-picks/api/api"
	"nfl-playoff-picks/api/gamesync"
	"nfl-playoff-picks/api/logic"
	"nfl-playoff-picks/api/shared"
)

// Config holds the configuration for the web server
type Config struct {
	Addr        string
	API         *api.API
	CORSOrigins []string
}

// Server holds the handlers for the JSON API
type Server struct {
	api *api.API
}

// ErrorResponse is the body of every error response, e.g. {"error": "not_found", "message": "game not found with id 1"}
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type SignInRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type SignInResponse struct {
	User    shared.User `json:"user"`
	Created bool        `json:"created"`
}

// PicksRequest submits either one pick (GameID and Team) or a batch (Picks)
type PicksRequest struct {
	UserID string            `json:"user_id"`
	GameID string            `json:"game_id,omitempty"`
	Team   string            `json:"team,omitempty"`
	Picks  []api.PickRequest `json:"picks,omitempty"`
}

type PicksResponse struct {
	Submitted int `json:"submitted"`
}

type UserPicksResponse struct {
	User  shared.User        `json:"user"`
	Picks []logic.PickDetail `json:"picks"`
}

type RefreshResponse struct {
	Result gamesync.Result  `json:"result"`
	Games  []api.RoundGames `json:"games"`
}
