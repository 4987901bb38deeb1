/* handlers.go
 * Contains the HTTP handlers for the JSON API. Each one decodes the request, calls a single api method and writes
 * the result
 */

package web

import (
	"net/http"

	"nfl-playoff-picks/api/apperror"

	"github.com/go-chi/chi/v5"
)

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// loadHandler runs the on-load flow: sync if stale, then return games, users, picks and the leaderboard
func (s *Server) loadHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := s.api.Load(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) gamesHandler(w http.ResponseWriter, r *http.Request) {
	games, err := s.api.Games(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

func (s *Server) gameHandler(w http.ResponseWriter, r *http.Request) {
	game, err := s.api.Game(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func (s *Server) usersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := s.api.Users(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) userPicksHandler(w http.ResponseWriter, r *http.Request) {
	user, picks, err := s.api.UserPicks(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, UserPicksResponse{User: user, Picks: picks})
}

func (s *Server) leaderboardHandler(w http.ResponseWriter, r *http.Request) {
	board, err := s.api.Leaderboard(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// signInHandler returns 201 when a new user was created, 200 when an existing one was found
func (s *Server) signInHandler(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, created, err := s.api.SignIn(r.Context(), req.FirstName, req.LastName)
	if err != nil {
		writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, SignInResponse{User: user, Created: created})
}

// picksHandler accepts a single pick or a batch. A batch fails as a whole if any pick fails, though the picks that
// succeeded stay stored
func (s *Server) picksHandler(w http.ResponseWriter, r *http.Request) {
	var req PicksRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if len(req.Picks) == 0 {
		if req.GameID == "" {
			writeError(w, r, apperror.ValidationFailed("game_id", "game_id or picks is required"))
			return
		}
		pick, err := s.api.SubmitPick(r.Context(), req.UserID, req.GameID, req.Team)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, pick)
		return
	}

	if err := s.api.SubmitPicks(r.Context(), req.UserID, req.Picks); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PicksResponse{Submitted: len(req.Picks)})
}

// refreshHandler syncs games on demand. It replaces polling for clients that want fresh scores immediately
func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	result, games, err := s.api.Refresh(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RefreshResponse{Result: result, Games: games})
}
