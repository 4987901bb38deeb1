/* api.go
 * This file contains the public methods for interacting with this package. Presentation layers (bot, web) should only
 * call methods from this file, not the sub packages for store, logic and gamesync
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nfl-playoff-picks/api/apperror"
	"nfl-playoff-picks/api/config"
	"nfl-playoff-picks/api/external"
	"nfl-playoff-picks/api/gamesync"
	"nfl-playoff-picks/api/logic"
	"nfl-playoff-picks/api/shared"
	"nfl-playoff-picks/api/store"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// API provides methods for interacting with the pick'em data layer
type API struct {
	Store  store.Interface
	Syncer *gamesync.Syncer
	Clock  clockwork.Clock
}

// NewAPI builds the store, external source and syncer described by cfg
// Preconditions: Receives a context bounding store startup and a loaded Config
// Postconditions: Returns a ready API, or an error if the store could not be initialised
func NewAPI(ctx context.Context, cfg *config.Config) (*API, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	var st store.Interface
	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		st = store.NewMemoryStore(nil)
	case config.StoreBackendMongo:
		s, err := store.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize store: %w", err)
		}
		st = s
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	if err := st.EnsureIndexes(ctx); err != nil {
		_ = st.Close(ctx)
		return nil, err
	}

	clock := clockwork.NewRealClock()
	source := external.NewESPNClient(cfg.ESPNBaseURL, cfg.ESPNTimeout, cfg.ESPNRateLimit)

	return &API{
		Store:  st,
		Syncer: gamesync.NewSyncer(source, st, cfg.Season, cfg.SeasonYear, clock),
		Clock:  clock,
	}, nil
}

func (a *API) now() clockwork.Clock {
	if a.Clock == nil {
		return clockwork.NewRealClock()
	}
	return a.Clock
}

// SignIn returns the user with this name, creating them if they don't exist yet. Names are trimmed and matched
// case-sensitively. created is true if a new user was made
func (a *API) SignIn(ctx context.Context, firstName, lastName string) (shared.User, bool, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return shared.User{}, false, apperror.ValidationFailed("first_name", "first name is required")
	}
	if lastName == "" {
		return shared.User{}, false, apperror.ValidationFailed("last_name", "last name is required")
	}

	existing, err := a.Store.FindUserByName(ctx, firstName, lastName)
	if err != nil {
		return shared.User{}, false, err
	}
	if existing != nil {
		return *existing, false, nil
	}

	user, err := a.Store.CreateUser(ctx, firstName, lastName)
	if err == nil {
		return user, true, nil
	}

	// Someone else signed in with the same name between the lookup and the insert
	if errors.Is(err, apperror.ErrConflict) {
		existing, findErr := a.Store.FindUserByName(ctx, firstName, lastName)
		if findErr == nil && existing != nil {
			return *existing, false, nil
		}
	}
	return shared.User{}, false, err
}

// FindUser returns the user with exactly this name, or an apperror.ErrNotFound
func (a *API) FindUser(ctx context.Context, firstName, lastName string) (shared.User, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	user, err := a.Store.FindUserByName(ctx, firstName, lastName)
	if err != nil {
		return shared.User{}, err
	}
	if user == nil {
		return shared.User{}, apperror.NotFound("user", strings.TrimSpace(firstName+" "+lastName))
	}
	return *user, nil
}

// Game returns a single game, or an apperror.ErrNotFound
func (a *API) Game(ctx context.Context, gameID string) (shared.Game, error) {
	game, err := a.Store.GetGame(ctx, gameID)
	if err != nil {
		return shared.Game{}, err
	}
	if game == nil {
		return shared.Game{}, apperror.NotFound("game", gameID)
	}
	return *game, nil
}

// SubmitPick records userID's pick for gameID.
// Preconditions: team must name one of the game's two teams (case-insensitive)
// Postconditions: Returns the stored pick. Returns apperror.ErrLocked if the game has kicked off, ErrNotFound for an
// unknown user or game, and ErrValidation for a team that isn't playing
func (a *API) SubmitPick(ctx context.Context, userID, gameID, team string) (shared.Pick, error) {
	if userID == "" {
		return shared.Pick{}, apperror.ValidationFailed("user_id", "you need to sign in before making picks")
	}

	user, err := a.Store.GetUser(ctx, userID)
	if err != nil {
		return shared.Pick{}, err
	}
	if user == nil {
		return shared.Pick{}, apperror.NotFound("user", userID)
	}

	game, err := a.Game(ctx, gameID)
	if err != nil {
		return shared.Pick{}, err
	}

	code, ok := game.TeamCode(team)
	if !ok || code == external.Placeholder {
		return shared.Pick{}, apperror.ValidationFailed("team",
			fmt.Sprintf("%q is not playing in %s", strings.TrimSpace(team), game.Matchup()))
	}

	if game.Status != shared.StatusScheduled || game.HasStarted(a.now().Now()) {
		return shared.Pick{}, apperror.Locked(fmt.Sprintf("picks for %s are locked, the game has started", game.Matchup()))
	}

	return a.Store.UpsertPick(ctx, userID, game.ID, code)
}

// SubmitPicks submits every pick concurrently and waits for all of them. If any fail the first error is returned;
// the others may or may not have been stored
func (a *API) SubmitPicks(ctx context.Context, userID string, picks []PickRequest) error {
	if len(picks) == 0 {
		return apperror.ValidationFailed("picks", "no picks to submit")
	}

	var g errgroup.Group
	for _, p := range picks {
		p := p
		g.Go(func() error {
			_, err := a.SubmitPick(ctx, userID, p.GameID, p.Team)
			return err
		})
	}
	return g.Wait()
}

// Games returns the stored games grouped by round, in display order. Rounds with no games are left out
func (a *API) Games(ctx context.Context) ([]RoundGames, error) {
	games, err := a.Store.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	return groupByRound(games), nil
}

func groupByRound(games []shared.Game) []RoundGames {
	byRound := make(map[shared.Round][]shared.Game)
	for _, g := range games {
		byRound[g.PlayoffRound] = append(byRound[g.PlayoffRound], g)
	}

	grouped := []RoundGames{}
	for _, r := range shared.RoundOrder {
		if len(byRound[r]) == 0 {
			continue
		}
		grouped = append(grouped, RoundGames{Round: r, Label: r.Label(), Games: byRound[r]})
	}
	return grouped
}

// Users returns every user in creation order
func (a *API) Users(ctx context.Context) ([]shared.User, error) {
	return a.Store.ListUsers(ctx)
}

// Leaderboard returns the standings across all completed games
func (a *API) Leaderboard(ctx context.Context) ([]logic.LeaderboardEntry, error) {
	users, err := a.Store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	games, err := a.Store.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	picks, err := a.Store.ListPicks(ctx)
	if err != nil {
		return nil, err
	}
	return logic.BuildLeaderboard(users, games, picks), nil
}

// UserPicks returns the user and each of their picks with its outcome
func (a *API) UserPicks(ctx context.Context, userID string) (shared.User, []logic.PickDetail, error) {
	user, err := a.Store.GetUser(ctx, userID)
	if err != nil {
		return shared.User{}, nil, err
	}
	if user == nil {
		return shared.User{}, nil, apperror.NotFound("user", userID)
	}

	games, err := a.Store.ListGames(ctx)
	if err != nil {
		return shared.User{}, nil, err
	}
	picks, err := a.Store.ListPicks(ctx)
	if err != nil {
		return shared.User{}, nil, err
	}
	return *user, logic.UserPickDetails(*user, games, picks), nil
}

// Load reads everything a client shows on start, syncing first if the stored games are stale. A failed sync is
// logged and the stored data is returned anyway
func (a *API) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	if a.Syncer != nil {
		ran, _, err := a.Syncer.SyncIfNeeded(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("sync on load failed, serving stored games")
		}
		snap.Synced = ran && err == nil
	}

	games, err := a.Store.ListGames(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	users, err := a.Store.ListUsers(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	picks, err := a.Store.ListPicks(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	snap.Games = groupByRound(games)
	snap.Users = users
	snap.Picks = picks
	snap.Leaderboard = logic.BuildLeaderboard(users, games, picks)
	return snap, nil
}

// Refresh runs a sync regardless of staleness and returns the regrouped games
func (a *API) Refresh(ctx context.Context) (gamesync.Result, []RoundGames, error) {
	if a.Syncer == nil {
		return gamesync.Result{}, nil, fmt.Errorf("game sync is not configured")
	}

	result, err := a.Syncer.Sync(ctx)
	if err != nil {
		return result, nil, fmt.Errorf("refresh failed: %w", err)
	}

	games, err := a.Games(ctx)
	return result, games, err
}

// Close releases the store
func (a *API) Close(ctx context.Context) error {
	return a.Store.Close(ctx)
}
