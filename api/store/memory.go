/* memory.go
 * Contains MemoryStore, an in-process implementation of Interface. It is used when STORE_BACKEND=memory and by tests
 * in the packages that sit on top of the store
 */

package store

import (
	"context"
	"sort"
	"sync"

	"nfl-playoff-picks/api/apperror"
	"nfl-playoff-picks/api/shared"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type pickKey struct {
	userID string
	gameID string
}

type MemoryStore struct {
	Clock clockwork.Clock

	mu        sync.RWMutex
	users     []shared.User
	picks     map[pickKey]shared.Pick
	pickOrder []pickKey
	games     map[string]shared.Game
}

func NewMemoryStore(clock clockwork.Clock) *MemoryStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryStore{
		Clock: clock,
		picks: make(map[pickKey]shared.Pick),
		games: make(map[string]shared.Game),
	}
}

func (m *MemoryStore) CreateUser(_ context.Context, firstName, lastName string) (shared.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.FirstName == firstName && u.LastName == lastName {
			return shared.User{}, apperror.Conflict("user", u.FullName())
		}
	}

	user := shared.User{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: m.Clock.Now().UTC(),
	}
	m.users = append(m.users, user)
	return user, nil
}

func (m *MemoryStore) FindUserByName(_ context.Context, firstName, lastName string) (*shared.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.FirstName == firstName && u.LastName == lastName {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) GetUser(_ context.Context, id string) (*shared.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

// ListUsers returns users in creation order, which is insertion order here
func (m *MemoryStore) ListUsers(_ context.Context) ([]shared.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]shared.User, len(m.users))
	copy(users, m.users)
	return users, nil
}

func (m *MemoryStore) UpsertPick(_ context.Context, userID, gameID, pickedTeam string) (shared.Pick, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := pickKey{userID: userID, gameID: gameID}
	if _, ok := m.picks[key]; !ok {
		m.pickOrder = append(m.pickOrder, key)
	}
	pick := shared.Pick{
		UserID:     userID,
		GameID:     gameID,
		PickedTeam: pickedTeam,
		UpdatedAt:  m.Clock.Now().UTC(),
	}
	m.picks[key] = pick
	return pick, nil
}

func (m *MemoryStore) ListPicks(_ context.Context) ([]shared.Pick, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	picks := make([]shared.Pick, 0, len(m.pickOrder))
	for _, key := range m.pickOrder {
		picks = append(picks, m.picks[key])
	}
	return picks, nil
}

func (m *MemoryStore) UpsertGame(_ context.Context, game shared.Game) (shared.Game, error) {
	if game.ID == "" {
		return shared.Game{}, apperror.ValidationFailed("id", "game id is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[game.ID] = game
	return game, nil
}

func (m *MemoryStore) GetGame(_ context.Context, id string) (*shared.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	game, ok := m.games[id]
	if !ok {
		return nil, nil
	}
	return &game, nil
}

// ListGames returns games ordered by kickoff, ties broken by id so the order is deterministic
func (m *MemoryStore) ListGames(_ context.Context) ([]shared.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	games := make([]shared.Game, 0, len(m.games))
	for _, g := range m.games {
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool {
		if games[i].GameTime.Equal(games[j].GameTime) {
			return games[i].ID < games[j].ID
		}
		return games[i].GameTime.Before(games[j].GameTime)
	})
	return games, nil
}

func (m *MemoryStore) EnsureIndexes(context.Context) error { return nil }

func (m *MemoryStore) Close(context.Context) error { return nil }
