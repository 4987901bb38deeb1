/* test_mocks.go
 * Contains a mock store for testing the API package and its consumers. It is backed by a MemoryStore and lets
 * tests inject an error into any method
 */

package api

import (
	"context"

	"nfl-playoff-picks/api/shared"
	"nfl-playoff-picks/api/store"

	"github.com/jonboulle/clockwork"
)

// MockStore implements store.Interface for testing
type MockStore struct {
	*store.MemoryStore

	// Error injection for testing error paths
	CreateUserError     error
	FindUserByNameError error
	GetUserError        error
	ListUsersError      error
	UpsertPickError     error
	ListPicksError      error
	UpsertGameError     error
	GetGameError        error
	ListGamesError      error
}

var _ store.Interface = (*MockStore)(nil)

// NewMockStore creates an empty MockStore using clock for timestamps
func NewMockStore(clock clockwork.Clock) *MockStore {
	return &MockStore{MemoryStore: store.NewMemoryStore(clock)}
}

// NewMockAPI creates an API over a MockStore with no syncer
func NewMockAPI(clock clockwork.Clock) (*API, *MockStore) {
	ms := NewMockStore(clock)
	return &API{Store: ms, Clock: clock}, ms
}

// SetGames stores games directly, bypassing sync
func (m *MockStore) SetGames(games ...shared.Game) {
	for _, g := range games {
		_, _ = m.MemoryStore.UpsertGame(context.Background(), g)
	}
}

func (m *MockStore) CreateUser(ctx context.Context, firstName, lastName string) (shared.User, error) {
	if m.CreateUserError != nil {
		return shared.User{}, m.CreateUserError
	}
	return m.MemoryStore.CreateUser(ctx, firstName, lastName)
}

func (m *MockStore) FindUserByName(ctx context.Context, firstName, lastName string) (*shared.User, error) {
	if m.FindUserByNameError != nil {
		return nil, m.FindUserByNameError
	}
	return m.MemoryStore.FindUserByName(ctx, firstName, lastName)
}

func (m *MockStore) GetUser(ctx context.Context, id string) (*shared.User, error) {
	if m.GetUserError != nil {
		return nil, m.GetUserError
	}
	return m.MemoryStore.GetUser(ctx, id)
}

func (m *MockStore) ListUsers(ctx context.Context) ([]shared.User, error) {
	if m.ListUsersError != nil {
		return nil, m.ListUsersError
	}
	return m.MemoryStore.ListUsers(ctx)
}

func (m *MockStore) UpsertPick(ctx context.Context, userID, gameID, pickedTeam string) (shared.Pick, error) {
	if m.UpsertPickError != nil {
		return shared.Pick{}, m.UpsertPickError
	}
	return m.MemoryStore.UpsertPick(ctx, userID, gameID, pickedTeam)
}

func (m *MockStore) ListPicks(ctx context.Context) ([]shared.Pick, error) {
	if m.ListPicksError != nil {
		return nil, m.ListPicksError
	}
	return m.MemoryStore.ListPicks(ctx)
}

func (m *MockStore) UpsertGame(ctx context.Context, game shared.Game) (shared.Game, error) {
	if m.UpsertGameError != nil {
		return shared.Game{}, m.UpsertGameError
	}
	return m.MemoryStore.UpsertGame(ctx, game)
}

func (m *MockStore) GetGame(ctx context.Context, id string) (*shared.Game, error) {
	if m.GetGameError != nil {
		return nil, m.GetGameError
	}
	return m.MemoryStore.GetGame(ctx, id)
}

func (m *MockStore) ListGames(ctx context.Context) ([]shared.Game, error) {
	if m.ListGamesError != nil {
		return nil, m.ListGamesError
	}
	return m.MemoryStore.ListGames(ctx)
}
