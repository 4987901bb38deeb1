/* store_interface.go
 * Contains the Store interface for dependency injection and testing. It covers the three collaborators the app reads
 * and writes: identities, picks and games
 */

package store

import (
	"context"

	"nfl-playoff-picks/api/shared"
)

// Interface defines the methods that Store and MemoryStore implement.
type Interface interface {
	// Identity
	CreateUser(ctx context.Context, firstName, lastName string) (shared.User, error)
	FindUserByName(ctx context.Context, firstName, lastName string) (*shared.User, error)
	GetUser(ctx context.Context, id string) (*shared.User, error)
	ListUsers(ctx context.Context) ([]shared.User, error)

	// Picks
	UpsertPick(ctx context.Context, userID, gameID, pickedTeam string) (shared.Pick, error)
	ListPicks(ctx context.Context) ([]shared.Pick, error)

	// Games
	UpsertGame(ctx context.Context, game shared.Game) (shared.Game, error)
	GetGame(ctx context.Context, id string) (*shared.Game, error)
	ListGames(ctx context.Context) ([]shared.Game, error)

	EnsureIndexes(ctx context.Context) error
	Close(ctx context.Context) error
}

// Ensure both backends implement Interface
var (
	_ Interface = (*Store)(nil)
	_ Interface = (*MemoryStore)(nil)
)
