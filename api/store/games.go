/* games.go
 * Contains the methods for interacting with the nfl_playoff_games collection. Games are keyed by the external
 * event id and every write replaces the whole document
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"nfl-playoff-picks/api/apperror"
	"nfl-playoff-picks/api/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertGame inserts the game or fully replaces the stored record with the same id
func (s *Store) UpsertGame(ctx context.Context, game shared.Game) (shared.Game, error) {
	if game.ID == "" {
		return shared.Game{}, apperror.ValidationFailed("id", "game id is required")
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.Collections.Games.ReplaceOne(ctx, bson.D{{Key: "_id", Value: game.ID}}, game, opts); err != nil {
		return shared.Game{}, fmt.Errorf("failed to upsert game %s: %w", game.ID, err)
	}
	return game, nil
}

// GetGame returns the game with the given id, or nil if it is not stored
func (s *Store) GetGame(ctx context.Context, id string) (*shared.Game, error) {
	var game shared.Game
	err := s.Collections.Games.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&game)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching game from db: %w", err)
	}
	return &game, nil
}

// ListGames returns every stored game ordered by kickoff
func (s *Store) ListGames(ctx context.Context) ([]shared.Game, error) {
	opts := options.Find().SetSort(bson.D{{Key: "game_time", Value: 1}})
	cursor, err := s.Collections.Games.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching games from db: %w", err)
	}

	games := []shared.Game{}
	if err = cursor.All(ctx, &games); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of games: %w", err)
	}
	return games, nil
}
