/* picks.go
 * Contains the methods for interacting with the nfl_playoff_picks collection
 */

package store

import (
	"context"
	"fmt"
	"time"

	"nfl-playoff-picks/api/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertPick creates or replaces the pick for (userID, gameID). There is only ever one document per pair
// Preconditions: Receives context, user id, game id and the team code being picked
// Postconditions: Returns the stored pick, or an error if the write failed
func (s *Store) UpsertPick(ctx context.Context, userID, gameID, pickedTeam string) (shared.Pick, error) {
	filter := bson.D{{Key: "user_id", Value: userID}, {Key: "game_id", Value: gameID}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "picked_team", Value: pickedTeam},
		{Key: "updated_at", Value: s.Clock.Now().UTC().Truncate(time.Millisecond)},
	}}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var pick shared.Pick
	if err := s.Collections.Picks.FindOneAndUpdate(ctx, filter, update, opts).Decode(&pick); err != nil {
		return shared.Pick{}, fmt.Errorf("failed to upsert pick: %w", err)
	}
	return pick, nil
}

// ListPicks returns every pick for every user
func (s *Store) ListPicks(ctx context.Context) ([]shared.Pick, error) {
	cursor, err := s.Collections.Picks.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("error fetching picks from db: %w", err)
	}

	picks := []shared.Pick{}
	if err = cursor.All(ctx, &picks); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of picks: %w", err)
	}
	return picks, nil
}
