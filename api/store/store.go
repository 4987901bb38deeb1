/* store.go
 * Contains the Mongo backed Store and NewStore function. The methods for this package are split into three files:
 * users, picks and games. Each of these files contain methods for interacting with that collection
 */

package store

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names are prefixed so the tables can share a database with other projects
const (
	UsersCollection = "nfl_playoff_users"
	PicksCollection = "nfl_playoff_picks"
	GamesCollection = "nfl_playoff_games"
)

type Collections struct {
	Users *mongo.Collection
	Picks *mongo.Collection
	Games *mongo.Collection
}

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections Collections
	Clock       clockwork.Clock
}

// NewStore connects to Mongo and returns a Store for dbName.
// Preconditions: Receives a context bounding the connection attempt, the mongo uri and database name
// Postconditions: Returns a connected Store, or an error if the connection or ping fails
func NewStore(ctx context.Context, mongoURI string, dbName string) (*Store, error) {
	if mongoURI == "" || dbName == "" {
		return nil, fmt.Errorf("mongoURI and dbName are required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return newStore(client, client.Database(dbName)), nil
}

func newStore(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		Client:   client,
		Database: db,
		Collections: Collections{
			Users: db.Collection(UsersCollection),
			Picks: db.Collection(PicksCollection),
			Games: db.Collection(GamesCollection),
		},
		Clock: clockwork.NewRealClock(),
	}
}

// EnsureIndexes creates the indexes the upsert semantics rely on: one pick per (user, game) and one user per name
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.Collections.Picks.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "game_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create picks index: %w", err)
	}

	_, err = s.Collections.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "first_name", Value: 1}, {Key: "last_name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	_, err = s.Collections.Games.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "game_time", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create games index: %w", err)
	}
	return nil
}

// Close disconnects the mongo client
func (s *Store) Close(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Disconnect(ctx)
}
