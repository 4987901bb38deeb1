/* users.go
 * Contains the methods for interacting with the nfl_playoff_users collection
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nfl-playoff-picks/api/apperror"
	"nfl-playoff-picks/api/shared"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateUser inserts a new user with a generated id
// Preconditions: Receives context, first and last name. Names are stored as given
// Postconditions: Returns the stored user, an apperror.ErrConflict if a user with that name already exists, or an error
func (s *Store) CreateUser(ctx context.Context, firstName, lastName string) (shared.User, error) {
	user := shared.User{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		// Mongo dates only hold millisecond precision
		CreatedAt: s.Clock.Now().UTC().Truncate(time.Millisecond),
	}

	if _, err := s.Collections.Users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return shared.User{}, apperror.Conflict("user", user.FullName())
		}
		return shared.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

// FindUserByName looks a user up by exact (case-sensitive) first and last name.
// Returns nil with no error when no user matches
func (s *Store) FindUserByName(ctx context.Context, firstName, lastName string) (*shared.User, error) {
	filter := bson.D{{Key: "first_name", Value: firstName}, {Key: "last_name", Value: lastName}}
	return s.findUser(ctx, filter)
}

// GetUser looks a user up by id. Returns nil with no error when absent
func (s *Store) GetUser(ctx context.Context, id string) (*shared.User, error) {
	return s.findUser(ctx, bson.D{{Key: "_id", Value: id}})
}

func (s *Store) findUser(ctx context.Context, filter bson.D) (*shared.User, error) {
	var user shared.User
	err := s.Collections.Users.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching user from db: %w", err)
	}
	return &user, nil
}

// ListUsers returns every user in creation order
func (s *Store) ListUsers(ctx context.Context) ([]shared.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.Collections.Users.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching users from db: %w", err)
	}

	users := []shared.User{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of users: %w", err)
	}
	return users, nil
}
