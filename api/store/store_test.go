/* store_test.go
 * Contains unit tests for the Mongo backed Store using mtest mock deployments
 */

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"nfl-playoff-picks/api/apperror"
	"nfl-playoff-picks/api/shared"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

var testNow = time.Date(2025, time.January, 11, 18, 0, 0, 0, time.UTC)

func newTestStore(mt *mtest.T) *Store {
	s := newStore(mt.Client, mt.DB)
	s.Clock = clockwork.NewFakeClockAt(testNow)
	return s
}

func TestNewStore_MissingArgs(t *testing.T) {
	_, err := NewStore(context.Background(), "", "db")
	assert.Error(t, err)

	_, err = NewStore(context.Background(), "mongodb://localhost:27017", "")
	assert.Error(t, err)
}

func TestCreateUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("inserts a new user with a generated id", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user, err := s.CreateUser(context.Background(), "Ada", "Lovelace")
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "Ada", user.FirstName)
		assert.Equal(t, "Lovelace", user.LastName)
		assert.True(t, user.CreatedAt.Equal(testNow))
	})

	mt.Run("duplicate name is a conflict", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		_, err := s.CreateUser(context.Background(), "Ada", "Lovelace")
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrConflict))
	})

	mt.Run("other insert failures are wrapped", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    1,
			Message: "insert failed",
		}))

		_, err := s.CreateUser(context.Background(), "Ada", "Lovelace")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to insert user")
		assert.False(t, errors.Is(err, apperror.ErrConflict))
	})
}

func TestFindUserByName(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns the matching user", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.nfl_playoff_users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "u1"},
			{Key: "first_name", Value: "Ada"},
			{Key: "last_name", Value: "Lovelace"},
			{Key: "created_at", Value: testNow},
		}))

		user, err := s.FindUserByName(context.Background(), "Ada", "Lovelace")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, "Ada Lovelace", user.FullName())
	})

	mt.Run("returns nil when absent", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.nfl_playoff_users", mtest.FirstBatch))

		user, err := s.FindUserByName(context.Background(), "Nobody", "Here")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	mt.Run("propagates query errors", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad query"}))

		user, err := s.FindUserByName(context.Background(), "Ada", "Lovelace")
		assert.Error(t, err)
		assert.Nil(t, user)
	})
}

func TestGetUser_Absent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns nil when absent", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.nfl_playoff_users", mtest.FirstBatch))

		user, err := s.GetUser(context.Background(), "missing")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestListUsers(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes all users", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.nfl_playoff_users", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "u1"}, {Key: "first_name", Value: "Ada"}, {Key: "last_name", Value: "Lovelace"}},
			bson.D{{Key: "_id", Value: "u2"}, {Key: "first_name", Value: "Alan"}, {Key: "last_name", Value: "Turing"}},
		))

		users, err := s.ListUsers(context.Background())
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "u1", users[0].ID)
		assert.Equal(t, "u2", users[1].ID)
	})

	mt.Run("empty collection returns an empty slice", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.nfl_playoff_users", mtest.FirstBatch))

		users, err := s.ListUsers(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})
}

func TestUpsertPick(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns the stored pick", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "user_id", Value: "u1"},
			{Key: "game_id", Value: "g1"},
			{Key: "picked_team", Value: "KC"},
			{Key: "updated_at", Value: testNow},
		}}))

		pick, err := s.UpsertPick(context.Background(), "u1", "g1", "KC")
		require.NoError(t, err)
		assert.Equal(t, "u1", pick.UserID)
		assert.Equal(t, "g1", pick.GameID)
		assert.Equal(t, "KC", pick.PickedTeam)
	})

	mt.Run("wraps write errors", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 1, Message: "write failed"}))

		_, err := s.UpsertPick(context.Background(), "u1", "g1", "KC")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upsert pick")
	})
}

func TestListPicks(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes all picks", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.nfl_playoff_picks", mtest.FirstBatch,
			bson.D{{Key: "user_id", Value: "u1"}, {Key: "game_id", Value: "g1"}, {Key: "picked_team", Value: "KC"}},
			bson.D{{Key: "user_id", Value: "u2"}, {Key: "game_id", Value: "g1"}, {Key: "picked_team", Value: "BUF"}},
		))

		picks, err := s.ListPicks(context.Background())
		require.NoError(t, err)
		require.Len(t, picks, 2)
		assert.Equal(t, "BUF", picks[1].PickedTeam)
	})
}

func TestUpsertGame(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("replaces by id", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		game := shared.Game{ID: "401671793", HomeTeam: "HOU", AwayTeam: "LAC", Status: shared.StatusCompleted}
		stored, err := s.UpsertGame(context.Background(), game)
		require.NoError(t, err)
		assert.Equal(t, game, stored)
	})

	mt.Run("rejects a game without an id", func(mt *mtest.T) {
		s := newTestStore(mt)

		_, err := s.UpsertGame(context.Background(), shared.Game{HomeTeam: "HOU"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrValidation))
	})

	mt.Run("wraps write errors with the game id", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 1, Message: "write failed"}))

		_, err := s.UpsertGame(context.Background(), shared.Game{ID: "g9"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "g9")
	})
}

func TestGetGame(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns the stored game", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.nfl_playoff_games", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "g1"},
			{Key: "home_team", Value: "KC"},
			{Key: "away_team", Value: "HOU"},
			{Key: "status", Value: "scheduled"},
			{Key: "playoff_round", Value: "divisional"},
		}))

		game, err := s.GetGame(context.Background(), "g1")
		require.NoError(t, err)
		require.NotNil(t, game)
		assert.Equal(t, shared.StatusScheduled, game.Status)
		assert.Equal(t, shared.RoundDivisional, game.PlayoffRound)
	})

	mt.Run("returns nil when absent", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.nfl_playoff_games", mtest.FirstBatch))

		game, err := s.GetGame(context.Background(), "missing")
		require.NoError(t, err)
		assert.Nil(t, game)
	})
}

func TestListGames(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes all games", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.nfl_playoff_games", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "g1"}, {Key: "game_time", Value: testNow}},
			bson.D{{Key: "_id", Value: "g2"}, {Key: "game_time", Value: testNow.Add(3 * time.Hour)}},
		))

		games, err := s.ListGames(context.Background())
		require.NoError(t, err)
		require.Len(t, games, 2)
		assert.Equal(t, "g1", games[0].ID)
		assert.True(t, games[1].GameTime.Equal(testNow.Add(3*time.Hour)))
	})

	mt.Run("propagates query errors", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad query"}))

		_, err := s.ListGames(context.Background())
		assert.Error(t, err)
	})
}

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates all indexes", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		assert.NoError(t, s.EnsureIndexes(context.Background()))
	})

	mt.Run("stops at the first failure", func(mt *mtest.T) {
		s := newTestStore(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 1, Message: "index failed"}))

		err := s.EnsureIndexes(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "picks index")
	})
}

func TestClose_NilClient(t *testing.T) {
	s := &Store{}
	assert.NoError(t, s.Close(context.Background()))
}
