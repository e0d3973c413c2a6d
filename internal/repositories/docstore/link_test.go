package docstore

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/fsdevblog/linkqr/internal/db"
	"github.com/fsdevblog/linkqr/internal/repositories"
	"github.com/fsdevblog/linkqr/internal/repositories/repotest"
)

type MongoLinkRepoSuite struct {
	repotest.LinkRepoSuite
}

// Интеграционный тест, нужен живой MongoDB в TEST_MONGO_URI.
func TestMongoLinkRepo(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI is not set")
	}
	mdb, err := db.NewMongoConnection(t.Context(), uri)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = mdb.Close(context.Background())
	})

	repo := NewLinkRepo(mdb)
	s := new(MongoLinkRepoSuite)
	s.NewRepo = func() repotest.LinkRepository {
		_, delErr := repo.coll.DeleteMany(context.Background(), bson.D{})
		require.NoError(t, delErr)
		return repo
	}
	suite.Run(t, s)
}

func Test_convertErrorType(t *testing.T) {
	dupErr := mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no documents", err: mongo.ErrNoDocuments, want: repositories.ErrNotFound},
		{name: "duplicate", err: dupErr, want: repositories.ErrDuplicateKey},
		{name: "other", err: errors.New("boom"), want: repositories.ErrUnknown},
		{name: "deadline", err: context.DeadlineExceeded, want: context.DeadlineExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, convertErrorType(tt.err), tt.want)
		})
	}
}
