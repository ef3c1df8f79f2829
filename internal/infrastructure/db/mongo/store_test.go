package mongo

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestNewStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("ensures indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		store, err := NewStore(context.Background(), mt.Client, mt.DB)
		if err != nil {
			mt.Fatalf("NewStore: %v", err)
		}
		if store.Users == nil {
			mt.Fatal("expected users repository")
		}

		started := mt.GetStartedEvent()
		if started == nil || started.CommandName != "createIndexes" {
			mt.Fatalf("expected createIndexes, got %+v", started)
		}
	})

	mt.Run("index failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    85,
			Name:    "IndexOptionsConflict",
			Message: "index already exists with different options",
		}))

		if _, err := NewStore(context.Background(), mt.Client, mt.DB); err == nil {
			mt.Fatal("expected error")
		}
	})

	mt.Run("ping", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		store, err := NewStore(context.Background(), mt.Client, mt.DB)
		if err != nil {
			mt.Fatalf("NewStore: %v", err)
		}

		mt.AddMockResponses(mtest.CreateSuccessResponse())
		if err := store.Ping(context.Background()); err != nil {
			mt.Fatalf("Ping: %v", err)
		}
	})
}

func TestConnect_EmptyURI(t *testing.T) {
	if _, _, err := Connect(context.Background(), Config{Database: "hopebloom"}); err == nil {
		t.Fatal("expected error for empty uri")
	}
	if _, err := Open(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty uri")
	}
}
