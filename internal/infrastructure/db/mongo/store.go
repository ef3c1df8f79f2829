package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store owns the client and the repositories built on its database. Opening
// a Store guarantees the indexes the repositories rely on exist.
type Store struct {
	client *mongo.Client
	Users  *UserRepository
}

// Open connects and prepares the store.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	client, db, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store, err := NewStore(ctx, client, db)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return store, nil
}

// NewStore builds the repositories on db and ensures their indexes.
func NewStore(ctx context.Context, client *mongo.Client, db *mongo.Database) (*Store, error) {
	users := NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("mongo store: %w", err)
	}
	return &Store{client: client, Users: users}, nil
}

// Ping is the readiness check for the primary.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
