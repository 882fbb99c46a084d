package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection names shared by the document-store repositories.
const (
	ReviewsCollection   = "reviews"
	BookmarksCollection = "bookmarks"
	UsersCollection     = "users"
)

// Mongo owns a MongoDB client bound to one database.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.SugaredLogger
}

// NewMongo connects to uri, pings the server and ensures the indexes the
// repositories depend on.
func NewMongo(ctx context.Context, uri, database string, timeout time.Duration, logger *zap.SugaredLogger) (*Mongo, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	m := &Mongo{client: client, db: client.Database(database), logger: logger}
	if err := m.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Infow("store: mongo connection established", "database", database)
	return m, nil
}

// EnsureIndexes creates the unique and lookup indexes. It is idempotent.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		BookmarksCollection: {{
			Keys:    bson.D{{Key: "movie_title", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		UsersCollection: {{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		ReviewsCollection: {{
			Keys: bson.D{{Key: "movie_title", Value: 1}, {Key: "likes", Value: -1}, {Key: "created_at", Value: 1}},
		}},
	}
	for name, models := range indexes {
		if _, err := m.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	return nil
}

// Collection returns a handle to the named collection.
func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// HealthCheck pings the primary.
func (m *Mongo) HealthCheck(ctx context.Context) error {
	if m == nil || m.client == nil {
		return fmt.Errorf("mongo not initialized")
	}
	return m.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) {
	if m == nil || m.client == nil {
		return
	}
	m.logger.Info("store: disconnecting mongo")
	if err := m.client.Disconnect(ctx); err != nil {
		m.logger.Warnw("store: mongo disconnect failed", "error", err)
	}
}
