// Package mongo dials MongoDB and provides the transactional scope used by the
// document-store adapters.
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultDatabase is used when no database name is configured.
const DefaultDatabase = "places"

// Connect opens a client and verifies connectivity against the primary.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("mongo URI is empty")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// ConnectDatabase dials uri and returns the named database plus a cleanup function.
// On failure it logs and returns nil with a no-op cleanup so callers can fall back.
func ConnectDatabase(ctx context.Context, uri, name string, logger *slog.Logger) (*mongo.Database, func()) {
	client, err := Connect(ctx, uri)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to connect to mongo, falling back to in-memory repositories", slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	if strings.TrimSpace(name) == "" {
		name = DefaultDatabase
	}
	if logger != nil {
		logger.Info("mongo connection established", slog.String("database", name))
	}
	return client.Database(name), func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}
}

// WithTransaction runs fn inside a session transaction. fn must use the
// context it receives for every operation that belongs to the transaction.
// The session is always ended; the transaction commits only if fn returns nil
// and is attempted exactly once.
func WithTransaction(ctx context.Context, db *mongo.Database, fn func(ctx context.Context) error) error {
	if db == nil {
		return fmt.Errorf("mongo database not configured")
	}
	session, err := db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(context.Background())
	return mongo.WithSession(ctx, session, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return fmt.Errorf("start transaction: %w", err)
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(context.Background())
			return err
		}
		if err := sc.CommitTransaction(context.Background()); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	})
}
