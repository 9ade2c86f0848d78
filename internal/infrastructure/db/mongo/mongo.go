// Package mongo backs the workflow run log. The remote CMS owns every
// business record; this store only holds the orchestrator's audit trail, so
// the service starts and serves without it.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// defaultTimeout bounds both the initial dial and each run-log operation.
const defaultTimeout = 10 * time.Second

// Config locates the run-log database.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect dials the run-log database and confirms it is reachable with a
// ping. Callers treat a failure as "run log disabled", not a startup error.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("run log: connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("run log: ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
