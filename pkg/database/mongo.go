// Package database owns the process-wide MongoDB connection. Construct one
// Database in main and pass it to the repositories that need it.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ghuser/itemtracker/pkg/logger"
)

const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 2 * time.Second
)

// Database wraps a mongo.Client bound to one database name.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
	log    logger.Logger
}

// Connect opens the client, verifies connectivity with a primary ping and
// returns a Database for dbName. The driver manages its own connection pool.
func Connect(ctx context.Context, uri, dbName string, log logger.Logger) (*Database, error) {
	if dbName == "" {
		return nil, errors.New("database: database name is required")
	}

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout).
		SetMaxPoolSize(50).
		SetMinPoolSize(2)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("database: invalid mongo uri: %w", err)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	d := &Database{client: client, db: client.Database(dbName), log: log}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := d.Ping(pingCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Info("mongo connected", "database", dbName)
	return d, nil
}

// Collection returns a handle to the named collection.
func (d *Database) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// Ping checks the connection against the primary.
func (d *Database) Ping(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pingTimeout)
		defer cancel()
	}
	if err := d.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}
	return nil
}

// Close disconnects the client, waiting for in-use connections until ctx ends.
func (d *Database) Close(ctx context.Context) error {
	if d.client == nil {
		return nil
	}
	if err := d.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("database: disconnect: %w", err)
	}
	d.log.Info("mongo disconnected")
	return nil
}
