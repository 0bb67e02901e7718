package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/savelevaok/ainews/internal/storage"
)

// SaveSnapshot сохраняет снапшот по ключу (replace + upsert, last-write-wins).
func (m *Mongo) SaveSnapshot(ctx context.Context, snap storage.Snapshot) error {
	const op = "storage.mongo.SaveSnapshot"

	snap.CreatedAt = snap.CreatedAt.UTC()
	snap.ExpiresAt = snap.ExpiresAt.UTC()

	_, err := m.snapshots.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: snap.Key}},
		snap,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Snapshot возвращает снапшот по ключу независимо от логической свежести.
func (m *Mongo) Snapshot(ctx context.Context, key string) (*storage.Snapshot, error) {
	const op = "storage.mongo.Snapshot"

	var snap storage.Snapshot
	err := m.snapshots.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&snap)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	snap.CreatedAt = snap.CreatedAt.UTC()
	snap.ExpiresAt = snap.ExpiresAt.UTC()

	return &snap, nil
}
