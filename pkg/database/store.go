package database

import (
	"context"
	"errors"
	"time"
)

// ErrStoreUnavailable is returned when no document store could be opened.
var ErrStoreUnavailable = errors.New("database not available")

// Store persists schemaless documents grouped into named collections.
type Store interface {
	// CreateDocument writes fields into collection and returns the generated id.
	// created_at and updated_at are stamped by the store.
	CreateDocument(ctx context.Context, collection string, fields map[string]any) (string, error)
	CountSince(ctx context.Context, collection string, since time.Time) (int64, error)
	Name(ctx context.Context) (string, error)
	ListCollections(ctx context.Context) ([]string, error)
	Close(ctx context.Context) error
}

func stamp(fields map[string]any, now time.Time) map[string]any {
	doc := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		doc[k] = v
	}
	doc["created_at"] = now
	doc["updated_at"] = now
	return doc
}
