package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	log    *zap.Logger
	now    func() time.Time
}

// OpenMongo creates the client without waiting for the server; connection
// problems surface on the first operation.
func OpenMongo(_ context.Context, uri, dbName string, log *zap.Logger) (*MongoStore, error) {
	if log == nil {
		log = zap.NewNop()
	}

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	log.Info("database client created", zap.String("driver", "mongodb"), zap.String("database", dbName))
	return &MongoStore{
		client: client,
		db:     client.Database(dbName),
		log:    log,
		now:    time.Now,
	}, nil
}

func (s *MongoStore) CreateDocument(ctx context.Context, collection string, fields map[string]any) (string, error) {
	doc := stamp(fields, s.now().UTC())

	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert %s document: %w", collection, err)
	}

	return insertedID(res.InsertedID), nil
}

// insertedID renders the driver-generated _id the way clients see it.
func insertedID(id any) string {
	switch v := id.(type) {
	case bson.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func createdSinceFilter(since time.Time) bson.M {
	return bson.M{"created_at": bson.M{"$gte": since.UTC()}}
}

func (s *MongoStore) CountSince(ctx context.Context, collection string, since time.Time) (int64, error) {
	count, err := s.db.Collection(collection).CountDocuments(ctx, createdSinceFilter(since))
	if err != nil {
		return 0, fmt.Errorf("count %s documents: %w", collection, err)
	}
	return count, nil
}

func (s *MongoStore) Name(context.Context) (string, error) {
	return s.db.Name(), nil
}

func (s *MongoStore) ListCollections(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return names, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
