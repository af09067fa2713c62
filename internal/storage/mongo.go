package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wellness-backend/internal/model"
)

const statusCollection = "status_checks"

// statusDoc is the Mongo document shape. Timestamps are persisted as RFC 3339
// strings so documents stay readable and portable across drivers.
type statusDoc struct {
	ID         string `bson:"id"`
	ClientName string `bson:"client_name"`
	Timestamp  string `bson:"timestamp"`
}

// MongoStore persists status checks in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(statusCollection),
	}, nil
}

func (m *MongoStore) InsertStatusCheck(ctx context.Context, check *model.StatusCheck) error {
	doc := statusDoc{
		ID:         check.ID,
		ClientName: check.ClientName,
		Timestamp:  check.Timestamp.Format(time.RFC3339Nano),
	}

	if _, err := m.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert status check: %w", err)
	}

	return nil
}

func (m *MongoStore) ListStatusChecks(ctx context.Context, limit int) ([]*model.StatusCheck, error) {
	opts := options.Find().
		SetLimit(int64(limit)).
		SetProjection(bson.D{{Key: "_id", Value: 0}})

	cursor, err := m.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find status checks: %w", err)
	}
	defer cursor.Close(ctx)

	var checks []*model.StatusCheck
	for cursor.Next(ctx) {
		var doc statusDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode status check: %w", err)
		}

		ts, err := time.Parse(time.RFC3339Nano, doc.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimestamp, doc.Timestamp)
		}

		checks = append(checks, &model.StatusCheck{
			ID:         doc.ID,
			ClientName: doc.ClientName,
			Timestamp:  ts,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate status checks: %w", err)
	}

	return checks, nil
}

func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
