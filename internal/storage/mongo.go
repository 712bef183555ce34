// Package storage provides the batch sources and sinks the pipeline
// talks to: MongoDB collections, a PostgreSQL table and local files.
package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ethiodata/telecorpus/internal/logger"
	"github.com/ethiodata/telecorpus/internal/models"
)

// MongoStore reads raw batches from and writes cleaned batches to a
// MongoDB database.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	log    *logger.Logger
}

// NewMongoStore connects to MongoDB and pings it.
func NewMongoStore(ctx context.Context, uri, database string, log *logger.Logger) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStore{
		client: client,
		db:     client.Database(database),
		log:    log,
	}, nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// RawSource returns a batch source reading the named collection.
func (s *MongoStore) RawSource(collection string) *MongoRawSource {
	return &MongoRawSource{store: s, collection: collection}
}

// CleanedSink returns a batch sink replacing the named collection.
func (s *MongoStore) CleanedSink(collection string) *MongoCleanedSink {
	return &MongoCleanedSink{store: s, collection: collection}
}

// InsertRaw appends raw records to the named collection.
// Used by the scraper to mirror its CSV output.
func (s *MongoStore) InsertRaw(ctx context.Context, collection string, batch []models.RawRecord) error {
	if len(batch) == 0 {
		return nil
	}

	docs := make([]interface{}, len(batch))
	for i, rec := range batch {
		docs[i] = rec
	}

	if _, err := s.db.Collection(collection).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert raw records: %w", err)
	}
	return nil
}

// MongoRawSource loads the complete raw batch from one collection.
// An absent collection yields an empty batch, not an error.
type MongoRawSource struct {
	store      *MongoStore
	collection string
}

// Load reads every document in the collection.
func (m *MongoRawSource) Load(ctx context.Context) ([]models.RawRecord, error) {
	cursor, err := m.store.db.Collection(m.collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find raw records: %w", err)
	}

	var batch []models.RawRecord
	if err := cursor.All(ctx, &batch); err != nil {
		return nil, fmt.Errorf("decode raw records: %w", err)
	}

	m.store.log.Info().
		Int("count", len(batch)).
		Str("collection", m.collection).
		Msg("storage: loaded raw batch from mongo")

	return batch, nil
}

// MongoCleanedSink replaces the full collection with the cleaned batch.
type MongoCleanedSink struct {
	store      *MongoStore
	collection string
}

// Name identifies the sink in logs.
func (m *MongoCleanedSink) Name() string {
	return "mongo:" + m.collection
}

// Store drops the collection and inserts the batch, one call per run.
func (m *MongoCleanedSink) Store(ctx context.Context, batch []models.CleanedRecord) error {
	coll := m.store.db.Collection(m.collection)

	if err := coll.Drop(ctx); err != nil {
		return fmt.Errorf("drop collection: %w", err)
	}
	if len(batch) == 0 {
		return nil
	}

	docs := make([]interface{}, len(batch))
	for i, rec := range batch {
		docs[i] = rec
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert cleaned records: %w", err)
	}

	m.store.log.Info().
		Int("count", len(batch)).
		Str("collection", m.collection).
		Msg("storage: stored cleaned batch in mongo")

	return nil
}
