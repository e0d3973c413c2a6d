package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.mongodb.org/mongo-driver/v2/x/mongo/driver/connstring"
)

const (
	defaultMongoDatabase = "urlshortener"
	LinksCollection      = "links"
)

// MongoDatabase клиент MongoDB вместе с выбранной базой.
type MongoDatabase struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Links коллекция ссылок.
func (m *MongoDatabase) Links() *mongo.Collection {
	return m.DB.Collection(LinksCollection)
}

// Ping проверяет соединение с primary.
func (m *MongoDatabase) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary()) //nolint:wrapcheck
}

// Close закрывает клиент.
func (m *MongoDatabase) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx) //nolint:wrapcheck
}

// NewMongoConnection подключается к MongoDB, проверяет соединение и создает уникальные индексы.
// Имя базы берется из пути dsn, по умолчанию `urlshortener`.
func NewMongoConnection(ctx context.Context, dsn string) (*MongoDatabase, error) {
	cs, parseErr := connstring.ParseAndValidate(dsn)
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse mongo uri: %w", parseErr)
	}
	dbName := cs.Database
	if dbName == "" {
		dbName = defaultMongoDatabase
	}

	client, connErr := mongo.Connect(options.Client().ApplyURI(dsn))
	if connErr != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", connErr)
	}
	mdb := &MongoDatabase{Client: client, DB: client.Database(dbName)}

	if pingErr := mdb.Ping(ctx); pingErr != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", pingErr)
	}
	if idxErr := ensureMongoIndexes(ctx, mdb.Links()); idxErr != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create indexes: %w", idxErr)
	}
	return mdb, nil
}

func ensureMongoIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "short_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_short_id"),
		},
		{
			Keys:    bson.D{{Key: "short_url", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_short_url"),
		},
	})
	return err //nolint:wrapcheck
}
