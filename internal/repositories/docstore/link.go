// Package docstore реализация репозитория ссылок для документного хранилища MongoDB.
// Уникальность short_id и short_url обеспечивают индексы, созданные при подключении.
package docstore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/fsdevblog/linkqr/internal/db"
	"github.com/fsdevblog/linkqr/internal/models"
)

type LinkRepo struct {
	mdb  *db.MongoDatabase
	coll *mongo.Collection
}

func NewLinkRepo(mdb *db.MongoDatabase) *LinkRepo {
	return &LinkRepo{mdb: mdb, coll: mdb.Links()}
}

func (l *LinkRepo) Create(ctx context.Context, link *models.Link) (*models.Link, error) {
	record := *link
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if _, err := l.coll.InsertOne(ctx, &record); err != nil {
		return nil, fmt.Errorf("failed to create record: %w", convertErrorType(err))
	}
	return &record, nil
}

func (l *LinkRepo) GetByShortID(ctx context.Context, shortID string) (*models.Link, error) {
	return l.findOne(ctx, "short_id", shortID)
}

func (l *LinkRepo) GetByShortURL(ctx context.Context, shortURL string) (*models.Link, error) {
	return l.findOne(ctx, "short_url", shortURL)
}

func (l *LinkRepo) Ping(ctx context.Context) error {
	return l.mdb.Ping(ctx) //nolint:wrapcheck
}

func (l *LinkRepo) findOne(ctx context.Context, field, value string) (*models.Link, error) {
	var link models.Link
	err := l.coll.FindOne(ctx, bson.D{{Key: field, Value: value}}).Decode(&link)
	if err != nil {
		return nil, fmt.Errorf("failed to get record by %s %s: %w", field, value, convertErrorType(err))
	}
	return &link, nil
}
