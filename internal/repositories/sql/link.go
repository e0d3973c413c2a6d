package sql

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fsdevblog/linkqr/internal/models"
)

type LinkRepo struct {
	db *gorm.DB
}

func NewLinkRepo(db *gorm.DB) *LinkRepo {
	return &LinkRepo{db: db}
}

// Create вставляет запись. Уникальность short_id и short_url гарантируют индексы таблицы,
// нарушение возвращается как repositories.ErrDuplicateKey.
func (l *LinkRepo) Create(ctx context.Context, link *models.Link) (*models.Link, error) {
	record := *link
	record.ID = 0
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if err := l.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create record: %w", ConvertErrorType(err))
	}
	return &record, nil
}

func (l *LinkRepo) GetByShortID(ctx context.Context, shortID string) (*models.Link, error) {
	return l.first(ctx, "short_id = ?", shortID)
}

func (l *LinkRepo) GetByShortURL(ctx context.Context, shortURL string) (*models.Link, error) {
	return l.first(ctx, "short_url = ?", shortURL)
}

func (l *LinkRepo) Ping(ctx context.Context) error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx) //nolint:wrapcheck
}

func (l *LinkRepo) first(ctx context.Context, query string, arg string) (*models.Link, error) {
	var link models.Link
	if err := l.db.WithContext(ctx).Where(query, arg).First(&link).Error; err != nil {
		return nil, fmt.Errorf("failed to get record by `%s` %s: %w", query, arg, ConvertErrorType(err))
	}
	return &link, nil
}
