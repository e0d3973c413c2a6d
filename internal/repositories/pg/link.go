// Package pg реализация репозитория ссылок для PostgreSQL на pgx.
package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fsdevblog/linkqr/internal/models"
	"github.com/fsdevblog/linkqr/internal/repositories"
)

type LinkRepo struct {
	pool *pgxpool.Pool
}

func NewLinkRepo(pool *pgxpool.Pool) *LinkRepo {
	return &LinkRepo{pool: pool}
}

// ON CONFLICT DO NOTHING без RETURNING строки означает, что ключ уже занят.
const insertSQL = `
INSERT INTO links (created_at, short_id, short_url, original_url)
VALUES ($1, $2, $3, $4)
ON CONFLICT DO NOTHING
RETURNING id, created_at`

const selectSQL = `SELECT id, created_at, short_id, short_url, original_url FROM links WHERE `

func (l *LinkRepo) Create(ctx context.Context, link *models.Link) (*models.Link, error) {
	record := *link
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	var id int64
	err := l.pool.QueryRow(ctx, insertSQL,
		record.CreatedAt, record.ShortID, record.ShortURL, record.OriginalURL,
	).Scan(&id, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("failed to create record %s: %w", record.ShortID, repositories.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("failed to create record: %w", convertErrType(err))
	}
	record.ID = uint(id) //nolint:gosec
	return &record, nil
}

func (l *LinkRepo) GetByShortID(ctx context.Context, shortID string) (*models.Link, error) {
	return l.one(ctx, "short_id = $1", shortID)
}

func (l *LinkRepo) GetByShortURL(ctx context.Context, shortURL string) (*models.Link, error) {
	return l.one(ctx, "short_url = $1", shortURL)
}

func (l *LinkRepo) Ping(ctx context.Context) error {
	return l.pool.Ping(ctx) //nolint:wrapcheck
}

func (l *LinkRepo) one(ctx context.Context, where string, arg string) (*models.Link, error) {
	rows, err := l.pool.Query(ctx, selectSQL+where, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query by `%s`: %w", where, convertErrType(err))
	}
	link, err := pgx.CollectExactlyOneRow(rows, scanLink)
	if err != nil {
		return nil, fmt.Errorf("failed to get record by `%s` %s: %w", where, arg, convertErrType(err))
	}
	return link, nil
}

func scanLink(row pgx.CollectableRow) (*models.Link, error) {
	var (
		link models.Link
		id   int64
	)
	if err := row.Scan(&id, &link.CreatedAt, &link.ShortID, &link.ShortURL, &link.OriginalURL); err != nil {
		return nil, err //nolint:wrapcheck
	}
	link.ID = uint(id) //nolint:gosec
	return &link, nil
}
