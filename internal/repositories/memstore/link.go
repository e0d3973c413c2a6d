package memstore

import (
	"context"
	"fmt"
	"time"

	"github.com/fsdevblog/linkqr/internal/db"
	"github.com/fsdevblog/linkqr/internal/db/memory"
	"github.com/fsdevblog/linkqr/internal/models"
)

const shortURLIndex = "short_url"

// LinkRepo репозиторий ссылок в памяти. Первичный ключ - ShortID,
// ShortURL хранится в уникальном вторичном индексе.
type LinkRepo struct {
	s *db.MemoryStorage
}

// NewLinkRepo создает новый экземпляр репозитория.
func NewLinkRepo(store *db.MemoryStorage) *LinkRepo {
	return &LinkRepo{
		s: store,
	}
}

// Create атомарно вставляет запись, если ни ShortID, ни ShortURL еще не заняты.
func (l *LinkRepo) Create(ctx context.Context, link *models.Link) (*models.Link, error) {
	record := *link
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	err := memory.Set[models.Link](
		ctx,
		record.ShortID,
		&record,
		l.s.MStorage,
		memory.WithUniqueIndex(shortURLIndex, record.ShortURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create record: %w", convertErrorType(err))
	}
	return &record, nil
}

// GetByShortID получает ссылку по короткому идентификатору.
func (l *LinkRepo) GetByShortID(ctx context.Context, shortID string) (*models.Link, error) {
	link, err := memory.Get[models.Link](ctx, shortID, l.s.MStorage)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get record by short id %s: %w",
			shortID, convertErrorType(err),
		)
	}
	return link, nil
}

// GetByShortURL получает ссылку по полному короткому URL.
func (l *LinkRepo) GetByShortURL(ctx context.Context, shortURL string) (*models.Link, error) {
	link, err := memory.GetByIndex[models.Link](ctx, shortURLIndex, shortURL, l.s.MStorage)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get record by short url %s: %w",
			shortURL, convertErrorType(err),
		)
	}
	return link, nil
}

// Ping хранилище в памяти всегда доступно.
func (l *LinkRepo) Ping(ctx context.Context) error {
	return ctx.Err() //nolint:wrapcheck
}
