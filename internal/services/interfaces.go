package services

import (
	"context"

	"github.com/fsdevblog/linkqr/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock.go -package=mocks

// LinkRepository описывает репозиторий ссылок.
type LinkRepository interface {
	// Create атомарно вставляет запись. Если short_id или short_url уже заняты,
	// возвращает repositories.ErrDuplicateKey и существующую запись не трогает.
	Create(ctx context.Context, link *models.Link) (*models.Link, error)
	// GetByShortID находит запись по идентификатору.
	GetByShortID(ctx context.Context, shortID string) (*models.Link, error)
	// GetByShortURL находит запись по полной короткой ссылке.
	GetByShortURL(ctx context.Context, shortURL string) (*models.Link, error)
	Ping(ctx context.Context) error
}

// IDGenerator генерирует короткие идентификаторы.
type IDGenerator interface {
	Generate() (string, error)
}

// QRRenderer отрисовывает QR код в виде data URL.
type QRRenderer interface {
	DataURL(content string) (string, error)
}
