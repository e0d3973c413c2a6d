package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/fsdevblog/linkqr/internal/models"
	"github.com/fsdevblog/linkqr/internal/repositories"
)

// URLServiceConfig настройки сервиса сокращения ссылок.
type URLServiceConfig struct {
	// BaseURL префикс коротких ссылок, без завершающего слэша.
	BaseURL string
	// CollisionRetries сколько раз перегенерировать идентификатор при коллизии.
	// 0 - коллизия сразу возвращает ErrDuplicate.
	CollisionRetries int
}

// ShortenResult результат сокращения ссылки.
type ShortenResult struct {
	Link   *models.Link
	QRCode string // PNG в виде data URL
}

// URLService сервис работает с хранилищем в контексте коллекции `links`.
type URLService struct {
	repo   LinkRepository
	gen    IDGenerator
	qr     QRRenderer
	conf   URLServiceConfig
	logger *zap.Logger
}

func NewURLService(
	repo LinkRepository,
	gen IDGenerator,
	qr QRRenderer,
	conf URLServiceConfig,
	logger *zap.Logger,
) *URLService {
	if logger == nil {
		logger = zap.NewNop()
	}
	conf.BaseURL = strings.TrimRight(conf.BaseURL, "/")
	return &URLService{
		repo:   repo,
		gen:    gen,
		qr:     qr,
		conf:   conf,
		logger: logger,
	}
}

// Create сокращает ссылку и рисует для нее QR код.
// Одна и та же ссылка при повторном вызове получает новый идентификатор.
// Строка сохраняется как есть, отклоняется только пустая.
func (u *URLService) Create(ctx context.Context, originalURL string) (*ShortenResult, error) {
	if originalURL == "" {
		return nil, fmt.Errorf("%w: URL is required", ErrValidation)
	}

	link, err := u.insert(ctx, originalURL)
	if err != nil {
		return nil, err
	}

	// запись уже сохранена, при ошибке отрисовки она остается в хранилище
	qr, qrErr := u.qr.DataURL(link.ShortURL)
	if qrErr != nil {
		return nil, fmt.Errorf("%w: %s", ErrRender, qrErr.Error())
	}

	return &ShortenResult{Link: link, QRCode: qr}, nil
}

// insert генерирует идентификатор и вставляет запись, повторяя попытку при коллизии
// не более conf.CollisionRetries раз.
func (u *URLService) insert(ctx context.Context, originalURL string) (*models.Link, error) {
	for attempt := 0; ; attempt++ {
		shortID, genErr := u.gen.Generate()
		if genErr != nil {
			return nil, fmt.Errorf("%w: generate short id: %s", ErrStore, genErr.Error())
		}
		shortURL := u.conf.BaseURL + "/" + shortID

		collision, err := u.exists(ctx, shortURL)
		if err != nil {
			return nil, err
		}

		if !collision {
			link, createErr := u.repo.Create(ctx, &models.Link{
				ShortID:     shortID,
				ShortURL:    shortURL,
				OriginalURL: originalURL,
			})
			switch {
			case createErr == nil:
				return link, nil
			case errors.Is(createErr, repositories.ErrDuplicateKey):
				collision = true
			default:
				return nil, fmt.Errorf("%w: %s", ErrStore, createErr.Error())
			}
		}

		if attempt >= u.conf.CollisionRetries {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, shortURL)
		}
		u.logger.Warn("short id collision, regenerating",
			zap.String("shortID", shortID),
			zap.Int("attempt", attempt+1),
		)
	}
}

func (u *URLService) exists(ctx context.Context, shortURL string) (bool, error) {
	_, err := u.repo.GetByShortURL(ctx, shortURL)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repositories.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s", ErrStore, err.Error())
	}
}

// GetByShortID возвращает запись по идентификатору.
func (u *URLService) GetByShortID(ctx context.Context, shortID string) (*models.Link, error) {
	link, err := u.repo.GetByShortID(ctx, shortID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %s", ErrNotFound, shortID)
		}
		return nil, fmt.Errorf("%w: %s", ErrStore, err.Error())
	}
	return link, nil
}
