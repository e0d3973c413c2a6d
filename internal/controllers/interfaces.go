package controllers

import (
	"context"

	"github.com/fsdevblog/linkqr/internal/models"
	"github.com/fsdevblog/linkqr/internal/services"
)

//go:generate mockgen -source=interfaces.go -destination=mocksctrl/store.go -package=mocksctrl

type ConnectionChecker interface {
	CheckConnection(ctx context.Context) error
}

type LinkShortener interface {
	// Create сохраняет новую короткую ссылку и возвращает ее вместе с QR кодом.
	Create(ctx context.Context, originalURL string) (*services.ShortenResult, error)
	GetByShortID(ctx context.Context, shortID string) (*models.Link, error)
}
