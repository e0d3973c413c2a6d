// Package qrcode рендерит QR-коды коротких ссылок в виде data URL.
package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"

	goqr "github.com/skip2/go-qrcode"
)

// DefaultSize размер стороны изображения в пикселях по умолчанию.
const DefaultSize = 256

const dataURLPrefix = "data:image/png;base64,"

// ErrEmptyContent попытка закодировать пустую строку.
var ErrEmptyContent = errors.New("qr content is empty")

// Options настройки рендера.
type Options struct {
	Size  int                // Сторона изображения в пикселях
	Level goqr.RecoveryLevel // Уровень коррекции ошибок
}

// Renderer рендерер QR-кодов.
type Renderer struct {
	size  int
	level goqr.RecoveryLevel
}

// New создает рендерер с указанными опциями.
func New(opts ...func(*Options)) *Renderer {
	options := Options{
		Size:  DefaultSize,
		Level: goqr.Medium,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Size <= 0 {
		options.Size = DefaultSize
	}
	return &Renderer{size: options.Size, level: options.Level}
}

// PNG возвращает PNG изображение QR-кода для content.
func (r *Renderer) PNG(content string) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	png, err := goqr.Encode(content, r.level, r.size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

// DataURL возвращает QR-код в виде `data:image/png;base64,...`, пригодном для <img src>.
func (r *Renderer) DataURL(content string) (string, error) {
	png, err := r.PNG(content)
	if err != nil {
		return "", err
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(png), nil
}
