package controllers

import "errors"

// Ошибки, отдаваемые клиенту.
var (
	ErrURLRequired = errors.New("URL is required")          // Пустая ссылка
	ErrDuplicate   = errors.New("Short URL already exists") //nolint:staticcheck // текст виден пользователю
	ErrNotFound    = errors.New("URL not found")             // Короткая ссылка не найдена
	ErrInternal    = errors.New("Server error")              //nolint:staticcheck // текст виден пользователю
)
