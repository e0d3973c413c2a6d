package services

import "errors"

var (
	ErrValidation = errors.New("[service]: validation error")
	ErrDuplicate  = errors.New("[service]: short url already exists")
	ErrNotFound   = errors.New("[service]: record not found")
	ErrStore      = errors.New("[service]: store error")
	ErrRender     = errors.New("[service]: qr render error")
)
