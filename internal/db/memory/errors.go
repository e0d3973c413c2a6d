package memory

import "errors"

var (
	ErrNotFound = errors.New("[memory]: key not found")
	// ErrDuplicateKey занят первичный ключ или значение уникального индекса.
	ErrDuplicateKey = errors.New("[memory]: duplicate key")
)
