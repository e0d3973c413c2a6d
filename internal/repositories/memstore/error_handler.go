package memstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/linkqr/internal/db/memory"
	"github.com/fsdevblog/linkqr/internal/repositories"
)

// convertErrorType конвертирует ошибки хранилища в памяти в общие ошибки уровня репозитория.
// Ошибки контекста пробрасываются как есть.
func convertErrorType(err error) error {
	if err == nil {
		return nil
	}

	var nativeErr error
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, memory.ErrDuplicateKey):
		nativeErr = repositories.ErrDuplicateKey
	case errors.Is(err, memory.ErrNotFound):
		nativeErr = repositories.ErrNotFound
	default:
		nativeErr = repositories.ErrUnknown
	}

	return fmt.Errorf("%w: %s", nativeErr, err.Error())
}
