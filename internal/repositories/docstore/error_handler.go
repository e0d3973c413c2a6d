package docstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/fsdevblog/linkqr/internal/repositories"
)

// convertErrorType преобразует ошибки драйвера MongoDB в ошибки уровня репозитория.
func convertErrorType(err error) error {
	if err == nil {
		return nil
	}
	var nativeErr error
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, mongo.ErrNoDocuments):
		nativeErr = repositories.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		nativeErr = repositories.ErrDuplicateKey
	default:
		nativeErr = repositories.ErrUnknown
	}
	return fmt.Errorf("%w: %s", nativeErr, err.Error())
}
