package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/linkqr/internal/services"
)

const (
	DefaultRequestTimeout = 3 * time.Second
)

// isJSONRequest Определяет тип запроса (json или нет) по заголовку Content-Type.
func isJSONRequest(ctx *gin.Context) bool {
	ct := ctx.Request.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/json")
}

// shortenErrorStatus сопоставляет ошибку сервиса со статусом и сообщением для клиента.
func shortenErrorStatus(err error) (int, error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest, ErrURLRequired
	case errors.Is(err, services.ErrDuplicate):
		return http.StatusBadRequest, ErrDuplicate
	default:
		return http.StatusInternalServerError, ErrInternal
	}
}
