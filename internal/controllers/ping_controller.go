package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PingController отвечает на GET /ping, проверяя доступность хранилища ссылок.
type PingController struct {
	store ConnectionChecker
}

func NewPingController(store ConnectionChecker) *PingController {
	return &PingController{store: store}
}

// Ping 200 `pong` если хранилище отвечает, иначе 500 без тела.
func (c *PingController) Ping(ctx *gin.Context) {
	ctx.Header("Cache-Control", "no-store")

	pingCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	if err := c.store.CheckConnection(pingCtx); err != nil {
		_ = ctx.Error(fmt.Errorf("storage ping: %w", err))
		ctx.Status(http.StatusInternalServerError)
		return
	}
	ctx.String(http.StatusOK, "pong")
}
