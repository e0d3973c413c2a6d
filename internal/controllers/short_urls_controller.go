package controllers

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/linkqr/internal/services"
	"github.com/fsdevblog/linkqr/internal/shortid"
)

// indexView данные шаблона главной страницы.
type indexView struct {
	ShortURL string
	// QRCode data URL, помечен безопасным, иначе html/template вырежет схему data:.
	QRCode template.URL
}

type shortenForm struct {
	OriginalURL string `form:"originalUrl" json:"originalUrl"`
}

type shortenRequest struct {
	OriginalURL string `json:"originalUrl"`
}

type shortenResponse struct {
	ShortID     string `json:"shortId"`
	ShortURL    string `json:"shortUrl"`
	OriginalURL string `json:"originalUrl"`
	QRCode      string `json:"qrCode"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type ShortURLController struct {
	linkService LinkShortener
}

func NewShortURLController(linkService LinkShortener) *ShortURLController {
	return &ShortURLController{
		linkService: linkService,
	}
}

// Index отдает пустую форму.
func (s *ShortURLController) Index(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "index.html", indexView{})
}

// Shorten принимает форму с полем originalUrl и отдает страницу с короткой ссылкой и QR кодом.
func (s *ShortURLController) Shorten(ctx *gin.Context) {
	var form shortenForm
	if err := ctx.ShouldBind(&form); err != nil {
		_ = ctx.Error(fmt.Errorf("bind form: %w", err))
		ctx.String(http.StatusBadRequest, ErrURLRequired.Error())
		return
	}

	res, err := s.shorten(ctx, form.OriginalURL)
	if err != nil {
		status, clientErr := shortenErrorStatus(err)
		ctx.String(status, clientErr.Error())
		return
	}

	ctx.HTML(http.StatusOK, "index.html", indexView{
		ShortURL: res.Link.ShortURL,
		QRCode:   template.URL(res.QRCode), //nolint:gosec // data URL собран рендерером
	})
}

// APIShorten JSON версия Shorten.
func (s *ShortURLController) APIShorten(ctx *gin.Context) {
	if !isJSONRequest(ctx) {
		ctx.JSON(http.StatusUnsupportedMediaType, errorResponse{Error: "expected application/json"})
		return
	}
	var req shortenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		_ = ctx.Error(fmt.Errorf("bind json: %w", err))
		ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	res, err := s.shorten(ctx, req.OriginalURL)
	if err != nil {
		status, clientErr := shortenErrorStatus(err)
		ctx.JSON(status, errorResponse{Error: clientErr.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, shortenResponse{
		ShortID:     res.Link.ShortID,
		ShortURL:    res.Link.ShortURL,
		OriginalURL: res.Link.OriginalURL,
		QRCode:      res.QRCode,
	})
}

func (s *ShortURLController) shorten(ctx *gin.Context, originalURL string) (*services.ShortenResult, error) {
	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	res, err := s.linkService.Create(reqCtx, originalURL)
	if err != nil {
		_ = ctx.Error(fmt.Errorf("shorten: %w", err))
		return nil, err
	}
	return res, nil
}

// Redirect перенаправляет на исходную ссылку.
func (s *ShortURLController) Redirect(ctx *gin.Context) {
	shortID := ctx.Param("shortID")

	// длину не сверяем с текущей настройкой: ссылки, выданные до ее смены, должны работать
	if !shortid.IsWellFormed(shortID) {
		ctx.String(http.StatusNotFound, ErrNotFound.Error())
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	link, err := s.linkService.GetByShortID(reqCtx, shortID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			ctx.String(http.StatusNotFound, ErrNotFound.Error())
			return
		}
		_ = ctx.Error(fmt.Errorf("redirect: %w", err))
		ctx.String(http.StatusInternalServerError, ErrInternal.Error())
		return
	}

	ctx.Redirect(http.StatusFound, link.OriginalURL)
}
