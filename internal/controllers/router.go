package controllers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fsdevblog/linkqr/internal/controllers/middlewares"
)

//go:embed templates/*.html
var templatesFS embed.FS

// RouterParams зависимости роутера.
type RouterParams struct {
	LinkService LinkShortener
	PingService ConnectionChecker
	Logger      *zap.Logger
	// Registry реестр метрик. nil - создается новый.
	Registry *prometheus.Registry
}

func SetupRouter(params RouterParams) *gin.Engine {
	reg := params.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestIDMiddleware())
	r.Use(middlewares.LoggerMiddleware(params.Logger))
	r.Use(middlewares.NewMetrics(reg).Middleware())
	r.Use(middlewares.GzipMiddleware())

	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	shortURLController := NewShortURLController(params.LinkService)
	pingController := NewPingController(params.PingService)

	r.GET("/", shortURLController.Index)
	r.POST("/shorten", shortURLController.Shorten)
	r.GET("/ping", pingController.Ping)
	r.GET("/debug/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	r.GET("/:shortID", shortURLController.Redirect)

	api := r.Group("/api")
	api.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Content-Encoding", "Accept-Encoding"},
	}))
	api.POST("/shorten", shortURLController.APIShorten)
	// preflight обрабатывает cors, хендлер до него не доходит
	api.OPTIONS("/shorten", func(*gin.Context) {})

	return r
}
