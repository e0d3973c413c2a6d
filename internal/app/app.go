package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fsdevblog/linkqr/internal/config"
	"github.com/fsdevblog/linkqr/internal/controllers"
	"github.com/fsdevblog/linkqr/internal/db"
	"github.com/fsdevblog/linkqr/internal/logs"
	"github.com/fsdevblog/linkqr/internal/services"
)

const connectTimeout = 10 * time.Second

type App struct {
	config     config.Config
	conn       any
	dbServices *services.Services
	server     *http.Server
	Logger     *zap.Logger
}

// New открывает хранилище и собирает сервисы. Ошибка подключения к хранилищу фатальна.
func New(ctx context.Context, conf config.Config) (*App, error) {
	production := conf.GinMode == gin.ReleaseMode
	if conf.GinMode != "" {
		gin.SetMode(conf.GinMode)
	}

	logger, logErr := logs.New(logs.WithLevel(conf.LogLevel), logs.WithProduction(production))
	if logErr != nil {
		return nil, fmt.Errorf("init logger: %w", logErr)
	}

	connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	conn, connErr := db.NewConnectionFactory(connCtx, db.FactoryConfig{
		DSN:       conf.DatabaseDSN,
		SQLLogger: logs.NewSQLLogger(os.Stdout, production),
	})
	if connErr != nil {
		return nil, fmt.Errorf("init storage: %w", connErr)
	}

	dbServices, servicesErr := services.Factory(conn, services.FactoryConfig{
		URL: services.URLServiceConfig{
			BaseURL:          conf.BaseURL.String(),
			CollisionRetries: conf.CollisionRetries,
		},
		ShortIDLength: conf.ShortIDLength,
		QRSize:        conf.QRSize,
		Logger:        logger,
	})
	if servicesErr != nil {
		_ = db.CloseConnection(ctx, conn)
		return nil, fmt.Errorf("init services: %w", servicesErr)
	}

	router := controllers.SetupRouter(controllers.RouterParams{
		LinkService: dbServices.URLService,
		PingService: dbServices.PingService,
		Logger:      logger,
	})

	return &App{
		config:     conf,
		conn:       conn,
		dbServices: dbServices,
		server: &http.Server{
			Addr:              conf.Address(),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,  //nolint:mnd
			ReadTimeout:       10 * time.Second, //nolint:mnd
			WriteTimeout:      10 * time.Second, //nolint:mnd
			IdleTimeout:       60 * time.Second, //nolint:mnd
		},
		Logger: logger,
	}, nil
}

// Must вызывает панику если произошла ошибка.
func Must(a *App, err error) *App {
	if err != nil {
		panic(err)
	}
	return a
}

// Handler http обработчик приложения.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run запускает web сервер и блокируется до SIGINT/SIGTERM или отмены ctx.
// При остановке дожидается текущих запросов и закрывает хранилище.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)

	go func() {
		a.Logger.Info("Starting server",
			zap.String("address", a.server.Addr),
			zap.String("baseURL", a.config.BaseURL.String()),
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("Shutdown command received")
	case serverErr = <-errChan:
		a.Logger.Error("server error", zap.Error(serverErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("server shutdown error", zap.Error(err))
	}
	if err := a.Close(shutdownCtx); err != nil {
		a.Logger.Error("close storage error", zap.Error(err))
	}
	_ = a.Logger.Sync()

	return serverErr
}

// Close закрывает соединение с хранилищем.
func (a *App) Close(ctx context.Context) error {
	if err := db.CloseConnection(ctx, a.conn); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}
