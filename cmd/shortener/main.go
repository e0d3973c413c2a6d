package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/fsdevblog/linkqr/internal/app"
	"github.com/fsdevblog/linkqr/internal/bmeta"
	"github.com/fsdevblog/linkqr/internal/config"
)

// Задаются при сборке: go build -ldflags "-X main.buildVersion=v1.0.0".
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	appConf, err := config.LoadConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		// справку уже вывел flag
		os.Exit(0)
	}
	if err != nil {
		panic(err)
	}

	a := app.Must(app.New(context.Background(), *appConf))

	a.Logger.Info("Build", bmeta.Fields(buildVersion, buildDate, buildCommit)...)
	a.Logger.Info("Config",
		zap.String("address", appConf.Address()),
		zap.String("baseURL", appConf.BaseURL.String()),
		zap.Int("shortIDLength", appConf.ShortIDLength),
		zap.Int("collisionRetries", appConf.CollisionRetries),
	)
	if err := a.Run(context.Background()); err != nil {
		a.Logger.Fatal("server stopped", zap.Error(err))
	}
}
