package services

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fsdevblog/linkqr/internal/db"
	"github.com/fsdevblog/linkqr/internal/qrcode"
	"github.com/fsdevblog/linkqr/internal/repositories/docstore"
	"github.com/fsdevblog/linkqr/internal/repositories/memstore"
	"github.com/fsdevblog/linkqr/internal/repositories/pg"
	"github.com/fsdevblog/linkqr/internal/repositories/sql"
	"github.com/fsdevblog/linkqr/internal/shortid"
)

var ErrInvalidConnection = errors.New("invalid connection type")

// FactoryConfig параметры сборки сервисов.
type FactoryConfig struct {
	URL           URLServiceConfig
	ShortIDLength int
	QRSize        int
	Logger        *zap.Logger
}

type Services struct {
	URLService  *URLService
	PingService *PingService
}

// Factory собирает сервисы поверх соединения, открытого db.NewConnectionFactory.
func Factory(conn any, conf FactoryConfig) (*Services, error) {
	var repo LinkRepository
	switch c := conn.(type) {
	case *db.MemoryStorage:
		repo = memstore.NewLinkRepo(c)
	case *gorm.DB:
		repo = sql.NewLinkRepo(c)
	case *pgxpool.Pool:
		repo = pg.NewLinkRepo(c)
	case *db.MongoDatabase:
		repo = docstore.NewLinkRepo(c)
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidConnection, conn)
	}
	return newServices(repo, conf), nil
}

func newServices(repo LinkRepository, conf FactoryConfig) *Services {
	gen := shortid.New(conf.ShortIDLength)
	qr := qrcode.New(func(o *qrcode.Options) {
		o.Size = conf.QRSize
	})
	return &Services{
		URLService:  NewURLService(repo, gen, qr, conf.URL, conf.Logger),
		PingService: NewPingService(repo),
	}
}
