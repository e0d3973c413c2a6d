package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type StorageType string

const (
	StorageTypeInMemory StorageType = "inMemory"
	StorageTypeSQLite   StorageType = "sqlite"
	StorageTypePostgres StorageType = "postgres"
	StorageTypeMongo    StorageType = "mongo"
)

var ErrUnknownStorage = errors.New("unknown storage type")

// FactoryConfig параметры подключения к хранилищу.
type FactoryConfig struct {
	DSN string
	// SQLLogger получает логи GORM. Может быть nil.
	SQLLogger *logrus.Logger
}

// StorageTypeFromDSN определяет тип хранилища по схеме строки подключения.
// Пустая строка означает хранилище в памяти.
func StorageTypeFromDSN(dsn string) (StorageType, error) {
	switch {
	case dsn == "":
		return StorageTypeInMemory, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return StorageTypePostgres, nil
	case strings.HasPrefix(dsn, "mongodb://"), strings.HasPrefix(dsn, "mongodb+srv://"):
		return StorageTypeMongo, nil
	case strings.HasPrefix(dsn, "sqlite://"), strings.HasPrefix(dsn, "file:"):
		return StorageTypeSQLite, nil
	default:
		return "", fmt.Errorf("%w: dsn `%s`", ErrUnknownStorage, redact(dsn))
	}
}

// NewConnectionFactory открывает соединение с хранилищем и создает схему.
// Возвращает *MemoryStorage, *gorm.DB, *pgxpool.Pool или *MongoDatabase.
func NewConnectionFactory(ctx context.Context, config FactoryConfig) (any, error) {
	sType, err := StorageTypeFromDSN(config.DSN)
	if err != nil {
		return nil, err
	}
	switch sType {
	case StorageTypeInMemory:
		return NewMemStorage(), nil
	case StorageTypeSQLite:
		conn, connErr := NewSQLite(sqlitePath(config.DSN), config.SQLLogger)
		if connErr != nil {
			return nil, fmt.Errorf("failed to create sqlite connection: %w", connErr)
		}
		return conn, nil
	case StorageTypePostgres:
		pool, connErr := NewPostgresConnection(ctx, config.DSN)
		if connErr != nil {
			return nil, fmt.Errorf("failed to create postgres connection: %w", connErr)
		}
		if migrateErr := simpleMigrateSchema(ctx, pool); migrateErr != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to migrate schema: %w", migrateErr)
		}
		return pool, nil
	case StorageTypeMongo:
		mdb, connErr := NewMongoConnection(ctx, config.DSN)
		if connErr != nil {
			return nil, fmt.Errorf("failed to create mongo connection: %w", connErr)
		}
		return mdb, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStorage, sType)
	}
}

// CloseConnection закрывает соединение, открытое NewConnectionFactory.
func CloseConnection(ctx context.Context, conn any) error {
	switch c := conn.(type) {
	case *MemoryStorage:
		return nil
	case *gorm.DB:
		sqlDB, err := c.DB()
		if err != nil {
			return fmt.Errorf("get sql.DB: %w", err)
		}
		return sqlDB.Close() //nolint:wrapcheck
	case *pgxpool.Pool:
		c.Close()
		return nil
	case *MongoDatabase:
		return c.Close(ctx)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownStorage, conn)
	}
}

func sqlitePath(dsn string) string {
	return strings.TrimPrefix(dsn, "sqlite://")
}

// redact скрывает пароль в dsn для сообщений об ошибках.
func redact(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at == -1 || scheme == -1 || at < scheme {
		return dsn
	}
	return dsn[:scheme+3] + "***" + dsn[at:]
}
