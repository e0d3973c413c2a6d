package db

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fsdevblog/linkqr/internal/models"
)

const slowQueryThreshold = 200 * time.Millisecond

func NewSQLite(dbPath string, l *logrus.Logger) (*gorm.DB, error) {
	conn, connErr := connectSQLite(dbPath, l)
	if connErr != nil {
		return nil, fmt.Errorf("init database error: %w", connErr)
	}
	if migrateErr := migrateSQLite(conn); migrateErr != nil {
		return nil, fmt.Errorf("migrate database error: %w", migrateErr)
	}
	return conn, nil
}

func connectSQLite(dbPath string, l *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger(l),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database with path %s error: %w", dbPath, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	// sqlite не умеет в параллельную запись, сериализуем на уровне пула.
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// gormLogger пишет логи GORM через logrus: ошибки и медленные запросы.
func gormLogger(l *logrus.Logger) logger.Interface {
	if l == nil {
		return logger.Discard
	}
	return logger.New(l, logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func migrateSQLite(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Link{}); err != nil {
		return fmt.Errorf("migrating sql: %w", err)
	}
	return nil
}
