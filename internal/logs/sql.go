package logs

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewSQLLogger логгер для GORM (реализует gorm logger.Writer).
// GORM пишет через Printf, это уровень info. Что писать, решает сам GORM.
func NewSQLLogger(out io.Writer, production bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(logrus.InfoLevel)

	if production {
		logger.SetFormatter(new(logrus.JSONFormatter))
	} else {
		logger.SetFormatter(new(logrus.TextFormatter))
	}

	return logger
}
