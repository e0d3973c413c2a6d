// Package logs сборка zap логгера приложения и logrus логгера для GORM.
package logs

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EncodingType формат вывода логов.
type EncodingType string

const (
	EncodingTypeConsole EncodingType = "console"
	EncodingTypeJSON    EncodingType = "json"
)

// LevelType уровень логирования, строка в формате zap (debug, info, warn, error...).
type LevelType string

const (
	LevelTypeDebug LevelType = "debug"
	LevelTypeInfo  LevelType = "info"
	LevelTypeWarn  LevelType = "warn"
	LevelTypeError LevelType = "error"
)

// LoggerOptions настройки логгера.
type LoggerOptions struct {
	Production       bool           // JSON вывод без development режима zap
	Level            LevelType      // Уровень логирования
	Encoding         EncodingType   // Формат вывода, по умолчанию зависит от Production
	OutputPaths      []string       // Пути вывода логов
	ErrorOutputPaths []string       // Пути вывода ошибок
	InitialFields    map[string]any // Начальные поля для каждой записи
}

// WithLevel задает уровень логирования строкой из конфига. Пустая строка игнорируется.
func WithLevel(level string) func(*LoggerOptions) {
	return func(o *LoggerOptions) {
		if level != "" {
			o.Level = LevelType(level)
		}
	}
}

// WithProduction переключает JSON формат.
func WithProduction(production bool) func(*LoggerOptions) {
	return func(o *LoggerOptions) {
		o.Production = production
	}
}

// New создает логгер. Без опций: уровень info, JSON при GIN_MODE=release, иначе консоль.
func New(opts ...func(*LoggerOptions)) (*zap.Logger, error) {
	options := LoggerOptions{
		Production:       os.Getenv("GIN_MODE") == "release",
		Level:            LevelTypeInfo,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Encoding == "" {
		options.Encoding = EncodingTypeConsole
		if options.Production {
			options.Encoding = EncodingTypeJSON
		}
	}

	lvl, errLvl := zap.ParseAtomicLevel(string(options.Level))
	if errLvl != nil {
		return nil, fmt.Errorf("parse level: %s", errLvl.Error())
	}

	conf := zap.Config{
		Level:            lvl,
		Development:      !options.Production,
		Encoding:         string(options.Encoding),
		EncoderConfig:    encoderConfig(),
		OutputPaths:      options.OutputPaths,
		ErrorOutputPaths: options.ErrorOutputPaths,
		InitialFields:    options.InitialFields,
	}

	log, err := conf.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %s", err.Error())
	}
	return log, nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "ts",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// MustNew как New, но паникует при ошибке.
func MustNew(opts ...func(*LoggerOptions)) *zap.Logger {
	log, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return log
}
