package config

import (
	"flag"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	DefaultPort            = "5000"
	DefaultShortIDLength   = 7
	DefaultQRSize          = 256
	DefaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	// Порт на котором запустится сервер
	Port string `env:"PORT"`
	// Хост, пустой - все интерфейсы
	Host string `env:"HOST"`
	// Базовый адрес результирующего сокращенного URL
	BaseURL *url.URL `env:"BASE_URL"`
	// Строка подключения к хранилищу, пустая - хранилище в памяти
	DatabaseDSN      string        `env:"DATABASE_DSN"`
	ShortIDLength    int           `env:"SHORT_ID_LENGTH"   envDefault:"7"`
	CollisionRetries int           `env:"COLLISION_RETRIES" envDefault:"0"`
	QRSize           int           `env:"QR_SIZE"           envDefault:"256"`
	LogLevel         string        `env:"LOG_LEVEL"         envDefault:"info"`
	GinMode          string        `env:"GIN_MODE"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT"  envDefault:"10s"`
}

// Address адрес для http.Server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// LoadConfig собирает конфиг из .env, переменных окружения и флагов.
// Переменные окружения приоритетнее флагов.
func LoadConfig(args []string) (*Config, error) {
	// .env опционален, уже выставленные переменные он не перезаписывает
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env")
	}

	var flagsConfig, envConfig Config
	if err := env.Parse(&envConfig); err != nil {
		return nil, errors.Wrapf(err, "parse ENV config error")
	}

	if err := loadsFlags(&flagsConfig, args); err != nil {
		return nil, err
	}

	conf := mergeConfig(&envConfig, &flagsConfig)
	if err := conf.validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// loadsFlags парсит флаги командной строки.
// -h и -help оставлены за справкой, ошибка в этом случае оборачивает flag.ErrHelp.
func loadsFlags(flagsConfig *Config, args []string) error {
	fs := flag.NewFlagSet("linkqr", flag.ContinueOnError)
	fs.StringVar(&flagsConfig.Port, "p", DefaultPort, "Порт сервера")
	fs.StringVar(&flagsConfig.Host, "host", "", "Хост сервера")
	fs.StringVar(&flagsConfig.DatabaseDSN, "d", "", "Строка подключения к хранилищу")

	bDesc := "Базовый адрес результирующего сокращенного URL (по умолчанию http://localhost:<порт>)"
	fs.Func("b", bDesc, func(rawURL string) error {
		parsedURL, err := parseBaseURL(rawURL)
		if err != nil {
			return err
		}
		flagsConfig.BaseURL = parsedURL
		return nil
	})

	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse flags")
	}
	return nil
}

func parseBaseURL(rawURL string) (*url.URL, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse base url")
	}
	if parsedURL.Host == "" {
		return nil, errors.Errorf("base url `%s` has no host", rawURL)
	}
	// создаем новый инстанс, отсекая тем самым Path и Query если они заданы в базовом урле.
	return &url.URL{
		Scheme: parsedURL.Scheme,
		Host:   parsedURL.Host,
	}, nil
}

// mergeConfig сливает структуры для env и флагов.
func mergeConfig(envConfig, flagsConfig *Config) *Config {
	conf := *envConfig
	conf.Port = defaultIfBlank[string](envConfig.Port, flagsConfig.Port)
	conf.Host = defaultIfBlank[string](envConfig.Host, flagsConfig.Host)
	conf.DatabaseDSN = defaultIfBlank[string](envConfig.DatabaseDSN, flagsConfig.DatabaseDSN)
	conf.BaseURL = defaultIfBlank[*url.URL](envConfig.BaseURL, flagsConfig.BaseURL)

	if conf.Port == "" {
		conf.Port = DefaultPort
	}
	if conf.BaseURL == nil {
		conf.BaseURL = &url.URL{Scheme: "http", Host: "localhost:" + conf.Port}
	} else {
		conf.BaseURL = &url.URL{Scheme: conf.BaseURL.Scheme, Host: conf.BaseURL.Host}
	}
	if conf.ShortIDLength <= 0 {
		conf.ShortIDLength = DefaultShortIDLength
	}
	if conf.QRSize <= 0 {
		conf.QRSize = DefaultQRSize
	}
	if conf.LogLevel == "" {
		conf.LogLevel = "info"
	}
	if conf.ShutdownTimeout <= 0 {
		conf.ShutdownTimeout = DefaultShutdownTimeout
	}
	return &conf
}

func (c *Config) validate() error {
	if c.CollisionRetries < 0 {
		return fmt.Errorf("COLLISION_RETRIES must not be negative, got %d", c.CollisionRetries)
	}
	if c.BaseURL.Scheme != "http" && c.BaseURL.Scheme != "https" {
		return fmt.Errorf("base url must have http or https scheme, got `%s`", c.BaseURL.Scheme)
	}
	return nil
}

func defaultIfBlank[T any](value T, defaultValue T) T {
	if v, ok := any(value).(string); ok && v == "" {
		return defaultValue
	}
	if v, ok := any(value).(*url.URL); ok && v == nil {
		return defaultValue
	}
	return value
}
