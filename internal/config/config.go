package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL         = "localhost:8081"
	DefaultRetention       = 24 * time.Hour
	DefaultCleanupInterval = 10 * time.Second
	DefaultThumbnailSize   = 256
)

type Config struct {
	// Daemon settings
	DatabaseDSN     string        `env:"DATABASE_URI"`
	AuthSecret      string        `env:"AUTH_SECRET"`
	ListenerPath    string        `env:"LISTENER_PATH"`
	Retention       time.Duration `env:"RETENTION"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL"`
	ThumbnailSize   int           `env:"THUMBNAIL_SIZE"`
	LogFormat       string        `env:"LOG_FORMAT"`

	// Shared settings
	BaseURL   string `env:"BASE_URL"`
	TokenFile string `env:"TOKEN_FILE"`

	ServerURL string `env:"-"`
	Version   bool   `env:"-"` // show version and exit (flag only)
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// флаги перекрывают значения из env
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (путь SQLite или postgres://)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT локального API")
	flag.StringVar(&cfg.ListenerPath, "listener", cfg.ListenerPath, "путь к нативному слушателю изменений буфера обмена")
	flag.DurationVar(&cfg.Retention, "retention", cfg.Retention, "сколько хранится история")
	flag.DurationVar(&cfg.CleanupInterval, "cleanup-interval", cfg.CleanupInterval, "период очистки устаревших записей")
	flag.IntVar(&cfg.ThumbnailSize, "thumbnail-size", cfg.ThumbnailSize, "размер превью в пикселях")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "формат логов: console | json")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "адрес локального API (host:port)")
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "путь к файлу токена")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	// секрет на один запуск: токен всё равно перевыпускается при старте демона
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = uuid.NewString()
	}
	// BaseURL только в виде "address:port" (без схемы и пути), иначе значение по умолчанию
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.ServerURL = "http://" + cfg.BaseURL

	if cfg.Retention <= 0 {
		cfg.Retention = DefaultRetention
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}
	if cfg.ThumbnailSize <= 0 {
		cfg.ThumbnailSize = DefaultThumbnailSize
	}
	if cfg.LogFormat != "json" {
		cfg.LogFormat = "console"
	}

	home, _ := os.UserHomeDir()
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = filepath.Join(home, ".drawer.db")
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = filepath.Join(home, ".drawer_token")
	}
}
