// Package config loads the service configuration from defaults, an optional
// config file, CATALOG_ environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/strutynskyi/movie-catalog/internal/query"
	"github.com/strutynskyi/movie-catalog/internal/storage"
)

// Environment variables prefixed with "CATALOG_" override settings, e.g.
// CATALOG_DB_DSN or CATALOG_FILTERING_ALLOWED_FIELDS=genre,rating.
const envVarPrefix = "catalog"

const (
	ImageStorePostgres = "postgres"
	ImageStoreMinio    = "minio"
)

type Config struct {
	Port             int              `mapstructure:"port"`
	Env              string           `mapstructure:"env"`
	DB               DBConfig         `mapstructure:"db"`
	Redis            RedisConfig      `mapstructure:"redis"`
	Images           ImagesConfig     `mapstructure:"images"`
	Filtering        FilteringConfig  `mapstructure:"filtering"`
	Pagination       PaginationConfig `mapstructure:"pagination"`
	CORS             CORSConfig       `mapstructure:"cors"`
	OtelCollectorUrl string           `mapstructure:"otel-collector-url"`
}

type DBConfig struct {
	DSN          string        `mapstructure:"dsn"`
	MaxOpenConns int           `mapstructure:"max-open-conns"`
	MaxIdleTime  time.Duration `mapstructure:"max-idle-time"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	MaxOpenConns int           `mapstructure:"max-open-conns"`
	MaxIdleConns int           `mapstructure:"max-idle-conns"`
	MaxIdleTime  time.Duration `mapstructure:"max-idle-time"`
	DirectorTTL  time.Duration `mapstructure:"director-ttl"`
}

type ImagesConfig struct {
	Store   string      `mapstructure:"store"`
	MaxSize int64       `mapstructure:"max-size"`
	Minio   MinioConfig `mapstructure:"minio"`
}

type MinioConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access-key-id"`
	SecretAccessKey string `mapstructure:"secret-access-key"`
	Bucket          string `mapstructure:"bucket"`
	UseSSL          bool   `mapstructure:"use-ssl"`
}

type FilteringConfig struct {
	Enabled       bool     `mapstructure:"enabled"`
	AllowedFields []string `mapstructure:"allowed-fields"`
}

type PaginationConfig struct {
	DefaultPageNumber int `mapstructure:"default-page-number"`
	DefaultPageSize   int `mapstructure:"default-page-size"`
	MaxPageSize       int `mapstructure:"max-page-size"`
}

type CORSConfig struct {
	AllowedOrigin string `mapstructure:"allowed-origin"`
}

var defaults = map[string]any{
	"port":                           8080,
	"env":                            "dev",
	"db.dsn":                         "",
	"db.max-open-conns":              25,
	"db.max-idle-time":               15 * time.Minute,
	"redis.url":                      "",
	"redis.max-open-conns":           25,
	"redis.max-idle-conns":           10,
	"redis.max-idle-time":            2 * time.Minute,
	"redis.director-ttl":             10 * time.Minute,
	"images.store":                   ImageStorePostgres,
	"images.max-size":                int64(5 << 20),
	"images.minio.endpoint":          "",
	"images.minio.access-key-id":     "",
	"images.minio.secret-access-key": "",
	"images.minio.bucket":            "movie-catalog",
	"images.minio.use-ssl":           false,
	"filtering.enabled":              true,
	"filtering.allowed-fields":       []string{"genre", "rating", "released"},
	"pagination.default-page-number": 0,
	"pagination.default-page-size":   10,
	"pagination.max-page-size":       100,
	"cors.allowed-origin":            "",
	"otel-collector-url":             "",
}

// flagKeys maps command line flag names to configuration keys.
var flagKeys = map[string]string{
	"port":                     "port",
	"env":                      "env",
	"db-dsn":                   "db.dsn",
	"db-max-open-conns":        "db.max-open-conns",
	"db-max-idle-time":         "db.max-idle-time",
	"redis-url":                "redis.url",
	"redis-max-open-conns":     "redis.max-open-conns",
	"redis-max-idle-conns":     "redis.max-idle-conns",
	"redis-max-idle-time":      "redis.max-idle-time",
	"redis-director-ttl":       "redis.director-ttl",
	"images-store":             "images.store",
	"images-max-size":          "images.max-size",
	"minio-endpoint":           "images.minio.endpoint",
	"minio-access-key-id":      "images.minio.access-key-id",
	"minio-secret-access-key":  "images.minio.secret-access-key",
	"minio-bucket":             "images.minio.bucket",
	"minio-use-ssl":            "images.minio.use-ssl",
	"filtering-enabled":        "filtering.enabled",
	"filtering-allowed-fields": "filtering.allowed-fields",
	"default-page-number":      "pagination.default-page-number",
	"default-page-size":        "pagination.default-page-size",
	"max-page-size":            "pagination.max-page-size",
	"cors-allowed-origin":      "cors.allowed-origin",
	"otel-collector-url":       "otel-collector-url",
}

// RegisterFlags adds the server flags to fs. Only flags set explicitly
// override the other sources.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Int("port", 8080, "server port")
	fs.String("env", "dev", "Environment (dev|staging|prod)")

	fs.String("db-dsn", "", "PostgreSQL DSN")
	fs.Int("db-max-open-conns", 25, "PostgreSQL max open connections")
	fs.Duration("db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	fs.String("redis-url", "", "Redis URL, the director cache is disabled when empty")
	fs.Int("redis-max-open-conns", 25, "Redis max open connections")
	fs.Int("redis-max-idle-conns", 10, "Redis max idle connections")
	fs.Duration("redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")
	fs.Duration("redis-director-ttl", 10*time.Minute, "how long director details stay cached")

	fs.String("images-store", ImageStorePostgres, "image storage backend (postgres|minio)")
	fs.Int64("images-max-size", 5<<20, "maximum accepted image size in bytes")
	fs.String("minio-endpoint", "", "MinIO endpoint")
	fs.String("minio-access-key-id", "", "MinIO access key")
	fs.String("minio-secret-access-key", "", "MinIO secret key")
	fs.String("minio-bucket", "movie-catalog", "MinIO bucket for images")
	fs.Bool("minio-use-ssl", false, "connect to MinIO over TLS")

	fs.Bool("filtering-enabled", true, "apply movie filters")
	fs.StringSlice("filtering-allowed-fields", []string{"genre", "rating", "released"}, "movie fields that may be filtered on")
	fs.Int("default-page-number", 0, "page returned when pageNo is missing")
	fs.Int("default-page-size", 10, "page size used when pageSize is missing")
	fs.Int("max-page-size", 100, "largest page size served")

	fs.String("cors-allowed-origin", "", "Access-Control-Allow-Origin header value")
	fs.String("otel-collector-url", "", "OpenTelemetry collector gRPC endpoint")
}

// Load builds the configuration. configFile and fs are optional.
func Load(configFile string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)

		err := v.ReadInConfig()
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envVarPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			flag := fs.Lookup(name)
			if flag == nil || !flag.Changed {
				continue
			}

			err := v.BindPFlag(key, flag)
			if err != nil {
				return Config{}, err
			}
		}
	}

	var cfg Config

	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.Filtering.AllowedFields = normalizeFields(cfg.Filtering.AllowedFields)

	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func normalizeFields(fields []string) []string {
	normalized := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			normalized = append(normalized, f)
		}
	}

	return normalized
}

// Validate reports every inconsistent setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be between 1 and 65535, got %d", c.Port))
	}

	p := c.Pagination
	if p.DefaultPageNumber < 0 {
		errs = append(errs, errors.New("pagination.default-page-number must not be negative"))
	}
	if p.MaxPageSize < 1 {
		errs = append(errs, errors.New("pagination.max-page-size must be positive"))
	}
	if p.DefaultPageSize < 1 || p.DefaultPageSize > p.MaxPageSize {
		errs = append(errs, fmt.Errorf("pagination.default-page-size must be between 1 and %d", p.MaxPageSize))
	}

	for _, f := range c.Filtering.AllowedFields {
		_, err := query.ParseField(f)
		if err != nil {
			errs = append(errs, fmt.Errorf("filtering.allowed-fields: %w", err))
		}
	}

	if c.Images.MaxSize < 1 {
		errs = append(errs, errors.New("images.max-size must be positive"))
	}

	switch c.Images.Store {
	case ImageStorePostgres:
	case ImageStoreMinio:
		if c.Images.Minio.Endpoint == "" || c.Images.Minio.Bucket == "" {
			errs = append(errs, errors.New("images.minio.endpoint and images.minio.bucket are required for the minio store"))
		}
	default:
		errs = append(errs, fmt.Errorf("images.store must be %q or %q, got %q", ImageStorePostgres, ImageStoreMinio, c.Images.Store))
	}

	return errors.Join(errs...)
}

func (c Config) PaginationConfig() query.PaginationConfig {
	return query.PaginationConfig{
		DefaultPageNumber: c.Pagination.DefaultPageNumber,
		DefaultPageSize:   c.Pagination.DefaultPageSize,
		MaxPageSize:       c.Pagination.MaxPageSize,
	}
}

func (c Config) MinioConfig() storage.Config {
	return storage.Config{
		Endpoint:        c.Images.Minio.Endpoint,
		AccessKeyID:     c.Images.Minio.AccessKeyID,
		SecretAccessKey: c.Images.Minio.SecretAccessKey,
		Bucket:          c.Images.Minio.Bucket,
		UseSSL:          c.Images.Minio.UseSSL,
	}
}
