package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// MinSecretLength is the shortest signing secret accepted without a warning.
const MinSecretLength = 32

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT     JWTConfig
	Auth    AuthConfig
	HTTP    HTTPConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Storage StorageConfig
}

type JWTConfig struct {
	Secret string `env:"JWT_SECRET, required"`
	// TTL of zero issues tokens without an exp claim.
	TTL time.Duration `env:"JWT_TTL, default=0s"`
}

type AuthConfig struct {
	BcryptCost int `env:"BCRYPT_COST, default=10"`
	// ExposePasswordHash reproduces the legacy register response that echoes
	// the stored hash back to the client.
	ExposePasswordHash bool          `env:"AUTH_EXPOSE_PASSWORD_HASH, default=false"`
	RateLimit          int           `env:"AUTH_RATE_LIMIT,           default=0"`
	RateWindow         time.Duration `env:"AUTH_RATE_WINDOW,          default=1m"`
}

type HTTPConfig struct {
	BodyLimit       string        `env:"HTTP_BODY_LIMIT,       default=30M"`
	CORSOrigins     []string      `env:"CORS_ORIGINS,          default=*"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT, default=10s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URL, required"`
	Database string `env:"MONGO_DB,  default=sociopedia"`
}

// RedisConfig with an empty Addr disables Redis and the auth rate limiter.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type StorageConfig struct {
	Driver    string `env:"STORAGE_DRIVER, default=local"`
	AssetsDir string `env:"ASSETS_DIR,     default=public/assets"`

	S3Bucket       string `env:"S3_BUCKET"`
	S3Region       string `env:"S3_REGION,      default=us-east-1"`
	S3Endpoint     string `env:"S3_ENDPOINT"`
	S3AccessKey    string `env:"S3_ACCESS_KEY"`
	S3SecretKey    string `env:"S3_SECRET_KEY"`
	S3PublicURL    string `env:"S3_PUBLIC_URL"`
	S3UsePathStyle bool   `env:"S3_USE_PATH_STYLE, default=false"`
}

// IsDevelopment reports whether human-friendly output should be used.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development") || strings.EqualFold(c.Env, "dev")
}

// WeakSecret reports whether the signing secret is shorter than MinSecretLength.
func (c *Config) WeakSecret() bool {
	return len(c.JWT.Secret) < MinSecretLength
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom builds a Config from the given lookuper and validates it.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.S3Bucket == "" {
			return errors.New("S3_BUCKET is required when STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Auth.RateLimit < 0 {
		return errors.New("AUTH_RATE_LIMIT must not be negative")
	}
	if c.JWT.TTL < 0 {
		return errors.New("JWT_TTL must not be negative")
	}
	return nil
}
