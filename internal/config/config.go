package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/Vileyy/admin-halora-app/internal/logger"
)

const (
	StoreFirebase = "firebase"
	StoreMongo    = "mongo"
	StoreMemory   = "memory"
)

type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	Name     string `env:"DB_NAME" envDefault:"postgres"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// DSN builds the postgres connection string.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

// StoreConfig selects and configures the document store holding storefront data.
type StoreConfig struct {
	Driver       string        `env:"STORE_DRIVER" envDefault:"firebase"`
	PollInterval time.Duration `env:"STORE_POLL_INTERVAL" envDefault:"5s"`

	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`
	FirebaseDatabaseURL     string `env:"FIREBASE_DATABASE_URL"`
	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"`

	MongoURI    string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDBName string `env:"MONGO_DB_NAME" envDefault:"halora"`
}

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`

	JWTSecret       string        `env:"JWT_SECRET"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:8081,http://localhost:19006"`
	Timezone    string   `env:"TIMEZONE" envDefault:"Asia/Ho_Chi_Minh"`

	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	Database DatabaseConfig
	Store    StoreConfig
	Log      logger.Config
}

// Load reads the optional env files and parses the environment into a Config.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{"configs/.env"}
	}
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		if c.GinMode == "release" {
			return errors.New("JWT_SECRET is required in release mode")
		}
		c.JWTSecret = "default_super_secret_key"
	}

	switch c.Store.Driver {
	case StoreFirebase:
		if c.Store.FirebaseDatabaseURL == "" {
			return errors.New("FIREBASE_DATABASE_URL is required for the firebase store")
		}
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.Store.PollInterval <= 0 {
		return errors.New("STORE_POLL_INTERVAL must be positive")
	}
	return nil
}

// Location resolves the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
