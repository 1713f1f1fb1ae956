package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the full service configuration, read from the environment
type Config struct {
	HTTPAddr     string `env:"POOLLEDGER_HTTP_ADDR" envDefault:":8080"`
	SnapshotPath string `env:"POOLLEDGER_SNAPSHOT_PATH" envDefault:"data/snapshot.json"`

	LogLevel    string `env:"POOLLEDGER_LOG_LEVEL" envDefault:"info"`
	LogEncoding string `env:"POOLLEDGER_LOG_ENCODING" envDefault:"json"`

	// Mirror is the best-effort Postgres row store; disabled by default
	// so the service runs standalone on the snapshot file alone.
	MirrorEnabled bool `env:"POOLLEDGER_MIRROR_ENABLED" envDefault:"false"`
	MirrorBuffer  int  `env:"POOLLEDGER_MIRROR_BUFFER" envDefault:"256"`

	DBHost     string `env:"POOLLEDGER_DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"POOLLEDGER_DB_PORT" envDefault:"5432"`
	DBUser     string `env:"POOLLEDGER_DB_USER" envDefault:"postgres"`
	DBPassword string `env:"POOLLEDGER_DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"POOLLEDGER_DB_NAME" envDefault:"poolledger"`
	DBSSLMode  string `env:"POOLLEDGER_DB_SSLMODE" envDefault:"disable"`
}

// Load parses the configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// DBConnString builds the lib/pq connection string from the DB fields
func (c Config) DBConnString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
