// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config maps OS environment variables into strongly-typed settings.

It leverages 'caarlos0/env' for parsing and 'joho/godotenv' to seed the process
environment from an optional .env file first. Variables already present in the
environment always win over the file.

Two entry points exist because the binaries need different subsets:

	cfg, err := config.Load()        // API server
	cfg, err := config.LoadImport()  // CSV importer
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DotEnvFile is the optional file loaded before parsing the environment.
const DotEnvFile = ".env"

// # Configuration Schema

// Logging selects the slog handler.
type Logging struct {
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Database holds the relational store settings.
type Database struct {
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
}

// ObjectStorage configures the S3-compatible bucket used to archive imported files.
// An empty endpoint disables archiving.
type ObjectStorage struct {
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3Bucket    string `env:"S3_BUCKET" envDefault:"yamdb-imports"`
	S3UseSSL    bool   `env:"S3_USE_SSL" envDefault:"false"`
}

// Enabled reports whether an object storage endpoint is configured.
func (o ObjectStorage) Enabled() bool {
	return strings.TrimSpace(o.S3Endpoint) != ""
}

// Mail configures confirmation-code delivery. An empty SMTP address logs codes instead.
type Mail struct {
	MailFrom     string `env:"MAIL_FROM" envDefault:"no-reply@yamdb.local"`
	SMTPAddr     string `env:"SMTP_ADDR"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
}

// Config holds all runtime configuration for the Yamdb API server.
type Config struct {
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	Logging
	Database
	Mail

	// Key-Value store (Redis) for confirmation codes
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// RS256 key pair used to sign access tokens
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required,notEmpty"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required,notEmpty"`

	AccessTokenTTL      time.Duration `env:"ACCESS_TOKEN_TTL"      envDefault:"24h"`
	ConfirmationCodeTTL time.Duration `env:"CONFIRMATION_CODE_TTL" envDefault:"24h"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// ImportConfig holds the settings needed by the CSV importer.
type ImportConfig struct {
	Logging
	Database
	ObjectStorage
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return cfg, nil
}

// LoadImport parses environment variables into an [ImportConfig] struct.
func LoadImport() (*ImportConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &ImportConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return cfg, nil
}

func loadDotEnv() error {
	err := godotenv.Load(DotEnvFile)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("config: failed to read %s: %w", DotEnvFile, err)
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Port returns the TCP port the HTTP server listens on.
func (c *Config) Port() string {
	return c.ServerPort
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Origins returns the configured extra CORS origins.
func (c *Config) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
