package config

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"4000"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DataDir string `envconfig:"DATA_DIR" default:"data"`

	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"docrecall-uploads"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`

	// Periodic snapshot backups to S3; 0 disables them.
	BackupIntervalMinutes int `envconfig:"BACKUP_INTERVAL_MINUTES" default:"0"`

	SentryDSN         string  `envconfig:"SENTRY_DSN"`
	SentryEnvironment string  `envconfig:"SENTRY_ENVIRONMENT"`
	SentrySampleRate  float64 `envconfig:"SENTRY_TRACES_SAMPLE_RATE" default:"1.0"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("DOCRECALL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// SnapshotPath is where the JSON document snapshot lives.
func (c *Config) SnapshotPath() string {
	return filepath.Join(c.DataDir, "docrecall-db.json")
}

// UploadsDir is where raw upload bytes land when S3 is not configured.
func (c *Config) UploadsDir() string {
	return filepath.Join(c.DataDir, "uploads")
}
