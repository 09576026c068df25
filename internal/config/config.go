package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL  string `envconfig:"DATABASE_URL" required:"true"`
	DatabaseName string `envconfig:"DATABASE_NAME" default:"fides"`

	// Text extraction
	TextExtractor     string        `envconfig:"TEXT_EXTRACTOR" default:"mock"`
	AWSRegion         string        `envconfig:"AWS_REGION" default:"us-east-1"`
	ExtractionTimeout time.Duration `envconfig:"EXTRACTION_TIMEOUT" default:"30s"`

	// Security
	AdminJWTSecret string `envconfig:"ADMIN_JWT_SECRET" required:"true"`
	AdminJWTIssuer string `envconfig:"ADMIN_JWT_ISSUER" default:"fides-api"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
