// Package config loads service configuration from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all service settings.
type Config struct {
	Items  ItemsConfig
	Search SearchConfig
}

// ItemsConfig holds the DynamoDB settings of the item store.
type ItemsConfig struct {
	TableName string `envconfig:"ITEMS_TABLE_NAME" default:"items"`
}

// SearchConfig holds the OpenSearch settings of the item index.
type SearchConfig struct {
	Endpoint  string `envconfig:"SEARCH_ENDPOINT" required:"true"`
	Username  string `envconfig:"SEARCH_USERNAME" default:""`
	Password  string `envconfig:"SEARCH_PASSWORD" default:""`
	IndexName string `envconfig:"SEARCH_INDEX_NAME" default:"items"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
