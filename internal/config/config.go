package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Pricing  PricingConfig  `yaml:"pricing"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type PricingConfig struct {
	// DefaultCurrency applies to restaurants created without one.
	DefaultCurrency string `yaml:"default_currency"`
	// ScaleAdditionalPriceByMenuQuantity switches the fixed-price menu
	// surcharge between once-per-line and once-per-menu-ordered. Pending
	// a product decision, both behaviors are supported.
	ScaleAdditionalPriceByMenuQuantity bool `yaml:"scale_additional_price_by_menu_quantity"`
}

// Load reads the YAML config file, then lets environment variables override
// credentials. A .env file in the working directory is honored when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	overrideString(&cfg.Database.Host, "DB_HOST")
	overrideInt(&cfg.Database.Port, "DB_PORT")
	overrideString(&cfg.Database.User, "DB_USER")
	overrideString(&cfg.Database.Password, "DB_PASSWORD")
	overrideString(&cfg.Database.Database, "DB_NAME")
	overrideString(&cfg.RabbitMQ.Host, "RABBITMQ_HOST")
	overrideInt(&cfg.RabbitMQ.Port, "RABBITMQ_PORT")
	overrideString(&cfg.RabbitMQ.User, "RABBITMQ_USER")
	overrideString(&cfg.RabbitMQ.Password, "RABBITMQ_PASSWORD")

	if cfg.Pricing.DefaultCurrency == "" {
		cfg.Pricing.DefaultCurrency = "EUR"
	}

	return &cfg, nil
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
