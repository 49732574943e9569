package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Storefront StorefrontConfig `mapstructure:"storefront"`
	Templates  TemplatesConfig  `mapstructure:"templates"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            int      `mapstructure:"port"`
	Host            string   `mapstructure:"host"`
	Site            string   `mapstructure:"site"`
	Languages       []string `mapstructure:"languages"`
	DefaultLanguage string   `mapstructure:"default_language"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// StorefrontConfig holds the storefront settings used when Redis has none
type StorefrontConfig struct {
	Name              string `mapstructure:"name"`
	Catalog           string `mapstructure:"catalog"`
	GiftCardPageLink  string `mapstructure:"gift_card_page_link"`
	GiftCardProductID string `mapstructure:"gift_card_product_id"`
}

// TemplatesConfig holds the ids of the page templates catalog pages inherit from
type TemplatesConfig struct {
	CategoryPageID string `mapstructure:"category_page_id"`
	ProductPageID  string `mapstructure:"product_page_id"`
}

// CatalogConfig holds catalog search backend configuration
type CatalogConfig struct {
	BaseURL              string `mapstructure:"base_url"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRetries           int    `mapstructure:"max_retries"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
	Proxy                string `mapstructure:"proxy"`
	CircuitBreakerDelay  int    `mapstructure:"circuit_breaker_delay"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// DSN returns the pgx connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	Database  int    `mapstructure:"database"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Load loads config.yaml from the current directory with environment variable overrides
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom loads config.yaml from dir with environment variable overrides
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config.yaml file not found in %s", dir)
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the settings the resolution step cannot run without
func (c *Config) Validate() error {
	if c.Templates.CategoryPageID == "" || c.Templates.ProductPageID == "" {
		return fmt.Errorf("templates.category_page_id and templates.product_page_id are required")
	}
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog.base_url is required")
	}
	if c.Server.DefaultLanguage == "" {
		return fmt.Errorf("server.default_language is required")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.site", "storefront")
	v.SetDefault("server.languages", []string{"en"})
	v.SetDefault("server.default_language", "en")
	v.SetDefault("server.shutdown_timeout", 10)

	v.SetDefault("log.level", "info")

	v.SetDefault("storefront.name", "storefront")
	v.SetDefault("storefront.catalog", "Habitat_Master")
	v.SetDefault("storefront.gift_card_page_link", "")
	v.SetDefault("storefront.gift_card_product_id", "")

	v.SetDefault("templates.category_page_id", "{4C1A3E5B-7D9F-4B2A-8C6E-0D1F2A3B4C5D}")
	v.SetDefault("templates.product_page_id", "{9E8D7C6B-5A4F-4E3D-8C2B-1A0F9E8D7C6B}")

	v.SetDefault("catalog.base_url", "http://localhost:9200")
	v.SetDefault("catalog.timeout", 10)
	v.SetDefault("catalog.max_retries", 0)
	v.SetDefault("catalog.max_requests_per_second", 100)
	v.SetDefault("catalog.proxy", "")
	v.SetDefault("catalog.circuit_breaker_delay", 60)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "storefront")
	v.SetDefault("database.user", "storefront_user")
	v.SetDefault("database.password", "storefront_pass")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.key_prefix", "storefront:")
}
