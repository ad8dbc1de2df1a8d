package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jafarshop/variantapi/internal/domain"
	apperrors "github.com/jafarshop/variantapi/pkg/errors"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Shopify     ShopifyConfig
	Provision   ProvisionConfig
}

type ShopifyConfig struct {
	ShopDomain  string
	AccessToken string
	APIVersion  string
	Timeout     time.Duration
}

// ProvisionConfig controls how the custom variant is provisioned.
type ProvisionConfig struct {
	// Mode picks the option-resolution strategy. The two historical flows
	// produce materially different product schemas, so this is an explicit
	// choice, never a silent default to one or the other.
	Mode domain.ResolutionMode
	// CustomOptionName is the option label used by add-option mode.
	CustomOptionName string
	// SetDeletableMetafield enables the best-effort custom.is_deletable
	// metafield on the new variant.
	SetDeletableMetafield bool
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SHOPIFY_API_VERSION", "2024-07")
	viper.SetDefault("RESOLUTION_MODE", string(domain.ResolutionModeAugment))

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	mode, err := domain.ParseResolutionMode(getEnvOrViper("RESOLUTION_MODE", string(domain.ResolutionModeAugment)))
	if err != nil {
		return nil, fmt.Errorf("RESOLUTION_MODE: %w", err)
	}

	timeout, err := parseTimeout(getEnvOrViper("SHOPIFY_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("SHOPIFY_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "3000"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Shopify: ShopifyConfig{
			ShopDomain:  strings.TrimSpace(getEnvOrViper("SHOPIFY_SHOP_DOMAIN", "")),
			AccessToken: strings.TrimSpace(getEnvOrViper("SHOPIFY_ACCESS_TOKEN", "")),
			APIVersion:  getEnvOrViper("SHOPIFY_API_VERSION", "2024-07"),
			Timeout:     timeout,
		},
		Provision: ProvisionConfig{
			Mode:                  mode,
			CustomOptionName:      getEnvOrViper("CUSTOM_OPTION_NAME", "Custom"),
			SetDeletableMetafield: parseBool(getEnvOrViper("SET_DELETABLE_METAFIELD", "true")),
		},
	}

	// Validate required fields before anything reaches the network
	if cfg.Shopify.ShopDomain == "" {
		return nil, &apperrors.ErrConfiguration{Missing: "SHOPIFY_SHOP_DOMAIN"}
	}
	if cfg.Shopify.AccessToken == "" {
		return nil, &apperrors.ErrConfiguration{Missing: "SHOPIFY_ACCESS_TOKEN"}
	}

	return cfg, nil
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", d)
	}
	return d, nil
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
