package main

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	Version     string `mapstructure:"VERSION"`

	DB struct {
		URI  string `mapstructure:"MONGODB_URI"`
		Name string `mapstructure:"MONGODB_DB"`
	} `mapstructure:",squash"`

	Secret   string        `mapstructure:"SECRET"`
	TokenTTL time.Duration `mapstructure:"TOKEN_TTL"`

	TrustedOrigins []string `mapstructure:"TRUSTED_ORIGINS"`
	StaticDir      string   `mapstructure:"STATIC_DIR"`

	RateLimitEnabled bool    `mapstructure:"RATE_LIMIT_ENABLED"`
	RateLimitRPS     float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst   int     `mapstructure:"RATE_LIMIT_BURST"`

	TLSCertFile string `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile  string `mapstructure:"TLS_KEY_FILE"`
}

var defaults = map[string]any{
	"PORT":               ":3003",
	"ENVIRONMENT":        "development",
	"VERSION":            "",
	"MONGODB_URI":        "",
	"MONGODB_DB":         "bloglist",
	"SECRET":             "",
	"TOKEN_TTL":          "1h",
	"TRUSTED_ORIGINS":    []string{"*"},
	"STATIC_DIR":         "dist",
	"RATE_LIMIT_ENABLED": false,
	"RATE_LIMIT_RPS":     5.0,
	"RATE_LIMIT_BURST":   20,
	"TLS_CERT_FILE":      "",
	"TLS_KEY_FILE":       "",
}

// loadConfig reads path as a dotenv file when it exists. Environment
// variables always win over the file.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.DB.URI == "" {
		return nil, errors.New("MONGODB_URI must be set")
	}
	if config.Secret == "" {
		return nil, errors.New("SECRET must be set")
	}

	return &config, nil
}
