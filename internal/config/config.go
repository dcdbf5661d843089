package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort               int    `mapstructure:"APP_PORT"`
	DatabasePath          string `mapstructure:"DATABASE_PATH"`
	UpstreamURL           string `mapstructure:"UPSTREAM_URL"`
	DefaultProvider       string `mapstructure:"DEFAULT_PROVIDER"`
	RequestTimeoutSeconds int    `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	UploadMaxBytes        int64  `mapstructure:"UPLOAD_MAX_BYTES"`
	LogLevel              string `mapstructure:"LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("DATABASE_PATH", "/data/omnichat.db")
	viper.SetDefault("UPSTREAM_URL", "http://localhost:9000")
	viper.SetDefault("DEFAULT_PROVIDER", "openai")
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 60)
	viper.SetDefault("UPLOAD_MAX_BYTES", 20<<20)
	viper.SetDefault("LOG_LEVEL", "INFO")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
