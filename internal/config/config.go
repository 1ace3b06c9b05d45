package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Mode         string   `mapstructure:"mode"`
	Port         int      `mapstructure:"port"`
	DatabasePath string   `mapstructure:"database_path"`
	SeedPath     string   `mapstructure:"seed_path"`
	Secret       string   `mapstructure:"secret"`
	ReadLimit    int64    `mapstructure:"read_limit"`
	SendBuffer   int      `mapstructure:"send_buffer"`
	CorsOrigins  []string `mapstructure:"cors_origins"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("database_path", "bitefinder.db")
	v.SetDefault("seed_path", "data/restaurants.json")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("send_buffer", 32)

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("⚠️ Config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("✅ Loaded config: %s\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
