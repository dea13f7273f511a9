package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the scoring engine.
type Config struct {
	AppName           string
	AppEnv            string
	DatabaseURL       string
	RedisURL          string
	OpenAIAPIKey      string
	AIModel           string
	AIMaxTokens       int
	BaselineThreshold int
	AdvancedThreshold int
	BatchItemLimit    int
}

// Load reads configuration values from environment variables and an optional
// .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SOT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "SoT Command Center")
	v.SetDefault("app.env", "development")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.max_tokens", 512)
	v.SetDefault("match.baseline_threshold", 50)
	v.SetDefault("match.advanced_threshold", 70)
	v.SetDefault("batch.item_limit", 0)

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		DatabaseURL:       v.GetString("database.url"),
		RedisURL:          v.GetString("redis.url"),
		OpenAIAPIKey:      v.GetString("openai_api_key"),
		AIModel:           v.GetString("ai.model"),
		AIMaxTokens:       v.GetInt("ai.max_tokens"),
		BaselineThreshold: v.GetInt("match.baseline_threshold"),
		AdvancedThreshold: v.GetInt("match.advanced_threshold"),
		BatchItemLimit:    v.GetInt("batch.item_limit"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided")
	}

	if cfg.BaselineThreshold < 0 || cfg.BaselineThreshold > 100 {
		return Config{}, fmt.Errorf("baseline threshold must be within [0,100]")
	}

	if cfg.AdvancedThreshold < cfg.BaselineThreshold || cfg.AdvancedThreshold > 100 {
		return Config{}, fmt.Errorf("advanced threshold must be within [baseline,100]")
	}

	if cfg.AIMaxTokens <= 0 {
		cfg.AIMaxTokens = 512
	}

	return cfg, nil
}
