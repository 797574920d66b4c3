package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Mapstructure tags are used to map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress  string `mapstructure:"SERVER_ADDRESS"`  // e.g., ":8080"
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"` // comma-separated CORS origins, "*" for any

	// LLM Configuration
	OpenRouterAPIKey string `mapstructure:"OPENROUTER_API_KEY"`  // API key for OpenRouter (or any OpenAI-compatible gateway)
	OpenRouterBase   string `mapstructure:"OPENROUTER_BASE_URL"` // e.g., "https://openrouter.ai/api/v1"
	ModelID          string `mapstructure:"MODEL_ID"`            // primary model, e.g., "openai/gpt-4o"
	FallbackModelID  string `mapstructure:"FALLBACK_MODEL_ID"`   // tried when the primary's output cannot be repaired

	// Session Configuration
	SessionTTLHours      int    `mapstructure:"SESSION_TTL_HOURS"`      // retention window, default 24
	SweepIntervalMinutes int    `mapstructure:"SWEEP_INTERVAL_MINUTES"` // expiry sweep cadence, default 10
	RedisAddr            string `mapstructure:"REDIS_ADDR"`             // when set, sessions live in Redis instead of memory

	// Diagnostics
	DumpDir string `mapstructure:"DUMP_DIR"` // when set, raw LLM output is dumped here per request

	// Webhook (optional)
	WebhookEndpoint string `mapstructure:"WEBHOOK_ENDPOINT"` // receives project lifecycle events
	WebhookAPIKey   string `mapstructure:"WEBHOOK_API_KEY"`  // bearer token for the webhook
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)     // Path to look for the config file in
	viper.SetConfigName("config") // Name of config file (without extension)
	viper.SetConfigType("yaml")

	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")
	viper.SetDefault("MODEL_ID", "openai/gpt-4o")
	viper.SetDefault("FALLBACK_MODEL_ID", "google/gemini-flash-1.5")
	viper.SetDefault("SESSION_TTL_HOURS", 24)
	viper.SetDefault("SWEEP_INTERVAL_MINUTES", 10)

	viper.AutomaticEnv() // Read environment variables that match keys

	// Attempt to read the config file
	err = viper.ReadInConfig()
	if err != nil {
		// If config file not found, log it but continue if env vars might be set
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file ('config.yaml') not found in specified path, relying solely on environment variables.")
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Printf("Using configuration file: %s", viper.ConfigFileUsed())
	}

	// Unmarshal the configuration into the Config struct
	err = viper.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if config.OpenRouterAPIKey == "" {
		log.Println("WARN: OPENROUTER_API_KEY is not set. Generation calls will fail; the default document will be substituted.")
	}

	return
}
