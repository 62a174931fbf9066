package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the process settings read from the environment
type Config struct {
	// Discord bot token
	DiscordToken string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Redis connection
	RedisAddr     string
	RedisPassword string

	// RulesFile is the HCL file the rule sets are loaded from
	RulesFile string

	// LogLevel is one of debug, info, warn or error
	LogLevel string
}

// Load reads the configuration from the environment, loading .env first if present
func Load() *Config {
	// Non-fatal if missing
	_ = godotenv.Load()

	return &Config{
		DiscordToken:  os.Getenv("DISCORD_TOKEN"),
		ApplicationID: os.Getenv("APPLICATION_ID"),
		GuildID:       os.Getenv("GUILD_ID"),
		RedisAddr:     getEnvDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RulesFile:     getEnvDefault("RULES_FILE", "rules.hcl"),
		LogLevel:      getEnvDefault("LOG_LEVEL", "info"),
	}
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
