package config

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and an optional .env file.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, reading from environment variables")
	}

	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	optEnv := func(key string) string {
		return os.Getenv(key)
	}

	return Config{
		DBName: getEnv("DB_NAME"),
		Turso: TursoConfig{
			PrimaryURL: optEnv("TURSO_PRIMARY_URL"),
			AuthToken:  optEnv("TURSO_AUTH_TOKEN"),
		},
		Slack: SlackConfig{
			Token:     optEnv("SLACK_BOT_TOKEN"),
			ChannelID: optEnv("SLACK_CHANNEL_ID"),
		},
		MetricsAddr: optEnv("METRICS_ADDR"),
	}
}
