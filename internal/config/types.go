package config

// Config holds all configuration for the application.
type Config struct {
	DBName      string
	Turso       TursoConfig
	Slack       SlackConfig
	MetricsAddr string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}
