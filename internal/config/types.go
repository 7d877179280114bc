// Package config loads the process-wide assistant configuration from a
// YAML file, a .env file, and environment variables. The resulting
// Config is built once at startup and passed by reference to every
// component; nothing reads the environment after initialization.
package config

// Config is the root configuration for madadgar.
type Config struct {
	Coordinator CoordinatorConfig `yaml:"coordinator,omitempty"`
	Weather     WeatherConfig     `yaml:"weather,omitempty"`
	News        NewsConfig        `yaml:"news,omitempty"`
	Email       EmailConfig       `yaml:"email,omitempty"`
	Telegram    TelegramConfig    `yaml:"telegram,omitempty"`
	Logging     LoggingConfig     `yaml:"logging,omitempty"`
}

// CoordinatorConfig selects the reasoning model the assistant delegates to.
type CoordinatorConfig struct {
	Provider string `yaml:"provider,omitempty"` // "gemini" | "openrouter"
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"apiKey,omitempty"`
	BaseURL  string `yaml:"baseUrl,omitempty"` // override; defaults derived from provider
}

// WeatherConfig holds OpenWeatherMap credentials.
type WeatherConfig struct {
	APIKey string `yaml:"apiKey,omitempty"`
}

// NewsConfig holds NewsData.io credentials.
type NewsConfig struct {
	APIKey string `yaml:"apiKey,omitempty"`
}

// EmailConfig holds the SMTP submission account. Host and port have
// Gmail defaults; address and password must come from the environment.
type EmailConfig struct {
	Address  string `yaml:"address,omitempty"`
	Password string `yaml:"password,omitempty"`
	SMTPHost string `yaml:"smtpHost,omitempty"`
	SMTPPort int    `yaml:"smtpPort,omitempty"`
}

// TelegramConfig enables the Telegram user surface when a token is set.
type TelegramConfig struct {
	Token string `yaml:"token,omitempty"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	Style string `yaml:"style,omitempty"` // "pretty" | "json"
}
