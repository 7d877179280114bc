package config

import (
	"os"
	"regexp"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default endpoints and models per coordinator provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"

	geminiBaseURL     = "https://generativelanguage.googleapis.com/v1beta/openai/"
	openRouterBaseURL = "https://openrouter.ai/api/v1"

	defaultGeminiModel     = "gemini-2.0-flash"
	defaultOpenRouterModel = "deepseek/deepseek-chat-v3-0324:free"
)

// envVarPattern matches ${VAR_NAME} references in config values.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable
// values. Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

// expandSensitiveFields resolves environment references in credential
// fields so secrets can be stored as ${ENV_VAR} instead of plaintext.
func expandSensitiveFields(cfg *Config) {
	cfg.Coordinator.APIKey = expandEnvVars(cfg.Coordinator.APIKey)
	cfg.Weather.APIKey = expandEnvVars(cfg.Weather.APIKey)
	cfg.News.APIKey = expandEnvVars(cfg.News.APIKey)
	cfg.Email.Address = expandEnvVars(cfg.Email.Address)
	cfg.Email.Password = expandEnvVars(cfg.Email.Password)
	cfg.Telegram.Token = expandEnvVars(cfg.Telegram.Token)
}

// Load reads the optional config file, merges .env and environment
// values, and returns a fully defaulted Config. A missing file is not
// an error; a missing credential surfaces later as a handler-level
// configuration failure, never as a startup crash.
func Load(path string) (Config, error) {
	// Best-effort .env, matching the original deployment style.
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	} else if !os.IsNotExist(err) {
		return cfg, err
	}

	applyEnvOverrides(&cfg)
	expandSensitiveFields(&cfg)
	applyDefaults(&cfg)
	return cfg, nil
}

// applyDefaults fills zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Coordinator.Provider == "" {
		cfg.Coordinator.Provider = ProviderGemini
	}
	if cfg.Coordinator.Model == "" {
		switch cfg.Coordinator.Provider {
		case ProviderOpenRouter:
			cfg.Coordinator.Model = defaultOpenRouterModel
		default:
			cfg.Coordinator.Model = defaultGeminiModel
		}
	}
	if cfg.Coordinator.BaseURL == "" {
		switch cfg.Coordinator.Provider {
		case ProviderOpenRouter:
			cfg.Coordinator.BaseURL = openRouterBaseURL
		default:
			cfg.Coordinator.BaseURL = geminiBaseURL
		}
	}
	if cfg.Email.SMTPHost == "" {
		cfg.Email.SMTPHost = "smtp.gmail.com"
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Style == "" {
		cfg.Logging.Style = "pretty"
	}
}

// applyEnvOverrides reads the well-known environment variables and
// overrides config values when set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MADADGAR_PROVIDER"); v != "" {
		cfg.Coordinator.Provider = v
	}
	if v := os.Getenv("MADADGAR_MODEL"); v != "" {
		cfg.Coordinator.Model = v
	}
	if v := os.Getenv("MADADGAR_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Provider key: OPEN_ROUTER_API_KEY wins for openrouter, otherwise
	// the Gemini key used by the default provider.
	if cfg.Coordinator.APIKey == "" {
		if cfg.Coordinator.Provider == ProviderOpenRouter {
			cfg.Coordinator.APIKey = os.Getenv("OPEN_ROUTER_API_KEY")
		} else {
			cfg.Coordinator.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	if v := os.Getenv("WEATHER_API_KEY"); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		cfg.News.APIKey = v
	}
	if v := os.Getenv("EMAIL_ADDRESS"); v != "" {
		cfg.Email.Address = v
	}
	if v := os.Getenv("EMAIL_PASSWORD"); v != "" {
		cfg.Email.Password = v
	}
	if v := os.Getenv("SMTP_SERVER"); v != "" {
		cfg.Email.SMTPHost = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Email.SMTPPort = port
		}
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
}
