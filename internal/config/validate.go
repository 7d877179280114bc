package config

import (
	"fmt"
	"slices"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid. Missing
// credentials are deliberately not issues here — each handler reports
// its own configuration failure at call time.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	validProviders := []string{ProviderGemini, ProviderOpenRouter}
	if cfg.Coordinator.Provider != "" && !slices.Contains(validProviders, cfg.Coordinator.Provider) {
		issues = append(issues, ValidationIssue{
			Path:    "coordinator.provider",
			Message: fmt.Sprintf("must be one of %v, got %q", validProviders, cfg.Coordinator.Provider),
		})
	}

	if cfg.Email.SMTPPort < 0 || cfg.Email.SMTPPort > 65535 {
		issues = append(issues, ValidationIssue{
			Path:    "email.smtpPort",
			Message: fmt.Sprintf("port must be 0-65535, got %d", cfg.Email.SMTPPort),
		})
	}

	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	validStyles := []string{"pretty", "json"}
	if cfg.Logging.Style != "" && !slices.Contains(validStyles, cfg.Logging.Style) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.style",
			Message: fmt.Sprintf("must be one of %v, got %q", validStyles, cfg.Logging.Style),
		})
	}

	return issues
}
