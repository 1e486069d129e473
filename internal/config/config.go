package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Origin of the trending page and of entry links
	BaseURL string

	// Web server
	Port               int
	OpenBrowser        bool
	CORSAllowedOrigins []string

	// Logging
	LogLevel string

	// Terminal output
	NoColor bool
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		BaseURL:            strings.TrimRight(getEnv("GITHUB_BASE_URL", "https://github.com"), "/"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		NoColor:            os.Getenv("NO_COLOR") != "",
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	cfg.Port = port

	cfg.OpenBrowser, err = strconv.ParseBool(getEnv("OPEN_BROWSER", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid OPEN_BROWSER: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration every command needs.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("GITHUB_BASE_URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid GITHUB_BASE_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid GITHUB_BASE_URL: %q must be an absolute http(s) URL", c.BaseURL)
	}
	return nil
}

// ValidateForServe checks configuration needed for the web server.
func (c *Config) ValidateForServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d (must be 1-65535)", c.Port)
	}
	return nil
}

// Addr returns the listen address for the web server.
func (c *Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
