package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config contains runtime settings for the CLI and the MCP server
type Config struct {
	LogLevel  string
	LogFormat string // json or console
	Host      string // default 0.0.0.0
	Port      string // default PORT env or 8080

	SourceStack struct {
		APIKey  string
		BaseURL string
		Timeout time.Duration
	}

	// Neo4j is optional; when URI is empty results are not recorded
	Neo4j struct {
		URI      string
		Username string
		Password string
	}

	// Sheets is optional; when CredentialsPath is empty statistics are not exported
	Sheets struct {
		CredentialsPath string
	}
}

// Load populates config from environment variables
func Load() (Config, error) {
	cfg := Config{
		LogLevel:  "info",
		LogFormat: "json",
		Host:      "0.0.0.0",
		Port:      "8080",
	}
	cfg.SourceStack.Timeout = 30 * time.Second

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	if v := os.Getenv("MCP_HOST"); v != "" {
		cfg.Host = v
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	cfg.SourceStack.APIKey = os.Getenv("SOURCESTACK_API_KEY")
	cfg.SourceStack.BaseURL = os.Getenv("SOURCESTACK_BASE_URL")
	if v := os.Getenv("SOURCESTACK_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("SOURCESTACK_TIMEOUT must be a positive duration, got %q", v)
		}
		cfg.SourceStack.Timeout = d
	}

	cfg.Neo4j.URI = os.Getenv("NEO4J_URI")
	cfg.Neo4j.Username = os.Getenv("NEO4J_USERNAME")
	cfg.Neo4j.Password = os.Getenv("NEO4J_PASSWORD")

	cfg.Sheets.CredentialsPath = os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH")

	// Neo4j is all-or-none
	if cfg.Neo4j.URI != "" || cfg.Neo4j.Username != "" || cfg.Neo4j.Password != "" {
		var missingVars []string

		if cfg.Neo4j.URI == "" {
			missingVars = append(missingVars, "NEO4J_URI")
		}

		if cfg.Neo4j.Username == "" {
			missingVars = append(missingVars, "NEO4J_USERNAME")
		}

		if cfg.Neo4j.Password == "" {
			missingVars = append(missingVars, "NEO4J_PASSWORD")
		}

		if len(missingVars) > 0 {
			return cfg, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
		}
	}

	return cfg, nil
}

// Neo4jEnabled reports whether a result recorder can be built
func (c Config) Neo4jEnabled() bool {
	return c.Neo4j.URI != ""
}

// SheetsEnabled reports whether a statistics exporter can be built
func (c Config) SheetsEnabled() bool {
	return c.Sheets.CredentialsPath != ""
}
