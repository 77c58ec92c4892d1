package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	AppName     = "commission-console"
	EnvFileName = "config.env"
)

// Config holds the environment-driven settings for the console.
type Config struct {
	APIBaseURL string
	APIToken   string
	DBPath     string
	TokenKey   string
}

// LoadEnvFile loads environment variables from the config file in the user's
// config directory. Errors are ignored since the file may not exist.
func LoadEnvFile() {
	configBase, err := os.UserConfigDir()
	if err != nil {
		return
	}
	configPath := filepath.Join(configBase, AppName, EnvFileName)
	_ = godotenv.Load(configPath)
}

// FromEnv reads the configuration from environment variables, applying
// defaults for optional settings.
func FromEnv() Config {
	cfg := Config{
		APIBaseURL: os.Getenv("CONSOLE_API_BASE_URL"),
		APIToken:   os.Getenv("CONSOLE_API_TOKEN"),
		DBPath:     os.Getenv("CONSOLE_DB_PATH"),
		TokenKey:   os.Getenv("CONSOLE_TOKEN_KEY"),
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "prefs.db"
	}
	return cfg
}

// Missing returns the names of required settings that are not set.
func (c Config) Missing() []string {
	var missing []string
	if c.APIBaseURL == "" {
		missing = append(missing, "CONSOLE_API_BASE_URL")
	}
	if c.TokenKey == "" {
		missing = append(missing, "CONSOLE_TOKEN_KEY")
	}
	return missing
}
