package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is everything loaded from ~/.config/biodish/.
type Config struct {
	Provider string // "googleai" (default) or "bedrock"
	Model    string // provider model override
	APIKey   string // GoogleAI key; GEMINI_API_KEY env wins over the file

	Language     string // default display language code
	StoreBackend string // "sqlite" (default) or "file"
	StorePath    string // db file (sqlite) or directory (file)

	GenerateTimeout  time.Duration
	TranslateTimeout time.Duration

	Persona string // persona prompt override, from persona_prompt.txt

	Bedrock  BedrockSettings
	Identity IdentitySettings
}

// BedrockSettings mirrors the [bedrock] table.
type BedrockSettings struct {
	Region          string `toml:"region"`
	ModelID         string `toml:"model_id"`
	Profile         string `toml:"profile"`
	AccessKeyID     string `toml:"access_key_id"`
	SecretAccessKey string `toml:"secret_access_key"`
}

// IdentitySettings mirrors the [identity] table.
type IdentitySettings struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

type tomlConfig struct {
	Provider          string           `toml:"provider"`
	Model             string           `toml:"model"`
	APIKey            string           `toml:"api_key"`
	Language          string           `toml:"language"`
	Store             string           `toml:"store"`
	StorePath         string           `toml:"store_path"`
	GenerateTimeoutS  int              `toml:"generate_timeout_seconds"`
	TranslateTimeoutS int              `toml:"translate_timeout_seconds"`
	Bedrock           BedrockSettings  `toml:"bedrock"`
	Identity          IdentitySettings `toml:"identity"`
}

// Dir returns the config directory, ~/.config/biodish.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "biodish")
}

// Load reads config from ~/.config/biodish/
func Load() (*Config, error) {
	cfg := &Config{
		Provider:         "googleai",
		StoreBackend:     "sqlite",
		StorePath:        filepath.Join(Dir(), "biodish.db"),
		GenerateTimeout:  2 * time.Minute,
		TranslateTimeout: 30 * time.Second,
	}

	configDir := Dir()
	tomlPath := filepath.Join(configDir, "config.toml")
	personaPath := filepath.Join(configDir, "persona_prompt.txt")

	// Load TOML config if it exists
	if _, err := os.Stat(tomlPath); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(tomlPath, &tc); err == nil {
			if tc.Provider != "" {
				cfg.Provider = tc.Provider
			}
			cfg.Model = tc.Model
			cfg.APIKey = tc.APIKey
			cfg.Language = tc.Language
			if tc.Store != "" {
				cfg.StoreBackend = tc.Store
			}
			if tc.StorePath != "" {
				cfg.StorePath = tc.StorePath
			}
			if tc.GenerateTimeoutS > 0 {
				cfg.GenerateTimeout = time.Duration(tc.GenerateTimeoutS) * time.Second
			}
			if tc.TranslateTimeoutS > 0 {
				cfg.TranslateTimeout = time.Duration(tc.TranslateTimeoutS) * time.Second
			}
			cfg.Bedrock = tc.Bedrock
			cfg.Identity = tc.Identity
		}
	}

	// Environment wins for the API key
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.APIKey = key
	}

	// If a custom persona exists, use it
	if data, err := os.ReadFile(personaPath); err == nil {
		cfg.Persona = string(data)
	}

	return cfg, nil
}
