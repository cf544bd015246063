package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/quocvuong92/nova/internal/constants"
)

// Config file names, checked in this order within each directory
const (
	ConfigFileName     = "config.yaml"
	ConfigFileNameTOML = "config.toml"
)

// FileConfig represents the configuration file structure
type FileConfig struct {
	// Backend selection: "ollama", "gemini", "openai"
	Backend string `yaml:"backend,omitempty" toml:"backend,omitempty"`

	// Model used when the backend section does not name one
	Model string `yaml:"model,omitempty" toml:"model,omitempty"`

	Ollama *BackendConfig `yaml:"ollama,omitempty" toml:"ollama,omitempty"`
	Gemini *BackendConfig `yaml:"gemini,omitempty" toml:"gemini,omitempty"`
	OpenAI *BackendConfig `yaml:"openai,omitempty" toml:"openai,omitempty"`

	Defaults *DefaultsConfig `yaml:"defaults,omitempty" toml:"defaults,omitempty"`
}

// BackendConfig holds per-backend settings
type BackendConfig struct {
	Endpoint string `yaml:"endpoint,omitempty" toml:"endpoint,omitempty"`
	Model    string `yaml:"model,omitempty" toml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty" toml:"api_key,omitempty"`
}

// DefaultsConfig holds default flag values
type DefaultsConfig struct {
	Render bool `yaml:"render,omitempty" toml:"render,omitempty"`
}

// Section returns the settings block for a backend, never nil
func (fc *FileConfig) Section(backend string) BackendConfig {
	var b *BackendConfig
	switch backend {
	case constants.BackendOllama:
		b = fc.Ollama
	case constants.BackendGemini:
		b = fc.Gemini
	case constants.BackendOpenAI:
		b = fc.OpenAI
	}
	if b == nil {
		return BackendConfig{}
	}
	return *b
}

// GetConfigDirs returns the directories to check for config files (in order of priority)
func GetConfigDirs() []string {
	var dirs []string

	// 1. Current directory
	dirs = append(dirs, filepath.Join(".", ".nova"))

	// 2. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(configDir, "nova"))
	}

	// 3. Home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(homeDir, ".config", "nova"))
	}

	return dirs
}

// GetConfigPaths returns every candidate config file path in priority order
func GetConfigPaths() []string {
	var paths []string
	for _, dir := range GetConfigDirs() {
		paths = append(paths, filepath.Join(dir, ConfigFileName), filepath.Join(dir, ConfigFileNameTOML))
	}
	return paths
}

// LoadConfigFile loads the first config file found. A missing file is not an error;
// a file that exists but cannot be parsed is.
func LoadConfigFile() (*FileConfig, string, error) {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			cfg, err := loadConfigFromPath(path)
			if err != nil {
				return nil, "", err
			}
			return cfg, path, nil
		}
	}

	return &FileConfig{}, "", nil
}

// loadConfigFromPath loads config from a specific path, choosing the decoder by extension
func loadConfigFromPath(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

const defaultConfig = `# Nova configuration
# Location: ~/.config/nova/config.yaml
# Environment variables (NOVA_BACKEND, NOVA_LLM_URL, NOVA_MODEL, NOVA_GEMINI_API_KEY,
# NOVA_OPENAI_API_KEY) and command line flags take precedence over this file.

# Backend: "ollama", "gemini" or "openai" (default: ollama)
# backend: ollama

# ollama:
#   endpoint: http://localhost:11434/api/chat
#   model: gemma3n:e4b

# gemini:
#   model: gemini-2.0-flash
#   api_key: your-api-key

# openai:
#   endpoint: https://api.openai.com/v1/chat/completions
#   model: gpt-4o-mini
#   api_key: your-api-key

# defaults:
#   render: true
`

// CreateDefaultConfigFile creates a default config file at the user config directory
func CreateDefaultConfigFile() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine config directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	dir := filepath.Join(configDir, "nova")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
