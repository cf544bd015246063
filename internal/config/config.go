// Package config builds the process-wide configuration from flags,
// environment variables, an optional config file and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/quocvuong92/nova/internal/constants"
)

// Environment variable names
const (
	EnvBackend      = "NOVA_BACKEND"
	EnvEndpoint     = "NOVA_LLM_URL" // applies to whichever backend is active
	EnvModel        = "NOVA_MODEL"
	EnvGeminiAPIKey = "NOVA_GEMINI_API_KEY"
	EnvOpenAIAPIKey = "NOVA_OPENAI_API_KEY"
)

// Errors
var (
	ErrUnknownBackend     = errors.New("unknown backend")
	ErrGeminiKeyNotFound  = errors.New("Gemini API key not found. Set NOVA_GEMINI_API_KEY environment variable")
	ErrOpenAIKeyNotFound  = errors.New("OpenAI API key not found. Set NOVA_OPENAI_API_KEY environment variable")
	ErrEndpointNotAllowed = errors.New("endpoint must be an http(s) URL")
)

// Config holds the resolved application configuration.
// It is built once by Load and passed by value afterwards.
type Config struct {
	Backend  string // "ollama", "gemini" or "openai"
	Endpoint string // empty means the backend default (Gemini uses the SDK default)
	Model    string
	APIKey   string // credential for the active backend, if it needs one

	// Debug enables HTTP request/response logging
	Debug bool
	// Render enables markdown rendering in chat mode
	Render bool

	// Path of the config file that was applied, empty if none
	FilePath string
}

// Overrides carries values supplied on the command line.
// Empty strings mean "not set".
type Overrides struct {
	Backend  string
	Endpoint string
	Model    string
	Debug    bool
	Render   bool
}

// Load resolves the configuration. Precedence: overrides > env > file > defaults.
func Load(o Overrides) (Config, error) {
	fc, path, err := LoadConfigFile()
	if err != nil {
		return Config{}, err
	}
	return resolve(o, fc, path)
}

func resolve(o Overrides, fc *FileConfig, path string) (Config, error) {
	if fc == nil {
		fc = &FileConfig{}
	}

	cfg := Config{
		Debug:    o.Debug,
		Render:   o.Render || (fc.Defaults != nil && fc.Defaults.Render),
		FilePath: path,
	}

	// NOVA_LLM_URL may name a backend instead of a URL (NOVA_LLM_URL=gemini)
	envEndpoint := strings.TrimSpace(os.Getenv(EnvEndpoint))
	urlBackend := ""
	if IsSupportedBackend(strings.ToLower(envEndpoint)) {
		urlBackend = strings.ToLower(envEndpoint)
		envEndpoint = ""
	}

	cfg.Backend = strings.ToLower(firstNonEmpty(o.Backend, os.Getenv(EnvBackend), urlBackend, fc.Backend, constants.DefaultBackend))
	if !IsSupportedBackend(cfg.Backend) {
		return Config{}, fmt.Errorf("%w %q (supported: %s)", ErrUnknownBackend, cfg.Backend,
			strings.Join(constants.SupportedBackends, ", "))
	}

	section := fc.Section(cfg.Backend)

	cfg.Endpoint = firstNonEmpty(o.Endpoint, envEndpoint, section.Endpoint, defaultEndpoint(cfg.Backend))
	cfg.Endpoint = strings.TrimSuffix(strings.TrimSpace(cfg.Endpoint), "/")
	if cfg.Endpoint != "" && !strings.HasPrefix(cfg.Endpoint, "http://") && !strings.HasPrefix(cfg.Endpoint, "https://") {
		return Config{}, fmt.Errorf("%w: %q", ErrEndpointNotAllowed, cfg.Endpoint)
	}

	cfg.Model = firstNonEmpty(o.Model, os.Getenv(EnvModel), section.Model, fc.Model, DefaultModel(cfg.Backend))

	switch cfg.Backend {
	case constants.BackendGemini:
		cfg.APIKey = firstNonEmpty(strings.TrimSpace(os.Getenv(EnvGeminiAPIKey)), section.APIKey)
		if cfg.APIKey == "" {
			return Config{}, ErrGeminiKeyNotFound
		}
	case constants.BackendOpenAI:
		cfg.APIKey = firstNonEmpty(strings.TrimSpace(os.Getenv(EnvOpenAIAPIKey)), section.APIKey)
		if cfg.APIKey == "" {
			return Config{}, ErrOpenAIKeyNotFound
		}
	}

	return cfg, nil
}

// IsSupportedBackend reports whether name is a known backend identifier
func IsSupportedBackend(name string) bool {
	for _, b := range constants.SupportedBackends {
		if b == name {
			return true
		}
	}
	return false
}

// DefaultModel returns the model used when none is configured
func DefaultModel(backend string) string {
	switch backend {
	case constants.BackendGemini:
		return constants.DefaultGeminiModel
	case constants.BackendOpenAI:
		return constants.DefaultOpenAIModel
	default:
		return constants.DefaultOllamaModel
	}
}

func defaultEndpoint(backend string) string {
	switch backend {
	case constants.BackendOllama:
		return constants.DefaultOllamaURL
	case constants.BackendOpenAI:
		return constants.DefaultOpenAIURL
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// String returns a one-line summary suitable for debug logs. The API key is never included.
func (c Config) String() string {
	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = "(default)"
	}
	return fmt.Sprintf("backend=%s endpoint=%s model=%s", c.Backend, endpoint, c.Model)
}
