package api

import (
	"context"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/quocvuong92/nova/internal/config"
	"github.com/quocvuong92/nova/internal/constants"
	"github.com/quocvuong92/nova/internal/logging"
)

// Role identifies who produced a conversation turn
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged conversation turn
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Options shapes a single completion request
type Options struct {
	// JSON asks the backend for bare JSON output
	JSON bool
	// Schema constrains the output to an object shape. A non-nil schema implies JSON.
	Schema *jsonschema.Schema
	// Model overrides the configured model for this request
	Model string
}

// wantsJSON reports whether the request asks for JSON in any form
func (o Options) wantsJSON() bool {
	return o.JSON || o.Schema != nil
}

// Client is the completion gateway. Implementations hold no conversation state;
// each call performs exactly one outbound request and never retries.
type Client interface {
	// Complete sends the conversation and returns the model's reply text
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)

	// Name returns the backend identifier ("ollama", "gemini", "openai")
	Name() string
}

// Ensure all backends implement Client
var (
	_ Client = (*OllamaClient)(nil)
	_ Client = (*GeminiClient)(nil)
	_ Client = (*OpenAIClient)(nil)
)

// NewClient creates the single backend selected by cfg.Backend.
// It is called once per process; there is no switching mid-session.
func NewClient(cfg config.Config, logger *logging.Logger) (Client, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	httpClient := logging.NewHTTPClient(logger.With(logging.Fields{"backend": cfg.Backend}), constants.DefaultAPITimeout)

	// The endpoint applies to whichever backend is active, so log the pair.
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "(default)"
	}
	logger.Debug("completion backend selected", logging.Fields{"backend": cfg.Backend, "endpoint": endpoint, "model": cfg.Model})

	switch cfg.Backend {
	case constants.BackendOllama:
		return NewOllamaClient(cfg, httpClient), nil

	case constants.BackendGemini:
		if cfg.APIKey == "" {
			return nil, config.ErrGeminiKeyNotFound
		}
		return NewGeminiClient(context.Background(), cfg, httpClient)

	case constants.BackendOpenAI:
		if cfg.APIKey == "" {
			return nil, config.ErrOpenAIKeyNotFound
		}
		return NewOpenAIClient(cfg, httpClient), nil

	default:
		return nil, fmt.Errorf("%w %q", config.ErrUnknownBackend, cfg.Backend)
	}
}

// pickModel returns the per-request model when set, otherwise the configured one
func pickModel(opts Options, configured string) string {
	if opts.Model != "" {
		return opts.Model
	}
	return configured
}
