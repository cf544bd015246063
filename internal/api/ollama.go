package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/quocvuong92/nova/internal/config"
	"github.com/quocvuong92/nova/internal/constants"
)

// ollamaRequest is the /api/chat request body
type ollamaRequest struct {
	Model    string      `json:"model"`
	Messages []Message   `json:"messages"`
	Stream   bool        `json:"stream"`
	Format   interface{} `json:"format,omitempty"` // "json" or a JSON schema object
}

// ollamaResponse is the non-streaming /api/chat reply
type ollamaResponse struct {
	Message *struct {
		Role    string  `json:"role"`
		Content *string `json:"content"`
	} `json:"message"`
}

// OllamaClient talks to a local or remote Ollama server
type OllamaClient struct {
	httpClient *http.Client
	endpoint   string
	model      string
}

// NewOllamaClient creates a new Ollama client
func NewOllamaClient(cfg config.Config, httpClient *http.Client) *OllamaClient {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = constants.DefaultOllamaURL
	}
	return &OllamaClient{httpClient: httpClient, endpoint: endpoint, model: cfg.Model}
}

// Name implements Client
func (c *OllamaClient) Name() string { return constants.BackendOllama }

// Complete implements Client
func (c *OllamaClient) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	reqBody := ollamaRequest{
		Model:    pickModel(opts, c.model),
		Messages: messages,
		Stream:   false,
	}
	if opts.Schema != nil {
		reqBody.Format = opts.Schema
	} else if opts.JSON {
		reqBody.Format = "json"
	}

	body, err := postJSON(ctx, c.httpClient, c.Name(), c.endpoint, nil, reqBody)
	if err != nil {
		return "", err
	}

	var resp ollamaResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", malformed(c.Name(), fmt.Sprintf("response is not JSON: %v", err))
	}
	if resp.Message == nil || resp.Message.Content == nil {
		return "", malformed(c.Name(), "missing message.content")
	}

	return *resp.Message.Content, nil
}
