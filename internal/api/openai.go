package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/quocvuong92/nova/internal/config"
	"github.com/quocvuong92/nova/internal/constants"
)

// schemaName is the name sent with json_schema response formats
const schemaName = "generated_command"

// ChatRequest represents the Chat Completions API request
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Stream         bool            `json:"stream"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ResponseFormat selects json_object or json_schema output
type ResponseFormat struct {
	Type       string            `json:"type"`
	JSONSchema *JSONSchemaFormat `json:"json_schema,omitempty"`
}

// JSONSchemaFormat carries a strict output schema
type JSONSchemaFormat struct {
	Name   string      `json:"name"`
	Schema interface{} `json:"schema"`
	Strict bool        `json:"strict"`
}

// ChatResponse represents the Chat Completions API response
type ChatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message struct {
			Role    string  `json:"role"`
			Content *string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// OpenAIClient talks to any OpenAI-compatible /chat/completions endpoint
type OpenAIClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	model      string
}

// NewOpenAIClient creates a new OpenAI-compatible client
func NewOpenAIClient(cfg config.Config, httpClient *http.Client) *OpenAIClient {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = constants.DefaultOpenAIURL
	}
	return &OpenAIClient{
		httpClient: httpClient,
		endpoint:   endpoint,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
	}
}

// Name implements Client
func (c *OpenAIClient) Name() string { return constants.BackendOpenAI }

// Complete implements Client
func (c *OpenAIClient) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	reqBody := ChatRequest{
		Model:    pickModel(opts, c.model),
		Messages: messages,
		Stream:   false,
	}
	if opts.Schema != nil {
		reqBody.ResponseFormat = &ResponseFormat{
			Type:       "json_schema",
			JSONSchema: &JSONSchemaFormat{Name: schemaName, Schema: opts.Schema, Strict: true},
		}
	} else if opts.JSON {
		reqBody.ResponseFormat = &ResponseFormat{Type: "json_object"}
	}

	headers := map[string]string{
		"Authorization": "Bearer " + c.apiKey,
		"X-Request-Id":  uuid.New().String(),
	}

	body, err := postJSON(ctx, c.httpClient, c.Name(), c.endpoint, headers, reqBody)
	if err != nil {
		return "", err
	}

	var resp ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", malformed(c.Name(), fmt.Sprintf("response is not JSON: %v", err))
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == nil {
		return "", malformed(c.Name(), "missing choices[0].message.content")
	}

	return *resp.Choices[0].Message.Content, nil
}
