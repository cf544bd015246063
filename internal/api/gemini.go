package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/quocvuong92/nova/internal/config"
	"github.com/quocvuong92/nova/internal/constants"
)

// GeminiClient talks to the Gemini API through the genai SDK
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini client. cfg.Endpoint, when set, replaces the SDK base URL.
func NewGeminiClient(ctx context.Context, cfg config.Config, httpClient *http.Client) (*GeminiClient, error) {
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.Endpoint != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimRight(cfg.Endpoint, "/") + "/"}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: cfg.Model}, nil
}

// Name implements Client
func (c *GeminiClient) Name() string { return constants.BackendGemini }

// Complete implements Client
func (c *GeminiClient) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	contents, system := toGeminiContents(messages)

	gc := &genai.GenerateContentConfig{
		SystemInstruction: system,
		Temperature:       genai.Ptr[float32](constants.GeminiTemperature),
		MaxOutputTokens:   constants.GeminiMaxOutputTokens,
	}
	if opts.wantsJSON() {
		gc.ResponseMIMEType = "application/json"
	}
	if opts.Schema != nil {
		gc.ResponseSchema = toGeminiSchema(opts.Schema)
	}

	resp, err := c.client.Models.GenerateContent(ctx, pickModel(opts, c.model), contents, gc)
	if err != nil {
		return "", c.mapError(err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", malformed(c.Name(), "missing candidates[0]")
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return "", malformed(c.Name(), "missing candidates[0].content.parts[0]")
	}

	return content.Parts[0].Text, nil
}

// mapError sorts SDK errors into the gateway taxonomy
func (c *GeminiClient) mapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return newBackendError(c.Name(), apiErr.Code, apiErr.Message, []byte(apiErr.Error()))
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return newBackendError(c.Name(), apiErrPtr.Code, apiErrPtr.Message, []byte(apiErrPtr.Error()))
	}
	return unavailable(c.Name(), err)
}

// toGeminiContents splits system turns into the system instruction and maps
// the remaining turns to user/model contents in order.
func toGeminiContents(messages []Message) ([]*genai.Content, *genai.Content) {
	var systemParts []string
	contents := make([]*genai.Content, 0, len(messages))

	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			systemParts = append(systemParts, m.Content)
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	var system *genai.Content
	if len(systemParts) > 0 {
		system = &genai.Content{Parts: []*genai.Part{genai.NewPartFromText(strings.Join(systemParts, "\n\n"))}}
	}
	return contents, system
}
