// Package constants provides shared constants used across the application
// to avoid circular dependencies between packages.
package constants

import "time"

// Timeout constants used across the application
const (
	// DefaultAPITimeout bounds a single completion request. Command execution is never bounded.
	DefaultAPITimeout = 120 * time.Second
)

// Backend identifiers
const (
	BackendOllama = "ollama"
	BackendGemini = "gemini"
	BackendOpenAI = "openai"
)

// Application defaults
const (
	DefaultBackend = BackendOllama

	DefaultOllamaURL   = "http://localhost:11434/api/chat"
	DefaultOllamaModel = "gemma3n:e4b"

	DefaultGeminiModel = "gemini-2.0-flash"

	DefaultOpenAIURL   = "https://api.openai.com/v1/chat/completions"
	DefaultOpenAIModel = "gpt-4o-mini"

	// DefaultShell is used when $SHELL is unset
	DefaultShell = "/bin/bash"
)

// InputChunkSize is the size of the single read performed per prompt.
// Input longer than this is truncated for that prompt.
const InputChunkSize = 1024

// Gemini generation settings
const (
	GeminiTemperature     = 0.7
	GeminiMaxOutputTokens = 2048
)

// SupportedBackends lists every backend NewClient knows how to build
var SupportedBackends = []string{BackendOllama, BackendGemini, BackendOpenAI}
