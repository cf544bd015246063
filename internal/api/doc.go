// Package api is the completion gateway used by the command session and chat.
//
// # Architecture
//
// One backend is selected from configuration at startup and hidden behind
// the Client interface:
//
//   - client.go: Client interface, Message/Options types and the NewClient factory
//   - ollama.go: Ollama /api/chat client (format: "json" or a schema object)
//   - openai.go: OpenAI-compatible /chat/completions client (response_format)
//   - gemini.go: Gemini client built on the genai SDK (responseSchema)
//   - schema.go: JSON schema reflection and the Gemini schema conversion
//   - http.go: shared JSON POST helper for the plain HTTP backends
//   - errors.go: BackendError and the sentinel errors
//
// # Errors
//
// Every failure falls into one of three groups. Callers tell them apart with
// errors.Is and errors.As:
//
//	errors.Is(err, api.ErrBackendUnavailable) // the request never completed
//	errors.As(err, &backendErr)               // non-2xx status, carries status and body
//	errors.Is(err, api.ErrMalformedResponse)  // reply text missing from the envelope
//
// The gateway never retries. Each Complete call performs exactly one request.
//
// # Usage
//
//	cfg, err := config.Load(config.Overrides{})
//	if err != nil {
//	    // handle error
//	}
//	client, err := api.NewClient(cfg, logger)
//	if err != nil {
//	    // handle error
//	}
//	text, err := client.Complete(ctx, messages, api.Options{Schema: api.SchemaFor(&v)})
package api
