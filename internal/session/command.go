package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quocvuong92/nova/internal/api"
)

// SystemPrompt is the fixed preamble of every command conversation
const SystemPrompt = `You turn user requests into shell commands.
- Reply with a JSON object only: {"reasoning": string, "command": string}
- "reasoning": what the user wants to achieve, the approach you take and why this command fits
- "command": one valid shell command, ready to run; chaining with && or pipes is allowed
- The command runs in the user's real shell in their current directory. Never use placeholders or example values.
- A user turn starting with [COMMAND_RESULT] reports the exit code and output of the last command you proposed.`

// GeneratedCommand is the structured reply the model must produce
type GeneratedCommand struct {
	Reasoning string `json:"reasoning" jsonschema_description:"What the user wants, the approach taken and why this command was chosen"`
	Command   string `json:"command" jsonschema_description:"A single valid shell command to execute"`
}

// commandSchema constrains backend output to GeneratedCommand
var commandSchema = api.SchemaFor(&GeneratedCommand{})

// generationOptions asks for schema-constrained JSON output
func generationOptions(model string) api.Options {
	return api.Options{Schema: commandSchema, Model: model}
}

// DecodeCommand parses a model reply. Both keys must be present as strings and
// the command must not be blank; anything else wraps api.ErrMalformedResponse.
func DecodeCommand(text string) (GeneratedCommand, error) {
	var raw struct {
		Reasoning *string `json:"reasoning"`
		Command   *string `json:"command"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil {
		return GeneratedCommand{}, fmt.Errorf("%w: reply is not a JSON object: %v", api.ErrMalformedResponse, err)
	}
	if raw.Reasoning == nil {
		return GeneratedCommand{}, fmt.Errorf("%w: missing \"reasoning\"", api.ErrMalformedResponse)
	}
	if raw.Command == nil {
		return GeneratedCommand{}, fmt.Errorf("%w: missing \"command\"", api.ErrMalformedResponse)
	}
	if strings.TrimSpace(*raw.Command) == "" {
		return GeneratedCommand{}, fmt.Errorf("%w: empty \"command\"", api.ErrMalformedResponse)
	}

	return GeneratedCommand{Reasoning: *raw.Reasoning, Command: *raw.Command}, nil
}

// JSON returns the canonical serialized form stored as the assistant turn.
// Shell operators such as && and > are kept literal.
func (g GeneratedCommand) JSON() string {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(g)
	return strings.TrimSuffix(b.String(), "\n")
}
