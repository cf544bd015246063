package session

import (
	"context"
	"strings"

	"github.com/quocvuong92/nova/internal/api"
	"github.com/quocvuong92/nova/internal/logging"
)

// Chat is the plain conversational flow: no system preamble and no JSON shape
type Chat struct {
	completer Completer
	model     string
	logger    *logging.Logger
	history   *Conversation
}

// NewChat creates an empty chat. model may be empty.
func NewChat(completer Completer, model string, logger *logging.Logger) *Chat {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Chat{
		completer: completer,
		model:     model,
		logger:    logger,
		history:   &Conversation{},
	}
}

// Send adds input to the conversation and returns the reply. On failure the
// history is left exactly as it was, so the user can continue.
func (c *Chat) Send(ctx context.Context, input string) (string, error) {
	turns := append(c.history.Turns(), api.Message{Role: api.RoleUser, Content: input})

	reply, err := c.completer.Complete(ctx, turns, api.Options{Model: c.model})
	if err != nil {
		c.logger.Debug("chat turn failed", logging.Fields{"turns": len(turns), "error": err.Error()})
		return "", err
	}

	c.history.Append(api.Message{Role: api.RoleUser, Content: input})
	c.history.Append(api.Message{Role: api.RoleAssistant, Content: reply})
	return strings.TrimSpace(reply), nil
}

// Reset clears the history
func (c *Chat) Reset() {
	c.history = &Conversation{}
}

// History returns a snapshot of the conversation
func (c *Chat) History() []api.Message {
	return c.history.Turns()
}

// Len returns the number of turns in the history
func (c *Chat) Len() int {
	return c.history.Len()
}
