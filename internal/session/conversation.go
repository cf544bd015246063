package session

import "github.com/quocvuong92/nova/internal/api"

// Conversation is an ordered, append-only list of turns.
// The zero value is an empty conversation.
type Conversation struct {
	turns []api.Message
}

// NewConversation starts a command conversation: the system preamble followed
// by the user's original request.
func NewConversation(system, request string) *Conversation {
	c := &Conversation{}
	c.Append(api.Message{Role: api.RoleSystem, Content: system})
	c.Append(api.Message{Role: api.RoleUser, Content: request})
	return c
}

// Append adds a turn at the end. Earlier turns are never touched.
func (c *Conversation) Append(m api.Message) {
	c.turns = append(c.turns, m)
}

// Len returns the number of turns
func (c *Conversation) Len() int {
	return len(c.turns)
}

// Turns returns a snapshot; callers may not mutate the conversation through it
func (c *Conversation) Turns() []api.Message {
	out := make([]api.Message, len(c.turns))
	copy(out, c.turns)
	return out
}

// Last returns the most recent turn
func (c *Conversation) Last() (api.Message, bool) {
	if len(c.turns) == 0 {
		return api.Message{}, false
	}
	return c.turns[len(c.turns)-1], true
}
