package session

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/quocvuong92/nova/internal/api"
)

func TestNewConversation(t *testing.T) {
	c := NewConversation("preamble", "list files")

	want := []api.Message{
		{Role: api.RoleSystem, Content: "preamble"},
		{Role: api.RoleUser, Content: "list files"},
	}
	if diff := cmp.Diff(want, c.Turns()); diff != "" {
		t.Errorf("Turns() mismatch (-want +got):\n%s", diff)
	}
}

func TestConversation_AppendPreservesOrder(t *testing.T) {
	c := NewConversation("sys", "q")
	initial := c.Len()
	before := c.Turns()

	extra := []api.Message{
		{Role: api.RoleAssistant, Content: "a1"},
		{Role: api.RoleUser, Content: "q2"},
		{Role: api.RoleAssistant, Content: "a2"},
	}
	for i, m := range extra {
		c.Append(m)
		got := c.Turns()
		assert.Equal(t, initial+i+1, c.Len())
		if diff := cmp.Diff(before, got[:len(before)]); diff != "" {
			t.Fatalf("append %d changed earlier turns (-before +after):\n%s", i, diff)
		}
		before = got
	}
}

func TestConversation_TurnsIsSnapshot(t *testing.T) {
	c := NewConversation("sys", "q")

	snap := c.Turns()
	snap[0].Content = "tampered"
	_ = append(snap, api.Message{Role: api.RoleUser, Content: "sneaky"})

	assert.Equal(t, "sys", c.Turns()[0].Content)
	assert.Equal(t, 2, c.Len())
}

func TestConversation_Last(t *testing.T) {
	var c Conversation
	_, ok := c.Last()
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())

	c.Append(api.Message{Role: api.RoleUser, Content: "hi"})
	last, ok := c.Last()
	assert.True(t, ok)
	assert.Equal(t, "hi", last.Content)
}
