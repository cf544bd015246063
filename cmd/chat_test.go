package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quocvuong92/nova/internal/api"
)

func TestChat_RepliesUntilExit(t *testing.T) {
	client := &fakeClient{replies: []string{"hi there", "doing well"}}
	ta := newTestApp(t, client, "hello\n", "how are you?\n", "/exit\n", "never read\n")

	require.NoError(t, ta.run("chat"))

	out := ta.out.String()
	assert.Contains(t, out, "nova chat (backend: fake")
	assert.Contains(t, out, "nova: hi there")
	assert.Contains(t, out, "nova: doing well")
	assert.Contains(t, out, "Goodbye!")

	require.Len(t, client.calls, 2)
	assert.Equal(t, []api.Message{
		{Role: api.RoleUser, Content: "hello"},
		{Role: api.RoleAssistant, Content: "hi there"},
		{Role: api.RoleUser, Content: "how are you?"},
	}, client.calls[1])
}

func TestChat_ErrorKeepsConversation(t *testing.T) {
	client := &fakeClient{
		errs:    []error{errors.New("connection refused")},
		replies: []string{"", "hello again"},
	}
	ta := newTestApp(t, client, "hello\n", "hello?\n")

	require.NoError(t, ta.run("chat"))

	out := ta.out.String()
	assert.Contains(t, out, "Error: connection refused")
	assert.Contains(t, out, "You can continue the conversation.")
	assert.Contains(t, out, "nova: hello again")

	require.Len(t, client.calls, 2)
	assert.Equal(t, []api.Message{{Role: api.RoleUser, Content: "hello?"}}, client.calls[1])
}

func TestChat_EndOfInputExits(t *testing.T) {
	client := &fakeClient{}
	ta := newTestApp(t, client)

	require.NoError(t, ta.run("chat"))
	assert.Empty(t, client.calls)
}

func TestChat_SlashCommands(t *testing.T) {
	client := &fakeClient{replies: []string{"first", "second"}}
	ta := newTestApp(t, client, "one\n", "/clear\n", "/help\n", "/bogus\n", "   \n", "two\n")

	require.NoError(t, ta.run("chat"))

	out := ta.out.String()
	assert.Contains(t, out, "Conversation cleared.")
	assert.Contains(t, out, "/clear")
	assert.Contains(t, out, "Unknown command: /bogus")

	require.Len(t, client.calls, 2)
	assert.Equal(t, []api.Message{{Role: api.RoleUser, Content: "two"}}, client.calls[1])
}
