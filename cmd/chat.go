package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"
	"github.com/spf13/cobra"

	"github.com/quocvuong92/nova/internal/display"
	"github.com/quocvuong92/nova/internal/session"
)

// slashCommands drive completion and /help
var slashCommands = []prompt.Suggest{
	{Text: "/clear", Description: "Clear the conversation history"},
	{Text: "/help", Description: "Show available commands"},
	{Text: "/exit", Description: "Exit chat"},
	{Text: "/quit", Description: "Exit chat"},
}

// NewChatCmd creates the chat subcommand
func (app *App) NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session with the AI",
		Long: `Start an interactive chat session. The conversation history is kept
for the whole session; a failed request leaves it unchanged so you can
simply try again.

Commands:
  /clear  clear the conversation history
  /help   show available commands
  /exit   exit chat (also /quit, Ctrl+C, Ctrl+D)

Examples:
  nova chat
  nova chat -r                       # Render markdown replies
  nova --model llama3.2 chat`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runChat(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&app.overrides.Render, "render", "r", false, "Render markdown with colors and formatting")
	return cmd
}

func (app *App) runChat(ctx context.Context) error {
	cfg, client, logger, err := app.setup()
	if err != nil {
		return err
	}

	render := cfg.Render
	if render {
		if err := display.InitRenderer(); err != nil {
			display.ShowWarning(fmt.Sprintf("markdown rendering disabled: %v", err))
			render = false
		}
	}

	repl := &chatREPL{
		ctx:     ctx,
		chat:    session.NewChat(client, "", logger),
		console: display.NewConsole(app.stdin, app.stdout),
		out:     app.stdout,
		render:  render,
	}

	fmt.Fprintf(app.stdout, "nova chat (backend: %s, model: %s)\n", client.Name(), cfg.Model)
	fmt.Fprintln(app.stdout, "Type /help for commands, /exit to quit")
	fmt.Fprintln(app.stdout)

	if display.IsTerminal(app.stdin) {
		repl.runPrompt()
		return nil
	}
	repl.runPlain()
	return nil
}

// chatREPL handles chat input, one line at a time
type chatREPL struct {
	ctx     context.Context
	chat    *session.Chat
	console *display.Console
	out     io.Writer
	render  bool
	done    bool
}

// runPrompt reads input with the go-prompt line editor
func (r *chatREPL) runPrompt() {
	p := prompt.New(
		r.handle,
		prompt.WithCompleter(r.completer),
		prompt.WithPrefix("You: "),
		prompt.WithTitle("nova chat"),
		prompt.WithPrefixTextColor(prompt.Blue),
		prompt.WithSuggestionBGColor(prompt.DarkBlue),
		prompt.WithSuggestionTextColor(prompt.White),
		prompt.WithSelectedSuggestionBGColor(prompt.Cyan),
		prompt.WithSelectedSuggestionTextColor(prompt.Black),
		prompt.WithDescriptionBGColor(prompt.DarkBlue),
		prompt.WithDescriptionTextColor(prompt.LightGray),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return r.done
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(p *prompt.Prompt) bool {
				fmt.Fprintln(r.out, "\nGoodbye!")
				r.done = true
				return false
			},
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn: func(p *prompt.Prompt) bool {
				if p.Buffer().Text() == "" {
					fmt.Fprintln(r.out, "Goodbye!")
					r.done = true
				}
				return false
			},
		}),
	)

	p.Run()
}

// runPlain reads input with the bounded console reader until end of input
func (r *chatREPL) runPlain() {
	for !r.done {
		line, err := r.console.ReadLine(display.UserPrompt())
		if err != nil {
			fmt.Fprintln(r.out)
			return
		}
		r.handle(line)
	}
}

// completer suggests slash commands
func (r *chatREPL) completer(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	endIndex := d.CurrentRuneIndex()
	w := d.GetWordBeforeCursor()
	startIndex := endIndex - istrings.RuneCountInString(w)

	if !strings.HasPrefix(d.TextBeforeCursor(), "/") {
		return []prompt.Suggest{}, startIndex, endIndex
	}
	return prompt.FilterHasPrefix(slashCommands, w, true), startIndex, endIndex
}

// handle processes one line of input
func (r *chatREPL) handle(input string) {
	if r.done {
		return
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return
	}

	if strings.HasPrefix(input, "/") {
		r.handleSlash(input)
		return
	}

	stop := r.console.StartIndicator("Typing")
	reply, err := r.chat.Send(r.ctx, input)
	stop()

	if err != nil {
		r.console.ShowChatError(err)
		return
	}
	r.console.ShowReply(reply, r.render)
	fmt.Fprintln(r.out)
}

func (r *chatREPL) handleSlash(input string) {
	name := strings.ToLower(strings.Fields(input)[0])

	switch name {
	case "/exit", "/quit", "/q":
		fmt.Fprintln(r.out, "Goodbye!")
		r.done = true

	case "/clear", "/c":
		r.chat.Reset()
		fmt.Fprintln(r.out, "Conversation cleared.")

	case "/help", "/h":
		fmt.Fprintln(r.out, "Commands:")
		for _, s := range slashCommands {
			fmt.Fprintf(r.out, "  %-8s %s\n", s.Text, s.Description)
		}

	default:
		fmt.Fprintf(r.out, "Unknown command: %s. Type /help for available commands.\n", name)
	}
}
