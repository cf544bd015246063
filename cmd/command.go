package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/nova/internal/display"
	"github.com/quocvuong92/nova/internal/session"
)

// NewCommandCmd creates the command subcommand
func (app *App) NewCommandCmd() *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "command [-l|--long] <prompt...>",
		Short: "Generate and execute shell commands from natural language",
		Long: `Generate a shell command from a natural language request and run it
after confirmation.

  Enter           run the command
  Esc             abort
  any other text  revise the request and generate again

In long mode (-l) command output is captured and sent back to the model,
and nova asks for the next step until you type exit, quit or press Esc.

Examples:
  nova command "show me all running processes"
  nova command -l "find large files and then delete the logs among them"`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || strings.TrimSpace(strings.Join(args, "")) == "" {
				return errPromptRequired(long)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := session.ModeShort
			if long {
				mode = session.ModeLong
			}
			return app.runCommand(cmd, mode, strings.Join(args, " "))
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "Long mode: feed results back and continue until exit or Esc")
	// Flags are only read before the prompt, so "ls -a" in a prompt stays text.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (app *App) runCommand(cmd *cobra.Command, mode session.Mode, prompt string) error {
	_, client, logger, err := app.setup()
	if err != nil {
		return err
	}

	console := display.NewConsole(app.stdin, app.stdout)
	s := session.New(client, app.runner, console, console, session.Options{
		Mode:   mode,
		Logger: logger,
	})
	return s.Run(cmd.Context(), prompt)
}

var (
	errPromptMissing     = errors.New("'command' requires a prompt (usage: nova command '<your prompt>')")
	errLongPromptMissing = errors.New("'command' with -l/--long requires a prompt (usage: nova command -l '<your prompt>')")
)

func errPromptRequired(long bool) error {
	if long {
		return errLongPromptMissing
	}
	return errPromptMissing
}
