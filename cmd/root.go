package cmd

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/nova/internal/api"
	"github.com/quocvuong92/nova/internal/config"
	"github.com/quocvuong92/nova/internal/display"
	"github.com/quocvuong92/nova/internal/executor"
	"github.com/quocvuong92/nova/internal/logging"
)

// Version is set at build time with -ldflags "-X github.com/quocvuong92/nova/cmd.Version=..."
var Version = "dev"

var errNoSubcommand = errors.New("a subcommand is required (run 'nova --help')")

// App holds the state shared by the subcommands
type App struct {
	overrides config.Overrides
	verbose   bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// newClient builds the completion gateway
	newClient func(config.Config, *logging.Logger) (api.Client, error)
	// runner executes approved commands
	runner executor.Runner
}

// NewApp creates a new App wired to the real terminal and backends
func NewApp() *App {
	return &App{
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		newClient: api.NewClient,
		runner:    executor.NewShellRunner(),
	}
}

// Execute runs the root command. Any failure is reported as a single
// "nova: error:" line and exit status 1.
func Execute() {
	app := NewApp()
	if err := app.NewRootCmd().Execute(); err != nil {
		display.ShowError(oneLine(err))
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree
func (app *App) NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nova",
		Short: "AI-powered command line assistant",
		Long: `Nova turns natural language into shell commands and runs them after you confirm.

At the confirmation prompt press Enter to run the command, Esc to abort,
or type a correction to get a revised command.

Backends: ollama (default), gemini, openai. Select one with --backend,
NOVA_BACKEND or the config file.

Examples:
  nova command "show me all running processes"
  nova command --long "create a backup of my home directory"
  nova command -l "list files and then analyze them"
  nova chat
  nova chat -r                         # Render markdown replies
  nova --backend gemini command "disk usage of this folder"
  nova config init`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errNoSubcommand
		},
	}
	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&app.overrides.Backend, "backend", "", "Completion backend: ollama, gemini or openai (env NOVA_BACKEND)")
	pf.StringVar(&app.overrides.Endpoint, "endpoint", "", "Backend endpoint URL (env NOVA_LLM_URL)")
	pf.StringVarP(&app.overrides.Model, "model", "m", "", "Model name (env NOVA_MODEL)")
	pf.BoolVarP(&app.verbose, "verbose", "v", false, "Enable debug logging, including HTTP traffic")

	rootCmd.AddCommand(app.NewCommandCmd())
	rootCmd.AddCommand(app.NewChatCmd())
	rootCmd.AddCommand(app.NewConfigCmd())
	rootCmd.AddCommand(app.NewVersionCmd())

	return rootCmd
}

// newLogger returns the process logger: WARN by default, DEBUG with --verbose
func (app *App) newLogger() *logging.Logger {
	level := logging.LevelWarn
	if app.verbose {
		level = logging.LevelDebug
	}
	return logging.New(logging.Options{Level: level, Output: app.stderr})
}

// setup resolves the configuration once and builds the single gateway client
func (app *App) setup() (config.Config, api.Client, *logging.Logger, error) {
	logger := app.newLogger()

	overrides := app.overrides
	overrides.Debug = app.verbose

	cfg, err := config.Load(overrides)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	logger.Debug("configuration loaded", logging.Fields{"config": cfg.String(), "file": cfg.FilePath})

	client, err := app.newClient(cfg, logger)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, client, logger, nil
}

// oneLine flattens err for the single-line diagnostic
func oneLine(err error) string {
	return strings.Join(strings.Fields(err.Error()), " ")
}
