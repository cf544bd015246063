package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/quocvuong92/nova/internal/api"
	"github.com/quocvuong92/nova/internal/executor"
	"github.com/quocvuong92/nova/internal/logging"
)

// Mode is fixed for the lifetime of a session
type Mode int

const (
	// ModeShort runs one approved command attached to the terminal and stops
	ModeShort Mode = iota
	// ModeLong captures output, reports it to the model and keeps going
	ModeLong
)

func (m Mode) String() string {
	if m == ModeLong {
		return "long"
	}
	return "short"
}

// State is a node of the session state machine
type State int

const (
	StateGenerating State = iota
	StateAwaitingConfirmation
	StateExecuting
	StateRevising
	StateAwaitingNextInput
	StateAborted
	StateTerminal
)

func (s State) String() string {
	switch s {
	case StateGenerating:
		return "generating"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateExecuting:
		return "executing"
	case StateRevising:
		return "revising"
	case StateAwaitingNextInput:
		return "awaiting_next_input"
	case StateAborted:
		return "aborted"
	case StateTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Done reports whether the session has ended
func (s State) Done() bool {
	return s == StateAborted || s == StateTerminal
}

// Prompt texts passed to the LineReader
const (
	ConfirmPrompt   = ""
	NextInputPrompt = "> "
)

// escapeByte aborts at the confirmation prompt
const escapeByte = "\x1b"

// Options configures a Session
type Options struct {
	Mode   Mode
	Model  string // per-request model override, empty for the configured one
	Logger *logging.Logger

	// OnTransition, when set, is called after every state change
	OnTransition func(from, to State)
}

// Session runs one command invocation. It exclusively owns its conversation.
type Session struct {
	completer Completer
	runner    executor.Runner
	input     LineReader
	view      View
	opts      Options
	logger    *logging.Logger

	id       string
	state    State
	convo    *Conversation
	current  GeneratedCommand
	revision string
}

// New creates a session. Run starts it.
func New(completer Completer, runner executor.Runner, input LineReader, view View, opts Options) *Session {
	id := uuid.New().String()
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Session{
		completer: completer,
		runner:    runner,
		input:     input,
		view:      view,
		opts:      opts,
		logger:    logger.With(logging.Fields{"session_id": id, "mode": opts.Mode.String()}),
		id:        id,
		state:     StateGenerating,
		convo:     &Conversation{},
	}
}

// ID returns the session id used in log lines
func (s *Session) ID() string { return s.id }

// State returns the current state
func (s *Session) State() State { return s.state }

// Conversation returns a snapshot of the conversation so far
func (s *Session) Conversation() []api.Message { return s.convo.Turns() }

// Run drives the state machine for request until the session aborts or
// terminates. Gateway and decode failures end the session with an error;
// end of input and the escape key end it cleanly.
func (s *Session) Run(ctx context.Context, request string) error {
	s.convo = NewConversation(SystemPrompt, request)
	s.state = StateGenerating
	s.logger.Debug("session started", logging.Fields{"request_len": len(request)})

	for !s.state.Done() {
		var err error
		switch s.state {
		case StateGenerating:
			err = s.generate(ctx)
		case StateAwaitingConfirmation:
			s.confirm()
		case StateRevising:
			s.convo.Append(api.Message{Role: api.RoleUser, Content: s.revision})
			s.revision = ""
			s.transition(StateGenerating)
		case StateExecuting:
			err = s.execute(ctx)
		case StateAwaitingNextInput:
			s.nextInput()
		default:
			err = fmt.Errorf("unexpected session state %s", s.state)
		}
		if err != nil {
			s.logger.Debug("session failed", logging.Fields{"state": s.state.String(), "error": err.Error()})
			return err
		}
	}

	s.logger.Debug("session finished", logging.Fields{"state": s.state.String(), "turns": s.convo.Len()})
	return nil
}

// generate asks the gateway for the next command. The indicator is stopped
// before returning on every path. The assistant turn is appended only after
// the reply decodes.
func (s *Session) generate(ctx context.Context) error {
	stop := s.view.StartIndicator("Generating...")
	defer stop()

	text, err := s.completer.Complete(ctx, s.convo.Turns(), generationOptions(s.opts.Model))
	if err != nil {
		return err
	}

	cmd, err := DecodeCommand(text)
	if err != nil {
		return err
	}

	s.current = cmd
	s.convo.Append(api.Message{Role: api.RoleAssistant, Content: cmd.JSON()})
	s.logger.Debug("command generated", logging.Fields{"command": cmd.Command})
	s.transition(StateAwaitingConfirmation)
	return nil
}

// confirm presents the current command and routes the answer
func (s *Session) confirm() {
	s.view.ShowCommand(s.current.Command, executor.Classify(s.current.Command))

	line, err := s.input.ReadLine(ConfirmPrompt)
	if err != nil {
		s.inputEnded(err)
		return
	}

	switch {
	case strings.Contains(line, escapeByte):
		s.transition(StateAborted)
	case strings.TrimSpace(line) == "":
		s.transition(StateExecuting)
	default:
		s.revision = strings.TrimSpace(line)
		s.transition(StateRevising)
	}
}

// execute runs the approved command. A non-zero exit code is not an error.
func (s *Session) execute(ctx context.Context) error {
	capture := s.opts.Mode == ModeLong

	result, err := s.runner.Run(ctx, s.current.Command, capture)
	if err != nil {
		return fmt.Errorf("failed to execute command: %w", err)
	}
	s.logger.Debug("command finished", logging.Fields{"exit_code": result.ExitCode, "output_len": len(result.Output)})

	if !capture {
		s.transition(StateTerminal)
		return nil
	}

	if result.Output != "" {
		s.view.ShowOutput(result.Output)
	}
	if result.ExitCode != 0 {
		s.view.ShowExitCode(result.ExitCode)
	}

	s.convo.Append(api.Message{Role: api.RoleUser, Content: FormatResult(result)})
	s.transition(StateAwaitingNextInput)
	return nil
}

// nextInput reads the follow-up question in long mode. Blank input re-prompts
// without leaving the state.
func (s *Session) nextInput() {
	line, err := s.input.ReadLine(NextInputPrompt)
	if err != nil {
		s.inputEnded(err)
		return
	}

	input := strings.TrimSpace(line)
	switch {
	case input == "":
		return
	case strings.EqualFold(input, "exit"), strings.EqualFold(input, "quit"):
		s.transition(StateAborted)
	default:
		s.convo.Append(api.Message{Role: api.RoleUser, Content: input})
		s.transition(StateGenerating)
	}
}

// inputEnded aborts on end of input. Other read errors also abort; they are
// logged because the user sees nothing else.
func (s *Session) inputEnded(err error) {
	if !errors.Is(err, io.EOF) {
		s.logger.Warn("input error, aborting", logging.Fields{"error": err.Error()})
	}
	s.transition(StateAborted)
}

func (s *Session) transition(to State) {
	from := s.state
	s.state = to
	s.logger.Debug("state transition", logging.Fields{"from": from.String(), "to": to.String()})
	if s.opts.OnTransition != nil {
		s.opts.OnTransition(from, to)
	}
}
