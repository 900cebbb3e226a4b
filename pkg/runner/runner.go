package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/parlor/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Session is a running story.
type Session interface {
	// RunTurn evaluates the rules and publishes the next choices.
	RunTurn(ctx context.Context) error
	// Snapshot returns the world state as nested maps.
	Snapshot() map[string]any
}

// Chooser exposes the choices a presenter is displaying, numbered from 1.
type Chooser interface {
	Choices() []domain.Choice
	Pick(ctx context.Context, n int) error
}

// HelpText lists the commands understood by the runner.
const HelpText = `Type the number of a choice to take it.
Commands:
  :state   show the world state
  :help    show this help
  quit     leave the story`

// EndText is printed when a turn publishes no choices.
const EndText = "The end."

// Runner reads player commands until the story runs out of choices, the
// player quits or the input ends.
type Runner struct {
	// Handler is the strategy for IO. Defaults to a TextHandler on Stdin/Stdout.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger
}

// NewRunner creates a new Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run plays the first turn and then loops on player input. Errors from the
// session and from choice actions are fatal and returned as is.
// Interruption and end of input stop the loop without error.
func (r *Runner) Run(ctx context.Context, session Session, chooser Chooser) error {
	handler := r.resolveHandler()

	signals := NewSignalManager(ctx)
	defer signals.Stop()
	ctx = signals.Context()

	if err := session.RunTurn(ctx); err != nil {
		return fmt.Errorf("turn failed: %w", err)
	}

	for {
		if len(chooser.Choices()) == 0 {
			r.Logger.Debug("no choices left")
			return handler.SystemOutput(ctx, EndText)
		}

		line, err := handler.Input(ctx)
		if err != nil {
			signals.CheckRace()
			if ctx.Err() != nil {
				r.Logger.Debug("runner interrupted", "err", ctx.Err())
				return nil
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		done, err := r.handleCommand(ctx, handler, line, session, chooser)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// handleCommand executes one line of input. It returns true when the player
// asked to leave.
func (r *Runner) handleCommand(ctx context.Context, handler IOHandler, line string, session Session, chooser Chooser) (bool, error) {
	switch strings.ToLower(line) {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case ":help", "help", "?":
		return false, handler.SystemOutput(ctx, HelpText)
	case ":state":
		out, err := yaml.Marshal(session.Snapshot())
		if err != nil {
			return false, fmt.Errorf("failed to encode state: %w", err)
		}
		return false, handler.SystemOutput(ctx, strings.TrimRight(string(out), "\n"))
	}

	n, err := strconv.Atoi(line)
	if err != nil {
		return false, handler.SystemOutput(ctx, fmt.Sprintf("Unknown command %q. Type :help for help.", line))
	}

	r.Logger.Debug("choice picked", "n", n)
	err = chooser.Pick(ctx, n)
	switch {
	case errors.Is(err, domain.ErrChoiceNotFound):
		return false, handler.SystemOutput(ctx, fmt.Sprintf("There is no choice #%d.", n))
	case errors.Is(err, domain.ErrInputDisabled):
		return false, handler.SystemOutput(ctx, "Please wait.")
	case err != nil:
		return false, err
	}
	return false, nil
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r.Handler
}
