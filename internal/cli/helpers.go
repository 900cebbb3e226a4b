package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/parlor/internal/logging"
	"github.com/aretw0/parlor/internal/presentation/tui"
	"github.com/aretw0/parlor/pkg/domain"
	"github.com/muesli/termenv"
)

// createLogger configures the application logger.
// In debug mode, it writes everything to Stderr (to separate from the story).
func createLogger(debug bool, level slog.Level) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(level)
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurnStart: func(ctx context.Context, e *domain.TurnEvent) {
			logger.Debug("Turn Start", "turn", e.Turn, "depth", e.Depth)
		},
		OnEventFire: func(ctx context.Context, e *domain.RuleEvent) {
			logger.Debug("Event Fired", "rule", e.Rule, "turn", e.Turn)
		},
		OnChoicesPublished: func(ctx context.Context, e *domain.ChoiceEvent) {
			logger.Debug("Choices Published", "count", e.Count, "topics", e.Topics)
		},
		OnChoiceSelected: func(ctx context.Context, e *domain.ChoiceEvent) {
			logger.Debug("Choice Selected", "rule", e.Rule, "topic", e.Topic, "label", e.Label)
		},
	}
}

// createPresenter builds the terminal presenter. Headless output carries no
// escape codes.
func createPresenter(opts RunOptions, hSpacing, vSpacing, width int) *tui.Presenter {
	presenterOpts := []tui.Option{
		tui.WithSpacing(hSpacing, vSpacing),
		tui.WithWidth(width),
	}
	if f, ok := opts.Out.(*os.File); ok {
		presenterOpts = append(presenterOpts, tui.WithTerminal(int(f.Fd())))
	}
	if opts.Headless {
		presenterOpts = append(presenterOpts, tui.WithProfile(termenv.Ascii))
	}
	return tui.New(opts.Out, presenterOpts...)
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, io.EOF)
}

func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil // Exit 0 for interruptions
	}
	return err
}
