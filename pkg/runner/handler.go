package runner

import "context"

// IOHandler is the strategy the runner uses to talk to the player outside
// the presenter: reading commands and printing system messages.
type IOHandler interface {
	// Input reads one sanitized line.
	Input(ctx context.Context) (string, error)

	// SystemOutput presents a meta-message (help, errors, state dumps).
	SystemOutput(ctx context.Context, msg string) error
}
