/*
Package runner implements the interactive loop that connects a player to a
running story.

The runner plays the first turn, then reads one command per line: the number
of a displayed choice, or one of the meta commands (:state, :help, quit).
It stops when a turn publishes no choices, when the player quits, when the
input ends or when the process is interrupted.

# Usage

	r := runner.NewRunner(
		runner.WithLogger(logger),
		runner.WithIO(os.Stdin, os.Stdout),
	)

	if err := r.Run(ctx, story, presenter); err != nil {
		log.Fatal(err)
	}
*/
package runner
