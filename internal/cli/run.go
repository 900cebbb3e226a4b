package cli

import (
	"io"
	"os"
)

// RunOptions contains all the configuration for the play command.
type RunOptions struct {
	ConfigPath string
	// Seed overrides the configured seed when non-zero.
	Seed        uint64
	Headless    bool
	Debug       bool
	MetricsFile string
	// Width overrides the configured layout width when non-zero.
	Width int

	In  io.Reader
	Out io.Writer
}

func (o RunOptions) withDefaults() RunOptions {
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	return o
}
