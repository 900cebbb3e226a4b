package cli

import (
	"context"
	"io"

	"github.com/aretw0/parlor/internal/presentation/tui"
	"github.com/aretw0/parlor/pkg/domain"
	"github.com/muesli/termenv"
)

// LayoutOptions configures PrintLayout.
type LayoutOptions struct {
	Topic    string
	Labels   []string
	Width    int
	HSpacing int
	VSpacing int
}

// PrintLayout draws labels as a choice panel, the way a story turn would.
func PrintLayout(w io.Writer, opts LayoutOptions) error {
	p := tui.New(w,
		tui.WithProfile(termenv.Ascii),
		tui.WithWidth(opts.Width),
		tui.WithSpacing(opts.HSpacing, opts.VSpacing),
	)

	choices := make([]domain.Choice, 0, len(opts.Labels))
	for _, label := range opts.Labels {
		choices = append(choices, domain.Choice{
			Topic:  opts.Topic,
			Label:  label,
			Invoke: func(context.Context) error { return nil },
		})
	}
	return p.PresentChoices(domain.GroupChoices(choices))
}
