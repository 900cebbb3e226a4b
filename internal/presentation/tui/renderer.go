package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// NewRenderer returns a function that renders markdown using glamour,
// wrapped at width. Plain output uses the "notty" style.
func NewRenderer(width int, plain bool) (func(string) (string, error), error) {
	style := glamour.WithAutoStyle()
	if plain {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// Blurb renders markdown prose, such as a story introduction, into the log.
func (p *Presenter) Blurb(markdown string) error {
	render, err := NewRenderer(p.Width(), p.out.Profile == termenv.Ascii)
	if err != nil {
		return err
	}
	text, err := render(markdown)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = fmt.Fprint(p.w, text)
	return err
}
