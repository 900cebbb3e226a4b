package tui

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/aretw0/parlor/pkg/domain"
	"github.com/aretw0/parlor/pkg/layout"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Width limits of the choice panel, in cells.
const (
	DefaultMinWidth = 20
	DefaultMaxWidth = 100
	fallbackWidth   = 80
)

// Presenter renders the story to a terminal. Narration is buffered and shown
// on the next redraw; publishing choices always flushes.
type Presenter struct {
	w   *bufio.Writer
	out *termenv.Output

	fd       int
	width    int
	minWidth int
	maxWidth int
	hSpacing int
	vSpacing int

	groups      []domain.TopicGroup
	choices     []domain.Choice
	interactive bool
}

// Option configures the Presenter.
type Option func(*presenterConfig)

type presenterConfig struct {
	profile    *termenv.Profile
	fd         int
	width      int
	minWidth   int
	maxWidth   int
	hSpacing   int
	vSpacing   int
	hasSpacing bool
}

// WithProfile forces a color profile. termenv.Ascii disables escape codes.
func WithProfile(p termenv.Profile) Option {
	return func(c *presenterConfig) {
		c.profile = &p
	}
}

// WithTerminal sets the file descriptor queried for the terminal width.
func WithTerminal(fd int) Option {
	return func(c *presenterConfig) {
		c.fd = fd
	}
}

// WithWidth fixes the layout width. Zero detects it from the terminal.
func WithWidth(width int) Option {
	return func(c *presenterConfig) {
		c.width = width
	}
}

// WithWidthBounds clamps the layout width.
func WithWidthBounds(minWidth, maxWidth int) Option {
	return func(c *presenterConfig) {
		c.minWidth = minWidth
		c.maxWidth = maxWidth
	}
}

// WithSpacing sets the gaps between buttons and between button rows.
func WithSpacing(horizontal, vertical int) Option {
	return func(c *presenterConfig) {
		c.hSpacing = horizontal
		c.vSpacing = vertical
		c.hasSpacing = true
	}
}

// New creates a presenter writing to w.
func New(w io.Writer, opts ...Option) *Presenter {
	cfg := presenterConfig{
		fd:       -1,
		minWidth: DefaultMinWidth,
		maxWidth: DefaultMaxWidth,
		hSpacing: layout.DefaultSpacing,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	profile := termenv.NewOutput(w).EnvColorProfile()
	if cfg.profile != nil {
		profile = *cfg.profile
	}

	bw := bufio.NewWriter(w)
	return &Presenter{
		w:           bw,
		out:         termenv.NewOutput(bw, termenv.WithProfile(profile)),
		fd:          cfg.fd,
		width:       cfg.width,
		minWidth:    cfg.minWidth,
		maxWidth:    max(cfg.minWidth, cfg.maxWidth),
		hSpacing:    cfg.hSpacing,
		vSpacing:    cfg.vSpacing,
		interactive: true,
	}
}

// Narrate writes fragment as its own paragraph.
func (p *Presenter) Narrate(fragment string) error {
	if _, err := fmt.Fprintln(p.w, toANSI(p.out, fragment)); err != nil {
		return fmt.Errorf("failed to write narration: %w", err)
	}
	return nil
}

// PresentChoices draws the numbered choice panel and flushes.
func (p *Presenter) PresentChoices(groups []domain.TopicGroup) error {
	p.groups = groups
	p.choices = p.choices[:0]
	for _, g := range groups {
		p.choices = append(p.choices, g.Choices...)
	}

	if len(p.choices) > 0 {
		if _, err := io.WriteString(p.w, "\n"+p.renderPanel()); err != nil {
			return fmt.Errorf("failed to write choices: %w", err)
		}
	}
	return p.RedrawNow()
}

// SetInteractive enables or disables selection. The panel is drawn faint
// while disabled.
func (p *Presenter) SetInteractive(enabled bool) error {
	p.interactive = enabled
	return nil
}

// RedrawNow flushes pending output.
func (p *Presenter) RedrawNow() error {
	if err := p.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// Choices returns the displayed choices in panel order.
func (p *Presenter) Choices() []domain.Choice {
	return append([]domain.Choice(nil), p.choices...)
}

// Pick invokes the choice shown as [n].
func (p *Presenter) Pick(ctx context.Context, n int) error {
	if !p.interactive {
		return domain.ErrInputDisabled
	}
	if n < 1 || n > len(p.choices) {
		return fmt.Errorf("%w: #%d", domain.ErrChoiceNotFound, n)
	}
	return p.choices[n-1].Invoke(ctx)
}

// Width returns the clamped layout width.
func (p *Presenter) Width() int {
	w := p.width
	if w <= 0 {
		w = fallbackWidth
		if p.fd >= 0 && term.IsTerminal(p.fd) {
			if cols, _, err := term.GetSize(p.fd); err == nil && cols > 0 {
				w = cols
			}
		}
	}
	return min(max(w, p.minWidth), p.maxWidth)
}

// button is a choice as laid out in the panel.
type button struct {
	text string
}

func (b button) SizeHint() image.Point    { return image.Pt(runewidth.StringWidth(b.text), 1) }
func (b button) MinimumSize() image.Point { return b.SizeHint() }

func (p *Presenter) renderPanel() string {
	var b strings.Builder
	width := p.Width()
	n := 1

	for _, g := range p.groups {
		b.WriteString(p.out.String(g.Topic).Bold().String())
		b.WriteByte('\n')

		flow := layout.New(layout.WithSpacing(p.hSpacing, p.vSpacing))
		for _, c := range g.Choices {
			flow.Add(button{text: fmt.Sprintf("[%d] %s", n, c.Label)})
			n++
		}
		height := flow.Arrange(width)
		b.WriteString(p.paint(flow, height))
	}
	return b.String()
}

// paint draws arranged buttons on a character grid, one line per row.
func (p *Presenter) paint(flow *layout.Flow, height int) string {
	lines := make([]strings.Builder, height)
	cursor := make([]int, height)

	for i := 0; i < flow.Count(); i++ {
		btn := flow.ItemAt(i).(button)
		r := flow.Geometry(i)
		line := &lines[r.Min.Y]
		line.WriteString(strings.Repeat(" ", max(0, r.Min.X-cursor[r.Min.Y])))

		st := p.out.String(btn.text)
		if !p.interactive {
			st = st.Faint()
		}
		line.WriteString(st.String())
		cursor[r.Min.Y] = r.Max.X
	}

	var b strings.Builder
	for i := range lines {
		b.WriteString(strings.TrimRight(lines[i].String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}
