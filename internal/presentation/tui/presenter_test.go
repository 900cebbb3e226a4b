package tui

import (
	"bytes"
	"context"
	"testing"

	"github.com/aretw0/parlor/pkg/domain"
	"github.com/aretw0/parlor/pkg/ports/tests"
	"github.com/aretw0/parlor/pkg/world"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func newPlain(buf *bytes.Buffer, opts ...Option) *Presenter {
	return New(buf, append([]Option{WithProfile(termenv.Ascii)}, opts...)...)
}

func TestPresenter_Contract(t *testing.T) {
	var buf bytes.Buffer
	tests.PresenterContractTest(t, newPlain(&buf))
}

func TestNarrate_ConvertsMarkup(t *testing.T) {
	cases := []struct {
		name     string
		fragment string
		want     string
	}{
		{"spoken", world.Say("Rachel", "#c0392b", "Do you like our owl?"), "Rachel: Do you like our owl?"},
		{"escaped", world.Describe("#7f8c8d", "Tall & pale"), "Tall & pale"},
		{"action", world.Act("#2e86c1", "Deckard looks up."), "Deckard looks up."},
		{"line break", "one<br>two<br/>three", "one\ntwo\nthree"},
		{"unknown tags", "<p>a <u>b</u></p>", "a b"},
		{"stray end tag", "</b>plain", "plain"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := newPlain(&buf)
			require.NoError(t, p.Narrate(tc.fragment))
			require.NoError(t, p.RedrawNow())
			assert.Equal(t, tc.want+"\n", buf.String())
		})
	}
}

func TestNarrate_BufferedUntilRedraw(t *testing.T) {
	var buf bytes.Buffer
	p := newPlain(&buf)

	require.NoError(t, p.Narrate("A vast hall."))
	assert.Empty(t, buf.String())

	require.NoError(t, p.SetInteractive(false))
	require.NoError(t, p.RedrawNow())
	assert.Equal(t, "A vast hall.\n", buf.String())
}

func TestToANSI_AppliesStyles(t *testing.T) {
	var buf bytes.Buffer
	out := termenv.NewOutput(&buf, termenv.WithProfile(termenv.TrueColor))

	got := toANSI(out, `<b style="color:#ff0000">Rachel:</b> hi`)
	assert.Contains(t, got, "\x1b[")
	assert.Contains(t, got, "Rachel:")
	assert.Contains(t, got, " hi")
}

func TestStyleColor(t *testing.T) {
	assert.Equal(t, "#abc", styleColor([]html.Attribute{{Key: "style", Val: "font-weight: bold; color: #abc"}}))
	assert.Equal(t, "", styleColor([]html.Attribute{{Key: "class", Val: "color:#abc"}}))
}

func group(topic string, labels ...string) domain.TopicGroup {
	g := domain.TopicGroup{Topic: topic}
	for _, l := range labels {
		g.Choices = append(g.Choices, domain.Choice{
			Topic:  topic,
			Label:  l,
			Invoke: func(context.Context) error { return nil },
		})
	}
	return g
}

func TestPresentChoices_FlowLayout(t *testing.T) {
	groups := []domain.TopicGroup{
		group("People", "Ask about the owl"),
		group("World", "Look around", "Wait"),
	}

	t.Run("wide", func(t *testing.T) {
		var buf bytes.Buffer
		p := newPlain(&buf, WithWidth(30))
		require.NoError(t, p.PresentChoices(groups))
		assert.Equal(t, "\nPeople\n[1] Ask about the owl\nWorld\n[2] Look around [3] Wait\n", buf.String())
	})

	t.Run("narrow", func(t *testing.T) {
		var buf bytes.Buffer
		p := newPlain(&buf, WithWidth(20))
		require.NoError(t, p.PresentChoices(groups))
		assert.Equal(t, "\nPeople\n[1] Ask about the owl\nWorld\n[2] Look around\n[3] Wait\n", buf.String())
	})

	t.Run("row spacing", func(t *testing.T) {
		var buf bytes.Buffer
		p := newPlain(&buf, WithWidth(20), WithSpacing(2, 1))
		require.NoError(t, p.PresentChoices([]domain.TopicGroup{group("World", "Look around", "Wait")}))
		assert.Equal(t, "\nWorld\n[1] Look around\n\n[2] Wait\n", buf.String())
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		p := newPlain(&buf)
		require.NoError(t, p.PresentChoices(nil))
		assert.Empty(t, buf.String())
		assert.Empty(t, p.Choices())
	})
}

func TestWidth_Clamped(t *testing.T) {
	assert.Equal(t, DefaultMinWidth, newPlain(&bytes.Buffer{}, WithWidth(5)).Width())
	assert.Equal(t, DefaultMaxWidth, newPlain(&bytes.Buffer{}, WithWidth(500)).Width())
	assert.Equal(t, 80, newPlain(&bytes.Buffer{}).Width())
	assert.Equal(t, 40, newPlain(&bytes.Buffer{}, WithWidth(10), WithWidthBounds(40, 60)).Width())
}

func TestPick(t *testing.T) {
	var buf bytes.Buffer
	p := newPlain(&buf)

	var picked string
	choices := []domain.Choice{
		{Topic: "World", Label: "Wait", Invoke: func(context.Context) error { picked = "wait"; return nil }},
		{Topic: "People", Label: "Ask", Invoke: func(context.Context) error { picked = "ask"; return nil }},
	}
	require.NoError(t, p.PresentChoices(domain.GroupChoices(choices)))

	require.NoError(t, p.Pick(context.Background(), 1))
	assert.Equal(t, "ask", picked)

	assert.ErrorIs(t, p.Pick(context.Background(), 9), domain.ErrChoiceNotFound)

	require.NoError(t, p.SetInteractive(false))
	assert.ErrorIs(t, p.Pick(context.Background(), 2), domain.ErrInputDisabled)
	assert.Equal(t, "ask", picked)
}

func TestBannerAndBlurb(t *testing.T) {
	var buf bytes.Buffer
	p := newPlain(&buf, WithWidth(60))

	require.NoError(t, p.Banner())
	require.NoError(t, p.Blurb("# The Hall\n\nThe owl watches you."))
	require.NoError(t, p.RedrawNow())

	out := buf.String()
	assert.Contains(t, out, "|_|")
	assert.Contains(t, out, "The owl watches you.")
}
