package tui

import (
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/net/html"
)

// span is the inline style in effect for a run of text.
type span struct {
	bold   bool
	italic bool
	color  string
}

// toANSI converts a narration fragment to styled terminal text.
// Only <b>, <strong>, <i>, <em>, <span> and <br> are styled; other tags are
// dropped and their text kept. Unbalanced end tags are ignored.
func toANSI(out *termenv.Output, fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	stack := []span{{}}
	var b strings.Builder

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return b.String()

		case html.TextToken:
			b.WriteString(styled(out, string(z.Text()), stack[len(stack)-1]))

		case html.SelfClosingTagToken:
			if tok := z.Token(); tok.Data == "br" {
				b.WriteByte('\n')
			}

		case html.StartTagToken:
			tok := z.Token()
			if tok.Data == "br" {
				b.WriteByte('\n')
				continue
			}
			s := stack[len(stack)-1]
			switch tok.Data {
			case "b", "strong":
				s.bold = true
			case "i", "em":
				s.italic = true
			}
			if c := styleColor(tok.Attr); c != "" {
				s.color = c
			}
			stack = append(stack, s)

		case html.EndTagToken:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		}
	}
}

func styled(out *termenv.Output, text string, s span) string {
	if text == "" {
		return ""
	}
	st := out.String(text)
	if s.color != "" {
		st = st.Foreground(out.Color(s.color))
	}
	if s.bold {
		st = st.Bold()
	}
	if s.italic {
		st = st.Italic()
	}
	return st.String()
}

// styleColor extracts the color declaration of an inline style attribute.
func styleColor(attrs []html.Attribute) string {
	for _, a := range attrs {
		if a.Key != "style" {
			continue
		}
		for _, decl := range strings.Split(a.Val, ";") {
			k, v, ok := strings.Cut(decl, ":")
			if ok && strings.TrimSpace(k) == "color" {
				return strings.TrimSpace(v)
			}
		}
	}
	return ""
}
