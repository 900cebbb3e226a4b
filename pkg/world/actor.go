package world

import (
	"fmt"
	"html"
)

// NarratorColor is the color of the unnamed narrator voice.
const NarratorColor = "#5d6d7e"

// Actor is a named character with a presentation color.
type Actor struct {
	Name  string
	Color string

	world *World
}

// Enter adds the actor to the presence set of location.
func (a *Actor) Enter(location string) {
	a.world.Enter(a, location)
}

// IsPresent reports whether the actor is in the current location.
func (a *Actor) IsPresent() bool {
	return a.world.IsPresent(a)
}

// LastActed returns the time of the actor's last spoken line or action.
func (a *Actor) LastActed() (int, bool) {
	n := a.world.store.Get(PathActors.Child(a.Name, "last_acted"))
	if !n.IsLeaf() {
		return 0, false
	}
	return n.Int(), true
}

// SinceActed returns the logical time since the actor last spoke or acted,
// counting from the start of the world if it never did.
func (a *Actor) SinceActed() int {
	last, _ := a.LastActed()
	return a.world.Duration(last)
}

func (a *Actor) markActed() {
	a.world.store.Set(PathActors.Child(a.Name, "last_acted"), a.world.Now())
}

// Say renders a spoken line: the actor's name as a colored bold prefix.
func (a *Actor) Say(text string) string {
	a.markActed()
	return Say(a.Name, a.Color, text)
}

// Act renders an action line in the actor's color, in italics.
func (a *Actor) Act(text string) string {
	a.markActed()
	return Act(a.Color, text)
}

// Describe renders a description in the actor's color.
func (a *Actor) Describe(text string) string {
	return Describe(a.Color, text)
}

// Say renders a spoken line for any speaker.
func Say(name, color, text string) string {
	return fmt.Sprintf(`<b style="color:%s">%s:</b> %s`,
		html.EscapeString(color), html.EscapeString(name), html.EscapeString(text))
}

// Describe renders a colored description span.
func Describe(color, text string) string {
	return fmt.Sprintf(`<span style="color:%s">%s</span>`,
		html.EscapeString(color), html.EscapeString(text))
}

// Act renders colored italic narration.
func Act(color, text string) string {
	return fmt.Sprintf(`<i style="color:%s">%s</i>`,
		html.EscapeString(color), html.EscapeString(text))
}

// Narration renders neutral prose in the narrator voice.
func Narration(text string) string {
	return Act(NarratorColor, text)
}
