package story

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/parlor/pkg/domain"
	"github.com/aretw0/parlor/pkg/dsl"
	"github.com/aretw0/parlor/pkg/state"
	"github.com/aretw0/parlor/pkg/trigger"
	"github.com/aretw0/parlor/pkg/world"
)

// Locations.
const (
	Hall   = "hall"
	Street = "street"
)

// ImpatienceAfter is how many turns Rachel stays quiet before pressing.
const ImpatienceAfter = 3

// DefaultPalette maps lowercased actor names to their colors.
var DefaultPalette = map[string]string{
	"rachel":  "#c0392b",
	"deckard": "#2e86c1",
	"owl":     "#b9770e",
}

// Blurb introduces the story before the first turn.
const Blurb = `# The Hall

You are **Deckard**. You came to ask questions, and the woman at the desk
has questions of her own. Choose an action by typing its number.`

// State addresses used by the story.
var (
	PathHallSeen     = state.P("hall", "seen")
	PathDeskSeen     = state.P("hall", "desk", "seen")
	PathDeskExamined = state.P("hall", "desk", "examined")
	PathGreeted      = state.P("rachel", "greeted")
	PathOwlAsked     = state.P("owl", "asked")
	PathOwlAttention = state.P("owl", "attention")
	PathBusiness     = state.P("deckard", "business")
	PathStreetSeen   = state.P("street", "seen")
	PathDone         = state.P("done")
)

// ColorFunc picks the color of an actor, defaulting to fallback.
// config.Config.Color satisfies it.
type ColorFunc func(actor, fallback string) string

// Host is what the story needs from the engine.
type Host interface {
	World() *world.World
	Narrate(fragment string) error
	RunTurn(ctx context.Context) error
	Notice(path state.Path, opts ...trigger.Option) bool
}

// Story is the hall story bound to a host.
type Story struct {
	host  Host
	world *world.World
	st    *state.Store

	Rachel  *world.Actor
	Deckard *world.Actor
	Owl     *world.Actor
}

// New creates the actors, places them in the hall and initializes every
// flag the rules test for false. A nil colors uses DefaultPalette.
func New(h Host, colors ColorFunc) (*Story, error) {
	w := h.World()
	s := &Story{host: h, world: w, st: w.Store()}

	color := func(name string) string {
		fallback := DefaultPalette[strings.ToLower(name)]
		if colors == nil {
			return fallback
		}
		return colors(name, fallback)
	}

	var err error
	if s.Rachel, err = w.NewActor("Rachel", color("Rachel")); err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}
	if s.Deckard, err = w.NewActor("Deckard", color("Deckard")); err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}
	if s.Owl, err = w.NewActor("Owl", color("Owl")); err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}

	w.MoveTo(Hall)
	for _, a := range []*world.Actor{s.Rachel, s.Deckard, s.Owl} {
		a.Enter(Hall)
	}
	for _, p := range []state.Path{
		PathHallSeen, PathDeskSeen, PathDeskExamined, PathGreeted,
		PathOwlAsked, PathStreetSeen, PathDone,
	} {
		s.st.Set(p, false)
	}
	s.st.Set(PathBusiness, 0)
	return s, nil
}

// Rules returns the story rules in registration order.
func (s *Story) Rules() ([]domain.Rule, error) {
	b := dsl.New()
	st := s.st

	// Events.
	b.Rule("arrive").
		When(dsl.Unset(st, "hall.seen")).
		Do(
			s.narrate(func() string {
				return world.Narration("You step into a vast hall. A desk stands under a tall window.")
			}),
			s.set(PathHallSeen, true),
		)

	b.Rule("rachel-greets").
		When(dsl.Unset(st, "rachel.greeted"), s.Rachel.IsPresent).
		Do(
			s.narrate(func() string { return s.Rachel.Say("Do you like our owl?") }),
			s.set(PathGreeted, true),
		)

	b.Rule("owl-notices").
		When(s.Owl.IsPresent, func() bool { return s.host.Notice(PathOwlAttention) }).
		Do(s.narrate(func() string { return s.Owl.Act("The owl turns its head and stares at you.") }))

	b.Rule("rachel-impatient").
		When(
			dsl.Flag(st, "rachel.greeted"),
			dsl.Unset(st, "done"),
			s.Rachel.IsPresent,
			func() bool { return s.Rachel.SinceActed() >= ImpatienceAfter },
		).
		Do(s.narrate(func() string { return s.Rachel.Say("Well? I haven't got all day.") }))

	b.Rule("street").
		When(
			func() bool { return s.world.Location() == Street },
			dsl.Unset(st, "street.seen"),
		).
		Do(
			s.narrate(func() string {
				return world.Narration("Rain falls on the street. Somewhere behind you, the owl blinks.")
			}),
			s.set(PathStreetSeen, true),
		)

	// Choices.
	b.Rule("look").
		When(dsl.Unset(st, "hall.desk.seen"), dsl.Unset(st, "done")).
		Offer("World", "Look around").
		Do(
			s.narrate(func() string {
				return world.Describe(world.NarratorColor, "Marble floors. A desk with a lamp. An owl on a perch.")
			}),
			s.set(PathDeskSeen, true),
			s.host.RunTurn,
		)

	b.Rule("examine-desk").
		When(dsl.Flag(st, "hall.desk.seen"), dsl.Unset(st, "hall.desk.examined"), dsl.Unset(st, "done")).
		Offer("World", "Examine the desk").
		Do(
			s.narrate(func() string { return world.Narration("Papers, neatly stacked. A photograph of a young girl.") }),
			s.set(PathDeskExamined, true),
			s.host.RunTurn,
		)

	b.Rule("ask-owl").
		When(dsl.Unset(st, "owl.asked"), s.Rachel.IsPresent).
		Offer("People", "Ask about the owl").
		Do(
			s.narrate(
				func() string { return s.Deckard.Say("It's artificial?") },
				func() string { return s.Rachel.Say("Of course it is.") },
			),
			s.set(PathOwlAsked, true),
			s.host.RunTurn,
		)

	b.Rule("business").
		When(dsl.Unset(st, "done"), s.Rachel.IsPresent).
		OfferFunc(func() (string, string) {
			if st.Get(PathBusiness).Int() == 0 {
				return "People", "State your business"
			}
			return "People", "Insist"
		}).
		Do(
			func(context.Context) error {
				n := st.Get(PathBusiness).Int()
				st.Set(PathBusiness, n+1)
				if n == 0 {
					if err := s.host.Narrate(s.Rachel.Say("This is an owl.")); err != nil {
						return err
					}
					return s.host.Narrate(s.Deckard.Say("I'm not here about the owl."))
				}
				if err := s.host.Narrate(s.Deckard.Say("I need to see Tyrell.")); err != nil {
					return err
				}
				return s.host.Narrate(s.Rachel.Act("Rachel smiles and says nothing."))
			},
			s.host.RunTurn,
		)

	b.Rule("wait").
		When(dsl.Unset(st, "done")).
		Offer("World", "Wait").
		Do(
			s.narrate(func() string {
				return world.Narration(fmt.Sprintf("Time passes. You have been in the %s for %d turns.",
					s.world.Location(), s.world.TimeHere()))
			}),
			s.host.RunTurn,
		)

	b.Rule("leave").
		When(dsl.Unset(st, "done"), func() bool { return s.world.Location() == Hall }).
		Offer("World", "Leave").
		Do(
			s.narrate(func() string { return s.Deckard.Act("Deckard turns up his collar and walks out.") }),
			dsl.Exec(func() {
				s.world.MoveTo(Street)
				s.Deckard.Enter(Street)
			}),
			s.set(PathDone, true),
			s.host.RunTurn,
		)

	return b.Build()
}

// narrate renders each line when the action runs, so voices stamp the
// actor's last action at the right time.
func (s *Story) narrate(lines ...func() string) domain.Action {
	return func(context.Context) error {
		for _, line := range lines {
			if err := s.host.Narrate(line()); err != nil {
				return err
			}
		}
		return nil
	}
}

func (s *Story) set(path state.Path, value any) domain.Action {
	return dsl.Exec(func() { s.st.Set(path, value) })
}
