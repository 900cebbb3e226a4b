/*
Package dsl provides a fluent builder for Parlor rules.

It lets stories declare condition/action rules in reading order instead of
assembling domain.EventRule and domain.ChoiceRule values by hand. A rule
without a label is an event; calling Offer or OfferFunc makes it a choice.

Example usage:

	b := dsl.New()

	b.Rule("intro").
		When(dsl.Unset(st, "intro.done")).
		Do(narrate(world.Describe(world.NarratorColor, "A vast hall.")), setFlag("intro.done"))

	b.Rule("wait").
		Offer("World", "Wait").
		Do(eng.RunTurn)

	if err := b.RegisterTo(reg); err != nil {
		log.Fatal(err)
	}
*/
package dsl
