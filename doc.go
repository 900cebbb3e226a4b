/*
Package parlor is a rule-driven interactive fiction engine.

A story is a world state, a set of actors bound to locations and an ordered
registry of rules. Every turn, the engine fires each event rule whose
predicate holds, collects the choices offered by the choice rules whose
predicate holds, publishes them grouped by topic and advances the logical
clock by one. Player choices run actions that usually narrate, change state
and run the next turn.

# Concept

State lives in an auto-vivifying tree: reading a path that was never written
yields an empty node instead of an error, so predicates can refer to
"hall.desk.seen" before anything created "hall". Flags that a predicate
tests for false must be initialized explicitly.

Rules are plain Go closures. The dsl package offers a fluent builder:

	b.Rule("look").
		When(dsl.Unset(st, "hall.seen")).
		Offer("World", "Look around").
		Do(narrate("A vast hall."), markSeen, eng.RunTurn)

A rule without Offer is an event and fires on its own; a rule with Offer is
a choice.

# Usage

	eng := parlor.New(presenter, parlor.WithSeed(42))
	if err := eng.Define(story); err != nil {
		log.Fatal(err)
	}
	if err := eng.RunTurn(ctx); err != nil {
		log.Fatal(err)
	}

Errors returned by actions abort the turn and surface from RunTurn wrapped
with the rule name. There is no recovery and no guard against an action
that re-enters RunTurn forever.
*/
package parlor
