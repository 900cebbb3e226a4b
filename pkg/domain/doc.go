/*
Package domain contains the core domain models of the Parlor engine.

It defines rules, choices and lifecycle events. This package is kept pure
and free of external dependencies like I/O or presentation.

# Key Entities

  - EventRule: a predicate paired with an action that fires on its own.
  - ChoiceRule: a predicate paired with a label producer and an action the player selects.
  - TopicGroup: the choices of one topic, as handed to the presentation layer.
  - LifecycleHooks: callbacks for turn, rule and choice events.
*/
package domain
