/*
Package ports defines the driven ports (interfaces) for the Parlor engine.

These interfaces decouple the turn loop from external implementations, so the
same rules can drive a terminal, an in-memory recorder for tests, or any
other presentation toolkit.

# Key Interfaces

  - Presenter: Receives narration, choice lists, interactivity toggles and redraw requests.
  - Sampler: Supplies uniform random samples for decaying triggers.
*/
package ports
