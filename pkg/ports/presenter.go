package ports

import "github.com/aretw0/parlor/pkg/domain"

// Presenter is the presentation layer the engine drives.
type Presenter interface {
	// Narrate appends a styled markup fragment to the persistent, append-only log.
	Narrate(fragment string) error

	// PresentChoices replaces the currently displayed choice set.
	PresentChoices(groups []domain.TopicGroup) error

	// SetInteractive enables or disables every displayed choice without
	// destroying it.
	SetInteractive(enabled bool) error

	// RedrawNow forces an immediate visual refresh.
	RedrawNow() error
}

// Sampler is a uniform [0,1) random source.
// *rand.Rand from math/rand/v2 satisfies it.
type Sampler interface {
	Float64() float64
}
