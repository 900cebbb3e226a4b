package tests

import (
	"context"
	"testing"

	"github.com/aretw0/parlor/pkg/domain"
	"github.com/aretw0/parlor/pkg/ports"
	"github.com/stretchr/testify/require"
)

// PresenterContractTest is a reusable test suite that verifies if an adapter
// complies with ports.Presenter. Presenters must accept any sequence of calls
// without failing on well-formed input.
func PresenterContractTest(t *testing.T, p ports.Presenter) {
	t.Helper()

	noop := func(context.Context) error { return nil }

	t.Run("Narrate", func(t *testing.T) {
		require.NoError(t, p.Narrate(`<p><b style="color:#c0392b">Rachel:</b> This is an owl.</p>`))
		require.NoError(t, p.Narrate(`<span style="color:#7f8c8d">A vast hall.</span>`))
		require.NoError(t, p.Narrate("plain text"))
	})

	t.Run("PresentChoices", func(t *testing.T) {
		groups := []domain.TopicGroup{
			{Topic: "People", Choices: []domain.Choice{{Topic: "People", Label: "Ask about the owl", Invoke: noop}}},
			{Topic: "World", Choices: []domain.Choice{
				{Topic: "World", Label: "Look around", Invoke: noop},
				{Topic: "World", Label: "Wait", Invoke: noop},
			}},
		}
		require.NoError(t, p.PresentChoices(groups))
		require.NoError(t, p.PresentChoices(nil))
	})

	t.Run("Interactivity", func(t *testing.T) {
		require.NoError(t, p.SetInteractive(false))
		require.NoError(t, p.RedrawNow())
		require.NoError(t, p.SetInteractive(true))
		require.NoError(t, p.SetInteractive(true))
	})
}
