package runtime_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/parlor/internal/runtime"
	"github.com/aretw0/parlor/pkg/adapters/memory"
	"github.com/aretw0/parlor/pkg/domain"
	"github.com/aretw0/parlor/pkg/dsl"
	"github.com/aretw0/parlor/pkg/registry"
	"github.com/aretw0/parlor/pkg/state"
	"github.com/aretw0/parlor/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	engine    *runtime.Engine
	world     *world.World
	presenter *memory.Presenter
	rules     *dsl.Builder
	sleeps    []time.Duration
}

func newFixture(t *testing.T, opts ...runtime.EngineOption) *fixture {
	t.Helper()
	f := &fixture{
		world:     world.New(state.New()),
		presenter: memory.NewPresenter(),
		rules:     dsl.New(),
	}
	sleep := func(d time.Duration) { f.sleeps = append(f.sleeps, d) }
	opts = append([]runtime.EngineOption{runtime.WithSleep(sleep)}, opts...)
	f.engine = runtime.NewEngine(registry.NewRegistry(), f.world, f.presenter, opts...)
	return f
}

// commit registers the rules built so far.
func (f *fixture) commit(t *testing.T) {
	t.Helper()
	require.NoError(t, f.rules.RegisterTo(f.engine.Rules()))
}

func (f *fixture) narrate(text string) domain.Action {
	return func(context.Context) error {
		return f.engine.Narrate(text)
	}
}

func (f *fixture) runTurn(ctx context.Context) error {
	return f.engine.RunTurn(ctx)
}

func TestRunTurn_IntroAndWait(t *testing.T) {
	f := newFixture(t)
	f.rules.Rule("intro").Do(f.narrate("intro"))
	f.rules.Rule("wait").Offer("World", "Wait").Do(func(ctx context.Context) error {
		return f.engine.RunTurn(ctx)
	})
	f.commit(t)

	ctx := context.Background()
	require.NoError(t, f.engine.RunTurn(ctx))

	assert.Equal(t, []string{"intro"}, f.presenter.Log())
	groups := f.presenter.Groups()
	require.Len(t, groups, 1)
	assert.Equal(t, "World", groups[0].Topic)
	require.Len(t, groups[0].Choices, 1)
	assert.Equal(t, "Wait", groups[0].Choices[0].Label)
	assert.Equal(t, "wait", groups[0].Choices[0].Rule)
	assert.Equal(t, 1, f.world.Now())

	// The event has no "already fired" guard.
	require.NoError(t, f.presenter.Select(ctx, "World", "Wait"))
	assert.Equal(t, []string{"intro", "intro"}, f.presenter.Log())
	assert.Equal(t, 2, f.world.Now())
}

func TestRunTurn_SeenFlagStopsRefiring(t *testing.T) {
	f := newFixture(t)
	st := f.world.Store()
	st.Set(state.ParsePath("hall.seen"), false)

	f.rules.Rule("enter hall").
		When(dsl.Unset(st, "hall.seen")).
		Do(f.narrate("A vast hall."), dsl.Exec(func() { st.Set(state.ParsePath("hall.seen"), true) }))
	f.commit(t)

	ctx := context.Background()
	require.NoError(t, f.engine.RunTurn(ctx))
	require.NoError(t, f.engine.RunTurn(ctx))
	assert.Equal(t, []string{"A vast hall."}, f.presenter.Log())
}

func TestRunTurn_LaterEventsSeeEarlierEffects(t *testing.T) {
	f := newFixture(t)
	st := f.world.Store()
	st.Set(state.ParsePath("hall.seen"), false)

	f.rules.Rule("intro").
		When(dsl.Unset(st, "hall.seen")).
		Do(f.narrate("intro"), dsl.Exec(func() { st.Set(state.ParsePath("hall.seen"), true) }))
	f.rules.Rule("look").
		When(dsl.Flag(st, "hall.seen"), dsl.Not(dsl.Flag(st, "hall.looked"))).
		Do(f.narrate("look"), dsl.Exec(func() { st.Set(state.ParsePath("hall.looked"), true) }))
	f.commit(t)

	require.NoError(t, f.engine.RunTurn(context.Background()))
	assert.Equal(t, []string{"intro", "look"}, f.presenter.Log())
}

func TestRunTurn_ChoiceOrdering(t *testing.T) {
	f := newFixture(t)
	noop := dsl.Exec(func() {})
	f.rules.Rule("look").Offer("World", "Look around").Do(noop)
	f.rules.Rule("ask").Offer("People", "Ask about the owl").Do(noop)
	f.rules.Rule("wait").Offer("World", "Wait").Do(noop)
	f.rules.Rule("hidden").When(func() bool { return false }).Offer("Alpha", "Never").Do(noop)
	f.rules.Rule("leave").Offer("World", "Leave").Do(noop)
	f.commit(t)

	require.NoError(t, f.engine.RunTurn(context.Background()))
	assert.Equal(t, []string{
		"People/Ask about the owl",
		"World/Look around",
		"World/Wait",
		"World/Leave",
	}, f.presenter.Labels())
}

func TestRunTurn_LabelsAreComputedEachTurn(t *testing.T) {
	f := newFixture(t)
	f.rules.Rule("wait").
		OfferFunc(func() (string, string) {
			if f.world.Now() == 0 {
				return "World", "Wait"
			}
			return "World", "Keep waiting"
		}).
		Do(dsl.Exec(func() {}))
	f.commit(t)

	ctx := context.Background()
	require.NoError(t, f.engine.RunTurn(ctx))
	assert.Equal(t, []string{"World/Wait"}, f.presenter.Labels())
	require.NoError(t, f.engine.RunTurn(ctx))
	assert.Equal(t, []string{"World/Keep waiting"}, f.presenter.Labels())
}

func TestRunTurn_TimeAdvancesByOne(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		f.rules.Rule("e" + string(rune('a'+i))).Do(dsl.Exec(func() {}))
	}
	f.commit(t)

	require.NoError(t, f.engine.RunTurn(context.Background()))
	assert.Equal(t, 1, f.world.Now())

	empty := newFixture(t)
	require.NoError(t, empty.engine.RunTurn(context.Background()))
	assert.Equal(t, 1, empty.world.Now())
	assert.Empty(t, empty.presenter.Groups())
}

func TestRunTurn_PacingSequence(t *testing.T) {
	f := newFixture(t, runtime.WithPacing(250*time.Millisecond))
	f.rules.Rule("one").Do(f.narrate("one"))
	f.rules.Rule("two").Do(f.narrate("two"))
	f.rules.Rule("wait").Offer("World", "Wait").Do(dsl.Exec(func() {}))
	f.commit(t)

	require.NoError(t, f.engine.RunTurn(context.Background()))
	assert.Equal(t, []string{
		"disable", "redraw", "enable", "narrate",
		"disable", "redraw", "enable", "narrate",
		"present",
	}, f.presenter.Calls())
	assert.Equal(t, []time.Duration{250 * time.Millisecond, 250 * time.Millisecond}, f.sleeps)
	assert.True(t, f.presenter.Interactive())
}

func TestRunTurn_ZeroPacingSkipsWait(t *testing.T) {
	f := newFixture(t, runtime.WithPacing(0))
	f.rules.Rule("one").Do(f.narrate("one"))
	f.commit(t)

	require.NoError(t, f.engine.RunTurn(context.Background()))
	assert.Empty(t, f.sleeps)
	assert.Equal(t, 1, f.presenter.Redraws())
}

func TestRunTurn_ReEntrant(t *testing.T) {
	f := newFixture(t)
	depths := []int{}
	f.rules.Rule("probe").Do(dsl.Exec(func() { depths = append(depths, f.engine.Depth()) }))
	f.rules.Rule("look").Offer("World", "Look").Do(
		f.narrate("You look around."),
		f.runTurn,
		f.narrate("after"),
	)
	f.commit(t)

	ctx := context.Background()
	require.NoError(t, f.engine.RunTurn(ctx))
	assert.Equal(t, 0, f.engine.Depth())

	// A choice runs between turns; its nested turn is the only one running.
	require.NoError(t, f.presenter.Select(ctx, "World", "Look"))
	assert.Equal(t, []int{1, 1}, depths)
	assert.Equal(t, 2, f.world.Now())
	assert.Equal(t, "after", f.presenter.Log()[len(f.presenter.Log())-1])

	// An event that re-enters nests one level deeper.
	g := newFixture(t)
	g.world.Store().Set(state.P("once"), false)
	g.rules.Rule("nested").
		When(dsl.Unset(g.world.Store(), "once")).
		Do(dsl.Exec(func() { g.world.Store().Set(state.P("once"), true) }), g.runTurn)
	g.commit(t)

	require.NoError(t, g.engine.RunTurn(ctx))
	assert.Equal(t, 2, g.engine.MaxDepth())
	assert.Equal(t, 2, g.world.Now())
}

func TestRunTurn_ActionErrorIsFatal(t *testing.T) {
	boom := errors.New("boom")
	f := newFixture(t)
	f.rules.Rule("explode").Do(func(context.Context) error { return boom })
	f.rules.Rule("after").Do(f.narrate("unreachable"))
	f.rules.Rule("wait").Offer("World", "Wait").Do(dsl.Exec(func() {}))
	f.commit(t)

	err := f.engine.RunTurn(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `"explode"`)

	assert.Empty(t, f.presenter.Log())
	assert.NotContains(t, f.presenter.Calls(), "present")
	assert.Equal(t, 0, f.world.Now())
	assert.Equal(t, 0, f.engine.Depth())
}

func TestRunTurn_ChoiceErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	f := newFixture(t)
	f.rules.Rule("break").Offer("World", "Break").Do(func(context.Context) error { return boom })
	f.commit(t)

	ctx := context.Background()
	require.NoError(t, f.engine.RunTurn(ctx))
	err := f.presenter.Select(ctx, "World", "Break")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `choice "break"`)
}

func TestRunTurn_InvalidChoice(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		label string
	}{
		{"empty topic", "", "Wait"},
		{"empty label", "World", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.rules.Rule("bad").
				OfferFunc(func() (string, string) { return tt.topic, tt.label }).
				Do(dsl.Exec(func() {}))
			f.commit(t)

			err := f.engine.RunTurn(context.Background())
			assert.ErrorIs(t, err, domain.ErrInvalidChoice)
			assert.Contains(t, err.Error(), `"bad"`)
		})
	}
}

func TestRunTurn_Hooks(t *testing.T) {
	var (
		starts, ends int
		fired        []string
		published    []int
		selected     []string
		lastEnd      *domain.TurnEvent
	)
	hooks := domain.LifecycleHooks{
		OnTurnStart: func(_ context.Context, _ *domain.TurnEvent) { starts++ },
		OnTurnEnd: func(_ context.Context, e *domain.TurnEvent) {
			ends++
			lastEnd = e
		},
		OnEventFire: func(_ context.Context, e *domain.RuleEvent) { fired = append(fired, e.Rule) },
		OnChoicesPublished: func(_ context.Context, e *domain.ChoiceEvent) {
			published = append(published, e.Count)
		},
		OnChoiceSelected: func(_ context.Context, e *domain.ChoiceEvent) {
			selected = append(selected, e.Topic+"/"+e.Label)
		},
	}

	stamp := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, runtime.WithLifecycleHooks(hooks), runtime.WithClock(func() time.Time { return stamp }))
	f.rules.Rule("intro").Do(f.narrate("intro"))
	f.rules.Rule("wait").Offer("World", "Wait").Do(f.runTurn)
	f.rules.Rule("look").Offer("World", "Look").Do(dsl.Exec(func() {}))
	f.commit(t)

	ctx := context.Background()
	require.NoError(t, f.engine.RunTurn(ctx))
	require.NoError(t, f.presenter.Select(ctx, "World", "Wait"))

	assert.Equal(t, 2, starts)
	assert.Equal(t, 2, ends)
	assert.Equal(t, []string{"intro", "intro"}, fired)
	assert.Equal(t, []int{2, 2}, published)
	assert.Equal(t, []string{"World/Wait"}, selected)

	require.NotNil(t, lastEnd)
	assert.Equal(t, domain.EventTurnEnd, lastEnd.Type)
	assert.Equal(t, 1, lastEnd.EventsFired)
	assert.Equal(t, 2, lastEnd.Choices)
	assert.Equal(t, stamp, lastEnd.Timestamp)
}
