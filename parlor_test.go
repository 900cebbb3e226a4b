package parlor_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/parlor"
	"github.com/aretw0/parlor/pkg/adapters/memory"
	"github.com/aretw0/parlor/pkg/domain"
	"github.com/aretw0/parlor/pkg/dsl"
	"github.com/aretw0/parlor/pkg/state"
	"github.com/aretw0/parlor/pkg/trigger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSampler float64

func (s fixedSampler) Float64() float64 { return float64(s) }

func TestEngine_IntroAndWait(t *testing.T) {
	p := memory.NewPresenter()
	eng := parlor.New(p, parlor.WithPacing(0))

	require.NoError(t, eng.Define(func(b *dsl.Builder) {
		b.Rule("intro").Do(func(context.Context) error { return eng.Narrate("intro") })
		b.Rule("wait").Offer("World", "Wait").Do(eng.RunTurn)
	}))

	ctx := context.Background()
	require.NoError(t, eng.RunTurn(ctx))
	assert.Equal(t, []string{"intro"}, p.Log())
	assert.Equal(t, []string{"World/Wait"}, p.Labels())

	require.NoError(t, p.Select(ctx, "World", "Wait"))
	assert.Equal(t, []string{"intro", "intro"}, p.Log())
	assert.Equal(t, 2, eng.Now())
	assert.Equal(t, 0, eng.Depth())
}

func TestEngine_NoticeUsesSamplerAndDefaults(t *testing.T) {
	p := memory.NewPresenter()
	eng := parlor.New(p,
		parlor.WithSampler(fixedSampler(0.3)),
		parlor.WithTriggerDefaults(trigger.Params{Initial: 0.4, Decay: 0.5, Floor: 0}),
	)
	addr := state.P("owl", "attention")

	assert.True(t, eng.Notice(addr), "0.3 < 0.4")
	assert.False(t, eng.Notice(addr), "0.3 >= 0.2")

	prob, ok := eng.Trigger().Probability(addr)
	require.True(t, ok)
	assert.InDelta(t, 0.1, prob, 1e-9)

	snap := eng.Snapshot()
	require.Contains(t, snap, "owl")
}

func TestEngine_SeedIsDeterministic(t *testing.T) {
	draws := func() []bool {
		eng := parlor.New(memory.NewPresenter(), parlor.WithSeed(7))
		var out []bool
		for i := 0; i < 8; i++ {
			out = append(out, eng.Notice(state.P("n"), trigger.WithDecay(1)))
		}
		return out
	}
	assert.Equal(t, draws(), draws())
}

func TestEngine_OptionsReachRuntime(t *testing.T) {
	var slept []time.Duration
	var fired []string
	hooks := domain.LifecycleHooks{
		OnEventFire: func(_ context.Context, e *domain.RuleEvent) { fired = append(fired, e.Rule) },
	}

	st := state.New()
	st.Set(state.P("time"), 5)

	p := memory.NewPresenter()
	eng := parlor.New(p,
		parlor.WithStore(st),
		parlor.WithPacing(time.Second),
		parlor.WithSleep(func(d time.Duration) { slept = append(slept, d) }),
		parlor.WithLifecycleHooks(hooks),
	)
	require.NoError(t, eng.Register(domain.EventRule{
		Name: "tick",
		When: dsl.Always,
		Do:   dsl.Exec(func() {}),
	}))

	require.NoError(t, eng.RunTurn(context.Background()))
	assert.Equal(t, []time.Duration{time.Second}, slept)
	assert.Equal(t, []string{"tick"}, fired)
	assert.Equal(t, 6, eng.Now())
	assert.Same(t, st, eng.Store())
}

func TestEngine_RegisterRejectsMalformedRules(t *testing.T) {
	eng := parlor.New(memory.NewPresenter())
	err := eng.Register(domain.ChoiceRule{Name: "broken", When: dsl.Always})
	assert.ErrorIs(t, err, domain.ErrInvalidRule)
	assert.Equal(t, 0, eng.Rules().Len())
}
