package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/parlor"
	"github.com/aretw0/parlor/internal/config"
	"github.com/aretw0/parlor/internal/story"
	"github.com/aretw0/parlor/pkg/domain"
	"github.com/aretw0/parlor/pkg/observability"
	"github.com/aretw0/parlor/pkg/runner"
	"github.com/aretw0/parlor/pkg/trigger"
	"github.com/google/uuid"
)

// RunSession plays the hall story once.
func RunSession(ctx context.Context, opts RunOptions) error {
	opts = opts.withDefaults()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := createLogger(opts.Debug, level)

	sessionID := uuid.NewString()
	logger.Info("Session Created", "session_id", sessionID, "config", opts.ConfigPath)

	// Flags win over the config file.
	seed := cfg.Seed
	if opts.Seed != 0 {
		seed = opts.Seed
	}
	width := cfg.Layout.Width
	if opts.Width != 0 {
		width = opts.Width
	}
	pacing := cfg.Pacing.Delay
	if opts.Headless {
		pacing = 0
	}

	metrics := observability.NewMetrics()
	hooks := metrics.Hooks()
	if opts.Debug {
		hooks = domain.MergeHooks(hooks, createDebugHooks(logger))
	}

	presenter := createPresenter(opts, cfg.Layout.HSpacing, cfg.Layout.VSpacing, width)

	engineOpts := []parlor.Option{
		parlor.WithLogger(logger),
		parlor.WithLifecycleHooks(hooks),
		parlor.WithPacing(pacing),
		parlor.WithTriggerDefaults(trigger.Params{
			Initial: cfg.Trigger.Initial,
			Decay:   cfg.Trigger.Decay,
			Floor:   cfg.Trigger.Floor,
		}),
	}
	if seed != 0 {
		engineOpts = append(engineOpts, parlor.WithSeed(seed))
	}
	engine := parlor.New(presenter, engineOpts...)

	hall, err := story.New(engine, cfg.Color)
	if err != nil {
		return err
	}
	rules, err := hall.Rules()
	if err != nil {
		return err
	}
	if err := engine.Register(rules...); err != nil {
		return fmt.Errorf("error initializing parlor: %w", err)
	}

	if !opts.Headless {
		if err := presenter.Banner(); err != nil {
			return err
		}
	}
	if err := presenter.Blurb(story.Blurb); err != nil {
		return err
	}

	r := runner.NewRunner(
		runner.WithLogger(logger),
		runner.WithIO(opts.In, opts.Out),
	)
	runErr := r.Run(ctx, engine, presenter)

	logger.Info("Session Finished",
		"session_id", sessionID,
		"turns", engine.Now(),
		"location", engine.World().Location(),
	)
	if opts.MetricsFile != "" {
		if err := metrics.WriteTextfile(opts.MetricsFile); err != nil {
			logger.Warn("Failed to write metrics", "path", opts.MetricsFile, "error", err)
		}
	}
	if runErr == nil && !opts.Headless && len(presenter.Choices()) > 0 {
		printSystemMessage(opts.Out, "Left at turn %d.", engine.Now())
	}

	return handleExecutionError(runErr)
}
