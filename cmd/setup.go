package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gaurav-prasanna/flyerpipe/core/collect"
	"github.com/gaurav-prasanna/flyerpipe/core/config"
	"github.com/gaurav-prasanna/flyerpipe/core/extract"
	"github.com/gaurav-prasanna/flyerpipe/core/fetch"
	"github.com/gaurav-prasanna/flyerpipe/core/logging"
	"github.com/gaurav-prasanna/flyerpipe/core/telemetry"
	"github.com/gaurav-prasanna/flyerpipe/crawl"
	"github.com/spf13/cobra"
)

// pipeline bundles everything a command needs for one run.
type pipeline struct {
	cfg       config.Config
	logger    *slog.Logger
	collector *collect.Collector
	now       func() time.Time

	closers []func(context.Context) error
}

func (p *pipeline) Close(ctx context.Context) {
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i](ctx); err != nil {
			p.logger.Warn("failed to release resource", "err", err)
		}
	}
}

// loadConfig reads the config file and applies explicitly set flags on top.
// It also returns the config files that were read.
func loadConfig(cmd *cobra.Command) (config.Config, []string, error) {
	cfg, sources, err := config.Load(flagConfig)
	if err != nil {
		return cfg, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = flagOutput
	}
	if flags.Changed("report") {
		cfg.Report = flagReport
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds = flagTimeout
	}
	if flags.Changed("debug") {
		cfg.Debug = flagDebug
	}
	if flags.Changed("log-file") {
		cfg.LogFile = flagLogFile
	}

	if err := cfg.Validate(); err != nil {
		return cfg, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, sources, nil
}

// newPipeline initializes logging, telemetry and the pipeline components.
func newPipeline(cmd *cobra.Command) (*pipeline, error) {
	cfg, sources, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", cfg.Timezone, err)
	}
	now := func() time.Time { return time.Now().In(loc) }

	logger, logCloser, err := logging.New(logging.Options{
		File:   cfg.LogFile,
		Debug:  cfg.Debug,
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	p := &pipeline{cfg: cfg, logger: logger, now: now}
	if len(sources) == 0 {
		logger.Debug("no config file found, using defaults", "path", flagConfig)
	} else {
		logger.Debug("loaded config", "files", sources)
	}
	p.closers = append(p.closers, func(context.Context) error { return logCloser.Close() })

	tel, err := telemetry.Setup(cmd.Context(), "flyerpipe", telemetry.Config{
		Endpoint: cfg.Telemetry.Endpoint,
		Headers:  cfg.Telemetry.Headers,
	})
	if err != nil {
		// Tracing is optional; the crawl runs without it.
		logger.Warn("failed to set up telemetry", "err", err)
	} else {
		p.closers = append(p.closers, tel.Shutdown)
	}

	resolver, err := crawl.NewResolver(cfg.BaseURL, cfg.Selectors, logger)
	if err != nil {
		p.Close(cmd.Context())
		return nil, err
	}

	fetcher := fetch.New(fetch.Options{
		Timeout:          cfg.Timeout(),
		UserAgent:        cfg.UserAgent,
		CloudflareBypass: cfg.CloudflareBypass,
	})
	extractor := extract.New(cfg.Selectors, logger, now)

	p.collector = collect.New(fetcher, resolver, extractor, collect.Options{
		BaseURL:      cfg.BaseURL,
		CategoryPath: cfg.CategoryPath,
		Today:        now,
	}, logger)

	return p, nil
}
