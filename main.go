// Package main implements the Tecmo Super Bowl cartridge and save state decoder
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/tsbstats/internal/cli"
	"github.com/retroenv/tsbstats/internal/config"
	"github.com/retroenv/tsbstats/internal/fileprocessor"
	"github.com/retroenv/tsbstats/internal/options"
	"github.com/retroenv/tsbstats/internal/pipeline"
	"github.com/retroenv/tsbstats/internal/publisher"
	"github.com/retroenv/tsbstats/internal/rom"
	"github.com/retroenv/tsbstats/internal/watch"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	var pipelineOptions []pipeline.Option
	if opts.Publishing() {
		client, err := config.CreateRedisClient(opts.Redis)
		if err != nil {
			logger.Fatal("Creating Redis client failed", log.Err(err))
		}
		defer func() { _ = client.Close() }()

		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatal("Connecting to Redis failed", log.Err(err))
		}
		pub := publisher.New(logger, client, opts.Stream, opts.TTL)
		pipelineOptions = append(pipelineOptions, pipeline.WithPublisher(pub))
	}

	p := pipeline.New(logger, pipelineOptions...)
	r, err := p.LoadCartridge(opts)
	if err != nil {
		logger.Fatal("Loading cartridge failed", log.Err(err))
	}

	if opts.Rip != "" {
		if err := fileprocessor.RipRoster(p, r, opts); err != nil {
			logger.Error("Writing roster failed", log.Err(err))
		}
	}

	if opts.Watch {
		runWatch(ctx, logger, p, r, opts)
		return
	}

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Fatal(err.Error())
	}

	for _, file := range files {
		opts.State = file
		if opts.Batch != "" {
			opts.Output = fileprocessor.GenerateOutputFilename(file, opts.Format)
		}

		if err := fileprocessor.ProcessFile(ctx, logger, p, r, opts); err != nil {
			// Handle context cancellation (Ctrl+C) gracefully
			if errors.Is(err, context.Canceled) {
				logger.Info("Operation cancelled")
				return
			}
			logger.Error("Decoding failed", log.String("file", file), log.Err(err))
		}
	}
}

func runWatch(ctx context.Context, logger *log.Logger, p *pipeline.Pipeline, r *rom.Rom, opts options.Program) {
	w := watch.New(logger, opts.State, opts.Interval, func(ctx context.Context, path string) error {
		opts.State = path
		return fileprocessor.ProcessFile(ctx, logger, p, r, opts)
	})

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Watching failed", log.Err(err))
		os.Exit(1)
	}
	logger.Info("Watching stopped")
}
