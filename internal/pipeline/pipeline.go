// Package pipeline orchestrates the decoding workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/retroenv/tsbstats/internal/app"
	"github.com/retroenv/tsbstats/internal/detector"
	"github.com/retroenv/tsbstats/internal/loader"
	"github.com/retroenv/tsbstats/internal/options"
	"github.com/retroenv/tsbstats/internal/rom"
	"github.com/retroenv/tsbstats/internal/savestate"
	"github.com/retroenv/tsbstats/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Publisher publishes decoded snapshots.
type Publisher interface {
	Publish(ctx context.Context, snapshot *writer.Snapshot) error
}

// Pipeline orchestrates the complete decoding workflow.
type Pipeline struct {
	logger    *log.Logger
	detector  *detector.Detector
	loader    *loader.Loader
	publisher Publisher
	now       func() time.Time
}

// Option configures the pipeline.
type Option func(*Pipeline)

// WithPublisher publishes every decoded save state.
func WithPublisher(publisher Publisher) Option {
	return func(p *Pipeline) {
		p.publisher = publisher
	}
}

// New creates a new decoding pipeline.
func New(logger *log.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(logger),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LoadCartridge loads the cartridge given in the options and prints its info.
func (p *Pipeline) LoadCartridge(opts options.Program) (*rom.Rom, error) {
	if kind := p.detector.Detect(opts.ROM); kind == detector.SaveState {
		return nil, fmt.Errorf("file %s is a %s, not a cartridge", opts.ROM, kind)
	}

	r, err := p.loader.LoadCartridge(opts.ROM)
	if err != nil {
		return nil, err
	}
	app.PrintInfo(p.logger, opts, r)
	return r, nil
}

// Execute decodes the save state at path and writes it in the output format
// of the options. The decoded snapshot is published if a publisher is set.
func (p *Pipeline) Execute(ctx context.Context, r *rom.Rom, opts options.Program, path string,
	w io.Writer) (*savestate.SaveState, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if kind := p.detector.Detect(path); kind == detector.Cartridge {
		return nil, fmt.Errorf("file %s is a %s, not a save state", path, kind)
	}

	state, err := p.loader.LoadSaveState(r, path)
	if err != nil {
		return nil, err
	}
	app.PrintSaveStateInfo(p.logger, opts, state)

	var snapshot *writer.Snapshot
	if opts.Format == options.FormatJSON || p.publisher != nil {
		snapshot, err = writer.NewSnapshot(r, state, p.now())
		if err != nil {
			return nil, fmt.Errorf("creating snapshot: %w", err)
		}
	}

	if err := p.write(w, r, state, snapshot, opts.Format); err != nil {
		return nil, err
	}

	if p.publisher != nil {
		if err := p.publisher.Publish(ctx, snapshot); err != nil {
			return nil, fmt.Errorf("publishing snapshot: %w", err)
		}
	}
	return state, nil
}

// Rip writes the roster of the cartridge as CSV.
func (p *Pipeline) Rip(r *rom.Rom, w io.Writer) error {
	if err := writer.WriteRoster(w, r); err != nil {
		return fmt.Errorf("writing roster: %w", err)
	}
	p.logger.Debug("Wrote roster", log.Int("players", len(r.Players())))
	return nil
}

func (p *Pipeline) write(w io.Writer, r *rom.Rom, state *savestate.SaveState,
	snapshot *writer.Snapshot, format string) error {

	var err error
	switch format {
	case options.FormatJSON:
		err = writer.WriteJSON(w, snapshot)
	case options.FormatConditions:
		err = writer.WriteConditions(w, r, state)
	case options.FormatText, "":
		err = writer.WriteStats(w, r, state)
	default:
		return fmt.Errorf("unsupported output format '%s'", format)
	}
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
