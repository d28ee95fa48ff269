// Package loader handles cartridge and save state file loading operations.
package loader

import (
	"fmt"

	"github.com/retroenv/tsbstats/internal/rom"
	"github.com/retroenv/tsbstats/internal/savestate"
	"github.com/retroenv/retrogolib/log"
)

// Loader handles loading cartridge and save state files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// LoadCartridge loads and decodes the team and player catalog of a
// cartridge image.
func (l *Loader) LoadCartridge(path string) (*rom.Rom, error) {
	r, err := rom.Load(path, rom.WithLogger(l.logger))
	if err != nil {
		return nil, fmt.Errorf("loading cartridge: %w", err)
	}
	return r, nil
}

// LoadSaveState loads and decodes a save state, resolving its teams using
// the catalog.
func (l *Loader) LoadSaveState(catalog savestate.Catalog, path string) (*savestate.SaveState, error) {
	state, err := savestate.Load(catalog, path, savestate.WithLogger(l.logger))
	if err != nil {
		return nil, fmt.Errorf("loading save state: %w", err)
	}
	return state, nil
}
