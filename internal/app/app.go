// Package app provides the main application helpers of the decoder.
package app

import (
	"github.com/retroenv/tsbstats/internal/options"
	"github.com/retroenv/tsbstats/internal/rom"
	"github.com/retroenv/tsbstats/internal/savestate"
	"github.com/retroenv/retrogolib/log"
)

// mmc3 is the mapper number of Tecmo Super Bowl cartridges.
const mmc3 uint16 = 4

// PrintInfo prints the information about the loaded cartridge.
func PrintInfo(logger *log.Logger, opts options.Program, r *rom.Rom) {
	for _, warning := range r.Warnings() {
		logger.Warn("Cartridge layout detection", log.Err(warning))
	}
	if opts.Quiet {
		return
	}

	prg, chr := r.Size()
	logger.Info("Loaded cartridge",
		log.String("file", opts.ROM),
		log.String("name", r.DisplayName()),
		log.Stringer("variant", r.Variant()),
		log.Int("teams", r.TeamCount()),
		log.Int("players", len(r.Players())),
		log.Uint16("mapper", r.Mapper()),
		log.Int("prg", prg),
		log.Int("chr", chr),
	)
	if r.HasTacklePatch() {
		logger.Info("Cartridge contains the tackle statistics patch")
	}
	if r.Mapper() != mmc3 {
		logger.Warn("Cartridge uses an unexpected mapper, it is probably not a Tecmo Super Bowl image",
			log.Uint16("mapper", r.Mapper()))
	}
}

// PrintSaveStateInfo prints a summary of a decoded save state.
func PrintSaveStateInfo(logger *log.Logger, opts options.Program, state *savestate.SaveState) {
	for _, warning := range state.Warnings() {
		logger.Warn("Save state decoding", log.String("file", state.Name()), log.Err(warning))
	}
	if opts.Quiet {
		return
	}

	home := state.HomeTeamStats()
	away := state.AwayTeamStats()
	logger.Info("Decoded save state",
		log.String("file", state.Name()),
		log.Stringer("clock", state.GameClock()),
		log.String("home", home.TeamLabel),
		log.Int("home_score", home.Score),
		log.String("away", away.TeamLabel),
		log.Int("away_score", away.Score),
	)
}
