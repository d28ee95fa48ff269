// Package savestate decodes the game statistics of an emulator save state
// of a Tecmo Super Bowl game.
package savestate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/retroenv/tsbstats/internal/attribute"
	"github.com/retroenv/tsbstats/internal/decodeerr"
	"github.com/retroenv/tsbstats/internal/layout"
	"github.com/retroenv/tsbstats/internal/rom"
	"github.com/retroenv/tsbstats/internal/roster"
	"github.com/retroenv/retrogolib/log"
)

// Catalog resolves the team indexes stored in a save state.
type Catalog interface {
	TeamAt(index int) (*rom.Team, error)
	TracksTackles() bool
}

// Lineup maps a starting lineup slot label like "RB1" to the roster
// position occupying it.
type Lineup map[string]roster.Position

// Slots returns the slot labels in lineup order.
func (l Lineup) Slots() []string {
	slots := make([]string, 0, len(l))
	for _, slot := range layout.LineupSlots {
		if _, ok := l[slot]; ok {
			slots = append(slots, slot)
		}
	}
	return slots
}

// SlotsOf returns the sorted slot labels a position starts in.
func (l Lineup) SlotsOf(position roster.Position) []string {
	var slots []string
	for slot, p := range l {
		if p == position {
			slots = append(slots, slot)
		}
	}
	sort.Strings(slots)
	return slots
}

// GameClock is the game time of a save state. Minutes and seconds are 0 if
// the stored digits are not decimal.
type GameClock struct {
	Quarter int // 1-based
	Minutes int
	Seconds int

	minutesRaw byte
	secondsRaw byte
}

// String renders the stored clock digits, which matches the decimal values
// for a valid clock.
func (c GameClock) String() string {
	return fmt.Sprintf("Q%d: %02X:%02X", c.Quarter, c.minutesRaw, c.secondsRaw)
}

// SaveState is an immutable decoded save state.
type SaveState struct {
	name string
	size int

	home *TeamStats
	away *TeamStats

	lineups     [2]Lineup
	homeHasBall bool
	clock       GameClock
	warnings    []error
}

// Option configures the save state decoding.
type Option func(*settings)

type settings struct {
	logger *log.Logger
}

// WithLogger sets the logger used while decoding.
func WithLogger(logger *log.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// Load reads and decodes the save state file at path. The size of the file
// is checked before its content is read.
func Load(catalog Catalog, path string, opts ...Option) (*SaveState, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading save state '%s': %w", decodeerr.ErrIO, path, err)
	}
	if err := checkSize(int(info.Size())); err != nil {
		return nil, fmt.Errorf("save state '%s': %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading save state '%s': %w", decodeerr.ErrIO, path, err)
	}
	return Decode(catalog, filepath.Base(path), data, opts...)
}

// Decode decodes the save state data using the catalog to resolve teams.
func Decode(catalog Catalog, name string, data []byte, opts ...Option) (*SaveState, error) {
	if err := checkSize(len(data)); err != nil {
		return nil, err
	}

	s := settings{}
	for _, opt := range opts {
		opt(&s)
	}
	logger := s.logger
	if logger == nil {
		cfg := log.DefaultConfig()
		cfg.Level = log.ErrorLevel
		logger = log.NewWithConfig(cfg)
	}

	buf := decodeerr.Buffer(data)
	state := &SaveState{
		name: name,
		size: len(data),
	}

	var err error
	state.home, err = decodeTeamHeader(buf, catalog, Home, layout.State.TeamIndex.Home, layout.State.Score.Home)
	if err != nil {
		return nil, fmt.Errorf("decoding home team: %w", err)
	}
	state.away, err = decodeTeamHeader(buf, catalog, Away, layout.State.TeamIndex.Away, layout.State.Score.Away)
	if err != nil {
		return nil, fmt.Errorf("decoding away team: %w", err)
	}

	homeEnd, err := state.decodeRecords(buf)
	if err != nil {
		return nil, err
	}
	logger.Debug("Decoded live-play records",
		log.String("home", state.home.TeamLabel),
		log.String("away", state.away.TeamLabel),
		log.Int("away_offset", homeEnd+layout.State.AwayGap))

	if catalog.TracksTackles() {
		if err := decodeTackles(buf, state.home, state.away); err != nil {
			return nil, fmt.Errorf("decoding tackles: %w", err)
		}
	}

	if err := decodeInjuriesAndConditions(buf, layout.State.Injuries.Home, state.home); err != nil {
		return nil, fmt.Errorf("decoding home injuries: %w", err)
	}
	if err := decodeInjuriesAndConditions(buf, layout.State.Injuries.Away, state.away); err != nil {
		return nil, fmt.Errorf("decoding away injuries: %w", err)
	}

	for side, offset := range []int{layout.State.StartingLineup.Home, layout.State.StartingLineup.Away} {
		state.lineups[side], err = decodeLineup(buf, offset)
		if err != nil {
			return nil, fmt.Errorf("decoding %s starting lineup: %w", Stadium(side), err)
		}
	}

	possession, err := buf.Byte(layout.State.Possession)
	if err != nil {
		return nil, fmt.Errorf("decoding possession: %w", err)
	}
	state.homeHasBall = possession&layout.State.PossessionBit == 0
	logger.Debug("Decoded possession", log.Hex("status", possession))

	state.clock, err = decodeClock(buf)
	if err != nil {
		return nil, fmt.Errorf("decoding game clock: %w", err)
	}
	if warning := state.clock.decodeDigits(); warning != nil {
		state.warnings = append(state.warnings, fmt.Errorf("decoding game clock: %w", warning))
		logger.Warn("Invalid game clock digits", log.Stringer("clock", state.clock), log.Err(warning))
	}

	return state, nil
}

func checkSize(size int) error {
	if size < layout.State.MinSize || size > layout.State.MaxSize {
		return &decodeerr.SizeError{
			Size: size,
			Min:  layout.State.MinSize,
			Max:  layout.State.MaxSize,
		}
	}
	return nil
}

func decodeTeamHeader(data decodeerr.Buffer, catalog Catalog, side Stadium, indexOffset, scoreOffset int) (*TeamStats, error) {
	index, err := data.Byte(indexOffset)
	if err != nil {
		return nil, err
	}
	team, err := catalog.TeamAt(int(index))
	if err != nil {
		return nil, err
	}

	b, err := data.Byte(scoreOffset)
	if err != nil {
		return nil, err
	}
	score, err := decodeBCD(b)
	if err != nil {
		return nil, fmt.Errorf("decoding score: %w", err)
	}

	return &TeamStats{
		Side:      side,
		TeamIndex: int(index),
		TeamLabel: team.Label(),
		Score:     score,
	}, nil
}

// decodeRecords decodes the live-play records of both teams, the away
// records follow the home records after a fixed gap. It returns the end
// offset of the home records.
func (s *SaveState) decodeRecords(data decodeerr.Buffer) (int, error) {
	records, homeEnd, err := decodeTeamRecords(data, layout.State.Stats)
	if err != nil {
		return 0, fmt.Errorf("decoding home records: %w", err)
	}
	s.home.records = records

	records, _, err = decodeTeamRecords(data, homeEnd+layout.State.AwayGap)
	if err != nil {
		return 0, fmt.Errorf("decoding away records: %w", err)
	}
	s.away.records = records
	return homeEnd, nil
}

// Name returns the file name of the save state.
func (s *SaveState) Name() string {
	return s.name
}

// Size returns the byte size of the save state.
func (s *SaveState) Size() int {
	return s.size
}

// HomeTeamStats returns the statistics of the home team.
func (s *SaveState) HomeTeamStats() *TeamStats {
	return s.home
}

// AwayTeamStats returns the statistics of the away team.
func (s *SaveState) AwayTeamStats() *TeamStats {
	return s.away
}

// TeamStats returns the statistics of the team playing on the given side.
func (s *SaveState) TeamStats(side Stadium) *TeamStats {
	if side == Away {
		return s.away
	}
	return s.home
}

// DoesHomeTeamHaveBall returns whether the home team is in possession.
func (s *SaveState) DoesHomeTeamHaveBall() bool {
	return s.homeHasBall
}

// StartingLineup returns a copy of the offensive starters of a side.
// Player 1 controls the home team.
func (s *SaveState) StartingLineup(side Stadium) Lineup {
	src := s.lineups[Home]
	if side == Away {
		src = s.lineups[Away]
	}
	lineup := make(Lineup, len(src))
	for slot, position := range src {
		lineup[slot] = position
	}
	return lineup
}

// GameClock returns the game time.
func (s *SaveState) GameClock() GameClock {
	return s.clock
}

// Warnings returns the problems found in fields that do not affect the
// decoded statistics, like an invalid game clock.
func (s *SaveState) Warnings() []error {
	warnings := make([]error, len(s.warnings))
	copy(warnings, s.warnings)
	return warnings
}

// AdjustedAttribute returns the value of a player attribute after applying
// the effect of a condition.
func AdjustedAttribute(player *rom.Player, attr roster.Attribute, condition Condition) (int, error) {
	value, err := player.Attribute(attr)
	if err != nil {
		return 0, err
	}
	return attribute.AdjustForCondition(value, condition.Delta())
}
