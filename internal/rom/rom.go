// Package rom decodes the team and player catalog of a Tecmo Super Bowl
// cartridge image.
package rom

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/tsbstats/internal/decodeerr"
	"github.com/retroenv/tsbstats/internal/layout"
	"github.com/retroenv/tsbstats/internal/roster"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
	"github.com/retroenv/retrogolib/log"
)

const displayNameLength = 16

// Rom is an immutable catalog of the teams and players of a cartridge.
// It is safe for concurrent read access.
type Rom struct {
	name   string
	data   decodeerr.Buffer
	layout layout.ROM

	tacklePatch bool
	mapper      uint16
	prgSize     int
	chrSize     int

	teams    []*Team
	players  []*Player
	warnings []error
}

// Option configures the cartridge decoding.
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

// Load reads and decodes the cartridge file at path.
func Load(path string, opts ...Option) (*Rom, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading cartridge '%s': %w", decodeerr.ErrIO, path, err)
	}
	return Parse(filepath.Base(path), data, opts...)
}

// Parse decodes a cartridge image. The name is used for the display name,
// usually the file name of the image.
func Parse(name string, data []byte, opts ...Option) (*Rom, error) {
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

	cart, err := cartridge.LoadFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing iNES header: %w", decodeerr.ErrCorruptData, err)
	}

	r := &Rom{
		name:    name,
		data:    decodeerr.Buffer(data),
		mapper:  cart.Mapper,
		prgSize: len(cart.PRG),
		chrSize: len(cart.CHR),
	}

	variant, warning := detectVariant(r.data)
	if warning != nil {
		r.warnings = append(r.warnings, warning)
		logger.Warn("Unknown cartridge variant, using default layout",
			log.String("variant", variant.String()),
			log.Err(warning))
	}

	r.layout, err = layout.ROMLayout(variant)
	if err != nil {
		return nil, err
	}
	r.tacklePatch = r.data.Equal(layout.Header.TacklePatch.Offset, layout.Header.TacklePatch.Bytes)

	logger.Debug("Detected cartridge layout",
		log.String("variant", variant.String()),
		log.Int("teams", r.layout.TeamCount),
		log.String("tackle_patch", fmt.Sprint(r.tacklePatch)))

	r.teams, err = decodeTeams(r.data, r.layout)
	if err != nil {
		return nil, fmt.Errorf("decoding teams: %w", err)
	}
	r.players, err = decodePlayers(r.data, r.layout, r.teams, logger)
	if err != nil {
		return nil, fmt.Errorf("decoding players: %w", err)
	}
	return r, nil
}

// detectVariant reads the variant sentinel. An unknown sentinel value selects
// the 28-team layout and returns a warning wrapping ErrUnsupportedVariant.
func detectVariant(data decodeerr.Buffer) (layout.Variant, error) {
	sentinel := layout.Header.Variant
	value, err := data.Byte(sentinel.Offset)
	if err != nil {
		return layout.TwentyEightTeam, fmt.Errorf("%w: %w", decodeerr.ErrUnsupportedVariant, err)
	}

	switch value {
	case sentinel.ThirtyTwoTeam:
		return layout.ThirtyTwoTeam, nil
	case sentinel.TwentyEight:
		return layout.TwentyEightTeam, nil
	default:
		return layout.TwentyEightTeam, fmt.Errorf("%w: sentinel byte 0x%02X at offset 0x%X",
			decodeerr.ErrUnsupportedVariant, value, sentinel.Offset)
	}
}

// Name returns the name the cartridge was loaded with.
func (r *Rom) Name() string {
	return r.name
}

// DisplayName returns the file name without extension, shortened to 16
// characters.
func (r *Rom) DisplayName() string {
	name := strings.TrimSuffix(r.name, filepath.Ext(r.name))
	if len(name) > displayNameLength {
		name = name[:displayNameLength]
	}
	return name
}

// Variant returns the detected layout variant.
func (r *Rom) Variant() layout.Variant {
	return r.layout.Variant
}

// Is32TeamVariant returns whether the cartridge uses the 32-team layout.
func (r *Rom) Is32TeamVariant() bool {
	return r.layout.Variant == layout.ThirtyTwoTeam
}

// HasTacklePatch returns whether the tackle statistics patch is applied.
func (r *Rom) HasTacklePatch() bool {
	return r.tacklePatch
}

// TracksTackles returns whether save states of this cartridge carry tackle
// counts, which is the case for patched and for 32-team cartridges.
func (r *Rom) TracksTackles() bool {
	return r.tacklePatch || r.Is32TeamVariant()
}

// TeamCount returns the number of team slots, 28 or 32.
func (r *Rom) TeamCount() int {
	return r.layout.TeamCount
}

// Mapper returns the iNES mapper number of the cartridge.
func (r *Rom) Mapper() uint16 {
	return r.mapper
}

// Size returns the PRG and CHR sizes of the cartridge in bytes.
func (r *Rom) Size() (prg, chr int) {
	return r.prgSize, r.chrSize
}

// Warnings returns the non fatal problems found while decoding.
func (r *Rom) Warnings() []error {
	return append([]error(nil), r.warnings...)
}

// Teams returns all teams in cartridge order. The index of a team in the
// result is the team index referenced by save states.
func (r *Rom) Teams() []*Team {
	return append([]*Team(nil), r.teams...)
}

// Players returns all players of all teams in cartridge order.
func (r *Rom) Players() []*Player {
	return append([]*Player(nil), r.players...)
}

// TeamAt returns the team of the given slot index.
func (r *Rom) TeamAt(index int) (*Team, error) {
	if index < 0 || index >= len(r.teams) {
		return nil, decodeerr.Corrupt("team index %d out of range, cartridge has %d teams", index, len(r.teams))
	}
	return r.teams[index], nil
}

// Team returns the team with the given label.
func (r *Rom) Team(label string) (*Team, bool) {
	for _, team := range r.teams {
		if team.label == label {
			return team, true
		}
	}
	return nil, false
}

// Player returns the player of a team label at a roster position.
func (r *Rom) Player(teamLabel string, position roster.Position) (*Player, error) {
	team, ok := r.Team(teamLabel)
	if !ok {
		return nil, decodeerr.Corrupt("unknown team '%s'", teamLabel)
	}
	player, ok := team.Player(position)
	if !ok {
		return nil, decodeerr.Corrupt("team '%s' has no player at %s", teamLabel, position)
	}
	return player, nil
}
