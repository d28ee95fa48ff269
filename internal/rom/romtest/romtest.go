// Package romtest builds synthetic cartridge images for tests.
package romtest

import (
	"fmt"

	"github.com/retroenv/tsbstats/internal/layout"
	"github.com/retroenv/tsbstats/internal/roster"
)

const (
	headerSize  = 16
	prgBanks    = 8
	chrBanks    = 16
	prgBankSize = 16384
	chrBankSize = 8192

	// Size is the size of every built image.
	Size = headerSize + prgBanks*prgBankSize + chrBanks*chrBankSize

	teamTextStart      = 0x1FD00
	secondaryTextStart = 0x30110
)

// Player describes a rostered player. Codes holds one nibble per attribute
// of the position's role, a nil slice fills in a pattern.
type Player struct {
	Number byte
	Name   string // "firstLAST"
	Codes  []byte
}

// Team describes a team slot. Placeholder teams have no players.
type Team struct {
	Label   string
	City    string
	Name    string
	Players []Player
}

// Options controls the built image.
type Options struct {
	Variant     layout.Variant
	TacklePatch bool
	Sentinel    *byte // overrides the variant sentinel byte
}

// Teams returns a set of generated teams for the variant. The 32-team set
// has the AFC and NFC placeholders at slots 28 and 29.
func Teams(variant layout.Variant) []Team {
	l, _ := layout.ROMLayout(variant)
	teams := make([]Team, 0, l.TeamCount)
	for i := 0; i < l.TeamCount; i++ {
		if variant == layout.ThirtyTwoTeam && (i == 28 || i == 29) {
			name := l.Placeholders[i-28]
			teams = append(teams, Team{Label: name + ".", City: name, Name: name})
			continue
		}
		teams = append(teams, GeneratedTeam(i))
	}
	return teams
}

// GeneratedTeam returns a team with a full roster of generated players.
func GeneratedTeam(index int) Team {
	team := Team{
		Label:   fmt.Sprintf("T%02d.", index),
		City:    fmt.Sprintf("CITY%02d", index),
		Name:    fmt.Sprintf("NAME%02d", index),
		Players: make([]Player, roster.PositionCount),
	}
	for _, pos := range roster.Positions() {
		team.Players[pos] = Player{
			Number: byte(0x10 + int(pos)),
			Name:   fmt.Sprintf("p%dt%dLAST", pos, index),
		}
	}
	return team
}

// Codes returns the generated attribute codes for a player without explicit
// codes.
func Codes(team int, position roster.Position) []byte {
	count := len(roster.AttributesFor(position.Role()))
	codes := make([]byte, count)
	for i := range codes {
		codes[i] = byte((team + int(position) + i) % 16)
	}
	return codes
}

type builder struct {
	data   []byte
	layout layout.ROM
}

// Build returns a cartridge image with a valid iNES header containing the
// given teams.
func Build(teams []Team, opts Options) ([]byte, error) {
	l, err := layout.ROMLayout(opts.Variant)
	if err != nil {
		return nil, err
	}
	if len(teams) != l.TeamCount {
		return nil, fmt.Errorf("layout needs %d teams, got %d", l.TeamCount, len(teams))
	}

	b := &builder{
		data:   make([]byte, Size),
		layout: l,
	}
	copy(b.data, []byte{'N', 'E', 'S', 0x1A})
	b.data[4] = prgBanks
	b.data[5] = chrBanks
	b.data[6] = 0x40 // mapper 4

	sentinel := layout.Header.Variant.TwentyEight
	if opts.Variant == layout.ThirtyTwoTeam {
		sentinel = layout.Header.Variant.ThirtyTwoTeam
	}
	if opts.Sentinel != nil {
		sentinel = *opts.Sentinel
	}
	b.data[layout.Header.Variant.Offset] = sentinel
	b.data[layout.Header.Variant.Offset+1] = 0x80

	if opts.TacklePatch {
		copy(b.data[layout.Header.TacklePatch.Offset:], layout.Header.TacklePatch.Bytes)
	}

	if err := b.writeTeams(teams); err != nil {
		return nil, err
	}
	if err := b.writePlayers(teams); err != nil {
		return nil, err
	}
	return b.data, nil
}

func (b *builder) writeTeams(teams []Team) error {
	labels := make([][]byte, len(teams))
	cities := make([][]byte, len(teams))
	names := make([][]byte, len(teams))
	for i, team := range teams {
		labels[i] = []byte(team.Label)
		cities[i] = []byte(team.City)
		names[i] = []byte(team.Name)
	}

	pos := teamTextStart
	var err error
	for _, bank := range []struct {
		bank  layout.PointerBank
		texts [][]byte
	}{
		{b.layout.TeamLabels, labels},
		{b.layout.TeamCities, cities},
		{b.layout.TeamNames, names},
	} {
		pos, err = b.writeBank(bank.bank, bank.texts, pos)
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) writePlayers(teams []Team) error {
	var primary, secondary [][]byte
	attributes := b.layout.Attributes

	for index, team := range teams {
		if b.layout.IsPlaceholder(team.Name) {
			continue
		}
		if len(team.Players) != roster.PositionCount {
			return fmt.Errorf("team %s has %d players", team.Label, len(team.Players))
		}

		for _, pos := range roster.Positions() {
			player := team.Players[pos]
			record := append([]byte{player.Number}, []byte(player.Name)...)
			if b.layout.UsesSecondaryPlayerNames() && index >= b.layout.SecondaryFromTeam {
				secondary = append(secondary, record)
			} else {
				primary = append(primary, record)
			}

			codes := player.Codes
			if codes == nil {
				codes = Codes(index, pos)
			}
			if len(codes) != len(roster.AttributesFor(pos.Role())) {
				return fmt.Errorf("team %s position %s has %d attribute codes", team.Label, pos, len(codes))
			}
			for i := 0; i < len(codes); i += 2 {
				b.data[attributes] = codes[i]<<4 | codes[i+1]&0x0F
				attributes++
			}
		}
	}

	bank := b.layout.PlayerNames
	if _, err := b.writeBank(bank, primary, bank.Base+(len(primary)+1)*layout.PointerSize); err != nil {
		return err
	}
	if len(secondary) > 0 {
		if _, err := b.writeBank(b.layout.SecondaryPlayerNames, secondary, secondaryTextStart); err != nil {
			return err
		}
	}
	return nil
}

// writeBank writes the texts starting at pos and their pointers including
// the terminating pointer, it returns the position after the last text.
func (b *builder) writeBank(bank layout.PointerBank, texts [][]byte, pos int) (int, error) {
	for i, text := range texts {
		if err := b.putPointer(bank.Base+i*layout.PointerSize, pos-bank.Adjust); err != nil {
			return 0, err
		}
		if pos+len(text) > len(b.data) {
			return 0, fmt.Errorf("text at 0x%X exceeds image", pos)
		}
		copy(b.data[pos:], text)
		pos += len(text)
	}
	if err := b.putPointer(bank.Base+len(texts)*layout.PointerSize, pos-bank.Adjust); err != nil {
		return 0, err
	}
	return pos, nil
}

func (b *builder) putPointer(offset, value int) error {
	if value < 0 || value > 0xFFFF {
		return fmt.Errorf("pointer value 0x%X at 0x%X does not fit 16 bits", value, offset)
	}
	b.data[offset] = byte(value)
	b.data[offset+1] = byte(value >> 8)
	return nil
}
