package rom

import (
	"fmt"

	"github.com/retroenv/tsbstats/internal/attribute"
	"github.com/retroenv/tsbstats/internal/decodeerr"
	"github.com/retroenv/tsbstats/internal/layout"
	"github.com/retroenv/tsbstats/internal/roster"
	"github.com/retroenv/retrogolib/log"
)

// Player is a rostered player and the static attributes of the player.
// Players are read-only after decoding.
type Player struct {
	teamLabel    string
	rosterNumber string // two digits, e.g. "84"
	firstName    string
	lastName     string
	position     roster.Position

	attributes map[roster.Attribute]int
}

// TeamLabel returns the label of the team of the player.
func (p *Player) TeamLabel() string {
	return p.teamLabel
}

// RosterNumber returns the jersey number as two digits.
func (p *Player) RosterNumber() string {
	return p.rosterNumber
}

// FirstName returns the first name, it is empty for single name players.
func (p *Player) FirstName() string {
	return p.firstName
}

// LastName returns the last name.
func (p *Player) LastName() string {
	return p.lastName
}

// Position returns the roster position of the player.
func (p *Player) Position() roster.Position {
	return p.position
}

// Role returns the roster role of the player.
func (p *Player) Role() roster.Role {
	return p.position.Role()
}

// Name returns the first and last name separated by a space.
func (p *Player) Name() string {
	if p.firstName == "" {
		return p.lastName
	}
	return p.firstName + " " + p.lastName
}

// Attribute returns the scaled 6..100 value of an attribute.
func (p *Player) Attribute(attr roster.Attribute) (int, error) {
	value, ok := p.attributes[attr]
	if !ok {
		return 0, decodeerr.Corrupt("%s player %s has no attribute %s", p.Role(), p.Name(), attr)
	}
	return value, nil
}

// AttributeValue is an attribute with its scaled value.
type AttributeValue struct {
	Attribute roster.Attribute
	Value     int
}

// Attributes returns the attribute values in the cartridge order of the
// player's role.
func (p *Player) Attributes() []AttributeValue {
	attrs := roster.AttributesFor(p.Role())
	values := make([]AttributeValue, 0, len(attrs))
	for _, attr := range attrs {
		values = append(values, AttributeValue{Attribute: attr, Value: p.attributes[attr]})
	}
	return values
}

func (p *Player) String() string {
	return fmt.Sprintf("%s %s (%s)", p.rosterNumber, p.Name(), p.position)
}

// playerCursor is the read position of the player walk. Both offsets only
// ever advance, the name bank switches once for the secondary bank.
type playerCursor struct {
	namePointer int
	nameAdjust  int
	attributes  int
	secondary   bool
}

func decodePlayers(data decodeerr.Buffer, l layout.ROM, teams []*Team, logger *log.Logger) ([]*Player, error) {
	cursor := playerCursor{
		namePointer: l.PlayerNames.Base,
		nameAdjust:  l.PlayerNames.Adjust,
		attributes:  l.Attributes,
	}

	var players []*Player
	for _, team := range teams {
		if l.IsPlaceholder(team.name) {
			logger.Debug("Skipping placeholder team", log.String("team", team.name))
			continue
		}
		if !cursor.secondary && l.UsesSecondaryPlayerNames() && team.index >= l.SecondaryFromTeam {
			cursor = playerCursor{
				namePointer: l.SecondaryPlayerNames.Base,
				nameAdjust:  l.SecondaryPlayerNames.Adjust,
				attributes:  cursor.attributes,
				secondary:   true,
			}
			logger.Debug("Switching to secondary player name bank",
				log.String("team", team.label),
				log.Hex("pointer", cursor.namePointer))
		}

		for _, position := range roster.Positions() {
			var (
				player *Player
				err    error
			)
			player, cursor, err = decodePlayer(data, cursor, team.label, position)
			if err != nil {
				return nil, fmt.Errorf("team %s position %s: %w", team.label, position, err)
			}
			players = append(players, player)
			team.roster[position] = player
		}
	}
	return players, nil
}

// decodePlayer decodes the name and attributes of one player and returns
// the cursor advanced past both.
func decodePlayer(data decodeerr.Buffer, cursor playerCursor, teamLabel string,
	position roster.Position) (*Player, playerCursor, error) {

	text, err := pointerText(data, cursor.namePointer, cursor.nameAdjust)
	if err != nil {
		return nil, cursor, fmt.Errorf("reading name: %w", err)
	}
	if len(text) == 0 {
		return nil, cursor, decodeerr.Corrupt("empty player record at pointer 0x%X", cursor.namePointer)
	}

	first, last := splitName(ascii(text[1:]))
	player := &Player{
		teamLabel:    teamLabel,
		rosterNumber: fmt.Sprintf("%02X", text[0]),
		firstName:    first,
		lastName:     last,
		position:     position,
	}

	var next int
	player.attributes, next, err = decodeAttributes(data, cursor.attributes, position.Role())
	if err != nil {
		return nil, cursor, fmt.Errorf("reading attributes: %w", err)
	}

	cursor.namePointer += layout.PointerSize
	cursor.attributes = next
	return player, cursor, nil
}

// decodeAttributes reads the nibble packed attributes of a player of the
// given role at offset and returns the offset of the next player.
func decodeAttributes(data decodeerr.Buffer, offset int, role roster.Role) (map[roster.Attribute]int, int, error) {
	attrs := roster.AttributesFor(role)
	packed, err := data.Slice(offset, roster.AttributeBytes(role))
	if err != nil {
		return nil, offset, err
	}

	codes := make([]byte, 0, len(attrs))
	for _, b := range packed {
		high, low := attribute.SplitNibbles(b)
		codes = append(codes, high, low)
	}

	values := make(map[roster.Attribute]int, len(attrs))
	for i, attr := range attrs {
		value, err := attribute.Decode(codes[i])
		if err != nil {
			return nil, offset, err
		}
		values[attr] = value
	}
	return values, offset + len(packed), nil
}
