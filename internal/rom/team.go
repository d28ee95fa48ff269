package rom

import (
	"fmt"

	"github.com/retroenv/tsbstats/internal/decodeerr"
	"github.com/retroenv/tsbstats/internal/layout"
	"github.com/retroenv/tsbstats/internal/roster"
)

// Team is a team slot of the cartridge. Teams are read-only after decoding.
type Team struct {
	index int
	label string // e.g. "BUF."
	city  string // e.g. "BUFFALO"
	name  string // e.g. "BILLS"

	roster map[roster.Position]*Player
}

// NewTeam returns a team without players. Decoded cartridges create their
// teams themselves, this is for catalogs built from other sources.
func NewTeam(index int, label, city, name string) *Team {
	return &Team{
		index:  index,
		label:  label,
		city:   city,
		name:   name,
		roster: map[roster.Position]*Player{},
	}
}

// Index returns the slot index of the team.
func (t *Team) Index() int {
	return t.index
}

// Label returns the short label, e.g. "BUF.".
func (t *Team) Label() string {
	return t.label
}

// City returns the city of the team.
func (t *Team) City() string {
	return t.city
}

// Name returns the team name.
func (t *Team) Name() string {
	return t.name
}

// Player returns the player at the roster position.
func (t *Team) Player(position roster.Position) (*Player, bool) {
	p, ok := t.roster[position]
	return p, ok
}

// Roster returns the players of the team in roster order. Conference
// placeholder teams have an empty roster.
func (t *Team) Roster() []*Player {
	players := make([]*Player, 0, len(t.roster))
	for _, position := range roster.Positions() {
		if p, ok := t.roster[position]; ok {
			players = append(players, p)
		}
	}
	return players
}

// HasRoster returns whether players are assigned to the team.
func (t *Team) HasRoster() bool {
	return len(t.roster) > 0
}

// Code returns the first three characters of the label, e.g. "BUF".
func (t *Team) Code() string {
	if len(t.label) > 3 {
		return t.label[:3]
	}
	return t.label
}

func (t *Team) String() string {
	return fmt.Sprintf("%s %s (%s)", t.city, t.name, t.label)
}

// decodeTeams walks the label, city and name pointer banks in parallel.
func decodeTeams(data decodeerr.Buffer, l layout.ROM) ([]*Team, error) {
	teams := make([]*Team, 0, l.TeamCount)
	for i := 0; i < l.TeamCount; i++ {
		team, err := decodeTeam(data, l, i)
		if err != nil {
			return nil, fmt.Errorf("team %d: %w", i, err)
		}
		teams = append(teams, team)
	}
	return teams, nil
}

func decodeTeam(data decodeerr.Buffer, l layout.ROM, index int) (*Team, error) {
	team := NewTeam(index, "", "", "")

	fields := []struct {
		name   string
		bank   layout.PointerBank
		target *string
	}{
		{"label", l.TeamLabels, &team.label},
		{"city", l.TeamCities, &team.city},
		{"name", l.TeamNames, &team.name},
	}
	for _, field := range fields {
		text, err := pointerText(data, field.bank.Base+index*layout.PointerSize, field.bank.Adjust)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", field.name, err)
		}
		*field.target = ascii(text)
	}
	return team, nil
}
