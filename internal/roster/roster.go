// Package roster contains the fixed roster taxonomy of a team: the 30 roster
// positions, the role each position belongs to and the attributes each role
// exposes.
package roster

import "fmt"

// Position is one of the 30 fixed roster slots of a team.
type Position uint8

// Roster positions in cartridge order.
const (
	QB1 Position = iota
	QB2
	RB1
	RB2
	RB3
	RB4
	WR1
	WR2
	WR3
	WR4
	TE1
	TE2
	OL1
	OL2
	OL3
	OL4
	OL5
	DL1
	DL2
	DL3
	LB1
	LB2
	LB3
	LB4
	DB1
	DB2
	DB3
	DB4
	K1
	P1
)

// PositionCount is the number of roster positions of every team.
const PositionCount = int(P1) + 1

var positionNames = [PositionCount]string{
	"QB1", "QB2",
	"RB1", "RB2", "RB3", "RB4",
	"WR1", "WR2", "WR3", "WR4",
	"TE1", "TE2",
	"OL1", "OL2", "OL3", "OL4", "OL5",
	"DL1", "DL2", "DL3",
	"LB1", "LB2", "LB3", "LB4",
	"DB1", "DB2", "DB3", "DB4",
	"K1", "P1",
}

func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Position(%d)", p)
	}
	return positionNames[p]
}

// Valid returns whether the position is one of the 30 roster slots.
func (p Position) Valid() bool {
	return int(p) < PositionCount
}

// Role returns the role of the position. The result is only meaningful for
// positions that are Valid, use RoleOf to look up untrusted positions.
func (p Position) Role() Role {
	role, _ := RoleOf(p)
	return role
}

// Positions returns all roster positions in cartridge order.
func Positions() []Position {
	positions := make([]Position, PositionCount)
	for i := range positions {
		positions[i] = Position(i)
	}
	return positions
}

// ParsePosition returns the position for a name like "RB2".
func ParsePosition(name string) (Position, error) {
	for i, s := range positionNames {
		if s == name {
			return Position(i), nil
		}
	}
	return 0, fmt.Errorf("unknown roster position '%s'", name)
}

// livePlay lists the positions that accumulate in-game counters, in the
// order their records are stored in a save state.
var livePlay = []Position{
	QB1, QB2,
	RB1, RB2, RB3, RB4,
	WR1, WR2, WR3, WR4,
	TE1, TE2,
	DL1, DL2, DL3,
	LB1, LB2, LB3, LB4,
	DB1, DB2, DB3, DB4,
	K1, P1,
}

// LivePlay returns the 25 live-play positions, all positions except the
// offensive line, in save state record order.
func LivePlay() []Position {
	positions := make([]Position, len(livePlay))
	copy(positions, livePlay)
	return positions
}

// IsLivePlay returns whether the position accumulates in-game counters.
func (p Position) IsLivePlay() bool {
	return p.Valid() && p.Role() != OL
}

// IsSkill returns whether the position is one of the 12 offensive skill
// positions QB1..TE2 that carry an injury status.
func (p Position) IsSkill() bool {
	return p <= TE2
}

// IsDefense returns whether the position is one of the 11 defensive positions.
func (p Position) IsDefense() bool {
	return p >= DL1 && p <= DB4
}
