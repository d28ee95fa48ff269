package roster

import "fmt"

// Role is the coarse classification of a roster position.
type Role uint8

// Roster roles in cartridge order.
const (
	QB Role = iota
	RB
	WR
	TE
	OL
	DL
	LB
	DB
	K
	P
)

// RoleCount is the number of roster roles.
const RoleCount = int(P) + 1

var roleNames = [RoleCount]string{"QB", "RB", "WR", "TE", "OL", "DL", "LB", "DB", "K", "P"}

func (r Role) String() string {
	if int(r) >= RoleCount {
		return fmt.Sprintf("Role(%d)", r)
	}
	return roleNames[r]
}

// Roles returns all roles in cartridge order.
func Roles() []Role {
	roles := make([]Role, RoleCount)
	for i := range roles {
		roles[i] = Role(i)
	}
	return roles
}

// roleRanges maps every role to its first and last position. The ranges are
// contiguous and in role order, every position belongs to exactly one range.
var roleRanges = [RoleCount][2]Position{
	QB: {QB1, QB2},
	RB: {RB1, RB4},
	WR: {WR1, WR4},
	TE: {TE1, TE2},
	OL: {OL1, OL5},
	DL: {DL1, DL3},
	LB: {LB1, LB4},
	DB: {DB1, DB4},
	K:  {K1, K1},
	P:  {P1, P1},
}

// RoleOf maps a roster position to its role, for example QB1 -> QB.
// It returns false for positions outside of the 30 roster slots.
func RoleOf(position Position) (Role, bool) {
	for role, rng := range roleRanges {
		if position >= rng[0] && position <= rng[1] {
			return Role(role), true
		}
	}
	return 0, false
}

// Range returns the first and last position of the role.
func (r Role) Range() (first, last Position) {
	rng := roleRanges[r]
	return rng[0], rng[1]
}

// Positions returns all positions of the role in roster order.
func (r Role) Positions() []Position {
	first, last := r.Range()
	positions := make([]Position, 0, int(last-first)+1)
	for p := first; p <= last; p++ {
		positions = append(positions, p)
	}
	return positions
}

// IsOffenseSkill returns whether the role is a ball carrying offensive role
// sharing the receiving/returning/rushing record: RB, WR or TE.
func (r Role) IsOffenseSkill() bool {
	return r == RB || r == WR || r == TE
}

// IsDefense returns whether the role is DL, LB or DB.
func (r Role) IsDefense() bool {
	return r == DL || r == LB || r == DB
}
