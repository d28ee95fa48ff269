package layout

import "github.com/retroenv/tsbstats/internal/roster"

// SideOffsets holds an offset for each side of a game.
type SideOffsets struct {
	Home int
	Away int
}

// SaveState describes the save state layout.
type SaveState struct {
	MinSize int
	MaxSize int

	TeamIndex SideOffsets
	Score     SideOffsets // BCD

	// Stats is the start of the home team's live-play records. The away
	// records start AwayGap bytes after the end of the home records.
	Stats   int
	AwayGap int

	// Tackles holds 11 home counts followed by 11 away counts for DL1..DB4.
	Tackles int

	// Injuries holds 3 bytes of injury codes per side, followed directly by
	// ConditionBytes bytes of condition codes.
	Injuries       SideOffsets
	InjuryBytes    int
	ConditionBytes int

	Possession    int
	PossessionBit byte // mask of the bit that is set when the away team has the ball

	StartingLineup SideOffsets // P1 and P2

	ClockSeconds int // BCD
	ClockMinutes int // BCD
	ClockQuarter int // 0-based
}

// State is the save state layout shared by both cartridge variants.
var State = SaveState{
	MinSize: 10000,
	MaxSize: 15000,

	TeamIndex: SideOffsets{Home: 0xA4, Away: 0xA5},
	Score:     SideOffsets{Home: 977, Away: 982},

	Stats: 5781,
	// the away block begins 20 bytes after the home punter record
	AwayGap: 20,

	Tackles: 12815,

	Injuries:       SideOffsets{Home: 6031, Away: 6292},
	InjuryBytes:    3,
	ConditionBytes: 8,

	Possession:    0xA8,
	PossessionBit: 1 << 6,

	StartingLineup: SideOffsets{Home: 0x178B, Away: 0x1890},

	ClockSeconds: 162,
	ClockMinutes: 163,
	ClockQuarter: 174,
}

// recordWidths is the byte width of a live-play record per role.
var recordWidths = [roster.RoleCount]int{
	roster.QB: 10,
	roster.RB: 16,
	roster.WR: 16,
	roster.TE: 16,
	roster.OL: 0,
	roster.DL: 5,
	roster.LB: 5,
	roster.DB: 5,
	roster.K:  4,
	roster.P:  2,
}

// RecordWidth returns the byte width of the statistics record of a role.
// The offensive line has no record.
func RecordWidth(role roster.Role) int {
	return recordWidths[role]
}

// TeamRecordsWidth returns the byte width of all live-play records of a team.
func TeamRecordsWidth() int {
	width := 0
	for _, p := range roster.LivePlay() {
		width += RecordWidth(p.Role())
	}
	return width
}

// TackleCount is the number of positions with tackle counts, DL1..DB4.
const TackleCount = 11

// LineupSlots names the starting lineup slots in the order of their nibbles.
var LineupSlots = []string{"QB", "RB1", "RB2", "WR1", "WR2", "TE", "KR", "PR"}
