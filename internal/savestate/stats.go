package savestate

import (
	"fmt"

	"github.com/retroenv/tsbstats/internal/roster"
)

// Stat is a live-play statistic counter.
type Stat uint8

// Statistic counters.
const (
	Pass Stat = iota
	PassComplete
	PassTDs
	PassINTs
	PassYards
	Rush
	RushYards
	RushTDs
	Recs
	RecYards
	RecTDs
	KRAttempts
	KRYards
	KRTDs
	PRAttempts
	PRYards
	PRTDs
	Sacks
	INTs
	INTYards
	INTTDs
	XPAttempts
	XPHits
	FGAttempts
	FGHits
	Punts
	PuntYards
)

var statNames = [...]string{
	"Pass", "PassComplete", "PassTDs", "PassINTs", "PassYards",
	"Rush", "RushYards", "RushTDs",
	"Recs", "RecYards", "RecTDs",
	"KR_Attempts", "KR_Yards", "KR_TDs",
	"PR_Attempts", "PR_Yards", "PR_TDs",
	"Sacks", "INTs", "INT_Yards", "INT_TDs",
	"XP_Attempts", "XP_Hits", "FG_Attempts", "FG_Hits",
	"Punts", "PuntYards",
}

func (s Stat) String() string {
	if int(s) >= len(statNames) {
		return fmt.Sprintf("Stat(%d)", s)
	}
	return statNames[s]
}

// ParseStat returns the stat for a name like "PassYards".
func ParseStat(name string) (Stat, error) {
	for i, s := range statNames {
		if s == name {
			return Stat(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stat '%s'", name)
}

// PlayStats is the role specific live-play record of a position. It is one
// of *QBStats, *OffenseStats, *DefenseStats, *KickerStats or *PunterStats.
type PlayStats interface {
	// Stats returns the counters of the record in storage order.
	Stats() []Stat
	// Value returns a counter, ok is false if the record does not carry it.
	Value(stat Stat) (value int, ok bool)

	playStats()
}

// QBStats is the record of a quarterback.
type QBStats struct {
	PassAttempts      int
	PassCompletions   int
	PassTDs           int
	PassInterceptions int
	PassYards         int
	RushAttempts      int
	RushYards         int
	RushTDs           int
}

// OffenseStats is the record of a running back, wide receiver or tight end.
type OffenseStats struct {
	Receptions         int
	RecYards           int
	RecTDs             int
	KickReturnAttempts int
	KickReturnYards    int
	KickReturnTDs      int
	PuntReturnAttempts int
	PuntReturnYards    int
	PuntReturnTDs      int
	RushAttempts       int
	RushYards          int
	RushTDs            int
}

// DefenseStats is the record of a defensive lineman, linebacker or back.
type DefenseStats struct {
	Sacks             int
	Interceptions     int
	InterceptionYards int
	InterceptionTDs   int
}

// KickerStats is the record of the kicker.
type KickerStats struct {
	XPAttempts int
	XPHits     int
	FGAttempts int
	FGHits     int
}

// PunterStats is the record of the punter.
type PunterStats struct {
	Punts     int
	PuntYards int
}

func (*QBStats) playStats()      {}
func (*OffenseStats) playStats() {}
func (*DefenseStats) playStats() {}
func (*KickerStats) playStats()  {}
func (*PunterStats) playStats()  {}

// Stats implements PlayStats.
func (*QBStats) Stats() []Stat {
	return []Stat{Pass, PassComplete, PassTDs, PassINTs, PassYards, Rush, RushYards, RushTDs}
}

// Value implements PlayStats.
func (s *QBStats) Value(stat Stat) (int, bool) {
	switch stat {
	case Pass:
		return s.PassAttempts, true
	case PassComplete:
		return s.PassCompletions, true
	case PassTDs:
		return s.PassTDs, true
	case PassINTs:
		return s.PassInterceptions, true
	case PassYards:
		return s.PassYards, true
	case Rush:
		return s.RushAttempts, true
	case RushYards:
		return s.RushYards, true
	case RushTDs:
		return s.RushTDs, true
	default:
		return 0, false
	}
}

// Stats implements PlayStats.
func (*OffenseStats) Stats() []Stat {
	return []Stat{
		Recs, RecYards, RecTDs,
		KRAttempts, KRYards, KRTDs,
		PRAttempts, PRYards, PRTDs,
		Rush, RushYards, RushTDs,
	}
}

// Value implements PlayStats.
func (s *OffenseStats) Value(stat Stat) (int, bool) {
	switch stat {
	case Recs:
		return s.Receptions, true
	case RecYards:
		return s.RecYards, true
	case RecTDs:
		return s.RecTDs, true
	case KRAttempts:
		return s.KickReturnAttempts, true
	case KRYards:
		return s.KickReturnYards, true
	case KRTDs:
		return s.KickReturnTDs, true
	case PRAttempts:
		return s.PuntReturnAttempts, true
	case PRYards:
		return s.PuntReturnYards, true
	case PRTDs:
		return s.PuntReturnTDs, true
	case Rush:
		return s.RushAttempts, true
	case RushYards:
		return s.RushYards, true
	case RushTDs:
		return s.RushTDs, true
	default:
		return 0, false
	}
}

// Stats implements PlayStats.
func (*DefenseStats) Stats() []Stat {
	return []Stat{Sacks, INTs, INTYards, INTTDs}
}

// Value implements PlayStats.
func (s *DefenseStats) Value(stat Stat) (int, bool) {
	switch stat {
	case Sacks:
		return s.Sacks, true
	case INTs:
		return s.Interceptions, true
	case INTYards:
		return s.InterceptionYards, true
	case INTTDs:
		return s.InterceptionTDs, true
	default:
		return 0, false
	}
}

// Stats implements PlayStats.
func (*KickerStats) Stats() []Stat {
	return []Stat{XPAttempts, XPHits, FGAttempts, FGHits}
}

// Value implements PlayStats.
func (s *KickerStats) Value(stat Stat) (int, bool) {
	switch stat {
	case XPAttempts:
		return s.XPAttempts, true
	case XPHits:
		return s.XPHits, true
	case FGAttempts:
		return s.FGAttempts, true
	case FGHits:
		return s.FGHits, true
	default:
		return 0, false
	}
}

// Stats implements PlayStats.
func (*PunterStats) Stats() []Stat {
	return []Stat{Punts, PuntYards}
}

// Value implements PlayStats.
func (s *PunterStats) Value(stat Stat) (int, bool) {
	switch stat {
	case Punts:
		return s.Punts, true
	case PuntYards:
		return s.PuntYards, true
	default:
		return 0, false
	}
}

// Record holds everything a save state stores for one roster position. Play
// is nil for the offensive line, which only carries condition data.
type Record struct {
	Position  roster.Position
	Tackles   int
	Injury    Injury    // only meaningful for QB1..TE2
	Condition Condition // meaningful for all live-play positions
	Play      PlayStats
}
