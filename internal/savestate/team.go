package savestate

import (
	"fmt"

	"github.com/retroenv/tsbstats/internal/decodeerr"
	"github.com/retroenv/tsbstats/internal/roster"
)

// TeamStats holds the game state of one team, with a record for every one
// of the 30 roster positions.
type TeamStats struct {
	Side      Stadium
	TeamIndex int
	TeamLabel string
	Score     int

	records [roster.PositionCount]Record
}

// Record returns a copy of the record of a position.
func (t *TeamStats) Record(position roster.Position) (Record, error) {
	if !position.Valid() {
		return Record{}, decodeerr.Corrupt("invalid roster position %d", position)
	}
	return t.records[position], nil
}

// Records returns copies of all records in roster order.
func (t *TeamStats) Records() []Record {
	records := make([]Record, len(t.records))
	copy(records, t.records[:])
	return records
}

// StatFor returns a live-play counter of a position. Asking for a counter
// that the role of the position does not carry is an error.
func (t *TeamStats) StatFor(position roster.Position, stat Stat) (int, error) {
	record, err := t.Record(position)
	if err != nil {
		return 0, err
	}
	if record.Play == nil {
		return 0, decodeerr.Corrupt("position %s has no live-play statistics", position)
	}
	value, ok := record.Play.Value(stat)
	if !ok {
		return 0, decodeerr.Corrupt("position %s has no statistic %s", position, stat)
	}
	return value, nil
}

// ConditionFor returns the condition of a position.
func (t *TeamStats) ConditionFor(position roster.Position) (Condition, error) {
	record, err := t.Record(position)
	if err != nil {
		return Bad, err
	}
	return record.Condition, nil
}

// InjuryFor returns the injury status of an offensive skill position.
func (t *TeamStats) InjuryFor(position roster.Position) (Injury, error) {
	if !position.IsSkill() {
		return NotInjured, decodeerr.Corrupt("position %s has no injury status", position)
	}
	record, err := t.Record(position)
	if err != nil {
		return NotInjured, err
	}
	return record.Injury, nil
}

// TacklesFor returns the tackle count of a position. Counts are only
// decoded for defensive positions of cartridges that track tackles.
func (t *TeamStats) TacklesFor(position roster.Position) (int, error) {
	record, err := t.Record(position)
	if err != nil {
		return 0, err
	}
	return record.Tackles, nil
}

func (t *TeamStats) String() string {
	return fmt.Sprintf("%s %s %d", t.Side, t.TeamLabel, t.Score)
}
