package savestate

import (
	"errors"

	"github.com/retroenv/tsbstats/internal/bitfield"
	"github.com/retroenv/tsbstats/internal/decodeerr"
	"github.com/retroenv/tsbstats/internal/layout"
	"github.com/retroenv/tsbstats/internal/roster"
)

// CombinedYards decodes a yardage value that is stored in two bytes.
// Values with y2 of 128 or more use a separate formula which can result in
// negative yards.
func CombinedYards(y1, y2 byte) int {
	low, high := int(y1), int(y2)
	if high < 128 {
		return high*256 + low
	}
	return (256-high)*(-high) + low
}

// decodeBCD decodes a byte that holds a 2 digit decimal number.
func decodeBCD(b byte) (int, error) {
	high, low := int(b>>4), int(b&0x0f)
	if high > 9 || low > 9 {
		return 0, decodeerr.Corrupt("invalid decimal digits in byte 0x%02X", b)
	}
	return high*10 + low, nil
}

// decodeTeamRecords walks the live-play records of one team starting at
// offset. It returns the records for all 30 positions and the offset
// following the last record.
func decodeTeamRecords(data decodeerr.Buffer, offset int) ([roster.PositionCount]Record, int, error) {
	var records [roster.PositionCount]Record
	for i := range records {
		records[i].Position = roster.Position(i)
	}

	for _, position := range roster.LivePlay() {
		play, next, err := decodeRecord(data, offset, position.Role())
		if err != nil {
			return records, 0, err
		}
		records[position].Play = play
		offset = next
	}
	return records, offset, nil
}

// decodeRecord decodes the live-play record of a role at offset and returns
// the offset of the next record.
func decodeRecord(data decodeerr.Buffer, offset int, role roster.Role) (PlayStats, int, error) {
	width := layout.RecordWidth(role)
	b, err := data.Slice(offset, width)
	if err != nil {
		return nil, 0, err
	}

	var play PlayStats
	switch role {
	case roster.QB:
		play = &QBStats{
			PassAttempts:      int(b[0]),
			PassCompletions:   int(b[1]),
			PassTDs:           int(b[2]),
			PassInterceptions: int(b[3]),
			PassYards:         CombinedYards(b[4], b[5]),
			RushAttempts:      int(b[6]),
			RushYards:         CombinedYards(b[7], b[8]),
			RushTDs:           int(b[9]),
		}

	case roster.RB, roster.WR, roster.TE:
		play = &OffenseStats{
			Receptions:         int(b[0]),
			RecYards:           CombinedYards(b[1], b[2]),
			RecTDs:             int(b[3]),
			KickReturnAttempts: int(b[4]),
			KickReturnYards:    CombinedYards(b[5], b[6]),
			KickReturnTDs:      int(b[7]),
			PuntReturnAttempts: int(b[8]),
			PuntReturnYards:    CombinedYards(b[9], b[10]),
			PuntReturnTDs:      int(b[11]),
			RushAttempts:       int(b[12]),
			RushYards:          CombinedYards(b[13], b[14]),
			RushTDs:            int(b[15]),
		}

	case roster.DL, roster.LB, roster.DB:
		play = &DefenseStats{
			Sacks:             int(b[0]),
			Interceptions:     int(b[1]),
			InterceptionYards: CombinedYards(b[2], b[3]),
			InterceptionTDs:   int(b[4]),
		}

	case roster.K:
		play = &KickerStats{
			XPAttempts: int(b[0]),
			XPHits:     int(b[1]),
			FGAttempts: int(b[2]),
			FGHits:     int(b[3]),
		}

	case roster.P:
		play = &PunterStats{
			Punts:     int(b[0]),
			PuntYards: int(b[1]),
		}

	default:
		return nil, 0, decodeerr.Corrupt("role %s has no live-play record", role)
	}

	return play, offset + width, nil
}

// decodeTackles assigns the tackle counts of both teams.
func decodeTackles(data decodeerr.Buffer, home, away *TeamStats) error {
	b, err := data.Slice(layout.State.Tackles, 2*layout.TackleCount)
	if err != nil {
		return err
	}
	for i := 0; i < layout.TackleCount; i++ {
		position := roster.DL1 + roster.Position(i)
		home.records[position].Tackles = int(b[i])
		away.records[position].Tackles = int(b[layout.TackleCount+i])
	}
	return nil
}

// decodeInjuriesAndConditions assigns the injury status of the offensive
// skill positions and the condition of all positions of a team.
func decodeInjuriesAndConditions(data decodeerr.Buffer, offset int, team *TeamStats) error {
	injuryBytes, err := data.Slice(offset, layout.State.InjuryBytes)
	if err != nil {
		return err
	}
	injuries := bitfield.Concat(injuryBytes)

	conditionBytes, err := data.Slice(offset+layout.State.InjuryBytes, layout.State.ConditionBytes)
	if err != nil {
		return err
	}
	conditions := bitfield.Concat(conditionBytes)

	for _, position := range roster.Positions() {
		if position.IsSkill() {
			value, err := injuries.Field(int(position))
			if err != nil {
				return err
			}
			team.records[position].Injury = Injury(value)
		}

		value, err := conditions.Field(int(position))
		if err != nil {
			return err
		}
		team.records[position].Condition = Condition(value)
	}
	return nil
}

// decodeLineup decodes the 4 nibble packed starting lineup bytes at offset.
func decodeLineup(data decodeerr.Buffer, offset int) (Lineup, error) {
	b, err := data.Slice(offset, len(layout.LineupSlots)/2)
	if err != nil {
		return nil, err
	}

	lineup := make(Lineup, len(layout.LineupSlots))
	for i, slot := range layout.LineupSlots {
		value := b[i/2]
		if i%2 == 0 {
			value >>= 4
		}
		lineup[slot] = roster.QB1 + roster.Position(value&0x0f)
	}
	return lineup, nil
}

// decodeClock reads the raw game clock bytes.
func decodeClock(data decodeerr.Buffer) (GameClock, error) {
	var clock GameClock
	var err error
	if clock.secondsRaw, err = data.Byte(layout.State.ClockSeconds); err != nil {
		return clock, err
	}
	if clock.minutesRaw, err = data.Byte(layout.State.ClockMinutes); err != nil {
		return clock, err
	}
	quarter, err := data.Byte(layout.State.ClockQuarter)
	if err != nil {
		return clock, err
	}
	clock.Quarter = int(quarter) + 1
	return clock, nil
}

// decodeDigits sets minutes and seconds from the raw clock bytes. They stay
// 0 if a digit is not decimal.
func (c *GameClock) decodeDigits() error {
	minutes, minutesErr := decodeBCD(c.minutesRaw)
	seconds, secondsErr := decodeBCD(c.secondsRaw)
	if err := errors.Join(minutesErr, secondsErr); err != nil {
		return err
	}
	c.Minutes = minutes
	c.Seconds = seconds
	return nil
}
