package savestate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/tsbstats/internal/attribute"
	"github.com/retroenv/tsbstats/internal/decodeerr"
	"github.com/retroenv/tsbstats/internal/layout"
	"github.com/retroenv/tsbstats/internal/rom"
	"github.com/retroenv/tsbstats/internal/rom/romtest"
	"github.com/retroenv/tsbstats/internal/roster"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

const testStateSize = 13000

type fakeCatalog struct {
	teams   []*rom.Team
	tackles bool
	calls   int
}

func newFakeCatalog(labels ...string) *fakeCatalog {
	c := &fakeCatalog{}
	for i, label := range labels {
		c.teams = append(c.teams, rom.NewTeam(i, label, "", ""))
	}
	return c
}

func (c *fakeCatalog) TeamAt(index int) (*rom.Team, error) {
	c.calls++
	if index < 0 || index >= len(c.teams) {
		return nil, decodeerr.Corrupt("team index %d out of range", index)
	}
	return c.teams[index], nil
}

func (c *fakeCatalog) TracksTackles() bool {
	return c.tackles
}

// testState returns a save state with both teams set, scores of 0 and a
// first quarter clock. Buffers too small to hold the team indexes are
// returned zeroed.
func testState(size int) []byte {
	data := make([]byte, size)
	if size > 0xA5 {
		data[0xA4] = 1
		data[0xA5] = 2
	}
	return data
}

func put(data []byte, offset int, values ...byte) {
	copy(data[offset:], values)
}

func TestCombinedYards(t *testing.T) {
	tests := []struct {
		y1, y2   byte
		expected int
	}{
		{0x50, 0x00, 80},
		{0xFF, 0x00, 255},
		{0x2C, 0x01, 300},
		{0x00, 0x7F, 32512},
		{0, 200, -11200},
		{0xFC, 0xFF, -3},
		{0x00, 0x80, -16384},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CombinedYards(tt.y1, tt.y2))
	}
}

func TestDecodeBCD(t *testing.T) {
	value, err := decodeBCD(0x84)
	assert.NoError(t, err)
	assert.Equal(t, 84, value)

	value, err = decodeBCD(0x07)
	assert.NoError(t, err)
	assert.Equal(t, 7, value)

	_, err = decodeBCD(0x1A)
	assert.True(t, errors.Is(err, decodeerr.ErrCorruptData))
}

func TestDecode_InvalidSize(t *testing.T) {
	for _, size := range []int{0, 100, 9999, 15001} {
		catalog := newFakeCatalog("BUF.", "MIA.", "NE.")
		_, err := Decode(catalog, "state.ns1", testState(size))
		assert.Error(t, err)
		assert.True(t, errors.Is(err, decodeerr.ErrInvalidFileSize))

		var sizeErr *decodeerr.SizeError
		assert.True(t, errors.As(err, &sizeErr))
		assert.Equal(t, size, sizeErr.Size)
		assert.Equal(t, 0, catalog.calls)
	}
}

func TestDecode_SizeBounds(t *testing.T) {
	for _, size := range []int{10000, 15000} {
		_, err := Decode(newFakeCatalog("BUF.", "MIA.", "NE."), "state.ns1", testState(size))
		assert.NoError(t, err)
	}
}

func TestDecode_Header(t *testing.T) {
	data := testState(testStateSize)
	put(data, 977, 0x21)
	put(data, 982, 0x07)

	state, err := Decode(newFakeCatalog("BUF.", "MIA.", "NE."), "state.ns1", data,
		WithLogger(log.NewTestLogger(t)))
	assert.NoError(t, err)

	assert.Equal(t, "state.ns1", state.Name())
	assert.Equal(t, testStateSize, state.Size())

	home := state.HomeTeamStats()
	assert.Equal(t, Home, home.Side)
	assert.Equal(t, 1, home.TeamIndex)
	assert.Equal(t, "MIA.", home.TeamLabel)
	assert.Equal(t, 21, home.Score)

	away := state.AwayTeamStats()
	assert.Equal(t, Away, away.Side)
	assert.Equal(t, "NE.", away.TeamLabel)
	assert.Equal(t, 7, away.Score)
	assert.Equal(t, away, state.TeamStats(Away))
	assert.Equal(t, home, state.TeamStats(Home))
}

func TestDecode_UnknownTeam(t *testing.T) {
	data := testState(testStateSize)
	data[0xA5] = 40
	_, err := Decode(newFakeCatalog("BUF.", "MIA.", "NE."), "state.ns1", data)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, decodeerr.ErrCorruptData))
}

func TestDecode_InvalidScore(t *testing.T) {
	data := testState(testStateSize)
	put(data, 977, 0xAF)
	_, err := Decode(newFakeCatalog("BUF.", "MIA.", "NE."), "state.ns1", data)
	assert.ErrorContains(t, err, "decoding score")
	assert.True(t, errors.Is(err, decodeerr.ErrCorruptData))
}

func TestDecode_Records(t *testing.T) {
	data := testState(testStateSize)
	put(data, 5781, 25, 17, 2, 1, 0x2C, 0x01, 3, 0xFC, 0xFF, 0)      // home QB1
	put(data, 5801, 5, 60, 0, 1, 2, 45, 0, 0, 0, 0, 0, 0, 12, 88, 0, 1) // home RB1
	put(data, 5961, 2, 1, 0xFE, 0xFF, 0)                              // home DL1
	put(data, 6016, 3, 3, 2, 1)                                       // home K1
	put(data, 6020, 6, 250)                                           // home P1
	put(data, 6042, 30, 20, 3, 0, 0x10, 0x01, 1, 2, 0, 0)             // away QB1
	put(data, 6042+239, 4, 180)                                       // away P1

	state, err := Decode(newFakeCatalog("BUF.", "MIA.", "NE."), "state.ns1", data)
	assert.NoError(t, err)
	home := state.HomeTeamStats()
	away := state.AwayTeamStats()

	qb, err := home.Record(roster.QB1)
	assert.NoError(t, err)
	assert.Equal(t, roster.QB1, qb.Position)
	qbStats, ok := qb.Play.(*QBStats)
	assert.True(t, ok)
	assert.Equal(t, QBStats{
		PassAttempts:      25,
		PassCompletions:   17,
		PassTDs:           2,
		PassInterceptions: 1,
		PassYards:         300,
		RushAttempts:      3,
		RushYards:         -3,
		RushTDs:           0,
	}, *qbStats)

	value, err := home.StatFor(roster.RB1, RecYards)
	assert.NoError(t, err)
	assert.Equal(t, 60, value)
	value, err = home.StatFor(roster.RB1, KRYards)
	assert.NoError(t, err)
	assert.Equal(t, 45, value)
	value, err = home.StatFor(roster.RB1, RushYards)
	assert.NoError(t, err)
	assert.Equal(t, 88, value)

	value, err = home.StatFor(roster.DL1, Sacks)
	assert.NoError(t, err)
	assert.Equal(t, 2, value)
	value, err = home.StatFor(roster.DL1, INTYards)
	assert.NoError(t, err)
	assert.Equal(t, -1, value)

	value, err = home.StatFor(roster.K1, FGHits)
	assert.NoError(t, err)
	assert.Equal(t, 1, value)
	value, err = home.StatFor(roster.P1, PuntYards)
	assert.NoError(t, err)
	assert.Equal(t, 250, value)

	value, err = away.StatFor(roster.QB1, PassYards)
	assert.NoError(t, err)
	assert.Equal(t, 272, value)
	value, err = away.StatFor(roster.P1, Punts)
	assert.NoError(t, err)
	assert.Equal(t, 4, value)
	value, err = away.StatFor(roster.P1, PuntYards)
	assert.NoError(t, err)
	assert.Equal(t, 180, value)
}

func TestDecode_RecordsForAllPositions(t *testing.T) {
	state, err := Decode(newFakeCatalog("BUF.", "MIA.", "NE."), "state.ns1", testState(testStateSize))
	assert.NoError(t, err)

	records := state.HomeTeamStats().Records()
	assert.Len(t, records, roster.PositionCount)
	for i, record := range records {
		position := roster.Position(i)
		assert.Equal(t, position, record.Position)
		if position.Role() == roster.OL {
			assert.Nil(t, record.Play)
		} else {
			assert.NotNil(t, record.Play)
		}
	}

	_, isDefense := records[roster.LB2].Play.(*DefenseStats)
	assert.True(t, isDefense)
	_, isOffense := records[roster.TE1].Play.(*OffenseStats)
	assert.True(t, isOffense)
	_, isKicker := records[roster.K1].Play.(*KickerStats)
	assert.True(t, isKicker)
}

func TestTeamStats_StatForErrors(t *testing.T) {
	state, err := Decode(newFakeCatalog("BUF.", "MIA.", "NE."), "state.ns1", testState(testStateSize))
	assert.NoError(t, err)
	home := state.HomeTeamStats()

	_, err = home.StatFor(roster.QB1, Sacks)
	assert.True(t, errors.Is(err, decodeerr.ErrCorruptData))
	_, err = home.StatFor(roster.OL3, Rush)
	assert.ErrorContains(t, err, "no live-play statistics")
	_, err = home.StatFor(roster.Position(30), Rush)
	assert.True(t, errors.Is(err, decodeerr.ErrCorruptData))
	_, err = home.InjuryFor(roster.DL1)
	assert.True(t, errors.Is(err, decodeerr.ErrCorruptData))
}

func TestDecode_Tackles(t *testing.T) {
	data := testState(testStateSize)
	for i := 0; i < 22; i++ {
		data[12815+i] = byte(i + 1)
	}

	catalog := newFakeCatalog("BUF.", "MIA.", "NE.")
	state, err := Decode(catalog, "state.ns1", data)
	assert.NoError(t, err)
	tackles, err := state.HomeTeamStats().TacklesFor(roster.DL1)
	assert.NoError(t, err)
	assert.Equal(t, 0, tackles)

	catalog.tackles = true
	state, err = Decode(catalog, "state.ns1", data)
	assert.NoError(t, err)
	home := state.HomeTeamStats()
	away := state.AwayTeamStats()

	tackles, err = home.TacklesFor(roster.DL1)
	assert.NoError(t, err)
	assert.Equal(t, 1, tackles)
	tackles, err = home.TacklesFor(roster.DB4)
	assert.NoError(t, err)
	assert.Equal(t, 11, tackles)
	tackles, err = away.TacklesFor(roster.DL1)
	assert.NoError(t, err)
	assert.Equal(t, 12, tackles)
	tackles, err = away.TacklesFor(roster.DB4)
	assert.NoError(t, err)
	assert.Equal(t, 22, tackles)
	tackles, err = home.TacklesFor(roster.K1)
	assert.NoError(t, err)
	assert.Equal(t, 0, tackles)
}

func TestDecode_TacklesOutOfRange(t *testing.T) {
	catalog := newFakeCatalog("BUF.", "MIA.", "NE.")
	catalog.tackles = true
	_, err := Decode(catalog, "state.ns1", testState(10000))
	assert.ErrorContains(t, err, "decoding tackles")
	assert.True(t, errors.Is(err, decodeerr.ErrCorruptData))
}

func TestDecode_InjuriesAndConditions(t *testing.T) {
	data := testState(testStateSize)
	// QB1 questionable, RB1 doubtful, TE2 probable return
	put(data, 6031, 0xC8, 0x00, 0x01)
	// QB1 good, DL1 average, P1 excellent
	put(data, 6034, 0x80, 0, 0, 0, 0x10, 0, 0, 0x30)
	// away QB2 doubtful and in bad condition, OL1 excellent
	put(data, 6292, 0x20, 0x00, 0x00)
	put(data, 6295, 0x00, 0, 0, 0xC0, 0, 0, 0, 0)

	state, err := Decode(newFakeCatalog("BUF.", "MIA.", "NE."), "state.ns1", data)
	assert.NoError(t, err)
	home := state.HomeTeamStats()
	away := state.AwayTeamStats()

	injuries := map[roster.Position]Injury{
		roster.QB1: Questionable,
		roster.QB2: NotInjured,
		roster.RB1: Doubtful,
		roster.WR4: NotInjured,
		roster.TE2: ProbableReturn,
	}
	for position, expected := range injuries {
		injury, err := home.InjuryFor(position)
		assert.NoError(t, err)
		assert.Equal(t, expected, injury)
	}

	conditions := map[roster.Position]Condition{
		roster.QB1: Good,
		roster.QB2: Bad,
		roster.DL1: Average,
		roster.P1:  Excellent,
	}
	for position, expected := range conditions {
		condition, err := home.ConditionFor(position)
		assert.NoError(t, err)
		assert.Equal(t, expected, condition)
	}

	injury, err := away.InjuryFor(roster.QB2)
	assert.NoError(t, err)
	assert.Equal(t, Doubtful, injury)
	condition, err := away.ConditionFor(roster.OL1)
	assert.NoError(t, err)
	assert.Equal(t, Excellent, condition)
}

func TestDecode_StartingLineup(t *testing.T) {
	data := testState(testStateSize)
	put(data, 0x178B, 0xF1, 0x36, 0x7A, 0x64)
	put(data, 0x1890, 0x12, 0x37, 0x8B, 0x22)

	state, err := Decode(newFakeCatalog("BUF.", "MIA.", "NE."), "state.ns1", data)
	assert.NoError(t, err)

	home := state.StartingLineup(Home)
	assert.Equal(t, roster.QB1+15, home["QB"])
	assert.Equal(t, roster.QB1+1, home["RB1"])
	assert.Equal(t, roster.RB2, home["RB2"])
	assert.Equal(t, roster.WR1, home["WR1"])
	assert.Equal(t, roster.WR2, home["WR2"])
	assert.Equal(t, roster.TE1, home["TE"])
	assert.Equal(t, roster.WR1, home["KR"])
	assert.Equal(t, roster.RB3, home["PR"])
	assert.Equal(t, []string{"QB", "RB1", "RB2", "WR1", "WR2", "TE", "KR", "PR"}, home.Slots())
	assert.Equal(t, []string{"KR", "WR1"}, home.SlotsOf(roster.WR1))

	away := state.StartingLineup(Away)
	assert.Equal(t, roster.QB2, away["QB"])
	assert.Equal(t, roster.RB1, away["RB1"])
	assert.Equal(t, roster.TE2, away["TE"])

	// the returned lineup is a copy
	home["QB"] = roster.QB2
	assert.Equal(t, roster.QB1+15, state.StartingLineup(Home)["QB"])
}

func TestDecode_Possession(t *testing.T) {
	tests := []struct {
		status      byte
		homeHasBall bool
	}{
		{0x00, true},
		{0x0C, true},
		{0x8F, true},
		{0x4C, false},
		{0xCF, false},
	}

	for _, tt := range tests {
		data := testState(testStateSize)
		data[0xA8] = tt.status
		state, err := Decode(newFakeCatalog("BUF.", "MIA.", "NE."), "state.ns1", data)
		assert.NoError(t, err)
		assert.Equal(t, tt.homeHasBall, state.DoesHomeTeamHaveBall())
	}
}

func TestDecode_GameClock(t *testing.T) {
	data := testState(testStateSize)
	put(data, 162, 0x45, 0x03)
	data[174] = 2

	state, err := Decode(newFakeCatalog("BUF.", "MIA.", "NE."), "state.ns1", data)
	assert.NoError(t, err)
	clock := state.GameClock()
	assert.Equal(t, 3, clock.Quarter)
	assert.Equal(t, 3, clock.Minutes)
	assert.Equal(t, 45, clock.Seconds)
	assert.Equal(t, "Q3: 03:45", clock.String())
	assert.Empty(t, state.Warnings())
}

func TestDecode_InvalidGameClock(t *testing.T) {
	data := testState(testStateSize)
	put(data, 162, 0xFF, 0x02)
	put(data, 977, 0x21)
	put(data, 5781, 25)

	state, err := Decode(newFakeCatalog("BUF.", "MIA.", "NE."), "state.ns1", data)
	assert.NoError(t, err)

	warnings := state.Warnings()
	assert.Len(t, warnings, 1)
	assert.True(t, errors.Is(warnings[0], decodeerr.ErrCorruptData))
	assert.ErrorContains(t, warnings[0], "decoding game clock")

	clock := state.GameClock()
	assert.Equal(t, 1, clock.Quarter)
	assert.Equal(t, 0, clock.Minutes)
	assert.Equal(t, 0, clock.Seconds)
	assert.Equal(t, "Q1: 02:FF", clock.String())

	assert.Equal(t, 21, state.HomeTeamStats().Score)
	attempts, err := state.HomeTeamStats().StatFor(roster.QB1, Pass)
	assert.NoError(t, err)
	assert.Equal(t, 25, attempts)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.ns1")
	data := testState(testStateSize)
	put(data, 977, 0x14)
	assert.NoError(t, os.WriteFile(path, data, 0600))

	state, err := Load(newFakeCatalog("BUF.", "MIA.", "NE."), path)
	assert.NoError(t, err)
	assert.Equal(t, "game.ns1", state.Name())
	assert.Equal(t, 14, state.HomeTeamStats().Score)

	small := filepath.Join(dir, "small.ns1")
	assert.NoError(t, os.WriteFile(small, make([]byte, 100), 0600))
	_, err = Load(newFakeCatalog("BUF."), small)
	assert.True(t, errors.Is(err, decodeerr.ErrInvalidFileSize))

	_, err = Load(newFakeCatalog("BUF."), filepath.Join(dir, "missing.ns1"))
	assert.True(t, errors.Is(err, decodeerr.ErrIO))
}

func TestCondition_Delta(t *testing.T) {
	assert.Equal(t, -1, Bad.Delta())
	assert.Equal(t, 0, Average.Delta())
	assert.Equal(t, 1, Good.Delta())
	assert.Equal(t, 2, Excellent.Delta())
}

func TestParseStat(t *testing.T) {
	for i := range statNames {
		stat, err := ParseStat(Stat(i).String())
		assert.NoError(t, err)
		assert.Equal(t, Stat(i), stat)
	}
	_, err := ParseStat("Fumbles")
	assert.Error(t, err)
}

func TestDecode_WithCartridge(t *testing.T) {
	teams := romtest.Teams(layout.ThirtyTwoTeam)
	codes := romtest.Codes(0, roster.QB1)
	codes[0] = 0xF
	codes[1] = 0x5
	teams[0].Players[roster.QB1].Codes = codes

	image, err := romtest.Build(teams, romtest.Options{Variant: layout.ThirtyTwoTeam})
	assert.NoError(t, err)
	r, err := rom.Parse("tsb32.nes", image)
	assert.NoError(t, err)
	assert.True(t, r.TracksTackles())

	data := testState(testStateSize)
	data[0xA4] = 0
	data[0xA5] = 31
	put(data, 977, 0x35)
	put(data, 6034, 0xC0) // home QB1 excellent
	put(data, 12815, 9)   // home DL1 tackles

	state, err := Decode(r, "tsb32.ns1", data, WithLogger(log.NewTestLogger(t)))
	assert.NoError(t, err)
	home := state.HomeTeamStats()
	assert.Equal(t, "T00.", home.TeamLabel)
	assert.Equal(t, 35, home.Score)
	assert.Equal(t, "T31.", state.AwayTeamStats().TeamLabel)

	tackles, err := home.TacklesFor(roster.DL1)
	assert.NoError(t, err)
	assert.Equal(t, 9, tackles)

	condition, err := home.ConditionFor(roster.QB1)
	assert.NoError(t, err)
	assert.Equal(t, Excellent, condition)

	player, err := r.Player(home.TeamLabel, roster.QB1)
	assert.NoError(t, err)
	attrs := roster.AttributesFor(roster.QB)

	value, err := AdjustedAttribute(player, attrs[0], condition)
	assert.NoError(t, err)
	assert.Equal(t, 100, value)

	value, err = AdjustedAttribute(player, attrs[1], Bad)
	assert.NoError(t, err)
	expected, err := attribute.Decode(0x4)
	assert.NoError(t, err)
	assert.Equal(t, expected, value)

	_, err = AdjustedAttribute(player, roster.Interceptions, Good)
	assert.Error(t, err)
}
