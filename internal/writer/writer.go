// Package writer renders decoded cartridges and save states as text, CSV and
// JSON.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/tsbstats/internal/rom"
	"github.com/retroenv/tsbstats/internal/roster"
	"github.com/retroenv/tsbstats/internal/savestate"
)

// Catalog is the cartridge query surface the writers need.
type Catalog interface {
	Teams() []*rom.Team
	Player(teamLabel string, position roster.Position) (*rom.Player, error)
	TracksTackles() bool
}

// WriteRoster writes one CSV line per rostered player:
// name, team code, role, team code plus position and the attribute values in
// the order the cartridge stores them.
func WriteRoster(w io.Writer, catalog Catalog) error {
	for _, team := range catalog.Teams() {
		code := team.Code()
		for _, player := range team.Roster() {
			fields := []string{
				player.Name(),
				code,
				player.Role().String(),
				code + player.Position().String(),
			}
			for _, attr := range player.Attributes() {
				fields = append(fields, fmt.Sprint(attr.Value))
			}

			if _, err := fmt.Fprintln(w, strings.Join(fields, ",")); err != nil {
				return fmt.Errorf("writing roster line: %w", err)
			}
		}
	}
	return nil
}

// WriteStats writes the game clock followed by the statistics of the home
// and the away team.
func WriteStats(w io.Writer, catalog Catalog, state *savestate.SaveState) error {
	if _, err := fmt.Fprintln(w, state.GameClock()); err != nil {
		return fmt.Errorf("writing game clock: %w", err)
	}

	if err := writeTeamStats(w, catalog, state.HomeTeamStats()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return writeTeamStats(w, catalog, state.AwayTeamStats())
}

func writeTeamStats(w io.Writer, catalog Catalog, team *savestate.TeamStats) error {
	if _, err := fmt.Fprintf(w, "%s\n%s\n%d\n", team.Side, team.TeamLabel, team.Score); err != nil {
		return fmt.Errorf("writing team header: %w", err)
	}

	for _, position := range roster.LivePlay() {
		name := "?"
		if player, err := catalog.Player(team.TeamLabel, position); err == nil {
			name = player.Name()
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", position, name); err != nil {
			return fmt.Errorf("writing player line: %w", err)
		}

		record, err := team.Record(position)
		if err != nil {
			return fmt.Errorf("getting record of %s: %w", position, err)
		}
		if err := writeRecord(w, record, catalog.TracksTackles()); err != nil {
			return err
		}
	}
	return nil
}

func writeRecord(w io.Writer, record savestate.Record, tackles bool) error {
	buf := &strings.Builder{}
	for _, stat := range visibleStats(record.Play) {
		value, _ := record.Play.Value(stat)
		fmt.Fprintf(buf, "%s: %d, ", stat, value)
	}

	status := record.Condition.String()
	if record.Position.IsSkill() && record.Injury != savestate.NotInjured {
		status = record.Injury.String()
	}
	fmt.Fprintf(buf, "COND: %s, \n", status)

	if tackles && record.Position.IsDefense() {
		fmt.Fprintf(buf, "tackles: %d\n", record.Tackles)
	}

	if _, err := io.WriteString(w, buf.String()); err != nil {
		return fmt.Errorf("writing record of %s: %w", record.Position, err)
	}
	return nil
}

// visibleStats returns the stats of a record to output, kick and punt
// return counters are skipped if there were no attempts.
func visibleStats(play savestate.PlayStats) []savestate.Stat {
	if play == nil {
		return nil
	}

	stats := play.Stats()
	result := make([]savestate.Stat, 0, len(stats))
	for _, stat := range stats {
		switch stat {
		case savestate.KRAttempts, savestate.KRYards, savestate.KRTDs:
			if attempts, _ := play.Value(savestate.KRAttempts); attempts == 0 {
				continue
			}
		case savestate.PRAttempts, savestate.PRYards, savestate.PRTDs:
			if attempts, _ := play.Value(savestate.PRAttempts); attempts == 0 {
				continue
			}
		}
		result = append(result, stat)
	}
	return result
}
