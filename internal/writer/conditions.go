package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/tsbstats/internal/roster"
	"github.com/retroenv/tsbstats/internal/savestate"
)

const conditionNameWidth = 16

// conditionAttributes are the attributes shown per role in the condition
// report.
var conditionAttributes = [roster.RoleCount][]roster.Attribute{
	roster.QB: {roster.MaxSpeed, roster.PassingSpeed, roster.PassControl},
	roster.RB: {roster.MaxSpeed, roster.HittingPower, roster.Receiving},
	roster.WR: {roster.MaxSpeed, roster.HittingPower, roster.Receiving},
	roster.TE: {roster.MaxSpeed, roster.HittingPower, roster.Receiving},
	roster.OL: {roster.MaxSpeed, roster.HittingPower},
	roster.DL: {roster.RushingSpeed, roster.RushingPower, roster.HittingPower, roster.Interceptions},
	roster.LB: {roster.RushingSpeed, roster.RushingPower, roster.HittingPower, roster.Interceptions},
	roster.DB: {roster.RushingSpeed, roster.RushingPower, roster.HittingPower, roster.Interceptions},
	roster.K:  {roster.KickingAbility},
	roster.P:  {roster.PuntingAbility},
}

// WriteConditions writes the condition report of both teams: every player
// with the attributes relevant for the role adjusted by the current
// condition, the starting lineup slots and injuries. The team with the ball
// is listed first.
func WriteConditions(w io.Writer, catalog Catalog, state *savestate.SaveState) error {
	sides := []savestate.Stadium{savestate.Home, savestate.Away}
	if !state.DoesHomeTeamHaveBall() {
		sides = []savestate.Stadium{savestate.Away, savestate.Home}
	}

	if _, err := fmt.Fprintln(w, state.GameClock()); err != nil {
		return fmt.Errorf("writing game clock: %w", err)
	}

	for i, side := range sides {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}
		if err := writeTeamConditions(w, catalog, state.TeamStats(side), state.StartingLineup(side)); err != nil {
			return err
		}
	}
	return nil
}

func writeTeamConditions(w io.Writer, catalog Catalog, team *savestate.TeamStats, lineup savestate.Lineup) error {
	if _, err := fmt.Fprintf(w, "%s %s %d\n", team.Side, team.TeamLabel, team.Score); err != nil {
		return fmt.Errorf("writing team header: %w", err)
	}

	for _, position := range roster.Positions() {
		player, err := catalog.Player(team.TeamLabel, position)
		if err != nil {
			continue
		}
		record, err := team.Record(position)
		if err != nil {
			return fmt.Errorf("getting record of %s: %w", position, err)
		}

		name := fmt.Sprintf("%-*s", conditionNameWidth, player.Name())[:conditionNameWidth]
		slot := strings.Join(lineup.SlotsOf(position), "/")

		buf := &strings.Builder{}
		fmt.Fprintf(buf, "%-4s %s %3s ", position, name, slot)
		for _, attr := range conditionAttributes[position.Role()] {
			value, err := savestate.AdjustedAttribute(player, attr, record.Condition)
			if err != nil {
				return fmt.Errorf("adjusting %s of %s: %w", attr, player.Name(), err)
			}
			fmt.Fprintf(buf, "%3d ", value)
		}
		fmt.Fprintf(buf, "%s", record.Condition)
		if position.IsSkill() && record.Injury != savestate.NotInjured {
			fmt.Fprintf(buf, " (%s)", record.Injury)
		}

		if _, err := fmt.Fprintln(w, strings.TrimRight(buf.String(), " ")); err != nil {
			return fmt.Errorf("writing condition line: %w", err)
		}
	}
	return nil
}
