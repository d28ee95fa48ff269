package writer

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/retroenv/tsbstats/internal/roster"
	"github.com/retroenv/tsbstats/internal/savestate"
)

// Snapshot is the JSON view of a decoded save state.
type Snapshot struct {
	ID          string         `json:"id"`
	DecodedAt   time.Time      `json:"decoded_at"`
	Cartridge   string         `json:"cartridge"`
	SaveState   string         `json:"save_state"`
	Clock       string         `json:"clock"`
	Quarter     int            `json:"quarter"`
	HomeHasBall bool           `json:"home_has_ball"`
	Teams       []TeamSnapshot `json:"teams"`
}

// TeamSnapshot is the JSON view of the statistics of one team.
type TeamSnapshot struct {
	Side     string            `json:"side"`
	Label    string            `json:"label"`
	Score    int               `json:"score"`
	Starters map[string]string `json:"starters"`
	Players  []PlayerSnapshot  `json:"players"`
}

// PlayerSnapshot is the JSON view of the record of one roster position.
type PlayerSnapshot struct {
	Position  string         `json:"position"`
	Name      string         `json:"name,omitempty"`
	Condition string         `json:"condition"`
	Injury    string         `json:"injury,omitempty"`
	Tackles   *int           `json:"tackles,omitempty"`
	Stats     map[string]int `json:"stats,omitempty"`
}

// NamedCatalog is a catalog with a display name.
type NamedCatalog interface {
	Catalog
	DisplayName() string
}

// NewSnapshot builds the JSON view of a save state. Every snapshot gets a
// new random ID so that consumers can tell repeated decodes apart.
func NewSnapshot(catalog NamedCatalog, state *savestate.SaveState, decodedAt time.Time) (*Snapshot, error) {
	clock := state.GameClock()
	snapshot := &Snapshot{
		ID:          uuid.New().String(),
		DecodedAt:   decodedAt.UTC(),
		Cartridge:   catalog.DisplayName(),
		SaveState:   state.Name(),
		Clock:       clock.String(),
		Quarter:     clock.Quarter,
		HomeHasBall: state.DoesHomeTeamHaveBall(),
	}

	for _, side := range []savestate.Stadium{savestate.Home, savestate.Away} {
		team, err := newTeamSnapshot(catalog, state.TeamStats(side), state.StartingLineup(side))
		if err != nil {
			return nil, fmt.Errorf("creating %s team snapshot: %w", side, err)
		}
		snapshot.Teams = append(snapshot.Teams, team)
	}
	return snapshot, nil
}

func newTeamSnapshot(catalog Catalog, team *savestate.TeamStats, lineup savestate.Lineup) (TeamSnapshot, error) {
	snapshot := TeamSnapshot{
		Side:     team.Side.String(),
		Label:    team.TeamLabel,
		Score:    team.Score,
		Starters: make(map[string]string, len(lineup)),
	}
	for slot, position := range lineup {
		snapshot.Starters[slot] = position.String()
	}

	for _, position := range roster.Positions() {
		record, err := team.Record(position)
		if err != nil {
			return snapshot, err
		}

		player := PlayerSnapshot{
			Position:  position.String(),
			Condition: record.Condition.String(),
		}
		if p, err := catalog.Player(team.TeamLabel, position); err == nil {
			player.Name = p.Name()
		}
		if position.IsSkill() {
			player.Injury = record.Injury.String()
		}
		if catalog.TracksTackles() && position.IsDefense() {
			tackles := record.Tackles
			player.Tackles = &tackles
		}
		if record.Play != nil {
			player.Stats = make(map[string]int)
			for _, stat := range record.Play.Stats() {
				value, _ := record.Play.Value(stat)
				player.Stats[stat.String()] = value
			}
		}

		snapshot.Players = append(snapshot.Players, player)
	}
	return snapshot, nil
}

// WriteJSON writes the snapshot as indented JSON.
func WriteJSON(w io.Writer, snapshot *Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snapshot); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}
