// Package options contains the program options.
package options

import "time"

// Output formats.
const (
	FormatText       = "text"
	FormatJSON       = "json"
	FormatConditions = "conditions"
)

// DefaultStream is the Redis stream decoded snapshots are published to.
const DefaultStream = "tsb:snapshots"

// Parameters contains file path options.
type Parameters struct {
	ROM    string `flag:"rom" usage:"cartridge image file (.nes)"`
	State  string `flag:"state" usage:"save state file (.ns1, .nst, .sav)"`
	Output string `flag:"o" usage:"output file (default: stdout)"`
	Batch  string `flag:"batch" usage:"batch process save states matching pattern (e.g. *.ns1)"`
	Rip    string `flag:"rip" usage:"write the roster of the cartridge as CSV to this file"`
}

// Flags contains behavior options.
type Flags struct {
	Format   string        `flag:"format" usage:"output format: text, json, conditions" default:"text"`
	Watch    bool          `flag:"watch" usage:"decode the save state again whenever it changes"`
	Interval time.Duration `flag:"interval" usage:"poll interval of watch mode" default:"1s"`
	Debug    bool          `flag:"debug" usage:"enable debug logging"`
	Quiet    bool          `flag:"q" usage:"quiet mode"`
}

// PublishFlags contains the Redis publishing options.
type PublishFlags struct {
	Redis  string        `flag:"redis" usage:"Redis URL to publish snapshots to (default: $TSB_REDIS_URL)"`
	Stream string        `flag:"stream" usage:"Redis stream name" default:"tsb:snapshots"`
	TTL    time.Duration `flag:"ttl" usage:"expiry of the latest snapshot key" default:"24h"`
}

// Program options of the decoder.
type Program struct {
	Parameters
	Flags
	PublishFlags
}

// Publishing returns whether snapshots should be published.
func (p Program) Publishing() bool {
	return p.Redis != ""
}
