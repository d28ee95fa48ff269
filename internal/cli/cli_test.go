package cli

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/retroenv/tsbstats/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func parseArgs(t *testing.T, args ...string) (options.Program, error) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = append([]string{"tsbstats"}, args...)
	return ParseFlags()
}

func TestParseFlags(t *testing.T) {
	t.Setenv("TSB_REDIS_URL", "")

	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "positional files",
			args: []string{"tsb.nes", "game.ns1"},
			want: options.Program{
				Parameters: options.Parameters{ROM: "tsb.nes", State: "game.ns1"},
				Flags:      options.Flags{Format: "text", Interval: time.Second},
			},
		},
		{
			name: "flags",
			args: []string{"-rom", "tsb.bin", "-state", "game.bin", "-format", "JSON", "-o", "out.json"},
			want: options.Program{
				Parameters: options.Parameters{ROM: "tsb.bin", State: "game.bin", Output: "out.json"},
				Flags:      options.Flags{Format: "json", Interval: time.Second},
			},
		},
		{
			name: "rip only",
			args: []string{"-rip", "roster.csv", "tsb.nes"},
			want: options.Program{
				Parameters: options.Parameters{ROM: "tsb.nes", Rip: "roster.csv"},
				Flags:      options.Flags{Format: "text", Interval: time.Second},
			},
		},
		{
			name: "watch with publishing",
			args: []string{"-watch", "-interval", "250ms", "-redis", "redis://localhost:6379/0", "tsb.nes", "game.ns1"},
			want: options.Program{
				Parameters:   options.Parameters{ROM: "tsb.nes", State: "game.ns1"},
				Flags:        options.Flags{Format: "text", Watch: true, Interval: 250 * time.Millisecond},
				PublishFlags: options.PublishFlags{Redis: "redis://localhost:6379/0"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(t, tt.args...)
			assert.NoError(t, err)
			assert.Equal(t, tt.want.ROM, got.ROM)
			assert.Equal(t, tt.want.State, got.State)
			assert.Equal(t, tt.want.Output, got.Output)
			assert.Equal(t, tt.want.Rip, got.Rip)
			assert.Equal(t, tt.want.Format, got.Format)
			assert.Equal(t, tt.want.Watch, got.Watch)
			assert.Equal(t, tt.want.Interval, got.Interval)
			assert.Equal(t, tt.want.Redis, got.Redis)
			assert.Equal(t, options.DefaultStream, got.Stream)
			assert.Equal(t, 24*time.Hour, got.TTL)
		})
	}
}

func TestParseFlags_RedisFromEnvironment(t *testing.T) {
	t.Setenv("TSB_REDIS_URL", "redis://cache:6379/3")
	got, err := parseArgs(t, "tsb.nes", "game.ns1")
	assert.NoError(t, err)
	assert.Equal(t, "redis://cache:6379/3", got.Redis)
	assert.True(t, got.Publishing())
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		usageError bool
	}{
		{name: "no arguments", args: nil, usageError: true},
		{name: "state without cartridge", args: []string{"game.ns1"}, usageError: true},
		{name: "cartridge without work", args: []string{"tsb.nes"}, usageError: true},
		{name: "two cartridges", args: []string{"a.nes", "b.nes"}, usageError: true},
		{name: "two save states", args: []string{"tsb.nes", "a.ns1", "b.ns2"}, usageError: true},
		{name: "unknown file", args: []string{"tsb.nes", "notes.txt"}, usageError: true},
		{name: "flag after files", args: []string{"tsb.nes", "-q"}, usageError: true},
		{name: "unknown flag", args: []string{"-unknown", "tsb.nes"}, usageError: true},
		{name: "invalid format", args: []string{"-format", "xml", "tsb.nes", "game.ns1"}},
		{name: "watch without state", args: []string{"-watch", "-batch", "*.ns1", "tsb.nes"}},
		{name: "watch with batch", args: []string{"-watch", "-batch", "*.ns1", "tsb.nes", "game.ns1"}},
		{name: "watch interval", args: []string{"-watch", "-interval", "0s", "tsb.nes", "game.ns1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(t, tt.args...)
			assert.Error(t, err)
			var usageErr *UsageError
			assert.Equal(t, tt.usageError, errors.As(err, &usageErr))
		})
	}
}
