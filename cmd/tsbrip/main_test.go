package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/tsbstats/internal/layout"
	"github.com/retroenv/tsbstats/internal/rom/romtest"
	"github.com/retroenv/tsbstats/internal/roster"
	"github.com/retroenv/retrogolib/assert"
)

func TestRipFile(t *testing.T) {
	dir := t.TempDir()
	image, err := romtest.Build(romtest.Teams(layout.TwentyEightTeam), romtest.Options{})
	assert.NoError(t, err)
	input := filepath.Join(dir, "tsb.nes")
	assert.NoError(t, os.WriteFile(input, image, 0600))

	output := filepath.Join(dir, "roster.csv")
	assert.NoError(t, ripFile(optionFlags{input: input, output: output, quiet: true}))

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Len(t, lines, 28*roster.PositionCount)
	assert.True(t, strings.HasPrefix(lines[0], "p0t0 LAST,T00,QB,T00QB1,"))

	// the output file is released, it can be removed and created again
	assert.NoError(t, os.Remove(output))
	assert.NoError(t, ripFile(optionFlags{input: input, output: output, quiet: true}))
}

func TestRipFile_Errors(t *testing.T) {
	dir := t.TempDir()

	err := ripFile(optionFlags{input: filepath.Join(dir, "missing.nes"), quiet: true})
	assert.ErrorContains(t, err, "loading cartridge")

	image, err := romtest.Build(romtest.Teams(layout.TwentyEightTeam), romtest.Options{})
	assert.NoError(t, err)
	input := filepath.Join(dir, "tsb.nes")
	assert.NoError(t, os.WriteFile(input, image, 0600))

	err = ripFile(optionFlags{input: input, output: filepath.Join(dir, "missing", "roster.csv"), quiet: true})
	assert.ErrorContains(t, err, "creating file")
}
