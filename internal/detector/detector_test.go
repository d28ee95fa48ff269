package detector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestFromExtension(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		wantKind Kind
	}{
		{name: "cartridge", file: "tsb.nes", wantKind: Cartridge},
		{name: "cartridge upper case", file: "TSB.NES", wantKind: Cartridge},
		{name: "nestopia slot", file: "game.ns1", wantKind: SaveState},
		{name: "nestopia slot 0", file: "game.ns0", wantKind: SaveState},
		{name: "fceux slot", file: "game.fc3", wantKind: SaveState},
		{name: "nestopia state", file: "game.nst", wantKind: SaveState},
		{name: "sav", file: "game.sav", wantKind: SaveState},
		{name: "state", file: "dir/game.state", wantKind: SaveState},
		{name: "text", file: "notes.txt", wantKind: Unknown},
		{name: "nsx", file: "game.nsx", wantKind: Unknown},
		{name: "no extension", file: "game", wantKind: Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKind, FromExtension(tt.file))
		})
	}
}

func TestDetect_Content(t *testing.T) {
	dir := t.TempDir()
	d := New(log.NewTestLogger(t))

	cart := filepath.Join(dir, "cart.bin")
	data := make([]byte, 64)
	copy(data, []byte{'N', 'E', 'S', 0x1a})
	assert.NoError(t, os.WriteFile(cart, data, 0600))
	assert.Equal(t, Cartridge, d.Detect(cart))

	state := filepath.Join(dir, "state.bin")
	assert.NoError(t, os.WriteFile(state, make([]byte, 12000), 0600))
	assert.Equal(t, SaveState, d.Detect(state))

	other := filepath.Join(dir, "other.bin")
	assert.NoError(t, os.WriteFile(other, make([]byte, 100), 0600))
	assert.Equal(t, Unknown, d.Detect(other))

	assert.Equal(t, Unknown, d.Detect(filepath.Join(dir, "missing.bin")))
	assert.Equal(t, SaveState, d.Detect(filepath.Join(dir, "missing.ns1")))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "cartridge", Cartridge.String())
	assert.Equal(t, "save state", SaveState.String())
	assert.Equal(t, "unknown", Unknown.String())
}
