// Package layout describes the byte layouts of the two known cartridge
// variants and of the save state. All offsets are absolute file offsets,
// cartridge offsets include the 16 byte iNES header.
package layout

import "fmt"

// Variant is a known cartridge layout.
type Variant uint8

// Known layout variants.
const (
	TwentyEightTeam Variant = iota
	ThirtyTwoTeam
)

func (v Variant) String() string {
	switch v {
	case TwentyEightTeam:
		return "28-team"
	case ThirtyTwoTeam:
		return "32-team"
	default:
		return fmt.Sprintf("Variant(%d)", v)
	}
}

// PointerSize is the byte width of a text pointer.
const PointerSize = 2

// Sentinel decides the cartridge variant from a single header byte. The byte
// is the low byte of the first player name pointer, which moves when the
// pointer bank grows for additional teams.
type Sentinel struct {
	Offset        int
	ThirtyTwoTeam byte // value selecting the 32-team layout
	TwentyEight   byte // value of an unmodified 28-team cartridge
}

// Signature is a fixed byte sequence at a fixed offset.
type Signature struct {
	Offset int
	Bytes  []byte
}

// PointerBank is a bank of 16 bit text pointers. The text of entry N starts
// at pointer N plus Adjust and its length is pointer N+1 minus pointer N.
type PointerBank struct {
	Base   int
	Adjust int
}

// ROM describes the cartridge layout of one variant.
type ROM struct {
	Variant   Variant
	TeamCount int

	TeamLabels PointerBank
	TeamCities PointerBank
	TeamNames  PointerBank

	PlayerNames PointerBank
	// SecondaryPlayerNames holds the names of the players of teams with a
	// slot index of at least SecondaryFromTeam. Base is 0 if unused.
	SecondaryPlayerNames PointerBank
	SecondaryFromTeam    int

	// Attributes is the start of the nibble packed player attributes, all
	// players of all teams in roster order.
	Attributes int

	// Placeholders names the conference teams that carry no roster.
	Placeholders []string
}

// ROMHeader lists the cartridge offsets shared by all variants.
type ROMHeader struct {
	Variant     Sentinel
	TacklePatch Signature
}

// Header is the variant independent part of the cartridge layout.
var Header = ROMHeader{
	Variant: Sentinel{
		Offset:        0x10,
		ThirtyTwoTeam: 0x44,
		TwentyEight:   0x38,
	},
	// jump to the tackle recording logic of the tackle hack
	TacklePatch: Signature{
		Offset: 0x25AE9,
		Bytes:  []byte{0x4C, 0x90, 0xFF, 0xEA, 0xEA, 0xEA, 0xEA},
	},
}

const (
	teamTextAdjust   = 0x14010
	playerTextAdjust = -0x7FF0
)

var roms = map[Variant]ROM{
	TwentyEightTeam: {
		Variant:     TwentyEightTeam,
		TeamCount:   28,
		TeamLabels:  PointerBank{Base: 0x1FC10, Adjust: teamTextAdjust},
		TeamCities:  PointerBank{Base: 0x1FC50, Adjust: teamTextAdjust},
		TeamNames:   PointerBank{Base: 0x1FC90, Adjust: teamTextAdjust},
		PlayerNames: PointerBank{Base: 0x48, Adjust: playerTextAdjust},
		Attributes:  0x3010,
	},
	ThirtyTwoTeam: {
		Variant:   ThirtyTwoTeam,
		TeamCount: 32,
		// the label and city banks are 4 entries larger
		TeamLabels:           PointerBank{Base: 0x1FC10, Adjust: teamTextAdjust},
		TeamCities:           PointerBank{Base: 0x1FC54, Adjust: teamTextAdjust},
		TeamNames:            PointerBank{Base: 0x1FC98, Adjust: teamTextAdjust},
		PlayerNames:          PointerBank{Base: 0x54, Adjust: playerTextAdjust},
		SecondaryPlayerNames: PointerBank{Base: 0x3EB0, Adjust: 0x30010},
		SecondaryFromTeam:    29,
		Attributes:           0x3010,
		Placeholders:         []string{"AFC", "NFC"},
	},
}

// ROMLayout returns the cartridge layout of the variant.
func ROMLayout(variant Variant) (ROM, error) {
	rom, ok := roms[variant]
	if !ok {
		return ROM{}, fmt.Errorf("no cartridge layout for variant %s", variant)
	}
	return rom, nil
}

// IsPlaceholder returns whether a team name denotes a conference placeholder
// team without a roster.
func (r ROM) IsPlaceholder(name string) bool {
	for _, s := range r.Placeholders {
		if s == name {
			return true
		}
	}
	return false
}

// UsesSecondaryPlayerNames returns whether the layout has a second player
// name bank.
func (r ROM) UsesSecondaryPlayerNames() bool {
	return r.SecondaryPlayerNames.Base != 0
}
