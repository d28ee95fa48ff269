// Package detector handles input file kind detection.
package detector

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/tsbstats/internal/layout"
	"github.com/retroenv/retrogolib/log"
)

// Kind is the kind of an input file.
type Kind int

// Input file kinds.
const (
	Unknown Kind = iota
	Cartridge
	SaveState
)

func (k Kind) String() string {
	switch k {
	case Cartridge:
		return "cartridge"
	case SaveState:
		return "save state"
	default:
		return "unknown"
	}
}

var inesMagic = []byte{'N', 'E', 'S', 0x1a}

// Detector handles input kind detection from file extensions and content.
type Detector struct {
	logger *log.Logger
}

// New creates a new input kind detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the kind of a file. It first checks the file extension,
// for unknown extensions it looks at the iNES header magic and the file size.
func (d *Detector) Detect(path string) Kind {
	kind := FromExtension(path)
	if kind == Unknown {
		kind = d.detectFromContent(path)
		d.logger.Debug("Detected input kind from content",
			log.Stringer("kind", kind),
			log.String("file", path))
	}
	return kind
}

// FromExtension determines the kind of a file based on its extension.
// Emulator save states use numbered slot extensions like .ns1 or .fc0.
func FromExtension(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".nes":
		return Cartridge
	case ".nst", ".sav", ".state":
		return SaveState
	}

	if len(ext) == 4 && ext[3] >= '0' && ext[3] <= '9' {
		switch ext[1:3] {
		case "ns", "fc", "ss":
			return SaveState
		}
	}
	return Unknown
}

func (d *Detector) detectFromContent(path string) Kind {
	file, err := os.Open(path)
	if err != nil {
		d.logger.Debug("Opening file for detection failed", log.String("file", path), log.Err(err))
		return Unknown
	}
	defer func() { _ = file.Close() }()

	header := make([]byte, len(inesMagic))
	if _, err := io.ReadFull(file, header); err == nil && bytes.Equal(header, inesMagic) {
		return Cartridge
	}

	info, err := file.Stat()
	if err != nil {
		return Unknown
	}
	size := int(info.Size())
	if size >= layout.State.MinSize && size <= layout.State.MaxSize {
		return SaveState
	}
	return Unknown
}
