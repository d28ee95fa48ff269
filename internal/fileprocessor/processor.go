// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/tsbstats/internal/options"
	"github.com/retroenv/tsbstats/internal/pipeline"
	"github.com/retroenv/tsbstats/internal/rom"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile decodes the save state given in the options and writes the
// result to the configured output.
func ProcessFile(ctx context.Context, logger *log.Logger, p *pipeline.Pipeline, r *rom.Rom,
	opts options.Program) error {

	writer, err := createWriter(opts.Output)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closer, ok := writer.(io.Closer); ok && writer != os.Stdout {
			_ = closer.Close()
		}
	}()

	if _, err := p.Execute(ctx, r, opts, opts.State, writer); err != nil {
		return fmt.Errorf("decoding %s: %w", opts.State, err)
	}
	if opts.Output != "" {
		logger.Debug("Wrote output", log.String("file", opts.Output))
	}
	return nil
}

// RipRoster writes the roster of the cartridge as CSV to the rip file of the
// options.
func RipRoster(p *pipeline.Pipeline, r *rom.Rom, opts options.Program) error {
	writer, err := createWriter(opts.Rip)
	if err != nil {
		return fmt.Errorf("creating roster writer: %w", err)
	}
	defer func() {
		if closer, ok := writer.(io.Closer); ok && writer != os.Stdout {
			_ = closer.Close()
		}
	}()

	return p.Rip(r, writer)
}

// GetFilesToProcess returns list of save states to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	if opts.State == "" {
		return nil, nil
	}
	return []string{opts.State}, nil
}

// GenerateOutputFilename generates output filename for a given save state
// and output format.
func GenerateOutputFilename(inputFile, format string) string {
	ext := filepath.Ext(inputFile)
	base := inputFile[:len(inputFile)-len(ext)]

	switch format {
	case options.FormatJSON:
		return base + ".json"
	case options.FormatConditions:
		return base + ".conditions.txt"
	default:
		return base + ".txt"
	}
}

func createWriter(path string) (io.Writer, error) {
	if path == "" || path == "-" {
		return os.Stdout, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", path, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("tsbstats", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
