// Package main implements a Tecmo Super Bowl roster ripper
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/tsbstats/internal/rom"
	"github.com/retroenv/tsbstats/internal/writer"
	"github.com/retroenv/retrogolib/buildinfo"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	input  string
	output string
	quiet  bool
}

func main() {
	options := readArguments()

	if !options.quiet {
		printBanner(options)
	}

	if err := ripFile(options); err != nil {
		fmt.Println(fmt.Errorf("ripping failed: %w", err))
		os.Exit(1)
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.StringVar(&options.output, "o", "", "name of the output .csv file, printed on console if no name given")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 {
		printBanner(options)
		fmt.Printf("usage: tsbrip [options] <cartridge.nes>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	options.input = args[0]

	return options
}

func printBanner(options optionFlags) {
	if !options.quiet {
		fmt.Println("[-------------------------------------]")
		fmt.Println("[ tsbrip - Tecmo Super Bowl rosters   ]")
		fmt.Printf("[-------------------------------------]\n\n")
		fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
	}
}

func ripFile(options optionFlags) error {
	r, err := rom.Load(options.input)
	if err != nil {
		return fmt.Errorf("loading cartridge: %w", err)
	}

	outputFile, err := createOutput(options.output)
	if err != nil {
		return err
	}
	defer func() {
		if outputFile != os.Stdout {
			_ = outputFile.Close()
		}
	}()

	if err = writer.WriteRoster(outputFile, r); err != nil {
		return fmt.Errorf("writing roster: %w", err)
	}
	if outputFile != os.Stdout {
		if err = outputFile.Close(); err != nil {
			return fmt.Errorf("closing file: %w", err)
		}
	}

	if !options.quiet && options.output != "" {
		fmt.Printf("Wrote %d players of %d teams.\n", len(r.Players()), r.TeamCount())
	}
	return nil
}

func createOutput(path string) (*os.File, error) {
	if path == "" {
		return os.Stdout, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating file '%s': %w", path, err)
	}
	return file, nil
}
