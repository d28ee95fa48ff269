// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/retroenv/tsbstats/internal/config"
	"github.com/retroenv/tsbstats/internal/detector"
	"github.com/retroenv/tsbstats/internal/options"
)

// ParseFlags parses command line flags and returns the program options.
// Positional arguments are assigned to the cartridge or save state option
// based on their file extension.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.ROM == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := assignPositional(&opts, args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: tsbstats [options] <cartridge.nes> [save state]\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after input files, please pass the input files as last arguments", arg),
			}
		}
	}
	return nil
}

// assignPositional sets the cartridge and save state options from
// positional arguments, explicit flags take precedence.
func assignPositional(opts *options.Program, args []string) error {
	for _, arg := range args {
		switch detector.FromExtension(arg) {
		case detector.Cartridge:
			if opts.ROM != "" {
				return &UsageError{msg: fmt.Sprintf("more than one cartridge given: %s and %s", opts.ROM, arg)}
			}
			opts.ROM = arg

		case detector.SaveState:
			if opts.State != "" {
				return &UsageError{msg: fmt.Sprintf("more than one save state given: %s and %s", opts.State, arg)}
			}
			opts.State = arg

		default:
			return &UsageError{msg: fmt.Sprintf("unknown input file type of %s, use -rom or -state", arg)}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	if opts.ROM == "" {
		return &UsageError{msg: "no cartridge image given"}
	}
	if opts.State == "" && opts.Batch == "" && opts.Rip == "" {
		return &UsageError{msg: "nothing to do, pass a save state, -batch or -rip"}
	}

	opts.Format = strings.ToLower(opts.Format)
	switch opts.Format {
	case options.FormatText, options.FormatJSON, options.FormatConditions:
	default:
		return fmt.Errorf("unsupported output format: %s. Valid options: %s, %s, %s",
			opts.Format, options.FormatText, options.FormatJSON, options.FormatConditions)
	}

	if opts.Watch {
		if opts.State == "" {
			return fmt.Errorf("watch mode requires a save state")
		}
		if opts.Batch != "" {
			return fmt.Errorf("watch mode can not be combined with batch mode")
		}
		if opts.Interval <= 0 {
			return fmt.Errorf("invalid watch interval %s", opts.Interval)
		}
	}

	opts.Redis = config.RedisURL(opts.Redis)
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.ROM, "rom", "", "name of the cartridge image file")
	flags.StringVar(&opts.State, "state", "", "name of the save state file")
	flags.StringVar(&opts.Output, "o", "", "name of the output file, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of save states by path and file mask with automatic output file naming, for example *.ns1")
	flags.StringVar(&opts.Rip, "rip", "", "write the roster of the cartridge as CSV to the given file")
	flags.StringVar(&opts.Format, "format", options.FormatText, "output format (text/json/conditions)")
	flags.BoolVar(&opts.Watch, "watch", false, "decode the save state again whenever it changes")
	flags.DurationVar(&opts.Interval, "interval", time.Second, "poll interval of the watch mode")
	flags.StringVar(&opts.Redis, "redis", "", "Redis URL to publish decoded snapshots to, defaults to $"+config.RedisURLEnv)
	flags.StringVar(&opts.Stream, "stream", options.DefaultStream, "name of the Redis stream to publish to")
	flags.DurationVar(&opts.TTL, "ttl", 24*time.Hour, "expiry of the latest snapshot key in Redis")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
