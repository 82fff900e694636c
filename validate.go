package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

const usageExitCode = 2

type UsageError struct {
	Msg string
	// reported is set when the flag package already printed the error.
	reported bool
}

func (e *UsageError) Error() string {
	return "ERROR: " + e.Msg
}

func usagef(format string, args ...interface{}) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// reportError prints err unless it was already printed and returns the exit status.
func reportError(w io.Writer, err error) int {
	var usage *UsageError
	if !errors.As(err, &usage) || !usage.reported {
		fmt.Fprintf(w, "%v\n", err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	var usage *UsageError
	if errors.As(err, &usage) {
		return usageExitCode
	}
	return 1
}

// validate checks sample pairing and fills derived defaults in cfg.
func validate(cfg *Config, stderr io.Writer) error {
	if len(cfg.FgSamples) == 0 {
		return usagef("-f/--fgSamples is required!")
	}
	if len(cfg.BgSamples) == 0 {
		return usagef("-b/--bgSamples is required!")
	}
	if cfg.Genome == "" {
		return usagef("-n/--genome is required!")
	}
	if cfg.Threads < 1 {
		return usagef("-t/--threads must be at least 1, got %d!", cfg.Threads)
	}
	switch cfg.Counter {
	case "script", "bam":
	default:
		return usagef("-counter must be script or bam, got %q!", cfg.Counter)
	}
	if cfg.CheckFastq < 0 {
		return usagef("-checkFastq must not be negative!")
	}

	if !cfg.Paired && len(cfg.FgSamples2) > 0 && len(cfg.BgSamples2) > 0 {
		cfg.Paired = true
		fmt.Fprintln(stderr, "WARNING: Paired input and immunoprecipitated samples provided. Forcing paired-ended mode!")
	}
	if cfg.Paired {
		if len(cfg.FgSamples2) == 0 || len(cfg.FgSamples) != len(cfg.FgSamples2) {
			return usagef("--paired mode requires an equal number of files for pair1 and pair2 immunoprecipitated sample(s)!")
		}
		if len(cfg.BgSamples2) == 0 || len(cfg.BgSamples) != len(cfg.BgSamples2) {
			return usagef("--paired mode requires an equal number of files for pair1 and pair2 input sample(s)!")
		}
	} else if len(cfg.FgSamples2) > 0 || len(cfg.BgSamples2) > 0 {
		return usagef("pair2 file(s) given for only one of immunoprecipitated and input samples!")
	}
	if len(cfg.FgSamples) != len(cfg.BgSamples) {
		return usagef("the number of immunoprecipitated (%d) and input (%d) samples must match!", len(cfg.FgSamples), len(cfg.BgSamples))
	}

	if cfg.OutRoot == "" {
		cfg.OutRoot = defaultOutRoot(cfg.FgSamples[0])
	}
	return nil
}
