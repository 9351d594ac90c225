package main

import (
	"fmt"
	"os"

	"github.com/pborman/getopt/v2"
)

// demoMode selects which worked example the tool runs.
type demoMode byte

const (
	roundtripMode demoMode = iota
	measureMode
)

func (m demoMode) String() string {
	switch m {
	case roundtripMode:
		return "roundtrip"
	case measureMode:
		return "measure"
	default:
		return "unknown"
	}
}

// ModeFlag adapts demoMode to getopt.Value so --mode=roundtrip and
// --mode=measure can be parsed directly into a demoMode field.
type ModeFlag struct {
	Value *demoMode
}

// Set fulfills getopt.Value.
func (f ModeFlag) Set(value string, _ getopt.Option) error {
	switch value {
	case "roundtrip":
		*f.Value = roundtripMode
	case "measure":
		*f.Value = measureMode
	default:
		return fmt.Errorf("unrecognized mode %q (want roundtrip or measure)", value)
	}
	return nil
}

// String fulfills getopt.Value.
func (f ModeFlag) String() string {
	if f.Value == nil {
		return ""
	}
	return f.Value.String()
}

var (
	flagMode    = roundtripMode
	flagBits    = uint(1024 * 8)
	flagVerbose = 0
	flagDump    = ""
	flagHelp    = false
)

func parseFlags() {
	getopt.FlagLong(ModeFlag{Value: &flagMode}, "mode", 'm', "roundtrip or measure")
	getopt.FlagLong(&flagBits, "bits", 'b', "capacity in bits of the scratch buffer")
	getopt.FlagLong(&flagVerbose, "verbose", 'v', "increase log verbosity; repeatable")
	getopt.FlagLong(&flagDump, "dump", 'D', "write a CBOR event dump to this path")
	getopt.FlagLong(&flagHelp, "help", 'h', "show usage and exit")
	getopt.Parse()

	if flagHelp {
		getopt.Usage()
		os.Exit(0)
	}
}
