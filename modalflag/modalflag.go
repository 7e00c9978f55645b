// This file is part of Gopher81.
//
// Gopher81 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher81 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher81.  If not, see <https://www.gnu.org/licenses/>.

package modalflag

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"
)

const modeSeparator = "/"

// Modes provides an easy way of handling command line arguments. The Output
// field should be specified before calling Parse() or you will not see any
// help messages.
type Modes struct {
	Output io.Writer

	// a new flagset is created on every call to NewArgs() and NewMode()
	flags *flag.FlagSet

	args    []string
	argsIdx int

	// the sub-modes for the next call to Parse(). the first entry is the
	// default
	subModes []string

	// the sub-modes found by every call to Parse(). never reset
	path []string

	additionalHelp string
	parsed         bool
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the last mode to be encountered.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns a string all the modes encountered during parsing.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs with a string of arguments (from the command line for example).
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.NewMode()
}

// NewMode indicates that further arguments should be considered part of a new
// mode.
func (md *Modes) NewMode() {
	md.subModes = md.subModes[:0]
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.flags.SetOutput(io.Discard)
	md.additionalHelp = ""
	md.parsed = false
}

// AdditionalHelp adds help text to be displayed after the regular help on
// available flags.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// Parsed returns false if Parse() has not yet been called since either a call
// to NewArgs() or NewMode().
func (md *Modes) Parsed() bool {
	return md.parsed
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// continue with command line processing. if sub-modes were specified
	// then the Mode() function should be checked
	ParseContinue ParseResult = iota

	// help was requested and has been printed
	ParseHelp

	// an error has occurred and is returned as the second return value
	ParseError
)

// Parse the arguments for the current mode. The idiomatic usage is as
// follows:
//
//	r, err := md.Parse()
//	switch r {
//	case ParseHelp:
//		return nil
//	case ParseError:
//		return err
//	}
func (md *Modes) Parse() (ParseResult, error) {
	md.parsed = true

	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			md.help()
			return ParseHelp, nil
		}

		// unrecognised flags are acceptable if there is a default sub-mode.
		// the flags are left for the sub-mode to parse
		if len(md.subModes) == 0 {
			return ParseError, fmt.Errorf("modalflag: %w", err)
		}
		md.path = append(md.path, md.subModes[0])
		return ParseContinue, nil
	}

	if len(md.subModes) == 0 {
		return ParseContinue, nil
	}

	mode := md.subModes[0]
	arg := strings.ToUpper(md.flags.Arg(0))
	for _, m := range md.subModes {
		if m == arg {
			mode = m
			md.argsIdx += len(md.args[md.argsIdx:]) - md.flags.NArg() + 1
			break
		}
	}
	md.path = append(md.path, mode)

	return ParseContinue, nil
}

// help writes the help text for the current mode to the Output
func (md *Modes) help() {
	if md.Output == nil {
		return
	}

	var s strings.Builder

	if md.Path() == "" {
		s.WriteString("Usage:\n")
	} else {
		s.WriteString(fmt.Sprintf("Usage for %s mode:\n", md.Path()))
	}

	var n int
	md.flags.VisitAll(func(f *flag.Flag) {
		n++
		s.WriteString(fmt.Sprintf("  -%s\n    \t%s", f.Name, f.Usage))
		switch f.DefValue {
		case "", "0", "false", "0s":
		default:
			s.WriteString(fmt.Sprintf(" (default %s)", f.DefValue))
		}
		s.WriteString("\n")
	})

	if len(md.subModes) > 0 {
		if n > 0 {
			s.WriteString("\n")
		}
		s.WriteString(fmt.Sprintf("  available sub-modes: %s\n", strings.Join(md.subModes, ", ")))
		s.WriteString(fmt.Sprintf("    default: %s\n", md.subModes[0]))
	}

	if n == 0 && len(md.subModes) == 0 {
		s.Reset()
		s.WriteString("No help available")
		if md.Path() != "" {
			s.WriteString(fmt.Sprintf(" for %s", md.Path()))
		}
		s.WriteString("\n")
	}

	if md.additionalHelp != "" {
		s.WriteString("\n")
		s.WriteString(md.additionalHelp)
		s.WriteString("\n")
	}

	io.WriteString(md.Output, s.String())
}

// RemainingArgs after a call to Parse() ie. arguments that aren't flags or a
// listed sub-mode.
func (md *Modes) RemainingArgs() []string {
	if len(md.subModes) > 0 && md.flags.NArg() > 0 && md.Mode() == strings.ToUpper(md.flags.Arg(0)) {
		return md.flags.Args()[1:]
	}
	return md.flags.Args()
}

// GetArg returns the numbered argument that isn't a flag or listed sub-mode.
func (md *Modes) GetArg(i int) string {
	args := md.RemainingArgs()
	if i < 0 || i >= len(args) {
		return ""
	}
	return args[i]
}

// AddSubModes to list of submodes for next parse. The first sub-mode in the
// list is the default sub-mode.
func (md *Modes) AddSubModes(submodes ...string) {
	for _, m := range submodes {
		md.subModes = append(md.subModes, strings.ToUpper(m))
	}
}

// AddBool flag for next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddDuration flag for next call to Parse().
func (md *Modes) AddDuration(name string, value time.Duration, usage string) *time.Duration {
	return md.flags.Duration(name, value, usage)
}

// AddInt flag for next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString flag for next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}
