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

package performance

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strings"

	"github.com/gopher81/gopher81/logger"
)

// Profile specifies which profiling types should be generated. Profile values
// can be combined.
type Profile int

// List of valid Profile values.
const (
	ProfileNone  Profile = 0
	ProfileCPU   Profile = 0x01
	ProfileMem   Profile = 0x02
	ProfileTrace Profile = 0x04
	ProfileAll   Profile = ProfileCPU | ProfileMem | ProfileTrace
)

func (p Profile) String() string {
	if p == ProfileNone {
		return "none"
	}

	var s []string
	if p&ProfileCPU == ProfileCPU {
		s = append(s, "cpu")
	}
	if p&ProfileMem == ProfileMem {
		s = append(s, "mem")
	}
	if p&ProfileTrace == ProfileTrace {
		s = append(s, "trace")
	}
	return strings.Join(s, ",")
}

// UnknownProfile is returned by ParseProfile() for an unrecognised profile
// name.
var UnknownProfile = errors.New("performance: unknown profile")

// ParseProfile converts a comma separated list of profile names into a
// Profile value. Valid names are CPU, MEM, TRACE, ALL and NONE.
func ParseProfile(s string) (Profile, error) {
	var p Profile

	for _, t := range strings.Split(s, ",") {
		switch strings.ToUpper(strings.TrimSpace(t)) {
		case "", "NONE":
		case "CPU":
			p |= ProfileCPU
		case "MEM":
			p |= ProfileMem
		case "TRACE":
			p |= ProfileTrace
		case "ALL":
			p |= ProfileAll
		default:
			return ProfileNone, fmt.Errorf("%w: %s", UnknownProfile, t)
		}
	}

	return p, nil
}

// RunProfiler runs the supplied function "through" the requested Profile
// types. Profiles are written to files named with the filenameHeader.
func RunProfiler(profile Profile, filenameHeader string, run func() error) (rerr error) {
	if profile&ProfileCPU == ProfileCPU {
		f, err := os.Create(fmt.Sprintf("%s_cpu.profile", filenameHeader))
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil && rerr == nil {
				rerr = fmt.Errorf("performance: %w", err)
			}
		}()

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	if profile&ProfileTrace == ProfileTrace {
		f, err := os.Create(fmt.Sprintf("%s_trace.profile", filenameHeader))
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil && rerr == nil {
				rerr = fmt.Errorf("performance: %w", err)
			}
		}()

		if err := trace.Start(f); err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer trace.Stop()
	}

	err := run()

	if profile&ProfileMem == ProfileMem {
		if err := memProfile(fmt.Sprintf("%s_mem.profile", filenameHeader)); err != nil {
			return err
		}
	}

	logger.Logf(logger.Allow, "performance", "profiling complete (%s)", profile)

	return err
}

func memProfile(outFile string) (rerr error) {
	f, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("performance: %w", err)
		}
	}()

	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	return nil
}
