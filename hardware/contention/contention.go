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

// Package contention models the wait states inserted by the video hardware
// when the CPU accesses memory or I/O. A Profile is a pure function of the
// address (or port) and the T-state position within the scanline.
//
// The ZX81 itself uses the None profile. The ULA in the ZX81 steals time by
// executing the display file and by holding the CPU in a WAIT state when an
// NMI arrives during a HALT, not by adding wait states to individual
// accesses. The Pattern profile exists for machines that do, such as the
// Sinclair 48K.
package contention

import (
	"errors"
	"fmt"
	"strings"
)

// UnknownProfile is returned by ByName() when there is no profile for the name.
var UnknownProfile = errors.New("contention: unknown profile")

// Profile is implemented by all contention models.
type Profile interface {
	Label() string

	// Memory returns the number of additional T-states caused by an access to
	// the address at the time.
	Memory(address uint16, time int) int

	// IO returns the number of additional T-states caused by a four T-state
	// I/O cycle at the port, starting at the time.
	IO(port uint16, time int) int
}

type none struct{}

// None is the profile for machines without access contention.
var None Profile = none{}

func (none) Label() string {
	return "none"
}

func (none) Memory(_ uint16, _ int) int {
	return 0
}

func (none) IO(_ uint16, _ int) int {
	return 0
}

// Pattern is a table driven profile. Accesses to the contended address range
// during the active window of a scanline are delayed by an amount taken from
// a repeating pattern.
type Pattern struct {
	Name string

	// contended address range
	Origin uint16
	Memtop uint16

	// length of the scanline in T-states. time values greater than this
	// belong to the next scanline
	TStatesPerLine int

	// the active window within the scanline
	WindowStart int
	WindowEnd   int

	// the delay pattern repeats every len(Delays) T-states from the start of
	// the window
	Delays []int
}

// Sinclair48K is the documented contention of the Sinclair 48K ULA.
var Sinclair48K = Pattern{
	Name:           "sinclair48k",
	Origin:         0x4000,
	Memtop:         0x7fff,
	TStatesPerLine: 224,
	WindowStart:    0,
	WindowEnd:      128,
	Delays:         []int{6, 5, 4, 3, 2, 1, 0, 0},
}

// Label implements the Profile interface.
func (p Pattern) Label() string {
	return p.Name
}

func (p Pattern) String() string {
	return fmt.Sprintf("%s: $%04X-$%04X %v", p.Name, p.Origin, p.Memtop, p.Delays)
}

func (p Pattern) contended(address uint16) bool {
	return address >= p.Origin && address <= p.Memtop
}

// delay at the time regardless of address
func (p Pattern) delay(time int) int {
	if p.TStatesPerLine > 0 {
		time %= p.TStatesPerLine
	}
	if time < p.WindowStart || time >= p.WindowEnd || len(p.Delays) == 0 {
		return 0
	}
	return p.Delays[(time-p.WindowStart)%len(p.Delays)]
}

// Memory implements the Profile interface.
func (p Pattern) Memory(address uint16, time int) int {
	if !p.contended(address) {
		return 0
	}
	return p.delay(time)
}

// IO implements the Profile interface.
//
// An I/O cycle is contended in stages, depending on whether the high byte of
// the port is in the contended range and on the state of the A0 line:
//
//	high byte   A0   stages
//	---------   --   ------
//	contended   0    C:1 C:3
//	contended   1    C:1 C:1 C:1 C:1
//	other       0    N:1 C:3
//	other       1    N:4
func (p Pattern) IO(port uint16, time int) int {
	t := time
	var extra int

	stage := func(contended bool, states int) {
		if contended {
			d := p.delay(t)
			extra += d
			t += d
		}
		t += states
	}

	high := p.contended(port & 0xff00)
	ula := port&0x0001 == 0x0000

	switch {
	case high && ula:
		stage(true, 1)
		stage(true, 3)
	case high:
		stage(true, 1)
		stage(true, 1)
		stage(true, 1)
		stage(true, 1)
	case ula:
		stage(false, 1)
		stage(true, 3)
	}

	return extra
}

var profiles = []Profile{None, Sinclair48K}

// Names returns the names of all available profiles.
func Names() []string {
	n := make([]string, 0, len(profiles))
	for _, p := range profiles {
		n = append(n, p.Label())
	}
	return n
}

// ByName returns the profile with the name. The name is not case sensitive.
func ByName(name string) (Profile, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	for _, p := range profiles {
		if p.Label() == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", UnknownProfile, name)
}
