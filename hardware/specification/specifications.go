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

// Package specification contains the timing details of the television
// standards supported by the ZX81.
package specification

import (
	"fmt"
	"strings"
)

// SpecList is the list of specifications that can be selected.
var SpecList = []string{"PAL", "NTSC"}

// ClockSpeed of the Z80 in the ZX81, in Hz.
const ClockSpeed = 3250000

// TStatesPerScanline is the number of T-states between HSYNC pulses. This is
// the same for both television standards.
const TStatesPerScanline = 207

// Spec is used to define the two television specifications.
type Spec struct {
	ID string

	// the number of scanlines in a frame
	ScanlinesTotal int

	// the number of T-states in a frame. always ScanlinesTotal multiplied by
	// TStatesPerScanline
	TStatesPerFrame int

	// the value of bit 6 of the keyboard port. the ROM uses this to decide
	// how many blank lines to generate
	Jumper50Hz bool

	FramesPerSecond float32
}

// SpecPAL is the specification for 50Hz television sets.
var SpecPAL = Spec{
	ID:              "PAL",
	ScanlinesTotal:  312,
	TStatesPerFrame: 312 * TStatesPerScanline,
	Jumper50Hz:      true,
	FramesPerSecond: 50.0,
}

// SpecNTSC is the specification for 60Hz television sets.
var SpecNTSC = Spec{
	ID:              "NTSC",
	ScanlinesTotal:  262,
	TStatesPerFrame: 262 * TStatesPerScanline,
	Jumper50Hz:      false,
	FramesPerSecond: 60.0,
}

// SearchSpec returns the specification with the ID. The search is case
// insensitive.
func SearchSpec(id string) (Spec, error) {
	switch strings.ToUpper(strings.TrimSpace(id)) {
	case "PAL":
		return SpecPAL, nil
	case "NTSC":
		return SpecNTSC, nil
	}
	return Spec{}, fmt.Errorf("specification: unknown television specification (%s)", id)
}
