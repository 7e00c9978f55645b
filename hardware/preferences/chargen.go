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

package preferences

import (
	"fmt"
	"strings"
)

// CharGen selects the character generator used by the display hardware.
type CharGen int

// List of valid CharGen values.
const (
	// the character set in the standard ZX81 ROM
	CharGenSinclair CharGen = iota

	// dK'tronics programmable character generator. the character ROM
	// occupies 8192 to 12287
	CharGenDK

	// Quicksilva character board. character RAM at 33792 to 34815 replaces the
	// ROM character set once it has been written to
	CharGenQS

	// the I register selects a character set in RAM when it is in the range
	// 128 to 191
	CharGenCHR16

	// Lambda 8300 compatible machines
	CharGenLambda
)

// CharGenList is the list of names accepted by ParseCharGen().
var CharGenList = []string{"Sinclair", "DK", "QS", "CHR16", "Lambda"}

func (c CharGen) String() string {
	if c < 0 || int(c) >= len(CharGenList) {
		return "unknown"
	}
	return CharGenList[c]
}

// ParseCharGen converts a string to a CharGen value. The comparison is case
// insensitive.
func ParseCharGen(s string) (CharGen, error) {
	for i, n := range CharGenList {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return CharGen(i), nil
		}
	}
	return CharGenSinclair, fmt.Errorf("%w: unknown character generator (%s)", InvalidConfig, s)
}
