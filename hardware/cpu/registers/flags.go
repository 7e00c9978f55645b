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

package registers

import "strings"

// Bits of the Z80 flag register. FlagX and FlagY are the undocumented bits 3
// and 5, which usually take a copy of the corresponding bits of a result.
const (
	FlagC  uint8 = 0x01
	FlagN  uint8 = 0x02
	FlagPV uint8 = 0x04
	FlagX  uint8 = 0x08
	FlagH  uint8 = 0x10
	FlagY  uint8 = 0x20
	FlagZ  uint8 = 0x40
	FlagS  uint8 = 0x80
)

// FlagsString returns the flag register as a string of flag labels. Labels
// are in upper case for set flags and lower case for unset flags.
func FlagsString(f uint8) string {
	var s strings.Builder
	labels := "SZYHXPNC"
	for i, c := range labels {
		if f&(0x80>>i) != 0 {
			s.WriteRune(c)
		} else {
			s.WriteString(strings.ToLower(string(c)))
		}
	}
	return s.String()
}
