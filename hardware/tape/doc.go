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

// Package tape holds the programs available to the ZX81's cassette loader.
//
// A Tape is an ordered list of entries. Each entry is the byte sequence the
// ZX81 SAVE command would have written: the program name, with bit 7 set on
// the last character, followed by the contents of memory from address 16393
// onwards. Entries are consumed in order by GetNextEntry(). There is no
// container parsing in this package, entries are supplied as plain bytes.
//
// Entries are consumed in one of two ways. The ROM fast-load patch takes the
// next entry and copies it straight into memory. Alternatively, the Player
// type converts the next entry into the signal that would be present on the
// EAR socket, allowing the ROM's own loading routine to run.
//
// The ZX81 tape signal encodes each bit, most significant bit first, as a
// burst of pulses followed by a period of silence. A zero bit is four pulses
// and a one bit is nine pulses. Each pulse is 150µs high followed by 150µs
// low and the silence after each burst lasts for 1300µs.
package tape
