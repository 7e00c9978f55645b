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

// Package memory implements the 64K address space of the ZX81.
//
// The lower part of the address space, from zero to ROMTOP, holds the ROM
// image. If the image is smaller than the ROM area then it is repeated until
// the area is full. Writes to the ROM area are dropped if ROM protection is
// enabled.
//
// RAM starts at address 0x4000 and continues up to RAMTOP. Addresses above
// RAMTOP are mirrors of the RAM. This is how the unexpanded ZX81 behaves and
// it is important because the ULA executes the display file from the upper
// half of the address space.
//
//	0x0000 +------------------+
//	       |       ROM        |
//	ROMTOP +------------------+
//	       | (char ROM / RAM) |
//	0x4000 +------------------+
//	       |       RAM        |
//	RAMTOP +------------------+
//	       |   RAM mirrors    |
//	0xFFFF +------------------+
//
// The area between ROMTOP and 0x4000 is ordinary memory. The DK'tronics
// graphics board places its character ROM at 0x2000.
//
// When the QS character board is enabled, the area 0x8400 to 0x87FF is taken
// over by the board's character RAM. The first write to that area switches
// the ULA to the QS character set.
package memory
