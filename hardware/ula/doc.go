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

// Package ula emulates the ZX81's uncommitted logic array.
//
// The ULA is responsible for the keyboard port, the tape input, vertical and
// horizontal sync and the generation of the video signal. It does not have a
// frame buffer of its own. Instead, the CPU executes the display file from the
// upper half of the address space. When the CPU fetches an opcode from an
// address at or above M1NOT and the opcode has bit 6 clear, the ULA forces a
// NOP onto the data bus and latches the byte as a character code. The pattern
// for the character is read during the refresh cycle, using the I register
// for the high byte of the address and the row counter for the lowest three
// bits.
//
// The row counter is incremented on every horizontal sync and reset by
// vertical sync. Vertical sync starts when port 0xFE is read while the NMI
// generator is off and ends when any port is written to. The NMI generator is
// switched on by writing to port 0xFE and off by writing to port 0xFD. When it
// is on, an NMI is raised on every horizontal sync.
//
// The pseudo hi-res technique used by WRX and similar programs is supported.
// When the I register points above the ROM, the pattern byte is read from the
// address formed by the I and R registers instead of from a character set.
package ula
