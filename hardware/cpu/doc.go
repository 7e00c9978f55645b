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

// Package cpu emulates the Z80 processor found in the ZX81.
//
// The CPU is driven one instruction at a time with the Step() function.
// Interrupts are requested by the caller with Interrupt() and
// NonMaskableInterrupt(). Each of these functions returns the number of
// T-states used.
//
// All memory and I/O accesses go through the Bus interface. Every access is
// passed to the contention functions of the bus with the current value of
// the Clock field, which allows the bus to add wait states. The Clock field is
// owned by the caller, who is free to adjust it between steps (for example, to
// keep it relative to the start of a scanline).
//
// The complete instruction set is implemented, including the undocumented
// instructions and the undocumented flags 3 and 5. Opcodes that have no
// defined meaning execute as NOPs of the appropriate length.
package cpu
