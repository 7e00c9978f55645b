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

package cpu

// Bus defines the connection between the CPU and the rest of the machine.
type Bus interface {
	// ordinary memory access
	ReadByte(address uint16) uint8
	WriteByte(address uint16, data uint8)

	// opcode fetch (the M1 cycle). the data may differ from a ReadByte() of
	// the same address
	OpcodeFetch(address uint16) uint8

	// I/O access. the port is the full 16-bit address bus value
	ReadPort(port uint16) uint8
	WritePort(port uint16, data uint8)

	// contention. returns the number of T-states used by an access of states
	// length, beginning at the specified time, including any wait states
	ContendMem(address uint16, states int, time int) int
	ContendIO(port uint16, states int, time int) int
}
