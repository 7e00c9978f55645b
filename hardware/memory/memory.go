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

package memory

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the memory package.
var (
	AddressError = errors.New("memory: address out of range")
	ROMError     = errors.New("memory: unusable ROM image")
)

// Size of the Z80 address space.
const Size = 0x10000

// Notable addresses in the ZX81 memory map.
const (
	OriginRAM     = 0x4000
	OriginCharROM = 0x2000
	MemtopCharROM = 0x3fff
	OriginQS      = 0x8400
	MemtopQS      = 0x87ff
)

// Memory is the address space as seen by the CPU.
type Memory struct {
	data [Size]uint8

	ramTop     uint16
	romTop     uint16
	protectROM bool

	// the QS character board has its own 1K of RAM
	qsFitted bool
	qsActive bool
	qs       [MemtopQS - OriginQS + 1]uint8
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The RAMTOP value should be at least OriginRAM and the size of RAM should be
// a power of two, unless RAMTOP is 0xFFFF in which case there are no mirrors.
func NewMemory(ramTop uint16, romTop uint16, protectROM bool) *Memory {
	return &Memory{
		ramTop:     ramTop,
		romTop:     romTop,
		protectROM: protectROM,
	}
}

func (mem *Memory) String() string {
	return fmt.Sprintf("ROM $0000-$%04X RAM $%04X-$%04X", mem.romTop, OriginRAM, mem.ramTop)
}

// FitQS adds the QS character board to the machine.
func (mem *Memory) FitQS(fitted bool) {
	mem.qsFitted = fitted
	mem.qsActive = false
}

// EnableQS makes the QS character board active without it first being
// written to. Has no effect if the board is not fitted.
func (mem *Memory) EnableQS() {
	mem.qsActive = mem.qsFitted
}

// QSActive returns true if the QS character board has been written to and the
// ULA should take character patterns from it.
func (mem *Memory) QSActive() bool {
	return mem.qsActive
}

// QSPattern returns the byte in the QS character RAM at the offset.
func (mem *Memory) QSPattern(offset uint16) uint8 {
	return mem.qs[offset&(MemtopQS-OriginQS)]
}

// Reset clears everything above ROMTOP, including the QS character RAM, to the
// power-on state. A character ROM must be loaded after the call to Reset().
func (mem *Memory) Reset() {
	for a := int(mem.romTop) + 1; a < Size; a++ {
		mem.data[a] = 0x00
	}
	clear(mem.qs[:])
	mem.qsActive = false
}

// LoadROM copies the image into the ROM area. The image is repeated until the
// ROM area is full.
func (mem *Memory) LoadROM(image []uint8) error {
	if len(image) == 0 {
		return fmt.Errorf("%w: image is empty", ROMError)
	}
	if len(image) > int(mem.romTop)+1 {
		return fmt.Errorf("%w: image of %d bytes does not fit below ROMTOP ($%04X)", ROMError, len(image), mem.romTop)
	}
	for a := 0; a <= int(mem.romTop); a++ {
		mem.data[a] = image[a%len(image)]
	}
	return nil
}

// LoadCharROM copies a character ROM image to OriginCharROM.
func (mem *Memory) LoadCharROM(image []uint8) error {
	if len(image) == 0 {
		return fmt.Errorf("%w: character ROM is empty", ROMError)
	}
	if len(image) > MemtopCharROM-OriginCharROM+1 {
		return fmt.Errorf("%w: character ROM of %d bytes is too large", ROMError, len(image))
	}
	copy(mem.data[OriginCharROM:], image)
	return nil
}

// mapAddress returns the primary address for the address
func (mem *Memory) mapAddress(address uint16) uint16 {
	if address > mem.ramTop && address >= OriginRAM {
		return OriginRAM + ((address - OriginRAM) & (mem.ramTop - OriginRAM))
	}
	return address
}

func (mem *Memory) inQS(address uint16) bool {
	return mem.qsFitted && address >= OriginQS && address <= MemtopQS
}

// Read returns the byte at the address as seen by the CPU.
func (mem *Memory) Read(address uint16) uint8 {
	if mem.inQS(address) {
		return mem.qs[address-OriginQS]
	}
	return mem.data[mem.mapAddress(address)]
}

// Write the byte to the address. Writes to the ROM area are dropped if ROM
// protection is enabled.
func (mem *Memory) Write(address uint16, data uint8) {
	if mem.inQS(address) {
		mem.qs[address-OriginQS] = data
		mem.qsActive = true
		return
	}
	if address <= mem.romTop && mem.protectROM {
		return
	}
	mem.data[mem.mapAddress(address)] = data
}

// Peek returns the byte at the address. Addresses outside of the address
// space are rejected with AddressError.
func (mem *Memory) Peek(address int) (uint8, error) {
	if address < 0 || address >= Size {
		return 0, fmt.Errorf("%w: %d", AddressError, address)
	}
	return mem.Read(uint16(address)), nil
}

// Poke writes the byte to the address without regard for ROM protection.
// Addresses outside of the address space are rejected with AddressError.
func (mem *Memory) Poke(address int, data uint8) error {
	if address < 0 || address >= Size {
		return fmt.Errorf("%w: %d", AddressError, address)
	}
	a := uint16(address)
	if mem.inQS(a) {
		mem.qs[a-OriginQS] = data
		return nil
	}
	mem.data[mem.mapAddress(a)] = data
	return nil
}

// Dump returns a hex dump of length bytes starting at the origin address.
func (mem *Memory) Dump(origin uint16, length int) string {
	s := strings.Builder{}
	for i := 0; i < length; i += 16 {
		s.WriteString(fmt.Sprintf("%04X |", origin+uint16(i)))
		for j := i; j < i+16 && j < length; j++ {
			s.WriteString(fmt.Sprintf(" %02x", mem.Read(origin+uint16(j))))
		}
		s.WriteString("\n")
	}
	return strings.TrimSuffix(s.String(), "\n")
}
