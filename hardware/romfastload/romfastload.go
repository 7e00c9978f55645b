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

// Package romfastload intercepts the ZX81 ROM's cassette loading routine and
// replaces it with a direct copy of the next tape entry into memory.
//
// Patch() should be called before every opcode fetch. When the program
// counter and the opcode at the program counter match one of the registered
// hooks, the next tape entry is copied to memory, the return address of the
// loading routine is discarded and the address at which execution should
// continue is returned.
package romfastload

import (
	"github.com/gopher81/gopher81/hardware/cpu"
	"github.com/gopher81/gopher81/hardware/tape"
	"github.com/gopher81/gopher81/logger"
)

// Machine is the part of the emulated machine used by Patch().
type Machine interface {
	ReadByte(address uint16) uint8
	WriteByte(address uint16, data uint8)
	Tape() *tape.Tape
}

// Hook describes a point in a ROM's loading routine that can be intercepted.
type Hook struct {
	Label string

	// the hook is triggered when the program counter is at Address and the
	// byte at that address is Opcode
	Address uint16
	Opcode  uint8

	// the tape entry is copied to LoadAddress and execution continues at
	// Continuation
	LoadAddress  uint16
	Continuation uint16

	// the entry begins with a program name which should not be copied to
	// memory. the last byte of the name has bit 7 set
	SkipHeader bool
}

// The hooks for the standard ZX81 ROM.
var (
	ZX81Load = Hook{
		Label:        "LOAD",
		Address:      854,
		Opcode:       31,
		LoadAddress:  16393,
		Continuation: 519,
		SkipHeader:   true,
	}

	ZX81FastLoad = Hook{
		Label:        "fast LOAD",
		Address:      546,
		Opcode:       62,
		LoadAddress:  16384,
		Continuation: 515,
	}
)

var hooks = []Hook{ZX81Load, ZX81FastLoad}

// Register adds a hook. Hooks with the same address as an existing hook
// replace the existing hook.
func Register(h Hook) {
	for i := range hooks {
		if hooks[i].Address == h.Address {
			hooks[i] = h
			return
		}
	}
	hooks = append(hooks, h)
}

// Hooks returns a copy of the current list of hooks.
func Hooks() []Hook {
	h := make([]Hook, len(hooks))
	copy(h, hooks)
	return h
}

// Patch returns the address of the next instruction to execute. If no hook
// is triggered, or if a hook is triggered but there is nothing on the tape,
// then the current value of the program counter is returned.
//
// The CPU's stack pointer is adjusted when a hook is triggered. The program
// counter is never changed by this function.
func Patch(m Machine, mc *cpu.CPU) uint16 {
	pc := mc.PC.Value()

	for _, h := range hooks {
		if h.Address != pc || m.ReadByte(pc) != h.Opcode {
			continue
		}

		e, ok := m.Tape().GetNextEntry()
		if !ok {
			logger.Logf(logger.Allow, "romfastload", "%s: tape is empty", h.Label)
			return pc
		}

		data := e
		if h.SkipHeader {
			data = nil
			for i, b := range e {
				if b&0x80 == 0x80 {
					data = e[i+1:]
					break
				}
			}
		}

		n := copyEntry(m, h.LoadAddress, data)
		logger.Logf(logger.Allow, "romfastload", "%s: %d bytes to %d", h.Label, n, h.LoadAddress)

		// discard the return address of the loading routine
		mc.SP.Add(2)

		return h.Continuation
	}

	return pc
}

// copyEntry copies data to memory and returns the number of bytes copied.
// copying stops at the end of the address space
func copyEntry(m Machine, address uint16, data []uint8) int {
	for i, b := range data {
		m.WriteByte(address, b)
		if address == 0xffff {
			if i < len(data)-1 {
				logger.Logf(logger.Allow, "romfastload", "entry truncated by %d bytes", len(data)-1-i)
			}
			return i + 1
		}
		address++
	}
	return len(data)
}
