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

// Package execution records the effect of the most recent CPU step.
package execution

import (
	"fmt"
	"strings"
)

// Kind of step performed by the CPU.
type Kind int

// List of valid Kind values.
const (
	Instruction Kind = iota
	Halted
	Interrupt
	NonMaskableInterrupt
)

func (k Kind) String() string {
	switch k {
	case Instruction:
		return "instruction"
	case Halted:
		return "halted"
	case Interrupt:
		return "interrupt"
	case NonMaskableInterrupt:
		return "nmi"
	}
	return "unknown"
}

// MaxBytes is the maximum number of bytes in a single Z80 instruction.
const MaxBytes = 4

// Result records the details of the most recent CPU step.
type Result struct {
	Kind Kind

	// address of the first byte of the instruction
	Address uint16

	// the instruction bytes that were fetched through the program counter,
	// including prefixes and operands
	Bytes     [MaxBytes]uint8
	ByteCount int

	// T-states used including any contention
	TStates int
}

// Reset the result ready for a new step.
func (r *Result) Reset(kind Kind, address uint16) {
	r.Kind = kind
	r.Address = address
	r.ByteCount = 0
	r.TStates = 0
}

// Push adds an instruction byte. Bytes beyond MaxBytes are ignored, which can
// only happen with a long sequence of redundant prefixes.
func (r *Result) Push(b uint8) {
	if r.ByteCount < MaxBytes {
		r.Bytes[r.ByteCount] = b
		r.ByteCount++
	}
}

func (r Result) String() string {
	var s strings.Builder
	s.WriteString(fmt.Sprintf("$%04X:", r.Address))
	if r.Kind == Instruction {
		for _, b := range r.Bytes[:r.ByteCount] {
			s.WriteString(fmt.Sprintf(" %02X", b))
		}
	} else {
		s.WriteString(fmt.Sprintf(" %s", r.Kind))
	}
	s.WriteString(fmt.Sprintf(" (%dT)", r.TStates))
	return s.String()
}
