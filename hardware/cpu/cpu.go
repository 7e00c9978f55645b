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

import (
	"fmt"
	"strings"

	"github.com/gopher81/gopher81/hardware/cpu/execution"
	"github.com/gopher81/gopher81/hardware/cpu/registers"
)

// CPU implements the Z80 processor.
type CPU struct {
	mem Bus

	// main register set. the 8-bit registers are views onto the pairs
	AF *registers.RegisterPair
	BC *registers.RegisterPair
	DE *registers.RegisterPair
	HL *registers.RegisterPair
	A  *registers.Register
	F  *registers.Register
	B  *registers.Register
	C  *registers.Register
	D  *registers.Register
	E  *registers.Register
	H  *registers.Register
	L  *registers.Register

	// alternate register set
	AltAF *registers.RegisterPair
	AltBC *registers.RegisterPair
	AltDE *registers.RegisterPair
	AltHL *registers.RegisterPair

	// index registers. the halves are independent registers
	IX  *registers.RegisterPair
	IY  *registers.RegisterPair
	IXH *registers.Register
	IXL *registers.Register
	IYH *registers.Register
	IYL *registers.Register

	SP *registers.RegisterPair
	PC *registers.RegisterPair

	I *registers.Register
	R *registers.Register

	// the internal WZ register. affects flags 3 and 5 of the BIT n,(HL)
	// instruction
	MEMPTR *registers.RegisterPair

	IFF1 bool
	IFF2 bool
	IM   uint8

	// the CPU has executed a HALT instruction and is waiting for an
	// interrupt
	Halted bool

	// the most recent instruction was EI. interrupts are not accepted until
	// after the next instruction
	eiDelay bool

	// the number of T-states. increased by every access. the owner of the CPU
	// can adjust the value as required
	Clock int

	// details of the most recent call to Step(), Interrupt() or
	// NonMaskableInterrupt()
	LastResult execution.Result

	// the register pair that replaces HL for the current instruction. either
	// HL, IX or IY
	idx  *registers.RegisterPair
	idxH *registers.Register
	idxL *registers.Register
}

// NewCPU is the preferred method of initialisation for the CPU type.
func NewCPU(mem Bus) *CPU {
	mc := &CPU{
		mem: mem,
	}

	mc.AF = registers.NewRegisterPair(0xffff, "AF", "A", "F")
	mc.BC = registers.NewRegisterPair(0, "BC", "B", "C")
	mc.DE = registers.NewRegisterPair(0, "DE", "D", "E")
	mc.HL = registers.NewRegisterPair(0, "HL", "H", "L")
	mc.A = mc.AF.High()
	mc.F = mc.AF.Low()
	mc.B = mc.BC.High()
	mc.C = mc.BC.Low()
	mc.D = mc.DE.High()
	mc.E = mc.DE.Low()
	mc.H = mc.HL.High()
	mc.L = mc.HL.Low()

	mc.AltAF = registers.NewSlavePair("AF'", registers.NewRegister(0, "A'"), registers.NewRegister(0, "F'"))
	mc.AltBC = registers.NewSlavePair("BC'", registers.NewRegister(0, "B'"), registers.NewRegister(0, "C'"))
	mc.AltDE = registers.NewSlavePair("DE'", registers.NewRegister(0, "D'"), registers.NewRegister(0, "E'"))
	mc.AltHL = registers.NewSlavePair("HL'", registers.NewRegister(0, "H'"), registers.NewRegister(0, "L'"))

	mc.IXH = registers.NewRegister(0, "IXH")
	mc.IXL = registers.NewRegister(0, "IXL")
	mc.IYH = registers.NewRegister(0, "IYH")
	mc.IYL = registers.NewRegister(0, "IYL")
	mc.IX = registers.NewSlavePair("IX", mc.IXH, mc.IXL)
	mc.IY = registers.NewSlavePair("IY", mc.IYH, mc.IYL)

	mc.SP = registers.NewRegisterPair(0xffff, "SP", "S", "P")
	mc.PC = registers.NewRegisterPair(0, "PC", "PCH", "PCL")
	mc.MEMPTR = registers.NewRegisterPair(0, "WZ", "W", "Z")

	mc.I = registers.NewRegister(0, "I")
	mc.R = registers.NewRegister(0, "R")

	mc.Reset()

	return mc
}

// Reset the CPU to the power-on state.
func (mc *CPU) Reset() {
	mc.AF.Load(0xffff)
	mc.SP.Load(0xffff)
	mc.PC.Load(0)
	mc.MEMPTR.Load(0)
	mc.I.Load(0)
	mc.R.Load(0)
	mc.IFF1 = false
	mc.IFF2 = false
	mc.IM = 0
	mc.Halted = false
	mc.eiDelay = false
	mc.Clock = 0
	mc.useHL()
}

func (mc *CPU) String() string {
	var s strings.Builder
	s.WriteString(fmt.Sprintf("PC=%s SP=%s ", mc.PC, mc.SP))
	s.WriteString(fmt.Sprintf("AF=%s BC=%s DE=%s HL=%s ", mc.AF, mc.BC, mc.DE, mc.HL))
	s.WriteString(fmt.Sprintf("IX=%s IY=%s I=%s R=%s ", mc.IX, mc.IY, mc.I, mc.R))
	s.WriteString(fmt.Sprintf("IM%d ", mc.IM))
	if mc.IFF1 {
		s.WriteString("EI ")
	} else {
		s.WriteString("DI ")
	}
	s.WriteString(registers.FlagsString(mc.F.Value()))
	if mc.Halted {
		s.WriteString(" HALT")
	}
	return s.String()
}

// Step executes the next instruction. If the CPU is halted then a single
// NOP cycle is executed. Returns the number of T-states used.
func (mc *CPU) Step() int {
	start := mc.Clock
	mc.eiDelay = false

	if mc.Halted {
		mc.LastResult.Reset(execution.Halted, mc.PC.Value())

		// the CPU continues to perform refresh cycles while halted but the
		// opcode is ignored
		mc.Clock += mc.mem.ContendMem(mc.PC.Value(), 4, mc.Clock)
		mc.incR()
	} else {
		mc.LastResult.Reset(execution.Instruction, mc.PC.Value())
		mc.useHL()
		mc.execute(mc.fetchOpcode())
	}

	mc.LastResult.TStates = mc.Clock - start
	return mc.LastResult.TStates
}

// InterruptsEnabled returns true if a call to Interrupt() would be accepted.
func (mc *CPU) InterruptsEnabled() bool {
	return mc.IFF1 && !mc.eiDelay
}

// Interrupt requests a maskable interrupt. Returns the number of T-states
// used, which will be zero if the interrupt was not accepted.
//
// The ZX81 does not drive the data bus during the interrupt acknowledge
// cycle so the data bus floats to 0xff. In mode 0 this is the RST 38
// instruction and in mode 2 it is the low byte of the vector table address.
func (mc *CPU) Interrupt() int {
	if !mc.InterruptsEnabled() {
		return 0
	}

	start := mc.Clock
	mc.LastResult.Reset(execution.Interrupt, mc.PC.Value())

	mc.Halted = false
	mc.IFF1 = false
	mc.IFF2 = false
	mc.incR()

	// acknowledge cycle is an M1 cycle with two automatic wait states
	mc.Clock += 7
	mc.push(mc.PC.Value())

	switch mc.IM {
	case 2:
		vector := (uint16(mc.I.Value()) << 8) | 0x00ff
		lo := mc.read8(vector)
		hi := mc.read8(vector + 1)
		mc.PC.Load((uint16(hi) << 8) | uint16(lo))
	default:
		mc.PC.Load(0x0038)
	}
	mc.MEMPTR.Load(mc.PC.Value())

	mc.LastResult.TStates = mc.Clock - start
	return mc.LastResult.TStates
}

// NonMaskableInterrupt causes the CPU to jump to address 0x0066. IFF2 keeps
// the state of the interrupt flip-flop so that RETN can restore it. Returns
// the number of T-states used.
func (mc *CPU) NonMaskableInterrupt() int {
	start := mc.Clock
	mc.LastResult.Reset(execution.NonMaskableInterrupt, mc.PC.Value())

	mc.Halted = false
	mc.IFF1 = false
	mc.incR()

	mc.Clock += 5
	mc.push(mc.PC.Value())
	mc.PC.Load(0x0066)
	mc.MEMPTR.Load(mc.PC.Value())

	mc.LastResult.TStates = mc.Clock - start
	return mc.LastResult.TStates
}

// incR increments the lower seven bits of the R register. bit 7 is only
// changed by the LD R,A instruction
func (mc *CPU) incR() {
	r := mc.R.Value()
	mc.R.Load((r & 0x80) | ((r + 1) & 0x7f))
}

// ir returns the value on the address bus during refresh and internal cycles
func (mc *CPU) ir() uint16 {
	return (uint16(mc.I.Value()) << 8) | uint16(mc.R.Value())
}

// fetchOpcode performs an M1 cycle at the program counter
func (mc *CPU) fetchOpcode() uint8 {
	pc := mc.PC.Value()
	op := mc.mem.OpcodeFetch(pc)
	mc.Clock += mc.mem.ContendMem(pc, 4, mc.Clock)
	mc.PC.Inc()
	mc.incR()
	mc.LastResult.Push(op)
	return op
}

// fetchByte reads the byte at the program counter as an operand
func (mc *CPU) fetchByte() uint8 {
	v := mc.read8(mc.PC.Value())
	mc.PC.Inc()
	mc.LastResult.Push(v)
	return v
}

func (mc *CPU) fetchWord() uint16 {
	lo := mc.fetchByte()
	hi := mc.fetchByte()
	return (uint16(hi) << 8) | uint16(lo)
}

func (mc *CPU) read8(address uint16) uint8 {
	v := mc.mem.ReadByte(address)
	mc.Clock += mc.mem.ContendMem(address, 3, mc.Clock)
	return v
}

func (mc *CPU) write8(address uint16, data uint8) {
	mc.mem.WriteByte(address, data)
	mc.Clock += mc.mem.ContendMem(address, 3, mc.Clock)
}

func (mc *CPU) read16(address uint16) uint16 {
	lo := mc.read8(address)
	hi := mc.read8(address + 1)
	return (uint16(hi) << 8) | uint16(lo)
}

func (mc *CPU) write16(address uint16, data uint16) {
	mc.write8(address, uint8(data))
	mc.write8(address+1, uint8(data>>8))
}

func (mc *CPU) in(port uint16) uint8 {
	v := mc.mem.ReadPort(port)
	mc.Clock += mc.mem.ContendIO(port, 4, mc.Clock)
	return v
}

func (mc *CPU) out(port uint16, data uint8) {
	mc.mem.WritePort(port, data)
	mc.Clock += mc.mem.ContendIO(port, 4, mc.Clock)
}

// internal cycles put the address on the bus without reading or writing. each
// cycle is subject to contention
func (mc *CPU) internal(address uint16, cycles int) {
	for range cycles {
		mc.Clock += mc.mem.ContendMem(address, 1, mc.Clock)
	}
}

func (mc *CPU) push(v uint16) {
	mc.SP.Dec()
	mc.write8(mc.SP.Value(), uint8(v>>8))
	mc.SP.Dec()
	mc.write8(mc.SP.Value(), uint8(v))
}

func (mc *CPU) pop() uint16 {
	lo := mc.read8(mc.SP.Value())
	mc.SP.Inc()
	hi := mc.read8(mc.SP.Value())
	mc.SP.Inc()
	return (uint16(hi) << 8) | uint16(lo)
}

func (mc *CPU) flag(mask uint8) bool {
	return mc.F.Value()&mask == mask
}

// exchange the main and alternate BC, DE and HL registers
func (mc *CPU) exx() {
	mc.BC.Swap(mc.AltBC)
	mc.DE.Swap(mc.AltDE)
	mc.HL.Swap(mc.AltHL)
}
