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
	"github.com/gopher81/gopher81/hardware/cpu/registers"
)

// opcodes are decoded by splitting them into fields:
//
//	x = bits 7-6
//	y = bits 5-3
//	z = bits 2-0
//	p = bits 5-4
//	q = bit 3
func fields(op uint8) (x, y, z, p, q uint8) {
	x = op >> 6
	y = (op >> 3) & 0x07
	z = op & 0x07
	p = y >> 1
	q = y & 0x01
	return x, y, z, p, q
}

// the register pair to use in place of HL, and the registers to use in place
// of H and L, are changed by the DD and FD prefixes
func (mc *CPU) useHL() {
	mc.idx = mc.HL
	mc.idxH = mc.H
	mc.idxL = mc.L
}

func (mc *CPU) useIX() {
	mc.idx = mc.IX
	mc.idxH = mc.IXH
	mc.idxL = mc.IXL
}

func (mc *CPU) useIY() {
	mc.idx = mc.IY
	mc.idxH = mc.IYH
	mc.idxL = mc.IYL
}

func (mc *CPU) indexed() bool {
	return mc.idx != mc.HL
}

// reg returns the register for the 3-bit register encoding. the value 6 is
// the (HL) operand and must be handled by the caller
func (mc *CPU) reg(r uint8) *registers.Register {
	switch r {
	case 0:
		return mc.B
	case 1:
		return mc.C
	case 2:
		return mc.D
	case 3:
		return mc.E
	case 4:
		return mc.idxH
	case 5:
		return mc.idxL
	}
	return mc.A
}

// regPlain is the same as reg() except that H and L are never replaced. used
// by instructions that also have an (IX+d) operand
func (mc *CPU) regPlain(r uint8) *registers.Register {
	switch r {
	case 4:
		return mc.H
	case 5:
		return mc.L
	}
	return mc.reg(r)
}

// rp returns the register pair for the 2-bit encoding used by 16-bit loads
// and arithmetic
func (mc *CPU) rp(p uint8) *registers.RegisterPair {
	switch p {
	case 0:
		return mc.BC
	case 1:
		return mc.DE
	case 2:
		return mc.idx
	}
	return mc.SP
}

// rp2 returns the register pair for the 2-bit encoding used by PUSH and POP
func (mc *CPU) rp2(p uint8) *registers.RegisterPair {
	if p == 3 {
		return mc.AF
	}
	return mc.rp(p)
}

func (mc *CPU) condition(cc uint8) bool {
	switch cc {
	case 0:
		return !mc.flag(flagZ)
	case 1:
		return mc.flag(flagZ)
	case 2:
		return !mc.flag(flagC)
	case 3:
		return mc.flag(flagC)
	case 4:
		return !mc.flag(flagPV)
	case 5:
		return mc.flag(flagPV)
	case 6:
		return !mc.flag(flagS)
	}
	return mc.flag(flagS)
}

// indirect returns the address of the (HL) operand. with an index prefix the
// displacement is fetched and the address is (IX+d) or (IY+d)
func (mc *CPU) indirect() uint16 {
	if !mc.indexed() {
		return mc.HL.Value()
	}
	d := int8(mc.fetchByte())
	mc.internal(mc.PC.Value()-1, 5)
	address := mc.idx.Value() + uint16(d)
	mc.MEMPTR.Load(address)
	return address
}

// relative jump with the displacement already fetched
func (mc *CPU) jumpRelative(d int8) {
	mc.internal(mc.PC.Value()-1, 5)
	mc.PC.Add(uint16(d))
	mc.MEMPTR.Load(mc.PC.Value())
}

func (mc *CPU) call(address uint16) {
	mc.internal(mc.PC.Value()-1, 1)
	mc.push(mc.PC.Value())
	mc.PC.Load(address)
}

// execute an unprefixed opcode. the DD and FD prefixes will have set the
// index register before calling this function
func (mc *CPU) execute(op uint8) {
	x, y, z, p, q := fields(op)

	switch x {
	case 0:
		mc.executeX0(y, z, p, q)

	case 1:
		if op == 0x76 {
			// HALT. the program counter is already pointing to the next
			// instruction, which is where execution will continue after an
			// interrupt
			mc.Halted = true
		} else if z == 6 {
			mc.regPlain(y).Load(mc.read8(mc.indirect()))
		} else if y == 6 {
			address := mc.indirect()
			mc.write8(address, mc.regPlain(z).Value())
		} else {
			mc.reg(y).Load(mc.reg(z).Value())
		}

	case 2:
		if z == 6 {
			mc.alu(int(y), mc.read8(mc.indirect()))
		} else {
			mc.alu(int(y), mc.reg(z).Value())
		}

	case 3:
		mc.executeX3(y, z, p, q)
	}
}

func (mc *CPU) executeX0(y, z, p, q uint8) {
	switch z {
	case 0:
		switch y {
		case 0:
			// NOP
		case 1:
			mc.AF.Swap(mc.AltAF)
		case 2:
			// DJNZ
			mc.internal(mc.ir(), 1)
			mc.B.Dec()
			d := int8(mc.fetchByte())
			if mc.B.Value() != 0 {
				mc.jumpRelative(d)
			}
		case 3:
			mc.jumpRelative(int8(mc.fetchByte()))
		default:
			d := int8(mc.fetchByte())
			if mc.condition(y - 4) {
				mc.jumpRelative(d)
			}
		}

	case 1:
		if q == 0 {
			mc.rp(p).Load(mc.fetchWord())
		} else {
			mc.internal(mc.ir(), 7)
			mc.idx.Load(mc.add16(mc.idx.Value(), mc.rp(p).Value()))
		}

	case 2:
		switch p {
		case 0, 1:
			rr := mc.BC
			if p == 1 {
				rr = mc.DE
			}
			address := rr.Value()
			if q == 0 {
				mc.write8(address, mc.A.Value())
				mc.MEMPTR.Load((uint16(mc.A.Value()) << 8) | ((address + 1) & 0x00ff))
			} else {
				mc.A.Load(mc.read8(address))
				mc.MEMPTR.Load(address + 1)
			}
		case 2:
			address := mc.fetchWord()
			if q == 0 {
				mc.write16(address, mc.idx.Value())
			} else {
				mc.idx.Load(mc.read16(address))
			}
			mc.MEMPTR.Load(address + 1)
		case 3:
			address := mc.fetchWord()
			if q == 0 {
				mc.write8(address, mc.A.Value())
				mc.MEMPTR.Load((uint16(mc.A.Value()) << 8) | ((address + 1) & 0x00ff))
			} else {
				mc.A.Load(mc.read8(address))
				mc.MEMPTR.Load(address + 1)
			}
		}

	case 3:
		mc.internal(mc.ir(), 2)
		if q == 0 {
			mc.rp(p).Inc()
		} else {
			mc.rp(p).Dec()
		}

	case 4, 5:
		f := mc.inc8
		if z == 5 {
			f = mc.dec8
		}
		if y == 6 {
			address := mc.indirect()
			v := mc.read8(address)
			mc.internal(address, 1)
			mc.write8(address, f(v))
		} else {
			r := mc.reg(y)
			r.Load(f(r.Value()))
		}

	case 6:
		if y != 6 {
			mc.reg(y).Load(mc.fetchByte())
		} else if !mc.indexed() {
			n := mc.fetchByte()
			mc.write8(mc.HL.Value(), n)
		} else {
			// the displacement and the immediate value are both fetched
			// before the address is calculated
			d := int8(mc.fetchByte())
			n := mc.fetchByte()
			mc.internal(mc.PC.Value()-1, 2)
			address := mc.idx.Value() + uint16(d)
			mc.MEMPTR.Load(address)
			mc.write8(address, n)
		}

	case 7:
		switch y {
		case 0:
			mc.rotateA(rotRLC)
		case 1:
			mc.rotateA(rotRRC)
		case 2:
			mc.rotateA(rotRL)
		case 3:
			mc.rotateA(rotRR)
		case 4:
			mc.daa()
		case 5:
			mc.cpl()
		case 6:
			mc.scf()
		case 7:
			mc.ccf()
		}
	}
}

func (mc *CPU) executeX3(y, z, p, q uint8) {
	switch z {
	case 0:
		// RET cc
		mc.internal(mc.ir(), 1)
		if mc.condition(y) {
			mc.PC.Load(mc.pop())
			mc.MEMPTR.Load(mc.PC.Value())
		}

	case 1:
		if q == 0 {
			mc.rp2(p).Load(mc.pop())
			return
		}
		switch p {
		case 0:
			mc.PC.Load(mc.pop())
			mc.MEMPTR.Load(mc.PC.Value())
		case 1:
			mc.exx()
		case 2:
			mc.PC.Load(mc.idx.Value())
		case 3:
			mc.internal(mc.ir(), 2)
			mc.SP.Load(mc.idx.Value())
		}

	case 2:
		address := mc.fetchWord()
		mc.MEMPTR.Load(address)
		if mc.condition(y) {
			mc.PC.Load(address)
		}

	case 3:
		switch y {
		case 0:
			address := mc.fetchWord()
			mc.MEMPTR.Load(address)
			mc.PC.Load(address)
		case 1:
			mc.executeCB()
		case 2:
			// OUT (n),A
			n := mc.fetchByte()
			a := mc.A.Value()
			mc.out((uint16(a)<<8)|uint16(n), a)
			mc.MEMPTR.Load((uint16(a) << 8) | uint16(n+1))
		case 3:
			// IN A,(n)
			n := mc.fetchByte()
			port := (uint16(mc.A.Value()) << 8) | uint16(n)
			mc.A.Load(mc.in(port))
			mc.MEMPTR.Load(port + 1)
		case 4:
			// EX (SP),HL
			sp := mc.SP.Value()
			v := mc.read16(sp)
			mc.internal(sp+1, 1)
			mc.write8(sp+1, mc.idxH.Value())
			mc.write8(sp, mc.idxL.Value())
			mc.internal(sp, 2)
			mc.idx.Load(v)
			mc.MEMPTR.Load(v)
		case 5:
			// EX DE,HL is not affected by the index prefixes
			mc.DE.Swap(mc.HL)
		case 6:
			mc.IFF1 = false
			mc.IFF2 = false
		case 7:
			mc.IFF1 = true
			mc.IFF2 = true
			mc.eiDelay = true
		}

	case 4:
		address := mc.fetchWord()
		mc.MEMPTR.Load(address)
		if mc.condition(y) {
			mc.call(address)
		}

	case 5:
		if q == 0 {
			mc.internal(mc.ir(), 1)
			mc.push(mc.rp2(p).Value())
			return
		}
		switch p {
		case 0:
			address := mc.fetchWord()
			mc.MEMPTR.Load(address)
			mc.call(address)
		case 1:
			mc.executeIndexed(0xdd)
		case 2:
			mc.executeED()
		case 3:
			mc.executeIndexed(0xfd)
		}

	case 6:
		mc.alu(int(y), mc.fetchByte())

	case 7:
		// RST
		mc.internal(mc.ir(), 1)
		mc.push(mc.PC.Value())
		mc.PC.Load(uint16(y) * 8)
		mc.MEMPTR.Load(mc.PC.Value())
	}
}

// executeIndexed handles the DD and FD prefixes. a prefix followed by another
// prefix is the same as a NOP. a prefix followed by ED is ignored
func (mc *CPU) executeIndexed(prefix uint8) {
	for {
		if prefix == 0xdd {
			mc.useIX()
		} else {
			mc.useIY()
		}

		op := mc.fetchOpcode()
		switch op {
		case 0xdd, 0xfd:
			prefix = op
			continue
		case 0xed:
			mc.useHL()
			mc.executeED()
		case 0xcb:
			mc.executeIndexedCB()
		default:
			mc.execute(op)
		}
		return
	}
}
