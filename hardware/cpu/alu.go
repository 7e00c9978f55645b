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
	"math/bits"

	"github.com/gopher81/gopher81/hardware/cpu/registers"
)

const (
	flagC  = registers.FlagC
	flagN  = registers.FlagN
	flagPV = registers.FlagPV
	flagX  = registers.FlagX
	flagH  = registers.FlagH
	flagY  = registers.FlagY
	flagZ  = registers.FlagZ
	flagS  = registers.FlagS

	flagsXY = flagX | flagY
)

// the S, Z, 5 and 3 flags for every byte value. sz53p also includes the
// parity flag
var sz53 [256]uint8
var sz53p [256]uint8

func init() {
	for i := range 256 {
		v := uint8(i)
		sz53[i] = v & (flagS | flagsXY)
		if v == 0 {
			sz53[i] |= flagZ
		}
		sz53p[i] = sz53[i]
		if bits.OnesCount8(v)%2 == 0 {
			sz53p[i] |= flagPV
		}
	}
}

// alu operations in the order they are encoded in the opcodes
const (
	aluADD = iota
	aluADC
	aluSUB
	aluSBC
	aluAND
	aluXOR
	aluOR
	aluCP
)

func (mc *CPU) alu(op int, v uint8) {
	switch op {
	case aluADD:
		mc.add8(v, false)
	case aluADC:
		mc.add8(v, mc.flag(flagC))
	case aluSUB:
		mc.A.Load(mc.sub8(v, false))
	case aluSBC:
		mc.A.Load(mc.sub8(v, mc.flag(flagC)))
	case aluAND:
		mc.A.AND(v)
		mc.F.Load(sz53p[mc.A.Value()] | flagH)
	case aluXOR:
		mc.A.XOR(v)
		mc.F.Load(sz53p[mc.A.Value()])
	case aluOR:
		mc.A.OR(v)
		mc.F.Load(sz53p[mc.A.Value()])
	case aluCP:
		mc.sub8(v, false)
		// flags 3 and 5 come from the operand and not the result
		mc.F.Load((mc.F.Value() &^ flagsXY) | (v & flagsXY))
	}
}

func (mc *CPU) add8(v uint8, carry bool) {
	a := mc.A.Value()
	res := uint16(a) + uint16(v)
	if carry {
		res++
	}
	r := uint8(res)

	f := sz53[r]
	if res > 0xff {
		f |= flagC
	}
	if (a^v^r)&0x10 != 0 {
		f |= flagH
	}
	if (a^v^0x80)&(a^r)&0x80 != 0 {
		f |= flagPV
	}

	mc.A.Load(r)
	mc.F.Load(f)
}

// sub8 sets the flags for the subtraction of v from the accumulator and
// returns the result. the accumulator is not changed
func (mc *CPU) sub8(v uint8, carry bool) uint8 {
	a := mc.A.Value()
	res := int(a) - int(v)
	if carry {
		res--
	}
	r := uint8(res)

	f := sz53[r] | flagN
	if res < 0 {
		f |= flagC
	}
	if (a^v^r)&0x10 != 0 {
		f |= flagH
	}
	if (a^v)&(a^r)&0x80 != 0 {
		f |= flagPV
	}

	mc.F.Load(f)
	return r
}

func (mc *CPU) inc8(v uint8) uint8 {
	r := v + 1
	f := (mc.F.Value() & flagC) | sz53[r]
	if r&0x0f == 0 {
		f |= flagH
	}
	if r == 0x80 {
		f |= flagPV
	}
	mc.F.Load(f)
	return r
}

func (mc *CPU) dec8(v uint8) uint8 {
	r := v - 1
	f := (mc.F.Value() & flagC) | flagN | sz53[r]
	if v&0x0f == 0 {
		f |= flagH
	}
	if v == 0x80 {
		f |= flagPV
	}
	mc.F.Load(f)
	return r
}

// add16 is the ADD HL,rr instruction. S, Z and PV are unaffected
func (mc *CPU) add16(a uint16, b uint16) uint16 {
	res := uint32(a) + uint32(b)
	r := uint16(res)

	f := mc.F.Value() & (flagS | flagZ | flagPV)
	f |= uint8(r>>8) & flagsXY
	if res > 0xffff {
		f |= flagC
	}
	if (a^b^r)&0x1000 != 0 {
		f |= flagH
	}

	mc.F.Load(f)
	mc.MEMPTR.Load(a + 1)
	return r
}

func (mc *CPU) adc16(a uint16, b uint16) uint16 {
	res := uint32(a) + uint32(b)
	if mc.flag(flagC) {
		res++
	}
	r := uint16(res)

	f := uint8(r>>8) & (flagS | flagsXY)
	if r == 0 {
		f |= flagZ
	}
	if res > 0xffff {
		f |= flagC
	}
	if (a^b^r)&0x1000 != 0 {
		f |= flagH
	}
	if (a^b^0x8000)&(a^r)&0x8000 != 0 {
		f |= flagPV
	}

	mc.F.Load(f)
	mc.MEMPTR.Load(a + 1)
	return r
}

func (mc *CPU) sbc16(a uint16, b uint16) uint16 {
	res := int(a) - int(b)
	if mc.flag(flagC) {
		res--
	}
	r := uint16(res)

	f := (uint8(r>>8) & (flagS | flagsXY)) | flagN
	if r == 0 {
		f |= flagZ
	}
	if res < 0 {
		f |= flagC
	}
	if (a^b^r)&0x1000 != 0 {
		f |= flagH
	}
	if (a^b)&(a^r)&0x8000 != 0 {
		f |= flagPV
	}

	mc.F.Load(f)
	mc.MEMPTR.Load(a + 1)
	return r
}

// rotate and shift operations in the order they are encoded in the CB
// opcodes
const (
	rotRLC = iota
	rotRRC
	rotRL
	rotRR
	rotSLA
	rotSRA
	rotSLL
	rotSRL
)

// rotate performs one of the CB prefixed rotate/shift operations and sets
// the flags
func (mc *CPU) rotate(op int, v uint8) uint8 {
	var r, c uint8
	switch op {
	case rotRLC:
		c = v >> 7
		r = (v << 1) | c
	case rotRRC:
		c = v & 0x01
		r = (v >> 1) | (c << 7)
	case rotRL:
		c = v >> 7
		r = v << 1
		if mc.flag(flagC) {
			r |= 0x01
		}
	case rotRR:
		c = v & 0x01
		r = v >> 1
		if mc.flag(flagC) {
			r |= 0x80
		}
	case rotSLA:
		c = v >> 7
		r = v << 1
	case rotSRA:
		c = v & 0x01
		r = (v >> 1) | (v & 0x80)
	case rotSLL:
		c = v >> 7
		r = (v << 1) | 0x01
	case rotSRL:
		c = v & 0x01
		r = v >> 1
	}
	mc.F.Load(sz53p[r] | c)
	return r
}

// rotateA performs the RLCA, RRCA, RLA and RRA instructions. S, Z and PV are
// unaffected
func (mc *CPU) rotateA(op int) {
	f := mc.F.Value()
	r := mc.rotate(op, mc.A.Value())
	mc.A.Load(r)
	mc.F.Load((f & (flagS | flagZ | flagPV)) | (r & flagsXY) | (mc.F.Value() & flagC))
}

// bit sets the flags for the BIT instruction. flags 3 and 5 are taken from
// the xy argument, which differs depending on the addressing mode
func (mc *CPU) bit(b uint8, v uint8, xy uint8) {
	f := (mc.F.Value() & flagC) | flagH | (xy & flagsXY)
	m := v & (1 << b)
	if m == 0 {
		f |= flagZ | flagPV
	}
	if m&0x80 != 0 {
		f |= flagS
	}
	mc.F.Load(f)
}

func (mc *CPU) daa() {
	a := mc.A.Value()
	var add uint8
	carry := mc.F.Value() & flagC

	if mc.flag(flagH) || a&0x0f > 9 {
		add = 0x06
	}
	if carry != 0 || a > 0x99 {
		add |= 0x60
	}
	if a > 0x99 {
		carry = flagC
	}

	if mc.flag(flagN) {
		mc.A.Load(mc.sub8(add, false))
	} else {
		mc.add8(add, false)
	}

	r := mc.A.Value()
	mc.F.Load((mc.F.Value() &^ (flagC | flagPV)) | carry | (sz53p[r] & flagPV))
}

func (mc *CPU) cpl() {
	mc.A.XOR(0xff)
	f := (mc.F.Value() & (flagS | flagZ | flagPV | flagC)) | flagH | flagN
	mc.F.Load(f | (mc.A.Value() & flagsXY))
}

func (mc *CPU) scf() {
	f := (mc.F.Value() & (flagS | flagZ | flagPV)) | flagC
	mc.F.Load(f | (mc.A.Value() & flagsXY))
}

func (mc *CPU) ccf() {
	f := (mc.F.Value() & (flagS | flagZ | flagPV)) | (mc.A.Value() & flagsXY)
	if mc.flag(flagC) {
		f |= flagH
	} else {
		f |= flagC
	}
	mc.F.Load(f)
}

func (mc *CPU) neg() {
	v := mc.A.Value()
	mc.A.Load(0)
	mc.A.Load(mc.sub8(v, false))
}
