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

// interrupt modes selected by the y field of the IM instructions
var imModes = [8]uint8{0, 0, 1, 2, 0, 0, 1, 2}

// executeED handles the ED prefixed instructions. opcodes that have no
// meaning are executed as an eight T-state NOP
func (mc *CPU) executeED() {
	x, y, z, p, q := fields(mc.fetchOpcode())

	switch x {
	case 1:
		mc.executeEDX1(y, z, p, q)
	case 2:
		if z <= 3 && y >= 4 {
			mc.block(y, z)
		}
	}
}

func (mc *CPU) executeEDX1(y, z, p, q uint8) {
	switch z {
	case 0:
		// IN r,(C). IN (C) only sets the flags
		bc := mc.BC.Value()
		v := mc.in(bc)
		mc.MEMPTR.Load(bc + 1)
		mc.F.Load((mc.F.Value() & flagC) | sz53p[v])
		if y != 6 {
			mc.regPlain(y).Load(v)
		}

	case 1:
		// OUT (C),r. OUT (C),0 when y is 6
		var v uint8
		if y != 6 {
			v = mc.regPlain(y).Value()
		}
		bc := mc.BC.Value()
		mc.out(bc, v)
		mc.MEMPTR.Load(bc + 1)

	case 2:
		mc.internal(mc.ir(), 7)
		if q == 0 {
			mc.HL.Load(mc.sbc16(mc.HL.Value(), mc.rp(p).Value()))
		} else {
			mc.HL.Load(mc.adc16(mc.HL.Value(), mc.rp(p).Value()))
		}

	case 3:
		address := mc.fetchWord()
		if q == 0 {
			mc.write16(address, mc.rp(p).Value())
		} else {
			mc.rp(p).Load(mc.read16(address))
		}
		mc.MEMPTR.Load(address + 1)

	case 4:
		mc.neg()

	case 5:
		// RETN and RETI both restore IFF1
		mc.IFF1 = mc.IFF2
		mc.PC.Load(mc.pop())
		mc.MEMPTR.Load(mc.PC.Value())

	case 6:
		mc.IM = imModes[y]

	case 7:
		switch y {
		case 0:
			mc.internal(mc.ir(), 1)
			mc.I.CopyFrom(mc.A)
		case 1:
			mc.internal(mc.ir(), 1)
			mc.R.CopyFrom(mc.A)
		case 2, 3:
			mc.internal(mc.ir(), 1)
			if y == 2 {
				mc.A.CopyFrom(mc.I)
			} else {
				mc.A.CopyFrom(mc.R)
			}
			f := (mc.F.Value() & flagC) | sz53[mc.A.Value()]
			if mc.IFF2 {
				f |= flagPV
			}
			mc.F.Load(f)
		case 4, 5:
			mc.rotateDecimal(y == 5)
		}
	}
}

// rotateDecimal is the RLD and RRD instructions
func (mc *CPU) rotateDecimal(left bool) {
	address := mc.HL.Value()
	v := mc.read8(address)
	mc.internal(address, 4)

	a := mc.A.Value()
	if left {
		mc.write8(address, (v<<4)|(a&0x0f))
		mc.A.Load((a & 0xf0) | (v >> 4))
	} else {
		mc.write8(address, (a<<4)|(v>>4))
		mc.A.Load((a & 0xf0) | (v & 0x0f))
	}

	mc.F.Load((mc.F.Value() & flagC) | sz53p[mc.A.Value()])
	mc.MEMPTR.Load(address + 1)
}

// block performs the block transfer, compare and I/O instructions. the y
// field selects the direction and whether the instruction repeats. the z field
// selects the operation
func (mc *CPU) block(y, z uint8) {
	inc := y&0x01 == 0
	repeat := y >= 6

	step := func(rr interface{ Inc(); Dec() }) {
		if inc {
			rr.Inc()
		} else {
			rr.Dec()
		}
	}

	switch z {
	case 0:
		// LDI, LDD, LDIR, LDDR
		v := mc.read8(mc.HL.Value())
		de := mc.DE.Value()
		mc.write8(de, v)
		mc.internal(de, 2)
		mc.BC.Dec()
		step(mc.HL)
		step(mc.DE)

		n := v + mc.A.Value()
		f := (mc.F.Value() & (flagS | flagZ | flagC)) | (n & flagX) | ((n & 0x02) << 4)
		if mc.BC.Value() != 0 {
			f |= flagPV
		}
		mc.F.Load(f)

		if repeat && mc.BC.Value() != 0 {
			mc.internal(de, 5)
			mc.repeatBlock()
		}

	case 1:
		// CPI, CPD, CPIR, CPDR
		hl := mc.HL.Value()
		v := mc.read8(hl)
		mc.internal(hl, 5)

		a := mc.A.Value()
		r := a - v
		halfCarry := (a^v^r)&0x10 != 0

		mc.BC.Dec()
		step(mc.HL)
		step(mc.MEMPTR)

		f := (mc.F.Value() & flagC) | flagN | (r & flagS)
		if r == 0 {
			f |= flagZ
		}
		if halfCarry {
			f |= flagH
		}
		if mc.BC.Value() != 0 {
			f |= flagPV
		}
		n := r
		if halfCarry {
			n--
		}
		f |= (n & flagX) | ((n & 0x02) << 4)
		mc.F.Load(f)

		if repeat && mc.BC.Value() != 0 && r != 0 {
			mc.internal(hl, 5)
			mc.repeatBlock()
		}

	case 2:
		// INI, IND, INIR, INDR
		mc.internal(mc.ir(), 1)
		bc := mc.BC.Value()
		v := mc.in(bc)
		hl := mc.HL.Value()
		mc.write8(hl, v)

		if inc {
			mc.MEMPTR.Load(bc + 1)
		} else {
			mc.MEMPTR.Load(bc - 1)
		}
		mc.B.Dec()
		step(mc.HL)

		c := mc.C.Value()
		if inc {
			c++
		} else {
			c--
		}
		mc.blockIOFlags(v, c)

		if repeat && mc.B.Value() != 0 {
			mc.internal(hl, 5)
			mc.repeatBlock()
		}

	case 3:
		// OUTI, OUTD, OTIR, OTDR
		mc.internal(mc.ir(), 1)
		v := mc.read8(mc.HL.Value())
		mc.B.Dec()
		bc := mc.BC.Value()
		if inc {
			mc.MEMPTR.Load(bc + 1)
		} else {
			mc.MEMPTR.Load(bc - 1)
		}
		mc.out(bc, v)
		step(mc.HL)

		mc.blockIOFlags(v, mc.L.Value())

		if repeat && mc.B.Value() != 0 {
			mc.internal(bc, 5)
			mc.repeatBlock()
		}
	}
}

// flags for the block I/O instructions are a function of the byte
// transferred, the B register and an additional value that depends on the
// instruction
func (mc *CPU) blockIOFlags(v uint8, k uint8) {
	sum := uint16(v) + uint16(k)
	b := mc.B.Value()

	f := sz53[b]
	if v&0x80 != 0 {
		f |= flagN
	}
	if sum > 0xff {
		f |= flagH | flagC
	}
	f |= sz53p[(uint8(sum)&0x07)^b] & flagPV
	mc.F.Load(f)
}

// repeatBlock rewinds the program counter so that the block instruction is
// executed again
func (mc *CPU) repeatBlock() {
	mc.PC.Add(0xfffe)
	mc.MEMPTR.Load(mc.PC.Value() + 1)
}
