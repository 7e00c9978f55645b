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

// executeCB handles the CB prefixed rotate, shift and bit instructions
func (mc *CPU) executeCB() {
	x, y, z, _, _ := fields(mc.fetchOpcode())

	if z == 6 {
		address := mc.HL.Value()
		v := mc.read8(address)
		mc.internal(address, 1)
		switch x {
		case 0:
			mc.write8(address, mc.rotate(int(y), v))
		case 1:
			// flags 3 and 5 come from the internal MEMPTR register
			mc.bit(y, v, uint8(mc.MEMPTR.Value()>>8))
		case 2:
			mc.write8(address, v&^(1<<y))
		case 3:
			mc.write8(address, v|(1<<y))
		}
		return
	}

	r := mc.regPlain(z)
	switch x {
	case 0:
		r.Load(mc.rotate(int(y), r.Value()))
	case 1:
		mc.bit(y, r.Value(), r.Value())
	case 2:
		r.AND(^(uint8(1) << y))
	case 3:
		r.OR(1 << y)
	}
}

// executeIndexedCB handles the DDCB and FDCB instructions. the displacement
// comes before the opcode and the opcode is not fetched with an M1 cycle.
//
// with the exception of BIT, the result is also copied to the register
// encoded in the lower three bits of the opcode, unless those bits select the
// memory operand
func (mc *CPU) executeIndexedCB() {
	d := int8(mc.fetchByte())
	op := mc.fetchByte()
	mc.internal(mc.PC.Value()-1, 2)

	address := mc.idx.Value() + uint16(d)
	mc.MEMPTR.Load(address)

	v := mc.read8(address)
	mc.internal(address, 1)

	x, y, z, _, _ := fields(op)

	var r uint8
	switch x {
	case 0:
		r = mc.rotate(int(y), v)
	case 1:
		mc.bit(y, v, uint8(address>>8))
		return
	case 2:
		r = v &^ (1 << y)
	case 3:
		r = v | (1 << y)
	}

	mc.write8(address, r)
	if z != 6 {
		mc.regPlain(z).Load(r)
	}
}
