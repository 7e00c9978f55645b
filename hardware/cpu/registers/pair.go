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

package registers

import "fmt"

// RegisterPair is a 16-bit register. It is either a master pair, which owns
// its value, or a slave pair composed of two Registers.
type RegisterPair struct {
	label string

	// value is only used by master pairs
	value uint16

	// for a master pair these are views onto value. for a slave pair they are
	// the registers from which the value is derived
	hi *Register
	lo *Register

	slave bool
}

// NewRegisterPair is the preferred method of initialisation for a master
// RegisterPair. The labels for the high and low views are also supplied.
func NewRegisterPair(val uint16, label string, hiLabel string, loLabel string) *RegisterPair {
	rp := &RegisterPair{
		label: label,
		value: val,
	}
	rp.hi = &Register{label: hiLabel, pair: rp, sel: high}
	rp.lo = &Register{label: loLabel, pair: rp, sel: low}
	return rp
}

// NewSlavePair creates a RegisterPair composed of two existing Registers.
func NewSlavePair(label string, hi *Register, lo *Register) *RegisterPair {
	return &RegisterPair{
		label: label,
		hi:    hi,
		lo:    lo,
		slave: true,
	}
}

// String returns the register value as a hex string. eg. $0A1B
func (rp *RegisterPair) String() string {
	return fmt.Sprintf("$%04X", rp.Value())
}

// Label returns the name of the register pair.
func (rp *RegisterPair) Label() string {
	return rp.label
}

// High returns the register representing the most significant byte.
func (rp *RegisterPair) High() *Register {
	return rp.hi
}

// Low returns the register representing the least significant byte.
func (rp *RegisterPair) Low() *Register {
	return rp.lo
}

// IsSlave returns true if the value of the pair is derived from two
// independent registers.
func (rp *RegisterPair) IsSlave() bool {
	return rp.slave
}

// Value returns the current value of the register pair.
func (rp *RegisterPair) Value() uint16 {
	if rp.slave {
		return (uint16(rp.hi.Value()) << 8) | uint16(rp.lo.Value())
	}
	return rp.value
}

// Load value into register pair.
func (rp *RegisterPair) Load(val uint16) {
	if rp.slave {
		rp.hi.Load(uint8(val >> 8))
		rp.lo.Load(uint8(val))
		return
	}
	rp.value = val
}

// CopyFrom loads the value of another register pair. The pairs remain
// independent after the copy.
func (rp *RegisterPair) CopyFrom(o *RegisterPair) {
	rp.Load(o.Value())
}

// Inc increments the register pair by one.
func (rp *RegisterPair) Inc() {
	rp.Load(rp.Value() + 1)
}

// Dec decrements the register pair by one.
func (rp *RegisterPair) Dec() {
	rp.Load(rp.Value() - 1)
}

// Add value to the register pair.
func (rp *RegisterPair) Add(val uint16) {
	rp.Load(rp.Value() + val)
}

// AND value with register pair.
func (rp *RegisterPair) AND(val uint16) {
	rp.Load(rp.Value() & val)
}

// OR value with register pair.
func (rp *RegisterPair) OR(val uint16) {
	rp.Load(rp.Value() | val)
}

// Swap exchanges the values of two register pairs.
func (rp *RegisterPair) Swap(o *RegisterPair) {
	v := rp.Value()
	rp.Load(o.Value())
	o.Load(v)
}
