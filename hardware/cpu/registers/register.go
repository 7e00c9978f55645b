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

// selector says where a register's value is stored
type selector int

const (
	standalone selector = iota
	high
	low
)

// Register is an 8-bit register. It is either a standalone storage cell or a
// view onto one half of a master RegisterPair.
type Register struct {
	label string

	// value is only used by standalone registers
	value uint8

	// pair and sel are only used by views
	pair *RegisterPair
	sel  selector
}

// NewRegister is the preferred method of initialisation for a standalone
// Register.
func NewRegister(val uint8, label string) *Register {
	return &Register{
		label: label,
		value: val,
		sel:   standalone,
	}
}

// String returns the register value as a hex string. eg. $0A
func (r *Register) String() string {
	return fmt.Sprintf("$%02X", r.Value())
}

// Label returns the name of the register.
func (r *Register) Label() string {
	return r.label
}

// Value returns the current value of the register.
func (r *Register) Value() uint8 {
	switch r.sel {
	case high:
		return uint8(r.pair.value >> 8)
	case low:
		return uint8(r.pair.value)
	}
	return r.value
}

// Load value into register.
func (r *Register) Load(val uint8) {
	switch r.sel {
	case high:
		r.pair.value = (r.pair.value & 0x00ff) | (uint16(val) << 8)
	case low:
		r.pair.value = (r.pair.value & 0xff00) | uint16(val)
	default:
		r.value = val
	}
}

// CopyFrom loads the value of another register. The registers remain
// independent after the copy.
func (r *Register) CopyFrom(o *Register) {
	r.Load(o.Value())
}

// Inc increments the register by one.
func (r *Register) Inc() {
	r.Load(r.Value() + 1)
}

// Dec decrements the register by one.
func (r *Register) Dec() {
	r.Load(r.Value() - 1)
}

// Add value to the register.
func (r *Register) Add(val uint8) {
	r.Load(r.Value() + val)
}

// AND value with register.
func (r *Register) AND(val uint8) {
	r.Load(r.Value() & val)
}

// OR value with register.
func (r *Register) OR(val uint8) {
	r.Load(r.Value() | val)
}

// XOR value with register.
func (r *Register) XOR(val uint8) {
	r.Load(r.Value() ^ val)
}

// IsView returns true if the register is a view onto a RegisterPair.
func (r *Register) IsView() bool {
	return r.sel != standalone
}
