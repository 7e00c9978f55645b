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

// Package keyboard implements the ZX81 keyboard matrix.
//
// The forty keys are arranged as eight half-rows of five keys. A half-row is
// selected by a zero bit in the high byte of the port address and the keys in
// the half-row are returned in bits 0 to 4 of the port value. A pressed key is
// a zero bit.
//
// The matrix is marshalled by the front end. Keys are pressed and released
// between calls to the emulation and are read by the ULA when the CPU reads
// port 0xFE.
package keyboard

import (
	"fmt"
	"strings"
)

// Key is a position in the keyboard matrix.
type Key struct {
	Row int
	Bit int
}

// the label of each key in the matrix
var matrix = [8][5]string{
	{"SHIFT", "Z", "X", "C", "V"},
	{"A", "S", "D", "F", "G"},
	{"Q", "W", "E", "R", "T"},
	{"1", "2", "3", "4", "5"},
	{"0", "9", "8", "7", "6"},
	{"P", "O", "I", "U", "Y"},
	{"NEWLINE", "L", "K", "J", "H"},
	{"SPACE", ".", "M", "N", "B"},
}

func (k Key) String() string {
	if k.Row < 0 || k.Row >= len(matrix) || k.Bit < 0 || k.Bit >= len(matrix[0]) {
		return "unknown key"
	}
	return matrix[k.Row][k.Bit]
}

// Lookup returns the key with the label. The label is not case sensitive.
func Lookup(label string) (Key, error) {
	label = strings.ToUpper(label)
	for r, row := range matrix {
		for b, l := range row {
			if l == label {
				return Key{Row: r, Bit: b}, nil
			}
		}
	}
	return Key{}, fmt.Errorf("keyboard: no key labelled %q", label)
}

// MustLookup is the same as Lookup() but panics if the label is not found.
// Suitable for initialising tables of keys.
func MustLookup(label string) Key {
	k, err := Lookup(label)
	if err != nil {
		panic(err)
	}
	return k
}

// Keyboard is the state of the matrix.
type Keyboard struct {
	// a set bit indicates that the key is pressed
	rows [8]uint8
}

// NewKeyboard is the preferred method of initialisation for the Keyboard type.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

func (kb *Keyboard) String() string {
	var s strings.Builder
	for r, row := range matrix {
		for b, l := range row {
			if kb.rows[r]&(1<<b) != 0 {
				if s.Len() > 0 {
					s.WriteString("+")
				}
				s.WriteString(l)
			}
		}
	}
	return s.String()
}

// Press the keys.
func (kb *Keyboard) Press(keys ...Key) {
	for _, k := range keys {
		kb.rows[k.Row] |= 1 << k.Bit
	}
}

// Release the keys.
func (kb *Keyboard) Release(keys ...Key) {
	for _, k := range keys {
		kb.rows[k.Row] &^= 1 << k.Bit
	}
}

// ReleaseAll releases every key.
func (kb *Keyboard) ReleaseAll() {
	clear(kb.rows[:])
}

// Pressed returns true if the key is pressed.
func (kb *Keyboard) Pressed(k Key) bool {
	return kb.rows[k.Row]&(1<<k.Bit) != 0
}

// Read returns the state of the half-rows selected by the zero bits in the
// high byte of the port address. Only bits 0 to 4 of the return value are
// meaningful and a pressed key is indicated by a zero bit.
func (kb *Keyboard) Read(high uint8) uint8 {
	var pressed uint8
	for r := range kb.rows {
		if high&(1<<r) == 0 {
			pressed |= kb.rows[r]
		}
	}
	return ^pressed & 0x1f
}
