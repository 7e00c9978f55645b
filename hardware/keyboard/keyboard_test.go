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

package keyboard_test

import (
	"testing"

	"github.com/gopher81/gopher81/hardware/keyboard"
	"github.com/gopher81/gopher81/test"
)

func TestLookup(t *testing.T) {
	k, err := keyboard.Lookup("shift")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, k, keyboard.Key{Row: 0, Bit: 0})
	test.ExpectEquality(t, k.String(), "SHIFT")

	k, err = keyboard.Lookup("B")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, k, keyboard.Key{Row: 7, Bit: 4})

	_, err = keyboard.Lookup("ESC")
	test.ExpectFailure(t, err)

	test.ExpectEquality(t, keyboard.Key{Row: 9, Bit: 0}.String(), "unknown key")
}

func TestRead(t *testing.T) {
	kb := keyboard.NewKeyboard()

	// nothing pressed
	test.ExpectEquality(t, kb.Read(0x00), uint8(0x1f))

	kb.Press(keyboard.MustLookup("A"))
	test.ExpectSuccess(t, kb.Pressed(keyboard.MustLookup("A")))

	// A is bit 0 of the second half-row
	test.ExpectEquality(t, kb.Read(0xfd), uint8(0x1e))
	test.ExpectEquality(t, kb.Read(0xfe), uint8(0x1f))

	// more than one half-row selected
	kb.Press(keyboard.MustLookup("V"))
	test.ExpectEquality(t, kb.Read(0xfc), uint8(0x0e))
	test.ExpectEquality(t, kb.String(), "V+A")

	kb.Release(keyboard.MustLookup("A"))
	test.ExpectEquality(t, kb.Read(0xfd), uint8(0x1f))
	test.ExpectEquality(t, kb.Read(0xfe), uint8(0x0f))

	kb.ReleaseAll()
	test.ExpectEquality(t, kb.Read(0x00), uint8(0x1f))
}

func TestKeysForRune(t *testing.T) {
	keys, ok := keyboard.KeysForRune('a')
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, len(keys), 1)
	test.ExpectEquality(t, keys[0].String(), "A")

	keys, ok = keyboard.KeysForRune('"')
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, len(keys), 2)
	test.ExpectEquality(t, keys[0].String(), "SHIFT")
	test.ExpectEquality(t, keys[1].String(), "P")

	keys, ok = keyboard.KeysForRune('\n')
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, keys[0].String(), "NEWLINE")

	_, ok = keyboard.KeysForRune('~')
	test.ExpectFailure(t, ok)
}

func TestTypist(t *testing.T) {
	kb := keyboard.NewKeyboard()
	j := keyboard.MustLookup("J")
	n := keyboard.MustLookup("NEWLINE")
	ty := keyboard.NewTypist(kb, 2, []keyboard.Key{j}, []keyboard.Key{n})

	// delay
	ty.Frame()
	ty.Frame()
	test.ExpectFailure(t, kb.Pressed(j))

	for range keyboard.TypistHold {
		ty.Frame()
		test.ExpectSuccess(t, kb.Pressed(j))
	}
	for range keyboard.TypistGap {
		ty.Frame()
		test.ExpectFailure(t, kb.Pressed(j))
		test.ExpectFailure(t, kb.Pressed(n))
	}
	for range keyboard.TypistHold {
		ty.Frame()
		test.ExpectSuccess(t, kb.Pressed(n))
	}
	for range keyboard.TypistGap {
		ty.Frame()
	}
	test.ExpectFailure(t, ty.Done())
	ty.Frame()
	test.ExpectSuccess(t, ty.Done())
	test.ExpectEquality(t, kb.Read(0x00), uint8(0x1f))
}

func TestLoadCommand(t *testing.T) {
	cmd := keyboard.LoadCommand()
	test.ExpectEquality(t, len(cmd), 4)
	test.ExpectEquality(t, cmd[1][0].String(), "SHIFT")
	test.ExpectEquality(t, cmd[3][0].String(), "NEWLINE")
}
