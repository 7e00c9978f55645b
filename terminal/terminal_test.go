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

package terminal_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gopher81/gopher81/hardware"
	"github.com/gopher81/gopher81/hardware/keyboard"
	"github.com/gopher81/gopher81/hardware/memory"
	"github.com/gopher81/gopher81/hardware/preferences"
	"github.com/gopher81/gopher81/terminal"
	"github.com/gopher81/gopher81/test"
)

type mockMemory struct {
	data [memory.Size]uint8
}

func (m *mockMemory) Peek(address int) (uint8, error) {
	if address < 0 || address >= memory.Size {
		return 0, memory.AddressError
	}
	return m.data[address], nil
}

// displayFile writes a display file to memory at the address and points
// D_FILE to it. the rows are character codes
func displayFile(poke func(int, uint8) error, address int, rows ...[]uint8) error {
	if err := poke(0x400c, uint8(address)); err != nil {
		return err
	}
	if err := poke(0x400d, uint8(address>>8)); err != nil {
		return err
	}

	if err := poke(address, 0x76); err != nil {
		return err
	}
	address++

	for r := range terminal.Rows {
		if r < len(rows) {
			for _, c := range rows[r] {
				if err := poke(address, c); err != nil {
					return err
				}
				address++
			}
		}
		if err := poke(address, 0x76); err != nil {
			return err
		}
		address++
	}

	return nil
}

func (m *mockMemory) poke(address int, data uint8) error {
	m.data[address] = data
	return nil
}

// character codes for HELLO
var hello = []uint8{0x2d, 0x2a, 0x31, 0x31, 0x34}

func TestGlyph(t *testing.T) {
	r, inv := terminal.Glyph(0x00)
	test.ExpectEquality(t, r, ' ')
	test.ExpectEquality(t, inv, false)

	r, _ = terminal.Glyph(0x0b)
	test.ExpectEquality(t, r, '"')

	r, _ = terminal.Glyph(0x1c)
	test.ExpectEquality(t, r, '0')

	r, _ = terminal.Glyph(0x26)
	test.ExpectEquality(t, r, 'A')

	r, _ = terminal.Glyph(0x3f)
	test.ExpectEquality(t, r, 'Z')

	r, inv = terminal.Glyph(0xa6)
	test.ExpectEquality(t, r, 'A')
	test.ExpectEquality(t, inv, true)

	r, inv = terminal.Glyph(0x80)
	test.ExpectEquality(t, r, '█')
	test.ExpectEquality(t, inv, false)

	// tokens are not displayable
	r, _ = terminal.Glyph(0x40)
	test.ExpectEquality(t, r, '?')
	r, _ = terminal.Glyph(0xf0)
	test.ExpectEquality(t, r, '?')
}

func TestCollapsedDisplayFile(t *testing.T) {
	mem := &mockMemory{}
	test.DemandSuccess(t, displayFile(mem.poke, 0x4100, hello, nil, []uint8{0x26}))

	scr, err := terminal.ReadScreen(mem)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, scr[0][0], uint8(0x2d))
	test.ExpectEquality(t, scr[0][4], uint8(0x34))
	test.ExpectEquality(t, scr[0][5], uint8(0x00))
	test.ExpectEquality(t, scr[2][0], uint8(0x26))

	lines := strings.Split(scr.String(), "\n")
	test.DemandEquality(t, len(lines), terminal.Rows)
	test.ExpectEquality(t, strings.TrimRight(lines[0], " "), "HELLO")
	test.ExpectEquality(t, strings.TrimRight(lines[1], " "), "")
	test.ExpectEquality(t, strings.TrimRight(lines[2], " "), "A")
}

func TestFullDisplayFile(t *testing.T) {
	row := make([]uint8, terminal.Columns)
	for i := range row {
		row[i] = 0x26 + uint8(i%26)
	}

	var rows [][]uint8
	for range terminal.Rows {
		rows = append(rows, row)
	}

	mem := &mockMemory{}
	test.DemandSuccess(t, displayFile(mem.poke, 0x4100, rows...))

	scr, err := terminal.ReadScreen(mem)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, scr[terminal.Rows-1][terminal.Columns-1], row[terminal.Columns-1])

	lines := strings.Split(scr.String(), "\n")
	test.ExpectEquality(t, lines[0], "ABCDEFGHIJKLMNOPQRSTUVWXYZABCDEF")
}

func TestMalformedDisplayFile(t *testing.T) {
	// no newline anywhere
	mem := &mockMemory{}
	test.DemandSuccess(t, mem.poke(0x400d, 0x41))
	_, err := terminal.ReadScreen(mem)
	test.ExpectFailure(t, err)

	// display file runs off the end of memory
	mem = &mockMemory{}
	test.DemandSuccess(t, mem.poke(0x400c, 0xfe))
	test.DemandSuccess(t, mem.poke(0x400d, 0xff))
	test.DemandSuccess(t, mem.poke(0xfffe, 0x76))
	_, err = terminal.ReadScreen(mem)
	test.ExpectSuccess(t, errors.Is(err, memory.AddressError))
}

func TestTyper(t *testing.T) {
	kb := keyboard.NewKeyboard()
	ty := terminal.NewTyper(kb)

	test.ExpectSuccess(t, ty.Push([]byte("a$")))
	test.ExpectEquality(t, ty.Pending(), 2)

	a := keyboard.MustLookup("A")
	shift := keyboard.MustLookup("SHIFT")
	u := keyboard.MustLookup("U")

	// held for three frames
	for range 3 {
		ty.Frame()
		test.ExpectEquality(t, kb.Pressed(a), true)
	}

	// released for two frames
	for range 2 {
		ty.Frame()
		test.ExpectEquality(t, kb.Pressed(a), false)
	}

	// shifted symbol
	ty.Frame()
	test.ExpectEquality(t, kb.Pressed(shift), true)
	test.ExpectEquality(t, kb.Pressed(u), true)
	test.ExpectEquality(t, ty.Pending(), 0)

	// unknown characters are ignored and ctrl-c stops the typer
	test.ExpectSuccess(t, ty.Push([]byte{'#'}))
	test.ExpectEquality(t, ty.Pending(), 0)
	test.ExpectFailure(t, ty.Push([]byte{'b', 3, 'c'}))
	test.ExpectEquality(t, ty.Pending(), 1)

	// backspace is RUBOUT
	test.ExpectSuccess(t, ty.Push([]byte{127}))
	test.ExpectEquality(t, ty.Pending(), 2)
}

func newZX81(t *testing.T, program ...uint8) *hardware.ZX81 {
	t.Helper()

	opts, err := preferences.NewZX81OptionsFromFile(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)

	rom := make([]uint8, 8192)
	copy(rom, program)

	z := hardware.NewZX81(nil)
	test.DemandSuccess(t, z.Initialise(opts, hardware.ROMImages{"zx81.rom": rom}))
	return z
}

func TestDraw(t *testing.T) {
	z := newZX81(t)
	test.DemandSuccess(t, displayFile(z.Poke, 0x4100, hello))

	var s strings.Builder
	trm := terminal.NewTerminal(&s, z)
	test.DemandSuccess(t, trm.Draw())
	test.ExpectSuccess(t, strings.Contains(s.String(), "HELLO"))
	test.ExpectSuccess(t, strings.Contains(s.String(), "PAL"))
}

func TestRun(t *testing.T) {
	// DI; HALT
	z := newZX81(t, 0xf3, 0x76)
	test.DemandSuccess(t, displayFile(z.Poke, 0x4100, hello))

	var s strings.Builder
	trm := terminal.NewTerminal(&s, z)
	test.DemandSuccess(t, trm.Run(nil, true))
	test.ExpectSuccess(t, strings.Contains(s.String(), "HELLO"))
	test.ExpectSuccess(t, strings.Contains(s.String(), "stopped"))
}
