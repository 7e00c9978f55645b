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

package ula_test

import (
	"testing"

	"github.com/gopher81/gopher81/hardware/keyboard"
	"github.com/gopher81/gopher81/hardware/preferences"
	"github.com/gopher81/gopher81/hardware/specification"
	"github.com/gopher81/gopher81/hardware/ula"
	"github.com/gopher81/gopher81/test"
)

type mockMemory struct {
	data     [0x10000]uint8
	qs       [1024]uint8
	qsActive bool
}

func (m *mockMemory) Read(address uint16) uint8 {
	return m.data[address]
}

func (m *mockMemory) QSActive() bool {
	return m.qsActive
}

func (m *mockMemory) QSPattern(offset uint16) uint8 {
	return m.qs[offset]
}

type mockEAR bool

func (e *mockEAR) EAR() bool {
	return bool(*e)
}

func newULA(chargen preferences.CharGen, spec specification.Spec) (*ula.ULA, *mockMemory, *keyboard.Keyboard, *mockEAR) {
	mem := &mockMemory{}
	kb := keyboard.NewKeyboard()
	ear := new(mockEAR)
	return ula.NewULA(mem, kb, ear, chargen, spec), mem, kb, ear
}

func TestKeyboardPort(t *testing.T) {
	u, _, kb, ear := newULA(preferences.CharGenSinclair, specification.SpecPAL)

	v, ok := u.ReadPort(0xfeff)
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, v, uint8(0xff))

	kb.Press(keyboard.MustLookup("A"))
	v, ok = u.ReadPort(0xfdfe)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, uint8(0x7e))

	*ear = true
	v, _ = u.ReadPort(0xfefe)
	test.ExpectEquality(t, v, uint8(0xff))

	u, _, _, _ = newULA(preferences.CharGenSinclair, specification.SpecNTSC)
	v, _ = u.ReadPort(0x00fe)
	test.ExpectEquality(t, v, uint8(0x3f))
}

func TestSync(t *testing.T) {
	u, _, _, _ := newULA(preferences.CharGenSinclair, specification.SpecPAL)

	test.ExpectFailure(t, u.HSync())
	test.ExpectEquality(t, u.RowCounter, uint8(1))

	// reading the keyboard with the NMI generator off starts vertical sync
	u.ReadPort(0xfffe)
	test.ExpectSuccess(t, u.VSync)
	test.ExpectSuccess(t, u.Level())
	test.ExpectEquality(t, u.RowCounter, uint8(0))
	test.ExpectEquality(t, u.Frames, 1)
	test.ExpectEquality(t, u.Scanline(), 0)

	// row counter is held during vertical sync
	u.HSync()
	u.HSync()
	test.ExpectEquality(t, u.RowCounter, uint8(0))
	test.ExpectEquality(t, u.Scanline(), 2)

	// any write ends vertical sync
	u.WritePort(0xffff, 0x00)
	test.ExpectFailure(t, u.VSync)
	test.ExpectFailure(t, u.NMIGenerator)

	for range 9 {
		u.HSync()
	}
	test.ExpectEquality(t, u.RowCounter, uint8(1))

	// NMI generator on
	u.WritePort(0x00fe, 0x00)
	test.ExpectSuccess(t, u.NMIGenerator)
	test.ExpectSuccess(t, u.HSync())

	// reading the keyboard does not start vertical sync when the NMI
	// generator is on
	u.ReadPort(0xfffe)
	test.ExpectFailure(t, u.VSync)
	test.ExpectEquality(t, u.Frames, 1)

	// NMI generator off
	u.WritePort(0x00fd, 0x00)
	test.ExpectFailure(t, u.NMIGenerator)
	test.ExpectFailure(t, u.HSync())
}

func TestScanlineWraps(t *testing.T) {
	u, _, _, _ := newULA(preferences.CharGenSinclair, specification.SpecNTSC)
	for range specification.SpecNTSC.ScanlinesTotal {
		u.HSync()
	}
	test.ExpectEquality(t, u.Scanline(), 0)
	test.ExpectEquality(t, len(u.Frame()), specification.SpecNTSC.ScanlinesTotal)
	test.ExpectEquality(t, len(u.Frame()[0]), ula.BytesPerScanline)
}

func TestFetch(t *testing.T) {
	u, mem, _, _ := newULA(preferences.CharGenSinclair, specification.SpecPAL)

	// the character set in the ROM is at 0x1e00. character 0x26 is the letter A
	mem.data[0x1e00|(0x26<<3)|0x00] = 0x3c
	mem.data[0x1e00|(0x26<<3)|0x01] = 0x42

	u.Fetch(0x26, 0x1e, 0x00, 40)
	u.Fetch(0xa6, 0x1e, 0x00, 44)
	u.HSync()

	// the next row of the pattern on the next scanline
	u.Fetch(0x26, 0x1e, 0x00, 40)
	u.HSync()

	frame := u.Frame()
	test.ExpectEquality(t, frame[0][10], uint8(0x3c))
	test.ExpectEquality(t, frame[0][11], uint8(0xc3))
	test.ExpectEquality(t, frame[0][12], uint8(0x00))
	test.ExpectEquality(t, frame[1][10], uint8(0x42))
	test.ExpectEquality(t, frame[1][11], uint8(0x00))

	// the odd bit of the I register is ignored
	u.Reset()
	u.Fetch(0x26, 0x1f, 0x00, 0)
	u.HSync()
	test.ExpectEquality(t, u.Frame()[0][0], uint8(0x3c))

	// fetches beyond the end of the scanline are ignored
	u.Fetch(0x26, 0x1e, 0x00, 1000)
}

func TestHiRes(t *testing.T) {
	u, mem, _, _ := newULA(preferences.CharGenSinclair, specification.SpecPAL)
	mem.data[0x4010] = 0x81
	u.Fetch(0x00, 0x40, 0x10, 0)
	u.Fetch(0x80, 0x40, 0x10, 4)
	u.HSync()
	test.ExpectEquality(t, u.Frame()[0][0], uint8(0x81))
	test.ExpectEquality(t, u.Frame()[0][1], uint8(0x7e))
}

func TestQS(t *testing.T) {
	u, mem, _, _ := newULA(preferences.CharGenQS, specification.SpecPAL)
	mem.data[0x1e00|(0x01<<3)] = 0x11
	mem.qs[0x01<<3] = 0x22

	u.Fetch(0x01, 0x1e, 0x00, 0)
	mem.qsActive = true
	u.Fetch(0x01, 0x1e, 0x00, 4)
	u.HSync()
	test.ExpectEquality(t, u.Frame()[0][0], uint8(0x11))
	test.ExpectEquality(t, u.Frame()[0][1], uint8(0x22))
}

func TestCHR16(t *testing.T) {
	u, mem, _, _ := newULA(preferences.CharGenCHR16, specification.SpecPAL)
	mem.data[0x8000|(0x01<<3)] = 0x11
	mem.data[0x8200|(0x01<<3)] = 0x22

	// I register in the CHR16 range is not hi-res
	u.Fetch(0x01, 0x80, 0x00, 0)

	// inverse video with an even I register
	u.Fetch(0x81, 0x80, 0x00, 4)

	// second half of the character set with an odd I register
	u.Fetch(0x81, 0x81, 0x00, 8)
	u.HSync()

	test.ExpectEquality(t, u.Frame()[0][0], uint8(0x11))
	test.ExpectEquality(t, u.Frame()[0][1], uint8(0xee))
	test.ExpectEquality(t, u.Frame()[0][2], uint8(0x22))
}
