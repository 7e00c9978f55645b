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

package ula

import (
	"fmt"

	"github.com/gopher81/gopher81/hardware/keyboard"
	"github.com/gopher81/gopher81/hardware/preferences"
	"github.com/gopher81/gopher81/hardware/specification"
)

// Memory is the view of memory required by the ULA.
type Memory interface {
	Read(address uint16) uint8
	QSActive() bool
	QSPattern(offset uint16) uint8
}

// EAR is the source of the tape signal.
type EAR interface {
	EAR() bool
}

// bits in the value read from the keyboard port
const (
	portUnused = 0x20
	port50Hz   = 0x40
	portEAR    = 0x80
)

// BytesPerScanline is the number of pattern bytes that can be displayed in
// one scanline. Each byte is eight pixels and takes four T-states.
const BytesPerScanline = (specification.TStatesPerScanline + 3) / 4

// ULA is the state of the ZX81 ULA.
type ULA struct {
	mem     Memory
	kb      *keyboard.Keyboard
	ear     EAR
	chargen preferences.CharGen
	spec    specification.Spec

	// NMI generator is switched on and off by writes to the ULA ports
	NMIGenerator bool

	// vertical sync is active
	VSync bool

	// selects the row of the character pattern
	RowCounter uint8

	// the video output for the current scanline and for the current frame
	line     []uint8
	frame    [][]uint8
	scanline int

	// number of vertical syncs since reset
	Frames int
}

// NewULA is the preferred method of initialisation for the ULA type. The ear
// argument can be nil.
func NewULA(mem Memory, kb *keyboard.Keyboard, ear EAR, chargen preferences.CharGen, spec specification.Spec) *ULA {
	u := &ULA{
		mem:     mem,
		kb:      kb,
		ear:     ear,
		chargen: chargen,
		spec:    spec,
		line:    make([]uint8, BytesPerScanline),
		frame:   make([][]uint8, spec.ScanlinesTotal),
	}
	for i := range u.frame {
		u.frame[i] = make([]uint8, BytesPerScanline)
	}
	return u
}

func (u *ULA) String() string {
	nmi := "off"
	if u.NMIGenerator {
		nmi = "on"
	}
	return fmt.Sprintf("NMI=%s VSYNC=%v row=%d scanline=%d", nmi, u.VSync, u.RowCounter, u.scanline)
}

// Reset the ULA to the power-on state.
func (u *ULA) Reset() {
	u.NMIGenerator = false
	u.VSync = false
	u.RowCounter = 0
	u.scanline = 0
	u.Frames = 0
	clear(u.line)
	for i := range u.frame {
		clear(u.frame[i])
	}
}

// ReadPort returns the value of a ULA port. The boolean return value is false
// if the port is not decoded by the ULA.
func (u *ULA) ReadPort(port uint16) (uint8, bool) {
	if port&0x0001 != 0x0000 {
		return 0xff, false
	}

	v := u.kb.Read(uint8(port>>8)) | portUnused
	if u.spec.Jumper50Hz {
		v |= port50Hz
	}
	if u.ear != nil && u.ear.EAR() {
		v |= portEAR
	}

	// reading the keyboard with the NMI generator off starts vertical sync
	if !u.NMIGenerator && !u.VSync {
		u.VSync = true
		u.RowCounter = 0
		u.scanline = 0
		u.Frames++
	}

	return v, true
}

// WritePort handles a write to any port. All writes end vertical sync. The
// NMI generator is controlled by the A0 and A1 lines.
func (u *ULA) WritePort(port uint16, _ uint8) {
	u.VSync = false
	if port&0x0002 == 0x0000 {
		u.NMIGenerator = false
	}
	if port&0x0001 == 0x0000 {
		u.NMIGenerator = true
	}
}

// Fetch should be called when the CPU fetches an opcode that the ULA
// intercepts. The i and r arguments are the values of the I and R registers
// during the refresh cycle. The clock is the time of the fetch within the
// scanline.
func (u *ULA) Fetch(code uint8, i uint8, r uint8, clock int) {
	var pattern uint8
	invert := code&0x80 == 0x80

	switch {
	case u.hires(i):
		pattern = u.mem.Read((uint16(i) << 8) | uint16(r))

	case u.chargen == preferences.CharGenQS && u.mem.QSActive():
		pattern = u.mem.QSPattern((uint16(code&0x3f) << 3) | uint16(u.RowCounter))

	default:
		base := uint16(i&0xfe) << 8

		// with an odd I register, the CHR16 board uses bit 7 of the character
		// code to select the second half of a 128 character set
		if u.chargen == preferences.CharGenCHR16 && i&0x01 == 0x01 && invert {
			base += 0x0200
			invert = false
		}

		pattern = u.mem.Read(base | (uint16(code&0x3f) << 3) | uint16(u.RowCounter))
	}

	if invert {
		pattern = ^pattern
	}

	idx := clock / 4
	if idx >= 0 && idx < len(u.line) {
		u.line[idx] = pattern
	}
}

// hires returns true if the I register indicates pseudo hi-res
func (u *ULA) hires(i uint8) bool {
	if i < 0x40 {
		return false
	}
	if u.chargen == preferences.CharGenCHR16 && i >= 0x80 && i <= 0xbf {
		return false
	}
	return true
}

// HSync should be called at the end of every scanline. Returns true if an NMI
// should be raised.
func (u *ULA) HSync() bool {
	copy(u.frame[u.scanline], u.line)
	clear(u.line)

	u.scanline++
	if u.scanline >= len(u.frame) {
		u.scanline = 0
	}

	if !u.VSync {
		u.RowCounter = (u.RowCounter + 1) & 0x07
	}

	return u.NMIGenerator
}

// Scanline returns the scanline being generated.
func (u *ULA) Scanline() int {
	return u.scanline
}

// Frame returns the video output. There is one entry for every scanline. Each
// entry is BytesPerScanline bytes long, the most significant bit of each byte
// being the leftmost pixel. A set bit is a black pixel.
//
// The returned data is updated as the emulation runs.
func (u *ULA) Frame() [][]uint8 {
	return u.frame
}

// Level returns the level of the video sync signal. The ZX81 has no speaker
// but the sync signal can be heard on a television's audio.
func (u *ULA) Level() bool {
	return u.VSync
}
