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

package terminal

import (
	"github.com/gopher81/gopher81/hardware/keyboard"
	"github.com/gopher81/gopher81/logger"
)

// byte values from the terminal with special meaning
const (
	keyInterrupt = 3
	keyBackspace = 8
	keyDelete    = 127
)

// the number of frames a key is held down and then released for. the ROM
// scans the keyboard once per frame and needs to see the key released before
// it accepts the same key again
const (
	typerHold    = 3
	typerRelease = 2
)

// Typer presses keys on the ZX81 keyboard for characters typed in the
// terminal.
type Typer struct {
	kb    *keyboard.Keyboard
	queue [][]keyboard.Key

	// the keys currently being pressed and the number of frames until the
	// next change
	current []keyboard.Key
	frames  int
}

// NewTyper is the preferred method of initialisation for the Typer type.
func NewTyper(kb *keyboard.Keyboard) *Typer {
	return &Typer{kb: kb}
}

// Push adds typed bytes to the queue of keys. Returns false if the interrupt
// character (ctrl-c) is found, in which case any bytes after the interrupt
// are ignored.
func (ty *Typer) Push(b []byte) bool {
	for _, c := range b {
		switch c {
		case keyInterrupt:
			return false
		case keyBackspace, keyDelete:
			// RUBOUT
			ty.queue = append(ty.queue, []keyboard.Key{keyboard.MustLookup("SHIFT"), keyboard.MustLookup("0")})
		default:
			keys, ok := keyboard.KeysForRune(rune(c))
			if !ok {
				logger.Logf(logger.Allow, "terminal", "no key for %q", rune(c))
				continue
			}
			ty.queue = append(ty.queue, keys)
		}
	}
	return true
}

// Pending returns the number of key combinations that are waiting to be
// pressed.
func (ty *Typer) Pending() int {
	return len(ty.queue)
}

// Frame should be called once per video frame.
func (ty *Typer) Frame() {
	if ty.frames > 0 {
		ty.frames--
		return
	}

	if ty.current != nil {
		ty.kb.Release(ty.current...)
		ty.current = nil
		ty.frames = typerRelease - 1
		return
	}

	if len(ty.queue) == 0 {
		return
	}

	ty.current = ty.queue[0]
	ty.queue = ty.queue[1:]
	ty.kb.Press(ty.current...)
	ty.frames = typerHold - 1
}
