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

package keyboard

// Typist presses a sequence of key combinations, one frame at a time.
type Typist struct {
	kb     *Keyboard
	chords [][]Key

	// number of frames to wait before the first key
	delay int

	// number of frames each chord is held down and the number of frames
	// between chords
	hold int
	gap  int

	frame int
	done  bool
}

// Frames used by NewTypist().
const (
	TypistHold = 5
	TypistGap  = 5
)

// NewTypist is the preferred method of initialisation for the Typist type.
func NewTypist(kb *Keyboard, delay int, chords ...[]Key) *Typist {
	return &Typist{
		kb:     kb,
		chords: chords,
		delay:  delay,
		hold:   TypistHold,
		gap:    TypistGap,
	}
}

// LoadCommand returns the key combinations for LOAD "" followed by NEWLINE.
// The J key is the LOAD keyword in the ZX81's K mode.
func LoadCommand() [][]Key {
	return [][]Key{
		{MustLookup("J")},
		{shift, MustLookup("P")},
		{shift, MustLookup("P")},
		{MustLookup("NEWLINE")},
	}
}

// Done returns true once every chord has been typed.
func (ty *Typist) Done() bool {
	return ty.done
}

// Frame should be called once per video frame.
func (ty *Typist) Frame() {
	if ty.done {
		return
	}

	if ty.frame < ty.delay {
		ty.frame++
		return
	}

	step := ty.frame - ty.delay
	idx := step / (ty.hold + ty.gap)
	if idx >= len(ty.chords) {
		ty.done = true
		return
	}

	if step%(ty.hold+ty.gap) < ty.hold {
		ty.kb.Press(ty.chords[idx]...)
	} else {
		ty.kb.Release(ty.chords[idx]...)
	}

	ty.frame++
}
