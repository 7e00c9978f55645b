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

package tape

import (
	"fmt"
)

// Tape is an ordered list of entries with a cursor.
type Tape struct {
	entries [][]uint8
	cursor  int
}

// NewTape is the preferred method of initialisation for the Tape type.
func NewTape(entries ...[]uint8) *Tape {
	tp := &Tape{}
	for _, e := range entries {
		tp.Insert(e)
	}
	return tp
}

func (tp *Tape) String() string {
	return fmt.Sprintf("tape: %d entries, %d remaining", len(tp.entries), tp.Remaining())
}

// Insert adds a copy of the entry to the end of the tape.
func (tp *Tape) Insert(entry []uint8) {
	e := make([]uint8, len(entry))
	copy(e, entry)
	tp.entries = append(tp.entries, e)
}

// Eject removes all entries.
func (tp *Tape) Eject() {
	tp.entries = tp.entries[:0]
	tp.cursor = 0
}

// Rewind moves the cursor back to the first entry.
func (tp *Tape) Rewind() {
	tp.cursor = 0
}

// Len returns the number of entries on the tape.
func (tp *Tape) Len() int {
	return len(tp.entries)
}

// Remaining returns the number of entries that have not been consumed.
func (tp *Tape) Remaining() int {
	return len(tp.entries) - tp.cursor
}

// GetNextEntry returns the next entry and advances the cursor. The boolean
// return value is false if the tape has been exhausted.
//
// The returned slice belongs to the tape and should not be modified.
func (tp *Tape) GetNextEntry() ([]uint8, bool) {
	if tp.cursor >= len(tp.entries) {
		return nil, false
	}
	e := tp.entries[tp.cursor]
	tp.cursor++
	return e, true
}

// UnnamedEntry returns an entry for a program that has no name. The contents
// of a .P file are suitable. The name is a single inverse space, which the
// LOAD "" command will accept.
func UnnamedEntry(program []uint8) []uint8 {
	e := make([]uint8, 0, len(program)+1)
	e = append(e, 0x80)
	return append(e, program...)
}
