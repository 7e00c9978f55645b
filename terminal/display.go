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
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Dimensions of the ZX81 text screen.
const (
	Columns = 32
	Rows    = 24
)

// address of the D_FILE system variable
const dfileVar = 0x400c

// the end of line marker in the display file. the HALT instruction
const newline = 0x76

// Peeker is the view of the machine required to read the display file.
type Peeker interface {
	Peek(address int) (uint8, error)
}

// Screen contains the character codes of the text screen. Positions not
// present in a collapsed display file are zero, which is a space.
type Screen [Rows][Columns]uint8

// ReadScreen decodes the display file. Both the full and the collapsed forms
// of the display file are supported.
func ReadScreen(m Peeker) (Screen, error) {
	var scr Screen

	lo, err := m.Peek(dfileVar)
	if err != nil {
		return scr, fmt.Errorf("terminal: %w", err)
	}
	hi, err := m.Peek(dfileVar + 1)
	if err != nil {
		return scr, fmt.Errorf("terminal: %w", err)
	}

	// skip the newline that begins the display file
	addr := (int(hi) << 8) | int(lo)
	addr++

	for row := range Rows {
		for col := 0; ; col++ {
			v, err := m.Peek(addr)
			if err != nil {
				return scr, fmt.Errorf("terminal: display file: %w", err)
			}
			addr++

			if v == newline {
				break
			}

			// lines longer than the screen are malformed but we continue to
			// look for the end of the line
			if col < Columns {
				scr[row][col] = v
			} else if col > 255 {
				return scr, fmt.Errorf("terminal: display file: row %d has no end", row)
			}
		}
	}

	return scr, nil
}

// the character set of the ZX81. codes 1 to 10 are block graphics
var charset = []rune(" ▘▝▀▖▌▞▛▒▄▀\"£$:?()><=+-*/;,.0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// the inverse of the block graphics, for codes 128 to 138
var inverseGraphics = []rune("█▟▙▄▜▐▚▗▒▀▄")

// Glyph returns the rune for the character code. The boolean return value is
// true if the rune should be displayed in inverse video.
//
// Codes 64 to 127 and 192 to 255 are tokens and are not displayed on the
// screen. They are shown as a question mark.
func Glyph(code uint8) (rune, bool) {
	switch {
	case code < 64:
		return charset[code], false
	case code >= 128 && code <= 138:
		return inverseGraphics[code-128], false
	case code >= 128 && code < 192:
		return charset[code-128], true
	}
	return '?', false
}

// Render the screen as a string, with one line per row. Inverse characters
// are drawn with the inverse style.
func (scr Screen) Render(inverse lipgloss.Style) string {
	var s strings.Builder
	for row := range scr {
		for _, c := range scr[row] {
			r, inv := Glyph(c)
			if inv {
				s.WriteString(inverse.Render(string(r)))
			} else {
				s.WriteRune(r)
			}
		}
		if row < Rows-1 {
			s.WriteRune('\n')
		}
	}
	return s.String()
}

// String returns the screen without any styling. Inverse characters are not
// distinguished from normal characters.
func (scr Screen) String() string {
	return scr.Render(lipgloss.NewStyle())
}
