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

package logger

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// the style used for the second and subsequent lines of a multiline write
var continuationStyle = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.ANSIColor(1))

// Colorizer applies basic coloring rules to logging output. The first line of
// each write is output as normal and any further lines are dimmed.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (int, error) {
	l := strings.Split(strings.TrimSpace(string(p)), "\n")

	var s strings.Builder
	s.WriteString(l[0])
	s.WriteString("\n")
	for _, t := range l[1:] {
		s.WriteString(continuationStyle.Render(t))
		s.WriteString("\n")
	}

	_, err := io.WriteString(c.out, s.String())
	if err != nil {
		return 0, err
	}
	return len(p), nil
}
