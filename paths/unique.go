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

package paths

import (
	"fmt"
	"strings"
	"time"
)

// UniqueFilename creates a filename that (assuming a functioning clock) should
// not collide with any existing file. Note that the function does not test for
// this.
//
// Used to generate filenames for audio captures and memory visualisations.
//
// Format of returned string is:
//
//	prepend_name_YYYYMMDD_HHMMSS.ext
//
// If name is empty the returned string will be of the format:
//
//	prepend_YYYYMMDD_HHMMSS.ext
func UniqueFilename(prepend string, name string, ext string) string {
	return uniqueFilename(time.Now(), prepend, name, ext)
}

func uniqueFilename(n time.Time, prepend string, name string, ext string) string {
	timestamp := n.Format("20060102_150405")

	var fn string

	c := strings.TrimSpace(name)
	if len(c) > 0 {
		fn = fmt.Sprintf("%s_%s_%s", prepend, c, timestamp)
	} else {
		fn = fmt.Sprintf("%s_%s", prepend, timestamp)
	}

	if ext != "" {
		fn = fmt.Sprintf("%s.%s", fn, strings.TrimPrefix(ext, "."))
	}

	return fn
}
