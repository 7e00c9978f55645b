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

import "unicode"

var shift = MustLookup("SHIFT")

// symbols that require the SHIFT key
var shifted = map[rune]string{
	'"': "P",
	'$': "U",
	'(': "I",
	')': "O",
	':': "Z",
	';': "X",
	'?': "C",
	'/': "V",
	'*': "B",
	'<': "N",
	'>': "M",
	',': ".",
	'-': "J",
	'+': "K",
	'=': "L",
}

// KeysForRune returns the keys that must be pressed together to enter the
// rune. Letters are not case sensitive and the ZX81 has no lower case. Returns
// false if the rune cannot be entered.
func KeysForRune(r rune) ([]Key, bool) {
	switch r {
	case '\n', '\r':
		return []Key{MustLookup("NEWLINE")}, true
	case ' ':
		return []Key{MustLookup("SPACE")}, true
	case '.':
		return []Key{MustLookup(".")}, true
	}

	if l, ok := shifted[r]; ok {
		return []Key{shift, MustLookup(l)}, true
	}

	r = unicode.ToUpper(r)
	if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
		return []Key{MustLookup(string(r))}, true
	}

	return nil, false
}
