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

package contention_test

import (
	"errors"
	"testing"

	"github.com/gopher81/gopher81/hardware/contention"
	"github.com/gopher81/gopher81/test"
)

func TestNone(t *testing.T) {
	for time := range 300 {
		test.ExpectEquality(t, contention.None.Memory(0x4000, time), 0)
		test.ExpectEquality(t, contention.None.IO(0x00fe, time), 0)
	}
}

func TestSinclair48KMemory(t *testing.T) {
	p := contention.Sinclair48K

	test.ExpectEquality(t, p.Memory(0x4000, 0), 6)
	test.ExpectEquality(t, p.Memory(0x4000, 1), 5)
	test.ExpectEquality(t, p.Memory(0x4000, 5), 1)
	test.ExpectEquality(t, p.Memory(0x4000, 6), 0)
	test.ExpectEquality(t, p.Memory(0x7fff, 8), 6)
	test.ExpectEquality(t, p.Memory(0x7fff, 127), 0)

	// outside the window
	test.ExpectEquality(t, p.Memory(0x4000, 128), 0)
	test.ExpectEquality(t, p.Memory(0x4000, 223), 0)

	// time beyond the end of the scanline wraps into the next scanline
	test.ExpectEquality(t, p.Memory(0x4000, 224), 6)

	// uncontended addresses
	test.ExpectEquality(t, p.Memory(0x3fff, 0), 0)
	test.ExpectEquality(t, p.Memory(0x8000, 0), 0)
}

func TestSinclair48KIO(t *testing.T) {
	p := contention.Sinclair48K

	// N:4
	test.ExpectEquality(t, p.IO(0x00ff, 0), 0)

	// N:1 C:3
	test.ExpectEquality(t, p.IO(0x00fe, 0), 5)

	// C:1 C:3
	test.ExpectEquality(t, p.IO(0x40fe, 0), 6)

	// C:1 C:1 C:1 C:1
	test.ExpectEquality(t, p.IO(0x40ff, 0), 12)

	// no contention outside of the window
	test.ExpectEquality(t, p.IO(0x40ff, 150), 0)
}

func TestPurity(t *testing.T) {
	for _, p := range []contention.Profile{contention.None, contention.Sinclair48K} {
		for time := range 500 {
			for _, a := range []uint16{0x0000, 0x4000, 0x5555, 0x8000, 0xffff} {
				test.ExpectEquality(t, p.Memory(a, time), p.Memory(a, time))
				test.ExpectEquality(t, p.IO(a, time), p.IO(a, time))
			}
		}
	}
}

func TestByName(t *testing.T) {
	p, err := contention.ByName("none")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p.Label(), "none")

	p, err = contention.ByName(" Sinclair48K ")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p.Label(), "sinclair48k")

	_, err = contention.ByName("spectrum")
	test.ExpectEquality(t, errors.Is(err, contention.UnknownProfile), true)

	test.ExpectEquality(t, len(contention.Names()), 2)
}
