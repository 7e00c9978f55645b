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

package main

import (
	"strings"
	"testing"

	"github.com/gopher81/gopher81/test"
	"github.com/gopher81/gopher81/version"
)

func TestVersionMode(t *testing.T) {
	var out strings.Builder
	test.ExpectEquality(t, launch(&out, []string{"version"}), 0)
	test.ExpectEquality(t, strings.HasPrefix(out.String(), version.ApplicationName), true)
}

func TestHelp(t *testing.T) {
	var out strings.Builder
	test.ExpectEquality(t, launch(&out, []string{"-help"}), 0)
	test.ExpectEquality(t, strings.Contains(out.String(), "available sub-modes: RUN, PERFORMANCE, MEMVIZ, VERSION"), true)

	out.Reset()
	test.ExpectEquality(t, launch(&out, []string{"performance", "-help"}), 0)
	test.ExpectEquality(t, strings.Contains(out.String(), "Usage for PERFORMANCE mode:"), true)
	test.ExpectEquality(t, strings.Contains(out.String(), "-duration"), true)
}

func TestModeError(t *testing.T) {
	var out strings.Builder

	// unknown flags fall through to the default RUN mode where they are an
	// error
	test.ExpectEquality(t, launch(&out, []string{"-nosuchflag"}), exitModeError)

	out.Reset()
	test.ExpectEquality(t, launch(&out, []string{"performance", "-profile", "nosuchprofile"}), exitModeError)
	test.ExpectEquality(t, strings.Contains(out.String(), "error in PERFORMANCE mode"), true)
}
