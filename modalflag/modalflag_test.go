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

package modalflag_test

import (
	"strings"
	"testing"

	"github.com/gopher81/gopher81/modalflag"
	"github.com/gopher81/gopher81/test"
)

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, md.Path(), "")
	test.ExpectEquality(t, md.Parsed(), true)
}

func TestNoModes(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-test", "1", "2"})
	testFlag := md.AddBool("test", false, "test flag")
	test.ExpectEquality(t, *testFlag, false)

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, *testFlag, true)
	test.ExpectEquality(t, len(md.RemainingArgs()), 2)
	test.ExpectEquality(t, md.GetArg(1), "2")
	test.ExpectEquality(t, md.GetArg(2), "")
}

func TestUnknownFlag(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-unknown"})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseError)
	test.ExpectFailure(t, err)
}

func TestModes(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"performance", "-frames", "10", "game.p"})
	md.AddSubModes("run", "performance")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "PERFORMANCE")

	md.NewMode()
	frames := md.AddInt("frames", 0, "number of frames")
	p, err = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *frames, 10)
	test.ExpectEquality(t, md.GetArg(0), "game.p")
	test.ExpectEquality(t, md.Path(), "PERFORMANCE")
}

func TestDefaultMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-frames", "10", "game.p"})
	md.AddSubModes("run", "performance")

	// the flag is not known at this level so the default mode is chosen and
	// the flag is left for the next call to Parse()
	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "RUN")

	md.NewMode()
	frames := md.AddInt("frames", 0, "number of frames")
	_, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *frames, 10)
	test.ExpectEquality(t, md.GetArg(0), "game.p")

	// a non-flag argument that isn't a sub-mode
	md.NewArgs([]string{"game.p"})
	md.AddSubModes("run", "performance")
	_, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "RUN")
	test.ExpectEquality(t, md.GetArg(0), "game.p")
}

func TestNoHelpAvailable(t *testing.T) {
	var s strings.Builder

	md := modalflag.Modes{Output: &s}
	md.NewArgs([]string{"-help"})

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectEquality(t, s.String(), "No help available\n")
}

func TestHelpFlags(t *testing.T) {
	var s strings.Builder

	md := modalflag.Modes{Output: &s}
	md.NewArgs([]string{"-help"})
	md.AddBool("test", true, "test flag")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  -test\n" +
		"    \ttest flag (default true)\n"
	test.ExpectEquality(t, s.String(), expectedHelp)
}

func TestHelpFlagsAndModes(t *testing.T) {
	var s strings.Builder

	md := modalflag.Modes{Output: &s}
	md.NewArgs([]string{"-help"})
	md.AddBool("test", false, "test flag")
	md.AddSubModes("A", "B", "C")
	md.AdditionalHelp("more help")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  -test\n" +
		"    \ttest flag\n" +
		"\n" +
		"  available sub-modes: A, B, C\n" +
		"    default: A\n" +
		"\n" +
		"more help\n"
	test.ExpectEquality(t, s.String(), expectedHelp)
}
