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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect*() functions report a test error and return false if the
// expectation is not met. The Demand*() functions are the same except that
// they stop the test immediately.
//
// It is worth describing how ExpectSuccess() and ExpectFailure() handle the
// nil type because it is not obvious. The nil type is considered a success and
// consequently will cause ExpectFailure() to fail and ExpectSuccess() to
// succeed. This is because of how errors usually works (nil to indicate no
// error).
//
// All functions accept an optional list of tags. The tags are prepended to
// any failure message and are useful for identifying which iteration of a
// loop caused the failure.
package test
