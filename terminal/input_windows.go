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

//go:build windows

package terminal

import "errors"

// Input is not supported on windows.
type Input struct{}

// OpenInput always fails on windows.
func OpenInput(_ string) (*Input, error) {
	return nil, errors.New("terminal: input is not supported on windows")
}

// Poll never returns any input.
func (in *Input) Poll() ([]byte, error) {
	return nil, nil
}

// Close does nothing.
func (in *Input) Close() error {
	return nil
}
