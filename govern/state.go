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

package govern

// State indicates the emulation's state.
type State int

// List of possible emulation states.
const (
	Uninitialised State = iota
	Ready
	Running
	Paused
	Stopped
	Ending
)

func (s State) String() string {
	switch s {
	case Uninitialised:
		return "Uninitialised"
	case Ready:
		return "Ready"
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	case Stopped:
		return "Stopped"
	case Ending:
		return "Ending"
	}

	return ""
}

// Transition checks whether a change of state is allowed.
//
// Rules:
//
//  1. a state can always transition to itself
//
//  2. Uninitialised can only change to Ready
//
//  3. Ready, Running and Paused can change to any state other than
//     Uninitialised
//
//  4. Stopped and Ending can only change to Ready, meaning that the machine
//     has been initialised again
func Transition(from State, to State) bool {
	if from == to {
		return true
	}
	switch from {
	case Uninitialised:
		return to == Ready
	case Ready, Running, Paused:
		return to != Uninitialised
	case Stopped, Ending:
		return to == Ready
	}
	return false
}
