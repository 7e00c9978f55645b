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

// Package govern defines the State type, which describes the current
// condition of the emulation.
//
// The machine moves through the states in a fixed order. It starts
// Uninitialised and becomes Ready once it has been initialised. It is Running
// while the frame driver is calling it and Stopped once the stop condition has
// been reached. The frame driver's continue check can also return Paused or
// Ending to control the driver itself.
package govern
