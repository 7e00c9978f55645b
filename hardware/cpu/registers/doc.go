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

// Package registers implements the Z80 register model.
//
// A Register is an 8-bit value. A RegisterPair is a 16-bit value. There are
// two kinds of RegisterPair:
//
// A master pair owns its storage. The High() and Low() functions return
// Register views onto either half of the 16-bit word. Changing a view changes
// the pair and vice versa; changing one half never changes the other half.
//
// A slave pair owns no storage. It is composed of two independent Registers
// and its value is always derived from them. The Z80 alternate register set
// and the index registers are created this way.
//
// All arithmetic wraps around: 8-bit arithmetic is modulo 256 and 16-bit
// arithmetic is modulo 65536.
package registers
