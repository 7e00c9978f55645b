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

package hardware

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gopher81/gopher81/hardware/preferences"
	"github.com/gopher81/gopher81/hardware/tape"
	"github.com/gopher81/gopher81/paths"
)

// Sentinel errors returned by the hardware package.
var (
	NotInitialised = errors.New("hardware: machine not initialised")
	ROMNotFound    = errors.New("hardware: ROM not found")
)

// Machine is the contract between the emulated hardware and the frame driver.
// It is also the Bus used by the CPU.
type Machine interface {
	Initialise(opts *preferences.ZX81Options, roms ROMProvider) error

	// run the CPU for one scanline. returns the number of T-states consumed
	DoScanline() (int, error)

	ReadByte(address uint16) uint8
	WriteByte(address uint16, data uint8)
	OpcodeFetch(address uint16) uint8
	ReadPort(port uint16) uint8
	WritePort(port uint16, data uint8)
	ContendMem(address uint16, states int, time int) int
	ContendIO(port uint16, states int, time int) int

	// returns true if the frame driver should stop calling DoScanline()
	Stop() bool

	Tape() *tape.Tape
}

// ROMProvider supplies ROM images by name.
type ROMProvider interface {
	ROM(name string) ([]uint8, error)
}

// ROMImages is a ROMProvider for images that are already in memory.
type ROMImages map[string][]uint8

// ROM implements the ROMProvider interface.
func (r ROMImages) ROM(name string) ([]uint8, error) {
	d, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ROMNotFound, name)
	}
	return d, nil
}

// ROMDirectory is a ROMProvider that reads images from a directory on disk.
type ROMDirectory string

// DefaultROMDirectory returns the roms directory in the resource path.
func DefaultROMDirectory() (ROMDirectory, error) {
	pth, err := paths.ResourcePath("roms", "")
	if err != nil {
		return "", fmt.Errorf("hardware: %w", err)
	}
	return ROMDirectory(pth), nil
}

// ROM implements the ROMProvider interface.
func (r ROMDirectory) ROM(name string) ([]uint8, error) {
	d, err := os.ReadFile(filepath.Join(string(r), name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ROMNotFound, name)
		}
		return nil, fmt.Errorf("hardware: %w", err)
	}
	return d, nil
}
