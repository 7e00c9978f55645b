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

package preferences

import (
	"errors"
	"fmt"

	"github.com/gopher81/gopher81/hardware/specification"
)

// InvalidConfig is returned when the options describe a machine that cannot
// exist.
var InvalidConfig = errors.New("preferences: invalid configuration")

// the lowest address that can be RAM
const ramOrigin = 0x4000

// Config is a copy of the ZX81Options values in a form suitable for the
// hardware package.
type Config struct {
	ProtectROM      bool
	RAMTop          uint16
	ROMTop          uint16
	M1Not           uint16
	CharGen         CharGen
	EnableQSCharGen bool
	ROM81           string
	DKROM           string
	AutoLoad        bool
	FastLoad        bool
	Contention      string
	TV              specification.Spec
}

func isAddress(v int) bool {
	return v >= 0 && v <= 0xffff
}

// Validate checks that the values in the Config are consistent.
func (cfg Config) Validate() error {
	if cfg.RAMTop < cfg.ROMTop {
		return fmt.Errorf("%w: RAMTOP (%d) is lower than ROMTOP (%d)", InvalidConfig, cfg.RAMTop, cfg.ROMTop)
	}

	if cfg.RAMTop < ramOrigin {
		return fmt.Errorf("%w: RAMTOP (%d) leaves no RAM", InvalidConfig, cfg.RAMTop)
	}

	// memory above RAMTOP mirrors the RAM. the RAM size must be a power of
	// two for the mirroring to be possible
	if cfg.RAMTop != 0xffff {
		sz := int(cfg.RAMTop) - ramOrigin + 1
		if sz&(sz-1) != 0 {
			return fmt.Errorf("%w: RAM size (%d) is not a power of two", InvalidConfig, sz)
		}
	}

	if cfg.M1Not <= cfg.ROMTop {
		return fmt.Errorf("%w: M1NOT (%d) is inside the ROM", InvalidConfig, cfg.M1Not)
	}

	if cfg.ROM81 == "" {
		return fmt.Errorf("%w: no ROM specified", InvalidConfig)
	}

	if cfg.CharGen == CharGenDK && cfg.DKROM == "" {
		return fmt.Errorf("%w: DK character generator requires a character ROM", InvalidConfig)
	}

	return nil
}
