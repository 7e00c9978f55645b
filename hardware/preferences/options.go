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
	"sync/atomic"

	"github.com/gopher81/gopher81/hardware/specification"
	"github.com/gopher81/gopher81/logger"
	"github.com/gopher81/gopher81/paths"
	"github.com/gopher81/gopher81/prefs"
)

// Frozen is returned when an option is changed after LoadConfig() has been
// called.
var Frozen = errors.New("preferences: options are frozen")

// ZX81Options defines the emulated machine.
type ZX81Options struct {
	dsk    *prefs.Disk
	frozen atomic.Bool

	// writes to memory at or below ROMTop are ignored
	ProtectROM prefs.Bool

	// highest address of RAM. addresses above RAMTop mirror the RAM
	RAMTop prefs.Int

	// highest address of ROM
	ROMTop prefs.Int

	// character generator. one of the names in CharGenList
	CharGen prefs.String

	// Quicksilva character board is active from power-on
	EnableQSCharGen prefs.Bool

	// opcode fetches at or above M1Not with bit 6 clear are display fetches
	M1Not prefs.Int

	// name of the ROM image. the DK character ROM image is named by DKROM
	ROM81 prefs.String
	DKROM prefs.String

	// type LOAD "" once the machine has started and a tape is inserted
	AutoLoad prefs.Bool

	// television specification. PAL or NTSC
	TV prefs.String

	// intercept the ROM tape loader and load directly from the tape
	FastLoad prefs.Bool

	// name of the contention profile
	Contention prefs.String
}

func (p *ZX81Options) String() string {
	return p.dsk.String()
}

// NewZX81Options is the preferred method of initialisation for the ZX81Options
// type. Options are stored in the default preferences file.
func NewZX81Options() (*ZX81Options, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	return NewZX81OptionsFromFile(pth)
}

// NewZX81OptionsFromFile is the same as NewZX81Options() except that the
// preferences file is specified.
func NewZX81OptionsFromFile(pth string) (*ZX81Options, error) {
	p := &ZX81Options{}
	p.SetDefaults()

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}

	entries := []struct {
		key string
		pref interface {
			fmt.Stringer
			Set(prefs.Value) error
			Get() prefs.Value
			Reset() error
			SetHookPre(func(prefs.Value) error)
		}
	}{
		{"zx81.protectrom", &p.ProtectROM},
		{"zx81.ramtop", &p.RAMTop},
		{"zx81.romtop", &p.ROMTop},
		{"zx81.chrgen", &p.CharGen},
		{"zx81.enableqschrgen", &p.EnableQSCharGen},
		{"zx81.m1not", &p.M1Not},
		{"zx81.rom", &p.ROM81},
		{"zx81.dkrom", &p.DKROM},
		{"zx81.autoload", &p.AutoLoad},
		{"zx81.tv", &p.TV},
		{"zx81.fastload", &p.FastLoad},
		{"zx81.contention", &p.Contention},
	}

	for _, e := range entries {
		e.pref.SetHookPre(p.checkFrozen)
		if err := p.dsk.Add(e.key, e.pref); err != nil {
			return nil, fmt.Errorf("preferences: %w", err)
		}
	}

	return p, nil
}

func (p *ZX81Options) checkFrozen(_ prefs.Value) error {
	if p.frozen.Load() {
		return Frozen
	}
	return nil
}

// SetDefaults reverts all options to the values of a standard 16K ZX81.
func (p *ZX81Options) SetDefaults() {
	// errors can only be caused by frozen options, which are not reset
	_ = p.ProtectROM.Set(true)
	_ = p.RAMTop.Set(32767)
	_ = p.ROMTop.Set(8191)
	_ = p.CharGen.Set(CharGenSinclair.String())
	_ = p.EnableQSCharGen.Set(false)
	_ = p.M1Not.Set(32768)
	_ = p.ROM81.Set("zx81.rom")
	_ = p.DKROM.Set("dkchr.rom")
	_ = p.AutoLoad.Set(false)
	_ = p.TV.Set(specification.SpecPAL.ID)
	_ = p.FastLoad.Set(true)
	_ = p.Contention.Set("none")
}

// LoadConfig reads the options from disk, validates them and freezes them.
// A missing preferences file is not an error. Values on the prefs command
// line stack override the values on disk.
func (p *ZX81Options) LoadConfig() error {
	if p.frozen.Load() {
		return Frozen
	}

	err := p.dsk.Load()
	if err != nil && !errors.Is(err, prefs.NoPrefsFile) {
		return fmt.Errorf("preferences: %w", err)
	}

	_, err = p.Freeze()
	return err
}

// Freeze validates the options and prevents any further changes. The
// validated options are returned. Calling Freeze() on options that are
// already frozen is not an error.
func (p *ZX81Options) Freeze() (Config, error) {
	cfg, err := p.Config()
	if err != nil {
		return Config{}, err
	}

	if !p.frozen.Swap(true) {
		logger.Logf(logger.Allow, "preferences", "options frozen: %s", p.summary())
	}

	return cfg, nil
}

// SaveConfig writes the current options to disk.
func (p *ZX81Options) SaveConfig() error {
	if err := p.dsk.Save(); err != nil {
		return fmt.Errorf("preferences: %w", err)
	}
	return nil
}

// IsFrozen returns true after a successful call to LoadConfig() or Freeze().
func (p *ZX81Options) IsFrozen() bool {
	return p.frozen.Load()
}

func (p *ZX81Options) summary() string {
	return fmt.Sprintf("ROM=%s RAMTOP=%d chrgen=%s tv=%s", p.ROM81.String(), p.RAMTop.Get().(int), p.CharGen.String(), p.TV.String())
}

// Config returns a validated copy of the options.
func (p *ZX81Options) Config() (Config, error) {
	var cfg Config

	for _, a := range []struct {
		label string
		v     int
		dest  *uint16
	}{
		{"RAMTOP", p.RAMTop.Get().(int), &cfg.RAMTop},
		{"ROMTOP", p.ROMTop.Get().(int), &cfg.ROMTop},
		{"M1NOT", p.M1Not.Get().(int), &cfg.M1Not},
	} {
		if !isAddress(a.v) {
			return Config{}, fmt.Errorf("%w: %s (%d) is not an address", InvalidConfig, a.label, a.v)
		}
		*a.dest = uint16(a.v)
	}

	var err error

	cfg.CharGen, err = ParseCharGen(p.CharGen.String())
	if err != nil {
		return Config{}, err
	}

	cfg.TV, err = specification.SearchSpec(p.TV.String())
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", InvalidConfig, err)
	}

	cfg.ProtectROM = p.ProtectROM.Get().(bool)
	cfg.EnableQSCharGen = p.EnableQSCharGen.Get().(bool)
	cfg.ROM81 = p.ROM81.String()
	cfg.DKROM = p.DKROM.String()
	cfg.AutoLoad = p.AutoLoad.Get().(bool)
	cfg.FastLoad = p.FastLoad.Get().(bool)
	cfg.Contention = p.Contention.String()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
