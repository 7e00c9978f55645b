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
	"sync/atomic"

	"github.com/gopher81/gopher81/govern"
	"github.com/gopher81/gopher81/hardware/contention"
	"github.com/gopher81/gopher81/hardware/cpu"
	"github.com/gopher81/gopher81/hardware/keyboard"
	"github.com/gopher81/gopher81/hardware/memory"
	"github.com/gopher81/gopher81/hardware/preferences"
	"github.com/gopher81/gopher81/hardware/romfastload"
	"github.com/gopher81/gopher81/hardware/specification"
	"github.com/gopher81/gopher81/hardware/tape"
	"github.com/gopher81/gopher81/hardware/ula"
	"github.com/gopher81/gopher81/logger"
)

// MachineStopped is returned by DoScanline() if it is called after Stop() has
// returned true. The machine must be initialised again.
var MachineStopped = errors.New("hardware: machine has stopped")

// AudioMixer receives the level of the video sync signal once per scanline.
// The ZX81 has no speaker and programs that make sound do so by toggling the
// sync signal.
type AudioMixer interface {
	SetAudio(level bool) error

	// the AudioMixer should be considered unusable after EndMixing() has been
	// called
	EndMixing() error
}

// the number of frames after initialisation before the autoload command is
// typed. the ROM must have finished clearing memory and be waiting for input
const autoloadDelay = 100

// ZX81 is the root of the emulation.
type ZX81 struct {
	CPU        *cpu.CPU
	Mem        *memory.Memory
	ULA        *ula.ULA
	Keyboard   *keyboard.Keyboard
	TapePlayer *tape.Player

	tape    *tape.Tape
	mixer   AudioMixer
	profile contention.Profile
	typist  *keyboard.Typist

	state govern.State

	m1not    uint16
	fastLoad bool
	autoLoad bool
	spec     specification.Spec

	// T-states carried over from the previous scanline
	carry int

	// scanlines since the start of the frame and frames since initialisation
	scanline int
	frameNum int

	// set by RequestStop(). may be set from any goroutine
	stopRequest atomic.Bool
}

// NewZX81 is the preferred method of initialisation for the ZX81 type. The
// mixer argument can be nil. The machine must be initialised before it can be
// used.
func NewZX81(mixer AudioMixer) *ZX81 {
	z := &ZX81{
		Keyboard: keyboard.NewKeyboard(),
		tape:     tape.NewTape(),
		mixer:    mixer,
		profile:  contention.None,
		state:    govern.Uninitialised,
	}
	z.TapePlayer = tape.NewPlayer(z.tape)
	return z
}

func (z *ZX81) String() string {
	if z.state == govern.Uninitialised {
		return fmt.Sprintf("ZX81 [%s]", z.state)
	}
	return fmt.Sprintf("ZX81 [%s] %s %s %s contention=%s", z.state, z.spec.ID, z.Mem, z.ULA, z.profile.Label())
}

// Initialise the machine according to the options. The options are frozen
// and cannot be changed once the machine has been initialised. ROM images are
// requested from the ROMProvider by the names in the options.
//
// The contents of the tape are not changed.
func (z *ZX81) Initialise(opts *preferences.ZX81Options, roms ROMProvider) error {
	cfg, err := opts.Freeze()
	if err != nil {
		return fmt.Errorf("hardware: %w", err)
	}

	profile, err := contention.ByName(cfg.Contention)
	if err != nil {
		return fmt.Errorf("hardware: %w", err)
	}

	image, err := roms.ROM(cfg.ROM81)
	if err != nil {
		return fmt.Errorf("hardware: %w", err)
	}

	mem := memory.NewMemory(cfg.RAMTop, cfg.ROMTop, cfg.ProtectROM)
	mem.FitQS(cfg.CharGen == preferences.CharGenQS)
	mem.Reset()

	if err := mem.LoadROM(image); err != nil {
		return fmt.Errorf("hardware: %w", err)
	}

	if cfg.CharGen == preferences.CharGenDK {
		image, err := roms.ROM(cfg.DKROM)
		if err != nil {
			return fmt.Errorf("hardware: %w", err)
		}
		if err := mem.LoadCharROM(image); err != nil {
			return fmt.Errorf("hardware: %w", err)
		}
	}

	if cfg.EnableQSCharGen {
		mem.EnableQS()
	}

	z.Mem = mem
	z.profile = profile
	z.spec = cfg.TV
	z.m1not = cfg.M1Not
	z.fastLoad = cfg.FastLoad
	z.autoLoad = cfg.AutoLoad

	z.Keyboard.ReleaseAll()
	z.TapePlayer.Stop()
	z.ULA = ula.NewULA(z.Mem, z.Keyboard, z.TapePlayer, cfg.CharGen, cfg.TV)

	if z.CPU == nil {
		z.CPU = cpu.NewCPU(z)
	} else {
		z.CPU.Reset()
	}

	z.carry = 0
	z.scanline = 0
	z.frameNum = 0
	z.typist = nil
	z.stopRequest.Store(false)

	// initialisation is allowed from any state
	z.state = govern.Ready

	logger.Logf(logger.Allow, "hardware", "initialised: %s", z)

	return nil
}

// State returns the current emulation state.
func (z *ZX81) State() govern.State {
	return z.state
}

func (z *ZX81) setState(state govern.State) {
	if !govern.Transition(z.state, state) {
		logger.Logf(logger.Allow, "hardware", "ignoring state change from %s to %s", z.state, state)
		return
	}
	z.state = state
}

// DoScanline runs the CPU for one scanline. Returns the number of T-states
// used by the CPU during the call.
//
// An instruction that is started before the end of the scanline is always
// completed. Any T-states beyond the end of the scanline are carried into the
// next scanline. An accepted maskable interrupt ends the scanline early.
func (z *ZX81) DoScanline() (int, error) {
	switch z.state {
	case govern.Uninitialised:
		return 0, NotInitialised
	case govern.Stopped:
		return 0, MachineStopped
	}
	z.setState(govern.Running)

	z.CPU.Clock = z.carry
	start := z.CPU.Clock
	interrupted := false

	for z.CPU.Clock < specification.TStatesPerScanline {
		if z.fastLoad && !z.CPU.Halted {
			if pc := romfastload.Patch(z, z.CPU); pc != z.CPU.PC.Value() {
				z.CPU.PC.Load(pc)
			}
		}

		z.TapePlayer.Advance(z.CPU.Step())

		// the INT line of the ZX81 is connected to bit 6 of the refresh
		// address
		if z.CPU.R.Value()&0x40 == 0x00 && z.CPU.InterruptsEnabled() {
			n := z.CPU.Interrupt()
			z.TapePlayer.Advance(n)
			interrupted = true
			break
		}
	}

	used := z.CPU.Clock - start

	if interrupted {
		z.carry = z.CPU.LastResult.TStates
	} else {
		z.carry = z.CPU.Clock - specification.TStatesPerScanline
	}

	if z.ULA.HSync() {
		// a halted CPU is held by the WAIT line until the end of the NMI
		// pulse
		if z.CPU.Halted {
			z.carry = 0
		}
		z.CPU.Clock = z.carry
		n := z.CPU.NonMaskableInterrupt()
		z.TapePlayer.Advance(n)
		used += n
		z.carry = z.CPU.Clock
	}

	if z.mixer != nil {
		if err := z.mixer.SetAudio(z.ULA.Level()); err != nil {
			return used, fmt.Errorf("hardware: %w", err)
		}
	}

	z.scanline++
	if z.scanline >= z.spec.ScanlinesTotal {
		z.scanline = 0
		z.endFrame()
	}

	return used, nil
}

// endFrame is called after the last scanline of every frame
func (z *ZX81) endFrame() {
	z.frameNum++

	if !z.autoLoad {
		return
	}

	if z.typist == nil {
		if z.frameNum >= autoloadDelay && z.tape.Remaining() > 0 {
			z.typist = keyboard.NewTypist(z.Keyboard, 0, keyboard.LoadCommand()...)
			logger.Log(logger.Allow, "hardware", "autoload: typing LOAD command")
		}
		return
	}

	if z.typist.Done() {
		return
	}

	z.typist.Frame()

	// without fast-load the ROM loader reads the EAR signal
	if z.typist.Done() && !z.fastLoad {
		z.PlayTape()
	}
}

// FrameNum returns the number of frames since initialisation.
func (z *ZX81) FrameNum() int {
	return z.frameNum
}

// Scanline returns the number of scanlines since the start of the frame.
func (z *ZX81) Scanline() int {
	return z.scanline
}

// ReadByte implements the cpu.Bus interface.
func (z *ZX81) ReadByte(address uint16) uint8 {
	return z.Mem.Read(address)
}

// WriteByte implements the cpu.Bus interface.
func (z *ZX81) WriteByte(address uint16, data uint8) {
	z.Mem.Write(address, data)
}

// OpcodeFetch implements the cpu.Bus interface. Opcodes fetched at or above
// M1NOT with bit 6 clear are taken by the ULA as character codes and the CPU
// sees a NOP instruction.
func (z *ZX81) OpcodeFetch(address uint16) uint8 {
	v := z.Mem.Read(address)
	if address >= z.m1not && v&0x40 == 0x00 {
		z.ULA.Fetch(v, z.CPU.I.Value(), z.CPU.R.Value(), z.CPU.Clock)
		return 0x00
	}
	return v
}

// ReadPort implements the cpu.Bus interface. Ports not decoded by the ULA
// float to 0xff.
func (z *ZX81) ReadPort(port uint16) uint8 {
	if v, ok := z.ULA.ReadPort(port); ok {
		return v
	}
	return 0xff
}

// WritePort implements the cpu.Bus interface.
func (z *ZX81) WritePort(port uint16, data uint8) {
	z.ULA.WritePort(port, data)
}

// ContendMem implements the cpu.Bus interface.
func (z *ZX81) ContendMem(address uint16, states int, time int) int {
	return states + z.profile.Memory(address, time)
}

// ContendIO implements the cpu.Bus interface.
func (z *ZX81) ContendIO(port uint16, states int, time int) int {
	return states + z.profile.IO(port, time)
}

// RequestStop causes the next call to Stop() to return true. It is safe to
// call RequestStop() from any goroutine.
func (z *ZX81) RequestStop() {
	z.stopRequest.Store(true)
}

// Stop returns true if RequestStop() has been called or if the CPU can never
// run again. The CPU can never run again if it is halted with interrupts
// disabled and the NMI generator off.
func (z *ZX81) Stop() bool {
	if z.state == govern.Uninitialised {
		return z.stopRequest.Load()
	}

	stop := z.stopRequest.Load() || (z.CPU.Halted && !z.CPU.IFF1 && !z.ULA.NMIGenerator)
	if stop {
		z.setState(govern.Stopped)
	}
	return stop
}

// Tape implements the Machine interface.
func (z *ZX81) Tape() *tape.Tape {
	return z.tape
}

// PlayTape starts the EAR signal for the next entry on the tape. Returns false
// if there is nothing to play.
func (z *ZX81) PlayTape() bool {
	return z.TapePlayer.Play()
}

// Peek returns the byte at the address without side effects.
func (z *ZX81) Peek(address int) (uint8, error) {
	if z.Mem == nil {
		return 0, NotInitialised
	}
	return z.Mem.Peek(address)
}

// Poke writes the byte to the address regardless of ROM protection.
func (z *ZX81) Poke(address int, data uint8) error {
	if z.Mem == nil {
		return NotInitialised
	}
	return z.Mem.Poke(address, data)
}

// Frame returns the video output of the ULA.
func (z *ZX81) Frame() ([][]uint8, error) {
	if z.ULA == nil {
		return nil, NotInitialised
	}
	return z.ULA.Frame(), nil
}

// Spec returns the television specification of the initialised machine.
func (z *ZX81) Spec() specification.Spec {
	return z.spec
}

// EndMixing should be called when the emulation is finished with. It
// concludes any attached AudioMixer.
func (z *ZX81) EndMixing() error {
	if z.mixer == nil {
		return nil
	}
	if err := z.mixer.EndMixing(); err != nil {
		return fmt.Errorf("hardware: %w", err)
	}
	z.mixer = nil
	return nil
}
