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

package hardware_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/gopher81/gopher81/digest"
	"github.com/gopher81/gopher81/govern"
	"github.com/gopher81/gopher81/hardware"
	"github.com/gopher81/gopher81/hardware/contention"
	"github.com/gopher81/gopher81/hardware/cpu/execution"
	"github.com/gopher81/gopher81/hardware/keyboard"
	"github.com/gopher81/gopher81/hardware/memory"
	"github.com/gopher81/gopher81/hardware/preferences"
	"github.com/gopher81/gopher81/hardware/romfastload"
	"github.com/gopher81/gopher81/hardware/specification"
	"github.com/gopher81/gopher81/hardware/tape"
	"github.com/gopher81/gopher81/test"
)

// romImage returns an 8K ROM image with the program at the start. the rest
// of the image is filled with NOP instructions
func romImage(program ...uint8) []uint8 {
	rom := make([]uint8, 8192)
	copy(rom, program)
	return rom
}

func newOptions(t *testing.T, configure func(opts *preferences.ZX81Options)) *preferences.ZX81Options {
	t.Helper()
	opts, err := preferences.NewZX81OptionsFromFile(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)
	if configure != nil {
		configure(opts)
	}
	return opts
}

func newZX81(t *testing.T, rom []uint8, configure func(opts *preferences.ZX81Options)) *hardware.ZX81 {
	t.Helper()
	z := hardware.NewZX81(nil)
	err := z.Initialise(newOptions(t, configure), hardware.ROMImages{"zx81.rom": rom})
	test.DemandSuccess(t, err)
	return z
}

func TestNotInitialised(t *testing.T) {
	z := hardware.NewZX81(nil)
	test.ExpectEquality(t, z.State(), govern.Uninitialised)

	_, err := z.DoScanline()
	test.ExpectSuccess(t, errors.Is(err, hardware.NotInitialised))

	_, err = z.Peek(0x4000)
	test.ExpectSuccess(t, errors.Is(err, hardware.NotInitialised))

	err = z.Poke(0x4000, 0x00)
	test.ExpectSuccess(t, errors.Is(err, hardware.NotInitialised))

	_, err = z.Frame()
	test.ExpectSuccess(t, errors.Is(err, hardware.NotInitialised))

	test.ExpectEquality(t, z.Stop(), false)
	test.ExpectEquality(t, z.Tape().Len(), 0)

	var _ hardware.Machine = z
}

func TestInitialiseErrors(t *testing.T) {
	// missing ROM
	z := hardware.NewZX81(nil)
	err := z.Initialise(newOptions(t, nil), hardware.ROMImages{})
	test.ExpectSuccess(t, errors.Is(err, hardware.ROMNotFound))
	test.ExpectEquality(t, z.State(), govern.Uninitialised)

	// empty ROM
	err = z.Initialise(newOptions(t, nil), hardware.ROMImages{"zx81.rom": {}})
	test.ExpectSuccess(t, errors.Is(err, memory.ROMError))

	// ROM larger than ROMTOP
	err = z.Initialise(newOptions(t, nil), hardware.ROMImages{"zx81.rom": make([]uint8, 8193)})
	test.ExpectSuccess(t, errors.Is(err, memory.ROMError))

	// RAMTOP lower than ROMTOP
	opts := newOptions(t, func(opts *preferences.ZX81Options) {
		test.DemandSuccess(t, opts.RAMTop.Set(4096))
	})
	err = z.Initialise(opts, hardware.ROMImages{"zx81.rom": romImage()})
	test.ExpectSuccess(t, errors.Is(err, preferences.InvalidConfig))
	test.ExpectEquality(t, opts.IsFrozen(), false)

	// unknown contention profile
	opts = newOptions(t, func(opts *preferences.ZX81Options) {
		test.DemandSuccess(t, opts.Contention.Set("unknown"))
	})
	err = z.Initialise(opts, hardware.ROMImages{"zx81.rom": romImage()})
	test.ExpectSuccess(t, errors.Is(err, contention.UnknownProfile))

	// DK character generator without the character ROM
	opts = newOptions(t, func(opts *preferences.ZX81Options) {
		test.DemandSuccess(t, opts.CharGen.Set(preferences.CharGenDK.String()))
	})
	err = z.Initialise(opts, hardware.ROMImages{"zx81.rom": romImage()})
	test.ExpectSuccess(t, errors.Is(err, hardware.ROMNotFound))

	test.ExpectEquality(t, z.State(), govern.Uninitialised)
}

func TestInitialise(t *testing.T) {
	opts := newOptions(t, nil)

	z := hardware.NewZX81(nil)
	test.DemandSuccess(t, z.Initialise(opts, hardware.ROMImages{"zx81.rom": romImage(0xaa, 0xbb)}))
	test.ExpectEquality(t, z.State(), govern.Ready)
	test.ExpectEquality(t, opts.IsFrozen(), true)
	test.ExpectEquality(t, z.Spec().ID, "PAL")

	// options cannot be changed after initialisation
	err := opts.RAMTop.Set(16383)
	test.ExpectSuccess(t, errors.Is(err, preferences.Frozen))

	test.ExpectEquality(t, z.ReadByte(0x0000), uint8(0xaa))
	test.ExpectEquality(t, z.ReadByte(0x0001), uint8(0xbb))
	test.ExpectEquality(t, z.CPU.PC.Value(), uint16(0x0000))

	// power-on pattern
	test.ExpectEquality(t, z.ReadByte(0x4000), uint8(0x00))
	test.ExpectEquality(t, z.ReadByte(0x7fff), uint8(0x00))

	// a machine can be initialised again with the same options
	z.WriteByte(0x4000, 0x12)
	test.DemandSuccess(t, z.Initialise(opts, hardware.ROMImages{"zx81.rom": romImage()}))
	test.ExpectEquality(t, z.ReadByte(0x4000), uint8(0x00))
	test.ExpectEquality(t, z.ReadByte(0x0000), uint8(0x00))
}

func TestDKCharacterROM(t *testing.T) {
	chr := make([]uint8, 1024)
	chr[0] = 0x3c

	opts := newOptions(t, func(opts *preferences.ZX81Options) {
		test.DemandSuccess(t, opts.CharGen.Set(preferences.CharGenDK.String()))
	})

	z := hardware.NewZX81(nil)
	err := z.Initialise(opts, hardware.ROMImages{"zx81.rom": romImage(), "dkchr.rom": chr})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, z.ReadByte(memory.OriginCharROM), uint8(0x3c))
}

func TestMemoryAccess(t *testing.T) {
	z := newZX81(t, romImage(), nil)

	// writes to ROM are dropped
	z.WriteByte(0x0010, 0xff)
	test.ExpectEquality(t, z.ReadByte(0x0010), uint8(0x00))

	// but poke ignores ROM protection
	test.ExpectSuccess(t, z.Poke(0x0010, 0xff))
	v, err := z.Peek(0x0010)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0xff))

	// 16K of RAM is mirrored above RAMTOP
	z.WriteByte(0x4000, 0x12)
	test.ExpectEquality(t, z.ReadByte(0x8000), uint8(0x12))
	test.ExpectEquality(t, z.ReadByte(0xc000), uint8(0x12))

	_, err = z.Peek(-1)
	test.ExpectSuccess(t, errors.Is(err, memory.AddressError))
	_, err = z.Peek(0x10000)
	test.ExpectSuccess(t, errors.Is(err, memory.AddressError))
	err = z.Poke(0x10000, 0x00)
	test.ExpectSuccess(t, errors.Is(err, memory.AddressError))
}

func TestUnprotectedROM(t *testing.T) {
	z := newZX81(t, romImage(), func(opts *preferences.ZX81Options) {
		test.DemandSuccess(t, opts.ProtectROM.Set(false))
	})
	z.WriteByte(0x0010, 0xff)
	test.ExpectEquality(t, z.ReadByte(0x0010), uint8(0xff))
}

func TestPorts(t *testing.T) {
	z := newZX81(t, romImage(), nil)

	// ports with A0 set are not decoded
	test.ExpectEquality(t, z.ReadPort(0x00ff), uint8(0xff))
	test.ExpectEquality(t, z.ULA.VSync, false)

	// keyboard port with no keys pressed. bit 6 is set for PAL machines
	test.ExpectEquality(t, z.ReadPort(0xfefe), uint8(0x7f))
	test.ExpectEquality(t, z.ULA.VSync, true)

	z.Keyboard.Press(keyboard.MustLookup("SHIFT"))
	test.ExpectEquality(t, z.ReadPort(0xfefe), uint8(0x7e))
	test.ExpectEquality(t, z.ReadPort(0xfdfe), uint8(0x7f))
	z.Keyboard.ReleaseAll()

	// NMI generator on
	z.WritePort(0x00fe, 0x00)
	test.ExpectEquality(t, z.ULA.NMIGenerator, true)
	test.ExpectEquality(t, z.ULA.VSync, false)

	// NMI generator off
	z.WritePort(0x00fd, 0x00)
	test.ExpectEquality(t, z.ULA.NMIGenerator, false)
}

func TestNTSCPorts(t *testing.T) {
	z := newZX81(t, romImage(), func(opts *preferences.ZX81Options) {
		test.DemandSuccess(t, opts.TV.Set("NTSC"))
	})
	test.ExpectEquality(t, z.ReadPort(0xfefe), uint8(0x3f))
}

func TestContention(t *testing.T) {
	z := newZX81(t, romImage(), nil)
	test.ExpectEquality(t, z.ContendMem(0x4000, 3, 10), 3)
	test.ExpectEquality(t, z.ContendIO(0xfefe, 4, 10), 4)

	z = newZX81(t, romImage(), func(opts *preferences.ZX81Options) {
		test.DemandSuccess(t, opts.Contention.Set(contention.Sinclair48K.Label()))
	})
	test.ExpectEquality(t, z.ContendMem(0x4000, 3, 0), 9)
	test.ExpectEquality(t, z.ContendMem(0x0000, 3, 0), 3)
}

func TestScanlineCarry(t *testing.T) {
	z := newZX81(t, romImage(), nil)

	// a scanline of NOP instructions. the final instruction of each
	// scanline overshoots the end by one more T-state each time, until the
	// carry is large enough for the scanline to end exactly on the boundary
	for _, expected := range []int{208, 208, 208, 204, 208, 208} {
		n, err := z.DoScanline()
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, n, expected)
	}

	test.ExpectEquality(t, z.State(), govern.Running)
	test.ExpectEquality(t, z.Scanline(), 6)
}

func TestInterruptEndsScanline(t *testing.T) {
	// IM 1; EI; JR -2
	z := newZX81(t, romImage(0xed, 0x56, 0xfb, 0x18, 0xfe), nil)

	n, err := z.DoScanline()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, n, 8+4+12+13)
	test.ExpectEquality(t, z.CPU.PC.Value(), uint16(0x0038))
	test.ExpectEquality(t, z.CPU.LastResult.Kind, execution.Interrupt)

	// the interrupt is carried into the next scanline and interrupts are now
	// disabled
	n, err = z.DoScanline()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, n, 196)
}

func TestNMI(t *testing.T) {
	// OUT ($FE),A switches the NMI generator on
	z := newZX81(t, romImage(0xd3, 0xfe), nil)

	n, err := z.DoScanline()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, z.ULA.NMIGenerator, true)

	// 207 T-states exactly and then the NMI
	test.ExpectEquality(t, n, 207+11)
	test.ExpectEquality(t, z.CPU.PC.Value(), uint16(0x0066))
	test.ExpectEquality(t, z.CPU.LastResult.Kind, execution.NonMaskableInterrupt)
	test.ExpectEquality(t, z.CPU.Clock, 11)
}

func TestNMIWait(t *testing.T) {
	// OUT ($FE),A; LD A,0; HALT
	z := newZX81(t, romImage(0xd3, 0xfe, 0x3e, 0x00, 0x76), nil)

	n, err := z.DoScanline()
	test.DemandSuccess(t, err)

	// the halted CPU overshoots the scanline by three T-states. the WAIT
	// line discards them
	test.ExpectEquality(t, n, 210+11)
	test.ExpectEquality(t, z.CPU.Halted, false)
	test.ExpectEquality(t, z.CPU.PC.Value(), uint16(0x0066))
	test.ExpectEquality(t, z.CPU.Clock, 11)
}

func TestDisplayFetch(t *testing.T) {
	z := newZX81(t, romImage(), nil)

	// character code with bit 6 clear above M1NOT is executed as a NOP
	test.DemandSuccess(t, z.Poke(0x4000, 0x08))
	test.DemandSuccess(t, z.Poke(0x4001, 0x76))
	z.CPU.PC.Load(0xc000)

	test.ExpectEquality(t, z.CPU.Step(), 4)
	test.ExpectEquality(t, z.CPU.PC.Value(), uint16(0xc001))
	test.ExpectEquality(t, z.CPU.Halted, false)

	// ordinary reads are not affected
	test.ExpectEquality(t, z.ReadByte(0xc000), uint8(0x08))

	// HALT has bit 6 set and is executed
	z.CPU.Step()
	test.ExpectEquality(t, z.CPU.Halted, true)

	// below M1NOT the code is an instruction
	z.CPU.Reset()
	z.CPU.PC.Load(0x4000)
	test.ExpectEquality(t, z.OpcodeFetch(0x4000), uint8(0x08))
}

func TestStop(t *testing.T) {
	opts := newOptions(t, nil)
	roms := hardware.ROMImages{"zx81.rom": romImage()}

	z := hardware.NewZX81(nil)
	test.DemandSuccess(t, z.Initialise(opts, roms))
	test.ExpectEquality(t, z.Stop(), false)

	z.RequestStop()
	test.ExpectEquality(t, z.Stop(), true)
	test.ExpectEquality(t, z.State(), govern.Stopped)

	_, err := z.DoScanline()
	test.ExpectSuccess(t, errors.Is(err, hardware.MachineStopped))

	// initialising again clears the stop request
	test.DemandSuccess(t, z.Initialise(opts, roms))
	test.ExpectEquality(t, z.Stop(), false)
	_, err = z.DoScanline()
	test.ExpectSuccess(t, err)
}

func TestDeadCPU(t *testing.T) {
	// DI; HALT
	z := newZX81(t, romImage(0xf3, 0x76), nil)
	test.ExpectEquality(t, z.Stop(), false)

	_, err := z.DoScanline()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, z.CPU.Halted, true)
	test.ExpectEquality(t, z.Stop(), true)

	// the frame driver stops at once
	test.ExpectSuccess(t, z.Run(nil))
}

func TestFastLoad(t *testing.T) {
	rom := romImage()
	rom[romfastload.ZX81Load.Address] = romfastload.ZX81Load.Opcode

	program := []uint8{0x01, 0x02, 0x03}

	z := newZX81(t, rom, nil)
	z.Tape().Insert(tape.UnnamedEntry(program))
	z.CPU.PC.Load(romfastload.ZX81Load.Address)
	z.CPU.SP.Load(0x7000)

	_, err := z.DoScanline()
	test.DemandSuccess(t, err)

	for i, b := range program {
		v, err := z.Peek(int(romfastload.ZX81Load.LoadAddress) + i)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, v, b)
	}
	test.ExpectEquality(t, z.CPU.SP.Value(), uint16(0x7002))
	test.ExpectEquality(t, z.Tape().Remaining(), 0)

	// the ROM loader is not intercepted when fast-load is disabled
	z = newZX81(t, rom, func(opts *preferences.ZX81Options) {
		test.DemandSuccess(t, opts.FastLoad.Set(false))
	})
	z.Tape().Insert(tape.UnnamedEntry(program))
	z.CPU.PC.Load(romfastload.ZX81Load.Address)

	_, err = z.DoScanline()
	test.DemandSuccess(t, err)

	v, err := z.Peek(int(romfastload.ZX81Load.LoadAddress))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x00))
	test.ExpectEquality(t, z.Tape().Remaining(), 1)
}

func TestPlayTape(t *testing.T) {
	z := newZX81(t, romImage(), nil)
	test.ExpectEquality(t, z.PlayTape(), false)

	z.Tape().Insert([]uint8{0xff})
	test.ExpectEquality(t, z.PlayTape(), true)
	test.ExpectEquality(t, z.TapePlayer.Playing(), true)

	// the tape signal advances with the CPU
	for range tape.LeaderTStates/specification.TStatesPerScanline + 1 {
		_, err := z.DoScanline()
		test.DemandSuccess(t, err)
	}
	test.ExpectEquality(t, z.ReadPort(0xfefe)&0x80, uint8(0x80))
}

func TestRunForFrameCount(t *testing.T) {
	z := newZX81(t, romImage(), nil)

	var frames []int
	err := z.RunForFrameCount(3, func(frame int) (govern.State, error) {
		frames = append(frames, frame)
		return govern.Running, nil
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, z.FrameNum(), 3)
	test.DemandEquality(t, len(frames), 3)
	for i, f := range frames {
		test.ExpectEquality(t, f, i+1)
	}

	// ending early
	err = z.RunForFrameCount(10, func(frame int) (govern.State, error) {
		return govern.Ending, nil
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, z.FrameNum(), 4)
}

func TestRun(t *testing.T) {
	z := newZX81(t, romImage(), nil)

	var count int
	err := z.Run(func() (govern.State, error) {
		count++
		if count >= hardware.PerformanceBrake {
			return govern.Ending, nil
		}
		return govern.Running, nil
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, count, hardware.PerformanceBrake)
	test.ExpectEquality(t, z.Scanline(), hardware.PerformanceBrake)

	// a stop request ends the run
	count = 0
	err = z.Run(func() (govern.State, error) {
		count++
		z.RequestStop()
		return govern.Running, nil
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, count, 1)

	// a failing continue check ends the run with the error
	z = newZX81(t, romImage(), nil)
	failure := errors.New("test failure")
	err = z.Run(func() (govern.State, error) {
		return govern.Running, failure
	})
	test.ExpectSuccess(t, errors.Is(err, failure))
}

func TestAutoLoad(t *testing.T) {
	z := newZX81(t, romImage(), func(opts *preferences.ZX81Options) {
		test.DemandSuccess(t, opts.AutoLoad.Set(true))
	})
	z.Tape().Insert(tape.UnnamedEntry([]uint8{0x00}))

	test.DemandSuccess(t, z.RunForFrameCount(101, nil))
	test.ExpectEquality(t, z.Keyboard.Pressed(keyboard.MustLookup("J")), true)
}

type mockMixer struct {
	levels []bool
	ended  bool
}

func (m *mockMixer) SetAudio(level bool) error {
	m.levels = append(m.levels, level)
	return nil
}

func (m *mockMixer) EndMixing() error {
	m.ended = true
	return nil
}

func TestAudio(t *testing.T) {
	mixer := &mockMixer{}
	z := hardware.NewZX81(mixer)
	test.DemandSuccess(t, z.Initialise(newOptions(t, nil), hardware.ROMImages{"zx81.rom": romImage()}))

	for range 5 {
		_, err := z.DoScanline()
		test.DemandSuccess(t, err)
	}
	test.ExpectEquality(t, len(mixer.levels), 5)

	// reading the keyboard starts vertical sync which raises the level
	z.ReadPort(0xfefe)
	_, err := z.DoScanline()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, mixer.levels[5], true)

	test.ExpectSuccess(t, z.EndMixing())
	test.ExpectEquality(t, mixer.ended, true)
}

func TestVideoDigest(t *testing.T) {
	run := func() string {
		z := newZX81(t, romImage(), nil)
		dig := digest.NewVideo()
		err := z.RunForFrameCount(3, func(_ int) (govern.State, error) {
			return govern.Running, dig.AddFrame(z)
		})
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, dig.FrameNum(), 3)
		return dig.Hash()
	}

	// emulation is deterministic
	test.ExpectEquality(t, run(), run())
}
