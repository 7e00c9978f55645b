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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/bradleyjkemp/memviz"
	"github.com/gopher81/gopher81/digest"
	"github.com/gopher81/gopher81/govern"
	"github.com/gopher81/gopher81/hardware"
	"github.com/gopher81/gopher81/hardware/preferences"
	"github.com/gopher81/gopher81/hardware/tape"
	"github.com/gopher81/gopher81/logger"
	"github.com/gopher81/gopher81/modalflag"
	"github.com/gopher81/gopher81/performance"
	"github.com/gopher81/gopher81/prefs"
	"github.com/gopher81/gopher81/statsview"
	"github.com/gopher81/gopher81/terminal"
	"github.com/gopher81/gopher81/version"
	"github.com/gopher81/gopher81/wavwriter"
)

// exit values
const (
	exitParseError = 10
	exitModeError  = 20
)

func main() {
	os.Exit(launch(os.Stdout, os.Args[1:]))
}

// launch parses the arguments and runs the selected mode. returns the value
// to use with os.Exit()
func launch(output io.Writer, args []string) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("RUN", "PERFORMANCE", "MEMVIZ", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParseError
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "PERFORMANCE":
		err = perform(md)

	case "MEMVIZ":
		err = memvizMode(md)

	case "VERSION":
		fmt.Fprintln(output, version.String())
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return exitModeError
	}

	return 0
}

// flags common to all modes that create a machine
type machineFlags struct {
	prefs *string
	roms  *string
	log   *bool
}

func addMachineFlags(md *modalflag.Modes) machineFlags {
	return machineFlags{
		prefs: md.AddString("prefs", "", "preferences to override the preferences file. eg. \"zx81.tv::NTSC; zx81.fastload::false\""),
		roms:  md.AddString("roms", "", "directory containing ROM images (default is the roms directory in the resource path)"),
		log:   md.AddBool("log", false, "echo debugging log to stdout"),
	}
}

// newMachine creates and initialises a ZX81 according to the flags. if a tape
// file is named it is loaded onto the tape
func newMachine(md *modalflag.Modes, f machineFlags, mixer hardware.AudioMixer) (*hardware.ZX81, error) {
	if *f.log {
		logger.SetEcho(logger.NewColorizer(md.Output), false)
	} else {
		logger.SetEcho(nil, false)
	}

	if *f.prefs != "" {
		prefs.PushCommandLineStack(*f.prefs)
	}

	opts, err := preferences.NewZX81Options()
	if err != nil {
		return nil, err
	}
	if err := opts.LoadConfig(); err != nil {
		return nil, err
	}

	var roms hardware.ROMProvider
	if *f.roms != "" {
		roms = hardware.ROMDirectory(*f.roms)
	} else {
		roms, err = hardware.DefaultROMDirectory()
		if err != nil {
			return nil, err
		}
	}

	zx81 := hardware.NewZX81(mixer)
	if err := zx81.Initialise(opts, roms); err != nil {
		return nil, err
	}

	switch len(md.RemainingArgs()) {
	case 0:
	case 1:
		data, err := os.ReadFile(md.GetArg(0))
		if err != nil {
			return nil, err
		}
		zx81.Tape().Insert(tape.UnnamedEntry(data))
	default:
		return nil, fmt.Errorf("too many arguments for %s mode", md)
	}

	return zx81, nil
}

// stopOnInterrupt requests the machine to stop when the interrupt signal is
// received. the returned function should be called when the emulation has
// finished
func stopOnInterrupt(zx81 *hardware.ZX81) func() {
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	done := make(chan bool)
	go func() {
		select {
		case <-intChan:
			zx81.RequestStop()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(intChan)
		close(done)
	}
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	mf := addMachineFlags(md)
	useTerminal := md.AddBool("terminal", true, "display the screen in the terminal and accept keyboard input")
	device := md.AddString("tty", "/dev/tty", "terminal device to read keyboard input from")
	frames := md.AddInt("frames", 0, "number of frames to run for. zero runs until the machine stops")
	fpsCap := md.AddBool("fpscap", true, "cap fps to specification")
	wav := md.AddString("wav", "", "record sync signal to wav file")
	play := md.AddBool("play", false, "play the tape signal from the start. for use with zx81.fastload::false")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	showDigest := md.AddBool("digest", false, "print digest of the video output after running (requires -terminal=false and -frames)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	var mixer hardware.AudioMixer
	if *wav != "" {
		aw, err := wavwriter.New(*wav)
		if err != nil {
			return err
		}
		mixer = aw
	}

	zx81, err := newMachine(md, mf, mixer)
	if err != nil {
		return err
	}
	defer func() {
		if err := zx81.EndMixing(); err != nil {
			logger.Log(logger.Allow, "gopher81", err)
		}
	}()

	if *stats {
		srv := statsview.Launch(md.Output, "")
		defer srv.Stop()
	}

	if *play && !zx81.PlayTape() {
		return fmt.Errorf("no tape to play")
	}

	if *useTerminal {
		in, err := terminal.OpenInput(*device)
		if err != nil {
			return err
		}
		defer in.Close()

		cancel := stopOnInterrupt(zx81)
		defer cancel()

		return terminal.NewTerminal(md.Output, zx81).Run(in, !*fpsCap)
	}

	cancel := stopOnInterrupt(zx81)
	defer cancel()

	if *frames > 0 {
		var dig *digest.Video
		var check func(int) (govern.State, error)
		if *showDigest {
			dig = digest.NewVideo()
			check = func(_ int) (govern.State, error) {
				return govern.Running, dig.AddFrame(zx81)
			}
		}
		err = zx81.RunForFrameCount(*frames, check)
		if err == nil && dig != nil {
			fmt.Fprintf(md.Output, "digest: %s\n", dig.Hash())
		}
	} else {
		err = zx81.Run(nil)
	}
	if err != nil {
		return err
	}

	// print the final state of the screen
	scr, err := terminal.ReadScreen(zx81)
	if err != nil {
		return err
	}
	fmt.Fprintln(md.Output, scr.String())

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	mf := addMachineFlags(md)
	fpsCap := md.AddBool("fpscap", true, "cap FPS to specification")
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddString("profile", "none", "run performance check with profiling: comma separated CPU, MEM, TRACE or ALL")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	zx81, err := newMachine(md, mf, nil)
	if err != nil {
		return err
	}

	if *stats {
		srv := statsview.Launch(md.Output, "")
		defer srv.Stop()
	}

	return performance.Check(md.Output, prf, zx81, !*fpsCap, *duration)
}

func memvizMode(md *modalflag.Modes) error {
	md.NewMode()

	mf := addMachineFlags(md)
	frames := md.AddInt("frames", 1, "number of frames to run before creating the graph")
	out := md.AddString("out", "zx81cpu.dot", "file to write the graphviz output to")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	zx81, err := newMachine(md, mf, nil)
	if err != nil {
		return err
	}

	err = zx81.RunForFrameCount(*frames, func(_ int) (govern.State, error) {
		return govern.Running, nil
	})
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	// the 8-bit registers are views onto the register pairs. the graph shows
	// how they are shared. the CPU itself is not mapped because it refers to
	// the entire machine through the bus
	c := zx81.CPU
	memviz.Map(f, c.AF, c.BC, c.DE, c.HL, c.IX, c.IY, c.SP, c.PC,
		c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L, c.IXH, c.IXL, c.IYH, c.IYL)

	fmt.Fprintf(md.Output, "structure of the CPU written to %s\n", *out)

	return nil
}
