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

package terminal

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/gopher81/gopher81/govern"
	"github.com/gopher81/gopher81/hardware"
	"github.com/gopher81/gopher81/performance/limiter"
)

// ANSI sequences used to draw the screen
const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
)

type styles struct {
	inverse lipgloss.Style
	border  lipgloss.Style
	status  lipgloss.Style
	stopped lipgloss.Style
}

func newStyles() styles {
	return styles{
		inverse: lipgloss.NewStyle().Reverse(true),
		border:  lipgloss.NewStyle().Border(lipgloss.NormalBorder()),
		status:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(4)),
		stopped: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
	}
}

// Terminal is a text-mode front end for a ZX81.
type Terminal struct {
	out    io.Writer
	zx81   *hardware.ZX81
	typer  *Typer
	styles styles

	// the number of frames between each redraw of the screen
	Refresh int
}

// NewTerminal is the preferred method of initialisation for the Terminal
// type. The machine should be initialised before Run() or Draw() is called.
func NewTerminal(out io.Writer, zx81 *hardware.ZX81) *Terminal {
	return &Terminal{
		out:     out,
		zx81:    zx81,
		typer:   NewTyper(zx81.Keyboard),
		styles:  newStyles(),
		Refresh: 5,
	}
}

// Typer returns the Typer used to enter characters on the ZX81 keyboard.
func (trm *Terminal) Typer() *Typer {
	return trm.typer
}

func (trm *Terminal) status() string {
	s := fmt.Sprintf(" %s  frame %d  PC $%04X  tape %d/%d ",
		trm.zx81.Spec().ID, trm.zx81.FrameNum(), trm.zx81.CPU.PC.Value(),
		trm.zx81.Tape().Remaining(), trm.zx81.Tape().Len())

	if trm.zx81.State() == govern.Stopped {
		return trm.styles.stopped.Render(s + "stopped ")
	}
	return trm.styles.status.Render(s)
}

// Draw writes the screen and a status line to the output.
func (trm *Terminal) Draw() error {
	scr, err := ReadScreen(trm.zx81)
	if err != nil {
		return err
	}

	v := lipgloss.JoinVertical(lipgloss.Left,
		trm.styles.border.Render(scr.Render(trm.styles.inverse)),
		trm.status(),
	)

	if _, err := io.WriteString(trm.out, cursorHome+v+"\n"); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}

	return nil
}

// Run the emulation until the machine stops or until the interrupt key
// (ctrl-c) is pressed. The input argument can be nil, in which case the
// keyboard is never pressed. Unless uncapped is true, the emulation is limited
// to the frame rate of the television specification.
func (trm *Terminal) Run(in *Input, uncapped bool) error {
	var lim *limiter.FpsLimiter
	if !uncapped {
		var err error
		lim, err = limiter.NewFPSLimiter(trm.zx81.Spec().FramesPerSecond)
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		defer lim.Stop()
	}

	if _, err := io.WriteString(trm.out, clearScreen); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}

	lastFrame := trm.zx81.FrameNum()

	err := trm.zx81.Run(func() (govern.State, error) {
		if trm.zx81.FrameNum() == lastFrame {
			return govern.Running, nil
		}
		lastFrame = trm.zx81.FrameNum()

		if in != nil {
			b, err := in.Poll()
			if err != nil {
				return govern.Ending, err
			}
			if !trm.typer.Push(b) {
				return govern.Ending, nil
			}
		}

		trm.typer.Frame()

		if trm.Refresh <= 1 || lastFrame%trm.Refresh == 0 {
			if err := trm.Draw(); err != nil {
				return govern.Ending, err
			}
		}

		if lim != nil {
			lim.Wait()
		}

		return govern.Running, nil
	})
	if err != nil {
		return err
	}

	// final state of the screen
	return trm.Draw()
}
