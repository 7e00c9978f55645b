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

package performance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gopher81/gopher81/govern"
	"github.com/gopher81/gopher81/hardware"
	"github.com/gopher81/gopher81/performance/limiter"
)

// sentinal error returned by Run() loop.
var timedOut = errors.New("performance timed out")

// the time allowed for the frame rate to settle before measurement begins
const leadTime = 2 * time.Second

// Check the performance of the emulator. The machine should have been
// initialised and have any tapes inserted.
//
// Emulation will run of specificed duration and will create a cpu, memory
// profile, a trace (or a combination of those) as defined by the Profile
// argument. If uncapped is false the emulation is limited to the frame rate
// of the television specification.
func Check(output io.Writer, profile Profile, zx81 *hardware.ZX81, uncapped bool, duration string) error {
	// parse supplied duration
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	var lim *limiter.FpsLimiter
	if !uncapped {
		lim, err = limiter.NewFPSLimiter(zx81.Spec().FramesPerSecond)
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer lim.Stop()
	}

	startFrame := zx81.FrameNum()

	// run for specified period of time
	runner := func() error {
		// signals false when the leadtime has elapsed and true when the
		// measurement period has finished
		timerChan := make(chan bool, 2)

		time.AfterFunc(leadTime, func() {
			timerChan <- false
			time.AfterFunc(dur, func() {
				timerChan <- true
			})
		})

		// only check for end of measurement period every PerformanceBrake
		// scanlines. checking the timerChan is relatively expensive
		performanceBrake := 0
		lastFrame := zx81.FrameNum()

		return zx81.Run(func() (govern.State, error) {
			if lim != nil && zx81.FrameNum() != lastFrame {
				lastFrame = zx81.FrameNum()
				lim.Wait()
			}

			performanceBrake++
			if performanceBrake < hardware.PerformanceBrake {
				return govern.Running, nil
			}
			performanceBrake = 0

			select {
			case v := <-timerChan:
				if v {
					return govern.Ending, timedOut
				}

				// the leadtime has concluded. measurement begins now
				startFrame = zx81.FrameNum()
			default:
			}

			return govern.Running, nil
		})
	}

	// launch runner directly or through the CPU profiler, depending on
	// supplied arguments
	err = RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return fmt.Errorf("performance: %w", err)
	}

	// calculate performance
	numFrames := zx81.FrameNum() - startFrame
	fps, accuracy := CalcFPS(zx81.Spec(), numFrames, dur.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, dur.Seconds(), accuracy)

	return nil
}
