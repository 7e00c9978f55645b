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
	"fmt"

	"github.com/gopher81/gopher81/govern"
)

// The continueCheck() function runs at the end of every scanline, which is
// often enough for a full continue check to be expensive.
//
// It depends on context whether it is used or not but the PerformanceBrake is
// a standard value that can be used to filter out expensive code paths within
// a continueCheck() implementation. For example:
//
//	performanceFilter++
//	if performanceFilter >= hardware.PerformanceBrake {
//		performanceFilter = 0
//		if end_condition == true {
//			return govern.Ending, nil
//		}
//	}
//	return govern.Running, nil
const PerformanceBrake = 100

// Run sets the emulation running as quickly as possible. Emulation continues
// until the continueCheck function returns govern.Ending or until the
// machine's Stop() function returns true.
func (z *ZX81) Run(continueCheck func() (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	var err error

	state := govern.Running

	for state != govern.Ending && !z.Stop() {
		switch state {
		case govern.Running:
			if _, err := z.DoScanline(); err != nil {
				return err
			}
		case govern.Paused:
		default:
			return fmt.Errorf("hardware: unsupported emulation state (%s) in Run() function", state)
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForFrameCount sets the emulation running for the specified number of
// frames. The continueCheck function is called at the end of every frame.
// Useful for performance measurement and for tests.
func (z *ZX81) RunForFrameCount(numFrames int, continueCheck func(frame int) (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func(frame int) (govern.State, error) { return govern.Running, nil }
	}

	frameNum := z.frameNum
	targetFrame := frameNum + numFrames

	state := govern.Running
	for frameNum != targetFrame && state != govern.Ending && !z.Stop() {
		if _, err := z.DoScanline(); err != nil {
			return err
		}

		if z.frameNum == frameNum {
			continue
		}
		frameNum = z.frameNum

		var err error
		state, err = continueCheck(frameNum)
		if err != nil {
			return err
		}
	}

	return nil
}
