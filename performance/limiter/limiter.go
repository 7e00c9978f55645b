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

// Package limiter provides a rough and ready way of limiting events to a fixed
// rate.
//
// A new FpsLimiter can be created with (error handling removed for clarity):
//
//	fps, _ := limiter.NewFPSLimiter(50)
//
// Operations can then be stalled with the Wait() function. For example:
//
//	for {
//		fps.Wait()
//		runFrame()
//	}
package limiter

import (
	"fmt"
	"time"
)

// FpsLimiter will trigger every frames per second.
type FpsLimiter struct {
	framesPerSecond float32
	ticker          *time.Ticker
}

func period(framesPerSecond float32) (time.Duration, error) {
	if framesPerSecond <= 0 {
		return 0, fmt.Errorf("limiter: invalid rate (%.2f)", framesPerSecond)
	}
	return time.Duration(float64(time.Second) / float64(framesPerSecond)), nil
}

// NewFPSLimiter is the preferred method of initialisation for FpsLimiter type.
func NewFPSLimiter(framesPerSecond float32) (*FpsLimiter, error) {
	p, err := period(framesPerSecond)
	if err != nil {
		return nil, err
	}
	return &FpsLimiter{
		framesPerSecond: framesPerSecond,
		ticker:          time.NewTicker(p),
	}, nil
}

// SetLimit changes the limit at which the FpsLimiter waits.
func (lim *FpsLimiter) SetLimit(framesPerSecond float32) error {
	p, err := period(framesPerSecond)
	if err != nil {
		return err
	}
	lim.framesPerSecond = framesPerSecond
	lim.ticker.Reset(p)
	return nil
}

// Limit returns the current limit.
func (lim *FpsLimiter) Limit() float32 {
	return lim.framesPerSecond
}

// Wait will block until trigger.
func (lim *FpsLimiter) Wait() {
	<-lim.ticker.C
}

// HasWaited will return true if time has already elapsed and false it it is
// still yet to happen.
func (lim *FpsLimiter) HasWaited() bool {
	select {
	case <-lim.ticker.C:
		return true
	default:
		return false
	}
}

// Stop the limiter. Wait() must not be called after Stop().
func (lim *FpsLimiter) Stop() {
	lim.ticker.Stop()
}
