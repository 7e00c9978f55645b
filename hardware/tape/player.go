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

package tape

import (
	"github.com/gopher81/gopher81/logger"
)

// Timing of the tape signal in T-states. Values are for a 3.25MHz clock.
const (
	PulseTStates  = 487
	GapTStates    = 4225
	LeaderTStates = 1625000
)

// number of pulses used for each bit value
const (
	pulsesZero = 4
	pulsesOne  = 9
)

type phase int

const (
	phaseLeader phase = iota
	phaseHigh
	phaseLow
	phaseGap
)

// Player produces the EAR signal for the entries on a Tape.
type Player struct {
	tape *Tape

	playing bool
	data    []uint8

	// position in data
	byteIdx int
	bitIdx  int

	phase     phase
	pulses    int
	remaining int
}

// NewPlayer is the preferred method of initialisation for the Player type.
func NewPlayer(tp *Tape) *Player {
	return &Player{tape: tp}
}

// Play starts the signal for the next entry on the tape. Returns false if
// there are no more entries.
func (pl *Player) Play() bool {
	e, ok := pl.tape.GetNextEntry()
	if !ok || len(e) == 0 {
		pl.playing = false
		logger.Log(logger.Allow, "tape", "no entry to play")
		return false
	}

	pl.data = e
	pl.byteIdx = 0
	pl.bitIdx = 0
	pl.playing = true
	pl.phase = phaseLeader
	pl.remaining = LeaderTStates

	logger.Logf(logger.Allow, "tape", "playing %d bytes", len(e))
	return true
}

// Stop the signal.
func (pl *Player) Stop() {
	pl.playing = false
}

// Playing returns true if the signal is being generated.
func (pl *Player) Playing() bool {
	return pl.playing
}

// EAR returns the current level of the signal. The level is true during the
// high part of a pulse.
func (pl *Player) EAR() bool {
	return pl.playing && pl.phase == phaseHigh
}

// Advance the signal by the number of T-states.
func (pl *Player) Advance(tstates int) {
	for pl.playing && tstates > 0 {
		if pl.remaining > tstates {
			pl.remaining -= tstates
			return
		}
		tstates -= pl.remaining
		pl.next()
	}
}

func (pl *Player) startBit() {
	bit := (pl.data[pl.byteIdx] >> (7 - pl.bitIdx)) & 0x01
	if bit == 0x01 {
		pl.pulses = pulsesOne
	} else {
		pl.pulses = pulsesZero
	}
	pl.phase = phaseHigh
	pl.remaining = PulseTStates
}

func (pl *Player) next() {
	switch pl.phase {
	case phaseLeader:
		pl.startBit()
	case phaseHigh:
		pl.phase = phaseLow
		pl.remaining = PulseTStates
	case phaseLow:
		pl.pulses--
		if pl.pulses > 0 {
			pl.phase = phaseHigh
			pl.remaining = PulseTStates
		} else {
			pl.phase = phaseGap
			pl.remaining = GapTStates
		}
	case phaseGap:
		pl.bitIdx++
		if pl.bitIdx > 7 {
			pl.bitIdx = 0
			pl.byteIdx++
		}
		if pl.byteIdx >= len(pl.data) {
			pl.playing = false
			logger.Log(logger.Allow, "tape", "end of entry")
			return
		}
		pl.startBit()
	}
}
