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

// Package wavwriter allows writing of audio data to disk as a WAV file. Note
// that audio data is buffered in memory in its entirity, and written to disk
// when EndMixing() is called. It is therefore probably only suitable for
// testing purposes.
//
// The ZX81 has no sound hardware. The audio is the level of the video sync
// signal, which is sampled once per scanline.
package wavwriter

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/gopher81/gopher81/hardware/specification"
	"github.com/gopher81/gopher81/logger"
)

// SampleRate is the number of samples per second. One sample is taken every
// scanline.
const SampleRate = specification.ClockSpeed / specification.TStatesPerScanline

// the bit depth of the WAV file and the sample values for the two levels of
// the sync signal
const (
	bitDepth  = 16
	levelHigh = 8192
	levelLow  = -8192
)

// WavWriter implements the hardware.AudioMixer interface.
type WavWriter struct {
	filename string
	buffer   []int
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string) (*WavWriter, error) {
	if filename == "" {
		return nil, fmt.Errorf("wavwriter: no filename")
	}

	aw := &WavWriter{
		filename: filename,
		buffer:   make([]int, 0, SampleRate),
	}

	return aw, nil
}

// SetAudio implements the hardware.AudioMixer interface.
func (aw *WavWriter) SetAudio(level bool) error {
	if level {
		aw.buffer = append(aw.buffer, levelHigh)
	} else {
		aw.buffer = append(aw.buffer, levelLow)
	}
	return nil
}

// Samples returns the number of samples waiting to be written.
func (aw *WavWriter) Samples() int {
	return len(aw.buffer)
}

// EndMixing implements the hardware.AudioMixer interface.
func (aw *WavWriter) EndMixing() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = fmt.Errorf("wavwriter: %w", err)
		}
	}()

	enc := wav.NewEncoder(f, SampleRate, bitDepth, 1, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  SampleRate,
		},
		Data:           aw.buffer,
		SourceBitDepth: bitDepth,
	}

	logger.Logf(logger.Allow, "wavwriter", "writing %d samples to %s", len(aw.buffer), aw.filename)

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}

	// closing the encoder writes the WAV header
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}

	aw.buffer = aw.buffer[:0]

	return nil
}
