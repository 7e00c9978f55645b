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

package digest

import (
	"crypto/sha1"
	"errors"
	"fmt"
)

// FrameSource is the source of video frames. Satisfied by the hardware.ZX81
// type.
type FrameSource interface {
	Frame() ([][]uint8, error)
	FrameNum() int
}

// Video is a chained hash of every frame added to it. The hash of a frame
// includes the hash of the previous frame so the final value depends on the
// entire sequence.
type Video struct {
	digest   [sha1.Size]byte
	pixels   []byte
	frameNum int
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo() *Video {
	return &Video{}
}

// Hash implements the Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Video) ResetDigest() {
	clear(dig.digest[:])
	dig.frameNum = 0
}

// FrameNum returns the frame number of the most recently added frame.
func (dig *Video) FrameNum() int {
	return dig.frameNum
}

// AddFrame adds the current frame of the source to the digest. Adding the
// same frame number twice is an error.
func (dig *Video) AddFrame(src FrameSource) error {
	frame, err := src.Frame()
	if err != nil {
		return fmt.Errorf("digest: %w", err)
	}

	fn := src.FrameNum()
	if fn != 0 && fn == dig.frameNum {
		return fmt.Errorf("digest: frame %d already added", fn)
	}

	// the head of the pixel data is the previous digest
	l := len(dig.digest)
	for _, row := range frame {
		l += len(row)
	}
	if cap(dig.pixels) < l {
		dig.pixels = make([]byte, l)
	}
	dig.pixels = dig.pixels[:l]

	n := copy(dig.pixels, dig.digest[:])
	if n != len(dig.digest) {
		return errors.New("digest: error during new frame")
	}
	for _, row := range frame {
		n += copy(dig.pixels[n:], row)
	}

	dig.digest = sha1.Sum(dig.pixels)
	dig.frameNum = fn

	return nil
}
