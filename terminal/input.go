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

//go:build !windows

package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/term"
)

// the time Poll() waits for input before returning
const pollTimeout = time.Millisecond

// Input reads keypresses from a terminal device without waiting for the
// return key.
type Input struct {
	t   *term.Term
	buf []byte
}

// OpenInput puts the terminal device into cbreak mode. The device is usually
// /dev/tty.
func OpenInput(device string) (*Input, error) {
	t, err := term.Open(device, term.CBreakMode, term.ReadTimeout(pollTimeout))
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	return &Input{
		t:   t,
		buf: make([]byte, 16),
	}, nil
}

// Poll returns the bytes that have been typed since the previous call. The
// returned slice is only valid until the next call to Poll().
func (in *Input) Poll() ([]byte, error) {
	n, err := in.t.Read(in.buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrDeadlineExceeded) {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	return in.buf[:n], nil
}

// Close restores the terminal to the mode it was in before OpenInput().
func (in *Input) Close() error {
	if err := in.t.Restore(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := in.t.Close(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	return nil
}
