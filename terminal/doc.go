// Package terminal is a text-mode front end for the emulation. It is an
// alternative to a graphical display for programs that write to the display
// file in the normal way.
//
// The screen is built by decoding the display file, as pointed to by the D_FILE
// system variable, rather than by rasterising the ULA's video output.
// Characters typed in the terminal are pressed on the ZX81 keyboard, one
// character at a time.
//
// Input requires a POSIX terminal. The terminal is put into cbreak mode for
// the duration of Run() and restored afterwards.
package terminal
