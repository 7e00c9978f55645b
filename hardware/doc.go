// Package hardware is the base package for the ZX81 emulation. It and its
// sub-packages contain everything required for a headless emulation.
//
// The ZX81 type is the root of the emulation and contains references to all
// the ZX81 sub-systems. The Machine interface describes the contract between
// the emulation and the frame driver.
//
// A machine must be initialised with Initialise() before it can be used. The
// frame driver then calls DoScanline() repeatedly until Stop() returns true.
// The Run() and RunForFrameCount() functions are frame drivers suitable for
// headless emulation:
//
//	zx81 := hardware.NewZX81(nil)
//	err := zx81.Initialise(opts, hardware.ROMDirectory(pth))
//	if err != nil {
//		return err
//	}
//	err = zx81.RunForFrameCount(50, nil)
//
// Each scanline is specification.TStatesPerScanline T-states long. Any
// T-states used by an instruction that straddles the end of a scanline are
// carried into the next scanline.
package hardware
