// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Arguments are given to NewArgs() and then consumed by one or more calls to
// Parse(). For example (note that no error handling of the Parse() function
// is shown here):
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "PERFORMANCE")
//	_, _ = md.Parse()
//
// Sub-modes are special arguments that put the program into a different mode
// of operation. After Parse() the Mode() function returns the sub-mode that
// was selected, which is the first sub-mode in the list if none was
// specified on the command line. Sub-mode comparisons are case insensitive.
//
// Flags for the selected mode are added after a call to NewMode() and the
// arguments are parsed again:
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		frames := md.AddInt("frames", 0, "number of frames to run")
//		_, _ = md.Parse()
//	}
//
// The -help flag is handled automatically by Parse(), which returns
// ParseHelp after writing the help text to the Output field.
package modalflag
