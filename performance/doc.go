// Package performance contains helper functions relating to performance.
//
// Check() is a quick way of running the emulation for a fixed duration of
// time. It will optionally generate profiling information.
//
// RunProfiler() can be used to generate the various profile types. On it's own
// it will not limit the amount of time the program runs for so it is useful
// for more real-world situations
//
// CalcFPS() calculates frames-per-second in aggregate along with an accuracy
// value (as compared to the television specification). Probably not suitable
// for "live" FPS monitoring.
package performance
