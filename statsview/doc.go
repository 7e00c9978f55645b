// Package statsview provides a HTTP server running locally offering runtime
// statistics. Underlying funcionality provided by
// "github.com/go-echarts/statsview"
//
// After launch, graphical statistics will be viewable at:
//
//	localhost:12600/debug/statsview
//
// And standard Go pprof statistics available at:
//
//	localhost:12600/debug/pprof/
//
// The server is started by the -statsview flag of the RUN and PERFORMANCE
// modes.
package statsview
