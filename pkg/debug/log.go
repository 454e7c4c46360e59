// Package debug routes the debug hooks of the slider packages to a single
// sink.
package debug

import (
	"github.com/recera/slider/pkg/carousel"
	"github.com/recera/slider/pkg/reactive"
	"github.com/recera/slider/pkg/scheduler"
)

// EnableLogging sends scheduler, reactive and carousel debug output to logFn
func EnableLogging(logFn func(args ...interface{})) {
	scheduler.SetDebugLog(logFn)
	reactive.SetDebugLog(logFn)
	carousel.SetDebugLog(logFn)
}

// DisableLogging clears every debug hook
func DisableLogging() {
	scheduler.SetDebugLog(nil)
	reactive.SetDebugLog(nil)
	carousel.SetDebugLog(nil)
}
