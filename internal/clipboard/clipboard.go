// Package clipboard publishes finished boards and layout dumps to the system
// clipboard and reads custom scenes back from it.
package clipboard

import (
	"errors"
	"os"
	"sync"
)

var (
	initOnce     sync.Once
	initErr      error
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	errNoImage   = errors.New("clipboard does not contain image data")
)

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// resetForTest clears the cached initialization result.
func resetForTest() {
	initOnce = sync.Once{}
	initErr = nil
}
