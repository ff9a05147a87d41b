package host

import (
	"os"
	"runtime"

	apperrors "github.com/slidescope/desktop/internal/common/errors"
)

// checkDisplay fails when a windowing toolkit has no display to connect to.
// Only X11/Wayland platforms are checked; macOS and Windows always have one.
func checkDisplay(goos string, getenv func(string) string) error {
	switch goos {
	case "darwin", "windows", "ios", "android":
		return nil
	}
	if getenv("DISPLAY") != "" || getenv("WAYLAND_DISPLAY") != "" {
		return nil
	}
	return apperrors.RuntimeStartFailure("no display available: neither DISPLAY nor WAYLAND_DISPLAY is set", nil)
}

func hostDisplay() error {
	return checkDisplay(runtime.GOOS, os.Getenv)
}
