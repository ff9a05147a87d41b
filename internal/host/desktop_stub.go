//go:build !desktop

package host

import (
	"context"

	apperrors "github.com/slidescope/desktop/internal/common/errors"
	"github.com/slidescope/desktop/internal/common/logger"
)

// DesktopAvailable reports whether the windowed runtime is compiled in.
const DesktopAvailable = false

// Desktop is a placeholder in builds without the desktop tag.
type Desktop struct{}

// NewDesktop returns a runtime that always fails to start.
func NewDesktop(_ *logger.Logger) *Desktop {
	return &Desktop{}
}

// Name implements Runtime.
func (d *Desktop) Name() string {
	return ModeDesktop
}

// Run implements Runtime.
func (d *Desktop) Run(_ context.Context, _ *Context, _ SetupFunc) error {
	return apperrors.RuntimeStartFailure(
		"desktop runtime not compiled into this binary, rebuild with -tags desktop", nil)
}
