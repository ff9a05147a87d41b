package host

import (
	"fmt"

	apperrors "github.com/slidescope/desktop/internal/common/errors"
	"github.com/slidescope/desktop/internal/common/logger"
	"go.uber.org/zap"
)

// Runtime modes accepted by Select.
const (
	ModeAuto     = "auto"
	ModeDesktop  = "desktop"
	ModeHeadless = "headless"
)

// Select returns the runtime for mode. ModeAuto picks the desktop runtime when
// it is compiled in and falls back to headless otherwise.
func Select(mode string, log *logger.Logger) (Runtime, error) {
	if log == nil {
		log = logger.Default()
	}

	switch mode {
	case ModeHeadless:
		return NewHeadless(log), nil
	case ModeDesktop:
		if !DesktopAvailable {
			return nil, apperrors.RuntimeStartFailure(
				"desktop runtime not compiled into this binary, rebuild with -tags desktop", nil)
		}
		return NewDesktop(log), nil
	case ModeAuto, "":
		if DesktopAvailable {
			return NewDesktop(log), nil
		}
		log.Info("desktop runtime not available, running headless", zap.String("mode", mode))
		return NewHeadless(log), nil
	default:
		return nil, apperrors.RuntimeStartFailure(fmt.Sprintf("unknown host mode %q", mode), nil)
	}
}
