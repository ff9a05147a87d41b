package host

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/slidescope/desktop/internal/common/logger"
	"go.uber.org/zap"
)

// Headless is a Runtime without a window. Its main loop waits for ctx to be
// cancelled or for SIGINT/SIGTERM.
type Headless struct {
	logger  *logger.Logger
	signals []os.Signal
}

// NewHeadless creates a headless runtime.
func NewHeadless(log *logger.Logger) *Headless {
	if log == nil {
		log = logger.Default()
	}
	return &Headless{
		logger:  log.WithComponent("headless-runtime"),
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}
}

// Name implements Runtime.
func (h *Headless) Name() string {
	return ModeHeadless
}

// Run implements Runtime.
func (h *Headless) Run(ctx context.Context, hc *Context, setup SetupFunc) error {
	if hc == nil {
		hc = &Context{}
	}
	if setup != nil {
		if err := setup(ctx, hc); err != nil {
			return err
		}
	}

	quit := make(chan os.Signal, 1)
	if len(h.signals) > 0 {
		signal.Notify(quit, h.signals...)
		defer signal.Stop(quit)
	}

	h.logger.Info("headless runtime ready",
		zap.String("title", hc.Title),
		zap.String("frontend_url", hc.FrontendURL))

	select {
	case <-ctx.Done():
		h.logger.Info("context cancelled, leaving main loop")
	case sig := <-quit:
		h.logger.Info("signal received, leaving main loop", zap.String("signal", sig.String()))
	}
	return nil
}
