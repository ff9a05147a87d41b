// Package host abstracts the GUI runtime the application runs inside.
// A Runtime owns the main event loop. Before entering that loop it calls a
// single setup callback, registered through a Builder, with an opaque Context.
package host

import (
	"context"
	"fmt"

	apperrors "github.com/slidescope/desktop/internal/common/errors"
	"github.com/slidescope/desktop/internal/common/logger"
	"go.uber.org/zap"
)

// Context describes the application to the runtime. Setup callbacks receive it
// but are not expected to read or modify it.
type Context struct {
	AppID       string
	Title       string
	FrontendURL string
	Version     string
	Width       int
	Height      int
}

// SetupFunc is invoked once by the runtime during initialisation, before the
// main loop starts accepting input. A non-nil error aborts startup.
type SetupFunc func(ctx context.Context, hc *Context) error

// Runtime is a host GUI runtime.
type Runtime interface {
	// Name identifies the runtime in logs.
	Name() string

	// Run initialises the runtime, calls setup exactly once and then runs the
	// main loop until ctx is cancelled or the user quits. If setup fails Run
	// returns its error without entering the loop.
	Run(ctx context.Context, hc *Context, setup SetupFunc) error
}

// Builder registers setup callbacks and runs a Runtime.
type Builder struct {
	runtime Runtime
	setups  []SetupFunc
	logger  *logger.Logger
}

// NewBuilder creates a Builder for the given runtime.
func NewBuilder(rt Runtime, log *logger.Logger) *Builder {
	if log == nil {
		log = logger.Default()
	}
	return &Builder{
		runtime: rt,
		logger:  log.WithComponent("host"),
	}
}

// Setup registers a setup callback. Callbacks run in registration order and
// the first error stops the chain.
func (b *Builder) Setup(fn SetupFunc) *Builder {
	b.setups = append(b.setups, fn)
	return b
}

// Run starts the runtime. Errors returned by setup callbacks propagate as-is;
// any other runtime error is reported as a RUNTIME_START_FAILURE.
func (b *Builder) Run(ctx context.Context, hc *Context) error {
	if b.runtime == nil {
		return apperrors.RuntimeStartFailure("no host runtime configured", nil)
	}
	if hc == nil {
		hc = &Context{}
	}

	log := b.logger.WithContext(ctx)
	log.Info("starting host runtime",
		zap.String("runtime", b.runtime.Name()),
		zap.String("app_id", hc.AppID))

	var (
		setupErr error
		setupRan bool
	)
	setup := func(ctx context.Context, hc *Context) error {
		if setupRan {
			return fmt.Errorf("setup already ran")
		}
		setupRan = true
		for _, fn := range b.setups {
			if err := fn(ctx, hc); err != nil {
				setupErr = err
				return err
			}
		}
		return nil
	}

	err := b.runtime.Run(ctx, hc, setup)
	switch {
	case err == nil:
		log.Info("host runtime exited")
		return nil
	case setupErr != nil:
		return setupErr
	case apperrors.Code(err) != "":
		return err
	default:
		return apperrors.RuntimeStartFailure(fmt.Sprintf("%s runtime failed", b.runtime.Name()), err)
	}
}
