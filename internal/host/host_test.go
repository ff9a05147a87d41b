package host

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/slidescope/desktop/internal/common/errors"
	"github.com/slidescope/desktop/internal/common/logger"
)

type fakeRuntime struct {
	initErr     error
	loopErr     error
	setupTwice  bool
	loopEntered bool
	secondSetup error
}

func (f *fakeRuntime) Name() string { return "fake" }

func (f *fakeRuntime) Run(ctx context.Context, hc *Context, setup SetupFunc) error {
	if f.initErr != nil {
		return f.initErr
	}
	if err := setup(ctx, hc); err != nil {
		return err
	}
	if f.setupTwice {
		f.secondSetup = setup(ctx, hc)
	}
	f.loopEntered = true
	return f.loopErr
}

func TestBuilder_Run(t *testing.T) {
	log := logger.NewNop()

	t.Run("runs setup callbacks once, in order, before the loop", func(t *testing.T) {
		rt := &fakeRuntime{}
		var order []string

		err := NewBuilder(rt, log).
			Setup(func(context.Context, *Context) error { order = append(order, "first"); return nil }).
			Setup(func(context.Context, *Context) error { order = append(order, "second"); return nil }).
			Run(context.Background(), &Context{Title: "SlideScope"})

		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, order)
		assert.True(t, rt.loopEntered)
	})

	t.Run("passes the host context through unchanged", func(t *testing.T) {
		rt := &fakeRuntime{}
		hc := &Context{AppID: "io.slidescope.test", FrontendURL: "http://localhost:3000"}

		var got *Context
		err := NewBuilder(rt, log).
			Setup(func(_ context.Context, c *Context) error { got = c; return nil }).
			Run(context.Background(), hc)

		require.NoError(t, err)
		assert.Same(t, hc, got)
		assert.Equal(t, "io.slidescope.test", hc.AppID)
	})

	t.Run("setup error is returned unchanged and stops the chain", func(t *testing.T) {
		rt := &fakeRuntime{}
		setupErr := apperrors.SpawnFailure("python not found", nil)
		secondRan := false

		err := NewBuilder(rt, log).
			Setup(func(context.Context, *Context) error { return setupErr }).
			Setup(func(context.Context, *Context) error { secondRan = true; return nil }).
			Run(context.Background(), nil)

		require.Error(t, err)
		assert.Same(t, setupErr, err)
		assert.False(t, secondRan)
		assert.False(t, rt.loopEntered)
	})

	t.Run("untyped runtime error becomes a runtime start failure", func(t *testing.T) {
		cause := errors.New("no display")
		rt := &fakeRuntime{initErr: cause}

		err := NewBuilder(rt, log).Run(context.Background(), &Context{})

		require.Error(t, err)
		assert.True(t, apperrors.IsRuntimeStartFailure(err))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("typed runtime error is kept", func(t *testing.T) {
		rt := &fakeRuntime{initErr: apperrors.RuntimeStartFailure("window failed", nil)}

		err := NewBuilder(rt, log).Run(context.Background(), &Context{})

		require.Error(t, err)
		assert.Equal(t, "RUNTIME_START_FAILURE: window failed", err.Error())
	})

	t.Run("setup cannot run twice", func(t *testing.T) {
		calls := 0
		rt := &fakeRuntime{setupTwice: true}

		err := NewBuilder(rt, log).
			Setup(func(context.Context, *Context) error { calls++; return nil }).
			Run(context.Background(), &Context{})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Error(t, rt.secondSetup)
	})

	t.Run("missing runtime", func(t *testing.T) {
		err := NewBuilder(nil, log).Run(context.Background(), &Context{})
		assert.True(t, apperrors.IsRuntimeStartFailure(err))
	})
}

func TestHeadless_Run(t *testing.T) {
	t.Run("calls setup then returns when the context ends", func(t *testing.T) {
		h := NewHeadless(logger.NewNop())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := 0
		err := h.Run(ctx, &Context{}, func(context.Context, *Context) error {
			called++
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, called)
	})

	t.Run("setup failure skips the main loop", func(t *testing.T) {
		h := NewHeadless(logger.NewNop())
		setupErr := errors.New("boom")

		// A live context would block forever if the loop were entered.
		err := h.Run(context.Background(), &Context{}, func(context.Context, *Context) error {
			return setupErr
		})

		assert.Same(t, setupErr, err)
	})
}

func TestSelect(t *testing.T) {
	log := logger.NewNop()

	t.Run("headless", func(t *testing.T) {
		rt, err := Select(ModeHeadless, log)
		require.NoError(t, err)
		assert.IsType(t, &Headless{}, rt)
	})

	t.Run("auto", func(t *testing.T) {
		rt, err := Select(ModeAuto, log)
		require.NoError(t, err)
		if DesktopAvailable {
			assert.Equal(t, ModeDesktop, rt.Name())
		} else {
			assert.Equal(t, ModeHeadless, rt.Name())
		}
	})

	t.Run("desktop", func(t *testing.T) {
		rt, err := Select(ModeDesktop, log)
		if DesktopAvailable {
			require.NoError(t, err)
			assert.Equal(t, ModeDesktop, rt.Name())
			return
		}
		require.Error(t, err)
		assert.True(t, apperrors.IsRuntimeStartFailure(err))
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := Select("kiosk", log)
		require.Error(t, err)
		assert.True(t, apperrors.IsRuntimeStartFailure(err))
	})
}
