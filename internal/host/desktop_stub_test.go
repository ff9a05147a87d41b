//go:build !desktop

package host

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/slidescope/desktop/internal/common/errors"
	"github.com/slidescope/desktop/internal/common/logger"
)

func TestDesktopStub_FailsWithoutCallingSetup(t *testing.T) {
	called := false
	err := NewDesktop(logger.NewNop()).Run(context.Background(), &Context{}, func(context.Context, *Context) error {
		called = true
		return nil
	})

	assert.True(t, apperrors.IsRuntimeStartFailure(err))
	assert.False(t, called)
}
