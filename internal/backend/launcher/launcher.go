// Package launcher starts the backend process when the host runtime initialises.
// The backend is spawned once and then left alone: the launcher never waits on
// it, health-checks it, restarts it or stops it.
package launcher

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/slidescope/desktop/internal/common/config"
	apperrors "github.com/slidescope/desktop/internal/common/errors"
	"github.com/slidescope/desktop/internal/common/logger"
	"github.com/slidescope/desktop/internal/host"
)

// Defaults used when the corresponding Config field is empty.
const (
	DefaultInterpreter = "python"
	DefaultScript      = "../python-api/app.py"
)

// Config holds configuration for the launcher.
type Config struct {
	Interpreter  string       // Interpreter resolved through PATH (default: python)
	Script       string       // Backend entry point, the only argument (default: ../python-api/app.py)
	WorkDir      string       // Child working directory, empty inherits
	Env          []string     // Extra KEY=VALUE entries on top of the inherited environment
	Stderr       StreamPolicy // Default: Inherit
	Stdin        StreamPolicy // Default: Inherit
	VerifyScript bool         // Fail the spawn if Script does not exist
}

// FromConfig converts the backend section of the application config.
func FromConfig(c config.BackendConfig) (Config, error) {
	stderr, err := ParseStreamPolicy(c.Stderr)
	if err != nil {
		return Config{}, fmt.Errorf("backend.stderr: %w", err)
	}
	stdin, err := ParseStreamPolicy(c.Stdin)
	if err != nil {
		return Config{}, fmt.Errorf("backend.stdin: %w", err)
	}
	return Config{
		Interpreter:  c.Interpreter,
		Script:       c.Script,
		WorkDir:      c.WorkDir,
		Env:          c.Env,
		Stderr:       stderr,
		Stdin:        stdin,
		VerifyScript: c.VerifyScript,
	}, nil
}

// Launcher spawns the backend from a host setup callback.
type Launcher struct {
	cfg     Config
	spawner Spawner
	logger  *logger.Logger

	mu       sync.Mutex
	launched bool
}

// New creates a new Launcher. A nil spawner selects the exec-based spawner.
func New(cfg Config, spawner Spawner, log *logger.Logger) *Launcher {
	if cfg.Interpreter == "" {
		cfg.Interpreter = DefaultInterpreter
	}
	if cfg.Script == "" {
		cfg.Script = DefaultScript
	}
	if spawner == nil {
		spawner = NewExecSpawner()
	}
	if log == nil {
		log = logger.Default()
	}

	return &Launcher{
		cfg:     cfg,
		spawner: spawner,
		logger:  log.WithComponent("backend-launcher"),
	}
}

// Command returns the invocation OnStartup hands to the spawner.
// Stdout is always discarded.
func (l *Launcher) Command() Command {
	cmd := Command{
		Name:   l.cfg.Interpreter,
		Args:   []string{l.cfg.Script},
		Dir:    l.cfg.WorkDir,
		Stdin:  l.cfg.Stdin,
		Stdout: Discard,
		Stderr: l.cfg.Stderr,
	}
	if len(l.cfg.Env) > 0 {
		cmd.Env = append([]string(nil), l.cfg.Env...)
	}
	if l.cfg.VerifyScript {
		cmd.RequiredFiles = []string{l.cfg.Script}
	}
	return cmd
}

// OnStartup spawns the backend. It has the host.SetupFunc signature and is
// meant to be registered with host.Builder.Setup.
//
// It returns as soon as the process has been created. Any failure is a
// SPAWN_FAILURE; the caller decides whether to abort. ctx only feeds the
// logger and is not bound to the child, so cancelling it leaves the backend running.
func (l *Launcher) OnStartup(ctx context.Context, hc *host.Context) error {
	log := l.logger.WithContext(ctx)

	l.mu.Lock()
	if l.launched {
		l.mu.Unlock()
		return apperrors.SpawnFailure("backend already launched for this application start", nil)
	}
	l.launched = true
	l.mu.Unlock()

	cmd := l.Command()
	log.Info("starting backend process",
		zap.String("interpreter", cmd.Name),
		zap.String("args", strings.Join(cmd.Args, " ")),
		zap.String("stdout", cmd.Stdout.String()),
		zap.String("stderr", cmd.Stderr.String()),
		zap.String("stdin", cmd.Stdin.String()))

	log.Debug("backend command resolved",
		zap.String("dir", cmd.Dir),
		zap.Strings("env", cmd.Env),
		zap.Strings("required_files", cmd.RequiredFiles))

	handle, err := l.spawner.Start(cmd)
	if err != nil {
		log.WithError(err).Error("failed to start backend process")
		msg := fmt.Sprintf("failed to start backend %q %s", cmd.Name, strings.Join(cmd.Args, " "))
		if apperrors.Code(err) == "" {
			return apperrors.SpawnFailure(msg, err)
		}
		return apperrors.Wrap(err, msg)
	}

	fields := []zap.Field{zap.Int("pid", handle.Pid)}
	if hc != nil && hc.FrontendURL != "" {
		fields = append(fields, zap.String("frontend_url", hc.FrontendURL))
	}
	log.Info("backend process started", fields...)
	return nil
}
