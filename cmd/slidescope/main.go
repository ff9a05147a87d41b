// Package main is the entry point for the SlideScope desktop application.
// It starts the Python backend and then hands control to the host runtime.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/slidescope/desktop/internal/backend/launcher"
	"github.com/slidescope/desktop/internal/common/appctx"
	"github.com/slidescope/desktop/internal/common/config"
	apperrors "github.com/slidescope/desktop/internal/common/errors"
	"github.com/slidescope/desktop/internal/common/logger"
	"github.com/slidescope/desktop/internal/host"
)

// version is set via ldflags.
var version = "dev"

// deps holds the collaborators run can swap out in tests.
type deps struct {
	spawner launcher.Spawner
	stdout  io.Writer
}

func main() {
	err := run(context.Background(), os.Args[1:], deps{stdout: os.Stdout})
	if err != nil {
		// Both SPAWN_FAILURE and RUNTIME_START_FAILURE are fatal.
		fmt.Fprintf(os.Stderr, "slidescope: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, d deps) error {
	opts := &cliOptions{}
	app, cmds := newCLI(opts)

	command, err := app.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	if command == cmds.config.FullCommand() {
		return printConfig(d.stdout, cfg)
	}

	log, err := logger.NewLogger(cfg.Logging.Logger())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	logger.SetDefault(log)

	ctx = appctx.WithLaunchID(ctx)
	ctxLog := log.WithContext(ctx)
	ctxLog.Info("starting slidescope", zap.String("version", version), zap.String("mode", cfg.Host.Mode))

	rt, err := host.Select(cfg.Host.Mode, log)
	if err != nil {
		ctxLog.WithError(err).Error("failed to select host runtime")
		return err
	}

	lcfg, err := launcher.FromConfig(cfg.Backend)
	if err != nil {
		return err
	}
	backend := launcher.New(lcfg, d.spawner, log)

	hc := &host.Context{
		AppID:       cfg.Host.AppID,
		Title:       cfg.Host.Title,
		FrontendURL: cfg.Host.FrontendURL,
		Version:     version,
		Width:       cfg.Host.Width,
		Height:      cfg.Host.Height,
	}

	err = host.NewBuilder(rt, log).
		Setup(backend.OnStartup).
		Run(ctx, hc)
	if err != nil {
		ctxLog.WithError(err).Error("application startup failed",
			zap.String("code", apperrors.Code(err)))
		return err
	}
	return nil
}

// loadConfig reads the configuration and applies command-line overrides.
func loadConfig(opts *cliOptions) (*config.Config, error) {
	cfg, err := config.LoadWithPath(opts.configDir)
	if err != nil {
		return nil, err
	}

	if opts.mode != "" {
		cfg.Host.Mode = opts.mode
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid command-line override: %w", err)
	}
	return cfg, nil
}

func printConfig(w io.Writer, cfg *config.Config) error {
	if w == nil {
		w = os.Stdout
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}
