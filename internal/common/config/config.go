// Package config provides configuration management for SlideScope.
// It supports loading configuration from environment variables, config files, and defaults.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/slidescope/desktop/internal/common/logger"
	"github.com/slidescope/desktop/internal/host"
)

// EnvListSeparator separates entries of list settings given as one string.
const EnvListSeparator = ";"

// Stream policies for the backend's stdin and stderr.
const (
	StreamInherit = "inherit"
	StreamDiscard = "discard"
)

// Config holds all configuration sections for SlideScope.
type Config struct {
	Backend BackendConfig `mapstructure:"backend" yaml:"backend"`
	Host    HostConfig    `mapstructure:"host" yaml:"host"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// BackendConfig describes how the backend process is launched.
type BackendConfig struct {
	// Interpreter is resolved through PATH (default: python)
	Interpreter string `mapstructure:"interpreter" yaml:"interpreter"`

	// Script is passed as the interpreter's only argument (default: ../python-api/app.py)
	Script string `mapstructure:"script" yaml:"script"`

	// WorkDir is the child's working directory. Empty inherits the parent's.
	WorkDir string `mapstructure:"workDir" yaml:"workDir"`

	Stderr string `mapstructure:"stderr" yaml:"stderr"` // inherit | discard
	Stdin  string `mapstructure:"stdin" yaml:"stdin"`   // inherit | discard

	// VerifyScript fails the spawn when Script does not exist.
	VerifyScript bool `mapstructure:"verifyScript" yaml:"verifyScript"`

	// Env holds extra KEY=VALUE entries appended to the inherited environment.
	// From a single environment variable, entries are separated by ";" so that
	// values may contain commas.
	Env []string `mapstructure:"env" yaml:"env"`
}

// HostConfig holds the host runtime settings.
type HostConfig struct {
	Mode        string `mapstructure:"mode" yaml:"mode"` // auto | desktop | headless
	AppID       string `mapstructure:"appId" yaml:"appId"`
	Title       string `mapstructure:"title" yaml:"title"`
	FrontendURL string `mapstructure:"frontendUrl" yaml:"frontendUrl"`
	Width       int    `mapstructure:"width" yaml:"width"`
	Height      int    `mapstructure:"height" yaml:"height"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	OutputPath string `mapstructure:"outputPath" yaml:"outputPath"`
}

// Logger converts the section into the logger package's config.
func (l LoggingConfig) Logger() logger.LoggingConfig {
	return logger.LoggingConfig{
		Level:      l.Level,
		Format:     l.Format,
		OutputPath: l.OutputPath,
	}
}

// setDefaults configures default values for all configuration options.
func setDefaults(v *viper.Viper) {
	// Backend defaults
	v.SetDefault("backend.interpreter", "python")
	v.SetDefault("backend.script", "../python-api/app.py")
	v.SetDefault("backend.workDir", "")
	v.SetDefault("backend.stderr", StreamInherit)
	v.SetDefault("backend.stdin", StreamInherit)
	v.SetDefault("backend.verifyScript", true)
	v.SetDefault("backend.env", []string{})

	// Host defaults
	v.SetDefault("host.mode", host.ModeAuto)
	v.SetDefault("host.appId", "io.slidescope.desktop")
	v.SetDefault("host.title", "SlideScope")
	v.SetDefault("host.frontendUrl", "http://localhost:3000")
	v.SetDefault("host.width", 1280)
	v.SetDefault("host.height", 800)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", logger.DetectFormat())
	v.SetDefault("logging.outputPath", "stderr")
}

// LoadWithPath reads configuration from environment variables, a config file and defaults.
// Environment variables use the prefix SLIDESCOPE_ with snake_case naming.
// config.yaml is looked up in configPath (when set), the current directory and ~/.slidescope/.
func LoadWithPath(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("SLIDESCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv does not map camelCase keys to SNAKE_CASE.
	_ = v.BindEnv("backend.workDir", "SLIDESCOPE_BACKEND_WORK_DIR")
	_ = v.BindEnv("backend.verifyScript", "SLIDESCOPE_BACKEND_VERIFY_SCRIPT")
	_ = v.BindEnv("host.appId", "SLIDESCOPE_HOST_APP_ID")
	_ = v.BindEnv("host.frontendUrl", "SLIDESCOPE_HOST_FRONTEND_URL")
	_ = v.BindEnv("logging.outputPath", "SLIDESCOPE_LOGGING_OUTPUT_PATH")

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.slidescope/")

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		envListHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks that all required configuration fields are set and normalises
// case-insensitive enum values.
func Validate(cfg *Config) error {
	var errs []string

	if strings.TrimSpace(cfg.Backend.Interpreter) == "" {
		errs = append(errs, "backend.interpreter is required")
	}
	if strings.TrimSpace(cfg.Backend.Script) == "" {
		errs = append(errs, "backend.script is required")
	}

	validStreams := map[string]bool{StreamInherit: true, StreamDiscard: true}
	cfg.Backend.Stderr = strings.ToLower(cfg.Backend.Stderr)
	if !validStreams[cfg.Backend.Stderr] {
		errs = append(errs, "backend.stderr must be one of: inherit, discard")
	}
	cfg.Backend.Stdin = strings.ToLower(cfg.Backend.Stdin)
	if !validStreams[cfg.Backend.Stdin] {
		errs = append(errs, "backend.stdin must be one of: inherit, discard")
	}
	for _, kv := range cfg.Backend.Env {
		if i := strings.Index(kv, "="); i <= 0 {
			errs = append(errs, fmt.Sprintf("backend.env entry %q must be KEY=VALUE", kv))
		}
	}

	validModes := map[string]bool{host.ModeAuto: true, host.ModeDesktop: true, host.ModeHeadless: true}
	cfg.Host.Mode = strings.ToLower(cfg.Host.Mode)
	if !validModes[cfg.Host.Mode] {
		errs = append(errs, "host.mode must be one of: auto, desktop, headless")
	}
	if cfg.Host.Width <= 0 || cfg.Host.Height <= 0 {
		errs = append(errs, "host.width and host.height must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		errs = append(errs, "logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(cfg.Logging.Format)] {
		errs = append(errs, "logging.format must be one of: json, text")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}

	return nil
}

// envListHook splits a string into a []string on EnvListSeparator. viper's
// default hook splits on commas, which breaks KEY=VALUE entries like
// CORS_ORIGINS=a,b.
func envListHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf([]string{}) {
			return data, nil
		}
		raw, _ := data.(string)
		out := []string{}
		for _, part := range strings.Split(raw, EnvListSeparator) {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	}
}
