package launcher

import (
	"fmt"
	"os"
	"strings"
)

// StreamPolicy selects what a child's standard stream is connected to.
type StreamPolicy int

const (
	// Inherit connects the stream to the parent's corresponding stream.
	Inherit StreamPolicy = iota
	// Discard connects the stream to the null device.
	Discard
)

// String returns the config spelling of the policy.
func (p StreamPolicy) String() string {
	switch p {
	case Inherit:
		return "inherit"
	case Discard:
		return "discard"
	default:
		return fmt.Sprintf("StreamPolicy(%d)", int(p))
	}
}

// ParseStreamPolicy parses "inherit" or "discard". Empty means inherit.
func ParseStreamPolicy(s string) (StreamPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "inherit":
		return Inherit, nil
	case "discard":
		return Discard, nil
	default:
		return Inherit, fmt.Errorf("unknown stream policy %q", s)
	}
}

// Command is a request to start one child process.
type Command struct {
	Name string   // Executable name, resolved through PATH
	Args []string // Arguments, excluding the executable itself
	Dir  string   // Working directory, empty inherits
	Env  []string // Extra KEY=VALUE entries, appended to the inherited environment

	Stdin  StreamPolicy
	Stdout StreamPolicy
	Stderr StreamPolicy

	// RequiredFiles must exist before the process is started. Relative paths
	// are resolved against Dir when it is set.
	RequiredFiles []string
}

// Handle identifies a started child. The launcher only logs it.
type Handle struct {
	Pid     int
	Process *os.Process
}

// Spawner starts processes without waiting for them.
type Spawner interface {
	// Start creates the process described by cmd and returns immediately.
	Start(cmd Command) (*Handle, error)
}

// SpawnerFunc adapts an ordinary function to the Spawner interface.
type SpawnerFunc func(cmd Command) (*Handle, error)

// Start implements Spawner.
func (f SpawnerFunc) Start(cmd Command) (*Handle, error) {
	return f(cmd)
}
