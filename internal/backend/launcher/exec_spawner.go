package launcher

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	apperrors "github.com/slidescope/desktop/internal/common/errors"
)

var _ Spawner = (*ExecSpawner)(nil)

// ExecSpawner starts real OS processes with os/exec.
type ExecSpawner struct {
	lookPath func(file string) (string, error)
	stat     func(name string) (os.FileInfo, error)
}

// NewExecSpawner creates an ExecSpawner.
func NewExecSpawner() *ExecSpawner {
	return &ExecSpawner{
		lookPath: exec.LookPath,
		stat:     os.Stat,
	}
}

// Start resolves cmd.Name through PATH, checks cmd.RequiredFiles and starts the
// process. It never calls Wait; the child is left running on its own.
func (s *ExecSpawner) Start(c Command) (*Handle, error) {
	path, err := s.lookPath(c.Name)
	if err != nil {
		return nil, apperrors.SpawnFailure(fmt.Sprintf("executable %q not found", c.Name), err)
	}

	for _, f := range c.RequiredFiles {
		p := f
		if c.Dir != "" && !filepath.IsAbs(p) {
			p = filepath.Join(c.Dir, p)
		}
		if _, err := s.stat(p); err != nil {
			return nil, apperrors.SpawnFailure(fmt.Sprintf("required file %q not accessible", p), err)
		}
	}

	// exec.Command rather than CommandContext: the child must not be killed
	// when the caller's context ends.
	cmd := exec.Command(path, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	// Only *os.File or nil streams are used so that exec starts no copying
	// goroutines that would need Wait to finish.
	cmd.Stdin = inputStream(c.Stdin)
	cmd.Stdout = outputStream(c.Stdout, os.Stdout)
	cmd.Stderr = outputStream(c.Stderr, os.Stderr)

	applyProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		return nil, apperrors.SpawnFailure(fmt.Sprintf("could not start %q", path), err)
	}

	return &Handle{Pid: cmd.Process.Pid, Process: cmd.Process}, nil
}

// outputStream returns nil for Discard, which exec connects to the null device.
func outputStream(p StreamPolicy, parent *os.File) io.Writer {
	if p == Inherit {
		return parent
	}
	return nil
}

func inputStream(p StreamPolicy) io.Reader {
	if p == Inherit {
		return os.Stdin
	}
	return nil
}
