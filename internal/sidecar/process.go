package sidecar

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"opendbm/internal/platform"
)

// Handle is a reference to a launched sidecar process
type Handle interface {
	Pid() int
	// Kill forcefully terminates the process without waiting for it to exit
	Kill() error
	// Done is closed once the process has exited and been reaped
	Done() <-chan struct{}
	// Err returns the wait error; only meaningful after Done is closed
	Err() error
}

// Starter spawns the sidecar executable
type Starter interface {
	Start(path string, env []string) (Handle, error)
}

// ProcessStarter starts real OS processes through a platform.ProcessAPI
type ProcessStarter struct {
	api    platform.ProcessAPI
	logDir string
}

// NewProcessStarter creates a starter. When logDir is empty the child
// inherits the shell's stdout and stderr.
func NewProcessStarter(api platform.ProcessAPI, logDir string) *ProcessStarter {
	if api == nil {
		api = platform.NewProcessAPI()
	}
	return &ProcessStarter{api: api, logDir: logDir}
}

// Start launches path with env. A single goroutine reaps the child so it
// never lingers as a zombie after Kill.
func (s *ProcessStarter) Start(path string, env []string) (Handle, error) {
	cmd := exec.Command(path)
	cmd.Env = env
	s.api.ConfigureCommand(cmd)

	logs, err := s.attachOutput(cmd)
	if err != nil {
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		logs.Close()
		return nil, err
	}

	p := &process{
		cmd:  cmd,
		api:  s.api,
		logs: logs,
		done: make(chan struct{}),
	}
	go p.reap()
	return p, nil
}

func (s *ProcessStarter) attachOutput(cmd *exec.Cmd) (logFiles, error) {
	if s.logDir == "" {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return logFiles{}, nil
	}

	logs, err := openLogFiles(s.logDir, binaryBase)
	if err != nil {
		return logFiles{}, err
	}
	cmd.Stdout = logs.stdout
	cmd.Stderr = logs.stderr
	return logs, nil
}

type process struct {
	cmd  *exec.Cmd
	api  platform.ProcessAPI
	logs logFiles
	done chan struct{}
	err  error // written once by reap before done is closed
}

func (p *process) reap() {
	p.err = p.cmd.Wait()
	p.logs.Close()
	close(p.done)
}

func (p *process) Pid() int {
	return p.cmd.Process.Pid
}

// Kill returns os.ErrProcessDone once the child has been reaped; its pid
// may already belong to another process.
func (p *process) Kill() error {
	select {
	case <-p.done:
		return os.ErrProcessDone
	default:
	}
	return p.api.Kill(p.cmd.Process)
}

func (p *process) Done() <-chan struct{} {
	return p.done
}

func (p *process) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// logFiles holds the append-mode stdout/stderr files of the sidecar
type logFiles struct {
	stdout *os.File
	stderr *os.File
}

// openLogFiles opens <dir>/<name>-stdout.log and <dir>/<name>-stderr.log for appending.
// Both files are returned only if both opens succeed.
func openLogFiles(dir, name string) (logFiles, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND

	stdout, err := os.OpenFile(filepath.Join(dir, name+"-stdout.log"), flags, 0o644)
	if err != nil {
		return logFiles{}, fmt.Errorf("open stdout log: %w", err)
	}
	stderr, err := os.OpenFile(filepath.Join(dir, name+"-stderr.log"), flags, 0o644)
	if err != nil {
		_ = stdout.Close()
		return logFiles{}, fmt.Errorf("open stderr log: %w", err)
	}
	return logFiles{stdout: stdout, stderr: stderr}, nil
}

// Close closes both files; safe on a zero value and when called twice
func (l *logFiles) Close() {
	if l.stdout != nil {
		_ = l.stdout.Close()
		l.stdout = nil
	}
	if l.stderr != nil {
		_ = l.stderr.Close()
		l.stderr = nil
	}
}
