package toolexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/EmundoT/gate-check/internal/types"
)

const (
	// DefaultTimeout applies when the CommandSpec does not set one.
	DefaultTimeout = 2 * time.Minute

	// MaxTimeout is the hard ceiling; caller-supplied timeouts are
	// clamped to it.
	MaxTimeout = 10 * time.Minute
)

// Runner validates and spawns external commands, tracking every live
// process so TerminateAll can stop in-flight work during shutdown.
// A Runner is safe for concurrent use.
type Runner struct {
	mu        sync.Mutex
	processes map[int]*os.Process
	logger    *zap.Logger
}

// NewRunner creates a Runner. logger may be nil.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		processes: make(map[int]*os.Process),
		logger:    logger,
	}
}

// Run validates the spec, spawns the command, and waits up to the
// (clamped) timeout. Security rejections return an error before any
// spawn. A missing executable and a timeout are reported as normal
// outcomes with sentinel exit codes, not as errors.
func (r *Runner) Run(ctx context.Context, spec types.CommandSpec) (types.ProcessOutcome, error) {
	if err := ValidateCommand(spec.Argv); err != nil {
		return types.ProcessOutcome{}, err
	}

	timeout := spec.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if timeout > MaxTimeout {
		timeout = MaxTimeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, spec.Argv[0], spec.Argv[1:]...)
	cmd.Dir = spec.Dir
	cmd.Env = overlayEnv(spec.Env)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			r.logger.Debug("tool not found", zap.String("executable", spec.Argv[0]))
			return types.ProcessOutcome{
				ExitCode: types.ExitNotFound,
				Stderr:   fmt.Sprintf("%s: executable not found", spec.Argv[0]),
				Duration: time.Since(start),
			}, nil
		}
		return types.ProcessOutcome{}, fmt.Errorf("start %s: %w", spec.Argv[0], err)
	}

	r.track(cmd.Process)
	defer r.untrack(cmd.Process)

	waitErr := cmd.Wait()
	outcome := types.ProcessOutcome{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if runCtx.Err() == context.DeadlineExceeded {
		outcome.TimedOut = true
		outcome.ExitCode = types.ExitTimedOut
		r.logger.Debug("command timed out",
			zap.String("executable", spec.Argv[0]),
			zap.Duration("timeout", timeout))
		return outcome, nil
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			outcome.ExitCode = exitErr.ExitCode()
			return outcome, nil
		}
		return outcome, fmt.Errorf("wait %s: %w", spec.Argv[0], waitErr)
	}

	return outcome, nil
}

// RunWithRetry re-invokes Run up to maxRetries+1 times, returning on the
// first success or the last outcome. Retries are immediate, without
// backoff. Validation errors are not retried.
func (r *Runner) RunWithRetry(ctx context.Context, spec types.CommandSpec, maxRetries int) (types.ProcessOutcome, error) {
	var outcome types.ProcessOutcome
	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		outcome, err = r.Run(ctx, spec)
		if err != nil {
			return outcome, err
		}
		if outcome.Success() {
			return outcome, nil
		}
		if attempt < maxRetries {
			r.logger.Debug("retrying command",
				zap.String("executable", spec.Argv[0]),
				zap.Int("attempt", attempt+1))
		}
	}
	return outcome, nil
}

// TerminateAll kills every tracked process. Used during abnormal
// shutdown; individual Run calls observe the kill as a wait error.
func (r *Runner) TerminateAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for pid, proc := range r.processes {
		r.logger.Debug("terminating process", zap.Int("pid", pid))
		_ = proc.Kill()
		delete(r.processes, pid)
	}
}

// LiveProcessCount returns the number of tracked processes.
func (r *Runner) LiveProcessCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.processes)
}

func (r *Runner) track(proc *os.Process) {
	if proc == nil {
		return
	}
	r.mu.Lock()
	r.processes[proc.Pid] = proc
	r.mu.Unlock()
}

func (r *Runner) untrack(proc *os.Process) {
	if proc == nil {
		return
	}
	r.mu.Lock()
	delete(r.processes, proc.Pid)
	r.mu.Unlock()
}

// overlayEnv applies the spec's environment overlay onto the inherited
// environment.
func overlayEnv(overlay map[string]string) []string {
	env := os.Environ()
	for key, value := range overlay {
		env = append(env, key+"="+value)
	}
	return env
}
