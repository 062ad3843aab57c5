package health

import (
	"context"
	"fmt"
	"os"
	"time"
)

// LockProber is implemented by caches whose generation lock can be probed.
type LockProber interface {
	ProbeGenerationLock(ctx context.Context) error
}

// GenerationLockChecker reports unhealthy when the generation lock cannot be
// acquired within a timeout.
type GenerationLockChecker struct {
	prober  LockProber
	timeout time.Duration
}

// NewGenerationLockChecker creates a GenerationLockChecker.
func NewGenerationLockChecker(p LockProber, timeout time.Duration) *GenerationLockChecker {
	if timeout <= 0 {
		timeout = time.Second
	}
	return &GenerationLockChecker{prober: p, timeout: timeout}
}

// Name returns the name of this checker.
func (c *GenerationLockChecker) Name() string { return "generation_lock" }

// Check probes the generation lock.
func (c *GenerationLockChecker) Check(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	if err := c.prober.ProbeGenerationLock(ctx); err != nil {
		return Unhealthy(fmt.Sprintf("generation lock not acquired within %s", c.timeout), err)
	}
	return Healthy("generation lock available").WithDetails(map[string]any{
		"wait_ms": float64(time.Since(start).Microseconds()) / 1000.0,
	})
}

// FlushDirectoryChecker reports unhealthy when the flush directory cannot be
// written. A directory that does not exist yet is degraded; flushing
// creates it.
type FlushDirectoryChecker struct {
	dir string
}

// NewFlushDirectoryChecker creates a FlushDirectoryChecker.
func NewFlushDirectoryChecker(dir string) *FlushDirectoryChecker {
	return &FlushDirectoryChecker{dir: dir}
}

// Name returns the name of this checker.
func (c *FlushDirectoryChecker) Name() string { return "flush_directory" }

// Check writes and removes a temporary file in the flush directory.
func (c *FlushDirectoryChecker) Check(context.Context) Result {
	details := map[string]any{"path": c.dir}

	info, err := os.Stat(c.dir)
	if os.IsNotExist(err) {
		return Degraded("flush directory does not exist yet").WithDetails(details)
	}
	if err != nil {
		return Unhealthy("flush directory not accessible", err).WithDetails(details)
	}
	if !info.IsDir() {
		return Unhealthy("flush path is not a directory", nil).WithDetails(details)
	}

	f, err := os.CreateTemp(c.dir, ".health-*")
	if err != nil {
		return Unhealthy("flush directory not writable", err).WithDetails(details)
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return Healthy("flush directory writable").WithDetails(details)
}

// BacklogChecker reports degraded when more than threshold generated types
// are waiting to be flushed.
type BacklogChecker struct {
	pending   func() int
	threshold int
}

// NewBacklogChecker creates a BacklogChecker over pending.
func NewBacklogChecker(pending func() int, threshold int) *BacklogChecker {
	return &BacklogChecker{pending: pending, threshold: threshold}
}

// Name returns the name of this checker.
func (c *BacklogChecker) Name() string { return "flush_backlog" }

// Check compares the pending count with the threshold.
func (c *BacklogChecker) Check(context.Context) Result {
	n := c.pending()
	details := map[string]any{"pending": n, "threshold": c.threshold}
	if c.threshold > 0 && n > c.threshold {
		return Degraded(fmt.Sprintf("%d generated types not flushed", n)).WithDetails(details)
	}
	return Healthy("flush backlog within bounds").WithDetails(details)
}
