// Package cleanup collects process-exit hooks such as closing the log file
// and the Gemini client.
package cleanup

import (
	"errors"
	"fmt"
	"sync"
)

var (
	mu    sync.Mutex
	hooks []func() error
)

// Register adds a hook. Hooks run in reverse registration order.
func Register(hook func() error) {
	if hook == nil {
		return
	}
	mu.Lock()
	hooks = append(hooks, hook)
	mu.Unlock()
}

// RunAll runs and forgets every registered hook. A failing hook does not stop
// the rest; all failures come back joined.
func RunAll() error {
	mu.Lock()
	pending := hooks
	hooks = nil
	mu.Unlock()

	var errs []error
	for i := len(pending) - 1; i >= 0; i-- {
		if err := pending[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}
	return nil
}
