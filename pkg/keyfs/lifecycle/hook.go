// Package lifecycle runs a shutdown callback exactly once, synchronously,
// before the process is allowed to terminate. Asynchronous cleanup at
// process-exit time is unreliable and out of scope.
package lifecycle

import (
	"os"
	"os/signal"
	"sync"
)

// Hook wraps a cleanup function so it runs at most once no matter how many
// times it is triggered (explicit Run, Close on the owner, or a signal).
type Hook struct {
	once    sync.Once
	cleanup func()
}

// NewHook creates a hook around cleanup.
func NewHook(cleanup func()) *Hook {
	return &Hook{cleanup: cleanup}
}

// Run invokes the cleanup exactly once; later calls are no-ops.
func (h *Hook) Run() {
	h.once.Do(h.cleanup)
}

// HandleSignals installs a handler that runs the hook synchronously on the
// first of the given signals and then exits the process. The returned stop
// function uninstalls the handler without running the hook.
func (h *Hook) HandleSignals(sigs ...os.Signal) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)
	go func() {
		if _, ok := <-ch; !ok {
			return
		}
		h.Run()
		os.Exit(1)
	}()
	return func() {
		signal.Stop(ch)
		close(ch)
	}
}
