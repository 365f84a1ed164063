package formatx

import (
	"sync"
	"time"
)

const DefaultDebounceWait = 300 * time.Millisecond

// Debounce returns call, which schedules fn with the latest argument after
// wait has passed without another call, and stop, which drops any pending
// invocation. wait <= 0 uses DefaultDebounceWait.
func Debounce[T any](fn func(T), wait time.Duration) (call func(T), stop func()) {
	if wait <= 0 {
		wait = DefaultDebounceWait
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
	)

	call = func(arg T) {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(wait, func() { fn(arg) })
	}

	stop = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
			timer = nil
		}
	}

	return call, stop
}
