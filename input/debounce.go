// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package input turns raw search box edits into query evaluations.
package input

import (
	"sync"
	"time"
)

// DefaultDelay is the default debounce delay.
const DefaultDelay = 50 * time.Millisecond

// Debouncer delays calls to a function until the input has been quiet for a
// fixed delay. Only the most recent value is ever passed to the function:
// triggering while a call is pending cancels the pending call.
type Debouncer[T any] struct {
	delay time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   *time.Timer
	value   T
	pending bool
	// gen identifies the armed timer. A timer that fires after being
	// replaced sees a different gen and does nothing.
	gen     uint64
	stopped bool
}

// NewDebouncer returns a Debouncer that calls fn after delay. fn is called
// on its own goroutine.
func NewDebouncer[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{
		delay: delay,
		fn:    fn,
	}
}

// Trigger (re)arms the timer with v.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.value = v
	d.pending = true

	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(gen)
	})
}

// Pending reports whether a call is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Flush runs a pending call immediately on the calling goroutine. It does
// nothing if no call is pending.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.runLocked(d.gen)
}

// Stop cancels any pending call. Later triggers are ignored. Safe to call
// multiple times.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	d.runLocked(gen)
}

// runLocked must be called with d.mu held. It releases the lock before calling
// fn.
func (d *Debouncer[T]) runLocked(gen uint64) {
	if d.stopped || !d.pending || gen != d.gen {
		d.mu.Unlock()
		return
	}
	v := d.value
	d.pending = false
	var zero T
	d.value = zero
	d.mu.Unlock()

	d.fn(v)
}
