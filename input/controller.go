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

package input

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ianlewis/go-kanjidex"
)

// Evaluator evaluates a raw query.
type Evaluator interface {
	Evaluate(raw string) *kanjidex.Result
}

// Sink receives evaluation results along with the input they were
// evaluated for.
type Sink func(raw string, r *kanjidex.Result)

// Options are options for a Controller.
type Options struct {
	// Delay is the debounce delay. Zero uses DefaultDelay.
	Delay time.Duration

	// Logger receives diagnostics. A nil Logger discards them.
	Logger *slog.Logger
}

// Controller debounces search box edits into evaluations. Each edit cancels
// the evaluation scheduled by the previous edit if it has not run yet.
type Controller struct {
	eval   Evaluator
	sink   Sink
	d      *Debouncer[string]
	logger *slog.Logger

	mu    sync.Mutex
	value string
}

// NewController returns a Controller that evaluates input with eval and
// delivers results to sink.
func NewController(eval Evaluator, sink Sink, options *Options) *Controller {
	if options == nil {
		options = &Options{}
	}
	c := &Controller{
		eval:   eval,
		sink:   sink,
		logger: options.Logger,
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c.d = NewDebouncer(options.Delay, c.evaluate)
	return c
}

// Keystroke records the current contents of the search box and schedules
// an evaluation.
func (c *Controller) Keystroke(value string) {
	c.mu.Lock()
	c.value = value
	c.mu.Unlock()

	c.d.Trigger(value)
}

// Reset clears the search box and schedules an evaluation of the empty
// query, which clears the results.
func (c *Controller) Reset() {
	c.logger.Debug("reset")
	c.Keystroke("")
}

// Value returns the current contents of the search box.
func (c *Controller) Value() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Flush runs a pending evaluation immediately.
func (c *Controller) Flush() {
	c.d.Flush()
}

// Stop cancels any pending evaluation.
func (c *Controller) Stop() {
	c.d.Stop()
}

func (c *Controller) evaluate(raw string) {
	start := time.Now()
	r := c.eval.Evaluate(raw)
	c.logger.Debug("evaluated",
		slog.String("query", raw),
		slog.Int("matches", len(r.Matches)),
		slog.Duration("duration", time.Since(start)),
	)
	if c.sink != nil {
		c.sink(raw, r)
	}
}
