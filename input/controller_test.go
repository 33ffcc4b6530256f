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

package input_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-kanjidex"
	"github.com/ianlewis/go-kanjidex/input"
	"github.com/ianlewis/go-kanjidex/internal/testutil"
	"github.com/ianlewis/go-kanjidex/query"
)

type result struct {
	raw string
	r   *kanjidex.Result
}

func keys(r *kanjidex.Result) []string {
	var keys []string
	for _, m := range r.Matches {
		keys = append(keys, m.Key)
	}
	return keys
}

type countingEvaluator struct {
	d     *kanjidex.Dictionary
	count atomic.Int32
}

func (e *countingEvaluator) Evaluate(raw string) *kanjidex.Result {
	e.count.Add(1)
	return e.d.Evaluate(raw)
}

func newController(t *testing.T, delay time.Duration) (*input.Controller, *countingEvaluator, chan result) {
	t.Helper()

	eval := &countingEvaluator{d: kanjidex.New(testutil.Store(), nil)}
	ch := make(chan result, 16)
	c := input.NewController(eval, func(raw string, r *kanjidex.Result) {
		ch <- result{raw: raw, r: r}
	}, &input.Options{Delay: delay})
	t.Cleanup(c.Stop)
	return c, eval, ch
}

func TestController_coalesce(t *testing.T) {
	t.Parallel()

	c, eval, ch := newController(t, 50*time.Millisecond)

	for _, v := range []string{"w", "wa", "wat", "wate", "water"} {
		c.Keystroke(v)
	}
	if want, got := "water", c.Value(); want != got {
		t.Fatalf("Value: want: %q, got: %q", want, got)
	}

	select {
	case got := <-ch:
		if want := "water"; want != got.raw {
			t.Fatalf("evaluated: want: %q, got: %q", want, got.raw)
		}
		if diff := cmp.Diff([]string{"水"}, keys(got.r)); diff != "" {
			t.Fatalf("Matches (-want, +got):\n%s", diff)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for evaluation")
	}

	time.Sleep(150 * time.Millisecond)
	if len(ch) != 0 {
		t.Fatalf("want no further evaluations, got: %d", len(ch))
	}
	if want, got := int32(1), eval.count.Load(); want != got {
		t.Fatalf("evaluations: want: %d, got: %d", want, got)
	}
}

func TestController_reset(t *testing.T) {
	t.Parallel()

	c, _, ch := newController(t, time.Hour)

	c.Keystroke("1-100")
	c.Flush()
	got := <-ch
	if len(got.r.Matches) == 0 {
		t.Fatalf("Keystroke(%q): want matches, got none", "1-100")
	}

	c.Reset()
	if want, got := "", c.Value(); want != got {
		t.Fatalf("Value: want: %q, got: %q", want, got)
	}
	c.Flush()

	got = <-ch
	if want := ""; want != got.raw {
		t.Fatalf("evaluated: want: %q, got: %q", want, got.raw)
	}
	if diff := cmp.Diff(query.Query(query.Empty{}), got.r.Query); diff != "" {
		t.Fatalf("Query (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string(nil), keys(got.r)); diff != "" {
		t.Fatalf("Matches (-want, +got):\n%s", diff)
	}
}

func TestController_stop(t *testing.T) {
	t.Parallel()

	c, eval, ch := newController(t, 20*time.Millisecond)

	c.Keystroke("fire")
	c.Stop()

	select {
	case got := <-ch:
		t.Fatalf("unexpected evaluation of %q", got.raw)
	case <-time.After(100 * time.Millisecond):
	}
	if want, got := int32(0), eval.count.Load(); want != got {
		t.Fatalf("evaluations: want: %d, got: %d", want, got)
	}
}
