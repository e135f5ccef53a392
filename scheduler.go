// Copyright 2025 Tony Wu(monotony113)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package promise

import (
	"go.uber.org/zap"

	"github.com/monotony113/notcallback/internal/queue"
)

// SchedulerConfig carries the optional knobs of a Scheduler.
type SchedulerConfig struct {
	// UncaughtRejectionHandler is invoked, once per promise, when a drain
	// leaves a rejected promise that never had any reaction registered
	// against it.
	// The handler receives an *UncaughtRejectionError wrapping the reason.
	// If nil, the rejection is logged at warn level instead.
	UncaughtRejectionHandler func(err error)

	// Logger receives the uncaught-rejection diagnostics and, when Trace is
	// set, the per-event trace of the resolution machinery.
	// If nil, a no-op logger is used.
	Logger *zap.Logger

	// Trace enables debug-level tracing of every scheduling and settlement
	// event, and assigns each promise a short ID to correlate them.
	Trace bool
}

// Scheduler owns the run queue that reactions are dispatched on.
//
// It is a single-threaded cooperative queue: settling a promise appends
// reaction jobs, and nothing runs until the queue is drained, either
// explicitly (Drain, Step) or by an execution driver between suspension
// points.
// Every promise is bound to exactly one Scheduler for its lifetime.
type Scheduler struct {
	q        queue.Queue[func()]
	draining bool

	uncaughtRejectionHandler func(err error)
	logger                   *zap.Logger
	trace                    bool

	// rejected promises to check for uncaught rejections after each drain.
	// entries are closures so the scheduler doesn't need to know about the
	// cells' type parameters.
	watched []watchedRejection
}

type watchedRejection struct {
	reason   error
	handled  func() bool
	reported func() bool // marks reported; false if it already was
}

// NewScheduler returns a new Scheduler.
func NewScheduler(c ...*SchedulerConfig) *Scheduler {
	s := &Scheduler{}

	if len(c) != 0 && c[0] != nil {
		if cb := c[0].UncaughtRejectionHandler; cb != nil {
			s.uncaughtRejectionHandler = cb
		}
		s.logger = c[0].Logger
		s.trace = c[0].Trace
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	return s
}

// schedule appends one unit of work at the tail of the run queue.
func (s *Scheduler) schedule(job func()) {
	s.q.Push(job)
}

// Idle returns true if the run queue is empty.
func (s *Scheduler) Idle() bool { return s.q.Empty() }

// Step runs the job at the head of the run queue, if any.
// It returns false if the queue was empty.
func (s *Scheduler) Step() bool {
	job, ok := s.q.Pop()
	if !ok {
		return false
	}
	job()
	return true
}

// Drain runs queued jobs until the queue is idle, including jobs enqueued by
// the jobs themselves, and returns the number of jobs run.
//
// Drain is not re-entrant: a call made from inside a running job returns 0
// immediately and lets the outer drain continue, preserving run-to-completion
// ordering.
// After the queue empties, still-unhandled rejections are reported.
func (s *Scheduler) Drain() int {
	if s.draining {
		return 0
	}
	s.draining = true
	defer func() { s.draining = false }()

	n := 0
	for s.Step() {
		n++
	}
	s.reportUncaught()
	return n
}

// watchRejection records a settled-rejected promise for the post-drain
// uncaught-rejection check.
func (s *Scheduler) watchRejection(reason error, handled func() bool, reported func() bool) {
	s.watched = append(s.watched, watchedRejection{
		reason:   reason,
		handled:  handled,
		reported: reported,
	})
}

func (s *Scheduler) reportUncaught() {
	if len(s.watched) == 0 {
		return
	}
	// the handler may itself reject a promise, appending to s.watched;
	// swap the slice out first so those entries survive for the next drain.
	watched := s.watched
	s.watched = nil
	for _, w := range watched {
		if w.handled() {
			continue
		}
		if !w.reported() {
			continue
		}
		err := newUncaughtRejection(w.reason)
		if s.uncaughtRejectionHandler != nil {
			s.uncaughtRejectionHandler(err)
		} else {
			s.logger.Warn("uncaught promise rejection", zap.Error(err))
		}
	}
}
