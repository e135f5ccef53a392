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
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSchedulerQueue(t *testing.T) {
	t.Run("Step runs one job at a time", func(t *testing.T) {
		s := NewScheduler()
		var log []int
		s.schedule(func() { log = append(log, 1) })
		s.schedule(func() { log = append(log, 2) })
		require.False(t, s.Idle())

		require.True(t, s.Step())
		require.Equal(t, []int{1}, log)
		require.True(t, s.Step())
		require.Equal(t, []int{1, 2}, log)
		require.False(t, s.Step())
		require.True(t, s.Idle())
	})

	t.Run("Drain runs jobs enqueued by jobs", func(t *testing.T) {
		s := NewScheduler()
		var log []int
		s.schedule(func() {
			log = append(log, 1)
			s.schedule(func() { log = append(log, 2) })
		})
		n := s.Drain()
		require.Equal(t, 2, n)
		require.Equal(t, []int{1, 2}, log)
	})

	t.Run("Drain is not re-entrant", func(t *testing.T) {
		s := NewScheduler()
		var inner int
		s.schedule(func() {
			inner = s.Drain()
		})
		n := s.Drain()
		require.Equal(t, 1, n)
		require.Equal(t, 0, inner, "a drain from inside a job must yield to the outer one")
	})

	t.Run("handlers never run inline within a chain", func(t *testing.T) {
		s := NewScheduler()
		depth := 0
		inDrain := false
		p := Resolve(s, 0)
		for range 5 {
			p = p.Then(func(v int) Result[int] {
				require.True(t, inDrain, "handler ran outside the drain")
				depth++
				return Val(v + 1)
			}, nil)
		}
		inDrain = true
		s.Drain()
		inDrain = false
		require.Equal(t, 5, depth)
		require.Equal(t, 5, p.Val())
	})
}

func TestUncaughtRejections(t *testing.T) {
	t.Run("reported once per promise after a drain", func(t *testing.T) {
		var caught []error
		s := NewScheduler(&SchedulerConfig{
			UncaughtRejectionHandler: func(err error) { caught = append(caught, err) },
		})
		Reject[int](s, errExpected)
		s.Drain()
		require.Len(t, caught, 1)

		var ur *UncaughtRejectionError
		require.ErrorAs(t, caught[0], &ur)
		require.ErrorIs(t, caught[0], errExpected)

		s.Drain()
		require.Len(t, caught, 1, "a rejection is reported at most once")
	})

	t.Run("a registered reaction suppresses the report", func(t *testing.T) {
		var caught []error
		s := NewScheduler(&SchedulerConfig{
			UncaughtRejectionHandler: func(err error) { caught = append(caught, err) },
		})
		var seen error
		Reject[int](s, errExpected).Catch(func(reason error) Result[int] {
			seen = reason
			return nil
		})
		s.Drain()
		require.Empty(t, caught)
		require.ErrorIs(t, seen, errExpected)
	})

	t.Run("a rejection propagated to an unhandled child is reported", func(t *testing.T) {
		var caught []error
		s := NewScheduler(&SchedulerConfig{
			UncaughtRejectionHandler: func(err error) { caught = append(caught, err) },
		})
		Reject[int](s, errExpected).Then(func(int) Result[int] { return nil }, nil)
		s.Drain()
		require.Len(t, caught, 1, "the tail of the chain is the unhandled promise")
		require.ErrorIs(t, caught[0], errExpected)
	})

	t.Run("a late reaction still receives the reported rejection", func(t *testing.T) {
		var caught []error
		s := NewScheduler(&SchedulerConfig{
			UncaughtRejectionHandler: func(err error) { caught = append(caught, err) },
		})
		p := Reject[int](s, errExpected)
		s.Drain()
		require.Len(t, caught, 1)

		var seen error
		p.Catch(func(reason error) Result[int] {
			seen = reason
			return nil
		})
		s.Drain()
		require.ErrorIs(t, seen, errExpected)
	})

	t.Run("a rejection raised by the handler is reported on the next drain", func(t *testing.T) {
		secondary := errors.New("secondary failure")
		var caught []error
		var s *Scheduler
		s = NewScheduler(&SchedulerConfig{
			UncaughtRejectionHandler: func(err error) {
				caught = append(caught, err)
				if len(caught) == 1 {
					Reject[int](s, secondary)
				}
			},
		})
		Reject[int](s, errExpected)
		s.Drain()
		require.Len(t, caught, 1)
		require.ErrorIs(t, caught[0], errExpected)

		s.Drain()
		require.Len(t, caught, 2)
		require.ErrorIs(t, caught[1], secondary)
	})

	t.Run("without a handler the rejection is logged", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		s := NewScheduler(&SchedulerConfig{Logger: zap.New(core)})
		Reject[int](s, errExpected)
		s.Drain()
		require.Equal(t, 1, logs.FilterMessage("uncaught promise rejection").Len())
	})
}

func TestTracing(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := NewScheduler(&SchedulerConfig{Logger: zap.New(core), Trace: true})

	p := Resolve(s, 1).Then(func(v int) Result[int] { return Val(v + 1) }, nil)
	s.Drain()
	require.Equal(t, 2, p.Val())

	require.NotEmpty(t, p.name, "tracing names every promise")
	events := logs.FilterMessage("promise event")
	require.NotZero(t, events.Len())

	seen := map[string]bool{}
	for _, e := range events.All() {
		seen[e.ContextMap()["event"].(string)] = true
	}
	require.True(t, seen[evCreate.String()])
	require.True(t, seen[evSettleFulfilled.String()])
	require.True(t, seen[evScheduleReaction.String()])
	require.True(t, seen[evRunReaction.String()])
}

func TestDefaultScheduler(t *testing.T) {
	require.NotNil(t, Default())
	p := Resolve[string](nil, "ok").Then(func(v string) Result[string] {
		return Val(v + "!")
	}, nil)
	Default().Drain()
	require.Equal(t, "ok!", p.Val())
}
