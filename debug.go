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
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// traceEvent identifies a point in a promise's lifecycle for trace logging.
type traceEvent int

const (
	evCreate traceEvent = iota
	evSettleFulfilled
	evSettleRejected
	evScheduleReaction
	evRunReaction
	evAdoptPromise
	evAdoptThenable
	evDriverStep
	evDriverDone
)

func (ev traceEvent) String() string {
	switch ev {
	case evCreate:
		return "create"
	case evSettleFulfilled:
		return "settle_fulfilled"
	case evSettleRejected:
		return "settle_rejected"
	case evScheduleReaction:
		return "schedule_reaction"
	case evRunReaction:
		return "run_reaction"
	case evAdoptPromise:
		return "adopt_promise"
	case evAdoptThenable:
		return "adopt_thenable"
	case evDriverStep:
		return "driver_step"
	case evDriverDone:
		return "driver_done"
	default:
		return "unknown"
	}
}

// traceEvent logs a lifecycle event when tracing is enabled.
func (s *Scheduler) traceEvent(ev traceEvent, name string) {
	if !s.trace {
		return
	}
	s.logger.Debug("promise event",
		zap.Stringer("event", ev),
		zap.String("promise", name),
	)
}

// shortID returns a short random identifier used to name promises when the
// scheduler traces events.
func shortID() string {
	return uuid.NewString()[:8]
}
