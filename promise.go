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
	"fmt"

	"github.com/monotony113/notcallback/internal/status"
)

// Promise is a single-assignment cell for a value not necessarily known when
// the cell is created.
//
// A Promise starts Pending and settles exactly once, to Fulfilled with a
// value or to Rejected with a reason; after that, its state and result never
// change.
// Reactions registered through Then, Catch, and Finally run in registration
// order, deferred on the owning Scheduler's run queue, strictly after the
// registering call returns.
//
// The zero value is not usable; promises are created by New, Resolve,
// Reject, the chain methods, or the combinators.
type Promise[T any] struct {
	sched *Scheduler

	status status.CellStatus

	// holds the settlement outcome.
	// written once, when the status leaves pending; nil before that.
	res Result[T]

	// reactions registered while pending, in registration order.
	// drained onto the run queue, and cleared, at the moment of settlement.
	reactions []reaction[T]

	// exec drives this promise's executor body, if it was created by New.
	exec *driver[T]

	// deps are the upstream promises that Settle must drive before this one:
	// the parent of a chained promise, the inputs of a combinator, or an
	// adopted promise.
	deps []settler

	// driving breaks dependency cycles while Settle walks the chain.
	driving bool

	// name is a diagnostic label; assigned from config or tracing only.
	name string
}

func newPromise[T any](s *Scheduler) *Promise[T] {
	if s == nil {
		s = Default()
	}
	p := &Promise[T]{sched: s}
	if s.trace {
		p.name = shortID()
		s.traceEvent(evCreate, p.name)
	}
	return p
}

// New returns a pending Promise owned by s, wrapping the provided executor
// body.
//
// The body does not start until the promise is driven, through Step or
// Settle.
// It will panic if a nil executor is passed.
func New[T any](s *Scheduler, executor Executor[T]) *Promise[T] {
	if executor == nil {
		panic(nilExecutorPanicMsg)
	}
	p := newPromise[T](s)
	p.exec = newDriver(p, executor)
	return p
}

// Resolve returns a Promise owned by s that is resolved with val.
//
// Like any resolution, val goes through the resolution procedure: if it is
// itself a Promise or a Thenable, the returned Promise adopts its eventual
// outcome instead of fulfilling with it.
func Resolve[T any](s *Scheduler, val T) *Promise[T] {
	p := newPromise[T](s)
	p.status.Lock()
	p.resolve(val)
	return p
}

// Reject returns a Promise owned by s that is rejected with reason.
func Reject[T any](s *Scheduler, reason error) *Promise[T] {
	p := newPromise[T](s)
	p.status.Lock()
	p.reject(reason)
	return p
}

// Named attaches a diagnostic name to the promise, used by String and by
// scheduler tracing, and returns the promise.
func (p *Promise[T]) Named(name string) *Promise[T] {
	p.name = name
	return p
}

// Scheduler returns the Scheduler this promise is bound to.
func (p *Promise[T]) Scheduler() *Scheduler { return p.sched }

// State returns the promise's current settlement state.
func (p *Promise[T]) State() State {
	switch {
	case p.status.IsFulfilled():
		return Fulfilled
	case p.status.IsRejected():
		return Rejected
	default:
		return Pending
	}
}

// Val returns the fulfillment value, or the zero value of T while the
// promise is pending or rejected.
// Together with Err and State it makes *Promise a Result, so a promise can
// be returned from a reaction handler and be adopted.
func (p *Promise[T]) Val() (v T) {
	if p.res != nil {
		return p.res.Val()
	}
	return v
}

// Err returns the rejection reason, or nil while the promise is pending or
// fulfilled.
func (p *Promise[T]) Err() error {
	if p.res != nil {
		return p.res.Err()
	}
	return nil
}

// Res returns the settlement outcome, or nil while the promise is pending.
func (p *Promise[T]) Res() Result[T] {
	if p.State() == Pending {
		return nil
	}
	return p.res
}

// IsPending returns true while the promise hasn't settled.
func (p *Promise[T]) IsPending() bool { return p.State() == Pending }

// IsSettled returns true once the promise has settled, either way.
func (p *Promise[T]) IsSettled() bool { return p.State() != Pending }

// IsFulfilled returns true once the promise has fulfilled.
func (p *Promise[T]) IsFulfilled() bool { return p.State() == Fulfilled }

// IsRejected returns true once the promise has rejected.
func (p *Promise[T]) IsRejected() bool { return p.State() == Rejected }

// IsRejectedDueTo returns true if the promise is rejected and its reason
// matches target, per errors.Is.
func (p *Promise[T]) IsRejectedDueTo(target error) bool {
	return p.IsRejected() && errors.Is(p.res.Err(), target)
}

// Resolve resolves the promise with x, per the resolution procedure: a
// Promise or Thenable value is adopted, anything else fulfills.
//
// Only the first Resolve or Reject call on a promise has effect; later calls
// are silent no-ops, even while an adoption started by the first call is
// still pending.
func (p *Promise[T]) Resolve(x T) {
	if !p.status.Lock() {
		return
	}
	p.resolve(x)
}

// Reject rejects the promise with reason.
// The reason is stored as-is, never unwrapped or chained through thenable
// detection; a nil reason is replaced with ErrNilReason.
//
// Only the first Resolve or Reject call on a promise has effect.
func (p *Promise[T]) Reject(reason error) {
	if !p.status.Lock() {
		return
	}
	p.reject(reason)
}

// Then registers a reaction handler pair against the promise and returns a
// new Promise that settles with the handlers' outcome.
//
// Either handler may be nil: a nil onFulfilled propagates the fulfillment
// value unchanged, and a nil onRejected propagates the rejection reason
// unchanged, to the returned Promise.
// If the invoked handler returns normally, the returned Promise resolves
// with its Result (flattening promises and thenables); if it panics, the
// returned Promise rejects with the panic value.
func (p *Promise[T]) Then(onFulfilled OnFulfilled[T], onRejected OnRejected[T]) *Promise[T] {
	child := p.newChild()
	p.register(reaction[T]{
		onFulfilled: onFulfilled,
		onRejected:  onRejected,
		child:       child,
	})
	return child
}

// Catch registers a rejection handler; it is shorthand for
// Then(nil, onRejected).
func (p *Promise[T]) Catch(onRejected OnRejected[T]) *Promise[T] {
	return p.Then(nil, onRejected)
}

// Finally registers a handler invoked once the promise settles, on both
// outcomes, for its side effect only.
//
// The returned Promise re-produces this promise's outcome unchanged, unless
// onSettled fails (returns a non-nil error, or panics), in which case that
// failure supersedes it as a rejection.
// It will panic if a nil handler is passed.
func (p *Promise[T]) Finally(onSettled OnSettled) *Promise[T] {
	if onSettled == nil {
		panic(nilCallbackPanicMsg)
	}
	child := p.newChild()
	p.register(reaction[T]{
		onSettled: onSettled,
		child:     child,
	})
	return child
}

// newChild creates the pending cell for a promise derived from p.
// Derived cells are born locked: they are settled by the resolution
// machinery only, so stray Resolve/Reject calls on them are no-ops.
func (p *Promise[T]) newChild() *Promise[T] {
	child := newPromise[T](p.sched)
	child.status.Lock()
	child.deps = []settler{p}
	return child
}

// register appends a reaction while pending, or schedules it immediately
// (still deferred, never inline) if the promise has already settled.
func (p *Promise[T]) register(r reaction[T]) {
	p.status.SetHandled()
	if p.State() == Pending {
		p.reactions = append(p.reactions, r)
		return
	}
	p.scheduleReaction(r)
}

// react registers a bare callback pair, with no child cell.
// It is how combinators and promise adoption observe a settlement.
func (p *Promise[T]) react(onFulfilled func(T), onRejected func(error)) {
	p.register(reaction[T]{
		fulfillCb: onFulfilled,
		rejectCb:  onRejected,
	})
}

func (p *Promise[T]) scheduleReaction(r reaction[T]) {
	p.sched.traceEvent(evScheduleReaction, p.name)
	p.sched.schedule(func() {
		p.dispatch(r)
	})
}

// settle transitions the cell out of Pending and drains its reactions onto
// the run queue, in registration order.
// It fails with ErrAlreadySettled if the cell has already settled; the
// public entry points make that unreachable, so a non-nil return indicates
// a bookkeeping bug in this package.
func (p *Promise[T]) settle(res Result[T], rejected bool) error {
	if rejected {
		if !p.status.SetRejected() {
			return ErrAlreadySettled
		}
		p.sched.traceEvent(evSettleRejected, p.name)
	} else {
		if !p.status.SetFulfilled() {
			return ErrAlreadySettled
		}
		p.sched.traceEvent(evSettleFulfilled, p.name)
	}
	if res == nil {
		res = emptyResult[T]{}
	}
	p.res = res

	reactions := p.reactions
	p.reactions = nil
	for _, r := range reactions {
		p.scheduleReaction(r)
	}

	if rejected {
		// IsHandled has a value receiver, so the closure must read through
		// the pointer: a reaction registered after settlement still counts.
		p.sched.watchRejection(
			p.res.Err(),
			func() bool { return p.status.IsHandled() },
			p.status.SetReported,
		)
	}
	return nil
}

// String renders the promise for diagnostics, with its name (if any), state,
// and settled outcome.
func (p *Promise[T]) String() string {
	name := p.name
	if name == "" {
		name = "Promise"
	} else {
		name = "Promise '" + name + "'"
	}
	switch p.State() {
	case Fulfilled:
		return fmt.Sprintf("<%s (fulfilled) => %v>", name, p.res.Val())
	case Rejected:
		return fmt.Sprintf("<%s (rejected) => %v>", name, p.res.Err())
	default:
		return fmt.Sprintf("<%s (pending)>", name)
	}
}
