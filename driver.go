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

import "iter"

// driver steps an executor body between its suspension points.
//
// The body runs on a pull iterator: it makes no progress except inside a
// step call, and each step returns either the descriptor the body suspended
// with, or ok=false once the body has completed.
type driver[T any] struct {
	p    *Promise[T]
	next func() (Op, bool)
	stop func()
	done bool
}

func newDriver[T any](p *Promise[T], body Executor[T]) *driver[T] {
	d := &driver[T]{p: p}
	seq := iter.Seq[Op](func(yield func(Op) bool) {
		body(yield, p.Resolve, p.Reject)
	})
	d.next, d.stop = iter.Pull(seq)
	return d
}

// step advances the body to its next suspension point.
// A panic inside the body rejects the owning promise with the panic value
// and terminates the body.
func (d *driver[T]) step() (op Op, ok bool) {
	if d.done {
		return nil, false
	}
	defer func() {
		if v := recover(); v != nil {
			d.done = true
			d.stop()
			d.p.Reject(panicToError(v))
			op, ok = nil, false
		}
	}()
	d.p.sched.traceEvent(evDriverStep, d.p.name)
	op, ok = d.next()
	if !ok {
		d.done = true
		d.p.sched.traceEvent(evDriverDone, d.p.name)
	}
	return op, ok
}

// exhaust runs the body to completion, discarding descriptors.
func (d *driver[T]) exhaust() {
	for {
		if _, ok := d.step(); !ok {
			return
		}
	}
}

// Step drains the run queue, then advances this promise's executor body to
// its next suspension point, returning the operation descriptor the body
// yielded.
//
// It returns ok=false once the body has completed (or if the promise has no
// executor body of its own).
// The caller (the external collaborator) is expected to act on the
// descriptor and eventually call the resolve/reject capabilities the body
// handed out, then step again.
func (p *Promise[T]) Step() (op Op, ok bool) {
	p.sched.Drain()
	if p.exec == nil || p.exec.done {
		return nil, false
	}
	op, ok = p.exec.step()
	if !ok {
		// the body completed; run the reactions its settlement scheduled.
		p.sched.Drain()
	}
	return op, ok
}

// Settle drives this promise as far as cooperative execution can take it:
// it runs the executor bodies of every upstream dependency (oldest first)
// and then its own to completion, ignoring yielded descriptors, and drains
// the run queue.
//
// It returns the promise itself, for inspection.
// A promise whose settlement depends on an external operation is still
// pending after Settle; a promise whose chain is fully synchronous is
// settled.
func (p *Promise[T]) Settle() *Promise[T] {
	p.driveBody()
	p.sched.Drain()
	return p
}

// driveBody implements settler.
// Dependencies are driven by index: draining the queue can adopt a new
// promise mid-loop, and the appended dependency must be driven too.
func (p *Promise[T]) driveBody() {
	if p.driving || p.State() != Pending {
		return
	}
	p.driving = true
	defer func() { p.driving = false }()

	for i := 0; i < len(p.deps); i++ {
		p.deps[i].driveBody()
		p.sched.Drain()
		// a first-settlement-wins promise may already be decided; stop
		// driving the remaining dependencies early.
		if p.State() != Pending {
			return
		}
	}
	if p.exec != nil {
		p.exec.exhaust()
	}
}
