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

// panic messages
const (
	nilCallbackPanicMsg = "promise: the provided callback is nil"
	nilExecutorPanicMsg = "promise: the provided executor is nil"
)

// resolve runs the resolution procedure (Promise/A+ §2.3) on a cell that has
// accepted x as its resolution.
//
// The caller must hold the cell's resolution lock: either the public Resolve
// just acquired it, or x arrived through a one-shot adoption callback of a
// cell that is already locked.
func (p *Promise[T]) resolve(x T) {
	// a promise cannot resolve to itself.
	if q, ok := any(x).(*Promise[T]); ok {
		if q == p {
			p.reject(ErrChainCycle)
			return
		}
		p.adoptPromise(q)
		return
	}
	if th, ok := any(x).(Thenable[T]); ok {
		p.adoptThenable(th)
		return
	}
	p.fulfill(x)
}

// resolveResult resolves the cell to the Result returned from a reaction
// handler.
// A nil Result fulfills with the zero value, an erroneous one rejects, a
// promise or thenable one adopts, and anything else fulfills with its value.
func (p *Promise[T]) resolveResult(res Result[T]) {
	if res == nil {
		p.fulfillEmpty()
		return
	}
	switch r := res.(type) {
	case *Promise[T]:
		if r == p {
			p.reject(ErrChainCycle)
			return
		}
		p.adoptPromise(r)
	case thenableResult[T]:
		p.adoptThenable(r.th)
	default:
		if err := res.Err(); err != nil {
			p.reject(err)
			return
		}
		p.fulfill(res.Val())
	}
}

// adoptPromise links the cell to another promise of this package: the cell
// settles when q does, with the same outcome.
// The adopted value still re-enters the resolution procedure, so a promise
// fulfilled with yet another thenable keeps flattening.
func (p *Promise[T]) adoptPromise(q *Promise[T]) {
	p.sched.traceEvent(evAdoptPromise, p.name)
	// the adopted promise becomes a dependency, so driving this cell also
	// drives the executor the adoption is waiting on.
	p.deps = append(p.deps, q)
	q.react(p.resolve, p.reject)
}

// adoptThenable invokes the foreign thenable's Then capability with two
// fresh one-shot callbacks bound to this cell.
//
// Only the first callback to fire has effect, which guards against thenables
// that call both callbacks, or one of them more than once.
// If Then itself panics before any callback fired, the cell rejects with
// that failure.
func (p *Promise[T]) adoptThenable(th Thenable[T]) {
	p.sched.traceEvent(evAdoptThenable, p.name)

	adopted := false
	resolve := func(v T) {
		if adopted {
			return
		}
		adopted = true
		p.resolve(v)
	}
	reject := func(reason error) {
		if adopted {
			return
		}
		adopted = true
		p.reject(reason)
	}

	defer func() {
		if v := recover(); v != nil && !adopted {
			adopted = true
			p.reject(panicToError(v))
		}
	}()
	th.Then(resolve, reject)
}

// reject settles the cell as rejected with reason, directly: rejection
// reasons are never unwrapped or chained through thenable detection.
func (p *Promise[T]) reject(reason error) {
	if reason == nil {
		reason = ErrNilReason
	}
	// settling twice is benign here: adoption callbacks and combinator
	// reactions are already guarded, so a lost race means the outcome is
	// simply already decided.
	_ = p.settle(errResult[T]{err: reason}, true)
}

// fulfill settles the cell as fulfilled with v, bypassing thenable
// detection; v is known to be a plain value.
func (p *Promise[T]) fulfill(v T) {
	_ = p.settle(valResult[T]{val: v}, false)
}

// fulfillEmpty settles the cell as fulfilled with the zero value of T.
func (p *Promise[T]) fulfillEmpty() {
	_ = p.settle(emptyResult[T]{}, false)
}
