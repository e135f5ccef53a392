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

// reaction is one registered observer of a cell's settlement.
//
// It comes in three kinds:
// a handler pair from Then/Catch, paired with the child cell its outcome
// feeds; a finalizer from Finally, also paired with a child; or a bare
// callback pair from react, with no child, used by combinators and promise
// adoption.
type reaction[T any] struct {
	onFulfilled OnFulfilled[T]
	onRejected  OnRejected[T]
	onSettled   OnSettled
	child       *Promise[T]

	fulfillCb func(T)
	rejectCb  func(error)
}

// dispatch runs one reaction against the settled cell p.
// It is only ever invoked as a run-queue job, strictly after the settling
// (or registering) call returned.
func (p *Promise[T]) dispatch(r reaction[T]) {
	p.sched.traceEvent(evRunReaction, p.name)

	res := p.res
	rejected := p.status.IsRejected()

	// bare subscription: no child cell to feed.
	if r.fulfillCb != nil || r.rejectCb != nil {
		if rejected {
			if r.rejectCb != nil {
				r.rejectCb(res.Err())
			}
		} else if r.fulfillCb != nil {
			r.fulfillCb(res.Val())
		}
		return
	}

	// finalizer: side effect only, then re-produce the parent outcome,
	// unless the finalizer's own failure supersedes it.
	if r.onSettled != nil {
		if err := runSettled(r.onSettled); err != nil {
			r.child.reject(err)
			return
		}
		_ = r.child.settle(res, rejected)
		return
	}

	if rejected {
		if r.onRejected == nil {
			// propagate the rejection unchanged; this is how uncaught
			// rejections bubble down a chain.
			r.child.reject(res.Err())
			return
		}
		out, err := runRejected(r.onRejected, res.Err())
		if err != nil {
			r.child.reject(err)
			return
		}
		// the rejection was caught: a normal return fulfills the child.
		r.child.resolveResult(out)
		return
	}

	if r.onFulfilled == nil {
		r.child.resolve(res.Val())
		return
	}
	out, err := runFulfilled(r.onFulfilled, res.Val())
	if err != nil {
		r.child.reject(err)
		return
	}
	r.child.resolveResult(out)
}

// runFulfilled invokes a fulfillment handler, converting a panic into a
// rejection reason so it never escapes to the driver or corrupts sibling
// reactions.
func runFulfilled[T any](cb OnFulfilled[T], val T) (res Result[T], err error) {
	defer func() {
		if v := recover(); v != nil {
			res, err = nil, panicToError(v)
		}
	}()
	return cb(val), nil
}

func runRejected[T any](cb OnRejected[T], reason error) (res Result[T], err error) {
	defer func() {
		if v := recover(); v != nil {
			res, err = nil, panicToError(v)
		}
	}()
	return cb(reason), nil
}

func runSettled(cb OnSettled) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = panicToError(v)
		}
	}()
	return cb()
}
