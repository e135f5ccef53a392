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

// All returns a Promise that fulfills with the fulfillment values of all
// input promises, positionally matched to input order, once every input has
// fulfilled.
//
// It rejects with the reason of the first input to reject; the eventual
// outcomes of the remaining inputs are then ignored.
// With no inputs it fulfills immediately with an empty slice.
func All[T any](s *Scheduler, promises ...*Promise[T]) *Promise[[]T] {
	child := newCombined[[]T](s, promises)
	if len(promises) == 0 {
		child.fulfill([]T{})
		return child
	}

	vals := make([]T, len(promises))
	remaining := len(promises)
	for i, p := range promises {
		p.react(
			func(v T) {
				if child.State() != Pending {
					return
				}
				vals[i] = v
				if remaining--; remaining == 0 {
					child.fulfill(vals)
				}
			},
			func(reason error) {
				if child.State() != Pending {
					return
				}
				child.reject(reason)
			},
		)
	}
	return child
}

// Race returns a Promise that settles, either way, with the outcome of
// whichever input settles first; later settlements are ignored entirely.
//
// With no inputs the returned Promise never settles.
func Race[T any](s *Scheduler, promises ...*Promise[T]) *Promise[T] {
	child := newCombined[T](s, promises)
	for _, p := range promises {
		p.react(
			func(v T) {
				if child.State() != Pending {
					return
				}
				child.fulfill(v)
			},
			func(reason error) {
				if child.State() != Pending {
					return
				}
				child.reject(reason)
			},
		)
	}
	return child
}

// AllSettled returns a Promise that fulfills, once every input has settled,
// with one outcome descriptor per input, in input order.
// It never rejects.
//
// With no inputs it fulfills immediately with an empty slice.
func AllSettled[T any](s *Scheduler, promises ...*Promise[T]) *Promise[[]Result[T]] {
	child := newCombined[[]Result[T]](s, promises)
	if len(promises) == 0 {
		child.fulfill([]Result[T]{})
		return child
	}

	outcomes := make([]Result[T], len(promises))
	remaining := len(promises)
	for i, p := range promises {
		p := p
		record := func() {
			outcomes[i] = p.res
			if remaining--; remaining == 0 {
				child.fulfill(outcomes)
			}
		}
		p.react(
			func(T) { record() },
			func(error) { record() },
		)
	}
	return child
}

// Any returns a Promise that fulfills with the value of the first input to
// fulfill, ignoring rejections along the way.
//
// It rejects only once every input has rejected, with an *AggregateError
// carrying each input's reason in input order.
// With no inputs it rejects immediately with an empty aggregate.
func Any[T any](s *Scheduler, promises ...*Promise[T]) *Promise[T] {
	child := newCombined[T](s, promises)
	if len(promises) == 0 {
		child.reject(&AggregateError{Errors: []error{}})
		return child
	}

	reasons := make([]error, len(promises))
	remaining := len(promises)
	for i, p := range promises {
		p.react(
			func(v T) {
				if child.State() != Pending {
					return
				}
				child.fulfill(v)
			},
			func(reason error) {
				if child.State() != Pending {
					return
				}
				reasons[i] = reason
				if remaining--; remaining == 0 {
					child.reject(&AggregateError{Errors: reasons})
				}
			},
		)
	}
	return child
}

// newCombined creates the locked child cell of a combinator, depending on
// every input so Settle can drive them.
func newCombined[C, T any](s *Scheduler, inputs []*Promise[T]) *Promise[C] {
	child := newPromise[C](s)
	child.status.Lock()
	if len(inputs) != 0 {
		deps := make([]settler, len(inputs))
		for i, p := range inputs {
			deps[i] = p
		}
		child.deps = deps
	}
	return child
}
