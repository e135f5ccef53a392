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

// Package promise implements the Promise/A+ resolution model on top of a
// caller-driven, single-threaded cooperative scheduler.
//
// It restructures callback-driven asynchronous code into linear, composable
// chains, without owning an event loop.
// The package supplies only the state machine and the resolution algorithm;
// the actual asynchronous work (I/O, timers, callback registration) is always
// performed by an external collaborator, which eventually calls back into
// Resolve or Reject.
//
// A Promise is in one of three states, and it can be in only one of them,
// at any time:
// Pending: the computation that corresponds to this Promise has not settled.
// Fulfilled: the computation finished and produced a value.
// Rejected: the computation failed and produced a reason (an error).
//
// Once a Promise leaves Pending, its state and result never change.
// Calling Resolve or Reject on a Promise that has already accepted a
// settlement is a silent no-op, so multiple external callback contexts may
// race to settle the same Promise safely: the first call wins.
//
// # Scheduling
//
// All handler invocation is deferred.
// Settling a Promise only appends reaction jobs to the run queue of its
// Scheduler; nothing runs inside Resolve, Reject, or Then.
// The queue is drained cooperatively, either explicitly through
// Scheduler.Drain, or by the execution driver (Promise.Step and
// Promise.Settle) between suspension points of an executor body.
// There is no internal goroutine and no internal parallelism: the package
// relies on the single-threaded, run-to-completion discipline of whoever
// drives it.
//
// # Executors
//
// An executor body is a suspendable sequence of steps, not a synchronous
// function.
// It is written as a range-func generator: it may yield opaque operation
// descriptors (Op values) at the points where it needs an external
// asynchronous operation to occur, and it settles its Promise through the
// resolve and reject capabilities it is given:
//
//	p := promise.New(s, func(yield func(promise.Op) bool, resolve func(int), reject func(error)) {
//		if !yield(registerTimer{after: time.Second}) {
//			return
//		}
//		resolve(42)
//	})
//
// The driver hands each yielded descriptor to the external framework and
// does not resume the body until asked to (Promise.Step).
// The package places no constraint on a descriptor's shape beyond "the
// framework knows how to act on it".
//
// # Chaining
//
// Then registers a reaction handler pair and returns a new Promise that
// settles with the handler's outcome.
// Either handler may be nil, in which case the corresponding settlement
// propagates unchanged, which is how uncaught rejections bubble down a chain
// until a Catch intercepts them.
// A handler that returns a Promise, or any value implementing Thenable, has
// that value's eventual outcome adopted (flattened) into the returned
// Promise.
// A handler that panics rejects the returned Promise with the panic value,
// leaving the parent Promise and its sibling reactions untouched.
//
// # Combinators
//
// All, Race, AllSettled, and Any compose multiple promises into one,
// following their JavaScript namesakes: All collects positional values and
// fails fast, Race adopts the first settlement, AllSettled never rejects,
// and Any rejects only when every input has rejected, with an
// *AggregateError carrying every reason in input order.
package promise
