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

// Op is the descriptor of a pending external operation, yielded by an
// executor body at a suspension point.
//
// The package attaches no meaning to it: the sequence of yielded descriptors
// is the integration point with whatever callback framework drives the
// program, and only that framework needs to know how to act on one.
type Op = any

// Executor is a suspendable executor body.
//
// It receives the yield capability of its driver, together with the resolve
// and reject capabilities of the Promise it settles.
// The body may call yield any number of times, each time suspending with a
// descriptor of an external operation; it resumes when the driver is stepped
// again.
// A yield returning false means the driver was stopped, and the body should
// return.
//
// The body settles its Promise by calling resolve or reject; only the first
// effective call counts.
// A body that returns without settling leaves the Promise pending forever.
// A panic inside the body rejects the Promise with the panic value.
type Executor[T any] func(yield func(Op) bool, resolve func(T), reject func(error))

// Thenable is any value exposing a then(resolve, reject) capability.
//
// It is the interop seam with foreign promise-like values: whenever the
// resolution procedure encounters a Thenable, it adopts the Thenable's
// eventual outcome instead of fulfilling with the value itself.
//
// Then must eventually call at most one of resolve or reject, once.
// Misbehaving implementations that call both, or call one more than once,
// are tolerated: only the first invocation has effect.
type Thenable[T any] interface {
	Then(resolve func(T), reject func(error))
}

// OnFulfilled is a fulfillment reaction handler.
// It receives the fulfillment value and returns the outcome of the child
// promise, which may itself be a Promise or a Thenable to be adopted.
// A nil Result fulfills the child with the zero value of T.
type OnFulfilled[T any] func(val T) Result[T]

// OnRejected is a rejection reaction handler.
// Returning normally "catches" the rejection: the child promise settles with
// the returned Result, which fulfills it unless that Result is itself
// erroneous.
type OnRejected[T any] func(reason error) Result[T]

// OnSettled is a finalization handler, invoked on both outcomes for its side
// effect only.
// It does not see the settlement value; a non-nil error supersedes the
// original outcome.
type OnSettled func() error

// State represents the settlement state of a Promise or a Result.
type State int

const (
	// the order here matters
	Pending State = iota
	Fulfilled
	Rejected
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	default:
		return "<unknown>"
	}
}

// settler is the driving seam between a promise and whatever it depends on:
// upstream cells in a chain, or the inputs of a combinator.
// driveBody runs the dependency's own executor (and, recursively, its
// dependencies') to completion, discarding yielded descriptors.
type settler interface {
	driveBody()
}
