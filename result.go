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

import "fmt"

// Result is a container for a settlement outcome: a fulfillment value or a
// rejection reason, tagged with the corresponding State.
//
// Reaction handlers return Result values, and AllSettled reports one Result
// per input.
// A *Promise is itself a Result (a non-blocking snapshot of its cell), which
// is what allows a handler to return a promise and have it flattened.
type Result[T any] interface {
	Val() T
	Err() error
	State() State
}

// Empty returns a fulfilled Result holding the zero value of T.
func Empty[T any]() Result[T] {
	return emptyResult[T]{}
}

// Val returns a fulfilled Result holding val.
func Val[T any](val T) Result[T] {
	return valResult[T]{val: val}
}

// Err returns a rejected Result holding err as the reason.
func Err[T any](err error) Result[T] {
	return errResult[T]{err: err}
}

// Adopt returns a Result that, when returned from a reaction handler,
// resolves the child promise to the eventual outcome of th.
//
// It exists for foreign thenables only; a *Promise can be returned from a
// handler directly.
func Adopt[T any](th Thenable[T]) Result[T] {
	return thenableResult[T]{th: th}
}

type emptyResult[T any] struct{}
type valResult[T any] struct{ val T }
type errResult[T any] struct{ err error }
type thenableResult[T any] struct{ th Thenable[T] }

func (r emptyResult[T]) Val() (v T)    { return v }
func (r valResult[T]) Val() (v T)      { return r.val }
func (r errResult[T]) Val() (v T)      { return v }
func (r thenableResult[T]) Val() (v T) { return v }

func (r emptyResult[T]) Err() error    { return nil }
func (r valResult[T]) Err() error      { return nil }
func (r errResult[T]) Err() error      { return r.err }
func (r thenableResult[T]) Err() error { return nil }

func (r emptyResult[T]) State() State    { return Fulfilled }
func (r valResult[T]) State() State      { return Fulfilled }
func (r errResult[T]) State() State      { return Rejected }
func (r thenableResult[T]) State() State { return Pending }

func (r emptyResult[T]) String() string {
	return "fulfilled: <zero>"
}
func (r valResult[T]) String() string {
	return fmt.Sprintf("fulfilled: %v", r.val)
}
func (r errResult[T]) String() string {
	return fmt.Sprintf("rejected: %s", r.err.Error())
}
func (r thenableResult[T]) String() string {
	return fmt.Sprintf("adopting: %v", r.th)
}
