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
	"fmt"
	"strings"
)

var (
	// ErrAlreadySettled is returned by the internal settle transition when the
	// cell has already left Pending.
	// The idempotence guards on Resolve and Reject make it unreachable
	// through the public API.
	ErrAlreadySettled = fmt.Errorf("promise: cannot change the state of an already settled promise")

	// ErrChainCycle is the rejection reason of a promise that was asked to
	// resolve to itself, directly or through a chain of adoptions.
	ErrChainCycle = fmt.Errorf("promise: chaining cycle detected")

	// ErrNilReason substitutes a nil error passed to Reject, so that a
	// rejected promise always carries a non-nil reason.
	ErrNilReason = fmt.Errorf("promise: rejected with nil reason")
)

// PanicError wraps a non-error value raised by a panicking handler or
// executor body, so it can travel down a chain as a rejection reason.
// Handlers that panic with an error value reject with that error directly.
type PanicError struct {
	V any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("promise: handler panicked: %v", e.V)
}

// AggregateError is the rejection reason produced by Any when every input
// promise has rejected.
// Errors holds each input's reason, in input order; it is empty when Any was
// called with no inputs.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "promise: all promises were rejected"
	}
	b := strings.Builder{}
	b.WriteString("promise: all promises were rejected: ")
	for i, err := range e.Errors {
		if i != 0 {
			b.WriteString("; ")
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *AggregateError) Unwrap() []error { return e.Errors }

// UncaughtRejectionError wraps a rejection reason that reached the end of a
// drain without any reaction ever registered against its promise.
// It is the value handed to a Scheduler's UncaughtRejectionHandler.
type UncaughtRejectionError struct {
	err error
}

func (e *UncaughtRejectionError) Error() string {
	return fmt.Sprintf("promise: uncaught rejection: %s", e.err)
}

func (e *UncaughtRejectionError) Unwrap() error { return e.err }

func newUncaughtRejection(err error) *UncaughtRejectionError {
	return &UncaughtRejectionError{err: err}
}

// panicToError converts a recovered panic value into a rejection reason.
func panicToError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return &PanicError{V: v}
}
