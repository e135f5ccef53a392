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

// Package queue implements the FIFO run queue of the scheduler.
package queue

// Queue is an unbounded FIFO queue backed by a growable ring buffer.
//
// The zero value is an empty queue, ready for use.
// It is not safe for concurrent use; the scheduler owns it exclusively.
type Queue[T any] struct {
	buf  []T
	head int
	len  int
}

const minCap = 8

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int { return q.len }

// Empty returns true if no elements are queued.
func (q *Queue[T]) Empty() bool { return q.len == 0 }

// Push appends v at the tail of the queue.
func (q *Queue[T]) Push(v T) {
	if q.len == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.len)%len(q.buf)] = v
	q.len++
}

// Pop removes and returns the element at the head of the queue.
// It returns the zero value and false if the queue is empty.
func (q *Queue[T]) Pop() (v T, ok bool) {
	if q.len == 0 {
		return v, false
	}
	var zero T
	v = q.buf[q.head]
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.len--
	return v, true
}

func (q *Queue[T]) grow() {
	newCap := len(q.buf) * 2
	if newCap < minCap {
		newCap = minCap
	}
	buf := make([]T, newCap)
	for i := 0; i < q.len; i++ {
		buf[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = buf
	q.head = 0
}
