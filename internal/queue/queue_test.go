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

package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValue(t *testing.T) {
	var q Queue[int]
	assert.True(t, q.Empty())
	assert.Equal(t, 0, q.Len())

	_, ok := q.Pop()
	assert.False(t, ok)
}

func TestFIFOOrder(t *testing.T) {
	var q Queue[int]
	for i := 0; i < 100; i++ {
		q.Push(i)
	}
	require.Equal(t, 100, q.Len())

	for i := 0; i < 100; i++ {
		v, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	assert.True(t, q.Empty())
}

func TestInterleavedWrap(t *testing.T) {
	// exercise the ring buffer wrap-around by keeping the queue short while
	// pushing through many elements.
	var q Queue[int]
	next := 0
	for i := 0; i < 1000; i++ {
		q.Push(i)
		if i%3 == 0 {
			continue
		}
		v, ok := q.Pop()
		require.True(t, ok)
		require.Equal(t, next, v)
		next++
	}
	for {
		v, ok := q.Pop()
		if !ok {
			break
		}
		require.Equal(t, next, v)
		next++
	}
	assert.Equal(t, 1000, next)
}
