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

package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValue(t *testing.T) {
	var s CellStatus
	assert.True(t, s.IsPending())
	assert.False(t, s.IsFulfilled())
	assert.False(t, s.IsRejected())
	assert.False(t, s.IsLocked())
	assert.False(t, s.IsHandled())
	assert.False(t, s.IsReported())
}

func TestStateTransitions(t *testing.T) {
	t.Run("fulfill once", func(t *testing.T) {
		var s CellStatus
		require.True(t, s.SetFulfilled())
		assert.True(t, s.IsFulfilled())
		assert.True(t, s.IsLocked())

		// settled state is monotonic
		assert.False(t, s.SetFulfilled())
		assert.False(t, s.SetRejected())
		assert.True(t, s.IsFulfilled())
	})

	t.Run("reject once", func(t *testing.T) {
		var s CellStatus
		require.True(t, s.SetRejected())
		assert.True(t, s.IsRejected())
		assert.False(t, s.SetFulfilled())
		assert.True(t, s.IsRejected())
	})
}

func TestLock(t *testing.T) {
	var s CellStatus
	require.True(t, s.Lock())
	assert.True(t, s.IsPending(), "locking must not settle the cell")
	assert.False(t, s.Lock(), "second lock must fail")

	// a locked cell can still be settled internally
	require.True(t, s.SetFulfilled())
	assert.True(t, s.IsFulfilled())
}

func TestFlagsOrthogonal(t *testing.T) {
	var s CellStatus
	s.SetHandled()
	assert.True(t, s.IsHandled())
	assert.True(t, s.IsPending())

	require.True(t, s.SetRejected())
	assert.True(t, s.IsHandled())
	assert.True(t, s.IsRejected())

	require.True(t, s.SetReported())
	assert.False(t, s.SetReported(), "reported at most once")
	assert.True(t, s.IsRejected())
	assert.True(t, s.IsHandled())
}
