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

// Package status implements the status value of a promise cell.
//
// The status keeps, in one word, the settlement state of the cell together
// with its bookkeeping flags.
// No synchronization is involved: the cell is only ever mutated under the
// single-threaded, run-to-completion discipline of its scheduler.
package status

// CellStatus describes one promise cell.
//
// The zero value is a pending, unlocked, unhandled cell.
type CellStatus uint32

// state section, occupies the lowest two bits, and only one can be set
// at any time.
const (
	statePending CellStatus = iota
	stateFulfilled
	stateRejected
	stateMask CellStatus = (1 << 2) - 1
)

// flags section
const (
	// flagsLocked is set once the cell accepts a resolution: the first
	// effective Resolve or Reject call, even if the cell is still pending
	// because it is adopting a thenable.
	flagsLocked CellStatus = 1 << (iota + 2)

	// flagsHandled is set once any reaction has ever been registered
	// against the cell.
	flagsHandled

	// flagsReported is set once an uncaught rejection has been reported
	// for the cell, so it's reported at most once.
	flagsReported
)

// IsPending returns true while the cell hasn't settled.
func (s CellStatus) IsPending() bool { return s&stateMask == statePending }

// IsFulfilled returns true once the cell settled with a value.
func (s CellStatus) IsFulfilled() bool { return s&stateMask == stateFulfilled }

// IsRejected returns true once the cell settled with a reason.
func (s CellStatus) IsRejected() bool { return s&stateMask == stateRejected }

// IsLocked returns true once the cell has accepted a resolution.
func (s CellStatus) IsLocked() bool { return s&flagsLocked != 0 }

// IsHandled returns true once any reaction has been registered.
func (s CellStatus) IsHandled() bool { return s&flagsHandled != 0 }

// IsReported returns true once the cell's rejection has been reported.
func (s CellStatus) IsReported() bool { return s&flagsReported != 0 }

// Lock marks the cell as having accepted a resolution.
// It returns false if the cell was already locked or settled, in which case
// the caller's settlement attempt must be a no-op.
func (s *CellStatus) Lock() bool {
	if s.IsLocked() || !s.IsPending() {
		return false
	}
	*s |= flagsLocked
	return true
}

// SetFulfilled transitions the cell's state to fulfilled.
// It returns false if the cell has already settled.
func (s *CellStatus) SetFulfilled() bool { return s.setState(stateFulfilled) }

// SetRejected transitions the cell's state to rejected.
// It returns false if the cell has already settled.
func (s *CellStatus) SetRejected() bool { return s.setState(stateRejected) }

func (s *CellStatus) setState(state CellStatus) bool {
	if !s.IsPending() {
		return false
	}
	*s = *s&^stateMask | state | flagsLocked
	return true
}

// SetHandled marks the cell as having at least one registered reaction.
func (s *CellStatus) SetHandled() { *s |= flagsHandled }

// SetReported marks the cell's rejection as reported.
// It returns false if it was already reported.
func (s *CellStatus) SetReported() bool {
	if s.IsReported() {
		return false
	}
	*s |= flagsReported
	return true
}
