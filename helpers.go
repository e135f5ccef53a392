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

// SettleAll drives every given promise to completion, in order, and reports
// whether all of them ended up settled.
//
// A promise stays pending, and settled comes back false, if its executor body
// finished without resolving or rejecting.
func SettleAll[T any](promises ...*Promise[T]) (settled bool) {
	settled = true
	for _, p := range promises {
		if p.Settle().State() == Pending {
			settled = false
		}
	}
	return settled
}
