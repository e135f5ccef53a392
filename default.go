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

// defScheduler is the scheduler used by promises created with a nil
// *Scheduler argument.
var defScheduler = NewScheduler()

// Default returns the package-level default scheduler.
//
// Promises created through any constructor with a nil scheduler are bound to
// it, so a program that never constructs its own Scheduler drains this one.
func Default() *Scheduler {
	return defScheduler
}
