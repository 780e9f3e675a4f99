// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package automaton

import "errors"

// Sentinel errors.
var (
	// ErrInvalidThreads is returned by FindRun when max_threads < 1.
	ErrInvalidThreads = errors.New("max threads must be at least 1")

	// ErrIllegalState is wrapped by AddTransition and AddAcceptance when a
	// referenced state is outside [0, N).
	ErrIllegalState = errors.New("state out of range")

	// ErrEmptyLanguage is returned by FindRun, alongside a nil *run.Run, when
	// the automaton's language is empty. It is not a failure.
	ErrEmptyLanguage = errors.New("empty language")
)
