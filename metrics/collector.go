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

// Package metrics collects and periodically reports counters and timers for
// a search run, on top of github.com/rcrowley/go-metrics.
package metrics

import "github.com/rs/zerolog"

// Collector is anything that can log its current metrics on demand. The
// periodic Output reporter calls Output on every registered collector at a
// fixed interval, and once more on shutdown.
type Collector interface {
	Output(log zerolog.Logger)
}
