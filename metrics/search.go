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

package metrics

import (
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/rs/zerolog"
)

// Search tracks the shape of a single emptiness search as it progresses:
// how many generations ran, how many pieces were built, how many states got
// a witness, and how long the whole search took.
type Search struct {
	generations metrics.Counter
	pieces      metrics.Counter
	witnesses   metrics.Counter
	duration    metrics.Timer
}

// NewSearch creates a fresh, zeroed Search collector.
func NewSearch() *Search {
	return &Search{
		generations: metrics.NewCounter(),
		pieces:      metrics.NewCounter(),
		witnesses:   metrics.NewCounter(),
		duration:    metrics.NewTimer(),
	}
}

// Generation records that another generation of the search ran.
func (s *Search) Generation() {
	s.generations.Inc(1)
}

// Pieces records that n pieces were built during the current generation.
func (s *Search) Pieces(n int64) {
	s.pieces.Inc(n)
}

// Witness records that a state's witness was installed.
func (s *Search) Witness() {
	s.witnesses.Inc(1)
}

// Track times the function call f, recording its duration.
func (s *Search) Track(f func()) {
	now := time.Now()
	f()
	s.duration.UpdateSince(now)
}

// Output logs the current counters and total search duration.
func (s *Search) Output(log zerolog.Logger) {
	log.Info().
		Str("component", "search").
		Int64("generations", s.generations.Count()).
		Int64("pieces", s.pieces.Count()).
		Int64("witnesses", s.witnesses.Count()).
		Str("duration", time.Duration(s.duration.Sum()).String()).
		Msg("search metrics")
}
