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

// Package parse reads back the logic program representation
// print.AutomatonLogic produces, closing the round trip between an automaton
// dump and the Automaton it describes. The run facts print.Logic writes are
// not read back.
package parse

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/hashicorp/go-multierror"

	"github.com/optakt/rabinfind/automaton"
	"github.com/optakt/rabinfind/bitset"
)

var (
	reState      = regexp.MustCompile(`^state\(0\.\.(\d+)\)\.$`)
	reStart      = regexp.MustCompile(`^start\((\d+)\)\.$`)
	reTransition = regexp.MustCompile(`transition\((\d+),(\d+),(\d+)\)\.`)
	reL          = regexp.MustCompile(`l\((\d+),(\d+)\)\.`)
	reU          = regexp.MustCompile(`u\((\d+),(\d+)\)\.`)
)

// Automaton reads a logic program dump produced by print.AutomatonLogic and
// rebuilds the Automaton it describes. Parse errors for individual lines or
// facts are aggregated: Automaton keeps reading the rest of the input before
// returning them all together.
func Automaton(r io.Reader) (*automaton.Automaton, error) {
	scanner := bufio.NewScanner(r)

	var (
		states  uint32
		haveN   bool
		start   uint32
		result  *multierror.Error
		ls      = map[int][]uint32{}
		us      = map[int][]uint32{}
		pending []func(a *automaton.Automaton) error
	)

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case reState.MatchString(line):
			m := reState.FindStringSubmatch(line)
			n, err := strconv.ParseUint(m[1], 10, 32)
			if err != nil {
				result = multierror.Append(result, fmt.Errorf("state line %q: %w", line, err))
				continue
			}
			states = uint32(n) + 1
			haveN = true

		case reStart.MatchString(line):
			m := reStart.FindStringSubmatch(line)
			n, err := strconv.ParseUint(m[1], 10, 32)
			if err != nil {
				result = multierror.Append(result, fmt.Errorf("start line %q: %w", line, err))
				continue
			}
			start = uint32(n)
		}

		for _, m := range reTransition.FindAllStringSubmatch(line, -1) {
			p, errP := strconv.ParseUint(m[1], 10, 32)
			l, errL := strconv.ParseUint(m[2], 10, 32)
			r, errR := strconv.ParseUint(m[3], 10, 32)
			if errP != nil || errL != nil || errR != nil {
				result = multierror.Append(result, fmt.Errorf("transition fact %q: malformed state", m[0]))
				continue
			}
			p32, l32, r32 := uint32(p), uint32(l), uint32(r)
			pending = append(pending, func(a *automaton.Automaton) error {
				return a.AddTransition(p32, l32, r32)
			})
		}

		for _, m := range reL.FindAllStringSubmatch(line, -1) {
			idx, errI := strconv.Atoi(m[1])
			s, errS := strconv.ParseUint(m[2], 10, 32)
			if errI != nil || errS != nil {
				result = multierror.Append(result, fmt.Errorf("l fact %q: malformed index or state", m[0]))
				continue
			}
			ls[idx] = append(ls[idx], uint32(s))
		}

		for _, m := range reU.FindAllStringSubmatch(line, -1) {
			idx, errI := strconv.Atoi(m[1])
			s, errS := strconv.ParseUint(m[2], 10, 32)
			if errI != nil || errS != nil {
				result = multierror.Append(result, fmt.Errorf("u fact %q: malformed index or state", m[0]))
				continue
			}
			us[idx] = append(us[idx], uint32(s))
		}
	}
	if err := scanner.Err(); err != nil {
		result = multierror.Append(result, fmt.Errorf("reading input: %w", err))
	}
	if !haveN {
		result = multierror.Append(result, fmt.Errorf("missing state(0..N) line"))
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	a := automaton.New(states)
	if err := a.SetStart(start); err != nil {
		result = multierror.Append(result, err)
	}
	for _, add := range pending {
		if err := add(a); err != nil {
			result = multierror.Append(result, err)
		}
	}
	for idx := 0; idx < maxIndex(ls, us)+1; idx++ {
		l := bitset.Of(uint(states), toUints(ls[idx])...)
		u := bitset.Of(uint(states), toUints(us[idx])...)
		if err := a.AddAcceptance(l, u); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return a, nil
}

func maxIndex(maps ...map[int][]uint32) int {
	max := -1
	for _, m := range maps {
		for idx := range m {
			if idx > max {
				max = idx
			}
		}
	}
	return max
}

func toUints(vs []uint32) []uint {
	out := make([]uint, len(vs))
	for i, v := range vs {
		out[i] = uint(v)
	}
	return out
}
