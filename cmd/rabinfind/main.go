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

package main

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/optakt/rabinfind/automaton"
	"github.com/optakt/rabinfind/metrics"
	"github.com/optakt/rabinfind/parse"
	"github.com/optakt/rabinfind/print"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	var (
		flagInput   string
		flagDot     string
		flagLogic   string
		flagText    string
		flagForce   bool
		flagThreads int
		flagLevel   string
	)

	pflag.StringVarP(&flagInput, "input", "i", "-", "logic program file describing the automaton, - for stdin")
	pflag.StringVarP(&flagDot, "dot", "d", "", "write the witness run as Graphviz dot source to this file")
	pflag.StringVarP(&flagLogic, "logic", "l", "", "write the automaton, and the witness run if one is found, as a logic program to this file")
	pflag.StringVarP(&flagText, "text", "x", "", "write the automaton's text dump to this file")
	pflag.BoolVarP(&flagForce, "force", "f", false, "overwrite output files if they already exist")
	pflag.IntVarP(&flagThreads, "threads", "t", 1, "number of worker goroutines used by the search")
	pflag.StringVarP(&flagLevel, "level", "", "info", "log output level")

	pflag.Parse()

	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(flagLevel)
	if err != nil {
		log.Error().Str("level", flagLevel).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)

	log.Info().
		Str("input", flagInput).
		Str("dot", flagDot).
		Str("logic", flagLogic).
		Str("text", flagText).
		Int("threads", flagThreads).
		Msg("flags loaded")

	in, err := openInput(flagInput)
	if err != nil {
		log.Error().Str("input", flagInput).Err(err).Msg("could not open input")
		return failure
	}
	if in != os.Stdin {
		defer in.Close()
	}

	a, err := parse.Automaton(in)
	if err != nil {
		log.Error().Err(err).Msg("could not parse automaton")
		return failure
	}

	if flagText != "" {
		if err := writeFile(flagText, flagForce, a.String()); err != nil {
			log.Error().Str("text", flagText).Err(err).Msg("could not write text dump")
			return failure
		}
	}

	reporter := metrics.NewOutput(log, 5*time.Second)
	sm := metrics.NewSearch()
	reporter.Register(sm)
	reporter.Run()
	defer reporter.Stop()

	witness, err := a.FindRunWithMetrics(flagThreads, sm)
	empty := errors.Is(err, automaton.ErrEmptyLanguage)
	if err != nil && !empty {
		log.Error().Err(err).Msg("search failed")
		return failure
	}

	if flagLogic != "" {
		rendered := print.AutomatonLogic(a)
		if !empty {
			rendered += "\n" + print.Logic(witness)
		}
		if err := writeFile(flagLogic, flagForce, rendered); err != nil {
			log.Error().Str("logic", flagLogic).Err(err).Msg("could not write logic program")
			return failure
		}
	}

	if !empty && flagDot != "" {
		if err := writeFile(flagDot, flagForce, print.Dot(witness)); err != nil {
			log.Error().Str("dot", flagDot).Err(err).Msg("could not write dot output")
			return failure
		}
	}

	if empty {
		os.Stdout.WriteString("EMPTY LANGUAGE\n")
		log.Info().Msg("language is empty, no witness found")
		return success
	}
	os.Stdout.WriteString("NONEMPTY LANGUAGE\n")
	log.Info().Msg("language is non-empty, witness written")
	return success
}

// openInput opens path for reading, treating "" and "-" as standard input.
func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

// writeFile writes content to path, failing if path already exists and
// force is false.
func writeFile(path string, force bool, content string) error {
	var (
		out *os.File
		err error
	)
	if force {
		out, err = os.Create(path)
	} else {
		out, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	}
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = out.WriteString(content)
	return err
}
