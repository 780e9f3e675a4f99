package parse_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/rabinfind/automaton"
	"github.com/optakt/rabinfind/bitset"
	"github.com/optakt/rabinfind/parse"
	"github.com/optakt/rabinfind/print"
)

func TestAutomatonRoundTrip(t *testing.T) {
	original := automaton.New(3)
	require.NoError(t, original.SetStart(1))
	require.NoError(t, original.AddTransition(0, 1, 2))
	require.NoError(t, original.AddTransition(1, 0, 0))
	require.NoError(t, original.AddAcceptance(bitset.Of(3, 2), bitset.Of(3, 0, 1)))

	dump := print.AutomatonLogic(original)

	parsed, err := parse.Automaton(strings.NewReader(dump))
	require.NoError(t, err)

	assert.Equal(t, original.States(), parsed.States())
	assert.Equal(t, original.Start(), parsed.Start())
	assert.Equal(t, original.Transitions(0), parsed.Transitions(0))
	assert.Equal(t, original.Transitions(1), parsed.Transitions(1))

	require.Len(t, parsed.Acceptances(), 1)
	assert.Equal(t, original.Acceptances()[0].L.Elements(), parsed.Acceptances()[0].L.Elements())
	assert.Equal(t, original.Acceptances()[0].U.Elements(), parsed.Acceptances()[0].U.Elements())
}

func TestAutomatonRejectsMissingStateLine(t *testing.T) {
	_, err := parse.Automaton(strings.NewReader("start(0).\n"))
	assert.Error(t, err)
}
