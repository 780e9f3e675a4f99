package automaton_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/rabinfind/automaton"
	"github.com/optakt/rabinfind/bitset"
)

func TestAutomatonSetStart(t *testing.T) {
	a := automaton.New(3)

	require.NoError(t, a.SetStart(2))
	assert.Equal(t, uint32(2), a.Start())

	err := a.SetStart(5)
	assert.ErrorIs(t, err, automaton.ErrIllegalState)
}

func TestAutomatonAddTransitionValidatesEveryState(t *testing.T) {
	a := automaton.New(2)

	require.NoError(t, a.AddTransition(0, 1, 1))
	require.Len(t, a.Transitions(0), 1)

	err := a.AddTransition(5, 6, 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, automaton.ErrIllegalState))
}

func TestAutomatonAddAcceptanceNormalizesU(t *testing.T) {
	a := automaton.New(4)

	l := bitset.Of(4, 0, 1)
	u := bitset.Of(4, 1, 2)
	require.NoError(t, a.AddAcceptance(l, u))

	got := a.Acceptances()
	require.Len(t, got, 1)
	assert.Equal(t, []uint{2}, got[0].U.Elements())
	assert.Equal(t, []uint{0, 1}, got[0].L.Elements())
}

func TestAutomatonFindRunInvalidThreads(t *testing.T) {
	a := automaton.New(1)
	_, err := a.FindRun(0)
	assert.ErrorIs(t, err, automaton.ErrInvalidThreads)
}

func TestAutomatonFindRunEmptyLanguage(t *testing.T) {
	a := automaton.New(2)
	require.NoError(t, a.AddTransition(0, 1, 1))

	_, err := a.FindRun(1)
	assert.ErrorIs(t, err, automaton.ErrEmptyLanguage)
}

func TestAutomatonFindRunSingleStateSelfLoop(t *testing.T) {
	a := automaton.New(1)
	require.NoError(t, a.AddTransition(0, 0, 0))
	require.NoError(t, a.AddAcceptance(bitset.New(1), bitset.Of(1, 0)))

	r, err := a.FindRun(1)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.True(t, r.HasWitness(0))
}

func TestAutomatonAcceptanceString(t *testing.T) {
	a := automaton.Acceptance{L: bitset.New(2), U: bitset.Of(2, 1)}
	assert.Equal(t, "( none , 1 )", a.String())
}

func TestAutomatonStringRendersTextDump(t *testing.T) {
	a := automaton.New(3)
	require.NoError(t, a.SetStart(1))
	require.NoError(t, a.AddTransition(0, 1, 2))
	require.NoError(t, a.AddTransition(0, 2, 1))
	require.NoError(t, a.AddAcceptance(bitset.Of(3, 2), bitset.Of(3, 0, 1)))

	want := "states := 3\n" +
		"start := 1\n" +
		"transitions :=\n" +
		"\t0 > 1 2, 0 > 2 1\n" +
		"acceptances :=\n" +
		"\t( 2 , 0 1 )"
	assert.Equal(t, want, a.String())
}

func TestAutomatonStringOmitsEmptyBlocks(t *testing.T) {
	a := automaton.New(2)
	assert.Equal(t, "states := 2\nstart := 0\n", a.String())
}
