package print_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/rabinfind/automaton"
	"github.com/optakt/rabinfind/bitset"
	"github.com/optakt/rabinfind/print"
)

func selfLoopAutomaton(t *testing.T) *automaton.Automaton {
	t.Helper()
	a := automaton.New(1)
	require.NoError(t, a.AddTransition(0, 0, 0))
	require.NoError(t, a.AddAcceptance(bitset.New(1), bitset.Of(1, 0)))
	return a
}

func TestDotRendersWitness(t *testing.T) {
	a := selfLoopAutomaton(t)
	r, err := a.FindRun(1)
	require.NoError(t, err)

	out := print.Dot(r)
	assert.True(t, strings.HasPrefix(out, "digraph {"))
	assert.Contains(t, out, "label = \"0\"")
	assert.Contains(t, out, "r0 [label = \"0\", shape = Mcircle]")
	assert.Contains(t, out, "i0 [label=\"\",width=.1,style=invis]")
	assert.Contains(t, out, "rank = same r1 -> i0 -> r2 [style=invis]")
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestLogicRendersWitness(t *testing.T) {
	a := selfLoopAutomaton(t)
	r, err := a.FindRun(1)
	require.NoError(t, err)

	out := print.Logic(r)
	assert.Contains(t, out, "has_state(0,0).")
	assert.Contains(t, out, "parent(0,1).")
}

func TestAutomatonLogicRendersTransitionsAndAcceptance(t *testing.T) {
	a := selfLoopAutomaton(t)

	out := print.AutomatonLogic(a)
	assert.Contains(t, out, "state(0..0).")
	assert.Contains(t, out, "start(0).")
	assert.Contains(t, out, "transition(0,0,0).")
	assert.Contains(t, out, "u(0,0).")
}
