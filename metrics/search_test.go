package metrics_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/optakt/rabinfind/metrics"
)

func TestSearchOutputReportsCounters(t *testing.T) {
	s := metrics.NewSearch()
	s.Generation()
	s.Pieces(3)
	s.Witness()

	var buf bytes.Buffer
	log := zerolog.New(&buf)
	s.Output(log)

	out := buf.String()
	assert.Contains(t, out, `"generations":1`)
	assert.Contains(t, out, `"pieces":3`)
	assert.Contains(t, out, `"witnesses":1`)
}

func TestSearchTrackRecordsDuration(t *testing.T) {
	s := metrics.NewSearch()
	ran := false
	s.Track(func() { ran = true })
	assert.True(t, ran)
}
