package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/flockflow/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{}
	for i := 1; i <= 100; i++ {
		s.Samples = append(s.Samples, time.Duration(101-i)*time.Millisecond)
	}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 100*time.Millisecond, s.Max)
	assert.Equal(t, 50500*time.Microsecond, s.Avg)
	assert.Equal(t, 95*time.Millisecond, s.P95)
	assert.Equal(t, 100*time.Millisecond, s.Samples[0], "samples keep their order")

	single := Stats{Samples: []time.Duration{time.Second}}
	single.Finalize()
	assert.Equal(t, time.Second, single.P95)

	empty := Stats{}
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestBuildRunsBothModes(t *testing.T) {
	for _, mode := range []string{"flock", "game"} {
		t.Run(mode, func(t *testing.T) {
			storage, scheduler, err := build(mode, config.Default(), 50, zaptest.NewLogger(t))
			require.NoError(t, err)

			for range 3 {
				scheduler.Once(1.0 / 60.0)
			}
			assert.GreaterOrEqual(t, storage.Len(), 50)
			assert.Positive(t, scheduler.GetStats().TotalExecutions)
		})
	}

	_, _, err := build("bogus", config.Default(), 1, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, `unknown mode "bogus"`)
}

func TestReportGenerate(t *testing.T) {
	storage, scheduler, err := build("flock", config.Default(), 20, zaptest.NewLogger(t))
	require.NoError(t, err)
	scheduler.Once(1.0 / 60.0)

	r := &Report{
		Mode:           "flock",
		Boids:          20,
		Ticks:          1,
		TickLength:     16 * time.Millisecond,
		GCPauseMetrics: true,
		UpdateTime:     Stats{Samples: []time.Duration{2 * time.Millisecond}},
		Scheduler:      scheduler.GetStats(),
		Storage:        storage.CollectStats(),
	}
	r.UpdateTime.Finalize()

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	out := buf.String()

	assert.Contains(t, out, "- **Mode:** flock")
	assert.Contains(t, out, "- **Avg:** 2ms")
	assert.Contains(t, out, "| IndexSystem | 1 |")
	assert.Contains(t, out, "- **Entities:** 24 in")
	assert.Contains(t, out, "GC Pause")
}

func TestReportWithoutStats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&Report{Mode: "game"}).Generate(&buf))
	assert.NotContains(t, buf.String(), "## Systems")
	assert.NotContains(t, buf.String(), "GC Pause")
}
