package metrics_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigcheck/rigcheck-go/internal/metrics"
)

func TestRecordTiming(t *testing.T) {
	c := metrics.NewCollector()
	c.RecordTiming(metrics.OpCompatCheck, 10*time.Millisecond)
	c.RecordTiming(metrics.OpCompatCheck, 30*time.Millisecond)

	snap := c.Snapshot()
	require.NotNil(t, snap.CompatCheck)
	assert.Equal(t, int64(2), snap.CompatCheck.Count)
	assert.Equal(t, int64(40), snap.CompatCheck.TotalTimeMs)
	assert.Equal(t, 20.0, snap.CompatCheck.AvgTimeMs)
	assert.Equal(t, int64(10), snap.CompatCheck.MinTimeMs)
	assert.Equal(t, int64(30), snap.CompatCheck.MaxTimeMs)
}

func TestSnapshotOmitsIdleOperations(t *testing.T) {
	c := metrics.NewCollector()
	c.RecordTiming(metrics.OpDBQuery, time.Millisecond)

	snap := c.Snapshot()
	assert.NotNil(t, snap.DBQuery)
	assert.Nil(t, snap.CompatCheck)
	assert.Nil(t, snap.PowerEstimate)
	assert.GreaterOrEqual(t, snap.UptimeSeconds, 0.0)
}

func TestRecordTimingConcurrent(t *testing.T) {
	c := metrics.NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.RecordTiming(metrics.OpPowerEstimate, time.Millisecond)
			}
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	require.NotNil(t, snap.PowerEstimate)
	assert.Equal(t, int64(1000), snap.PowerEstimate.Count)
}
